// Package pricing derives the price a shopper pays from a base price and a
// percentage discount.
//
// Values are kept at full precision; rounding to cents happens only in
// Format, at presentation time.
package pricing

import (
	"math"
	"strconv"

	"discount24/internal/domain"
)

// DiscountedPrice returns base * (1 - discount/100). A discount outside
// [0, 100] or a negative base is rejected rather than producing an inflated
// or negative price.
func DiscountedPrice(base, discount float64) (float64, error) {
	if math.IsNaN(base) || math.IsInf(base, 0) || base < 0 {
		return 0, domain.Invalid("price", "must be a non-negative number")
	}
	if math.IsNaN(discount) || discount < 0 || discount > 100 {
		return 0, domain.Invalid("discount", "must be between 0 and 100")
	}
	return base * (1 - discount/100), nil
}

// ForItem returns the price shown for item, applying its discount if any.
func ForItem(item domain.MenuItem) (float64, error) {
	if item.Discount == nil {
		return DiscountedPrice(item.Price, 0)
	}
	return DiscountedPrice(item.Price, *item.Discount)
}

// Format renders a price with two decimals, e.g. "$3.00".
func Format(price float64) string {
	return "$" + strconv.FormatFloat(price, 'f', 2, 64)
}
