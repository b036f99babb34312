package menu

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"discount24/internal/domain"
	"discount24/internal/pricing"
)

// Form is a menu item as typed by the vendor, before parsing.
type Form struct {
	Name        string
	Description string
	Price       string
	Discount    string // optional
	Category    string
}

// Validate checks a draft before it is sent: a name, and a price and
// discount the pricing rules accept.
func Validate(d domain.MenuDraft) error {
	if strings.TrimSpace(d.Name) == "" {
		return domain.Invalid("name", "is required")
	}
	discount := 0.0
	if d.Discount != nil {
		discount = *d.Discount
	}
	_, err := pricing.DiscountedPrice(d.Price, discount)
	return err
}

// ParseForm converts raw form values into a validated draft.
func ParseForm(f Form) (domain.MenuDraft, error) {
	d := domain.MenuDraft{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Category:    strings.TrimSpace(f.Category),
	}

	price := strings.TrimSpace(f.Price)
	if price == "" {
		return domain.MenuDraft{}, domain.Invalid("price", "is required")
	}
	p, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return domain.MenuDraft{}, domain.Invalid("price", "must be a number")
	}
	d.Price = p

	if s := strings.TrimSpace(f.Discount); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return domain.MenuDraft{}, domain.Invalid("discount", "must be a number")
		}
		d.Discount = &v
	}

	if err := Validate(d); err != nil {
		return domain.MenuDraft{}, err
	}
	return d, nil
}

// SortKey selects the shop page ordering.
type SortKey string

const (
	SortByPrice    SortKey = "price"    // cheapest first
	SortByDiscount SortKey = "discount" // biggest discount first
)

// SortItems returns a stably sorted copy of items. Unknown keys leave the
// order unchanged.
func SortItems(items []domain.MenuItem, by SortKey) []domain.MenuItem {
	out := slices.Clone(items)
	switch by {
	case SortByPrice:
		slices.SortStableFunc(out, func(a, b domain.MenuItem) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortByDiscount:
		slices.SortStableFunc(out, func(a, b domain.MenuItem) int {
			return cmp.Compare(discountOf(b), discountOf(a))
		})
	}
	return out
}

func discountOf(m domain.MenuItem) float64 {
	if m.Discount == nil {
		return 0
	}
	return *m.Discount
}
