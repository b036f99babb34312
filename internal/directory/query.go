package directory

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"discount24/internal/domain"
)

// Search keeps vendors whose name, description or category contains query,
// ignoring case. A blank query returns the input unchanged.
func Search(query string, vendors []domain.Vendor) []domain.Vendor {
	if strings.TrimSpace(query) == "" {
		return slices.Clone(vendors)
	}
	q := strings.ToLower(query)
	out := make([]domain.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if strings.Contains(strings.ToLower(v.Name), q) ||
			strings.Contains(strings.ToLower(v.Description), q) ||
			strings.Contains(strings.ToLower(string(v.Category)), q) {
			out = append(out, v)
		}
	}
	return out
}

// FilterByCategory keeps vendors filed exactly under category. An empty
// category or domain.CategoryAll returns the input unchanged.
func FilterByCategory(category string, vendors []domain.Vendor) []domain.Vendor {
	if category == "" || category == domain.CategoryAll {
		return slices.Clone(vendors)
	}
	out := make([]domain.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if string(v.Category) == category {
			out = append(out, v)
		}
	}
	return out
}

// SortByProximity orders vendors by ascending distance from ref. Vendors
// without a resolvable position follow all positioned ones in their original
// order. A nil ref returns the input unchanged.
func SortByProximity(vendors []domain.Vendor, ref *domain.Coordinate) []domain.Vendor {
	if ref == nil {
		return slices.Clone(vendors)
	}
	type ranked struct {
		vendor domain.Vendor
		km     float64
		ok     bool
	}
	rs := make([]ranked, len(vendors))
	for i, v := range vendors {
		km, ok := Distance(*ref, v)
		rs[i] = ranked{vendor: v, km: km, ok: ok}
	}
	slices.SortStableFunc(rs, func(a, b ranked) int {
		switch {
		case a.ok && b.ok:
			return cmp.Compare(a.km, b.km)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})
	out := make([]domain.Vendor, len(rs))
	for i, r := range rs {
		out[i] = r.vendor
	}
	return out
}

// Query is one combination of directory view parameters.
type Query struct {
	Text     string
	Category string
	Near     *domain.Coordinate
}

// Engine applies queries and remembers the last one, so a view can be
// recomputed after the underlying directory is refreshed.
type Engine struct {
	mu   sync.Mutex
	last Query
}

// Apply runs search, then category filter, then proximity sort.
func (e *Engine) Apply(vendors []domain.Vendor, q Query) []domain.Vendor {
	e.mu.Lock()
	e.last = q
	e.mu.Unlock()

	out := Search(q.Text, vendors)
	out = FilterByCategory(q.Category, out)
	return SortByProximity(out, q.Near)
}

// Refresh re-applies the last query to vendors.
func (e *Engine) Refresh(vendors []domain.Vendor) []domain.Vendor {
	return e.Apply(vendors, e.Last())
}

// Last returns the most recently applied query.
func (e *Engine) Last() Query {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}
