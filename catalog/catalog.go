// Package catalog holds the in-memory product list fetched once per view
// and the pure filter/sort functions applied on every control change.
package catalog

import (
	"sort"
	"strings"

	"github.com/0xletuss/67foodstreet/api"
)

// SortKey is the closed set of orderings the catalog view offers.
type SortKey string

const (
	SortNone      SortKey = ""
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
)

// Query is the filter-control state.
type Query struct {
	Search   string
	Category string
	Sort     SortKey
}

// Apply produces a filtered, ordered view of products. Pure: the input slice
// is never modified and no network I/O happens here. An empty search string
// or category is a no-op filter.
func Apply(products []api.Product, q Query) []api.Product {
	out := make([]api.Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.ProductName), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].ProductName) < strings.ToLower(out[j].ProductName)
		})
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UnitPrice.LessThan(out[j].UnitPrice)
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UnitPrice.GreaterThan(out[j].UnitPrice)
		})
	}

	return out
}

// Categories returns the distinct categories present, sorted, for the
// category filter control.
func Categories(products []api.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}
