// Package catalog implements the query engine shared by the public
// storefront and the admin panel: filtering, sorting and pagination over a
// point-in-time product snapshot. It never mutates the snapshot and keeps
// no state between calls.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"storefront/internal/domain"
)

// Sort keys accepted by FilterSpec. An empty key leaves the input order
// untouched.
const (
	SortNone      = ""
	SortDefault   = "default"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// CategoryAll matches every category.
const CategoryAll = "all"

// FilterSpec is the transient set of predicates built from the current UI
// state. It has no identity beyond a single Apply call.
type FilterSpec struct {
	Search   string
	Category string
	// MaxPrice is an inclusive upper bound. When nil it defaults to the
	// maximum price in the snapshot, so clearing filters is a no-op.
	MaxPrice *float64
	SortKey  string
}

// Apply filters the snapshot conjunctively, then sorts. The result is a new
// slice; ties keep the relative order of the input, which is stored
// newest-first.
func Apply(products []domain.Product, spec FilterSpec) []domain.Product {
	maxPrice := spec.MaxPrice
	if maxPrice == nil {
		m := maxSnapshotPrice(products)
		maxPrice = &m
	}

	search := strings.ToLower(spec.Search)
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if spec.Category != "" && spec.Category != CategoryAll && p.Category != spec.Category {
			continue
		}
		if p.Price > *maxPrice {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, spec.SortKey)
	return filtered
}

func sortProducts(products []domain.Product, sortKey string) {
	switch sortKey {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortNameAsc:
		c := collate.New(language.Und)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	case SortNameDesc:
		c := collate.New(language.Und)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) > 0
		})
	}
}

func maxSnapshotPrice(products []domain.Product) float64 {
	var max float64
	for _, p := range products {
		if p.Price > max {
			max = p.Price
		}
	}
	return max
}

// Paginate slices out the 1-based page of the given size. An out-of-range
// page is clamped into the valid range instead of erroring.
func Paginate(products []domain.Product, page, pageSize int) []domain.Product {
	if pageSize <= 0 {
		return products
	}

	totalPages := (len(products) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	if start >= len(products) {
		return []domain.Product{}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

// Categories returns the distinct category values of the unfiltered
// snapshot, ordered by first occurrence. It must be recomputed whenever the
// underlying collection changes.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{}, len(products))
	categories := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
