package catalog

import (
	"sort"
	"strings"
)

// Sort modes accepted by Sort after normalization.
const (
	SortMenu      = ""
	SortName      = "name"
	SortPrice     = "price"
	SortPriceDesc = "price-desc"
	SortCategory  = "category"
)

// NormalizeSortMode maps user spellings onto a sort mode. Unknown values fall
// back to menu order.
func NormalizeSortMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "name", "alpha", "az", "a-z":
		return SortName
	case "price", "cheap", "cheapest", "low":
		return SortPrice
	case "price-desc", "expensive", "priciest", "high":
		return SortPriceDesc
	case "category", "cat", "section":
		return SortCategory
	default:
		return SortMenu
	}
}

// Sort returns a sorted copy of items. Entries without a price sort after
// priced ones in either price order; ties keep menu order.
func Sort(items []Entry, mode string) []Entry {
	out := append([]Entry(nil), items...)

	var less func(a, b Entry) bool
	switch NormalizeSortMode(mode) {
	case SortName:
		less = func(a, b Entry) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortPrice:
		less = func(a, b Entry) bool { return priceLess(a, b, false) }
	case SortPriceDesc:
		less = func(a, b Entry) bool { return priceLess(a, b, true) }
	case SortCategory:
		less = func(a, b Entry) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func priceLess(a, b Entry, desc bool) bool {
	switch {
	case a.Price == nil:
		return false
	case b.Price == nil:
		return true
	case desc:
		return *a.Price > *b.Price
	default:
		return *a.Price < *b.Price
	}
}
