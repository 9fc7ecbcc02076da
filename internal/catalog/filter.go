package catalog

import (
	"strings"

	"github.com/Ikanga93/ritt-ai-assistant/internal/fuzzy"
)

// Options holds all menu filter criteria.
type Options struct {
	Category string
	Query    string
	MaxPrice float64
	Sort     string
	Limit    int
}

// Filter narrows items according to opts. Category matching understands the
// synonym groups ("drinks" finds "Beverages"); Query is matched against the
// normalized item name.
func Filter(items []Entry, opts Options) []Entry {
	result := items

	if opts.Category != "" {
		m := newCategoryMatcher(opts.Category)
		result = where(result, func(e Entry) bool {
			return m.matches(e.Category)
		})
	}

	if opts.Query != "" {
		q := fuzzy.Normalize(opts.Query)
		if q == "" {
			q = strings.ToLower(strings.TrimSpace(opts.Query))
		}
		result = where(result, func(e Entry) bool {
			return strings.Contains(fuzzy.Normalize(e.Name), q)
		})
	}

	if opts.MaxPrice > 0 {
		result = where(result, func(e Entry) bool {
			return e.Price != nil && *e.Price <= opts.MaxPrice
		})
	}

	if opts.Sort != "" {
		result = Sort(result, opts.Sort)
	}

	if opts.Limit > 0 && opts.Limit < len(result) {
		result = result[:opts.Limit]
	}

	return result
}

// Categories returns a map of category name to item count.
func Categories(items []Entry) map[string]int {
	cats := make(map[string]int)
	for _, e := range items {
		if e.Category != "" {
			cats[e.Category]++
		}
	}
	return cats
}

// Names returns the item names in order.
func Names(items []Entry) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.Name
	}
	return out
}

func where(items []Entry, fn func(Entry) bool) []Entry {
	var result []Entry
	for _, item := range items {
		if fn(item) {
			result = append(result, item)
		}
	}
	return result
}
