package catalog

import "strings"

// categorySynonyms groups menu section names that customers use
// interchangeably. Keys are in normalizeCategory form.
var categorySynonyms = map[string][]string{
	"drink":     {"drinks", "beverage", "beverages", "refreshments", "soda", "sodas"},
	"coffee":    {"coffees", "espresso", "espresso drinks", "hot drinks", "espresso bar"},
	"tea":       {"teas", "iced tea", "chai"},
	"side":      {"sides", "extras", "side dishes", "add ons", "add-ons"},
	"dessert":   {"desserts", "sweets", "treats", "bakery", "pastries"},
	"breakfast": {"brunch", "morning", "breakfast menu"},
	"sandwich":  {"sandwiches", "subs", "hoagies", "wraps", "melts"},
	"entree":    {"entrees", "mains", "main courses", "plates", "dinners"},
	"appetizer": {"appetizers", "starters", "apps", "small plates", "snacks"},
	"salad":     {"salads", "greens", "bowls"},
	"burger":    {"burgers", "hamburgers"},
	"kid":       {"kids", "kids menu", "children", "little ones"},
	"smoothie":  {"smoothies", "shakes", "milkshakes", "blended drinks"},
}

type categoryMatcher struct {
	exactAliases []string
	normalized   map[string]struct{}
}

func newCategoryMatcher(wanted string) categoryMatcher {
	aliases := categoryAliasList(wanted)
	if len(aliases) == 0 {
		return categoryMatcher{}
	}

	normalized := make(map[string]struct{}, len(aliases))
	for _, alias := range aliases {
		normalized[normalizeCategory(alias)] = struct{}{}
	}

	return categoryMatcher{
		exactAliases: aliases,
		normalized:   normalized,
	}
}

// CategoryAliases returns wanted, its synonym group key and every synonym in
// the group, without case-insensitive duplicates.
func CategoryAliases(wanted string) []string {
	return categoryAliasList(wanted)
}

func categoryAliasList(wanted string) []string {
	raw := strings.TrimSpace(wanted)
	group := resolveCategoryGroup(wanted)
	if raw == "" && group == "" {
		return nil
	}

	out := make([]string, 0, 2+len(categorySynonyms[group]))
	addAlias := func(alias string) {
		alias = strings.TrimSpace(alias)
		if alias == "" {
			return
		}
		for _, existing := range out {
			if strings.EqualFold(existing, alias) {
				return
			}
		}
		out = append(out, alias)
	}

	addAlias(raw)
	addAlias(group)
	for _, s := range categorySynonyms[group] {
		addAlias(s)
	}
	return out
}

func resolveCategoryGroup(wanted string) string {
	norm := normalizeCategory(wanted)
	if norm == "" {
		return ""
	}

	if _, ok := categorySynonyms[norm]; ok {
		return norm
	}
	for key, synonyms := range categorySynonyms {
		for _, s := range synonyms {
			if normalizeCategory(s) == norm {
				return key
			}
		}
	}
	return norm
}

func (m categoryMatcher) matches(category string) bool {
	if len(m.exactAliases) == 0 {
		return false
	}
	trimmed := strings.TrimSpace(category)
	for _, alias := range m.exactAliases {
		if strings.EqualFold(trimmed, alias) {
			return true
		}
	}
	_, ok := m.normalized[normalizeCategory(trimmed)]
	return ok
}

func normalizeCategory(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.Join(strings.Fields(s), " ")
	switch {
	case len(s) > 4 && strings.HasSuffix(s, "ies"):
		s = strings.TrimSuffix(s, "ies") + "y"
	case len(s) > 4 && (strings.HasSuffix(s, "ches") || strings.HasSuffix(s, "shes") ||
		strings.HasSuffix(s, "sses") || strings.HasSuffix(s, "xes")):
		s = strings.TrimSuffix(s, "es")
	case len(s) > 3 && strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss"):
		s = strings.TrimSuffix(s, "s")
	}
	return s
}
