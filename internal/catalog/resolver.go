package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/Ikanga93/ritt-ai-assistant/internal/fuzzy"
)

// Kind selects which alias rules apply during resolution.
type Kind string

const (
	KindRestaurant Kind = "restaurant"
	KindCategory   Kind = "category"
)

// Method names the resolution tier that produced a hit.
type Method string

const (
	MethodID         Method = "id"
	MethodAlias      Method = "alias"
	MethodSubstring  Method = "substring"
	MethodFuzzy      Method = "fuzzy"
	MethodSoundsLike Method = "sounds-like"
)

// Candidate is something a spoken label can resolve to.
type Candidate struct {
	ID      string
	Name    string
	Aliases []string
}

// Resolution reports which candidate a query resolved to and how.
type Resolution struct {
	Index  int     `json:"index"`
	ID     string  `json:"id,omitempty"`
	Name   string  `json:"name"`
	Method Method  `json:"method"`
	Score  float64 `json:"score"`
}

// Resolver maps spoken restaurant and category names to catalog identities.
// It holds only its threshold and is safe for concurrent use.
type Resolver struct {
	threshold float64
}

// NewResolver returns a Resolver whose fuzzy tier uses base as the matcher's
// base threshold.
func NewResolver(base float64) *Resolver {
	return &Resolver{threshold: base}
}

// Resolve runs the tiers in order: exact id, alias, substring, fuzzy name and
// finally sounds-like. The first tier with a hit wins.
func (r *Resolver) Resolve(query string, kind Kind, candidates []Candidate) (Resolution, bool) {
	raw := strings.TrimSpace(query)
	if raw == "" || len(candidates) == 0 {
		return Resolution{}, false
	}

	for i, c := range candidates {
		if c.ID != "" && strings.EqualFold(raw, strings.TrimSpace(c.ID)) {
			return newResolution(i, c, MethodID, 1), true
		}
	}

	norm := fuzzy.Normalize(raw)
	if norm == "" {
		norm = strings.ToLower(raw)
	}

	if i, ok := aliasIndex(raw, norm, kind, candidates); ok {
		return newResolution(i, candidates[i], MethodAlias, 1), true
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = fuzzy.Normalize(c.Name)
	}

	if utf8.RuneCountInString(norm) > 3 {
		best, bestScore := -1, 0.0
		for i, name := range names {
			if name == "" || !(strings.Contains(name, norm) || strings.Contains(norm, name)) {
				continue
			}
			if score := fuzzy.Similarity(norm, name); best < 0 || score > bestScore {
				best, bestScore = i, score
			}
		}
		if best >= 0 {
			return newResolution(best, candidates[best], MethodSubstring, bestScore), true
		}
	}

	if m, ok := fuzzy.FindBestMatchThreshold(norm, names, r.threshold); ok {
		return newResolution(m.Index, candidates[m.Index], MethodFuzzy, m.Similarity), true
	}

	if i, score, ok := soundsLike(norm, names); ok {
		return newResolution(i, candidates[i], MethodSoundsLike, score), true
	}
	return Resolution{}, false
}

// ResolveRestaurant resolves query against the catalog's restaurants.
func (r *Resolver) ResolveRestaurant(query string, restaurants []Restaurant) (*Restaurant, Resolution, bool) {
	cands := make([]Candidate, len(restaurants))
	for i, rest := range restaurants {
		cands[i] = Candidate{ID: rest.ID, Name: rest.Name, Aliases: rest.Aliases}
	}
	res, ok := r.Resolve(query, KindRestaurant, cands)
	if !ok {
		return nil, Resolution{}, false
	}
	return &restaurants[res.Index], res, true
}

// ResolveCategory resolves query against a list of menu section names.
func (r *Resolver) ResolveCategory(query string, categories []string) (string, Resolution, bool) {
	cands := make([]Candidate, len(categories))
	for i, name := range categories {
		cands[i] = Candidate{Name: name}
	}
	res, ok := r.Resolve(query, KindCategory, cands)
	if !ok {
		return "", Resolution{}, false
	}
	return categories[res.Index], res, true
}

// LookupRestaurant is ResolveRestaurant with a miss reported as a
// *NoMatchError naming the closest restaurant.
func (r *Resolver) LookupRestaurant(query string, restaurants []Restaurant) (*Restaurant, Resolution, error) {
	if rest, res, ok := r.ResolveRestaurant(query, restaurants); ok {
		return rest, res, nil
	}
	names := make([]string, len(restaurants))
	for i, rest := range restaurants {
		names[i] = rest.Name
	}
	return nil, Resolution{}, noMatch(KindRestaurant, query, names)
}

// LookupCategory is ResolveCategory with a miss reported as a *NoMatchError.
func (r *Resolver) LookupCategory(query string, categories []string) (string, Resolution, error) {
	if name, res, ok := r.ResolveCategory(query, categories); ok {
		return name, res, nil
	}
	return "", Resolution{}, noMatch(KindCategory, query, categories)
}

func noMatch(kind Kind, query string, names []string) *NoMatchError {
	e := &NoMatchError{Kind: kind, Query: strings.TrimSpace(query)}
	norm := fuzzy.Normalize(query)
	if norm == "" {
		norm = strings.ToLower(e.Query)
	}
	normalized := make([]string, len(names))
	for i, name := range names {
		normalized[i] = fuzzy.Normalize(name)
	}
	if ranked := fuzzy.FindAllMatchesAbove(norm, normalized, 0); len(ranked) > 0 && ranked[0].Similarity > 0 {
		e.Closest, e.Score = names[ranked[0].Index], ranked[0].Similarity
	}
	return e
}

func newResolution(i int, c Candidate, m Method, score float64) Resolution {
	return Resolution{Index: i, ID: c.ID, Name: c.Name, Method: m, Score: score}
}

func aliasIndex(raw, norm string, kind Kind, candidates []Candidate) (int, bool) {
	for i, c := range candidates {
		for _, alias := range c.Aliases {
			if strings.EqualFold(raw, strings.TrimSpace(alias)) || fuzzy.Normalize(alias) == norm {
				return i, true
			}
		}
	}
	if kind != KindCategory {
		return 0, false
	}

	for _, q := range []string{raw, norm} {
		m := newCategoryMatcher(q)
		for i, c := range candidates {
			if m.matches(c.Name) {
				return i, true
			}
		}
	}
	return 0, false
}
