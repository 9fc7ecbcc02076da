package order

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/Ikanga93/ritt-ai-assistant/internal/fuzzy"
)

const (
	// specialRetryBoost raises the threshold for text that looks like a
	// special instruction but might still be a menu item.
	specialRetryBoost = 0.2
	lenientDrop       = 0.15
	lenientFloor      = 0.25
	// suggestionMargin is how far the top lenient candidate must beat the
	// runner-up to be offered as a suggestion.
	suggestionMargin = 0.1
	minAbbreviation  = 0.8
)

// ItemMatch is a menu entry found for a spoken item name.
type ItemMatch struct {
	Entry catalog.Entry
	// Index is the entry's position in the slice that was searched.
	Index      int
	Confidence float64
}

// menu is the sellable part of a catalog, prepared once per Verify call.
type menu struct {
	entries []catalog.Entry
	index   []int
	names   []string
	lower   []string
	norm    []string
}

func newMenu(entries []catalog.Entry) *menu {
	m := &menu{}
	for i, e := range entries {
		if !e.Sellable() {
			continue
		}
		m.entries = append(m.entries, e)
		m.index = append(m.index, i)
		m.names = append(m.names, e.Name)
		m.lower = append(m.lower, prepare(e.Name))
		m.norm = append(m.norm, fuzzy.Normalize(e.Name))
	}
	return m
}

func (m *menu) match(i int, score float64) ItemMatch {
	return ItemMatch{Entry: m.entries[i], Index: m.index[i], Confidence: score}
}

// equal is the equality part of the exact pass. Case-insensitive equality
// over the whole menu wins before normalized equality, which wins before
// equality with a leading "the" dropped on either side.
func (m *menu) equal(query string) (ItemMatch, bool) {
	q := prepare(query)
	if q == "" {
		return ItemMatch{}, false
	}
	for i, name := range m.lower {
		if q == name {
			return m.match(i, fuzzy.Similarity(q, name)), true
		}
	}
	if nq := fuzzy.Normalize(query); nq != "" {
		for i, norm := range m.norm {
			if nq == norm {
				return m.match(i, fuzzy.Similarity(q, m.lower[i])), true
			}
		}
	}
	bare := stripThe(q)
	for i, name := range m.lower {
		if bare == stripThe(name) {
			return m.match(i, fuzzy.Similarity(q, name)), true
		}
	}
	return ItemMatch{}, false
}

// exact runs the whole exact pass: equality, word-bounded containment for
// queries longer than three runes, then initialisms scoring at least
// minAbbreviation.
func (m *menu) exact(query string) (ItemMatch, bool) {
	if hit, ok := m.equal(query); ok {
		return hit, true
	}

	q := queryText(query)
	if utf8.RuneCountInString(q) > 3 {
		best, bestScore := -1, 0.0
		for i, name := range m.lower {
			norm := m.norm[i]
			if !containsWords(name, q) && !containsWords(q, name) &&
				!containsWords(norm, q) && !containsWords(q, norm) {
				continue
			}
			if score := fuzzy.Similarity(q, name); best < 0 || score > bestScore {
				best, bestScore = i, score
			}
		}
		if best >= 0 {
			return m.match(best, bestScore), true
		}
	}

	for i, name := range m.lower {
		if score, step := fuzzy.Explain(q, name); step == fuzzy.StepAbbreviation && score >= minAbbreviation {
			return m.match(i, score), true
		}
	}
	return ItemMatch{}, false
}

// find is FindMenuItemByName over a prepared menu.
func (m *menu) find(query string, threshold float64) (ItemMatch, bool) {
	if len(m.entries) == 0 {
		return ItemMatch{}, false
	}
	if hit, ok := m.exact(query); ok {
		return hit, true
	}
	q := queryText(query)
	if r, ok := fuzzy.FindBestMatchThreshold(q, m.names, threshold); ok {
		return m.match(r.Index, r.Similarity), true
	}
	return ItemMatch{}, false
}

// suggest ranks every entry against query. It returns the best score seen
// and, when one candidate clears the lenient threshold and leads the
// runner-up by more than suggestionMargin, that candidate's name.
func (m *menu) suggest(query string, threshold float64) (float64, string) {
	ranked := fuzzy.FindAllMatchesAbove(queryText(query), m.names, 0)
	if len(ranked) == 0 {
		return 0, ""
	}

	lenient := max(threshold-lenientDrop, lenientFloor)
	top := ranked[0]
	if top.Similarity < lenient {
		return top.Similarity, ""
	}
	if len(ranked) > 1 && ranked[1].Similarity >= lenient && top.Similarity-ranked[1].Similarity <= suggestionMargin {
		return top.Similarity, ""
	}
	return top.Similarity, top.MatchedText
}

// FindMenuItemByName resolves a spoken item name against entries. An exact
// pass (equality, leading "the", containment, initialisms) wins outright;
// otherwise the best fuzzy candidate must clear the dynamic threshold for
// threshold. Entries without a name or price are skipped.
func FindMenuItemByName(query string, entries []catalog.Entry, threshold float64) (ItemMatch, bool) {
	return newMenu(entries).find(query, threshold)
}

// Verify classifies and prices every line against entries, in order. A
// threshold of zero or less means fuzzy.DefaultThreshold.
func Verify(lines []RequestedLine, entries []catalog.Entry, threshold float64) []VerifiedLine {
	if threshold <= 0 {
		threshold = fuzzy.DefaultThreshold
	}
	m := newMenu(entries)
	out := make([]VerifiedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, verifyLine(l, m, threshold))
	}
	return out
}

func verifyLine(l RequestedLine, m *menu, threshold float64) VerifiedLine {
	v := VerifiedLine{
		Name:      l.Name,
		Quantity:  l.Quantity,
		Price:     catalog.Deref(l.PriceHint),
		ID:        l.ID,
		Modifiers: []string{},
	}
	if v.Quantity <= 0 {
		v.Quantity = 1
	}

	name := strings.TrimSpace(l.Name)
	if name == "" {
		return v
	}

	// A name that is itself a menu item keeps words like "double" or "with".
	if hit, ok := m.equal(name); ok {
		return verified(v, hit)
	}

	base, mods := ExtractModifiers(name)
	v.Modifiers = mods
	if base == "" {
		return special(v, name)
	}

	if IsSpecialInstruction(base) {
		if hit, ok := m.find(base, threshold+specialRetryBoost); ok {
			return verified(v, hit)
		}
		return special(v, name)
	}

	if hit, ok := m.find(base, threshold); ok {
		return verified(v, hit)
	}

	v.Confidence, v.Suggestion = m.suggest(base, threshold)
	return v
}

func verified(v VerifiedLine, hit ItemMatch) VerifiedLine {
	v.Name = hit.Entry.Name
	v.Price = catalog.Deref(hit.Entry.Price)
	v.ID = hit.Entry.ID
	v.Verified = true
	v.Confidence = hit.Confidence
	if len(v.Modifiers) > 0 {
		v.SpecialInstructions = strings.Join(v.Modifiers, ", ")
	}
	return v
}

func special(v VerifiedLine, original string) VerifiedLine {
	v.Price = 0
	v.ID = ""
	v.Verified = false
	v.IsSpecialInstruction = true
	v.Confidence = 0
	v.SpecialInstructions = original
	return v
}

// queryText is the normalized form of s, or s lowercased when normalization
// leaves nothing.
func queryText(s string) string {
	if q := fuzzy.Normalize(s); q != "" {
		return q
	}
	return prepare(s)
}

func prepare(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func stripThe(s string) string {
	return strings.TrimPrefix(s, "the ")
}

// containsWords reports whether needle occurs in haystack on word boundaries.
func containsWords(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}

// Subtotal sums price times quantity over verified lines, rounded to cents.
func Subtotal(lines []VerifiedLine) float64 {
	total := 0.0
	for _, l := range lines {
		if l.Verified {
			total += l.Price * float64(l.Quantity)
		}
	}
	return roundCents(total)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
