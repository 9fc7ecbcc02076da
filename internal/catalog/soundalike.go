package catalog

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// minSoundsLike is the Jaro-Winkler floor for a sounds-like hit.
const minSoundsLike = 0.85

// soundsLike picks the name whose Double Metaphone codes overlap the query's
// and whose Jaro-Winkler score is highest, if that score reaches
// minSoundsLike. Ties go to the earliest name.
func soundsLike(query string, names []string) (int, float64, bool) {
	qTokens := strings.Fields(strings.ToLower(query))
	if len(qTokens) == 0 {
		return 0, 0, false
	}
	qCodes := metaphoneCodes(qTokens)

	best, bestScore := -1, 0.0
	for i, name := range names {
		nTokens := strings.Fields(strings.ToLower(name))
		if len(nTokens) == 0 || !codesOverlap(qCodes, metaphoneCodes(nTokens)) {
			continue
		}
		score := jaroWinkler(qTokens, nTokens)
		if score >= minSoundsLike && score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return best, bestScore, true
}

func metaphoneCodes(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		p, s := matchr.DoubleMetaphone(t)
		if p != "" {
			codes[p] = struct{}{}
		}
		if s != "" {
			codes[s] = struct{}{}
		}
	}
	return codes
}

func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}

// jaroWinkler scores the phrases both as written and with spaces removed, so
// "micro dose" and "microdose" compare as equals.
func jaroWinkler(a, b []string) float64 {
	score := matchr.JaroWinkler(strings.Join(a, " "), strings.Join(b, " "), false)
	if len(a) > 1 || len(b) > 1 {
		if s := matchr.JaroWinkler(strings.Join(a, ""), strings.Join(b, ""), false); s > score {
			score = s
		}
	}
	return score
}
