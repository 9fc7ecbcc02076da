package fuzzy

import (
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// phoneticFolds collapse sound-alike spellings. Applied in order, so longer
// clusters come before the single letters they contain.
var phoneticFolds = [][2]string{
	{"tch", "ch"},
	{"ph", "f"},
	{"ff", "f"},
	{"ck", "k"},
	{"ch", "k"},
	{"wh", "w"},
	{"wr", "r"},
	{"kn", "n"},
	{"qu", "kw"},
	{"q", "k"},
	{"x", "ks"},
	{"ee", "i"},
	{"ea", "i"},
	{"ie", "i"},
	{"oo", "u"},
	{"ou", "u"},
	{"z", "s"},
	{"c", "k"},
	{"y", "i"},
	{"ll", "l"},
	{"ss", "s"},
	{"tt", "t"},
	{"pp", "p"},
	{"rr", "r"},
	{"mm", "m"},
	{"nn", "n"},
}

// PhoneticFold rewrites s with the sound-alike table.
func PhoneticFold(s string) string {
	s = strings.ToLower(s)
	for _, f := range phoneticFolds {
		s = strings.ReplaceAll(s, f[0], f[1])
	}
	return s
}

// PhoneticSimilarity compares the folded forms of a and b: 1 when they fold
// to the same string, otherwise one minus their normalized edit distance.
func PhoneticSimilarity(a, b string) float64 {
	fa, fb := PhoneticFold(a), PhoneticFold(b)
	if fa == fb {
		return 1
	}
	return 1 - normalizedDistance(fa, fb)
}

// Levenshtein is the edit distance between a and b counted in runes.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	return matchr.Levenshtein(a, b)
}

// normalizedDistance is Levenshtein(a, b) over the longer rune length.
func normalizedDistance(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	return float64(Levenshtein(a, b)) / float64(longest)
}
