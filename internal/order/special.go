package order

import (
	"regexp"
	"strings"
)

// specialKeywords mark text that is usually a request rather than a menu item.
var specialKeywords = []string{
	"napkin", "silverware", "utensil", "fork", "knife", "knives", "spoon", "straw", "lid",
	"condiment", "sauce", "ketchup", "mustard", "mayo", "ranch", "bbq",
	"salt", "pepper", "sugar", "cream", "milk", "honey", "syrup",
	"please", "extra", "without", "no", "add", "bag", "to go", "for here", "receipt", "change",
}

var reSpecial = compileKeywords(specialKeywords)

func compileKeywords(words []string) *regexp.Regexp {
	alts := make([]string, len(words))
	for i, w := range words {
		alts[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)(?:s|es)?\b`)
}

// IsSpecialInstruction reports whether text contains a special-instruction
// keyword as a whole word, plurals included.
func IsSpecialInstruction(text string) bool {
	return reSpecial.MatchString(text)
}
