package order

import (
	"regexp"
	"strings"
)

const modifierWord = `[\p{L}\p{N}'-]+`

// modifierPatterns are tried in order; each strips its matches before the
// next one runs, so "without" must precede "with".
var modifierPatterns = compileModifiers(
	`without\s+`+modifierWord,
	`no\s+`+modifierWord,
	`extra\s+`+modifierWord,
	`light\s+`+modifierWord,
	`heavy\s+`+modifierWord,
	`double\s+`+modifierWord,
	`triple\s+`+modifierWord,
	`hold\s+the\s+`+modifierWord,
	`remove\s+`+modifierWord,
	`minus\s+`+modifierWord,
	`plus\s+`+modifierWord,
	`add\s+`+modifierWord,
	`with\s+`+modifierWord,
	`on\s+the\s+side`,
	`make\s+it\s+(?:an?\s+)?`+modifierWord,
)

// connectives left dangling once modifiers are cut out.
var connectives = map[string]struct{}{
	"with": {},
	"and":  {},
	"&":    {},
	"but":  {},
}

var reSeparators = regexp.MustCompile(`[,;:.!?]+`)

func compileModifiers(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)\b`+p+`\b`))
	}
	return out
}

// ExtractModifiers splits name into the item being ordered and the modifiers
// embedded in it. "latte with oat, no foam" gives base "latte" and modifiers
// "no foam" and "with oat", in pattern order. Modifiers are taken verbatim
// from name with whitespace collapsed.
func ExtractModifiers(name string) (string, []string) {
	work := reSeparators.ReplaceAllString(name, " ")
	mods := []string{}
	for _, re := range modifierPatterns {
		for _, m := range re.FindAllString(work, -1) {
			mods = append(mods, strings.Join(strings.Fields(m), " "))
		}
		work = re.ReplaceAllString(work, " ")
	}
	return cleanBase(work), mods
}

func cleanBase(s string) string {
	words := strings.Fields(s)
	for len(words) > 0 && isConnective(words[0]) {
		words = words[1:]
	}
	for len(words) > 0 && isConnective(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func isConnective(w string) bool {
	_, ok := connectives[strings.ToLower(w)]
	return ok
}
