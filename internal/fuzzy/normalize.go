package fuzzy

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type substitution struct {
	from string
	to   string
	re   *regexp.Regexp
}

// substitutionTable is applied in order; each entry sees the output of the ones
// before it. Multi-word entries must precede their sub-word variants.
var substitutionTable = compileSubstitutions([][2]string{
	// filler phrases
	{"can i please have", ""},
	{"can i please get", ""},
	{"can i have", ""},
	{"can i get", ""},
	{"could i have", ""},
	{"could i get", ""},
	{"may i have", ""},
	{"may i get", ""},
	{"i would like to order", ""},
	{"i would like", ""},
	{"i'd like", ""},
	{"id like", ""},
	{"i want to order", ""},
	{"i want", ""},
	{"i will have", ""},
	{"i'll have", ""},
	{"ill have", ""},
	{"i will take", ""},
	{"i'll take", ""},
	{"let me get", ""},
	{"let me have", ""},
	{"give me", ""},
	{"get me", ""},
	{"thank you", ""},
	{"thanks", ""},
	{"please", ""},

	// multi-word misspellings before their single-word variants
	{"ice tea", "iced tea"},
	{"ice coffee", "iced coffee"},
	{"ice latte", "iced latte"},
	{"ice americano", "iced americano"},
	{"cheese burger", "cheeseburger"},
	{"ham burger", "hamburger"},
	{"milk shake", "milkshake"},
	{"hotdog", "hot dog"},
	{"french fry", "french fries"},

	// misspellings and mishearings
	{"expresso", "espresso"},
	{"expreso", "espresso"},
	{"esspresso", "espresso"},
	{"capuccino", "cappuccino"},
	{"cappucino", "cappuccino"},
	{"cappuchino", "cappuccino"},
	{"capuchino", "cappuccino"},
	{"capachino", "cappuccino"},
	{"frapuccino", "frappuccino"},
	{"frappucino", "frappuccino"},
	{"machiato", "macchiato"},
	{"macchiatto", "macchiato"},
	{"makiato", "macchiato"},
	{"americanno", "americano"},
	{"lattay", "latte"},
	{"lahtay", "latte"},
	{"moka", "mocha"},
	{"mocca", "mocha"},
	{"croisant", "croissant"},
	{"crossant", "croissant"},
	{"sandwhich", "sandwich"},
	{"sanwich", "sandwich"},
	{"samich", "sandwich"},
	{"burito", "burrito"},
	{"quesadia", "quesadilla"},
	{"kesadilla", "quesadilla"},
	{"halapeno", "jalapeno"},
	{"nachoes", "nachos"},
	{"frys", "fries"},
	{"smoothy", "smoothie"},
	{"lemonaid", "lemonade"},
	{"exspresso", "espresso"},

	// short abbreviations
	{"sm", "small"},
	{"sml", "small"},
	{"med", "medium"},
	{"md", "medium"},
	{"lg", "large"},
	{"lrg", "large"},
	{"xl", "extra large"},
	{"reg", "regular"},
	{"dbl", "double"},
	{"choc", "chocolate"},
	{"decaff", "decaf"},
})

// fillerTokens are dropped wherever they appear as whole words.
var fillerTokens = map[string]struct{}{
	"um":        {},
	"umm":       {},
	"uh":        {},
	"uhh":       {},
	"uhm":       {},
	"er":        {},
	"erm":       {},
	"hmm":       {},
	"like":      {},
	"just":      {},
	"so":        {},
	"okay":      {},
	"ok":        {},
	"yeah":      {},
	"actually":  {},
	"basically": {},
	"maybe":     {},
}

var leadingArticles = []string{"a", "an", "the"}

var (
	stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	rePunct      = regexp.MustCompile(`[^\p{L}\p{N}\s'-]+`)
)

func compileSubstitutions(pairs [][2]string) []substitution {
	out := make([]substitution, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, substitution{
			from: p[0],
			to:   p[1],
			re:   regexp.MustCompile(wordBoundaryPattern(p[0])),
		})
	}
	return out
}

// wordBoundaryPattern anchors literal at word boundaries, skipping the anchor
// on a side that starts or ends with a non-word character.
func wordBoundaryPattern(literal string) string {
	pattern := regexp.QuoteMeta(literal)
	if literal != "" && isWordByte(literal[0]) {
		pattern = `\b` + pattern
	}
	if literal != "" && isWordByte(literal[len(literal)-1]) {
		pattern += `\b`
	}
	return pattern
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// CleanText unescapes HTML entities and normalizes line breaks to spaces.
func CleanText(s string) string {
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// FoldAccents lowercases s and strips combining marks (é -> e).
func FoldAccents(s string) string {
	out, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Normalize canonicalizes transcribed text for matching: lowercase, accent
// folding, substitution table, filler removal, leading-article removal and
// whitespace collapsing. The pipeline runs to a fixed point so the result is
// stable under repeated normalization.
func Normalize(text string) string {
	s := CleanText(text)
	if s == "" {
		return ""
	}
	s = FoldAccents(s)
	s = rePunct.ReplaceAllString(s, " ")
	s = collapseSpaces(s)

	// Terminates: no substitution target matches any source, so a pass only
	// changes the text again after an earlier pass deleted something.
	for {
		next := normalizePass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func normalizePass(s string) string {
	for _, sub := range substitutionTable {
		if !strings.Contains(s, sub.from) {
			continue
		}
		s = sub.re.ReplaceAllString(s, sub.to)
	}
	s = dropFillers(s)
	return trimLeadingArticles(s)
}

func dropFillers(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if _, filler := fillerTokens[w]; filler {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func trimLeadingArticles(s string) string {
	words := strings.Fields(s)
	for len(words) > 1 && isArticle(words[0]) {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

func isArticle(w string) bool {
	for _, a := range leadingArticles {
		if w == a {
			return true
		}
	}
	return false
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
