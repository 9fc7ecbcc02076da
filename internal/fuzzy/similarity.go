package fuzzy

import (
	"strings"
	"unicode/utf8"
)

// Step names the heuristic that produced a similarity score.
type Step string

const (
	StepEmpty        Step = "empty"
	StepExact        Step = "exact"
	StepAbbreviation Step = "abbreviation"
	StepSubstring    Step = "substring"
	StepFirstWord    Step = "first-word"
	StepWordOrder    Step = "word-order"
	StepPhonetic     Step = "phonetic"
	StepWordOverlap  Step = "word-overlap"
	StepEditDistance Step = "edit-distance"
)

// scoreStep reports a score and whether it should end the chain.
type scoreStep struct {
	step  Step
	score func(a, b string) (float64, bool)
}

// similaritySteps run in order; the first one that accepts wins. The last
// step always accepts.
var similaritySteps = []scoreStep{
	{StepExact, exactScore},
	{StepAbbreviation, abbreviationStep},
	{StepSubstring, substringScore},
	{StepFirstWord, firstWordScore},
	{StepWordOrder, wordOrderScore},
	{StepPhonetic, phoneticScore},
	{StepWordOverlap, wordOverlapScore},
	{StepEditDistance, editDistanceScore},
}

// Similarity scores how alike a and b are, in [0, 1]. Only inputs that are
// identical after lowercasing and whitespace collapsing score 1. The result
// depends on argument order: pass the query first and the candidate second.
func Similarity(a, b string) float64 {
	score, _ := Explain(a, b)
	return score
}

// Explain is Similarity that also reports which step produced the score.
func Explain(a, b string) (float64, Step) {
	a, b = prepare(a), prepare(b)
	if a == "" || b == "" {
		return 0, StepEmpty
	}
	for _, s := range similaritySteps {
		if score, ok := s.score(a, b); ok {
			return clamp01(score), s.step
		}
	}
	return 0, StepEditDistance
}

func prepare(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func exactScore(a, b string) (float64, bool) {
	return 1, a == b
}

func abbreviationStep(a, b string) (float64, bool) {
	score := max(abbreviationScore(a, b), abbreviationScore(b, a))
	if score == 0 {
		return 0, false
	}
	// A containment hit never scores lower than the substring step would.
	if sub, ok := substringScore(a, b); ok {
		score = max(score, sub)
	}
	return score, true
}

// abbreviationScore checks whether short is an initialism of long's words.
func abbreviationScore(short, long string) float64 {
	if strings.Contains(short, " ") {
		return 0
	}
	words := strings.Fields(long)
	letters := []rune(short)
	if len(words) < 2 || len(letters) < 2 {
		return 0
	}

	initials := make([]rune, 0, len(words))
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		initials = append(initials, r)
	}
	if string(letters) == string(initials) {
		return 0.9
	}

	matched, next := 0, 0
	for _, r := range letters {
		for j := next; j < len(initials); j++ {
			if initials[j] == r {
				matched++
				next = j + 1
				break
			}
		}
	}
	ratio := float64(matched) / float64(len(letters))
	if ratio < 0.7 {
		return 0
	}
	return 0.7 + 0.2*(ratio-0.7)/0.3
}

func substringScore(a, b string) (float64, bool) {
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return 0, false
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	return 0.85 + 0.1*float64(min(la, lb))/float64(max(la, lb)), true
}

func firstWordScore(a, b string) (float64, bool) {
	fa, fb := firstWord(a), firstWord(b)
	if fa == "" || fb == "" {
		return 0, false
	}
	if fa == fb {
		return 0.75, true
	}
	shorter := min(utf8.RuneCountInString(fa), utf8.RuneCountInString(fb))
	if shorter > 2 && (strings.Contains(fa, fb) || strings.Contains(fb, fa)) {
		return 0.75, true
	}
	return 0, false
}

// firstWord returns the first token that is not a leading article.
func firstWord(s string) string {
	words := strings.Fields(s)
	for len(words) > 1 && isArticle(words[0]) {
		words = words[1:]
	}
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

func wordOrderScore(a, b string) (float64, bool) {
	ta, tb := tokens(a, 1), tokens(b, 1)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, false
	}

	used := make([]bool, len(tb))
	credit := 0.0
	for _, wa := range ta {
		bestIdx, bestCredit := -1, 0.0
		for j, wb := range tb {
			if used[j] {
				continue
			}
			if c := pairCredit(wa, wb); c > bestCredit {
				bestIdx, bestCredit = j, c
				if c == 1 {
					break
				}
			}
		}
		if bestIdx >= 0 {
			used[bestIdx] = true
			credit += bestCredit
		}
	}

	longest := float64(max(len(ta), len(tb)))
	shortest := float64(min(len(ta), len(tb)))
	score := min(0.6*(credit/longest)+0.4*(credit/shortest), 0.95)
	return score, score > 0.6
}

// pairCredit scores one token pairing for word-order matching.
func pairCredit(wa, wb string) float64 {
	if wa == wb {
		return 1
	}
	shorter := min(utf8.RuneCountInString(wa), utf8.RuneCountInString(wb))
	if shorter > 3 && (strings.Contains(wa, wb) || strings.Contains(wb, wa)) {
		return 0.8
	}
	if ps := PhoneticSimilarity(wa, wb); ps > 0.8 {
		return ps * 0.9
	}
	return 0
}

func phoneticScore(a, b string) (float64, bool) {
	raw := PhoneticSimilarity(a, b)
	return raw * 0.9, raw > 0.8
}

func wordOverlapScore(a, b string) (float64, bool) {
	ta, tb := tokens(a, 2), tokens(b, 2)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, false
	}
	matches := 0
	for _, wa := range ta {
		for _, wb := range tb {
			if strings.Contains(wa, wb) || strings.Contains(wb, wa) {
				matches++
				break
			}
		}
	}
	ratio := float64(matches) / float64(len(ta))
	return 0.65 + 0.25*ratio, ratio > 0.3
}

func editDistanceScore(a, b string) (float64, bool) {
	return 1 - normalizedDistance(a, b), true
}

// tokens splits s on whitespace and keeps words longer than minLen runes.
func tokens(s string, minLen int) []string {
	words := strings.Fields(s)
	out := words[:0]
	for _, w := range words {
		if utf8.RuneCountInString(w) > minLen {
			out = append(out, w)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
