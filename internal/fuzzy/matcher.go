// Package fuzzy resolves noisy, voice-transcribed text against known strings.
//
// The package has three layers. Normalize canonicalizes raw text. Similarity
// scores two strings with an ordered chain of heuristics. FindBestMatch and
// FindAllMatches rank candidates under a threshold that adapts to the length
// of the query.
//
// Every function is pure and reads only package-level tables that are never
// modified, so all of them are safe for concurrent use.
package fuzzy

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultThreshold is the base acceptance threshold used when callers do not
// supply one.
const DefaultThreshold = 0.5

// MatchResult is one scored candidate.
type MatchResult struct {
	MatchedText string  `json:"matchedText"`
	Similarity  float64 `json:"similarity"`
	// Index is the candidate's position in the slice that was searched.
	Index int `json:"index"`
}

// DynamicThreshold adjusts base for the shape of query. Short queries need a
// near-exact hit; long single words and long phrases are given more slack.
func DynamicThreshold(query string, base float64) float64 {
	q := strings.TrimSpace(query)
	length := utf8.RuneCountInString(q)
	words := len(strings.Fields(q))

	switch {
	case length <= 3:
		return max(base, 0.8)
	case length <= 5:
		return max(base, 0.7)
	case words == 1:
		return max(base-0.1, 0.4)
	case words > 2:
		return max(base-0.15, 0.35)
	default:
		return base
	}
}

// FindBestMatch returns the candidate most similar to query if it clears the
// dynamic threshold derived from DefaultThreshold.
func FindBestMatch(query string, candidates []string) (MatchResult, bool) {
	return FindBestMatchThreshold(query, candidates, DefaultThreshold)
}

// FindBestMatchThreshold is FindBestMatch with a caller-chosen base threshold.
// Ties go to the earliest candidate.
func FindBestMatchThreshold(query string, candidates []string, base float64) (MatchResult, bool) {
	if strings.TrimSpace(query) == "" || len(candidates) == 0 {
		return MatchResult{}, false
	}

	best := MatchResult{Index: -1}
	for i, c := range candidates {
		if score := Similarity(query, c); score > best.Similarity || best.Index < 0 {
			best = MatchResult{MatchedText: c, Similarity: score, Index: i}
		}
	}

	if best.Similarity < DynamicThreshold(query, base) {
		return MatchResult{}, false
	}
	return best, true
}

// FindAllMatches returns every candidate at or above the dynamic threshold
// for query, best first.
func FindAllMatches(query string, candidates []string) []MatchResult {
	return FindAllMatchesAbove(query, candidates, DynamicThreshold(query, DefaultThreshold))
}

// FindAllMatchesAbove returns every candidate scoring at least threshold,
// sorted by descending similarity with ties kept in candidate order. A
// threshold of zero ranks every candidate, including those scoring zero.
func FindAllMatchesAbove(query string, candidates []string, threshold float64) []MatchResult {
	if strings.TrimSpace(query) == "" || len(candidates) == 0 {
		return nil
	}

	var out []MatchResult
	for i, c := range candidates {
		if score := Similarity(query, c); score >= threshold {
			out = append(out, MatchResult{MatchedText: c, Similarity: score, Index: i})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	return out
}
