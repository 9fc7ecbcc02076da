package fuzzy_test

import (
	"testing"

	"github.com/Ikanga93/ritt-ai-assistant/internal/fuzzy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicThreshold(t *testing.T) {
	tests := []struct {
		query string
		base  float64
		want  float64
	}{
		{"tea", 0.5, 0.8},
		{"tea", 0.9, 0.9},
		{"latte", 0.5, 0.7},
		{"americano", 0.5, 0.4},
		{"americano", 0.3, 0.4},
		{"iced latte", 0.5, 0.5},
		{"iced caramel latte", 0.5, 0.35},
		{"iced caramel latte", 0.7, 0.55},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, fuzzy.DynamicThreshold(tt.query, tt.base), 1e-9, "DynamicThreshold(%q, %v)", tt.query, tt.base)
	}
}

func TestFindBestMatch_Americano(t *testing.T) {
	got, ok := fuzzy.FindBestMatch("americano", []string{"Hot Americano", "Iced Latte", "Cappuccino"})

	require.True(t, ok)
	assert.Equal(t, "Hot Americano", got.MatchedText)
	assert.Equal(t, 0, got.Index)
	assert.GreaterOrEqual(t, got.Similarity, 0.65)
}

func TestFindBestMatch_EmptyInputs(t *testing.T) {
	_, ok := fuzzy.FindBestMatch("", []string{"Latte"})
	assert.False(t, ok)

	_, ok = fuzzy.FindBestMatch("latte", nil)
	assert.False(t, ok)
}

func TestFindBestMatch_TieGoesToEarliest(t *testing.T) {
	got, ok := fuzzy.FindBestMatch("latte", []string{"Latte", "latte"})

	require.True(t, ok)
	assert.Equal(t, 0, got.Index)
	assert.Equal(t, "Latte", got.MatchedText)
}

func TestFindBestMatch_ShortQueryNeedsNearExact(t *testing.T) {
	got, ok := fuzzy.FindBestMatch("tea", []string{"Thai Iced Tea"})
	require.True(t, ok)
	assert.Equal(t, "Thai Iced Tea", got.MatchedText)

	_, ok = fuzzy.FindBestMatch("tee", []string{"Coffee"})
	assert.False(t, ok)
}

func TestFindBestMatchThreshold_RejectsBelowThreshold(t *testing.T) {
	_, ok := fuzzy.FindBestMatchThreshold("xyzzyplonk", []string{"Cappuccino", "Latte"}, 0.5)
	assert.False(t, ok)
}

func TestFindAllMatches_SortedDescending(t *testing.T) {
	candidates := []string{"Iced Latte", "Latte", "Cappuccino", "Hot Latte"}

	got := fuzzy.FindAllMatches("latte", candidates)

	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 3, 0}, []int{got[0].Index, got[1].Index, got[2].Index})
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Similarity, got[i].Similarity)
	}
}

func TestFindAllMatchesAbove(t *testing.T) {
	candidates := []string{"Iced Latte", "Latte", "Cappuccino", "Hot Latte"}

	got := fuzzy.FindAllMatchesAbove("latte", candidates, 0.95)
	require.Len(t, got, 1)
	assert.Equal(t, "Latte", got[0].MatchedText)

	all := fuzzy.FindAllMatchesAbove("latte", candidates, 0)
	require.Len(t, all, len(candidates), "a zero threshold ranks every candidate")
	assert.Equal(t, "Latte", all[0].MatchedText)

	assert.Empty(t, fuzzy.FindAllMatchesAbove("", candidates, 0.1))
	assert.Empty(t, fuzzy.FindAllMatchesAbove("latte", nil, 0.1))
}
