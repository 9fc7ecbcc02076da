package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoundsLike(t *testing.T) {
	i, score, ok := soundsLike("macdonalds", []string{"burger king", "mcdonalds"})

	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.GreaterOrEqual(t, score, minSoundsLike)
}

func TestSoundsLike_NoCandidate(t *testing.T) {
	_, _, ok := soundsLike("xyzzy", []string{"burger king", "taqueria el sol"})
	assert.False(t, ok)

	_, _, ok = soundsLike("", []string{"burger king"})
	assert.False(t, ok)
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Drinks", "drink"},
		{"Sandwiches", "sandwich"},
		{"Pastries", "pastry"},
		{"Glasses", "glass"},
		{"add-ons", "add on"},
		{"Soups & Salads", "soups and salad"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeCategory(tt.input), "normalizeCategory(%q)", tt.input)
	}
}

func TestCategoryMatcher(t *testing.T) {
	m := newCategoryMatcher("drinks")

	assert.True(t, m.matches("Beverages"))
	assert.True(t, m.matches("beverage"))
	assert.True(t, m.matches(" DRINKS "))
	assert.False(t, m.matches("Coffee"))
	assert.False(t, newCategoryMatcher("").matches("Coffee"))
}
