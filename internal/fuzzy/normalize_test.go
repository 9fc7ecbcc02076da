package fuzzy_test

import (
	"strings"
	"testing"

	"github.com/Ikanga93/ritt-ai-assistant/internal/fuzzy"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_RemovesFillerAndFixesSpelling(t *testing.T) {
	got := fuzzy.Normalize("Can I have a expresso please")

	assert.Contains(t, got, "espresso")
	assert.NotContains(t, got, "please")
	assert.NotContains(t, got, "can i have")
	assert.Equal(t, "espresso", got)
}

func TestNormalize_Table(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"Um, I'd like a LG latte, thanks", "large latte"},
		{"uh so just a sm cappucino", "small cappuccino"},
		{"Café Mocha", "cafe mocha"},
		{"JALAPEÑO poppers", "jalapeno poppers"},
		{"ice tea", "iced tea"},
		{"the the Quickie", "quickie"},
		{"Mac &amp; Cheese", "mac cheese"},
		{"Hot\r\nAmericano", "hot americano"},
		{"give me a cheese burger", "cheeseburger"},
		{"medium", "medium"},
		{"a", "a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fuzzy.Normalize(tt.input), "Normalize(%q)", tt.input)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Can I have a expresso please",
		"can i can i have have a latte",
		"the a the burger",
		"Mac &amp;amp; Cheese",
		"I'd like an XL ice coffee, um, with like extra sugar",
		"   Thai Iced Tea   ",
		"sm med lg xl",
		"please please please",
		"Crème Brûlée",
		"frys and a hotdog",
		strings.Repeat("can i ", 7) + strings.Repeat("have ", 7) + "latte",
		"um ice um tea",
		"",
	}
	for _, in := range inputs {
		once := fuzzy.Normalize(in)
		assert.Equal(t, once, fuzzy.Normalize(once), "Normalize not stable for %q", in)
	}
}

func TestNormalize_NestedFillerPeelsFully(t *testing.T) {
	in := strings.Repeat("can i ", 7) + strings.Repeat("have ", 7) + "latte"

	assert.Equal(t, "latte", fuzzy.Normalize(in))
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello &amp; World", "Hello & World"},
		{"Line1\r\nLine2", "Line1 Line2"},
		{"  spaces  ", "spaces"},
		{"Eight O&#39;Clock", "Eight O'Clock"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fuzzy.CleanText(tt.input), "CleanText(%q)", tt.input)
	}
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "creme brulee", fuzzy.FoldAccents("Crème Brûlée"))
	assert.Equal(t, "latte", fuzzy.FoldAccents("LATTE"))
}
