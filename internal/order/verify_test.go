package order_test

import (
	"testing"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/Ikanga93/ritt-ai-assistant/internal/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMenu() []catalog.Entry {
	return []catalog.Entry{
		{ID: "q1", Name: "The Quickie", Price: catalog.Price(5.99), Category: "Coffee"},
		{ID: "a1", Name: "Hot Americano", Price: catalog.Price(3.50), Category: "Coffee"},
		{ID: "c1", Name: "Cappuccino", Price: catalog.Price(4.25), Category: "Coffee"},
		{ID: "l1", Name: "Iced Latte", Price: catalog.Price(4.75), Category: "Coffee"},
		{ID: "d1", Name: "Double Cheeseburger", Price: catalog.Price(7.99), Category: "Burgers"},
		{ID: "m1", Name: "Chocolate Milkshake", Price: catalog.Price(5.25), Category: "Shakes"},
		{ID: "bad1", Name: "", Price: catalog.Price(1.00)},
		{ID: "bad2", Name: "Mystery Brew"},
	}
}

func names(lines []order.VerifiedLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Name
	}
	return out
}

func TestVerify_NoOnionsIsSpecialInstruction(t *testing.T) {
	got := order.Verify([]order.RequestedLine{{Name: "no onions", Quantity: 1}}, sampleMenu(), 0)

	require.Len(t, got, 1)
	assert.True(t, got[0].IsSpecialInstruction)
	assert.False(t, got[0].Verified)
	assert.Equal(t, 0.0, got[0].Price)
	assert.Equal(t, "no onions", got[0].SpecialInstructions)
	assert.Equal(t, []string{"no onions"}, got[0].Modifiers)
	assert.Equal(t, order.StatusSpecial, got[0].Status())
}

func TestVerify_QuickieResolvesToCatalogName(t *testing.T) {
	menu := []catalog.Entry{{ID: "q1", Name: "The Quickie", Price: catalog.Price(5.99)}}

	got := order.Verify([]order.RequestedLine{{Name: "Quickie", Quantity: 2}}, menu, 0)

	require.Len(t, got, 1)
	assert.True(t, got[0].Verified)
	assert.False(t, got[0].IsSpecialInstruction)
	assert.Equal(t, "The Quickie", got[0].Name)
	assert.Equal(t, 5.99, got[0].Price)
	assert.Equal(t, "q1", got[0].ID)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Greater(t, got[0].Confidence, 0.0)
	assert.Less(t, got[0].Confidence, 1.0)
}

func TestVerify_UnknownItemHasNoFabricatedSuggestion(t *testing.T) {
	menu := sampleMenu()

	got := order.Verify([]order.RequestedLine{{Name: "Xyzzyplonk"}}, menu, 0)

	require.Len(t, got, 1)
	assert.False(t, got[0].Verified)
	assert.False(t, got[0].IsSpecialInstruction)
	assert.Equal(t, "Xyzzyplonk", got[0].Name)
	assert.Equal(t, 1, got[0].Quantity)
	if got[0].Suggestion != "" {
		assert.Contains(t, catalog.Names(menu), got[0].Suggestion)
	}
	assert.Equal(t, order.StatusUnverified, got[0].Status())
}

func TestVerify_ExactNameBeatsNormalizedCollision(t *testing.T) {
	menu := []catalog.Entry{
		{ID: "j1", Name: "Just Coffee", Price: catalog.Price(6.50)},
		{ID: "c1", Name: "Coffee", Price: catalog.Price(2.00)},
	}

	got := order.Verify([]order.RequestedLine{{Name: "Coffee"}}, menu, 0.5)

	require.Len(t, got, 1)
	assert.True(t, got[0].Verified)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "Coffee", got[0].Name)
	assert.Equal(t, 2.00, got[0].Price)
}

func TestVerify_ModifiersBecomeSpecialInstructions(t *testing.T) {
	got := order.Verify([]order.RequestedLine{{Name: "cappuccino with oat, no foam", Quantity: 1}}, sampleMenu(), 0)

	require.Len(t, got, 1)
	assert.True(t, got[0].Verified)
	assert.Equal(t, "Cappuccino", got[0].Name)
	assert.Equal(t, []string{"no foam", "with oat"}, got[0].Modifiers)
	assert.Equal(t, "no foam, with oat", got[0].SpecialInstructions)
}

func TestVerify_ItemNamesKeepModifierWords(t *testing.T) {
	got := order.Verify([]order.RequestedLine{{Name: "double cheeseburger"}}, sampleMenu(), 0)

	require.Len(t, got, 1)
	assert.True(t, got[0].Verified)
	assert.Equal(t, "Double Cheeseburger", got[0].Name)
	assert.Empty(t, got[0].Modifiers)
}

func TestVerify_KeywordRetryFindsMenuItem(t *testing.T) {
	require.True(t, order.IsSpecialInstruction("chocolate milk"))

	got := order.Verify([]order.RequestedLine{{Name: "chocolate milk"}, {Name: "chocolate milkshakes"}}, sampleMenu(), 0)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"Chocolate Milkshake", "Chocolate Milkshake"}, names(got))
	assert.True(t, got[0].Verified)
	assert.True(t, got[1].Verified)
}

func TestVerify_CondimentRequestIsSpecial(t *testing.T) {
	got := order.Verify([]order.RequestedLine{
		{Name: "ketchup packets please"},
		{Name: "ranch on the side"},
		{Name: "extra napkins"},
	}, sampleMenu(), 0)

	require.Len(t, got, 3)
	for _, l := range got {
		assert.True(t, l.IsSpecialInstruction, l.SpecialInstructions)
		assert.Equal(t, 0.0, l.Price)
		assert.False(t, l.Verified)
		assert.Empty(t, l.ID)
	}
	assert.Equal(t, []string{"on the side"}, got[1].Modifiers)
}

func TestVerify_FuzzyMatch(t *testing.T) {
	got := order.Verify([]order.RequestedLine{
		{Name: "can I get an americano please"},
		{Name: "capuccino"},
		{Name: "ice latte"},
	}, sampleMenu(), 0)

	assert.Equal(t, []string{"Hot Americano", "Cappuccino", "Iced Latte"}, names(got))
	for _, l := range got {
		assert.True(t, l.Verified, l.Name)
		assert.GreaterOrEqual(t, l.Confidence, 0.0)
		assert.LessOrEqual(t, l.Confidence, 1.0)
	}
}

func TestVerify_UnverifiedKeepsHintAndNeverDrops(t *testing.T) {
	lines := []order.RequestedLine{
		{Name: "Xyzzyplonk", Quantity: 3, PriceHint: catalog.Price(2.5), ID: "raw-1"},
		{Name: ""},
		{Name: "Cappuccino", Quantity: -4},
	}

	got := order.Verify(lines, sampleMenu(), 0.5)

	require.Len(t, got, 3)
	assert.Equal(t, 2.5, got[0].Price)
	assert.Equal(t, "raw-1", got[0].ID)
	assert.Equal(t, 3, got[0].Quantity)
	assert.False(t, got[1].Verified)
	assert.NotNil(t, got[1].Modifiers)
	assert.Equal(t, 1, got[2].Quantity)
}

func TestVerify_EmptyMenu(t *testing.T) {
	got := order.Verify([]order.RequestedLine{{Name: "latte"}}, nil, 0)

	require.Len(t, got, 1)
	assert.False(t, got[0].Verified)
	assert.Empty(t, got[0].Suggestion)
	assert.Equal(t, 0.0, got[0].Confidence)
}

func TestVerify_SuggestionWhenClearlyAhead(t *testing.T) {
	menu := []catalog.Entry{
		{ID: "b1", Name: "Blueberry Muffin", Price: catalog.Price(3.00)},
		{ID: "c1", Name: "Cappuccino", Price: catalog.Price(4.25)},
	}

	got := order.Verify([]order.RequestedLine{{Name: "bluebry mufn"}}, menu, 0.9)

	require.Len(t, got, 1)
	assert.False(t, got[0].Verified)
	assert.Equal(t, "Blueberry Muffin", got[0].Suggestion)
	assert.Equal(t, "bluebry mufn", got[0].Name)
}

func TestFindMenuItemByName(t *testing.T) {
	menu := sampleMenu()

	hit, ok := order.FindMenuItemByName("the cappuccino", menu, 0.5)
	require.True(t, ok)
	assert.Equal(t, "c1", hit.Entry.ID)
	assert.Equal(t, 2, hit.Index)

	hit, ok = order.FindMenuItemByName("americano", menu, 0.5)
	require.True(t, ok)
	assert.Equal(t, "a1", hit.Entry.ID)

	hit, ok = order.FindMenuItemByName("quickie", menu, 0.5)
	require.True(t, ok)
	assert.Equal(t, "q1", hit.Entry.ID)
	assert.Equal(t, 0, hit.Index)

	_, ok = order.FindMenuItemByName("mystery brew", menu, 0.5)
	assert.False(t, ok, "entries without a price are never matched")

	_, ok = order.FindMenuItemByName("", menu, 0.5)
	assert.False(t, ok)
}

func TestSubtotal(t *testing.T) {
	lines := []order.VerifiedLine{
		{Verified: true, Price: 5.99, Quantity: 2},
		{Verified: true, Price: 0.1, Quantity: 3},
		{IsSpecialInstruction: true, Price: 0, Quantity: 1},
		{Price: 9.99, Quantity: 1},
	}

	assert.Equal(t, 12.28, order.Subtotal(lines))
	assert.Equal(t, 0.0, order.Subtotal(nil))
}
