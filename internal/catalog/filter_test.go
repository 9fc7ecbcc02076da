package catalog_test

import (
	"testing"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []catalog.Entry {
	return []catalog.Entry{
		{ID: "q1", Name: "The Quickie", Price: catalog.Price(5.99), Category: "Coffee"},
		{ID: "a1", Name: "Hot Americano", Price: catalog.Price(3.50), Category: "Coffee"},
		{ID: "t1", Name: "Thai Iced Tea", Price: catalog.Price(4.25), Category: "Beverages"},
		{ID: "x1", Name: "Mystery Brew", Category: "Beverages"},
		{ID: "c1", Name: "Café Mocha", Price: catalog.Price(4.75), Category: "Coffee"},
	}
}

func ids(items []catalog.Entry) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.ID
	}
	return out
}

func TestFilter_NoOptions(t *testing.T) {
	assert.Len(t, catalog.Filter(sampleItems(), catalog.Options{}), 5)
}

func TestFilter_CategorySynonym(t *testing.T) {
	result := catalog.Filter(sampleItems(), catalog.Options{Category: "drinks"})
	assert.Equal(t, []string{"t1", "x1"}, ids(result))
}

func TestFilter_Query(t *testing.T) {
	result := catalog.Filter(sampleItems(), catalog.Options{Query: "the QUICKIE"})
	assert.Equal(t, []string{"q1"}, ids(result))

	result = catalog.Filter(sampleItems(), catalog.Options{Query: "cafe"})
	assert.Equal(t, []string{"c1"}, ids(result))
}

func TestFilter_MaxPriceDropsUnpriced(t *testing.T) {
	result := catalog.Filter(sampleItems(), catalog.Options{MaxPrice: 4.5})
	assert.Equal(t, []string{"a1", "t1"}, ids(result))
}

func TestFilter_SortAndLimit(t *testing.T) {
	result := catalog.Filter(sampleItems(), catalog.Options{Sort: "cheapest", Limit: 2})
	assert.Equal(t, []string{"a1", "t1"}, ids(result))
}

func TestSort(t *testing.T) {
	items := sampleItems()

	assert.Equal(t, []string{"q1", "c1", "t1", "a1", "x1"}, ids(catalog.Sort(items, "price-desc")))
	assert.Equal(t, []string{"c1", "a1", "x1", "t1", "q1"}, ids(catalog.Sort(items, "name")))
	assert.Equal(t, []string{"t1", "x1", "q1", "a1", "c1"}, ids(catalog.Sort(items, "category")))
	assert.Equal(t, ids(items), ids(catalog.Sort(items, "bogus")))
	assert.Equal(t, "q1", items[0].ID, "Sort must not reorder its input")
}

func TestNormalizeSortMode(t *testing.T) {
	assert.Equal(t, catalog.SortPrice, catalog.NormalizeSortMode(" Cheapest "))
	assert.Equal(t, catalog.SortPriceDesc, catalog.NormalizeSortMode("expensive"))
	assert.Equal(t, catalog.SortMenu, catalog.NormalizeSortMode("relevance"))
}

func TestCategories(t *testing.T) {
	cats := catalog.Categories(sampleItems())

	require.Len(t, cats, 2)
	assert.Equal(t, 3, cats["Coffee"])
	assert.Equal(t, 2, cats["Beverages"])
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"The Quickie", "Hot Americano", "Thai Iced Tea", "Mystery Brew", "Café Mocha"}, catalog.Names(sampleItems()))
}
