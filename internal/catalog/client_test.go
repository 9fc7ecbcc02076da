package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ikanga93/ritt-ai-assistant/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogServer(t *testing.T, restaurants []catalog.Restaurant, menus map[string][]catalog.Category) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/restaurants" {
			assert.Empty(t, r.Header.Get("X-Restaurant-ID"))
			json.NewEncoder(w).Encode(catalog.RestaurantsResponse{Restaurants: restaurants})
			return
		}
		for id, menu := range menus {
			if r.URL.Path == "/restaurants/"+id+"/menu" {
				assert.Equal(t, id, r.Header.Get("X-Restaurant-ID"), "X-Restaurant-ID header mismatch")
				json.NewEncoder(w).Encode(catalog.MenuResponse{RestaurantID: id, Menu: menu})
				return
			}
		}
		http.NotFound(w, r)
	}))
}

func TestFetchRestaurants(t *testing.T) {
	srv := newTestCatalogServer(t, []catalog.Restaurant{
		{ID: "micro-dose", Name: "Micro Dose Coffee"},
		{ID: "bk-12", Name: "Burger King"},
	}, nil)
	defer srv.Close()

	client := catalog.NewClient(srv.URL + "/")
	result, err := client.FetchRestaurants(context.Background())

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Micro Dose Coffee", result[0].Name)
}

func TestFetchMenu(t *testing.T) {
	srv := newTestCatalogServer(t, nil, map[string][]catalog.Category{
		"micro-dose": {{Name: "Coffee", Items: []catalog.Entry{{ID: "q1", Name: "The Quickie", Price: catalog.Price(5.99)}}}},
	})
	defer srv.Close()

	client := catalog.NewClient(srv.URL)
	menu, err := client.FetchMenu(context.Background(), "micro-dose")

	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "The Quickie", menu[0].Items[0].Name)
}

func TestFetchFile(t *testing.T) {
	srv := newTestCatalogServer(t,
		[]catalog.Restaurant{{ID: "micro-dose", Name: "Micro Dose Coffee"}},
		map[string][]catalog.Category{
			"micro-dose": {{Name: "Coffee", Items: []catalog.Entry{{ID: "q1", Name: "The Quickie", Price: catalog.Price(5.99)}}}},
		})
	defer srv.Close()

	cf, err := catalog.NewClient(srv.URL).FetchFile(context.Background())

	require.NoError(t, err)
	require.Len(t, cf.Restaurants, 1)
	items := cf.Restaurants[0].Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Coffee", items[0].Category)
}

func TestFetchMenu_NotFound(t *testing.T) {
	srv := newTestCatalogServer(t, nil, nil)
	defer srv.Close()

	_, err := catalog.NewClient(srv.URL).FetchMenu(context.Background(), "nope")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	var fetchErr *catalog.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, "fetching menu for nope", fetchErr.Op)
}

func TestFetchRestaurants_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := catalog.NewClient(srv.URL).FetchRestaurants(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchRestaurants_TrailingJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"restaurants":[]}{"restaurants":[]}`))
	}))
	defer srv.Close()

	_, err := catalog.NewClient(srv.URL).FetchRestaurants(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing JSON content")
	var fetchErr *catalog.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
}
