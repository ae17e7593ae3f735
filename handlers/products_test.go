// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideafork/ideafork-api/models"
	"github.com/ideafork/ideafork-api/store"
	"github.com/ideafork/ideafork-api/testutil"
)

func TestListProducts_ByName(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewProductHandler(st, testutil.GetTestConfig())

	for _, name := range []string{"Notion", "Airtable", "Linear", "Obsidian", "Bear"} {
		testutil.CreateTestProduct(t, st, store.NewProduct{Name: name, Tags: []string{"notes"}})
	}

	var names []string
	cursor := ""
	for {
		req := testutil.MakeRequest(http.MethodGet, pagePath("/products", map[string]string{
			"sort": models.SortName, "limit": "2", "cursor": cursor,
		}), nil, nil)
		w := serve("GET /products", handler.List, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ListResponse[models.Product]
		testutil.AssertJSON(t, w, &resp)
		for _, p := range resp.Data {
			names = append(names, p.Name)
		}
		if !resp.Meta.HasNext {
			break
		}
		cursor = *resp.Meta.NextCursor
	}

	assert.Equal(t, []string{"Airtable", "Bear", "Linear", "Notion", "Obsidian"}, names)
}

func TestGetProductBySlug(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewProductHandler(st, testutil.GetTestConfig())
	product := testutil.CreateTestProduct(t, st, store.NewProduct{
		Name:       "Raycast",
		Tagline:    "Launcher",
		WebsiteURL: "https://raycast.com",
		Tags:       []string{"productivity", "macOS"},
	})
	require.Equal(t, "raycast", product.Slug)

	t.Run("found", func(t *testing.T) {
		w := serve("GET /products/{slug}", handler.GetBySlug,
			testutil.MakeRequest(http.MethodGet, "/products/raycast", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.DataResponse[models.Product]
		testutil.AssertJSON(t, w, &resp)
		assert.Equal(t, product.ID, resp.Data.ID)
		assert.Equal(t, []string{"macOS", "productivity"}, resp.Data.Tags)
	})

	t.Run("malformed slug", func(t *testing.T) {
		w := serve("GET /products/{slug}", handler.GetBySlug,
			testutil.MakeRequest(http.MethodGet, "/products/Bad_Slug", nil, nil))
		testutil.AssertError(t, w, http.StatusBadRequest, "Invalid product slug")
	})

	t.Run("unknown slug", func(t *testing.T) {
		w := serve("GET /products/{slug}", handler.GetBySlug,
			testutil.MakeRequest(http.MethodGet, "/products/nope", nil, nil))
		testutil.AssertError(t, w, http.StatusNotFound, "Product not found")
	})
}
