// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideafork/ideafork-api/models"
	"github.com/ideafork/ideafork-api/store"
	"github.com/ideafork/ideafork-api/testutil"
)

func TestTrendingTags(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewTagHandler(st, testutil.GetTestConfig())

	testutil.CreateTestPost(t, st, store.NewPost{Tags: []string{"ai", "notes"}})
	testutil.CreateTestPost(t, st, store.NewPost{Tags: []string{"ai"}})
	// Outside the trending window
	testutil.CreateTestPost(t, st, store.NewPost{
		Tags:      []string{"retro", "notes"},
		CreatedAt: time.Now().Add(-30 * 24 * time.Hour),
	})

	w := serve("GET /tags/trending", handler.Trending,
		testutil.MakeRequest(http.MethodGet, "/tags/trending", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DataResponse[[]models.TagCount]
	testutil.AssertJSON(t, w, &resp)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "ai", resp.Data[0].Slug)
	assert.Equal(t, 2, resp.Data[0].Count)
	assert.Equal(t, "notes", resp.Data[1].Slug)
	assert.Equal(t, 1, resp.Data[1].Count)

	t.Run("limit", func(t *testing.T) {
		w := serve("GET /tags/trending", handler.Trending,
			testutil.MakeRequest(http.MethodGet, "/tags/trending?limit=1", nil, nil))
		testutil.AssertJSON(t, w, &resp)
		assert.Len(t, resp.Data, 1)
	})

	t.Run("bad limit", func(t *testing.T) {
		w := serve("GET /tags/trending", handler.Trending,
			testutil.MakeRequest(http.MethodGet, "/tags/trending?limit=x", nil, nil))
		testutil.AssertError(t, w, http.StatusBadRequest, "limit must be an integer")
	})
}

func TestTagsByProducts(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewTagHandler(st, testutil.GetTestConfig())

	testutil.CreateTestProduct(t, st, store.NewProduct{Name: "Alpha", Tags: []string{"crm", "sales"}})
	testutil.CreateTestProduct(t, st, store.NewProduct{Name: "Beta", Tags: []string{"sales"}})
	testutil.CreateTestPost(t, st, store.NewPost{Tags: []string{"unused-by-products"}})

	w := serve("GET /tags/by-products", handler.ByProducts,
		testutil.MakeRequest(http.MethodGet, "/tags/by-products", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.DataResponse[[]models.TagCount]
	testutil.AssertJSON(t, w, &resp)

	got := map[string]int{}
	for _, tc := range resp.Data {
		got[tc.Slug] = tc.Count
	}
	assert.Equal(t, map[string]int{"sales": 2, "crm": 1}, got)
	assert.Equal(t, "sales", resp.Data[0].Slug)
}
