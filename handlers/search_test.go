// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ideafork/ideafork-api/models"
	"github.com/ideafork/ideafork-api/store"
	"github.com/ideafork/ideafork-api/testutil"
)

func TestSearch(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewSearchHandler(st, testutil.GetTestConfig())

	base := time.Now().Add(-time.Hour)
	testutil.CreateTestPost(t, st, store.NewPost{Title: "Calendar sync is broken", CreatedAt: base})
	testutil.CreateTestBrief(t, st, store.NewBrief{Title: "Shared calendars", Summary: "Families want one calendar", CreatedAt: base.Add(time.Minute)})
	testutil.CreateTestProduct(t, st, store.NewProduct{Name: "Cron", Tagline: "Calendar for builders", CreatedAt: base.Add(2 * time.Minute)})
	testutil.CreateTestPost(t, st, store.NewPost{Title: "Unrelated", CreatedAt: base})

	testCases := []struct {
		name        string
		query       string
		wantStatus  int
		wantMessage string
		wantKinds   []string
	}{
		{
			name:       "matches every kind newest first",
			query:      "q=CALENDAR",
			wantStatus: http.StatusOK,
			wantKinds:  []string{models.KindProduct, models.KindBrief, models.KindPost},
		},
		{
			name:       "type filter",
			query:      "q=calendar&type=brief",
			wantStatus: http.StatusOK,
			wantKinds:  []string{models.KindBrief},
		},
		{
			name:       "wildcards are literal",
			query:      "q=%25",
			wantStatus: http.StatusOK,
			wantKinds:  []string{},
		},
		{
			name:        "missing q",
			query:       "q=++",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "q is required",
		},
		{
			name:        "q too long",
			query:       "q=" + strings.Repeat("a", maxQueryRunes+1),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "q is too long",
		},
		{
			name:        "unknown type",
			query:       "q=calendar&type=user",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "type must be one of: post, brief, product",
		},
		{
			name:        "only the new sort exists",
			query:       "q=calendar&sort=top",
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid sort",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve("GET /search", handler.Search,
				testutil.MakeRequest(http.MethodGet, "/search?"+tc.query, nil, nil))

			if tc.wantMessage != "" {
				testutil.AssertError(t, w, tc.wantStatus, tc.wantMessage)
				return
			}
			testutil.AssertStatus(t, w, tc.wantStatus)

			var resp models.ListResponse[models.SearchResult]
			testutil.AssertJSON(t, w, &resp)
			kinds := []string{}
			for _, r := range resp.Data {
				kinds = append(kinds, r.Kind)
			}
			assert.Equal(t, tc.wantKinds, kinds)
		})
	}
}
