// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ideafork/ideafork-api/auth"
	"github.com/ideafork/ideafork-api/cursor"
	"github.com/ideafork/ideafork-api/middleware"
	"github.com/ideafork/ideafork-api/store"
	"github.com/ideafork/ideafork-api/testutil"
)

// serve routes req through a mux holding a single pattern so path values resolve
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, middleware.WithViewer(testutil.TestTokenSecret)(h))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

// pagePath appends list parameters to path
func pagePath(path string, params map[string]string) string {
	v := url.Values{}
	for k, val := range params {
		if val != "" {
			v.Set(k, val)
		}
	}
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

func viewerWithTier(tier string) auth.Viewer {
	if tier == string(auth.TierAnonymous) {
		return auth.Anonymous
	}
	return auth.Viewer{UserID: "user-1", Tier: auth.Tier(tier)}
}

func TestParseListParams(t *testing.T) {
	testCases := []struct {
		name      string
		query     string
		tier      string
		wantLimit int
		wantErr   bool
	}{
		{name: "default", query: "", tier: "anonymous", wantLimit: 20},
		{name: "explicit", query: "limit=5", tier: "anonymous", wantLimit: 5},
		{name: "zero means default", query: "limit=0", tier: "anonymous", wantLimit: 20},
		{name: "negative means default", query: "limit=-3", tier: "free", wantLimit: 20},
		{name: "anonymous clamp", query: "limit=500", tier: "anonymous", wantLimit: 20},
		{name: "free clamp", query: "limit=500", tier: "free", wantLimit: 50},
		{name: "pro clamp", query: "limit=500", tier: "pro", wantLimit: 100},
		{name: "pro under max", query: "limit=75", tier: "pro", wantLimit: 75},
		{name: "not a number", query: "limit=ten", tier: "pro", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/posts?"+tc.query, nil)
			viewer := viewerWithTier(tc.tier)

			p, err := parseListParams(req, 20, viewer)
			if tc.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if p.Limit != tc.wantLimit {
				t.Errorf("Expected limit %d, got %d", tc.wantLimit, p.Limit)
			}
		})
	}
}

func TestWriteStoreError(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"brief missing", store.ErrBriefNotFound, http.StatusNotFound, "Brief not found"},
		{"rating missing", fmt.Errorf("update: %w", store.ErrRatingNotFound), http.StatusNotFound, "Rating not found"},
		{"rating exists", store.ErrRatingExists, http.StatusConflict, "Rating already exists"},
		{"concurrent vote", fmt.Errorf("concurrent vote: %w", store.ErrConflict), http.StatusConflict, "Conflicting update, try again"},
		{"bad sort", fmt.Errorf("%w: %q", store.ErrInvalidSort, "hot"), http.StatusBadRequest, "Invalid sort"},
		{"bad cursor", cursor.ErrInvalid, http.StatusBadRequest, "Invalid cursor"},
		{"anything else", errors.New("disk I/O error"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeStoreError(w, tc.err, "test")
			testutil.AssertError(t, w, tc.status, tc.message)
		})
	}
}
