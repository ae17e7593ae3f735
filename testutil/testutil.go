// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ideafork/ideafork-api/auth"
	"github.com/ideafork/ideafork-api/cliparse"
	"github.com/ideafork/ideafork-api/db"
	"github.com/ideafork/ideafork-api/models"
	"github.com/ideafork/ideafork-api/store"
)

// TestDBURL is an in-memory SQLite database private to one connection
const TestDBURL = ":memory:"

// TestTokenSecret signs viewer tokens in tests
const TestTokenSecret = "test-viewer-secret"

// SetupTestStore creates a fresh in-memory database with the full schema
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.SQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return store.New(conn)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseURL:       TestDBURL,
		DatabaseType:      cliparse.DatabaseSQLite,
		ViewerTokenSecret: TestTokenSecret,
		DefaultPageSize:   20,
		TrendingWindow:    7 * 24 * time.Hour,
		LogLevel:          "error",
	}
}

// ViewerToken issues a bearer token for the given user and tier
func ViewerToken(t *testing.T, userID string, tier auth.Tier) string {
	t.Helper()

	token, err := auth.IssueViewerToken(userID, tier, TestTokenSecret)
	if err != nil {
		t.Fatalf("Failed to issue viewer token: %v", err)
	}
	return token
}

// BearerHeader returns request headers carrying a viewer token
func BearerHeader(t *testing.T, userID string, tier auth.Tier) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + ViewerToken(t, userID, tier)}
}

// CreateTestBrief inserts a brief and returns it
func CreateTestBrief(t *testing.T, st *store.Store, in store.NewBrief) models.Brief {
	t.Helper()

	if in.Title == "" {
		in.Title = "Test Brief"
	}
	if in.Summary == "" {
		in.Summary = "Users keep asking for this"
	}
	b, err := st.CreateBrief(context.Background(), in)
	if err != nil {
		t.Fatalf("Failed to create test brief: %v", err)
	}
	return b
}

// AddTestComplaints attaches n complaints to a brief, one minute apart
func AddTestComplaints(t *testing.T, st *store.Store, briefID string, n int) {
	t.Helper()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		_, err := st.AddComplaint(context.Background(), briefID, store.NewComplaint{
			Source:    "reddit",
			Excerpt:   "it keeps crashing",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Failed to add test complaint: %v", err)
		}
	}
}

// CreateTestPost inserts a post and returns it
func CreateTestPost(t *testing.T, st *store.Store, in store.NewPost) models.Post {
	t.Helper()

	if in.Title == "" {
		in.Title = "Test Post"
	}
	p, err := st.CreatePost(context.Background(), in)
	if err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return p
}

// CreateTestProduct inserts a product and returns it
func CreateTestProduct(t *testing.T, st *store.Store, in store.NewProduct) models.Product {
	t.Helper()

	if in.Name == "" {
		in.Name = "Test Product"
	}
	p, err := st.CreateProduct(context.Background(), in)
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return p
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertError decodes an error envelope and checks its message
func AssertError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	AssertStatus(t, w, status)

	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Message != message {
		t.Errorf("Expected message %q, got %q", message, resp.Message)
	}
}
