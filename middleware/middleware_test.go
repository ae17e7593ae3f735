// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideafork/ideafork-api/models"
)

func TestWithLogging(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"implicit OK", 0, "ok"},
		{"created", http.StatusCreated, `{"id":"123"}`},
		{"bad request", http.StatusBadRequest, `{"error":"Bad Request"}`},
		{"not found", http.StatusNotFound, "not found"},
		{"internal error", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				called = true
				if tc.statusCode != 0 {
					w.WriteHeader(tc.statusCode)
				}
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest(http.MethodGet, "/briefs", nil)
			w := httptest.NewRecorder()
			handler(w, req)

			want := tc.statusCode
			if want == 0 {
				want = http.StatusOK
			}
			assert.True(t, called, "handler should run")
			assert.Equal(t, want, w.Code)
			assert.Equal(t, tc.body, w.Body.String())
		})
	}
}

func TestRecover(t *testing.T) {
	t.Run("panic becomes 500", func(t *testing.T) {
		handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var resp models.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Internal server error", resp.Message)
	})

	t.Run("no panic passes through", func(t *testing.T) {
		handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts", nil))
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("abort handler is re-raised", func(t *testing.T) {
		handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}

func TestJSONResponse(t *testing.T) {
	next := "abc"
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "vote response",
			statusCode: http.StatusOK,
			data:       models.VoteResponse{PostID: "p1", Direction: "up", Upvotes: 2, Downvotes: 1, Score: 1},
			expected:   `{"post_id":"p1","direction":"up","upvotes":2,"downvotes":1,"score":1}`,
		},
		{
			name:       "last page has null cursor",
			statusCode: http.StatusOK,
			data:       models.ListResponse[string]{Data: []string{}, Meta: models.PageMeta{}},
			expected:   `{"data":[],"meta":{"has_next":false,"next_cursor":null}}`,
		},
		{
			name:       "page with cursor",
			statusCode: http.StatusOK,
			data:       models.ListResponse[string]{Data: []string{"a"}, Meta: models.PageMeta{HasNext: true, NextCursor: &next}},
			expected:   `{"data":["a"],"meta":{"has_next":true,"next_cursor":"abc"}}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusBadRequest,
			data:       models.ErrorResponse{Error: "Bad Request", Message: "Invalid cursor"},
			expected:   `{"error":"Bad Request","message":"Invalid cursor"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			assert.Equal(t, tc.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tc.expected, strings.TrimSpace(w.Body.String()))
		})
	}
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		message       string
		expectedError string
	}{
		{"bad request", http.StatusBadRequest, "Invalid brief id", "Bad Request"},
		{"unauthorized", http.StatusUnauthorized, "Sign in to vote", "Unauthorized"},
		{"not found", http.StatusNotFound, "Brief not found", "Not Found"},
		{"conflict", http.StatusConflict, "Rating already exists", "Conflict"},
		{"internal error", http.StatusInternalServerError, "Internal server error", "Internal Server Error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			ErrorResponse(w, tc.statusCode, tc.message)

			assert.Equal(t, tc.statusCode, w.Code)
			var resp models.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tc.expectedError, resp.Error)
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"direction":"up"}`))

		var parsed models.VoteRequest
		require.NoError(t, ParseJSONBody(req, &parsed))
		assert.Equal(t, "up", parsed.Direction)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{invalid json}`))

		var parsed models.VoteRequest
		err := ParseJSONBody(req, &parsed)
		assert.ErrorIs(t, err, ErrInvalidJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

		var parsed models.VoteRequest
		assert.ErrorIs(t, ParseJSONBody(req, &parsed), ErrInvalidJSON)
	})

	t.Run("oversized body", func(t *testing.T) {
		big := `{"comment":"` + strings.Repeat("x", maxBodyBytes) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))

		var parsed models.CreateRatingRequest
		assert.ErrorIs(t, ParseJSONBody(req, &parsed), ErrInvalidJSON)
	})

	t.Run("extra fields ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"score":4,"unknown":"x"}`))

		var parsed models.CreateRatingRequest
		require.NoError(t, ParseJSONBody(req, &parsed))
		assert.Equal(t, 4, parsed.Score)
		assert.Nil(t, parsed.Comment)
	})
}

func TestDecodeAndValidate(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantFields []string
		wantJSON   bool
	}{
		{name: "valid rating", body: `{"score":5,"comment":"useful"}`},
		{name: "missing score", body: `{"comment":"hi"}`, wantFields: []string{"score is required"}},
		{name: "score too high", body: `{"score":6}`, wantFields: []string{"score must be at most 5"}},
		{
			name:       "comment too long",
			body:       `{"score":3,"comment":"` + strings.Repeat("a", 2001) + `"}`,
			wantFields: []string{"comment must be at most 2000"},
		},
		{name: "malformed", body: `{"score":`, wantJSON: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			var parsed models.CreateRatingRequest
			err := DecodeAndValidate(req, &parsed)

			switch {
			case tc.wantJSON:
				assert.ErrorIs(t, err, ErrInvalidJSON)
			case tc.wantFields != nil:
				var verr *ValidationError
				require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
				assert.Equal(t, tc.wantFields, verr.Fields)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Oneof(t *testing.T) {
	err := Validate(models.VoteRequest{Direction: "sideways"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"direction must be one of: up, down"}, verr.Fields)
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})

	t.Run("preflight answers without calling next", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/briefs", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		CORS("")(next).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

		methods := w.Header().Get("Access-Control-Allow-Methods")
		for _, m := range []string{"GET", "POST", "PATCH", "OPTIONS"} {
			assert.Contains(t, methods, m)
		}
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("configured origin wins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()

		CORS("https://ideafork.app")(next).ServeHTTP(w, req)

		assert.Equal(t, "handled", w.Body.String())
		assert.Equal(t, "https://ideafork.app", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no origin defaults to wildcard", func(t *testing.T) {
		w := httptest.NewRecorder()

		CORS("")(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts", nil))

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{
			name:       "X-Forwarded-For chain uses first hop",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18"},
			remoteAddr: "127.0.0.1:12345",
			expectedIP: "203.0.113.195",
		},
		{
			name:       "X-Forwarded-For takes precedence over X-Real-IP",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.100", "X-Real-IP": "203.0.113.50"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "X-Real-IP",
			headers:    map[string]string{"X-Real-IP": "203.0.113.50"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "203.0.113.50",
		},
		{
			name:       "RemoteAddr with port",
			remoteAddr: "192.168.1.50:54321",
			expectedIP: "192.168.1.50",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.168.1.50",
			expectedIP: "192.168.1.50",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			assert.Equal(t, tc.expectedIP, GetClientIP(req))
		})
	}
}
