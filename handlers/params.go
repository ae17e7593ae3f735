// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ideafork/ideafork-api/auth"
	"github.com/ideafork/ideafork-api/cursor"
	"github.com/ideafork/ideafork-api/middleware"
	"github.com/ideafork/ideafork-api/models"
	"github.com/ideafork/ideafork-api/store"
)

// parseListParams reads sort, cursor and limit from the query string.
// A missing or non-positive limit means the default; larger values are
// clamped to the viewer tier's maximum.
func parseListParams(r *http.Request, defaultLimit int, viewer auth.Viewer) (store.ListParams, error) {
	q := r.URL.Query()
	p := store.ListParams{
		Sort:   strings.TrimSpace(q.Get("sort")),
		Cursor: strings.TrimSpace(q.Get("cursor")),
		Limit:  defaultLimit,
	}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return store.ListParams{}, errors.New("limit must be an integer")
		}
		if n > 0 {
			p.Limit = n
		}
	}

	if maxLimit := viewer.Tier.MaxPageSize(); p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p, nil
}

// parseCount reads a plain limit for non-paginated lists
func parseCount(r *http.Request, def, maxN int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("limit must be an integer")
	}
	if n <= 0 {
		return def, nil
	}
	return min(n, maxN), nil
}

func listResponse[T any](page store.Page[T]) models.ListResponse[T] {
	meta := models.PageMeta{HasNext: page.HasNext}
	if page.HasNext {
		next := page.NextCursor
		meta.NextCursor = &next
	}
	return models.ListResponse[T]{Data: page.Items, Meta: meta}
}

// writeStoreError maps store errors onto HTTP statuses.
// Anything unrecognised is logged and reported as an internal error.
func writeStoreError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, store.ErrBriefNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Brief not found")
	case errors.Is(err, store.ErrPostNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, store.ErrProductNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, store.ErrRatingNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Rating not found")
	case errors.Is(err, store.ErrRatingExists):
		middleware.ErrorResponse(w, http.StatusConflict, "Rating already exists")
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, "Conflicting update, try again")
	case errors.Is(err, store.ErrInvalidSort):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid sort")
	case errors.Is(err, cursor.ErrInvalid):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid cursor")
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
	}
}

// writeBodyError reports a DecodeAndValidate failure
func writeBodyError(w http.ResponseWriter, err error) {
	var verr *middleware.ValidationError
	if errors.As(err, &verr) {
		middleware.ErrorResponse(w, http.StatusBadRequest, strings.Join(verr.Fields, "; "))
		return
	}
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
}
