// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/ideafork/ideafork-api/cliparse"
	"github.com/ideafork/ideafork-api/middleware"
	"github.com/ideafork/ideafork-api/models"
	"github.com/ideafork/ideafork-api/store"
)

const (
	defaultTagLimit = 10
	maxTagLimit     = 50
)

type TagHandler struct {
	st  *store.Store
	cfg cliparse.Config
}

func NewTagHandler(st *store.Store, cfg cliparse.Config) *TagHandler {
	return &TagHandler{st: st, cfg: cfg}
}

// Trending handles GET /tags/trending
func (h *TagHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit, err := parseCount(r, defaultTagLimit, maxTagLimit)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	since := time.Now().Add(-h.cfg.TrendingWindow)
	tags, err := h.st.TrendingTags(r.Context(), since, limit)
	if err != nil {
		writeStoreError(w, err, "load trending tags")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse[[]models.TagCount]{Data: tags})
}

// ByProducts handles GET /tags/by-products
func (h *TagHandler) ByProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := parseCount(r, defaultTagLimit, maxTagLimit)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	tags, err := h.st.TagsByProducts(r.Context(), limit)
	if err != nil {
		writeStoreError(w, err, "load product tags")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse[[]models.TagCount]{Data: tags})
}
