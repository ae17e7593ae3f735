// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/ideafork/ideafork-api/cliparse"
	"github.com/ideafork/ideafork-api/middleware"
	"github.com/ideafork/ideafork-api/store"
)

const maxQueryRunes = 200

type SearchHandler struct {
	st  *store.Store
	cfg cliparse.Config
}

func NewSearchHandler(st *store.Store, cfg cliparse.Config) *SearchHandler {
	return &SearchHandler{st: st, cfg: cfg}
}

// Search handles GET /search?q=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	text := strings.TrimSpace(q.Get("q"))
	if text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "q is required")
		return
	}
	if utf8.RuneCountInString(text) > maxQueryRunes {
		middleware.ErrorResponse(w, http.StatusBadRequest, "q is too long")
		return
	}

	kind := strings.TrimSpace(q.Get("type"))
	if !store.ValidSearchKind(kind) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "type must be one of: post, brief, product")
		return
	}

	viewer := middleware.ViewerFrom(r.Context())
	params, err := parseListParams(r, h.cfg.DefaultPageSize, viewer)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.st.Search(r.Context(), store.SearchQuery{
		ListParams: params,
		Text:       text,
		Kind:       kind,
	})
	if err != nil {
		writeStoreError(w, err, "search")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, listResponse(page))
}
