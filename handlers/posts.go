// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ideafork/ideafork-api/auth"
	"github.com/ideafork/ideafork-api/cliparse"
	"github.com/ideafork/ideafork-api/middleware"
	"github.com/ideafork/ideafork-api/models"
	"github.com/ideafork/ideafork-api/store"
)

type PostHandler struct {
	st  *store.Store
	cfg cliparse.Config
}

func NewPostHandler(st *store.Store, cfg cliparse.Config) *PostHandler {
	return &PostHandler{st: st, cfg: cfg}
}

// List handles GET /posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFrom(r.Context())
	params, err := parseListParams(r, h.cfg.DefaultPageSize, viewer)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.st.ListPosts(r.Context(), store.PostQuery{
		ListParams: params,
		Tag:        strings.TrimSpace(r.URL.Query().Get("tag")),
	})
	if err != nil {
		writeStoreError(w, err, "list posts")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, listResponse(page))
}

// Get handles GET /posts/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("id")
	if !auth.ValidID(postID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	post, err := h.st.GetPost(r.Context(), postID)
	if err != nil {
		writeStoreError(w, err, "get post")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse[models.Post]{Data: post})
}

// Vote handles POST /posts/{id}/votes
func (h *PostHandler) Vote(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("id")
	if !auth.ValidID(postID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid post id")
		return
	}

	viewer := middleware.ViewerFrom(r.Context())
	if viewer.IsAnonymous() {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in to vote")
		return
	}

	var req models.VoteRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	resp, err := h.st.VotePost(r.Context(), postID, viewer.UserID, req.Direction)
	if err != nil {
		writeStoreError(w, err, "record vote")
		return
	}

	slog.Debug("vote recorded", "post_id", postID, "user_id", viewer.UserID, "direction", req.Direction)

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse[models.VoteResponse]{Data: resp})
}
