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

type BriefHandler struct {
	st  *store.Store
	cfg cliparse.Config
}

func NewBriefHandler(st *store.Store, cfg cliparse.Config) *BriefHandler {
	return &BriefHandler{st: st, cfg: cfg}
}

// List handles GET /briefs
func (h *BriefHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFrom(r.Context())
	params, err := parseListParams(r, h.cfg.DefaultPageSize, viewer)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	page, err := h.st.ListBriefs(r.Context(), store.BriefQuery{
		ListParams: params,
		Category:   strings.TrimSpace(q.Get("category")),
		Tag:        strings.TrimSpace(q.Get("tag")),
	})
	if err != nil {
		writeStoreError(w, err, "list briefs")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, listResponse(page))
}

// Get handles GET /briefs/{id}
func (h *BriefHandler) Get(w http.ResponseWriter, r *http.Request) {
	briefID := r.PathValue("id")
	if !auth.ValidID(briefID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid brief id")
		return
	}

	// Non-pro viewers only see the first few complaints
	viewer := middleware.ViewerFrom(r.Context())
	detail, err := h.st.GetBrief(r.Context(), briefID, viewer.Tier.ComplaintLimit())
	if err != nil {
		writeStoreError(w, err, "get brief")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse[models.BriefDetail]{Data: detail})
}

// CreateRating handles POST /briefs/{id}/ratings
func (h *BriefHandler) CreateRating(w http.ResponseWriter, r *http.Request) {
	briefID := r.PathValue("id")
	if !auth.ValidID(briefID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid brief id")
		return
	}

	viewer := middleware.ViewerFrom(r.Context())
	if viewer.IsAnonymous() {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in to rate briefs")
		return
	}

	var req models.CreateRatingRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	comment := ""
	if req.Comment != nil {
		comment = strings.TrimSpace(*req.Comment)
	}

	rating, err := h.st.CreateRating(r.Context(), briefID, viewer.UserID, req.Score, comment)
	if err != nil {
		writeStoreError(w, err, "create rating")
		return
	}

	slog.Info("rating created", "brief_id", briefID, "user_id", viewer.UserID, "score", rating.Score)

	middleware.JSONResponse(w, http.StatusCreated, models.DataResponse[models.Rating]{Data: rating})
}

// UpdateRating handles PATCH /briefs/{id}/ratings
func (h *BriefHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	briefID := r.PathValue("id")
	if !auth.ValidID(briefID) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid brief id")
		return
	}

	viewer := middleware.ViewerFrom(r.Context())
	if viewer.IsAnonymous() {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in to rate briefs")
		return
	}

	var req models.UpdateRatingRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	if req.Score == nil && req.Comment == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "score or comment is required")
		return
	}

	patch := store.RatingPatch{Score: req.Score}
	if req.Comment != nil {
		comment := strings.TrimSpace(*req.Comment)
		patch.Comment = &comment
	}

	rating, err := h.st.UpdateRating(r.Context(), briefID, viewer.UserID, patch)
	if err != nil {
		writeStoreError(w, err, "update rating")
		return
	}

	slog.Info("rating updated", "brief_id", briefID, "user_id", viewer.UserID, "score", rating.Score)

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse[models.Rating]{Data: rating})
}
