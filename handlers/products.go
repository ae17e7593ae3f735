// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/ideafork/ideafork-api/cliparse"
	"github.com/ideafork/ideafork-api/middleware"
	"github.com/ideafork/ideafork-api/models"
	"github.com/ideafork/ideafork-api/store"
)

type ProductHandler struct {
	st  *store.Store
	cfg cliparse.Config
}

func NewProductHandler(st *store.Store, cfg cliparse.Config) *ProductHandler {
	return &ProductHandler{st: st, cfg: cfg}
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.ViewerFrom(r.Context())
	params, err := parseListParams(r, h.cfg.DefaultPageSize, viewer)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.st.ListProducts(r.Context(), store.ProductQuery{
		ListParams: params,
		Tag:        strings.TrimSpace(r.URL.Query().Get("tag")),
	})
	if err != nil {
		writeStoreError(w, err, "list products")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, listResponse(page))
}

// GetBySlug handles GET /products/{slug}
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if !store.ValidSlug(slug) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid product slug")
		return
	}

	product, err := h.st.GetProductBySlug(r.Context(), slug)
	if err != nil {
		writeStoreError(w, err, "get product")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse[models.Product]{Data: product})
}
