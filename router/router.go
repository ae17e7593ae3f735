// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/ideafork/ideafork-api/cliparse"
	"github.com/ideafork/ideafork-api/handlers"
	"github.com/ideafork/ideafork-api/middleware"
	"github.com/ideafork/ideafork-api/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	briefHandler := handlers.NewBriefHandler(st, cfg)
	postHandler := handlers.NewPostHandler(st, cfg)
	productHandler := handlers.NewProductHandler(st, cfg)
	searchHandler := handlers.NewSearchHandler(st, cfg)
	tagHandler := handlers.NewTagHandler(st, cfg)

	withViewer := middleware.WithViewer(cfg.ViewerTokenSecret)
	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(withViewer(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Briefs and ratings
	handle("GET /briefs", briefHandler.List)
	handle("GET /briefs/{id}", briefHandler.Get)
	handle("POST /briefs/{id}/ratings", briefHandler.CreateRating)
	handle("PATCH /briefs/{id}/ratings", briefHandler.UpdateRating)

	// Community posts
	handle("GET /posts", postHandler.List)
	handle("GET /posts/{id}", postHandler.Get)
	handle("POST /posts/{id}/votes", postHandler.Vote)

	// Tracked products
	handle("GET /products", productHandler.List)
	handle("GET /products/{slug}", productHandler.GetBySlug)

	// Search and tag aggregates
	handle("GET /search", searchHandler.Search)
	handle("GET /tags/trending", tagHandler.Trending)
	handle("GET /tags/by-products", tagHandler.ByProducts)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ideafork API v1"))
	})

	return middleware.CORS(cfg.CORSOrigin)(middleware.Recover(mux))
}
