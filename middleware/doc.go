// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /posts", middleware.WithLogging(handler))

Logs method, path, status and duration_ms through slog.

# Viewer

WithViewer parses the Authorization: Bearer token and stores the viewer
in the request context. A malformed or forged token is rejected with 401.

	viewer := middleware.ViewerFrom(r.Context())

# Recovery and CORS

Recover turns panics into 500 "Internal server error". CORS answers
preflight requests and sets Access-Control-* headers.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

DecodeAndValidate parses a JSON body (1 MiB max) and runs validator
struct tags, returning a *ValidationError with readable field messages.
*/
package middleware
