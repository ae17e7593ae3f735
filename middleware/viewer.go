// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ideafork/ideafork-api/auth"
)

type viewerKey struct{}

// WithViewer resolves the bearer token into an auth.Viewer on the request context.
// Requests without a token are anonymous; a bad token is rejected with 401.
func WithViewer(secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			viewer := auth.Anonymous

			if header := r.Header.Get("Authorization"); header != "" {
				token, ok := strings.CutPrefix(header, "Bearer ")
				if !ok {
					ErrorResponse(w, http.StatusUnauthorized, "Authorization must be a Bearer token")
					return
				}
				v, err := auth.ParseViewerToken(strings.TrimSpace(token), secret)
				if err != nil {
					ErrorResponse(w, http.StatusUnauthorized, "Invalid viewer token")
					return
				}
				viewer = v
			}

			next(w, r.WithContext(WithViewerContext(r.Context(), viewer)))
		}
	}
}

// WithViewerContext stores viewer on ctx
func WithViewerContext(ctx context.Context, viewer auth.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// ViewerFrom returns the request's viewer, anonymous if none was set
func ViewerFrom(ctx context.Context) auth.Viewer {
	if v, ok := ctx.Value(viewerKey{}).(auth.Viewer); ok {
		return v
	}
	return auth.Anonymous
}
