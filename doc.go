// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Idea Fork API server.

Idea Fork collects community product ideas (posts), synthesizes clustered
user complaints into briefs, and tracks products people mention. This
server is the read-mostly REST layer over those listings, paginated with
opaque keyset cursors.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=ideafork.db VIEWER_TOKEN_SECRET=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

A .env file in the working directory is loaded first; real environment
variables and then flags override it.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - VIEWER_TOKEN_SECRET (-token-secret): HMAC secret for viewer tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DEFAULT_PAGE_SIZE (-page-size): list page size (default: 20)
  - TRENDING_WINDOW (-trending-window): trending tag window (default: 168h)
  - CORS_ORIGIN (-cors-origin): allowed origin (default: reflect request)
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)

# Architecture

  - handlers: HTTP request handlers (briefs, posts, products, search, tags)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, viewer tokens, JSON helpers
  - store: Keyset-paginated queries and write paths
  - cursor: Opaque pagination tokens
  - models: Request/response types
  - auth: Viewer tokens, tiers and IDs
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

The ideafork-admin command (cmd/ideafork-admin) migrates, seeds and mints
development tokens against the same database.
*/
package main
