// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values are read in order: .env file (optional), environment variables,
then CLI flags. Later sources win.

# Settings

	PORT                 -p               Server port (default 3318)
	DATABASE_URL         -d               Database URL or SQLite path (required)
	DATABASE_TYPE        -t               sqlite or postgres (default sqlite)
	VIEWER_TOKEN_SECRET  --token-secret   HMAC secret for viewer tokens (required)
	DEFAULT_PAGE_SIZE    --page-size      Default list limit (default 20)
	TRENDING_WINDOW      --trending-window Trending tags window (default 168h)
	CORS_ORIGIN          --cors-origin    Allowed origin (empty reflects the request)
	LOG_LEVEL            --log-level      debug, info, warn or error

# Validation

ParseFlags returns an error if a required value is missing or a value is
out of range. SlogLevel converts LogLevel for the slog handler.
*/
package cliparse
