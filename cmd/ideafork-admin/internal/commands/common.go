// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package commands implements the ideafork-admin sub-commands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ideafork/ideafork-api/cliparse"
	"github.com/ideafork/ideafork-api/db"
)

// adminSettings are the connection settings shared by every sub-command
type adminSettings struct {
	DatabaseURL       string `env:"DATABASE_URL"`
	DatabaseType      string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	ViewerTokenSecret string `env:"VIEWER_TOKEN_SECRET"`
}

// AddConnectionFlags registers the persistent flags that override the environment
func AddConnectionFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringP("database-url", "d", "", "Database URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringP("database-type", "t", "", "Database type: sqlite or postgres (overrides DATABASE_TYPE)")
}

// readSettings loads .env and the environment, then applies flag overrides
func readSettings(cmd *cobra.Command) (adminSettings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return adminSettings{}, fmt.Errorf("load .env: %w", err)
	}

	var s adminSettings
	if err := env.Parse(&s); err != nil {
		return adminSettings{}, fmt.Errorf("parse env: %w", err)
	}

	if v, _ := cmd.Flags().GetString("database-url"); v != "" {
		s.DatabaseURL = v
	}
	if v, _ := cmd.Flags().GetString("database-type"); v != "" {
		s.DatabaseType = v
	}
	return s, nil
}

// openDatabase connects using the resolved settings
func openDatabase(ctx context.Context, s adminSettings) (*sqlx.DB, error) {
	if s.DatabaseURL == "" {
		return nil, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if s.DatabaseType != cliparse.DatabaseSQLite && s.DatabaseType != cliparse.DatabasePostgres {
		return nil, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", s.DatabaseType)
	}

	return db.Open(ctx, db.Dialect(s.DatabaseType), s.DatabaseURL)
}
