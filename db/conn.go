// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect identifies the SQL flavour behind a connection
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default
	sqlx.BindDriver(string(SQLite), sqlx.QUESTION)
}

// Open connects to the configured database and verifies the connection.
// Queries are written with ? placeholders; conn.Rebind adapts them to the driver.
func Open(ctx context.Context, dialect Dialect, url string) (*sqlx.DB, error) {
	var conn *sqlx.DB
	var err error

	switch dialect {
	case Postgres:
		conn, err = sqlx.Open(string(Postgres), url)
	case SQLite:
		conn, err = sqlx.Open(string(SQLite), sqliteDSN(url))
		if err == nil {
			// In-memory databases live on a single connection
			conn.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	return conn, nil
}

func sqliteDSN(url string) string {
	if strings.Contains(url, "foreign_keys") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)"
}

// IsUniqueViolation reports whether err came from a UNIQUE or PRIMARY KEY constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	return false
}
