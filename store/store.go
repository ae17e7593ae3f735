// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrInvalidSort = errors.New("invalid sort")

	ErrBriefNotFound   = fmt.Errorf("brief %w", ErrNotFound)
	ErrPostNotFound    = fmt.Errorf("post %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrRatingNotFound  = fmt.Errorf("rating %w", ErrNotFound)
	ErrRatingExists    = fmt.Errorf("rating exists: %w", ErrConflict)
)

// Store runs the listing, detail and write queries against one database.
type Store struct {
	conn *sqlx.DB
	now  func() time.Time
}

func New(conn *sqlx.DB) *Store {
	return &Store{conn: conn, now: time.Now}
}

// selectAll scans every row into dest. Rows are drained before it returns,
// which the single-connection SQLite pool relies on.
func (s *Store) selectAll(ctx context.Context, dest any, q string, args ...any) error {
	return s.conn.SelectContext(ctx, dest, s.conn.Rebind(q), args...)
}

func (s *Store) get(ctx context.Context, dest any, q string, args ...any) error {
	return s.conn.GetContext(ctx, dest, s.conn.Rebind(q), args...)
}

// inTx runs fn inside a transaction and commits when it returns nil.
func (s *Store) inTx(ctx context.Context, fn func(tx *txRunner) error) error {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&txRunner{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type txRunner struct {
	tx *sqlx.Tx
}

func (t *txRunner) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.tx.Rebind(q), args...)
}

func (t *txRunner) get(ctx context.Context, dest any, q string, args ...any) error {
	return t.tx.GetContext(ctx, dest, t.tx.Rebind(q), args...)
}

func mapRows[R, T any](rows []R, model func(R) T) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = model(r)
	}
	return out
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// escapeLike escapes LIKE wildcards; queries use ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func orEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
