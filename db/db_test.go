// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	const query = "(p.name, p.id) > (?, ?) LIMIT ?"

	conn, err := Open(context.Background(), SQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, string(SQLite), conn.DriverName())
	assert.Equal(t, sqlx.QUESTION, sqlx.BindType(string(SQLite)))
	assert.Equal(t, query, conn.Rebind(query))

	assert.Equal(t, sqlx.DOLLAR, sqlx.BindType(string(Postgres)))
	assert.Equal(t, "(p.name, p.id) > ($1, $2) LIMIT $3", sqlx.Rebind(sqlx.BindType(string(Postgres)), query))
}

func TestOpen_UnsupportedDialect(t *testing.T) {
	_, err := Open(context.Background(), Dialect("mysql"), "whatever")
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", sqliteDSN(":memory:"))
	assert.Equal(t, "file.db?mode=rwc&_pragma=foreign_keys(1)", sqliteDSN("file.db?mode=rwc"))
	assert.Equal(t, "file.db?_pragma=foreign_keys(0)", sqliteDSN("file.db?_pragma=foreign_keys(0)"))
}

func TestCreateSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, SQLite, filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, CreateSchema(ctx, conn))
	require.NoError(t, CreateSchema(ctx, conn), "second run must be a no-op")

	for _, table := range []string{"tags", "posts", "post_tags", "post_votes", "briefs", "brief_tags", "complaints", "ratings", "products", "product_tags"} {
		var name string
		err := conn.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, SQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, CreateSchema(ctx, conn))

	_, err = conn.ExecContext(ctx, `INSERT INTO tags (id, name, slug) VALUES ('1', 'AI', 'ai')`)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `INSERT INTO tags (id, name, slug) VALUES ('2', 'Ai', 'ai')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err), "duplicate slug")

	_, err = conn.ExecContext(ctx, `INSERT INTO tags (id, name, slug) VALUES ('1', 'Other', 'other')`)
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err), "duplicate primary key")

	_, err = conn.ExecContext(ctx, `INSERT INTO ratings (id, brief_id, user_id, score, created_at, updated_at) VALUES ('r', 'missing', 'u', 3, 0, 0)`)
	require.Error(t, err)
	assert.False(t, IsUniqueViolation(err), "foreign key failures are not unique violations")

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
}
