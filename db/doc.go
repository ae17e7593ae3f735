// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens connections and creates the schema.

# Connections

Open connects to SQLite (modernc.org/sqlite) or PostgreSQL (lib/pq) and
returns a *sqlx.DB:

	conn, err := db.Open(ctx, db.SQLite, "ideafork.db")

SQLite connections enable foreign keys and are limited to one open
connection so ":memory:" databases stay shared.

Queries are written with ? placeholders. conn.Rebind turns them into
$1, $2, ... for PostgreSQL.

# Schema Creation

	if err := db.CreateSchema(ctx, conn); err != nil {
		return err
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - tags: shared by posts, briefs and products
  - posts, post_tags, post_votes
  - briefs, brief_tags, complaints, ratings
  - products, product_tags

Timestamps are BIGINT unix milliseconds. posts, briefs and products carry a
search_text column with case-folded searchable fields. Every sortable column has a
(column, id) index so keyset pages are index range scans.

# Errors

IsUniqueViolation recognises duplicate keys from either driver.
*/
package db
