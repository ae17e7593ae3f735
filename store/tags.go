// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jmoiron/sqlx"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ideafork/ideafork-api/auth"
	"github.com/ideafork/ideafork-api/models"
)

// tagJoin names a join table and its owner column. Values are fixed in code.
type tagJoin struct {
	table string
	owner string
}

var (
	postTagJoin    = tagJoin{table: "post_tags", owner: "post_id"}
	briefTagJoin   = tagJoin{table: "brief_tags", owner: "brief_id"}
	productTagJoin = tagJoin{table: "product_tags", owner: "product_id"}
)

const maxSlugLen = 120

// Slugify lowercases name, strips accents and joins ASCII alphanumeric
// runs with dashes. The result always satisfies ValidSlug or is empty.
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if folded, _, err := transform.String(stripMarks(), name); err == nil {
		name = folded
	}

	var b strings.Builder
	dash := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	slug := b.String()
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}
	return strings.TrimRight(slug, "-")
}

// stripMarks decomposes text and drops combining marks, so "é" becomes "e".
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// slugOrHash is Slugify with a stable fallback for names that have no
// Latin letters or digits, such as "日本語".
func slugOrHash(prefix, name string) string {
	if slug := Slugify(name); slug != "" {
		return slug
	}
	sum := sha256.Sum256([]byte(foldText(strings.TrimSpace(name))))
	return prefix + "-" + hex.EncodeToString(sum[:5])
}

// tagNames loads tag names for a set of owners, keyed by owner id.
func (s *Store) tagNames(ctx context.Context, j tagJoin, ids []string) (map[string][]string, error) {
	out := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	q, args, err := sqlx.In(fmt.Sprintf(`
		SELECT j.%[2]s AS owner, t.name AS name
		FROM %[1]s j
		JOIN tags t ON t.id = j.tag_id
		WHERE j.%[2]s IN (?)
		ORDER BY t.name ASC
	`, j.table, j.owner), ids)
	if err != nil {
		return nil, fmt.Errorf("expand tag query: %w", err)
	}

	var pairs []struct {
		Owner string `db:"owner"`
		Name  string `db:"name"`
	}
	if err := s.selectAll(ctx, &pairs, q, args...); err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}

	for _, p := range pairs {
		out[p.Owner] = append(out[p.Owner], p.Name)
	}
	return out, nil
}

// ensureTag returns the tag with name's slug, creating it if needed.
func (t *txRunner) ensureTag(ctx context.Context, name string) (models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Tag{}, errors.New("tag name is required")
	}
	slug := slugOrHash("tag", name)

	var row tagRow
	err := t.get(ctx, &row, `SELECT id, name, slug FROM tags WHERE slug = ?`, slug)
	if err == nil {
		return row.Tag, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Tag{}, fmt.Errorf("query tag: %w", err)
	}

	tag := models.Tag{ID: auth.NewID(), Name: name, Slug: slug}
	if _, err := t.exec(ctx, `INSERT INTO tags (id, name, slug) VALUES (?, ?, ?)`, tag.ID, tag.Name, tag.Slug); err != nil {
		return models.Tag{}, fmt.Errorf("insert tag: %w", err)
	}
	return tag, nil
}

// linkTags attaches tags to an owner row and returns their names.
func (t *txRunner) linkTags(ctx context.Context, j tagJoin, ownerID string, names []string) ([]string, error) {
	linked := []string{}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		tag, err := t.ensureTag(ctx, name)
		if err != nil {
			return nil, err
		}
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true

		if _, err := t.exec(ctx, fmt.Sprintf(
			`INSERT INTO %s (%s, tag_id) VALUES (?, ?)`, j.table, j.owner,
		), ownerID, tag.ID); err != nil {
			return nil, fmt.Errorf("link tag: %w", err)
		}
		linked = append(linked, tag.Name)
	}
	return linked, nil
}

// CreateTag inserts a tag, or returns the existing one with the same slug.
func (s *Store) CreateTag(ctx context.Context, name string) (models.Tag, error) {
	var tag models.Tag
	err := s.inTx(ctx, func(tx *txRunner) error {
		var err error
		tag, err = tx.ensureTag(ctx, name)
		return err
	})
	return tag, err
}

// TrendingTags ranks tags by how many posts created since `since` carry them.
func (s *Store) TrendingTags(ctx context.Context, since time.Time, limit int) ([]models.TagCount, error) {
	var rows []tagRow
	if err := s.selectAll(ctx, &rows, `
		SELECT t.id AS id, t.name AS name, t.slug AS slug, COUNT(*) AS uses
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		JOIN posts p ON p.id = pt.post_id
		WHERE p.created_at >= ?
		GROUP BY t.id, t.name, t.slug
		ORDER BY uses DESC, t.name ASC
		LIMIT ?
	`, toMillis(since), limit); err != nil {
		return nil, fmt.Errorf("query trending tags: %w", err)
	}
	return mapRows(rows, tagRow.count), nil
}

// TagsByProducts ranks tags by the number of products carrying them.
func (s *Store) TagsByProducts(ctx context.Context, limit int) ([]models.TagCount, error) {
	var rows []tagRow
	if err := s.selectAll(ctx, &rows, `
		SELECT t.id AS id, t.name AS name, t.slug AS slug, COUNT(*) AS uses
		FROM tags t
		JOIN product_tags pt ON pt.tag_id = t.id
		GROUP BY t.id, t.name, t.slug
		ORDER BY uses DESC, t.name ASC
		LIMIT ?
	`, limit); err != nil {
		return nil, fmt.Errorf("query product tags: %w", err)
	}
	return mapRows(rows, tagRow.count), nil
}

// tagRow scans a tag, plus its use count when the query selects one.
type tagRow struct {
	models.Tag
	Uses int `db:"uses"`
}

func (r tagRow) count() models.TagCount {
	return models.TagCount{Tag: r.Tag, Count: r.Uses}
}
