// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/ideafork/ideafork-api/models"
)

const snippetRunes = 160

// SearchQuery pages GET /search. Kind narrows results to one entity type.
type SearchQuery struct {
	ListParams
	Text string
	Kind string
}

var searchSorts = sortTable[models.SearchResult]{
	def: models.SortNew,
	sorts: map[string]sortSpec[models.SearchResult]{
		models.SortNew: {
			expr: "r.created_at", desc: true, kind: kindInt,
			value: func(r models.SearchResult) any { return toMillis(r.CreatedAt) },
		},
	},
}

// Each branch yields kind, id, slug, title, snippet, created_at and takes one pattern.
var searchBranches = map[string]string{
	models.KindPost: `SELECT 'post' AS kind, id, CAST(NULL AS TEXT) AS slug, title, COALESCE(body, '') AS snippet, created_at
		FROM posts
		WHERE search_text LIKE ? ESCAPE '\'`,
	models.KindBrief: `SELECT 'brief' AS kind, id, CAST(NULL AS TEXT) AS slug, title, summary AS snippet, created_at
		FROM briefs
		WHERE search_text LIKE ? ESCAPE '\'`,
	models.KindProduct: `SELECT 'product' AS kind, id, slug, name AS title, COALESCE(tagline, '') AS snippet, created_at
		FROM products
		WHERE search_text LIKE ? ESCAPE '\'`,
}

// searchSep separates fields inside search_text. It is stripped from the
// fields and from queries, so a match never spans two fields.
const searchSep = "\x1f"

// foldText normalises to NFC and applies Unicode case folding.
func foldText(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// searchText builds the search_text column value for a row.
func searchText(fields ...string) string {
	folded := make([]string, len(fields))
	for i, f := range fields {
		folded[i] = strings.ReplaceAll(foldText(f), searchSep, " ")
	}
	return strings.Join(folded, searchSep)
}

var searchKinds = []string{models.KindPost, models.KindBrief, models.KindProduct}

// ValidSearchKind reports whether kind is empty or a known result type.
func ValidSearchKind(kind string) bool {
	_, ok := searchBranches[kind]
	return kind == "" || ok
}

// Search matches posts, briefs and products by case-insensitive substring.
func (s *Store) Search(ctx context.Context, q SearchQuery) (Page[models.SearchResult], error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return Page[models.SearchResult]{}, errors.New("search text is required")
	}
	if !ValidSearchKind(q.Kind) {
		return Page[models.SearchResult]{}, fmt.Errorf("unknown search type %q", q.Kind)
	}

	ks, err := newKeyset(searchSorts, "r.id", q.ListParams)
	if err != nil {
		return Page[models.SearchResult]{}, err
	}

	folded := strings.ReplaceAll(foldText(text), searchSep, " ")
	pattern := "%" + escapeLike(folded) + "%"
	var branches []string
	var args []any
	for _, kind := range searchKinds {
		if q.Kind != "" && q.Kind != kind {
			continue
		}
		branches = append(branches, searchBranches[kind])
		args = append(args, pattern)
	}

	var conds []string
	if ks.where != "" {
		conds = append(conds, ks.where)
		args = append(args, ks.args...)
	}
	args = append(args, q.Limit+1)

	var rows []searchRow
	if err := s.selectAll(ctx, &rows, `
		SELECT r.kind AS kind, r.id AS id, r.slug AS slug, r.title AS title, r.snippet AS snippet, r.created_at AS created_at
		FROM (`+strings.Join(branches, "\n\t\tUNION ALL\n\t\t")+`) r`+
		whereClause(conds)+` ORDER BY `+ks.order+` LIMIT ?`, args...); err != nil {
		return Page[models.SearchResult]{}, fmt.Errorf("search: %w", err)
	}

	return ks.finish(mapRows(rows, searchRow.model), q.Limit, func(r models.SearchResult) string { return r.ID })
}

type searchRow struct {
	Kind      string         `db:"kind"`
	ID        string         `db:"id"`
	Slug      sql.NullString `db:"slug"`
	Title     string         `db:"title"`
	Snippet   string         `db:"snippet"`
	CreatedAt int64          `db:"created_at"`
}

func (r searchRow) model() models.SearchResult {
	return models.SearchResult{
		Kind:      r.Kind,
		ID:        r.ID,
		Slug:      r.Slug.String,
		Title:     r.Title,
		Snippet:   Snippet(r.Snippet, snippetRunes),
		CreatedAt: fromMillis(r.CreatedAt),
	}
}

// Snippet trims s to at most n runes, marking the cut with an ellipsis.
func Snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimRight(string(runes[:n-1]), " ") + "…"
}
