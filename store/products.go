// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ideafork/ideafork-api/auth"
	"github.com/ideafork/ideafork-api/db"
	"github.com/ideafork/ideafork-api/models"
)

// ProductQuery filters and pages GET /products.
type ProductQuery struct {
	ListParams
	Tag string
}

// NewProduct is the input for CreateProduct. Empty Slug is derived from Name.
type NewProduct struct {
	Slug         string
	Name         string
	Tagline      string
	WebsiteURL   string
	MentionCount int
	Tags         []string
	CreatedAt    time.Time
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidSlug reports whether s looks like a product slug.
func ValidSlug(s string) bool {
	return len(s) <= maxSlugLen && slugPattern.MatchString(s)
}

var productSorts = sortTable[models.Product]{
	def: models.SortNew,
	sorts: map[string]sortSpec[models.Product]{
		models.SortNew: {
			expr: "p.created_at", desc: true, kind: kindInt,
			value: func(p models.Product) any { return toMillis(p.CreatedAt) },
		},
		models.SortPopular: {
			expr: "p.mention_count", desc: true, kind: kindInt,
			value: func(p models.Product) any { return int64(p.MentionCount) },
		},
		models.SortName: {
			expr: "p.name", desc: false, kind: kindText,
			value: func(p models.Product) any { return p.Name },
		},
	},
}

const productColumns = `p.id AS id, p.slug AS slug, p.name AS name, p.tagline AS tagline,
	p.website_url AS website_url, p.mention_count AS mention_count, p.created_at AS created_at`

type productRow struct {
	ID           string         `db:"id"`
	Slug         string         `db:"slug"`
	Name         string         `db:"name"`
	Tagline      sql.NullString `db:"tagline"`
	WebsiteURL   sql.NullString `db:"website_url"`
	MentionCount int            `db:"mention_count"`
	CreatedAt    int64          `db:"created_at"`
}

func (r productRow) model() models.Product {
	return models.Product{
		ID:           r.ID,
		Slug:         r.Slug,
		Name:         r.Name,
		Tagline:      r.Tagline.String,
		WebsiteURL:   r.WebsiteURL.String,
		MentionCount: r.MentionCount,
		CreatedAt:    fromMillis(r.CreatedAt),
		Tags:         []string{},
	}
}

// ListProducts returns one page of tracked products.
func (s *Store) ListProducts(ctx context.Context, q ProductQuery) (Page[models.Product], error) {
	ks, err := newKeyset(productSorts, "p.id", q.ListParams)
	if err != nil {
		return Page[models.Product]{}, err
	}

	var conds []string
	var args []any
	if q.Tag != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM product_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE pt.product_id = p.id AND t.slug = ?)`)
		args = append(args, q.Tag)
	}
	if ks.where != "" {
		conds = append(conds, ks.where)
		args = append(args, ks.args...)
	}
	args = append(args, q.Limit+1)

	var rows []productRow
	if err := s.selectAll(ctx, &rows, `SELECT `+productColumns+` FROM products p`+whereClause(conds)+
		` ORDER BY `+ks.order+` LIMIT ?`, args...); err != nil {
		return Page[models.Product]{}, fmt.Errorf("query products: %w", err)
	}

	page, err := ks.finish(mapRows(rows, productRow.model), q.Limit, func(p models.Product) string { return p.ID })
	if err != nil {
		return Page[models.Product]{}, err
	}
	if err := s.attachProductTags(ctx, page.Items); err != nil {
		return Page[models.Product]{}, err
	}
	return page, nil
}

func (s *Store) attachProductTags(ctx context.Context, products []models.Product) error {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	tags, err := s.tagNames(ctx, productTagJoin, ids)
	if err != nil {
		return err
	}
	for i := range products {
		products[i].Tags = orEmpty(tags[products[i].ID])
	}
	return nil
}

// GetProductBySlug returns one product with its tags.
func (s *Store) GetProductBySlug(ctx context.Context, slug string) (models.Product, error) {
	var row productRow
	err := s.get(ctx, &row, `SELECT `+productColumns+` FROM products p WHERE p.slug = ?`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("query product: %w", err)
	}

	products := []models.Product{row.model()}
	if err := s.attachProductTags(ctx, products); err != nil {
		return models.Product{}, err
	}
	return products[0], nil
}

// CreateProduct inserts a product and links its tags.
func (s *Store) CreateProduct(ctx context.Context, in NewProduct) (models.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Product{}, errors.New("name is required")
	}
	slug := in.Slug
	if slug == "" {
		slug = slugOrHash("product", in.Name)
	}
	if !ValidSlug(slug) {
		return models.Product{}, fmt.Errorf("invalid slug %q", slug)
	}
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	p := models.Product{
		ID:           auth.NewID(),
		Slug:         slug,
		Name:         in.Name,
		Tagline:      in.Tagline,
		WebsiteURL:   in.WebsiteURL,
		MentionCount: in.MentionCount,
		CreatedAt:    fromMillis(toMillis(createdAt)),
	}

	err := s.inTx(ctx, func(tx *txRunner) error {
		_, err := tx.exec(ctx, `
			INSERT INTO products (id, slug, name, tagline, website_url, mention_count, search_text, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Slug, p.Name, nullIfEmpty(p.Tagline), nullIfEmpty(p.WebsiteURL), p.MentionCount,
			searchText(p.Name, p.Tagline), toMillis(p.CreatedAt))
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("product slug %q taken: %w", p.Slug, ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}
		p.Tags, err = tx.linkTags(ctx, productTagJoin, p.ID, in.Tags)
		return err
	})
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}
