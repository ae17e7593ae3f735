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

	"github.com/ideafork/ideafork-api/auth"
	"github.com/ideafork/ideafork-api/models"
)

// BriefQuery filters and pages GET /briefs.
type BriefQuery struct {
	ListParams
	Category string
	Tag      string
}

// NewBrief is the input for CreateBrief. Zero CreatedAt means now.
type NewBrief struct {
	Title     string
	Summary   string
	Category  string
	Tags      []string
	CreatedAt time.Time
}

// NewComplaint is one clustered complaint attached to a brief.
type NewComplaint struct {
	Source    string
	Excerpt   string
	URL       string
	CreatedAt time.Time
}

var briefSorts = sortTable[models.Brief]{
	def: models.SortNew,
	sorts: map[string]sortSpec[models.Brief]{
		models.SortNew: {
			expr: "b.created_at", desc: true, kind: kindInt,
			value: func(b models.Brief) any { return toMillis(b.CreatedAt) },
		},
		models.SortTopRated: {
			expr: "b.rating_avg", desc: true, kind: kindFloat,
			value: func(b models.Brief) any { return b.RatingAvg },
		},
		models.SortMostComplaints: {
			expr: "b.complaint_count", desc: true, kind: kindInt,
			value: func(b models.Brief) any { return int64(b.ComplaintCount) },
		},
	},
}

const briefColumns = `b.id AS id, b.title AS title, b.summary AS summary, b.category AS category,
	b.complaint_count AS complaint_count, b.rating_avg AS rating_avg, b.rating_count AS rating_count,
	b.created_at AS created_at`

type briefRow struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Summary        string         `db:"summary"`
	Category       sql.NullString `db:"category"`
	ComplaintCount int            `db:"complaint_count"`
	RatingAvg      float64        `db:"rating_avg"`
	RatingCount    int            `db:"rating_count"`
	CreatedAt      int64          `db:"created_at"`
}

func (r briefRow) model() models.Brief {
	return models.Brief{
		ID:             r.ID,
		Title:          r.Title,
		Summary:        r.Summary,
		Category:       r.Category.String,
		ComplaintCount: r.ComplaintCount,
		RatingAvg:      r.RatingAvg,
		RatingCount:    r.RatingCount,
		CreatedAt:      fromMillis(r.CreatedAt),
		Tags:           []string{},
	}
}

type complaintRow struct {
	ID        string         `db:"id"`
	Source    string         `db:"source"`
	Excerpt   string         `db:"excerpt"`
	URL       sql.NullString `db:"url"`
	CreatedAt int64          `db:"created_at"`
}

func (r complaintRow) model() models.Complaint {
	return models.Complaint{
		ID:        r.ID,
		Source:    r.Source,
		Excerpt:   r.Excerpt,
		URL:       r.URL.String,
		CreatedAt: fromMillis(r.CreatedAt),
	}
}

// ListBriefs returns one page of briefs.
func (s *Store) ListBriefs(ctx context.Context, q BriefQuery) (Page[models.Brief], error) {
	ks, err := newKeyset(briefSorts, "b.id", q.ListParams)
	if err != nil {
		return Page[models.Brief]{}, err
	}

	var conds []string
	var args []any
	if q.Category != "" {
		conds = append(conds, "b.category = ?")
		args = append(args, q.Category)
	}
	if q.Tag != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM brief_tags bt JOIN tags t ON t.id = bt.tag_id
			WHERE bt.brief_id = b.id AND t.slug = ?)`)
		args = append(args, q.Tag)
	}
	if ks.where != "" {
		conds = append(conds, ks.where)
		args = append(args, ks.args...)
	}
	args = append(args, q.Limit+1)

	var rows []briefRow
	if err := s.selectAll(ctx, &rows, `SELECT `+briefColumns+` FROM briefs b`+whereClause(conds)+
		` ORDER BY `+ks.order+` LIMIT ?`, args...); err != nil {
		return Page[models.Brief]{}, fmt.Errorf("query briefs: %w", err)
	}

	page, err := ks.finish(mapRows(rows, briefRow.model), q.Limit, func(b models.Brief) string { return b.ID })
	if err != nil {
		return Page[models.Brief]{}, err
	}
	if err := s.attachBriefTags(ctx, page.Items); err != nil {
		return Page[models.Brief]{}, err
	}
	return page, nil
}

func (s *Store) attachBriefTags(ctx context.Context, briefs []models.Brief) error {
	ids := make([]string, len(briefs))
	for i, b := range briefs {
		ids[i] = b.ID
	}
	tags, err := s.tagNames(ctx, briefTagJoin, ids)
	if err != nil {
		return err
	}
	for i := range briefs {
		briefs[i].Tags = orEmpty(tags[briefs[i].ID])
	}
	return nil
}

// GetBrief returns a brief with its tags and newest complaints.
// complaintLimit <= 0 returns every complaint.
func (s *Store) GetBrief(ctx context.Context, id string, complaintLimit int) (models.BriefDetail, error) {
	var row briefRow
	err := s.get(ctx, &row, `SELECT `+briefColumns+` FROM briefs b WHERE b.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BriefDetail{}, ErrBriefNotFound
	}
	if err != nil {
		return models.BriefDetail{}, fmt.Errorf("query brief: %w", err)
	}

	briefs := []models.Brief{row.model()}
	if err := s.attachBriefTags(ctx, briefs); err != nil {
		return models.BriefDetail{}, err
	}

	q := `SELECT id, source, excerpt, url, created_at FROM complaints
		WHERE brief_id = ? ORDER BY created_at DESC, id DESC`
	args := []any{id}
	if complaintLimit > 0 {
		q += ` LIMIT ?`
		args = append(args, complaintLimit+1)
	}
	var rows []complaintRow
	if err := s.selectAll(ctx, &rows, q, args...); err != nil {
		return models.BriefDetail{}, fmt.Errorf("query complaints: %w", err)
	}
	complaints := mapRows(rows, complaintRow.model)

	detail := models.BriefDetail{Brief: briefs[0], Complaints: complaints}
	if complaintLimit > 0 && len(complaints) > complaintLimit {
		detail.Complaints = complaints[:complaintLimit]
		detail.ComplaintsTruncated = true
	}
	if detail.Complaints == nil {
		detail.Complaints = []models.Complaint{}
	}
	return detail, nil
}

// CreateBrief inserts a brief and links its tags.
func (s *Store) CreateBrief(ctx context.Context, in NewBrief) (models.Brief, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Brief{}, errors.New("title is required")
	}
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	b := models.Brief{
		ID:        auth.NewID(),
		Title:     in.Title,
		Summary:   in.Summary,
		Category:  in.Category,
		CreatedAt: fromMillis(toMillis(createdAt)),
	}

	err := s.inTx(ctx, func(tx *txRunner) error {
		_, err := tx.exec(ctx, `
			INSERT INTO briefs (id, title, summary, category, search_text, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, b.ID, b.Title, b.Summary, nullIfEmpty(b.Category), searchText(b.Title, b.Summary), toMillis(b.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert brief: %w", err)
		}
		b.Tags, err = tx.linkTags(ctx, briefTagJoin, b.ID, in.Tags)
		return err
	})
	if err != nil {
		return models.Brief{}, err
	}
	return b, nil
}

// AddComplaint attaches a complaint and bumps the brief's complaint_count.
func (s *Store) AddComplaint(ctx context.Context, briefID string, in NewComplaint) (models.Complaint, error) {
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	c := models.Complaint{
		ID:        auth.NewID(),
		Source:    in.Source,
		Excerpt:   in.Excerpt,
		URL:       in.URL,
		CreatedAt: fromMillis(toMillis(createdAt)),
	}

	err := s.inTx(ctx, func(tx *txRunner) error {
		res, err := tx.exec(ctx, `UPDATE briefs SET complaint_count = complaint_count + 1 WHERE id = ?`, briefID)
		if err != nil {
			return fmt.Errorf("bump complaint count: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrBriefNotFound
		}

		_, err = tx.exec(ctx, `
			INSERT INTO complaints (id, brief_id, source, excerpt, url, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, c.ID, briefID, c.Source, c.Excerpt, nullIfEmpty(c.URL), toMillis(c.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert complaint: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Complaint{}, err
	}
	return c, nil
}
