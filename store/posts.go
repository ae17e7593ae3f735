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
	"github.com/ideafork/ideafork-api/db"
	"github.com/ideafork/ideafork-api/models"
)

// PostQuery filters and pages GET /posts.
type PostQuery struct {
	ListParams
	Tag string
}

// NewPost is the input for CreatePost. Zero CreatedAt means now.
type NewPost struct {
	Title        string
	Body         string
	AuthorName   string
	CommentCount int
	Tags         []string
	CreatedAt    time.Time
}

var postSorts = sortTable[models.Post]{
	def: models.SortNew,
	sorts: map[string]sortSpec[models.Post]{
		models.SortNew: {
			expr: "p.created_at", desc: true, kind: kindInt,
			value: func(p models.Post) any { return toMillis(p.CreatedAt) },
		},
		models.SortTop: {
			expr: "(p.upvotes - p.downvotes)", desc: true, kind: kindInt,
			value: func(p models.Post) any { return int64(p.Score) },
		},
		models.SortDiscussed: {
			expr: "p.comment_count", desc: true, kind: kindInt,
			value: func(p models.Post) any { return int64(p.CommentCount) },
		},
	},
}

const postColumns = `p.id AS id, p.title AS title, p.body AS body, p.author_name AS author_name,
	p.upvotes AS upvotes, p.downvotes AS downvotes, p.comment_count AS comment_count, p.created_at AS created_at`

type postRow struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Body         sql.NullString `db:"body"`
	AuthorName   sql.NullString `db:"author_name"`
	Upvotes      int            `db:"upvotes"`
	Downvotes    int            `db:"downvotes"`
	CommentCount int            `db:"comment_count"`
	CreatedAt    int64          `db:"created_at"`
}

func (r postRow) model() models.Post {
	return models.Post{
		ID:           r.ID,
		Title:        r.Title,
		Body:         r.Body.String,
		AuthorName:   r.AuthorName.String,
		Upvotes:      r.Upvotes,
		Downvotes:    r.Downvotes,
		Score:        r.Upvotes - r.Downvotes,
		CommentCount: r.CommentCount,
		CreatedAt:    fromMillis(r.CreatedAt),
		Tags:         []string{},
	}
}

// ListPosts returns one page of posts.
func (s *Store) ListPosts(ctx context.Context, q PostQuery) (Page[models.Post], error) {
	ks, err := newKeyset(postSorts, "p.id", q.ListParams)
	if err != nil {
		return Page[models.Post]{}, err
	}

	var conds []string
	var args []any
	if q.Tag != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.slug = ?)`)
		args = append(args, q.Tag)
	}
	if ks.where != "" {
		conds = append(conds, ks.where)
		args = append(args, ks.args...)
	}
	args = append(args, q.Limit+1)

	var rows []postRow
	if err := s.selectAll(ctx, &rows, `SELECT `+postColumns+` FROM posts p`+whereClause(conds)+
		` ORDER BY `+ks.order+` LIMIT ?`, args...); err != nil {
		return Page[models.Post]{}, fmt.Errorf("query posts: %w", err)
	}

	page, err := ks.finish(mapRows(rows, postRow.model), q.Limit, func(p models.Post) string { return p.ID })
	if err != nil {
		return Page[models.Post]{}, err
	}
	if err := s.attachPostTags(ctx, page.Items); err != nil {
		return Page[models.Post]{}, err
	}
	return page, nil
}

func (s *Store) attachPostTags(ctx context.Context, posts []models.Post) error {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	tags, err := s.tagNames(ctx, postTagJoin, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].Tags = orEmpty(tags[posts[i].ID])
	}
	return nil
}

// GetPost returns one post with its tags.
func (s *Store) GetPost(ctx context.Context, id string) (models.Post, error) {
	var row postRow
	err := s.get(ctx, &row, `SELECT `+postColumns+` FROM posts p WHERE p.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	if err != nil {
		return models.Post{}, fmt.Errorf("query post: %w", err)
	}

	posts := []models.Post{row.model()}
	if err := s.attachPostTags(ctx, posts); err != nil {
		return models.Post{}, err
	}
	return posts[0], nil
}

// CreatePost inserts a post and links its tags.
func (s *Store) CreatePost(ctx context.Context, in NewPost) (models.Post, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Post{}, errors.New("title is required")
	}
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	p := models.Post{
		ID:           auth.NewID(),
		Title:        in.Title,
		Body:         in.Body,
		AuthorName:   in.AuthorName,
		CommentCount: in.CommentCount,
		CreatedAt:    fromMillis(toMillis(createdAt)),
	}

	err := s.inTx(ctx, func(tx *txRunner) error {
		_, err := tx.exec(ctx, `
			INSERT INTO posts (id, title, body, author_name, comment_count, search_text, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Title, nullIfEmpty(p.Body), nullIfEmpty(p.AuthorName), p.CommentCount,
			searchText(p.Title, p.Body), toMillis(p.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert post: %w", err)
		}
		p.Tags, err = tx.linkTags(ctx, postTagJoin, p.ID, in.Tags)
		return err
	})
	if err != nil {
		return models.Post{}, err
	}
	return p, nil
}

var voteColumns = map[string]string{
	models.VoteUp:   "upvotes",
	models.VoteDown: "downvotes",
}

// VotePost records the viewer's vote. One vote per user per post:
// repeating a direction is a no-op, switching moves one count across.
func (s *Store) VotePost(ctx context.Context, postID, userID, direction string) (models.VoteResponse, error) {
	col, ok := voteColumns[direction]
	if !ok {
		return models.VoteResponse{}, fmt.Errorf("unknown vote direction %q", direction)
	}

	resp := models.VoteResponse{PostID: postID, Direction: direction}
	err := s.inTx(ctx, func(tx *txRunner) error {
		var exists int
		err := tx.get(ctx, &exists, `SELECT 1 FROM posts WHERE id = ?`, postID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		if err != nil {
			return fmt.Errorf("query post: %w", err)
		}

		var previous string
		err = tx.get(ctx, &previous, `SELECT direction FROM post_votes WHERE post_id = ? AND user_id = ?`, postID, userID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.exec(ctx, `
				INSERT INTO post_votes (post_id, user_id, direction, created_at)
				VALUES (?, ?, ?, ?)
			`, postID, userID, direction, toMillis(s.now())); err != nil {
				if db.IsUniqueViolation(err) {
					return fmt.Errorf("concurrent vote: %w", ErrConflict)
				}
				return fmt.Errorf("insert vote: %w", err)
			}
			if _, err := tx.exec(ctx, `UPDATE posts SET `+col+` = `+col+` + 1 WHERE id = ?`, postID); err != nil {
				return fmt.Errorf("increment %s: %w", col, err)
			}
		case err != nil:
			return fmt.Errorf("query vote: %w", err)
		case previous != direction:
			prevCol := voteColumns[previous]
			if _, err := tx.exec(ctx, `UPDATE post_votes SET direction = ?, created_at = ? WHERE post_id = ? AND user_id = ?`,
				direction, toMillis(s.now()), postID, userID); err != nil {
				return fmt.Errorf("update vote: %w", err)
			}
			if _, err := tx.exec(ctx, `UPDATE posts SET `+col+` = `+col+` + 1, `+prevCol+` = `+prevCol+` - 1 WHERE id = ?`, postID); err != nil {
				return fmt.Errorf("move vote: %w", err)
			}
		}

		var counts struct {
			Upvotes   int `db:"upvotes"`
			Downvotes int `db:"downvotes"`
		}
		if err := tx.get(ctx, &counts, `SELECT upvotes, downvotes FROM posts WHERE id = ?`, postID); err != nil {
			return fmt.Errorf("query counts: %w", err)
		}
		resp.Upvotes, resp.Downvotes = counts.Upvotes, counts.Downvotes
		return nil
	})
	if err != nil {
		return models.VoteResponse{}, err
	}

	resp.Score = resp.Upvotes - resp.Downvotes
	return resp, nil
}
