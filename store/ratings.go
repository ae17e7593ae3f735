// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ideafork/ideafork-api/auth"
	"github.com/ideafork/ideafork-api/db"
	"github.com/ideafork/ideafork-api/models"
)

// RatingPatch carries the fields of a partial rating update. Nil means unchanged.
type RatingPatch struct {
	Score   *int
	Comment *string
}

type ratingRow struct {
	ID        string         `db:"id"`
	BriefID   string         `db:"brief_id"`
	UserID    string         `db:"user_id"`
	Score     int            `db:"score"`
	Comment   sql.NullString `db:"comment"`
	CreatedAt int64          `db:"created_at"`
}

func (r ratingRow) model() models.Rating {
	return models.Rating{
		ID:        r.ID,
		BriefID:   r.BriefID,
		UserID:    r.UserID,
		Score:     r.Score,
		Comment:   r.Comment.String,
		CreatedAt: fromMillis(r.CreatedAt),
	}
}

// CreateRating records the user's first rating of a brief.
func (s *Store) CreateRating(ctx context.Context, briefID, userID string, score int, comment string) (models.Rating, error) {
	now := fromMillis(toMillis(s.now()))
	rating := models.Rating{
		ID:        auth.NewID(),
		BriefID:   briefID,
		UserID:    userID,
		Score:     score,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.inTx(ctx, func(tx *txRunner) error {
		if err := tx.briefExists(ctx, briefID); err != nil {
			return err
		}

		_, err := tx.exec(ctx, `
			INSERT INTO ratings (id, brief_id, user_id, score, comment, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, rating.ID, briefID, userID, score, nullIfEmpty(comment), toMillis(now), toMillis(now))
		if db.IsUniqueViolation(err) {
			return ErrRatingExists
		}
		if err != nil {
			return fmt.Errorf("insert rating: %w", err)
		}

		return tx.refreshRatingStats(ctx, briefID)
	})
	if err != nil {
		return models.Rating{}, err
	}
	return rating, nil
}

// UpdateRating changes the user's existing rating of a brief.
func (s *Store) UpdateRating(ctx context.Context, briefID, userID string, patch RatingPatch) (models.Rating, error) {
	var rating models.Rating

	err := s.inTx(ctx, func(tx *txRunner) error {
		if err := tx.briefExists(ctx, briefID); err != nil {
			return err
		}

		var row ratingRow
		err := tx.get(ctx, &row, `
			SELECT id, brief_id, user_id, score, comment, created_at
			FROM ratings
			WHERE brief_id = ? AND user_id = ?
		`, briefID, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRatingNotFound
		}
		if err != nil {
			return fmt.Errorf("query rating: %w", err)
		}
		rating = row.model()

		if patch.Score != nil {
			rating.Score = *patch.Score
		}
		if patch.Comment != nil {
			rating.Comment = *patch.Comment
		}
		rating.UpdatedAt = fromMillis(toMillis(s.now()))

		if _, err := tx.exec(ctx, `
			UPDATE ratings SET score = ?, comment = ?, updated_at = ?
			WHERE id = ?
		`, rating.Score, nullIfEmpty(rating.Comment), toMillis(rating.UpdatedAt), rating.ID); err != nil {
			return fmt.Errorf("update rating: %w", err)
		}

		return tx.refreshRatingStats(ctx, briefID)
	})
	if err != nil {
		return models.Rating{}, err
	}
	return rating, nil
}

func (t *txRunner) briefExists(ctx context.Context, briefID string) error {
	var one int
	err := t.get(ctx, &one, `SELECT 1 FROM briefs WHERE id = ?`, briefID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBriefNotFound
	}
	if err != nil {
		return fmt.Errorf("query brief: %w", err)
	}
	return nil
}

// refreshRatingStats recomputes rating_count and rating_avg from the ratings rows.
func (t *txRunner) refreshRatingStats(ctx context.Context, briefID string) error {
	_, err := t.exec(ctx, `
		UPDATE briefs SET
			rating_count = (SELECT COUNT(*) FROM ratings WHERE brief_id = ?),
			rating_avg = COALESCE((SELECT AVG(CAST(score AS DOUBLE PRECISION)) FROM ratings WHERE brief_id = ?), 0)
		WHERE id = ?
	`, briefID, briefID, briefID)
	if err != nil {
		return fmt.Errorf("refresh rating stats: %w", err)
	}
	return nil
}
