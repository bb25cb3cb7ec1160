package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/stayhub/internal/model"
)

// ReviewStore is the MySQL-backed Store for reviews.
type ReviewStore struct{ DB *sql.DB }

func NewReviewStore(db *sql.DB) *ReviewStore { return &ReviewStore{DB: db} }

func (s *ReviewStore) Add(ctx context.Context, r *model.Review) error {
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO reviews (id, rating, comment, place_id, user_id, created_at, updated_at) VALUES (?,?,?,?,?,?,?)",
		r.ID, r.Rating, r.Comment, r.PlaceID, r.UserID, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateID
		}
		return fmt.Errorf("%w: insert review: %v", ErrStorage, err)
	}
	return nil
}

func (s *ReviewStore) Get(ctx context.Context, id string) (*model.Review, error) {
	var r model.Review
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, rating, comment, place_id, user_id, created_at, updated_at FROM reviews WHERE id=? LIMIT 1",
		id).Scan(&r.ID, &r.Rating, &r.Comment, &r.PlaceID, &r.UserID, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select review: %v", ErrStorage, err)
	}
	return &r, nil
}

func (s *ReviewStore) Update(ctx context.Context, id string, r *model.Review) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE reviews SET rating=?, comment=?, place_id=?, user_id=?, updated_at=? WHERE id=?",
		r.Rating, r.Comment, r.PlaceID, r.UserID, r.UpdatedAt, id)
	if err != nil {
		return fmt.Errorf("%w: update review: %v", ErrStorage, err)
	}
	return requireRow(res)
}

func (s *ReviewStore) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("%w: delete review: %v", ErrStorage, err)
	}
	return requireRow(res)
}

func (s *ReviewStore) List(ctx context.Context, match func(*model.Review) bool) ([]*model.Review, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, rating, comment, place_id, user_id, created_at, updated_at FROM reviews ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("%w: list reviews: %v", ErrStorage, err)
	}
	defer rows.Close()
	out := []*model.Review{}
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(&r.ID, &r.Rating, &r.Comment, &r.PlaceID, &r.UserID, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan review: %v", ErrStorage, err)
		}
		if match == nil || match(&r) {
			out = append(out, &r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list reviews: %v", ErrStorage, err)
	}
	return out, nil
}
