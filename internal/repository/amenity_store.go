package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/stayhub/internal/model"
)

// AmenityStore is the MySQL-backed Store for amenities.  Link rows in
// place_amenities are owned by PlaceStore; deleting an amenity here does
// not touch them because the facade rewrites the affected places itself.
type AmenityStore struct{ DB *sql.DB }

func NewAmenityStore(db *sql.DB) *AmenityStore { return &AmenityStore{DB: db} }

func (s *AmenityStore) Add(ctx context.Context, a *model.Amenity) error {
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO amenities (id, name, description, created_at, updated_at) VALUES (?,?,?,?,?)",
		a.ID, a.Name, a.Description, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateID
		}
		return fmt.Errorf("%w: insert amenity: %v", ErrStorage, err)
	}
	return nil
}

func (s *AmenityStore) Get(ctx context.Context, id string) (*model.Amenity, error) {
	var a model.Amenity
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, name, description, created_at, updated_at FROM amenities WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select amenity: %v", ErrStorage, err)
	}
	return &a, nil
}

func (s *AmenityStore) Update(ctx context.Context, id string, a *model.Amenity) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE amenities SET name=?, description=?, updated_at=? WHERE id=?",
		a.Name, a.Description, a.UpdatedAt, id)
	if err != nil {
		return fmt.Errorf("%w: update amenity: %v", ErrStorage, err)
	}
	return requireRow(res)
}

func (s *AmenityStore) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM amenities WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("%w: delete amenity: %v", ErrStorage, err)
	}
	return requireRow(res)
}

func (s *AmenityStore) List(ctx context.Context, match func(*model.Amenity) bool) ([]*model.Amenity, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, name, description, created_at, updated_at FROM amenities ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("%w: list amenities: %v", ErrStorage, err)
	}
	defer rows.Close()
	out := []*model.Amenity{}
	for rows.Next() {
		var a model.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan amenity: %v", ErrStorage, err)
		}
		if match == nil || match(&a) {
			out = append(out, &a)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list amenities: %v", ErrStorage, err)
	}
	return out, nil
}
