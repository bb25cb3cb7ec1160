package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/stayhub/internal/model"
)

// PlaceStore is the MySQL-backed Store for places.  The amenity set lives
// in the place_amenities link table and is rewritten inside the same
// transaction as the row it belongs to, so readers never observe a place
// with a half-updated amenity set.
type PlaceStore struct{ DB *sql.DB }

func NewPlaceStore(db *sql.DB) *PlaceStore { return &PlaceStore{DB: db} }

func (s *PlaceStore) Add(ctx context.Context, p *model.Place) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStorage, err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO places (id, title, description, price, latitude, longitude, owner_id, created_at, updated_at) VALUES (?,?,?,?,?,?,?,?,?)",
		p.ID, p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.OwnerID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateID
		}
		return fmt.Errorf("%w: insert place: %v", ErrStorage, err)
	}
	if err := insertAmenityLinks(ctx, tx, p.ID, p.AmenityIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStorage, err)
	}
	return nil
}

func (s *PlaceStore) Get(ctx context.Context, id string) (*model.Place, error) {
	var p model.Place
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, title, description, price, latitude, longitude, owner_id, created_at, updated_at FROM places WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude, &p.Longitude, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select place: %v", ErrStorage, err)
	}
	p.AmenityIDs, err = s.amenityIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PlaceStore) Update(ctx context.Context, id string, p *model.Place) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStorage, err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"UPDATE places SET title=?, description=?, price=?, latitude=?, longitude=?, owner_id=?, updated_at=? WHERE id=?",
		p.Title, p.Description, p.Price, p.Latitude, p.Longitude, p.OwnerID, p.UpdatedAt, id)
	if err != nil {
		return fmt.Errorf("%w: update place: %v", ErrStorage, err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM place_amenities WHERE place_id=?", id); err != nil {
		return fmt.Errorf("%w: clear amenity links: %v", ErrStorage, err)
	}
	if err := insertAmenityLinks(ctx, tx, id, p.AmenityIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStorage, err)
	}
	return nil
}

func (s *PlaceStore) Delete(ctx context.Context, id string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStorage, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM place_amenities WHERE place_id=?", id); err != nil {
		return fmt.Errorf("%w: clear amenity links: %v", ErrStorage, err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM places WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("%w: delete place: %v", ErrStorage, err)
	}
	if err := requireRow(res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStorage, err)
	}
	return nil
}

func (s *PlaceStore) List(ctx context.Context, match func(*model.Place) bool) ([]*model.Place, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, title, description, price, latitude, longitude, owner_id, created_at, updated_at FROM places ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("%w: list places: %v", ErrStorage, err)
	}
	defer rows.Close()
	places := []*model.Place{}
	for rows.Next() {
		var p model.Place
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude, &p.Longitude, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan place: %v", ErrStorage, err)
		}
		places = append(places, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list places: %v", ErrStorage, err)
	}

	out := []*model.Place{}
	for _, p := range places {
		if p.AmenityIDs, err = s.amenityIDs(ctx, p.ID); err != nil {
			return nil, err
		}
		if match == nil || match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *PlaceStore) amenityIDs(ctx context.Context, placeID string) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT amenity_id FROM place_amenities WHERE place_id=? ORDER BY seq", placeID)
	if err != nil {
		return nil, fmt.Errorf("%w: select amenity links: %v", ErrStorage, err)
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan amenity link: %v", ErrStorage, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: select amenity links: %v", ErrStorage, err)
	}
	return ids, nil
}

func insertAmenityLinks(ctx context.Context, tx *sql.Tx, placeID string, amenityIDs []string) error {
	for _, aid := range amenityIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO place_amenities (place_id, amenity_id) VALUES (?,?)", placeID, aid); err != nil {
			return fmt.Errorf("%w: insert amenity link: %v", ErrStorage, err)
		}
	}
	return nil
}
