package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/stayhub/internal/model"
)

// UserStore is the MySQL-backed Store for users.  It mirrors the 'users'
// table; insertion order is preserved by the auto-increment seq column.
type UserStore struct{ DB *sql.DB }

func NewUserStore(db *sql.DB) *UserStore { return &UserStore{DB: db} }

func (s *UserStore) Add(ctx context.Context, u *model.User) error {
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO users (id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at) VALUES (?,?,?,?,?,?,?,?)",
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDuplicateID
		}
		return fmt.Errorf("%w: insert user: %v", ErrStorage, err)
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select user: %v", ErrStorage, err)
	}
	return &u, nil
}

func (s *UserStore) Update(ctx context.Context, id string, u *model.User) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE users SET first_name=?, last_name=?, email=?, password_hash=?, is_admin=?, updated_at=? WHERE id=?",
		u.FirstName, u.LastName, u.Email, u.PasswordHash, u.IsAdmin, u.UpdatedAt, id)
	if err != nil {
		return fmt.Errorf("%w: update user: %v", ErrStorage, err)
	}
	return requireRow(res)
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("%w: delete user: %v", ErrStorage, err)
	}
	return requireRow(res)
}

func (s *UserStore) List(ctx context.Context, match func(*model.User) bool) ([]*model.User, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at FROM users ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", ErrStorage, err)
	}
	defer rows.Close()
	out := []*model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan user: %v", ErrStorage, err)
		}
		if match == nil || match(&u) {
			out = append(out, &u)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list users: %v", ErrStorage, err)
	}
	return out, nil
}

// requireRow converts an update/delete that touched no rows into
// ErrNotFound.  The stores write whole rows keyed by id, so zero affected
// rows can only mean the id is absent.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrStorage, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
