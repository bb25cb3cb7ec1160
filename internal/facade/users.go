package facade

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/stayhub/internal/model"
	"github.com/iliyamo/stayhub/internal/repository"
)

// CreateUserInput carries the attributes accepted at registration.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	IsAdmin   bool
}

// CreateUser validates the payload, enforces email uniqueness and persists
// the new user.  Registration is open, so no authentication is required;
// the IsAdmin flag is honored only when the caller is already an admin.
func (f *Facade) CreateUser(ctx context.Context, in CreateUserInput, caller Caller) (*model.User, error) {
	u, err := model.NewUser(in.FirstName, in.LastName, in.Email, in.Password, f.bcryptCost)
	if err != nil {
		return nil, err
	}
	if in.IsAdmin && caller.IsAdmin {
		u.IsAdmin = true
	}
	if taken, err := f.emailTaken(ctx, u.Email, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("email %q already registered: %w", u.Email, ErrConflict)
	}
	if err := f.users.Add(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser returns the user with the given id, or ErrNotFound.
func (f *Facade) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := f.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return u, nil
}

// GetUserByEmail returns the user registered under the given address, or
// ErrNotFound.  Used by the auth handler to resolve login attempts.
func (f *Facade) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	matches, err := f.users.List(ctx, func(u *model.User) bool { return u.Email == email })
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("user %s: %w", email, repository.ErrNotFound)
	}
	return matches[0], nil
}

// ListUsers returns all users in insertion order.
func (f *Facade) ListUsers(ctx context.Context) ([]*model.User, error) {
	return f.users.List(ctx, nil)
}

// UpdateUser applies a partial update.  Only the user themselves or an
// admin may do so; a changed email is checked for uniqueness against every
// other user before anything is written.
func (f *Facade) UpdateUser(ctx context.Context, id string, upd model.UserUpdate, caller Caller) (*model.User, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if caller.ID != id && !caller.IsAdmin {
		return nil, ErrForbidden
	}
	u, err := f.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	if err := u.ApplyUpdate(upd, f.bcryptCost); err != nil {
		return nil, err
	}
	if taken, err := f.emailTaken(ctx, u.Email, id); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("email %q already registered: %w", u.Email, ErrConflict)
	}
	if err := f.users.Update(ctx, id, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser removes a user.  Deletion is rejected with ErrConflict while
// the user still owns places or has authored reviews; cascading those away
// silently would destroy listings other users rely on.
func (f *Facade) DeleteUser(ctx context.Context, id string, caller Caller) error {
	if !caller.Authenticated() {
		return ErrUnauthenticated
	}
	if caller.ID != id && !caller.IsAdmin {
		return ErrForbidden
	}
	owned, err := f.places.List(ctx, func(p *model.Place) bool { return p.OwnerID == id })
	if err != nil {
		return err
	}
	if len(owned) > 0 {
		return fmt.Errorf("user %s still owns %d place(s): %w", id, len(owned), ErrConflict)
	}
	authored, err := f.reviews.List(ctx, func(r *model.Review) bool { return r.UserID == id })
	if err != nil {
		return err
	}
	if len(authored) > 0 {
		return fmt.Errorf("user %s still has %d review(s): %w", id, len(authored), ErrConflict)
	}
	if err := f.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("user %s: %w", id, err)
	}
	return nil
}

func (f *Facade) emailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	matches, err := f.users.List(ctx, func(u *model.User) bool {
		return u.Email == email && u.ID != excludeID
	})
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}

// notFound reports whether err is the absent-entity sentinel, as opposed
// to a real storage failure.
func notFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
