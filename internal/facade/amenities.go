package facade

import (
	"context"
	"fmt"

	"github.com/iliyamo/stayhub/internal/model"
)

// CreateAmenityInput carries the attributes of a new amenity.
type CreateAmenityInput struct {
	Name        string
	Description string
}

// CreateAmenity validates the payload, enforces name uniqueness and
// persists the new amenity.  The amenity catalog is curated, so every
// mutation is admin-only.
func (f *Facade) CreateAmenity(ctx context.Context, in CreateAmenityInput, caller Caller) (*model.Amenity, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !caller.IsAdmin {
		return nil, ErrForbidden
	}
	a, err := model.NewAmenity(in.Name, in.Description)
	if err != nil {
		return nil, err
	}
	if taken, err := f.amenityNameTaken(ctx, a.Name, ""); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("amenity %q already exists: %w", a.Name, ErrConflict)
	}
	if err := f.amenities.Add(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetAmenity returns the amenity with the given id, or ErrNotFound.
func (f *Facade) GetAmenity(ctx context.Context, id string) (*model.Amenity, error) {
	a, err := f.amenities.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("amenity %s: %w", id, err)
	}
	return a, nil
}

// ListAmenities returns all amenities in insertion order.
func (f *Facade) ListAmenities(ctx context.Context) ([]*model.Amenity, error) {
	return f.amenities.List(ctx, nil)
}

// UpdateAmenity applies a partial update, re-checking name uniqueness when
// the name changes.  Admin only.
func (f *Facade) UpdateAmenity(ctx context.Context, id string, upd model.AmenityUpdate, caller Caller) (*model.Amenity, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if !caller.IsAdmin {
		return nil, ErrForbidden
	}
	a, err := f.amenities.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("amenity %s: %w", id, err)
	}
	if err := a.ApplyUpdate(upd); err != nil {
		return nil, err
	}
	if taken, err := f.amenityNameTaken(ctx, a.Name, id); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("amenity %q already exists: %w", a.Name, ErrConflict)
	}
	if err := f.amenities.Update(ctx, id, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAmenity removes an amenity and strips its id from every place
// referencing it.  The places themselves survive; each stripped place has
// its UpdatedAt refreshed because its amenity set changed.  Admin only.
func (f *Facade) DeleteAmenity(ctx context.Context, id string, caller Caller) error {
	if !caller.Authenticated() {
		return ErrUnauthenticated
	}
	if !caller.IsAdmin {
		return ErrForbidden
	}
	if _, err := f.amenities.Get(ctx, id); err != nil {
		return fmt.Errorf("amenity %s: %w", id, err)
	}
	referencing, err := f.places.List(ctx, func(p *model.Place) bool { return p.HasAmenity(id) })
	if err != nil {
		return err
	}
	for _, p := range referencing {
		if p.RemoveAmenity(id) {
			p.Touch()
			if err := f.places.Update(ctx, p.ID, p); err != nil && !notFound(err) {
				return err
			}
		}
	}
	if err := f.amenities.Delete(ctx, id); err != nil {
		return fmt.Errorf("amenity %s: %w", id, err)
	}
	return nil
}

func (f *Facade) amenityNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	matches, err := f.amenities.List(ctx, func(a *model.Amenity) bool {
		return a.Name == name && a.ID != excludeID
	})
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}
