package facade

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/stayhub/internal/model"
	"github.com/iliyamo/stayhub/internal/validate"
)

// CreatePlaceInput carries the attributes accepted when listing a place.
// An empty OwnerID defaults to the caller.
type CreatePlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
	AmenityIDs  []string
}

// CreatePlace validates the payload and its references against current
// store state and persists the new place.  Requires an authenticated
// caller; listing a place on behalf of another user is reserved to admins.
// Field-level and cross-entity violations are aggregated into a single
// ValidationError so the caller sees every problem at once.
func (f *Facade) CreatePlace(ctx context.Context, in CreatePlaceInput, caller Caller) (*model.Place, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if in.OwnerID == "" {
		in.OwnerID = caller.ID
	}
	if in.OwnerID != caller.ID && !caller.IsAdmin {
		return nil, fmt.Errorf("cannot list a place for another owner: %w", ErrForbidden)
	}

	var vs validate.Violations
	p, err := model.NewPlace(in.Title, in.Description, in.Price, in.Latitude, in.Longitude, in.OwnerID, in.AmenityIDs)
	if !collect(&vs, err) {
		return nil, err
	}
	if in.OwnerID != "" {
		if _, err := f.users.Get(ctx, in.OwnerID); err != nil {
			if !notFound(err) {
				return nil, err
			}
			vs.Add("owner_id", "unknown user %q", in.OwnerID)
		}
	}
	if err := f.checkAmenityRefs(ctx, &vs, in.AmenityIDs); err != nil {
		return nil, err
	}
	if err := vs.Err(); err != nil {
		return nil, err
	}

	if err := f.places.Add(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlace returns the place with the given id, or ErrNotFound.
func (f *Facade) GetPlace(ctx context.Context, id string) (*model.Place, error) {
	p, err := f.places.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("place %s: %w", id, err)
	}
	return p, nil
}

// ListPlaces returns all places in insertion order.
func (f *Facade) ListPlaces(ctx context.Context) ([]*model.Place, error) {
	return f.places.List(ctx, nil)
}

// UpdatePlace applies a partial update.  Only the owner or an admin may
// mutate a place; a changed amenity set is checked for existence before
// anything is written, and its violations are aggregated with the
// field-level ones so one error carries everything.  OwnerID is immutable
// and not part of PlaceUpdate.
func (f *Facade) UpdatePlace(ctx context.Context, id string, upd model.PlaceUpdate, caller Caller) (*model.Place, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthenticated
	}
	p, err := f.places.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("place %s: %w", id, err)
	}
	if p.OwnerID != caller.ID && !caller.IsAdmin {
		return nil, ErrForbidden
	}
	var vs validate.Violations
	if upd.AmenityIDs != nil {
		if err := f.checkAmenityRefs(ctx, &vs, *upd.AmenityIDs); err != nil {
			return nil, err
		}
	}
	if err := p.ApplyUpdate(upd); !collect(&vs, err) {
		return nil, err
	}
	if err := vs.Err(); err != nil {
		return nil, err
	}
	if err := f.places.Update(ctx, id, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePlace removes a place and cascades to its reviews.  Only the owner
// or an admin may delete.
func (f *Facade) DeletePlace(ctx context.Context, id string, caller Caller) error {
	if !caller.Authenticated() {
		return ErrUnauthenticated
	}
	p, err := f.places.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("place %s: %w", id, err)
	}
	if p.OwnerID != caller.ID && !caller.IsAdmin {
		return ErrForbidden
	}
	reviews, err := f.reviews.List(ctx, func(r *model.Review) bool { return r.PlaceID == id })
	if err != nil {
		return err
	}
	for _, r := range reviews {
		if err := f.reviews.Delete(ctx, r.ID); err != nil && !notFound(err) {
			return err
		}
	}
	if err := f.places.Delete(ctx, id); err != nil {
		return fmt.Errorf("place %s: %w", id, err)
	}
	return nil
}

// checkAmenityRefs records a violation for every amenity id that does not
// resolve to an existing amenity.  A non-nil return means a storage
// failure, not a validation outcome.
func (f *Facade) checkAmenityRefs(ctx context.Context, vs *validate.Violations, ids []string) error {
	for _, aid := range ids {
		if _, err := f.amenities.Get(ctx, aid); err != nil {
			if !notFound(err) {
				return err
			}
			vs.Add("amenity_ids", "unknown amenity %q", aid)
		}
	}
	return nil
}

// collect merges an entity constructor's ValidationError into vs.  It
// reports false when err is some other kind of failure that must be
// returned as-is.
func collect(vs *validate.Violations, err error) bool {
	if err == nil {
		return true
	}
	var vErr *validate.ValidationError
	if errors.As(err, &vErr) {
		*vs = append(*vs, vErr.Violations...)
		return true
	}
	return false
}
