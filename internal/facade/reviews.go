package facade

import (
	"context"
	"fmt"

	"github.com/iliyamo/stayhub/internal/model"
	"github.com/iliyamo/stayhub/internal/validate"
)

// CreateReviewInput carries the attributes accepted when reviewing a
// place.  An empty UserID defaults to the caller.
type CreateReviewInput struct {
	Rating  int
	Comment string
	PlaceID string
	UserID  string
}

// CreateReview validates the payload and its references and persists the
// new review.  Requires an authenticated caller; reviewing on behalf of
// another user is reserved to admins.  The place's owner may never review
// it, and all violations of one attempt are reported together.
func (f *Facade) CreateReview(ctx context.Context, in CreateReviewInput, caller Caller) (*model.Review, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if in.UserID == "" {
		in.UserID = caller.ID
	}
	if in.UserID != caller.ID && !caller.IsAdmin {
		return nil, fmt.Errorf("cannot review on behalf of another user: %w", ErrForbidden)
	}

	var vs validate.Violations
	r, err := model.NewReview(in.Rating, in.Comment, in.PlaceID, in.UserID)
	if !collect(&vs, err) {
		return nil, err
	}
	if in.UserID != "" {
		if _, err := f.users.Get(ctx, in.UserID); err != nil {
			if !notFound(err) {
				return nil, err
			}
			vs.Add("user_id", "unknown user %q", in.UserID)
		}
	}
	if in.PlaceID != "" {
		p, err := f.places.Get(ctx, in.PlaceID)
		switch {
		case err == nil:
			if p.OwnerID == in.UserID {
				vs.Add("user_id", "owners may not review their own place")
			}
		case notFound(err):
			vs.Add("place_id", "unknown place %q", in.PlaceID)
		default:
			return nil, err
		}
	}
	if err := vs.Err(); err != nil {
		return nil, err
	}

	if err := f.reviews.Add(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// GetReview returns the review with the given id, or ErrNotFound.
func (f *Facade) GetReview(ctx context.Context, id string) (*model.Review, error) {
	r, err := f.reviews.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("review %s: %w", id, err)
	}
	return r, nil
}

// ListReviews returns all reviews in insertion order.
func (f *Facade) ListReviews(ctx context.Context) ([]*model.Review, error) {
	return f.reviews.List(ctx, nil)
}

// ReviewsByPlace returns every review of one place.  The place itself must
// exist; an existing place with no reviews yields an empty list.
func (f *Facade) ReviewsByPlace(ctx context.Context, placeID string) ([]*model.Review, error) {
	if _, err := f.places.Get(ctx, placeID); err != nil {
		return nil, fmt.Errorf("place %s: %w", placeID, err)
	}
	return f.reviews.List(ctx, func(r *model.Review) bool { return r.PlaceID == placeID })
}

// UpdateReview applies a partial update to rating or comment.  Only the
// author or an admin may do so; the place and author references are
// immutable.
func (f *Facade) UpdateReview(ctx context.Context, id string, upd model.ReviewUpdate, caller Caller) (*model.Review, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthenticated
	}
	r, err := f.reviews.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("review %s: %w", id, err)
	}
	if r.UserID != caller.ID && !caller.IsAdmin {
		return nil, ErrForbidden
	}
	if err := r.ApplyUpdate(upd); err != nil {
		return nil, err
	}
	if err := f.reviews.Update(ctx, id, r); err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteReview removes a review.  Only the author or an admin may delete.
func (f *Facade) DeleteReview(ctx context.Context, id string, caller Caller) error {
	if !caller.Authenticated() {
		return ErrUnauthenticated
	}
	r, err := f.reviews.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("review %s: %w", id, err)
	}
	if r.UserID != caller.ID && !caller.IsAdmin {
		return ErrForbidden
	}
	if err := f.reviews.Delete(ctx, id); err != nil {
		return fmt.Errorf("review %s: %w", id, err)
	}
	return nil
}
