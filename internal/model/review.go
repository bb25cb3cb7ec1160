package model

import (
	"strings"

	"github.com/iliyamo/stayhub/internal/validate"
)

const maxCommentLen = 1000

// Review is authored by one user about one place.  Both references are
// fixed at creation; only the rating and comment can change afterwards.
// The facade rejects reviews where the author owns the place.
type Review struct {
	Base
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	PlaceID string `json:"place_id"`
	UserID  string `json:"user_id"`
}

// ReviewUpdate is a partial payload for mutating a review.
type ReviewUpdate struct {
	Rating  *int
	Comment *string
}

// NewReview validates field-level constraints and returns the new review.
func NewReview(rating int, comment, placeID, userID string) (*Review, error) {
	comment = strings.TrimSpace(comment)

	var vs validate.Violations
	vs.Range("rating", float64(rating), 1, 5)
	vs.Required("comment", comment)
	vs.MaxLen("comment", comment, maxCommentLen)
	vs.Required("place_id", placeID)
	vs.Required("user_id", userID)
	if err := vs.Err(); err != nil {
		return nil, err
	}

	return &Review{
		Base:    NewBase(),
		Rating:  rating,
		Comment: comment,
		PlaceID: placeID,
		UserID:  userID,
	}, nil
}

// Validate reports the payload's field-level violations without applying
// it.
func (upd ReviewUpdate) Validate() error {
	var vs validate.Violations
	upd.check(&vs)
	return vs.Err()
}

func (upd ReviewUpdate) check(vs *validate.Violations) (comment string) {
	if upd.Rating != nil {
		vs.Range("rating", float64(*upd.Rating), 1, 5)
	}
	if upd.Comment != nil {
		comment = strings.TrimSpace(*upd.Comment)
		vs.Required("comment", comment)
		vs.MaxLen("comment", comment, maxCommentLen)
	}
	return comment
}

// ApplyUpdate re-validates only the fields present in the payload, applies
// them and refreshes UpdatedAt.
func (r *Review) ApplyUpdate(upd ReviewUpdate) error {
	var vs validate.Violations
	comment := upd.check(&vs)
	if err := vs.Err(); err != nil {
		return err
	}

	if upd.Rating != nil {
		r.Rating = *upd.Rating
	}
	if upd.Comment != nil {
		r.Comment = comment
	}
	r.Touch()
	return nil
}

// Clone returns an independent copy.
func (r *Review) Clone() *Review {
	cp := *r
	return &cp
}
