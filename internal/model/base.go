// Package model defines the business entities of the platform: User,
// Place, Review and Amenity.  Every entity embeds Base, which carries the
// identity and timestamp contract shared by all of them.  Constructors
// validate field-level constraints and return an aggregated
// ValidationError; nothing in this package talks to storage or the
// network.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Base holds the attributes common to every entity.
//
// Fields:
//  ID        – UUID string generated at creation, immutable, the sole lookup key.
//  CreatedAt – set once at creation, immutable.
//  UpdatedAt – equals CreatedAt until the first successful update, then
//              refreshed by Touch on every mutation.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBase assigns a fresh id and identical creation/update timestamps.
func NewBase() Base {
	now := time.Now().UTC()
	return Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// Touch refreshes UpdatedAt.  Called after every successful mutation.
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// EntityID satisfies the repository's Entity contract.
func (b *Base) EntityID() string {
	return b.ID
}
