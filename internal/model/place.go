package model

import (
	"strings"

	"github.com/iliyamo/stayhub/internal/validate"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 1000
)

// Place is a listing offered by exactly one owner.  OwnerID is fixed at
// creation; AmenityIDs is a set of amenity references that the facade
// checks against existing amenities before any write.
type Place struct {
	Base
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	OwnerID     string   `json:"owner_id"`
	AmenityIDs  []string `json:"amenity_ids"`
}

// PlaceUpdate is a partial payload for mutating a place.  OwnerID is
// immutable and therefore absent.
type PlaceUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Latitude    *float64
	Longitude   *float64
	AmenityIDs  *[]string
}

// NewPlace validates field-level constraints and returns the new place.
// Duplicate amenity ids in the input are collapsed, preserving order.
func NewPlace(title, description string, price, latitude, longitude float64, ownerID string, amenityIDs []string) (*Place, error) {
	title = strings.TrimSpace(title)

	var vs validate.Violations
	vs.Required("title", title)
	vs.MaxLen("title", title, maxTitleLen)
	vs.MaxLen("description", description, maxDescriptionLen)
	vs.NonNegative("price", price)
	vs.Range("latitude", latitude, -90, 90)
	vs.Range("longitude", longitude, -180, 180)
	vs.Required("owner_id", ownerID)
	if err := vs.Err(); err != nil {
		return nil, err
	}

	return &Place{
		Base:        NewBase(),
		Title:       title,
		Description: description,
		Price:       price,
		Latitude:    latitude,
		Longitude:   longitude,
		OwnerID:     ownerID,
		AmenityIDs:  dedupe(amenityIDs),
	}, nil
}

// Validate reports the payload's field-level violations without applying
// it.
func (upd PlaceUpdate) Validate() error {
	var vs validate.Violations
	upd.check(&vs)
	return vs.Err()
}

func (upd PlaceUpdate) check(vs *validate.Violations) (title string) {
	if upd.Title != nil {
		title = strings.TrimSpace(*upd.Title)
		vs.Required("title", title)
		vs.MaxLen("title", title, maxTitleLen)
	}
	if upd.Description != nil {
		vs.MaxLen("description", *upd.Description, maxDescriptionLen)
	}
	if upd.Price != nil {
		vs.NonNegative("price", *upd.Price)
	}
	if upd.Latitude != nil {
		vs.Range("latitude", *upd.Latitude, -90, 90)
	}
	if upd.Longitude != nil {
		vs.Range("longitude", *upd.Longitude, -180, 180)
	}
	return title
}

// ApplyUpdate re-validates only the fields present in the payload, applies
// them and refreshes UpdatedAt.
func (p *Place) ApplyUpdate(upd PlaceUpdate) error {
	var vs validate.Violations
	title := upd.check(&vs)
	if err := vs.Err(); err != nil {
		return err
	}

	if upd.Title != nil {
		p.Title = title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Latitude != nil {
		p.Latitude = *upd.Latitude
	}
	if upd.Longitude != nil {
		p.Longitude = *upd.Longitude
	}
	if upd.AmenityIDs != nil {
		p.AmenityIDs = dedupe(*upd.AmenityIDs)
	}
	p.Touch()
	return nil
}

// HasAmenity reports whether the place references the given amenity.
func (p *Place) HasAmenity(id string) bool {
	for _, a := range p.AmenityIDs {
		if a == id {
			return true
		}
	}
	return false
}

// RemoveAmenity drops a reference from the set.  It reports whether the
// reference was present.
func (p *Place) RemoveAmenity(id string) bool {
	for i, a := range p.AmenityIDs {
		if a == id {
			p.AmenityIDs = append(p.AmenityIDs[:i:i], p.AmenityIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns an independent copy, including the amenity set.
func (p *Place) Clone() *Place {
	cp := *p
	cp.AmenityIDs = append([]string(nil), p.AmenityIDs...)
	return &cp
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
