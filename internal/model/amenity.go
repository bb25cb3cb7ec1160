package model

import (
	"strings"

	"github.com/iliyamo/stayhub/internal/validate"
)

const (
	maxAmenityNameLen = 50
	maxAmenityDescLen = 255
)

// Amenity is a feature that places may reference (wifi, parking, ...).
// Names are unique across all amenities; the facade enforces that before
// any write.
type Amenity struct {
	Base
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AmenityUpdate is a partial payload for mutating an amenity.
type AmenityUpdate struct {
	Name        *string
	Description *string
}

// NewAmenity validates field-level constraints and returns the new amenity.
func NewAmenity(name, description string) (*Amenity, error) {
	name = strings.TrimSpace(name)

	var vs validate.Violations
	vs.Required("name", name)
	vs.MaxLen("name", name, maxAmenityNameLen)
	vs.MaxLen("description", description, maxAmenityDescLen)
	if err := vs.Err(); err != nil {
		return nil, err
	}

	return &Amenity{Base: NewBase(), Name: name, Description: description}, nil
}

// Validate reports the payload's field-level violations without applying
// it.
func (upd AmenityUpdate) Validate() error {
	var vs validate.Violations
	upd.check(&vs)
	return vs.Err()
}

func (upd AmenityUpdate) check(vs *validate.Violations) (name string) {
	if upd.Name != nil {
		name = strings.TrimSpace(*upd.Name)
		vs.Required("name", name)
		vs.MaxLen("name", name, maxAmenityNameLen)
	}
	if upd.Description != nil {
		vs.MaxLen("description", *upd.Description, maxAmenityDescLen)
	}
	return name
}

// ApplyUpdate re-validates only the fields present in the payload, applies
// them and refreshes UpdatedAt.
func (a *Amenity) ApplyUpdate(upd AmenityUpdate) error {
	var vs validate.Violations
	name := upd.check(&vs)
	if err := vs.Err(); err != nil {
		return err
	}

	if upd.Name != nil {
		a.Name = name
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	a.Touch()
	return nil
}

// Clone returns an independent copy.
func (a *Amenity) Clone() *Amenity {
	cp := *a
	return &cp
}
