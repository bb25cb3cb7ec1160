package facade

import (
	"context"

	"github.com/iliyamo/stayhub/internal/model"
	"github.com/iliyamo/stayhub/internal/validate"
)

// PlaceFilter defines the optional criteria for searching places: a price
// range, a geographic bounding box, and amenity membership.  Nil bounds
// are not applied.
type PlaceFilter struct {
	MinPrice     *float64
	MaxPrice     *float64
	MinLatitude  *float64
	MaxLatitude  *float64
	MinLongitude *float64
	MaxLongitude *float64
	AmenityID    string
}

// validate rejects impossible bounds before any store query runs.
func (pf PlaceFilter) validate() error {
	var vs validate.Violations
	if pf.MinPrice != nil {
		vs.NonNegative("min_price", *pf.MinPrice)
	}
	if pf.MaxPrice != nil {
		vs.NonNegative("max_price", *pf.MaxPrice)
	}
	if pf.MinPrice != nil && pf.MaxPrice != nil && *pf.MinPrice > *pf.MaxPrice {
		vs.Add("min_price", "must not exceed max_price")
	}
	if pf.MinLatitude != nil {
		vs.Range("min_latitude", *pf.MinLatitude, -90, 90)
	}
	if pf.MaxLatitude != nil {
		vs.Range("max_latitude", *pf.MaxLatitude, -90, 90)
	}
	if pf.MinLatitude != nil && pf.MaxLatitude != nil && *pf.MinLatitude > *pf.MaxLatitude {
		vs.Add("min_latitude", "must not exceed max_latitude")
	}
	if pf.MinLongitude != nil {
		vs.Range("min_longitude", *pf.MinLongitude, -180, 180)
	}
	if pf.MaxLongitude != nil {
		vs.Range("max_longitude", *pf.MaxLongitude, -180, 180)
	}
	if pf.MinLongitude != nil && pf.MaxLongitude != nil && *pf.MinLongitude > *pf.MaxLongitude {
		vs.Add("min_longitude", "must not exceed max_longitude")
	}
	return vs.Err()
}

func (pf PlaceFilter) matches(p *model.Place) bool {
	if pf.MinPrice != nil && p.Price < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.Price > *pf.MaxPrice {
		return false
	}
	if pf.MinLatitude != nil && p.Latitude < *pf.MinLatitude {
		return false
	}
	if pf.MaxLatitude != nil && p.Latitude > *pf.MaxLatitude {
		return false
	}
	if pf.MinLongitude != nil && p.Longitude < *pf.MinLongitude {
		return false
	}
	if pf.MaxLongitude != nil && p.Longitude > *pf.MaxLongitude {
		return false
	}
	if pf.AmenityID != "" && !p.HasAmenity(pf.AmenityID) {
		return false
	}
	return true
}

// SearchPlaces returns every place matching the filter, in insertion
// order.  An empty result is a valid outcome, not an error; invalid filter
// bounds produce a ValidationError before the store is consulted.
func (f *Facade) SearchPlaces(ctx context.Context, filter PlaceFilter) ([]*model.Place, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}
	return f.places.List(ctx, filter.matches)
}
