// Package facade is the single entry point between the HTTP layer and
// persistence.  Every business operation lives here: the facade sequences
// field-level validation, authorization preconditions, cross-entity checks
// against current store state, and finally the repository write, returning
// either the affected entity or one of the typed failures from errors.go.
// Handlers translate those failures into status codes; nothing above this
// package touches a store directly (the auth handler's credential check is
// the one sanctioned exception, since the facade never verifies
// credentials).
package facade

import (
	"github.com/iliyamo/stayhub/internal/model"
	"github.com/iliyamo/stayhub/internal/repository"
)

// Caller is the already-authenticated identity resolved by the API layer
// (JWT middleware).  A zero Caller means the request carried no valid
// identity.
type Caller struct {
	ID      string
	IsAdmin bool
}

// Authenticated reports whether the caller carries an identity.
func (c Caller) Authenticated() bool { return c.ID != "" }

// Stores bundles one repository per entity type.
type Stores struct {
	Users     repository.Store[*model.User]
	Places    repository.Store[*model.Place]
	Reviews   repository.Store[*model.Review]
	Amenities repository.Store[*model.Amenity]
}

// Facade coordinates all business operations.  It is constructed once at
// startup with injected stores and holds no state of its own beyond them,
// so it is safe for concurrent use as long as the stores are.
type Facade struct {
	users      repository.Store[*model.User]
	places     repository.Store[*model.Place]
	reviews    repository.Store[*model.Review]
	amenities  repository.Store[*model.Amenity]
	bcryptCost int
}

// New builds a facade over the given stores.  bcryptCost is forwarded to
// password hashing on user creation and password updates.
func New(st Stores, bcryptCost int) *Facade {
	return &Facade{
		users:      st.Users,
		places:     st.Places,
		reviews:    st.Reviews,
		amenities:  st.Amenities,
		bcryptCost: bcryptCost,
	}
}

// NewInMemory builds a facade over fresh in-memory stores with the given
// bcrypt cost.  Used for the default store driver and throughout the
// tests (which pass the minimum cost to stay fast).
func NewInMemory(bcryptCost int) *Facade {
	return New(Stores{
		Users:     repository.NewMemory((*model.User).Clone),
		Places:    repository.NewMemory((*model.Place).Clone),
		Reviews:   repository.NewMemory((*model.Review).Clone),
		Amenities: repository.NewMemory((*model.Amenity).Clone),
	}, bcryptCost)
}
