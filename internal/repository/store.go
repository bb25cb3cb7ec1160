package repository

import "context"

// Entity is anything the stores can hold: it only needs to expose its id.
// All model types satisfy this through their embedded Base.
type Entity interface {
	EntityID() string
}

// Store is the collection contract, one instance per entity type.  The
// facade depends on nothing beyond these five operations, so the backend
// can be swapped (in-memory today, MySQL behind the same interface) without
// touching business logic.
//
// Guarantees every implementation must honor:
//   - Add fails with ErrDuplicateID when the id already exists.
//   - Get/Update/Delete fail with ErrNotFound when the id is absent.
//   - Update replaces the stored value atomically; a failed update leaves
//     the prior value untouched and no caller ever observes a partial write.
//   - List returns a finite snapshot of all entities matching the filter,
//     in insertion order.  A nil filter matches everything.
type Store[T Entity] interface {
	Add(ctx context.Context, e T) error
	Get(ctx context.Context, id string) (T, error)
	Update(ctx context.Context, id string, e T) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, match func(T) bool) ([]T, error)
}
