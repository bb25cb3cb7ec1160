// Package repository defines the storage-agnostic collection contract used
// by the facade, together with the sentinel errors shared by every
// implementation.  These sentinels allow higher layers to distinguish
// failure scenarios without depending on a concrete backend: the facade
// wraps them with context and handlers translate them into HTTP status
// codes.
package repository

import "errors"

// ErrNotFound is returned when no entity with the requested id exists.
// Handlers translate it into a 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned by Add when the id is already taken.  New
// entities always receive fresh ids, so hitting this guards against
// implementation bugs rather than user input.  Handlers translate it into
// a 409 response.
var ErrDuplicateID = errors.New("duplicate id")

// ErrStorage wraps backend failures (connection lost, query error).  The
// facade surfaces it as-is without retrying; handlers translate it into a
// 500 response.
var ErrStorage = errors.New("storage failure")
