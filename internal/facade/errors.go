package facade

import "errors"

// Typed failures returned by facade operations, alongside
// *validate.ValidationError (aggregated field violations) and the
// repository sentinels ErrNotFound / ErrDuplicateID / ErrStorage.  The
// facade wraps these with context (which field, which id) so callers can
// act on the message while still matching with errors.Is.

// ErrUnauthenticated is returned when an operation requires a caller
// identity and none was supplied.  Maps to 401.
var ErrUnauthenticated = errors.New("authentication required")

// ErrForbidden is returned when the caller's identity is valid but lacks
// permission for the operation.  Maps to 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned on uniqueness violations (duplicate email or
// amenity name) and when a delete is blocked by dependent entities.  Maps
// to 409.
var ErrConflict = errors.New("conflict")
