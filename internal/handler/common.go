package handler // handler defines http handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stayhub/internal/facade"
	"github.com/iliyamo/stayhub/internal/repository"
	"github.com/iliyamo/stayhub/internal/validate"
)

// errBadBody marks an unparseable request body.
var errBadBody = errors.New("invalid body")

// callerFrom builds the facade's Caller from the identity that JWTAuth put
// in the context.  On public routes nothing was stored and the zero Caller
// (unauthenticated) comes back.
func callerFrom(c echo.Context) facade.Caller {
	var caller facade.Caller
	if v, ok := c.Get("user_id").(string); ok {
		caller.ID = v
	}
	if v, ok := c.Get("is_admin").(bool); ok {
		caller.IsAdmin = v
	}
	return caller
}

// bindPatch decodes a partial-update body into dst and returns one
// violation per immutable field present in the raw payload.  Attempting to
// set an immutable field is a hard validation error, not a silent no-op.
// The body is bound even when such attempts exist, so the caller can still
// validate the mutable fields and report everything in one response.
func bindPatch(c echo.Context, dst any, immutable ...string) (validate.Violations, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, errBadBody
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errBadBody
	}
	var vs validate.Violations
	for _, f := range immutable {
		if _, ok := raw[f]; ok {
			vs.Add(f, "field is immutable")
		}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return nil, errBadBody
	}
	return vs, nil
}

// mergeViolations folds the violations carried by err (if any) into vs
// and returns the aggregate.
func mergeViolations(vs validate.Violations, err error) error {
	var vErr *validate.ValidationError
	if errors.As(err, &vErr) {
		vs = append(vs, vErr.Violations...)
	}
	return vs.Err()
}

// respondErr maps the facade's error taxonomy onto transport status codes.
// Validation failures carry the full violation list; everything unknown is
// treated as a storage-level failure and logged.
func respondErr(c echo.Context, err error) error {
	var vErr *validate.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "violations": vErr.Violations})
	case errors.Is(err, errBadBody):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	case errors.Is(err, facade.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	case errors.Is(err, facade.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, facade.ErrConflict), errors.Is(err, repository.ErrDuplicateID):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
