package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stayhub/internal/facade"
	"github.com/iliyamo/stayhub/internal/model"
	"github.com/iliyamo/stayhub/internal/queue"
	qp "github.com/iliyamo/stayhub/internal/service"
	"github.com/iliyamo/stayhub/internal/validate"
)

// PlaceHandler exposes listing endpoints.  Reads are public; writes
// require the JWT middleware and go through the facade, which enforces
// ownership.
type PlaceHandler struct {
	Facade  *facade.Facade
	Publish bool // emit place.created events to the broker
}

func NewPlaceHandler(f *facade.Facade, publish bool) *PlaceHandler {
	return &PlaceHandler{Facade: f, Publish: publish}
}

type createPlaceReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	OwnerID     string   `json:"owner_id"`
	AmenityIDs  []string `json:"amenity_ids"`
}

type updatePlaceReq struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	AmenityIDs  *[]string `json:"amenity_ids"`
}

// Create handles POST /v1/places.  On success a place.created event is
// published best effort; a broker outage never fails the request.
func (h *PlaceHandler) Create(c echo.Context) error {
	var req createPlaceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	p, err := h.Facade.CreatePlace(c.Request().Context(), facade.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     req.OwnerID,
		AmenityIDs:  req.AmenityIDs,
	}, callerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	if h.Publish {
		_ = qp.PublishPlaceCreated(c.Request().Context(), queue.PlaceCreatedEvent{
			PlaceID:   p.ID,
			OwnerID:   p.OwnerID,
			Title:     p.Title,
			Price:     p.Price,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, p)
}

// Get handles GET /v1/places/:id.
func (h *PlaceHandler) Get(c echo.Context) error {
	p, err := h.Facade.GetPlace(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// List handles GET /v1/places with optional filter criteria in the query
// string: min_price, max_price, min_latitude, max_latitude, min_longitude,
// max_longitude and amenity_id.  Unfiltered, it returns every place; no
// matches is an empty list, not an error.
func (h *PlaceHandler) List(c echo.Context) error {
	var vs validate.Violations
	filter := facade.PlaceFilter{
		MinPrice:     parseFloat(c, "min_price", &vs),
		MaxPrice:     parseFloat(c, "max_price", &vs),
		MinLatitude:  parseFloat(c, "min_latitude", &vs),
		MaxLatitude:  parseFloat(c, "max_latitude", &vs),
		MinLongitude: parseFloat(c, "min_longitude", &vs),
		MaxLongitude: parseFloat(c, "max_longitude", &vs),
		AmenityID:    c.QueryParam("amenity_id"),
	}
	if err := vs.Err(); err != nil {
		return respondErr(c, err)
	}
	places, err := h.Facade.SearchPlaces(c.Request().Context(), filter)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, places)
}

// Update handles PUT /v1/places/:id.  The owner reference is immutable;
// attempts to set it are reported together with any field-level
// violations of the same request.
func (h *PlaceHandler) Update(c echo.Context) error {
	var req updatePlaceReq
	vs, err := bindPatch(c, &req, "id", "created_at", "updated_at", "owner_id")
	if err != nil {
		return respondErr(c, err)
	}
	upd := model.PlaceUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AmenityIDs:  req.AmenityIDs,
	}
	if len(vs) > 0 {
		return respondErr(c, mergeViolations(vs, upd.Validate()))
	}
	p, err := h.Facade.UpdatePlace(c.Request().Context(), c.Param("id"), upd, callerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/places/:id.  Reviews of the place are removed
// with it.
func (h *PlaceHandler) Delete(c echo.Context) error {
	if err := h.Facade.DeletePlace(c.Request().Context(), c.Param("id"), callerFrom(c)); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// parseFloat reads an optional float query parameter, recording a
// violation when the value is present but not numeric.
func parseFloat(c echo.Context, name string, vs *validate.Violations) *float64 {
	s := c.QueryParam(name)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		vs.Add(name, "must be a number")
		return nil
	}
	return &f
}
