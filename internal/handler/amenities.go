package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stayhub/internal/facade"
	"github.com/iliyamo/stayhub/internal/model"
)

// AmenityHandler exposes the amenity catalog.  Reads are public; the
// catalog is curated, so mutations are restricted to admins both by route
// middleware and by the facade.
type AmenityHandler struct {
	Facade *facade.Facade
}

func NewAmenityHandler(f *facade.Facade) *AmenityHandler {
	return &AmenityHandler{Facade: f}
}

type createAmenityReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateAmenityReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Create handles POST /v1/amenities.
func (h *AmenityHandler) Create(c echo.Context) error {
	var req createAmenityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	a, err := h.Facade.CreateAmenity(c.Request().Context(), facade.CreateAmenityInput{
		Name:        req.Name,
		Description: req.Description,
	}, callerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// Get handles GET /v1/amenities/:id.
func (h *AmenityHandler) Get(c echo.Context) error {
	a, err := h.Facade.GetAmenity(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// List handles GET /v1/amenities.
func (h *AmenityHandler) List(c echo.Context) error {
	amenities, err := h.Facade.ListAmenities(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, amenities)
}

// Update handles PUT /v1/amenities/:id.
func (h *AmenityHandler) Update(c echo.Context) error {
	var req updateAmenityReq
	vs, err := bindPatch(c, &req, "id", "created_at", "updated_at")
	if err != nil {
		return respondErr(c, err)
	}
	upd := model.AmenityUpdate{
		Name:        req.Name,
		Description: req.Description,
	}
	if len(vs) > 0 {
		return respondErr(c, mergeViolations(vs, upd.Validate()))
	}
	a, err := h.Facade.UpdateAmenity(c.Request().Context(), c.Param("id"), upd, callerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// Delete handles DELETE /v1/amenities/:id.  The amenity is stripped from
// every place referencing it; the places themselves survive.
func (h *AmenityHandler) Delete(c echo.Context) error {
	if err := h.Facade.DeleteAmenity(c.Request().Context(), c.Param("id"), callerFrom(c)); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
