package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stayhub/internal/facade"
	"github.com/iliyamo/stayhub/internal/model"
	"github.com/iliyamo/stayhub/internal/queue"
	qp "github.com/iliyamo/stayhub/internal/service"
)

// ReviewHandler exposes review endpoints.  Reads are public; writes
// require authentication and the facade enforces authorship and the
// no-self-review rule.
type ReviewHandler struct {
	Facade  *facade.Facade
	Publish bool // emit review.created events to the broker
}

func NewReviewHandler(f *facade.Facade, publish bool) *ReviewHandler {
	return &ReviewHandler{Facade: f, Publish: publish}
}

type createReviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	PlaceID string `json:"place_id"`
	UserID  string `json:"user_id"`
}

type updateReviewReq struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// Create handles POST /v1/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	r, err := h.Facade.CreateReview(c.Request().Context(), facade.CreateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
		PlaceID: req.PlaceID,
		UserID:  req.UserID,
	}, callerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	if h.Publish {
		_ = qp.PublishReviewCreated(c.Request().Context(), queue.ReviewCreatedEvent{
			ReviewID:  r.ID,
			PlaceID:   r.PlaceID,
			AuthorID:  r.UserID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, r)
}

// Get handles GET /v1/reviews/:id.
func (h *ReviewHandler) Get(c echo.Context) error {
	r, err := h.Facade.GetReview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// List handles GET /v1/reviews.
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.Facade.ListReviews(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// ListByPlace handles GET /v1/places/:id/reviews.
func (h *ReviewHandler) ListByPlace(c echo.Context) error {
	reviews, err := h.Facade.ReviewsByPlace(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// Update handles PUT /v1/reviews/:id.  The place and author references
// are immutable; attempts to set them are reported together with any
// field-level violations of the same request.
func (h *ReviewHandler) Update(c echo.Context) error {
	var req updateReviewReq
	vs, err := bindPatch(c, &req, "id", "created_at", "updated_at", "place_id", "user_id")
	if err != nil {
		return respondErr(c, err)
	}
	upd := model.ReviewUpdate{
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if len(vs) > 0 {
		return respondErr(c, mergeViolations(vs, upd.Validate()))
	}
	r, err := h.Facade.UpdateReview(c.Request().Context(), c.Param("id"), upd, callerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /v1/reviews/:id.
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.Facade.DeleteReview(c.Request().Context(), c.Param("id"), callerFrom(c)); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
