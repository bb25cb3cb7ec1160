package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/stayhub/internal/facade"
	"github.com/iliyamo/stayhub/internal/model"
)

// UserHandler exposes user management endpoints.  Creation of regular
// users happens through /auth/register; the POST here exists so admins can
// provision accounts (including other admins) directly.
type UserHandler struct {
	Facade *facade.Facade
}

func NewUserHandler(f *facade.Facade) *UserHandler {
	return &UserHandler{Facade: f}
}

type createUserReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"is_admin"`
}

type updateUserReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

// Create handles POST /v1/users.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	u, err := h.Facade.CreateUser(c.Request().Context(), facade.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	}, callerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

// Get handles GET /v1/users/:id.  The password hash never leaves the
// model's json mapping.
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.Facade.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// List handles GET /v1/users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Facade.ListUsers(c.Request().Context())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Update handles PUT /v1/users/:id.  Id, timestamps and the admin flag are
// immutable through this endpoint; attempts to set them are reported
// together with any field-level violations of the same request.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserReq
	vs, err := bindPatch(c, &req, "id", "created_at", "updated_at", "is_admin")
	if err != nil {
		return respondErr(c, err)
	}
	upd := model.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	if len(vs) > 0 {
		return respondErr(c, mergeViolations(vs, upd.Validate()))
	}
	u, err := h.Facade.UpdateUser(c.Request().Context(), c.Param("id"), upd, callerFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /v1/users/:id.  Rejected with 409 while the user
// still owns places or authored reviews.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.Facade.DeleteUser(c.Request().Context(), c.Param("id"), callerFrom(c)); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
