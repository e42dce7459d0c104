package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tracknest/issuetracker/internal/core/domain"
	"github.com/tracknest/issuetracker/internal/core/ports"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	ID       string `json:"id"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

type resolveResponse struct {
	ID string `json:"id"`
}

// Create handles POST /v1/users. Admin only, enforced by the service.
func (h *UserHandler) Create(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "id must be a valid uuid")
		}
		input.ID = id
	}

	user, err := h.service.Create(c.Request().Context(), ident, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Get handles GET /v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), ident, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List handles GET /v1/users.
func (h *UserHandler) List(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	users, err := h.service.ListAll(c.Request().Context(), ident)
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Delete handles DELETE /v1/users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), ident, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Resolve handles GET /v1/users/resolve?username=<name>.
func (h *UserHandler) Resolve(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	id, err := h.service.ResolveIDByUsername(c.Request().Context(), ident, username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resolveResponse{ID: id.String()})
}

// AllData handles GET /v1/users/:id/data — the aggregated per-user view.
func (h *UserHandler) AllData(c echo.Context) error {
	ident, err := identity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	data, err := h.service.AllDataForUser(c.Request().Context(), ident, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, data)
}
