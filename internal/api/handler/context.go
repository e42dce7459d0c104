package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tracknest/issuetracker/internal/api/middleware"
	"github.com/tracknest/issuetracker/internal/core/domain"
)

// identity extracts the caller's identity injected by the Auth
// middleware. Its absence means the middleware did not run on this
// route, which is a wiring bug surfaced as 401 rather than a panic.
func identity(c echo.Context) (domain.Identity, error) {
	ident, ok := c.Get(middleware.IdentityKey).(domain.Identity)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return ident, nil
}

// pathID parses the named path parameter as a UUID.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a valid uuid")
	}
	return id, nil
}
