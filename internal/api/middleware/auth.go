package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tracknest/issuetracker/internal/api/metrics"
	"github.com/tracknest/issuetracker/internal/core/ports"
)

// IdentityKey is the echo context key the verified identity is stored
// under. Handlers read it back via handler.Identity.
const IdentityKey = "identity"

// Auth verifies the bearer token and injects the resulting identity into
// the request context. The identity is built exactly once per request;
// everything downstream receives it as an explicit value.
func Auth(codec ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthDeniedTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthDeniedTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			ident, err := codec.Verify(parts[1])
			if err != nil {
				metrics.AuthDeniedTotal.Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(IdentityKey, ident)
			return next(c)
		}
	}
}
