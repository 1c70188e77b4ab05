package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talentpool/careers-portal/internal/api/metrics"
	"github.com/talentpool/careers-portal/internal/core/ports"
)

// Context keys set by the Auth middleware.
const (
	SessionKey = "session"
	RoleKey    = "role"
)

// Auth resolves the bearer token into a session and injects it into context.
// Resolution re-derives the caller's role from the credential store, so a role
// change propagates into already-issued tokens. Missing, malformed, expired or
// otherwise unverifiable tokens are rejected with 401 before any handler runs.
func Auth(resolver ports.SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthRejectionsTotal.WithLabelValues("bad_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			sess, err := resolver.ResolveSession(c.Request().Context(), parts[1])
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(SessionKey, sess)
			c.Set(RoleKey, sess.Role)

			return next(c)
		}
	}
}
