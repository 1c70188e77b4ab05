package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talentpool/careers-portal/internal/api/metrics"
	"github.com/talentpool/careers-portal/internal/core/domain"
)

// RBAC enforces role-based access control. Runs after Auth: the caller is
// already authenticated, so a role mismatch is 403, not 401.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(RoleKey).(domain.Role)
			if _, ok := allowed[role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
