package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/project-portal/internal/core/domain"
)

// RequireRole enforces role-based access control on top of Session.
// The identity must already be resolved; an unexpected missing identity
// is treated as unauthorized rather than forbidden.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(IdentityKey).(*domain.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}
