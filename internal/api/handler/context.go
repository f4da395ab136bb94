package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/project-portal/internal/api/middleware"
	"github.com/campusworks/project-portal/internal/core/domain"
)

// ctxIdentity extracts the identity resolved by the Session middleware.
// Its presence proves the middleware ran; a handler reached without it is
// a routing mistake and is rejected with 401.
func ctxIdentity(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.IdentityKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}
	return user, nil
}
