package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusworks/project-portal/internal/core/ports"
)

const (
	// SessionCookieName is the cookie the session credential travels in.
	SessionCookieName = "token"
	// IdentityKey is the echo context key holding the resolved *domain.User.
	IdentityKey = "identity"
)

// Session resolves the request's identity: it reads the session cookie,
// verifies the token, checks revocation, loads the user, and stores the
// identity in the request context. Requests without a valid, live session
// are rejected with 401.
//
// A revocation-store outage fails open: the token signature is still the
// primary guarantee, revocation is best effort.
func Session(codec ports.TokenCodec, users ports.UserRepository, sessions ports.SessionStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			}

			userID, tokenID, _, err := codec.Verify(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if tokenID != "" {
				revoked, err := sessions.IsRevoked(c.Request().Context(), tokenID)
				if err != nil {
					log.Warn().Err(err).Msg("revocation check failed, accepting token")
				} else if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				}
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				// The user behind a valid token no longer exists.
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			}

			c.Set(IdentityKey, user)
			return next(c)
		}
	}
}
