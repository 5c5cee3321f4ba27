package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/identik/identity-service/internal/core/ports"
)

// Session validates the bearer token through the session service (signature,
// expiry, and revocation) and injects the authenticated identity into the
// echo context under "user_id", "jti", and "token_expires_at".
func Session(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			sess, err := sessions.Validate(c.Request().Context(), parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user_id", sess.UserID)
			c.Set("jti", sess.JTI)
			c.Set("token_expires_at", sess.ExpiresAt)

			return next(c)
		}
	}
}
