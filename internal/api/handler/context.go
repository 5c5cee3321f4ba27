package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/identik/identity-service/internal/core/domain"
)

// ctxSession reassembles the authenticated session injected by the Session
// middleware and fast-fails before any service call: a present user_id and
// jti prove the middleware ran and the token passed validation.
func ctxSession(c echo.Context) (domain.Session, error) {
	userID, _ := c.Get("user_id").(string)
	jti, _ := c.Get("jti").(string)
	if userID == "" || jti == "" {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	expiresAt, _ := c.Get("token_expires_at").(time.Time)

	return domain.Session{UserID: userID, JTI: jti, ExpiresAt: expiresAt}, nil
}
