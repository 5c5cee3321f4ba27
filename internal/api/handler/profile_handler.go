package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identik/identity-service/internal/core/domain"
	"github.com/identik/identity-service/internal/core/ports"
)

type ProfileHandler struct {
	sessions ports.SessionService
}

func NewProfileHandler(sessions ports.SessionService) *ProfileHandler {
	return &ProfileHandler{sessions: sessions}
}

// Get returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Security     BearerAuth
// @Produce      json
// @Success      200   {object}  userResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	user, err := h.sessions.GetProfile(c.Request().Context(), sess.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update mutates the authenticated user's profile fields. Changing username
// or email does not invalidate existing sessions; tokens bind the immutable
// user ID.
//
// @Summary      Update own profile
// @Tags         profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.sessions.UpdateProfile(c.Request().Context(), sess.UserID, domain.ProfileChanges{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ChangePassword rotates the authenticated user's password and revokes the
// presenting session.
//
// @Summary      Change password
// @Tags         profile
// @Security     BearerAuth
// @Accept       json
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/password [put]
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.ChangePassword(
		c.Request().Context(),
		sess.UserID, sess.JTI, sess.ExpiresAt,
		req.CurrentPassword, req.NewPassword,
	); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
