package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/logging"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/service"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/util"
)

// ProfileEditor is the part of *service.ProfileService the handler needs.
type ProfileEditor interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, email, username, fullName string, bio *string) (*domain.User, error)
}

type ProfileHandler struct {
	profiles ProfileEditor
}

func RegisterProfile(e *echo.Echo, auth Authenticator, profiles ProfileEditor) {
	handler := &ProfileHandler{profiles: profiles}

	group := e.Group("/api/v1/users/me/profile", RequireAuth(auth))
	group.GET("", handler.getProfile)
	group.PUT("", handler.updateProfile)
}

func (h *ProfileHandler) getProfile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	profile, err := h.profiles.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(http.StatusOK, AuthUserResponse{User: toAuthUser(profile)})
}

func (h *ProfileHandler) updateProfile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req struct {
		Email    string  `json:"email"`
		Username string  `json:"username"`
		FullName string  `json:"full_name"`
		Bio      *string `json:"bio"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	profile, err := h.profiles.UpdateProfile(c.Request().Context(), user.ID, req.Email, req.Username, req.FullName, req.Bio)
	if err != nil {
		return profileError(c, err)
	}
	return c.JSON(http.StatusOK, AuthUserResponse{User: toAuthUser(profile)})
}

func profileError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrProfileValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrEmailExists), errors.Is(err, service.ErrUsernameTaken):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))
	default:
		logging.Error(c.Request().Context()).Err(err).Msg("profile request failed")
		return c.JSON(http.StatusInternalServerError, util.Error("unable to process profile"))
	}
}
