package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/logging"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/service"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/util"
)

// AccountService is the part of *service.AuthService the auth routes need.
type AccountService interface {
	Authenticator
	RegisterWithEmail(ctx context.Context, email, password, username, fullName string) (*service.AuthResult, error)
	LoginWithEmail(ctx context.Context, email, password string) (*service.AuthResult, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*service.AuthResult, error)
	Logout(ctx context.Context, token string) error
}

type AuthHandler struct {
	auth AccountService
}

func RegisterAuth(e *echo.Echo, auth AccountService) {
	handler := &AuthHandler{auth: auth}

	group := e.Group("/api/v1/auth")
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
	group.POST("/google", handler.google)
	group.POST("/logout", handler.logout, RequireAuth(auth))
	group.GET("/me", handler.me, RequireAuth(auth))
}

func (h *AuthHandler) register(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Username string `json:"username"`
		FullName string `json:"full_name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.RegisterWithEmail(c.Request().Context(), req.Email, req.Password, req.Username, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooWeak), errors.Is(err, service.ErrProfileValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrEmailExists), errors.Is(err, service.ErrUsernameTaken):
			return c.JSON(http.StatusConflict, util.Error(err.Error()))
		default:
			logging.Error(c.Request().Context()).Err(err).Msg("register failed")
			return c.JSON(http.StatusInternalServerError, util.Error("unable to create account"))
		}
	}
	return c.JSON(http.StatusCreated, toAuthTokenResponse(result))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.LoginWithEmail(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		}
		logging.Error(c.Request().Context()).Err(err).Msg("login failed")
		return c.JSON(http.StatusInternalServerError, util.Error("unable to sign in"))
	}
	return c.JSON(http.StatusOK, toAuthTokenResponse(result))
}

func (h *AuthHandler) google(c echo.Context) error {
	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := c.Bind(&req); err != nil || req.IDToken == "" {
		return c.JSON(http.StatusBadRequest, util.Error("id_token is required"))
	}

	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGoogleLoginDisabled):
			return c.JSON(http.StatusNotImplemented, util.Error(err.Error()))
		case errors.Is(err, service.ErrInvalidGoogleToken):
			return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
		default:
			logging.Error(c.Request().Context()).Err(err).Msg("google login failed")
			return c.JSON(http.StatusInternalServerError, util.Error("unable to sign in"))
		}
	}
	return c.JSON(http.StatusOK, toAuthTokenResponse(result))
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), CurrentToken(c)); err != nil {
		logging.Error(c.Request().Context()).Err(err).Msg("logout failed")
		return c.JSON(http.StatusInternalServerError, util.Error("unable to sign out"))
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, AuthUserResponse{User: toAuthUser(user)})
}
