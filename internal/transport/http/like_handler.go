package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/util"
)

// LikeTracker is the part of *service.LikeTracker the handler needs.
type LikeTracker interface {
	FetchState(ctx context.Context, token string, recipeID uuid.UUID) domain.LikeState
	Toggle(ctx context.Context, token string, recipeID uuid.UUID, current domain.LikeState) domain.LikeState
}

type LikeHandler struct {
	tracker LikeTracker
}

// RegisterLikes mounts the like routes without auth middleware; the tracker
// resolves the bearer token through its IdentityProvider.
func RegisterLikes(e *echo.Echo, tracker LikeTracker) {
	handler := &LikeHandler{tracker: tracker}

	group := e.Group("/api/v1/recipes/:id/likes")
	group.GET("", handler.getState)
	group.POST("/toggle", handler.toggle)
}

func (h *LikeHandler) getState(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("invalid recipe id"))
	}
	state := h.tracker.FetchState(c.Request().Context(), bearerToken(c), id)
	return c.JSON(http.StatusOK, toLikeStateResponse(id, state))
}

// toggle flips the caller's like. The body carries the state the caller was
// showing; an anonymous caller gets it back unchanged.
func (h *LikeHandler) toggle(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("invalid recipe id"))
	}

	var req struct {
		Liked bool  `json:"liked"`
		Count int64 `json:"count"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	current := domain.LikeState{Liked: req.Liked, Count: req.Count}
	next := h.tracker.Toggle(c.Request().Context(), bearerToken(c), id, current)
	return c.JSON(http.StatusOK, toLikeStateResponse(id, next))
}

// bearerToken returns the caller's token or "" for a missing or malformed
// header.
func bearerToken(c echo.Context) string {
	token, _ := parseBearer(c.Request().Header.Get(echo.HeaderAuthorization))
	return token
}

func toLikeStateResponse(recipeID uuid.UUID, state domain.LikeState) LikeStateResponse {
	return LikeStateResponse{RecipeID: recipeID, Liked: state.Liked, Count: state.Count}
}
