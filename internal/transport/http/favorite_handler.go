package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/logging"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/service"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/util"
)

// FavoriteLister is the part of *service.FavoriteService the handler needs.
type FavoriteLister interface {
	ListFavorites(ctx context.Context, userID uuid.UUID, filter domain.FavoriteListFilter) (*service.FavoriteListResult, error)
}

type FavoriteHandler struct {
	favorites FavoriteLister
}

func RegisterFavorites(e *echo.Echo, auth Authenticator, favorites FavoriteLister) {
	handler := &FavoriteHandler{favorites: favorites}

	protected := e.Group("/api/v1/users/me/favorites", RequireAuth(auth))
	protected.GET("", handler.listFavorites)
}

func (h *FavoriteHandler) listFavorites(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	limit, offset := parsePagination(c, 20, 0)
	result, err := h.favorites.ListFavorites(c.Request().Context(), user.ID, domain.FavoriteListFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		logging.Error(c.Request().Context()).Err(err).Msg("list favorites failed")
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load favorites"))
	}

	items := make([]FavoriteRecipeResponse, 0, len(result.Items))
	for i := range result.Items {
		item := &result.Items[i]
		items = append(items, FavoriteRecipeResponse{
			RecipeResponse: toRecipeResponse(&item.Recipe),
			SavedAt:        item.SavedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, util.Page("items", items, result.Total, result.Limit, result.Offset, len(items)))
}
