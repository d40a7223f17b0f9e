package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
)

// FavoriteRepository persists the user/recipe like relation. Implementations
// must reject a second row for the same (user, recipe) pair. Add reports that
// case as sql.ErrNoRows or a unique violation; Remove reports a missing row as
// sql.ErrNoRows.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, recipeID uuid.UUID) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
	Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	ListByRecipe(ctx context.Context, recipeID uuid.UUID) ([]domain.Favorite, error)
	CountByRecipe(ctx context.Context, recipeID uuid.UUID) (int64, error)
	ListRecipesByUser(ctx context.Context, userID uuid.UUID, filter domain.FavoriteListFilter) ([]domain.FavoriteRecipe, error)
	CountRecipesByUser(ctx context.Context, userID uuid.UUID, filter domain.FavoriteListFilter) (int64, error)
}
