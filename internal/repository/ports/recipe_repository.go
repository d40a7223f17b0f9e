package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
)

type RecipeRepository interface {
	Create(ctx context.Context, userID uuid.UUID, fields domain.RecipeFields) (*domain.Recipe, error)
	Update(ctx context.Context, id uuid.UUID, fields domain.RecipeFields) (*domain.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	List(ctx context.Context, filter domain.RecipeListFilter) ([]domain.Recipe, error)
	Count(ctx context.Context, filter domain.RecipeListFilter) (int64, error)
}
