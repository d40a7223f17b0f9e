package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, recipeID, userID uuid.UUID, content string) (*domain.Comment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	ListByRecipe(ctx context.Context, recipeID uuid.UUID) ([]domain.Comment, error)
	// DeleteOwned removes the comment only when userID wrote it.
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) error
}
