package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is one "user likes recipe" row. The store keeps (user_id,
// recipe_id) unique; rows are inserted or deleted, never updated.
type Favorite struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	RecipeID  uuid.UUID `db:"recipe_id" json:"recipe_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FavoriteRecipe is a recipe as it appears on a user's favorites page.
type FavoriteRecipe struct {
	Recipe
	SavedAt time.Time `db:"saved_at" json:"saved_at"`
}

type FavoriteListFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}
