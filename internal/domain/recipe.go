package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

var DefaultRecipeCategories = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Dessert",
	"Snack",
	"Drink",
}

type Recipe struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	UserID       uuid.UUID      `db:"user_id" json:"user_id"`
	Title        string         `db:"title" json:"title"`
	Description  *string        `db:"description" json:"description,omitempty"`
	Ingredients  pq.StringArray `db:"ingredients" json:"ingredients"`
	Instructions pq.StringArray `db:"instructions" json:"instructions"`
	Category     string         `db:"category" json:"category"`
	CookingTime  *int           `db:"cooking_time" json:"cooking_time,omitempty"`
	Difficulty   *Difficulty    `db:"difficulty" json:"difficulty,omitempty"`
	ImageURL     *string        `db:"image_url" json:"image_url,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`

	AuthorFullName *string `db:"author_full_name" json:"-"`
	AuthorUsername *string `db:"author_username" json:"-"`
	FavoritesCount int64   `db:"favorites_count" json:"favorites_count"`
}

func (r *Recipe) AuthorName() string {
	return authorName(r.AuthorFullName, r.AuthorUsername)
}

// RecipeFields is the writable part of a recipe.
type RecipeFields struct {
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	Category     string
	CookingTime  *int
	Difficulty   *Difficulty
	ImageURL     *string
}

type RecipeListFilter struct {
	Search   string
	Category string
	UserID   *uuid.UUID
	Limit    int
	Offset   int
}

type RecipeListResult struct {
	Items  []Recipe `json:"items"`
	Total  int64    `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}
