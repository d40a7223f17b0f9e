package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/service"
)

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid credentials"`
}

// AuthUser models the sanitized user representation returned by auth endpoints.
type AuthUser struct {
	ID          string    `json:"id" example:"9fd13fd2-63c5-4f29-a210-4a1a8e285f74"`
	Email       string    `json:"email" example:"cook@example.com"`
	Username    *string   `json:"username,omitempty" example:"homecook"`
	FullName    *string   `json:"full_name,omitempty" example:"Home Cook"`
	Bio         *string   `json:"bio,omitempty"`
	DisplayName string    `json:"display_name" example:"Home Cook"`
	CreatedAt   time.Time `json:"created_at" example:"2024-01-01T12:00:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-01-02T09:30:00Z"`
}

// AuthTokenResponse is returned by endpoints that issue JWT tokens.
type AuthTokenResponse struct {
	Token     string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string   `json:"expires_at" example:"2024-01-02T09:30:00Z"`
	User      AuthUser `json:"user"`
}

// AuthUserResponse wraps a user object.
type AuthUserResponse struct {
	User AuthUser `json:"user"`
}

// SuccessResponse denotes a simple success flag.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

type RecipeAuthorResponse struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Username    *string   `json:"username,omitempty"`
}

type RecipeResponse struct {
	ID             uuid.UUID            `json:"id"`
	Title          string               `json:"title"`
	Description    *string              `json:"description,omitempty"`
	Ingredients    []string             `json:"ingredients"`
	Instructions   []string             `json:"instructions"`
	Category       string               `json:"category"`
	CookingTime    *int                 `json:"cooking_time,omitempty"`
	Difficulty     *domain.Difficulty   `json:"difficulty,omitempty"`
	ImageURL       *string              `json:"image_url,omitempty"`
	FavoritesCount int64                `json:"favorites_count"`
	Author         RecipeAuthorResponse `json:"author"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

type FavoriteRecipeResponse struct {
	RecipeResponse
	SavedAt string `json:"saved_at"`
}

type CommentResponse struct {
	ID        uuid.UUID            `json:"id"`
	RecipeID  uuid.UUID            `json:"recipe_id"`
	Content   string               `json:"content"`
	CreatedAt time.Time            `json:"created_at"`
	Author    RecipeAuthorResponse `json:"author"`
}

type LikeStateResponse struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	Liked    bool      `json:"liked"`
	Count    int64     `json:"count"`
}

func toAuthUser(user *domain.User) AuthUser {
	return AuthUser{
		ID:          user.ID.String(),
		Email:       user.Email,
		Username:    user.Username,
		FullName:    user.FullName,
		Bio:         user.Bio,
		DisplayName: user.DisplayName(),
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func toAuthTokenResponse(result *service.AuthResult) AuthTokenResponse {
	return AuthTokenResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
		User:      toAuthUser(result.User),
	}
}

func toRecipeResponse(recipe *domain.Recipe) RecipeResponse {
	ingredients := []string(recipe.Ingredients)
	if ingredients == nil {
		ingredients = []string{}
	}
	instructions := []string(recipe.Instructions)
	if instructions == nil {
		instructions = []string{}
	}
	return RecipeResponse{
		ID:             recipe.ID,
		Title:          recipe.Title,
		Description:    recipe.Description,
		Ingredients:    ingredients,
		Instructions:   instructions,
		Category:       recipe.Category,
		CookingTime:    recipe.CookingTime,
		Difficulty:     recipe.Difficulty,
		ImageURL:       recipe.ImageURL,
		FavoritesCount: recipe.FavoritesCount,
		Author: RecipeAuthorResponse{
			ID:          recipe.UserID,
			DisplayName: recipe.AuthorName(),
			Username:    recipe.AuthorUsername,
		},
		CreatedAt: recipe.CreatedAt,
		UpdatedAt: recipe.UpdatedAt,
	}
}

func toCommentResponses(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		out = append(out, CommentResponse{
			ID:        c.ID,
			RecipeID:  c.RecipeID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			Author: RecipeAuthorResponse{
				ID:          c.UserID,
				DisplayName: c.AuthorName(),
				Username:    c.AuthorUsername,
			},
		})
	}
	return out
}
