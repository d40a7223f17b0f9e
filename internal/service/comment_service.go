package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/ports"
)

var (
	ErrCommentValidation = errors.New("comment validation failed")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrCommentForbidden  = errors.New("not allowed to delete this comment")
)

const maxCommentLength = 2000

type CommentService struct {
	comments ports.CommentRepository
	recipes  ports.RecipeRepository
}

func NewCommentService(comments ports.CommentRepository, recipes ports.RecipeRepository) *CommentService {
	return &CommentService{comments: comments, recipes: recipes}
}

func (s *CommentService) List(ctx context.Context, recipeID uuid.UUID) ([]domain.Comment, error) {
	if err := s.ensureRecipeExists(ctx, recipeID); err != nil {
		return nil, err
	}
	return s.comments.ListByRecipe(ctx, recipeID)
}

// Post stores the comment and returns the recipe's refreshed comment list.
func (s *CommentService) Post(ctx context.Context, recipeID, userID uuid.UUID, content string) ([]domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment cannot be empty", ErrCommentValidation)
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", ErrCommentValidation, maxCommentLength)
	}
	if err := s.ensureRecipeExists(ctx, recipeID); err != nil {
		return nil, err
	}

	if _, err := s.comments.Create(ctx, recipeID, userID, content); err != nil {
		return nil, err
	}
	return s.comments.ListByRecipe(ctx, recipeID)
}

func (s *CommentService) Delete(ctx context.Context, commentID, userID uuid.UUID) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if isNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.UserID != userID {
		return ErrCommentForbidden
	}
	if err := s.comments.DeleteOwned(ctx, commentID, userID); err != nil {
		if isNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

func (s *CommentService) ensureRecipeExists(ctx context.Context, recipeID uuid.UUID) error {
	if recipeID == uuid.Nil {
		return ErrRecipeNotFound
	}
	if _, err := s.recipes.FindByID(ctx, recipeID); err != nil {
		if isNotFound(err) {
			return ErrRecipeNotFound
		}
		return err
	}
	return nil
}
