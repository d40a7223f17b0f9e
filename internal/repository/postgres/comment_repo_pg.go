package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/ports"
)

type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepo(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `
	c.id, c.recipe_id, c.user_id, c.content, c.created_at,
	p.full_name AS author_full_name,
	p.username AS author_username`

func (r *CommentRepository) Create(ctx context.Context, recipeID, userID uuid.UUID, content string) (*domain.Comment, error) {
	const query = `
		INSERT INTO comments (recipe_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id uuid.UUID
	if err := r.db.GetContext(ctx, &id, query, recipeID, userID, content); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *CommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		LEFT JOIN profiles p ON p.id = c.user_id
		WHERE c.id = $1
	`
	var comment domain.Comment
	if err := r.db.GetContext(ctx, &comment, query, id); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) ListByRecipe(ctx context.Context, recipeID uuid.UUID) ([]domain.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments c
		LEFT JOIN profiles p ON p.id = c.user_id
		WHERE c.recipe_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`
	items := make([]domain.Comment, 0)
	if err := r.db.SelectContext(ctx, &items, query, recipeID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CommentRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.CommentRepository = (*CommentRepository)(nil)
