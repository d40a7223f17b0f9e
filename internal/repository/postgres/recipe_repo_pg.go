package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/ports"
)

type RecipeRepository struct {
	db *sqlx.DB
}

func NewRecipeRepo(db *sqlx.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(ctx context.Context, userID uuid.UUID, fields domain.RecipeFields) (*domain.Recipe, error) {
	const query = `
		INSERT INTO recipes (
			user_id, title, description, ingredients, instructions,
			category, cooking_time, difficulty, image_url
		) VALUES (
			:user_id, :title, :description, :ingredients, :instructions,
			:category, :cooking_time, :difficulty, :image_url
		)
		RETURNING id
	`

	args := recipeArgs(fields)
	args["user_id"] = userID

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	var id uuid.UUID
	if rows.Next() {
		err = rows.Scan(&id)
	} else {
		err = sql.ErrNoRows
	}
	rows.Close()
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *RecipeRepository) Update(ctx context.Context, id uuid.UUID, fields domain.RecipeFields) (*domain.Recipe, error) {
	const query = `
		UPDATE recipes
		SET title = :title,
		    description = :description,
		    ingredients = :ingredients,
		    instructions = :instructions,
		    category = :category,
		    cooking_time = :cooking_time,
		    difficulty = :difficulty,
		    image_url = :image_url,
		    updated_at = NOW()
		WHERE id = :id
	`

	args := recipeArgs(fields)
	args["id"] = id

	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.FindByID(ctx, id)
}

func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
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

func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes r
		LEFT JOIN profiles p ON p.id = r.user_id
		WHERE r.id = $1
	`, recipeColumns)

	var recipe domain.Recipe
	if err := r.db.GetContext(ctx, &recipe, query, id); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *RecipeRepository) List(ctx context.Context, filter domain.RecipeListFilter) ([]domain.Recipe, error) {
	where, args := recipeFilterClause(filter)
	args = append(args, filter.Limit, filter.Offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes r
		LEFT JOIN profiles p ON p.id = r.user_id
		WHERE %s
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $%d OFFSET $%d
	`, recipeColumns, where, len(args)-1, len(args))

	items := make([]domain.Recipe, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RecipeRepository) Count(ctx context.Context, filter domain.RecipeListFilter) (int64, error) {
	where, args := recipeFilterClause(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM recipes r WHERE %s`, where)

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func recipeFilterClause(filter domain.RecipeListFilter) (string, []any) {
	w := newWhere()
	if filter.UserID != nil {
		w.add("r.user_id = $%d", *filter.UserID)
	}
	w.search(filter.Search)
	w.category(filter.Category)
	return w.sql(), w.args
}

func recipeArgs(fields domain.RecipeFields) map[string]any {
	var difficulty any
	if fields.Difficulty != nil {
		difficulty = string(*fields.Difficulty)
	}
	var cookingTime any
	if fields.CookingTime != nil {
		cookingTime = *fields.CookingTime
	}
	return map[string]any{
		"title":        fields.Title,
		"description":  nullString(fields.Description),
		"ingredients":  pq.StringArray(fields.Ingredients),
		"instructions": pq.StringArray(fields.Instructions),
		"category":     fields.Category,
		"cooking_time": cookingTime,
		"difficulty":   difficulty,
		"image_url":    nullStringPtr(fields.ImageURL),
	}
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullStringPtr(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return nullString(*value)
}

var _ ports.RecipeRepository = (*RecipeRepository)(nil)
