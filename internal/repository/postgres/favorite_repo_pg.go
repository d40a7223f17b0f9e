package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/ports"
)

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add inserts the pair. A concurrent or repeated insert of the same pair hits
// the unique constraint, inserts nothing and surfaces as sql.ErrNoRows.
func (r *FavoriteRepository) Add(ctx context.Context, userID, recipeID uuid.UUID) (*domain.Favorite, error) {
	const query = `
		INSERT INTO favorites (user_id, recipe_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, recipe_id) DO NOTHING
		RETURNING id, user_id, recipe_id, created_at
	`

	var favorite domain.Favorite
	if err := r.db.GetContext(ctx, &favorite, query, userID, recipeID); err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	const query = `
		DELETE FROM favorites
		WHERE user_id = $1 AND recipe_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, userID, recipeID)
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

func (r *FavoriteRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM favorites WHERE user_id = $1 AND recipe_id = $2
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, recipeID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *FavoriteRepository) ListByRecipe(ctx context.Context, recipeID uuid.UUID) ([]domain.Favorite, error) {
	const query = `
		SELECT id, user_id, recipe_id, created_at
		FROM favorites
		WHERE recipe_id = $1
		ORDER BY created_at DESC
	`
	items := make([]domain.Favorite, 0)
	if err := r.db.SelectContext(ctx, &items, query, recipeID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *FavoriteRepository) CountByRecipe(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM favorites
		WHERE recipe_id = $1
	`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, recipeID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *FavoriteRepository) ListRecipesByUser(ctx context.Context, userID uuid.UUID, filter domain.FavoriteListFilter) ([]domain.FavoriteRecipe, error) {
	where, args := favoriteFilterClause(userID, filter)
	args = append(args, filter.Limit, filter.Offset)

	query := fmt.Sprintf(`
		SELECT %s, f.created_at AS saved_at
		FROM favorites f
		JOIN recipes r ON r.id = f.recipe_id
		LEFT JOIN profiles p ON p.id = r.user_id
		WHERE %s
		ORDER BY f.created_at DESC, f.id DESC
		LIMIT $%d OFFSET $%d
	`, recipeColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.FavoriteRecipe, 0)
	for rows.Next() {
		var item domain.FavoriteRecipe
		if err := rows.StructScan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *FavoriteRepository) CountRecipesByUser(ctx context.Context, userID uuid.UUID, filter domain.FavoriteListFilter) (int64, error) {
	where, args := favoriteFilterClause(userID, filter)
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM favorites f
		JOIN recipes r ON r.id = f.recipe_id
		WHERE %s
	`, where)

	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func favoriteFilterClause(userID uuid.UUID, filter domain.FavoriteListFilter) (string, []any) {
	w := newWhere()
	w.add("f.user_id = $%d", userID)
	w.search(filter.Search)
	w.category(filter.Category)
	return w.sql(), w.args
}

var _ ports.FavoriteRepository = (*FavoriteRepository)(nil)
