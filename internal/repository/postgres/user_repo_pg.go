package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/ports"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, username, full_name, bio, password_hash, password_salt, created_at, updated_at`

func (r *UserRepository) CreateEmailUser(ctx context.Context, email, username, fullName string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	const query = `
        INSERT INTO profiles (email, username, full_name, password_hash, password_salt)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + userColumns

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email, username, fullName, passwordHash, passwordSalt); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpsertGoogleUser(ctx context.Context, email string, fullName *string) (*domain.User, error) {
	const query = `
        INSERT INTO profiles (email, full_name)
        VALUES ($1, $2)
        ON CONFLICT (email) DO UPDATE
        SET full_name = COALESCE(profiles.full_name, EXCLUDED.full_name),
            updated_at = NOW()
        RETURNING ` + userColumns

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email, fullName); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM profiles WHERE email = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM profiles WHERE id = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	const query = `
        UPDATE profiles
        SET email = $2,
            username = $3,
            full_name = $4,
            bio = $5,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id, update.Email, update.Username, update.FullName, nullStringPtr(update.Bio)); err != nil {
		return nil, err
	}
	return &user, nil
}

// Ping runs a cheap read against profiles for the readiness probe.
func (r *UserRepository) Ping(ctx context.Context) error {
	var count int64
	return r.db.GetContext(ctx, &count, `SELECT COUNT(id) FROM profiles`)
}

var _ ports.UserRepository = (*UserRepository)(nil)
