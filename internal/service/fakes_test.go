package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/ports"
)

type favoriteKey struct {
	userID   uuid.UUID
	recipeID uuid.UUID
}

// memoryFavoriteRepo mimics the favorites table, including its unique pair.
type memoryFavoriteRepo struct {
	mu   sync.Mutex
	rows map[favoriteKey]domain.Favorite
	seq  int

	// duplicateAsPgError reports a duplicate insert as a unique violation
	// instead of the ON CONFLICT DO NOTHING empty result.
	duplicateAsPgError bool

	addErr    error
	removeErr error
	existsErr error
	listErr   error

	recipes map[uuid.UUID]domain.Recipe
}

func newMemoryFavoriteRepo() *memoryFavoriteRepo {
	return &memoryFavoriteRepo{
		rows:    make(map[favoriteKey]domain.Favorite),
		recipes: make(map[uuid.UUID]domain.Recipe),
	}
}

func (r *memoryFavoriteRepo) Add(ctx context.Context, userID, recipeID uuid.UUID) (*domain.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return nil, r.addErr
	}
	key := favoriteKey{userID: userID, recipeID: recipeID}
	if _, ok := r.rows[key]; ok {
		if r.duplicateAsPgError {
			return nil, &pgconn.PgError{Code: "23505", ConstraintName: "favorites_user_recipe_key"}
		}
		return nil, sql.ErrNoRows
	}
	r.seq++
	fav := domain.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Unix(int64(r.seq), 0),
	}
	r.rows[key] = fav
	return &fav, nil
}

func (r *memoryFavoriteRepo) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.removeErr != nil {
		return r.removeErr
	}
	key := favoriteKey{userID: userID, recipeID: recipeID}
	if _, ok := r.rows[key]; !ok {
		return sql.ErrNoRows
	}
	delete(r.rows, key)
	return nil
}

func (r *memoryFavoriteRepo) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.rows[favoriteKey{userID: userID, recipeID: recipeID}]
	return ok, nil
}

func (r *memoryFavoriteRepo) ListByRecipe(ctx context.Context, recipeID uuid.UUID) ([]domain.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Favorite, 0)
	for key, fav := range r.rows {
		if key.recipeID == recipeID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func (r *memoryFavoriteRepo) CountByRecipe(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	favs, err := r.ListByRecipe(ctx, recipeID)
	return int64(len(favs)), err
}

func (r *memoryFavoriteRepo) ListRecipesByUser(ctx context.Context, userID uuid.UUID, filter domain.FavoriteListFilter) ([]domain.FavoriteRecipe, error) {
	all := r.userRecipes(userID, filter)
	if filter.Offset >= len(all) {
		return []domain.FavoriteRecipe{}, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], nil
}

func (r *memoryFavoriteRepo) CountRecipesByUser(ctx context.Context, userID uuid.UUID, filter domain.FavoriteListFilter) (int64, error) {
	return int64(len(r.userRecipes(userID, filter))), nil
}

func (r *memoryFavoriteRepo) userRecipes(userID uuid.UUID, filter domain.FavoriteListFilter) []domain.FavoriteRecipe {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.FavoriteRecipe, 0)
	for key, fav := range r.rows {
		if key.userID != userID {
			continue
		}
		recipe, ok := r.recipes[key.recipeID]
		if !ok {
			continue
		}
		if filter.Category != "" && recipe.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(recipe.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, domain.FavoriteRecipe{Recipe: recipe, SavedAt: fav.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out
}

func (r *memoryFavoriteRepo) rowCount(recipeID uuid.UUID) int {
	favs, _ := r.ListByRecipe(context.Background(), recipeID)
	return len(favs)
}

var _ ports.FavoriteRepository = (*memoryFavoriteRepo)(nil)

// staticIdentity maps bearer tokens to users.
type staticIdentity struct {
	users map[string]*domain.User
	err   error
}

func (s *staticIdentity) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if token == "" {
		return nil, nil
	}
	user, ok := s.users[token]
	if !ok {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveToggle(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) last() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.outcomes) == 0 {
		return ""
	}
	return o.outcomes[len(o.outcomes)-1]
}

type memoryRecipeRepo struct {
	items     map[uuid.UUID]*domain.Recipe
	created   []domain.RecipeFields
	updated   []domain.RecipeFields
	deleted   []uuid.UUID
	lastQuery domain.RecipeListFilter
	now       time.Time
	createErr error
	updateErr error
}

func newMemoryRecipeRepo() *memoryRecipeRepo {
	return &memoryRecipeRepo{items: make(map[uuid.UUID]*domain.Recipe), now: time.Now()}
}

func (r *memoryRecipeRepo) put(recipe domain.Recipe) {
	clone := recipe
	r.items[recipe.ID] = &clone
}

func (r *memoryRecipeRepo) Create(ctx context.Context, userID uuid.UUID, fields domain.RecipeFields) (*domain.Recipe, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, fields)
	recipe := recipeFromFields(uuid.New(), userID, fields)
	recipe.CreatedAt = r.now
	recipe.UpdatedAt = r.now
	r.items[recipe.ID] = &recipe
	clone := recipe
	return &clone, nil
}

func (r *memoryRecipeRepo) Update(ctx context.Context, id uuid.UUID, fields domain.RecipeFields) (*domain.Recipe, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	existing, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	r.updated = append(r.updated, fields)
	recipe := recipeFromFields(id, existing.UserID, fields)
	recipe.CreatedAt = existing.CreatedAt
	recipe.UpdatedAt = r.now
	r.items[id] = &recipe
	clone := recipe
	return &clone, nil
}

func (r *memoryRecipeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.items, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *memoryRecipeRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	recipe, ok := r.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *recipe
	return &clone, nil
}

func (r *memoryRecipeRepo) List(ctx context.Context, filter domain.RecipeListFilter) ([]domain.Recipe, error) {
	r.lastQuery = filter
	out := make([]domain.Recipe, 0, len(r.items))
	for _, recipe := range r.items {
		out = append(out, *recipe)
	}
	return out, nil
}

func (r *memoryRecipeRepo) Count(ctx context.Context, filter domain.RecipeListFilter) (int64, error) {
	return int64(len(r.items)), nil
}

func recipeFromFields(id, userID uuid.UUID, fields domain.RecipeFields) domain.Recipe {
	description := fields.Description
	return domain.Recipe{
		ID:           id,
		UserID:       userID,
		Title:        fields.Title,
		Description:  &description,
		Ingredients:  fields.Ingredients,
		Instructions: fields.Instructions,
		Category:     fields.Category,
		CookingTime:  fields.CookingTime,
		Difficulty:   fields.Difficulty,
		ImageURL:     fields.ImageURL,
	}
}

var _ ports.RecipeRepository = (*memoryRecipeRepo)(nil)

type memoryCommentRepo struct {
	items []domain.Comment
	clock time.Time
}

func (r *memoryCommentRepo) Create(ctx context.Context, recipeID, userID uuid.UUID, content string) (*domain.Comment, error) {
	r.clock = r.clock.Add(time.Minute)
	comment := domain.Comment{
		ID:        uuid.New(),
		RecipeID:  recipeID,
		UserID:    userID,
		Content:   content,
		CreatedAt: r.clock,
	}
	r.items = append(r.items, comment)
	return &comment, nil
}

func (r *memoryCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	for _, c := range r.items {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memoryCommentRepo) ListByRecipe(ctx context.Context, recipeID uuid.UUID) ([]domain.Comment, error) {
	out := make([]domain.Comment, 0)
	for _, c := range r.items {
		if c.RecipeID == recipeID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryCommentRepo) DeleteOwned(ctx context.Context, id, userID uuid.UUID) error {
	for i, c := range r.items {
		if c.ID == id && c.UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

var _ ports.CommentRepository = (*memoryCommentRepo)(nil)

type fakeStorage struct {
	uploaded []struct {
		bucket      string
		objectName  string
		contentType string
		size        int64
	}
	removed   []string
	err       error
	removeErr error
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, _ := io.ReadAll(reader)
	f.uploaded = append(f.uploaded, struct {
		bucket      string
		objectName  string
		contentType string
		size        int64
	}{bucket: bucket, objectName: objectName, contentType: contentType, size: int64(len(data))})
	return "https://storage/" + bucket + "/" + objectName, nil
}

func (f *fakeStorage) Remove(ctx context.Context, bucket, objectName string) error {
	f.removed = append(f.removed, bucket+"/"+objectName)
	return f.removeErr
}

var _ ports.ObjectStorage = (*fakeStorage)(nil)

type fakeUserRepo struct {
	createEmailInput struct {
		email    string
		username string
		fullName string
	}
	createEmailHash   []byte
	createEmailSalt   []byte
	createEmailResult *domain.User
	createEmailErr    error

	upsertGoogleEmail  string
	upsertGoogleName   *string
	upsertGoogleResult *domain.User
	upsertGoogleErr    error

	findByEmailInput  string
	findByEmailResult *domain.User
	findByEmailErr    error

	findByIDInput  uuid.UUID
	findByIDResult *domain.User
	findByIDErr    error

	updateProfileInput  domain.ProfileUpdate
	updateProfileResult *domain.User
	updateProfileErr    error

	pingErr error
}

func (f *fakeUserRepo) CreateEmailUser(ctx context.Context, email, username, fullName string, passwordHash, passwordSalt []byte) (*domain.User, error) {
	f.createEmailInput.email = email
	f.createEmailInput.username = username
	f.createEmailInput.fullName = fullName
	f.createEmailHash = append([]byte(nil), passwordHash...)
	f.createEmailSalt = append([]byte(nil), passwordSalt...)
	return f.createEmailResult, f.createEmailErr
}

func (f *fakeUserRepo) UpsertGoogleUser(ctx context.Context, email string, fullName *string) (*domain.User, error) {
	f.upsertGoogleEmail = email
	f.upsertGoogleName = fullName
	return f.upsertGoogleResult, f.upsertGoogleErr
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.findByEmailInput = email
	return f.findByEmailResult, f.findByEmailErr
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.findByIDInput = id
	return f.findByIDResult, f.findByIDErr
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	f.updateProfileInput = update
	return f.updateProfileResult, f.updateProfileErr
}

func (f *fakeUserRepo) Ping(ctx context.Context) error {
	return f.pingErr
}

var _ ports.UserRepository = (*fakeUserRepo)(nil)

type fakeSessionRepo struct {
	createdSessions []struct {
		userID    uuid.UUID
		token     string
		expiresAt time.Time
	}
	createErr error

	findActiveToken  string
	findActiveResult *domain.Session
	findActiveErr    error

	deactivatedToken string
	deactivateErr    error
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error) {
	f.createdSessions = append(f.createdSessions, struct {
		userID    uuid.UUID
		token     string
		expiresAt time.Time
	}{userID: userID, token: token, expiresAt: expiresAt})
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Session{ID: 1, UserID: userID, Token: token, ExpiresAt: expiresAt, IsActive: true}, nil
}

func (f *fakeSessionRepo) DeactivateSession(ctx context.Context, token string) error {
	f.deactivatedToken = token
	return f.deactivateErr
}

func (f *fakeSessionRepo) FindActiveSession(ctx context.Context, token string) (*domain.Session, error) {
	f.findActiveToken = token
	if f.findActiveErr != nil {
		return nil, f.findActiveErr
	}
	return f.findActiveResult, nil
}

var _ ports.SessionRepository = (*fakeSessionRepo)(nil)

var errNetwork = errors.New("network unreachable")
