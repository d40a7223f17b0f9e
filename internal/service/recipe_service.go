package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/logging"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/media"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/repository/ports"
)

var (
	ErrRecipeValidation = errors.New("recipe validation failed")
	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrRecipeForbidden  = errors.New("not allowed to manage this recipe")
)

type RecipeServiceConfig struct {
	Bucket            string
	Categories        []string
	ImageMaxBytes     int64
	ImageMaxDimension int
}

type RecipeImageUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type RecipeInput struct {
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	Category     string
	CookingTime  *int
	Difficulty   string
	Image        *RecipeImageUpload
}

type RecipeService struct {
	recipes   ports.RecipeRepository
	storage   ports.ObjectStorage
	inspector *media.Inspector

	bucket     string
	categories []string
	allowed    map[string]string
	now        func() time.Time
}

func NewRecipeService(recipes ports.RecipeRepository, storage ports.ObjectStorage, cfg RecipeServiceConfig) *RecipeService {
	categories := make([]string, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}
	if len(categories) == 0 {
		categories = append(categories, domain.DefaultRecipeCategories...)
	}
	allowed := make(map[string]string, len(categories))
	for _, c := range categories {
		allowed[strings.ToLower(c)] = c
	}

	return &RecipeService{
		recipes:    recipes,
		storage:    storage,
		inspector:  media.NewInspector(cfg.ImageMaxBytes, cfg.ImageMaxDimension),
		bucket:     strings.TrimSpace(cfg.Bucket),
		categories: categories,
		allowed:    allowed,
		now:        time.Now,
	}
}

func (s *RecipeService) Categories() []string {
	return append([]string(nil), s.categories...)
}

func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, input RecipeInput) (*domain.Recipe, error) {
	fields, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	var objectName string
	if input.Image != nil {
		imageURL, name, err := s.uploadImage(ctx, userID, *input.Image)
		if err != nil {
			return nil, err
		}
		fields.ImageURL = &imageURL
		objectName = name
	}

	recipe, err := s.recipes.Create(ctx, userID, fields)
	if err != nil {
		s.removeObject(ctx, objectName)
		return nil, err
	}
	return recipe, nil
}

// Update replaces the recipe's fields. The stored image is kept unless a new
// one is uploaded, in which case the old object is removed once the row is
// updated.
func (s *RecipeService) Update(ctx context.Context, recipeID, userID uuid.UUID, input RecipeInput) (*domain.Recipe, error) {
	existing, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	fields, err := s.validate(input)
	if err != nil {
		return nil, err
	}
	fields.ImageURL = existing.ImageURL
	var objectName string
	if input.Image != nil {
		imageURL, name, err := s.uploadImage(ctx, userID, *input.Image)
		if err != nil {
			return nil, err
		}
		fields.ImageURL = &imageURL
		objectName = name
	}

	updated, err := s.recipes.Update(ctx, recipeID, fields)
	if err != nil {
		s.removeObject(ctx, objectName)
		if isNotFound(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if objectName != "" {
		s.removeImage(ctx, existing.ImageURL)
	}
	return updated, nil
}

func (s *RecipeService) Delete(ctx context.Context, recipeID, userID uuid.UUID) error {
	existing, err := s.ownedRecipe(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		if isNotFound(err) {
			return ErrRecipeNotFound
		}
		return err
	}
	s.removeImage(ctx, existing.ImageURL)
	return nil
}

func (s *RecipeService) Get(ctx context.Context, recipeID uuid.UUID) (*domain.Recipe, error) {
	if recipeID == uuid.Nil {
		return nil, ErrRecipeNotFound
	}
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) List(ctx context.Context, filter domain.RecipeListFilter) (*domain.RecipeListResult, error) {
	filter.Limit, filter.Offset = normalizePagination(filter.Limit, filter.Offset)
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = s.canonicalCategory(filter.Category)

	items, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.recipes.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &domain.RecipeListResult{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (s *RecipeService) ownedRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*domain.Recipe, error) {
	recipe, err := s.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, ErrRecipeForbidden
	}
	return recipe, nil
}

func (s *RecipeService) validate(input RecipeInput) (domain.RecipeFields, error) {
	fields := domain.RecipeFields{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		CookingTime: input.CookingTime,
	}
	var ingredientsOK, instructionsOK bool
	fields.Ingredients, ingredientsOK = trimLines(input.Ingredients)
	fields.Instructions, instructionsOK = trimLines(input.Instructions)

	switch {
	case fields.Title == "":
		return fields, fmt.Errorf("%w: title is required", ErrRecipeValidation)
	case fields.Description == "":
		return fields, fmt.Errorf("%w: description is required", ErrRecipeValidation)
	case !ingredientsOK:
		return fields, fmt.Errorf("%w: all ingredients are required", ErrRecipeValidation)
	case !instructionsOK:
		return fields, fmt.Errorf("%w: all instructions are required", ErrRecipeValidation)
	}

	category, ok := s.allowed[strings.ToLower(strings.TrimSpace(input.Category))]
	if !ok {
		return fields, fmt.Errorf("%w: category must be one of %s", ErrRecipeValidation, strings.Join(s.categories, ", "))
	}
	fields.Category = category

	if input.CookingTime != nil && *input.CookingTime < 0 {
		return fields, fmt.Errorf("%w: cooking time cannot be negative", ErrRecipeValidation)
	}

	if raw := strings.ToLower(strings.TrimSpace(input.Difficulty)); raw != "" {
		difficulty := domain.Difficulty(raw)
		if !difficulty.Valid() {
			return fields, fmt.Errorf("%w: difficulty must be easy, medium or hard", ErrRecipeValidation)
		}
		fields.Difficulty = &difficulty
	}
	return fields, nil
}

func (s *RecipeService) canonicalCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, "all") {
		return ""
	}
	if canonical, ok := s.allowed[strings.ToLower(category)]; ok {
		return canonical
	}
	return category
}

func (s *RecipeService) uploadImage(ctx context.Context, userID uuid.UUID, upload RecipeImageUpload) (string, string, error) {
	result, err := s.inspector.Inspect(media.Upload{
		Reader:      upload.Reader,
		Size:        upload.Size,
		FileName:    upload.FileName,
		ContentType: upload.ContentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrRecipeValidation, err)
	}

	objectName := fmt.Sprintf("recipes/%s/%d%s", userID.String(), s.now().UnixMilli(), result.Extension)
	imageURL, err := s.storage.Upload(ctx, s.bucket, objectName, result.ContentType, bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return "", "", err
	}
	return imageURL, objectName, nil
}

// removeImage deletes the object behind a stored image URL. URLs that do not
// point into the recipe bucket are left alone.
func (s *RecipeService) removeImage(ctx context.Context, imageURL *string) {
	if imageURL == nil {
		return
	}
	s.removeObject(ctx, objectNameFromURL(s.bucket, *imageURL))
}

// removeObject is best effort; the recipe row is the source of truth.
func (s *RecipeService) removeObject(ctx context.Context, objectName string) {
	if objectName == "" {
		return
	}
	if err := s.storage.Remove(ctx, s.bucket, objectName); err != nil {
		logging.Warn(ctx).Err(err).
			Str("bucket", s.bucket).
			Str("object", objectName).
			Msg("recipe image cleanup failed")
	}
}

// objectNameFromURL extracts the object key from ".../<bucket>/<object>".
func objectNameFromURL(bucket, imageURL string) string {
	if bucket == "" {
		return ""
	}
	path := imageURL
	if parsed, err := url.Parse(imageURL); err == nil && parsed.Path != "" {
		path = parsed.Path
	}
	marker := "/" + bucket + "/"
	idx := strings.Index(path, marker)
	if idx < 0 {
		return ""
	}
	return strings.TrimPrefix(path[idx+len(marker):], "/")
}

// trimLines trims every entry. It reports false when the list is empty or
// any entry is blank.
func trimLines(lines []string) ([]string, bool) {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			return nil, false
		}
		out = append(out, line)
	}
	return out, len(out) > 0
}

func normalizePagination(limit, offset int) (int, int) {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
