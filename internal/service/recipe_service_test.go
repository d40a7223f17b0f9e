package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
)

func validRecipeInput() RecipeInput {
	minutes := 25
	return RecipeInput{
		Title:        "  Shakshuka ",
		Description:  "Eggs poached in spiced tomato sauce",
		Ingredients:  []string{" 4 eggs", "1 can tomatoes "},
		Instructions: []string{"Simmer the sauce", "Crack in the eggs"},
		Category:     "breakfast",
		CookingTime:  &minutes,
		Difficulty:   "Easy",
	}
}

func pngUpload(t *testing.T) *RecipeImageUpload {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &RecipeImageUpload{
		Reader:      bytes.NewReader(buf.Bytes()),
		Size:        int64(buf.Len()),
		FileName:    "dish.png",
		ContentType: "image/png",
	}
}

func TestRecipeService_CreateNormalizesInput(t *testing.T) {
	repo := newMemoryRecipeRepo()
	svc := NewRecipeService(repo, &fakeStorage{}, RecipeServiceConfig{Bucket: "recipe-images"})

	recipe, err := svc.Create(context.Background(), uuid.New(), validRecipeInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if recipe.Title != "Shakshuka" {
		t.Fatalf("expected trimmed title, got %q", recipe.Title)
	}
	if recipe.Category != "Breakfast" {
		t.Fatalf("expected canonical category, got %q", recipe.Category)
	}
	if recipe.Difficulty == nil || *recipe.Difficulty != domain.DifficultyEasy {
		t.Fatalf("expected easy difficulty, got %v", recipe.Difficulty)
	}
	if recipe.Ingredients[0] != "4 eggs" || recipe.Ingredients[1] != "1 can tomatoes" {
		t.Fatalf("expected trimmed ingredients, got %v", recipe.Ingredients)
	}
	if recipe.ImageURL != nil {
		t.Fatalf("expected no image, got %v", *recipe.ImageURL)
	}
}

func TestRecipeService_CreateValidationErrors(t *testing.T) {
	negative := -1
	cases := map[string]func(*RecipeInput){
		"blank title":        func(in *RecipeInput) { in.Title = "   " },
		"blank description":  func(in *RecipeInput) { in.Description = "" },
		"no ingredients":     func(in *RecipeInput) { in.Ingredients = nil },
		"blank ingredient":   func(in *RecipeInput) { in.Ingredients = []string{"eggs", " "} },
		"no instructions":    func(in *RecipeInput) { in.Instructions = []string{} },
		"blank instruction":  func(in *RecipeInput) { in.Instructions = []string{""} },
		"unknown category":   func(in *RecipeInput) { in.Category = "Brunch" },
		"negative time":      func(in *RecipeInput) { in.CookingTime = &negative },
		"unknown difficulty": func(in *RecipeInput) { in.Difficulty = "extreme" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newMemoryRecipeRepo()
			svc := NewRecipeService(repo, &fakeStorage{}, RecipeServiceConfig{})
			input := validRecipeInput()
			mutate(&input)

			_, err := svc.Create(context.Background(), uuid.New(), input)
			if !errors.Is(err, ErrRecipeValidation) {
				t.Fatalf("expected ErrRecipeValidation, got %v", err)
			}
			if len(repo.created) != 0 {
				t.Fatal("expected nothing stored")
			}
		})
	}
}

func TestRecipeService_CreateUploadsImage(t *testing.T) {
	repo := newMemoryRecipeRepo()
	storage := &fakeStorage{}
	svc := NewRecipeService(repo, storage, RecipeServiceConfig{Bucket: "recipe-images"})
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }

	userID := uuid.New()
	input := validRecipeInput()
	input.Image = pngUpload(t)

	recipe, err := svc.Create(context.Background(), userID, input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(storage.uploaded) != 1 {
		t.Fatalf("expected one upload, got %d", len(storage.uploaded))
	}
	upload := storage.uploaded[0]
	wantObject := "recipes/" + userID.String() + "/1700000000123.png"
	if upload.bucket != "recipe-images" || upload.objectName != wantObject || upload.contentType != "image/png" {
		t.Fatalf("unexpected upload %+v", upload)
	}
	if recipe.ImageURL == nil || !strings.HasSuffix(*recipe.ImageURL, wantObject) {
		t.Fatalf("expected image url to point at %s, got %v", wantObject, recipe.ImageURL)
	}
}

func TestRecipeService_CreateRejectsNonImageUpload(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewRecipeService(newMemoryRecipeRepo(), storage, RecipeServiceConfig{})

	input := validRecipeInput()
	input.Image = &RecipeImageUpload{Reader: strings.NewReader("plain text"), Size: 10, FileName: "notes.txt"}

	if _, err := svc.Create(context.Background(), uuid.New(), input); !errors.Is(err, ErrRecipeValidation) {
		t.Fatalf("expected ErrRecipeValidation, got %v", err)
	}
	if len(storage.uploaded) != 0 {
		t.Fatal("expected no upload")
	}
}

func TestRecipeService_UpdateAndDeleteRequireOwner(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRecipeRepo()
	svc := NewRecipeService(repo, &fakeStorage{}, RecipeServiceConfig{})

	owner := uuid.New()
	created, err := svc.Create(ctx, owner, validRecipeInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	stranger := uuid.New()
	if _, err := svc.Update(ctx, created.ID, stranger, validRecipeInput()); !errors.Is(err, ErrRecipeForbidden) {
		t.Fatalf("expected ErrRecipeForbidden on update, got %v", err)
	}
	if err := svc.Delete(ctx, created.ID, stranger); !errors.Is(err, ErrRecipeForbidden) {
		t.Fatalf("expected ErrRecipeForbidden on delete, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatal("expected nothing deleted")
	}

	if err := svc.Delete(ctx, created.ID, owner); err != nil {
		t.Fatalf("owner delete returned error: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound after delete, got %v", err)
	}
}

func TestRecipeService_UpdateKeepsExistingImage(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRecipeRepo()
	svc := NewRecipeService(repo, &fakeStorage{}, RecipeServiceConfig{})

	owner := uuid.New()
	url := "https://storage/recipe-images/recipes/old.png"
	existing := recipeFromFields(uuid.New(), owner, domain.RecipeFields{Title: "Old", ImageURL: &url})
	repo.put(existing)

	input := validRecipeInput()
	input.Title = "New title"
	updated, err := svc.Update(ctx, existing.ID, owner, input)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "New title" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	if updated.ImageURL == nil || *updated.ImageURL != url {
		t.Fatalf("expected image to be kept, got %v", updated.ImageURL)
	}
}

func TestRecipeService_ListNormalizesFilter(t *testing.T) {
	repo := newMemoryRecipeRepo()
	svc := NewRecipeService(repo, &fakeStorage{}, RecipeServiceConfig{Categories: []string{"Soup", "Salad"}})

	result, err := svc.List(context.Background(), domain.RecipeListFilter{Search: "  tomato ", Category: "all", Limit: 500, Offset: -3})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Limit != 100 || result.Offset != 0 {
		t.Fatalf("expected clamped pagination, got limit=%d offset=%d", result.Limit, result.Offset)
	}
	if repo.lastQuery.Search != "tomato" || repo.lastQuery.Category != "" {
		t.Fatalf("unexpected filter passed to repository: %+v", repo.lastQuery)
	}

	if _, err := svc.List(context.Background(), domain.RecipeListFilter{Category: "soup"}); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.lastQuery.Category != "Soup" || repo.lastQuery.Limit != 20 {
		t.Fatalf("expected canonical category and default limit, got %+v", repo.lastQuery)
	}

	categories := svc.Categories()
	if len(categories) != 2 || categories[0] != "Soup" {
		t.Fatalf("unexpected categories %v", categories)
	}
}

func TestRecipeService_CreateRemovesUploadWhenInsertFails(t *testing.T) {
	repo := newMemoryRecipeRepo()
	repo.createErr = errNetwork
	storage := &fakeStorage{}
	svc := NewRecipeService(repo, storage, RecipeServiceConfig{Bucket: "recipe-images"})
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }

	userID := uuid.New()
	input := validRecipeInput()
	input.Image = pngUpload(t)

	if _, err := svc.Create(context.Background(), userID, input); !errors.Is(err, errNetwork) {
		t.Fatalf("expected insert error, got %v", err)
	}
	want := "recipe-images/recipes/" + userID.String() + "/1700000000123.png"
	if len(storage.removed) != 1 || storage.removed[0] != want {
		t.Fatalf("expected orphaned upload %s to be removed, got %v", want, storage.removed)
	}
}

func TestRecipeService_UpdateReplacesImage(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRecipeRepo()
	storage := &fakeStorage{}
	svc := NewRecipeService(repo, storage, RecipeServiceConfig{Bucket: "recipe-images"})

	owner := uuid.New()
	oldURL := "https://storage/recipe-images/recipes/" + owner.String() + "/1.png"
	recipe := domain.Recipe{ID: uuid.New(), UserID: owner, Title: "Soup", Category: "Lunch", ImageURL: &oldURL}
	repo.put(recipe)

	// Without a new upload the stored image stays and nothing is removed.
	if _, err := svc.Update(ctx, recipe.ID, owner, validRecipeInput()); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(storage.removed) != 0 {
		t.Fatalf("expected no removals, got %v", storage.removed)
	}

	svc.now = func() time.Time { return time.UnixMilli(2) }
	input := validRecipeInput()
	input.Image = pngUpload(t)
	updated, err := svc.Update(ctx, recipe.ID, owner, input)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.ImageURL == nil || !strings.HasSuffix(*updated.ImageURL, "/2.png") {
		t.Fatalf("expected new image url, got %v", updated.ImageURL)
	}
	want := "recipe-images/recipes/" + owner.String() + "/1.png"
	if len(storage.removed) != 1 || storage.removed[0] != want {
		t.Fatalf("expected previous image %s to be removed, got %v", want, storage.removed)
	}
}

func TestRecipeService_UpdateFailureRemovesNewUploadOnly(t *testing.T) {
	repo := newMemoryRecipeRepo()
	storage := &fakeStorage{}
	svc := NewRecipeService(repo, storage, RecipeServiceConfig{Bucket: "recipe-images"})
	svc.now = func() time.Time { return time.UnixMilli(3) }

	owner := uuid.New()
	oldURL := "https://storage/recipe-images/recipes/" + owner.String() + "/1.png"
	recipe := domain.Recipe{ID: uuid.New(), UserID: owner, Title: "Soup", Category: "Lunch", ImageURL: &oldURL}
	repo.put(recipe)
	repo.updateErr = errNetwork

	input := validRecipeInput()
	input.Image = pngUpload(t)
	if _, err := svc.Update(context.Background(), recipe.ID, owner, input); !errors.Is(err, errNetwork) {
		t.Fatalf("expected update error, got %v", err)
	}
	want := "recipe-images/recipes/" + owner.String() + "/3.png"
	if len(storage.removed) != 1 || storage.removed[0] != want {
		t.Fatalf("expected only the new upload to be removed, got %v", storage.removed)
	}
}

func TestRecipeService_DeleteRemovesImage(t *testing.T) {
	repo := newMemoryRecipeRepo()
	storage := &fakeStorage{removeErr: errNetwork}
	svc := NewRecipeService(repo, storage, RecipeServiceConfig{Bucket: "recipe-images"})

	owner := uuid.New()
	imageURL := "http://localhost:9000/recipe-images/recipes/" + owner.String() + "/9.webp"
	recipe := domain.Recipe{ID: uuid.New(), UserID: owner, Title: "Soup", Category: "Lunch", ImageURL: &imageURL}
	repo.put(recipe)

	// A failed cleanup does not fail the delete.
	if err := svc.Delete(context.Background(), recipe.ID, owner); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	want := "recipe-images/recipes/" + owner.String() + "/9.webp"
	if len(storage.removed) != 1 || storage.removed[0] != want {
		t.Fatalf("expected image %s to be removed, got %v", want, storage.removed)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("expected the recipe row to be deleted, got %v", repo.deleted)
	}
}

func TestObjectNameFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/recipe-images/recipes/u/1.png", "recipes/u/1.png"},
		{"http://localhost:9000/recipe-images/recipes/u/2.jpg?x=1", "recipes/u/2.jpg"},
		{"https://elsewhere.example.com/other/recipes/u/3.png", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := objectNameFromURL("recipe-images", tc.url); got != tc.want {
			t.Fatalf("objectNameFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
	if got := objectNameFromURL("", "https://cdn.example.com/recipe-images/a.png"); got != "" {
		t.Fatalf("expected empty bucket to disable cleanup, got %q", got)
	}
}
