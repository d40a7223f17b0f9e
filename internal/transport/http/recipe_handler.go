package http

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/logging"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/service"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/util"
)

// maxRecipeForm caps the whole multipart body, image included.
var maxRecipeForm int64 = 32 << 20

var (
	errRecipeFormInvalid  = errors.New("invalid multipart payload")
	errRecipeFormTooLarge = errors.New("recipe form too large")
)

// RecipeCatalog is the part of *service.RecipeService the handler needs.
type RecipeCatalog interface {
	Categories() []string
	Create(ctx context.Context, userID uuid.UUID, input service.RecipeInput) (*domain.Recipe, error)
	Update(ctx context.Context, recipeID, userID uuid.UUID, input service.RecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, recipeID, userID uuid.UUID) error
	Get(ctx context.Context, recipeID uuid.UUID) (*domain.Recipe, error)
	List(ctx context.Context, filter domain.RecipeListFilter) (*domain.RecipeListResult, error)
}

type RecipeHandler struct {
	recipes RecipeCatalog
}

func RegisterRecipes(e *echo.Echo, auth Authenticator, recipes RecipeCatalog) {
	handler := &RecipeHandler{recipes: recipes}

	public := e.Group("/api/v1/recipes")
	public.GET("", handler.listRecipes, OptionalAuth(auth))
	public.GET("/categories", handler.listCategories)
	public.GET("/:id", handler.getRecipe)

	protected := e.Group("/api/v1/recipes", RequireAuth(auth))
	protected.POST("", handler.createRecipe)
	protected.PUT("/:id", handler.updateRecipe)
	protected.DELETE("/:id", handler.deleteRecipe)
}

// listRecipes handles GET /api/v1/recipes?search=&category=&user_id=&mine=true
func (h *RecipeHandler) listRecipes(c echo.Context) error {
	limit, offset := parsePagination(c, 20, 0)
	filter := domain.RecipeListFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Limit:    limit,
		Offset:   offset,
	}

	if raw := strings.TrimSpace(c.QueryParam("user_id")); raw != "" {
		owner, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("user_id must be a valid UUID"))
		}
		filter.UserID = &owner
	}
	if strings.EqualFold(c.QueryParam("mine"), "true") {
		user, ok := CurrentUser(c)
		if !ok || user == nil {
			return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
		}
		filter.UserID = &user.ID
	}

	result, err := h.recipes.List(c.Request().Context(), filter)
	if err != nil {
		logging.Error(c.Request().Context()).Err(err).Msg("list recipes failed")
		return c.JSON(http.StatusInternalServerError, util.Error("unable to list recipes"))
	}

	items := make([]RecipeResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toRecipeResponse(&result.Items[i]))
	}
	return c.JSON(http.StatusOK, util.Page("recipes", items, result.Total, result.Limit, result.Offset, len(items)))
}

func (h *RecipeHandler) listCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("categories", h.recipes.Categories()))
}

func (h *RecipeHandler) getRecipe(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("invalid recipe id"))
	}

	recipe, err := h.recipes.Get(c.Request().Context(), id)
	if err != nil {
		return recipeError(c, err, "unable to load recipe")
	}
	return c.JSON(http.StatusOK, util.Data("recipe", toRecipeResponse(recipe)))
}

// createRecipe handles multipart POST /api/v1/recipes
func (h *RecipeHandler) createRecipe(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	input, closer, err := parseRecipeForm(c)
	if err != nil {
		return recipeFormError(c, err)
	}
	if closer != nil {
		defer closer.Close()
	}

	recipe, err := h.recipes.Create(c.Request().Context(), user.ID, input)
	if err != nil {
		return recipeError(c, err, "unable to create recipe")
	}
	return c.JSON(http.StatusCreated, util.Data("recipe", toRecipeResponse(recipe)))
}

// updateRecipe handles multipart PUT /api/v1/recipes/{id}
func (h *RecipeHandler) updateRecipe(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("invalid recipe id"))
	}

	input, closer, err := parseRecipeForm(c)
	if err != nil {
		return recipeFormError(c, err)
	}
	if closer != nil {
		defer closer.Close()
	}

	recipe, err := h.recipes.Update(c.Request().Context(), id, user.ID, input)
	if err != nil {
		return recipeError(c, err, "unable to update recipe")
	}
	return c.JSON(http.StatusOK, util.Data("recipe", toRecipeResponse(recipe)))
}

func (h *RecipeHandler) deleteRecipe(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("invalid recipe id"))
	}

	if err := h.recipes.Delete(c.Request().Context(), id, user.ID); err != nil {
		return recipeError(c, err, "unable to delete recipe")
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func recipeError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrRecipeValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrRecipeNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrRecipeForbidden):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	default:
		logging.Error(c.Request().Context()).Err(err).Msg(fallback)
		return c.JSON(http.StatusInternalServerError, util.Error(fallback))
	}
}

func recipeFormError(c echo.Context, err error) error {
	if errors.Is(err, errRecipeFormTooLarge) {
		return c.JSON(http.StatusRequestEntityTooLarge, util.Error(err.Error()))
	}
	return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
}

// parseRecipeForm reads the recipe fields and the optional "image" file. The
// returned closer, when non-nil, must be closed once the upload is consumed.
func parseRecipeForm(c echo.Context) (service.RecipeInput, io.Closer, error) {
	req := c.Request()
	if req.ContentLength > maxRecipeForm {
		return service.RecipeInput{}, nil, errRecipeFormTooLarge
	}
	req.Body = http.MaxBytesReader(c.Response(), req.Body, maxRecipeForm)
	if err := req.ParseMultipartForm(maxRecipeForm); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.RecipeInput{}, nil, errRecipeFormTooLarge
		}
		return service.RecipeInput{}, nil, errRecipeFormInvalid
	}
	form := req.MultipartForm

	input := service.RecipeInput{
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		Ingredients:  formList(form, "ingredients"),
		Instructions: formList(form, "instructions"),
		Category:     c.FormValue("category"),
		Difficulty:   c.FormValue("difficulty"),
	}

	if raw := strings.TrimSpace(c.FormValue("cooking_time")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return service.RecipeInput{}, nil, errors.New("cooking_time must be an integer")
		}
		input.CookingTime = &minutes
	}

	header := formFile(form, "image")
	if header == nil {
		return input, nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return service.RecipeInput{}, nil, errors.New("unable to read image")
	}
	input.Image = &service.RecipeImageUpload{
		Reader:      file,
		Size:        header.Size,
		FileName:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
	}
	return input, file, nil
}

// formList accepts both "name" and "name[]" keys, in submission order.
func formList(form *multipart.Form, name string) []string {
	if form == nil {
		return nil
	}
	var values []string
	values = append(values, form.Value[name]...)
	values = append(values, form.Value[name+"[]"]...)
	return values
}

func formFile(form *multipart.Form, name string) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	if files := form.File[name]; len(files) > 0 {
		return files[0]
	}
	return nil
}
