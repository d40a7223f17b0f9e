package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/domain"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/logging"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/service"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/util"
)

// CommentBoard is the part of *service.CommentService the handler needs.
type CommentBoard interface {
	List(ctx context.Context, recipeID uuid.UUID) ([]domain.Comment, error)
	Post(ctx context.Context, recipeID, userID uuid.UUID, content string) ([]domain.Comment, error)
	Delete(ctx context.Context, commentID, userID uuid.UUID) error
}

type CommentHandler struct {
	comments CommentBoard
}

func RegisterComments(e *echo.Echo, auth Authenticator, comments CommentBoard) {
	handler := &CommentHandler{comments: comments}

	e.GET("/api/v1/recipes/:id/comments", handler.listComments)
	e.POST("/api/v1/recipes/:id/comments", handler.postComment, RequireAuth(auth))
	e.DELETE("/api/v1/comments/:id", handler.deleteComment, RequireAuth(auth))
}

func (h *CommentHandler) listComments(c echo.Context) error {
	recipeID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("invalid recipe id"))
	}

	comments, err := h.comments.List(c.Request().Context(), recipeID)
	if err != nil {
		return commentError(c, err, "unable to load comments")
	}
	return c.JSON(http.StatusOK, util.Data("comments", toCommentResponses(comments)))
}

// postComment handles POST /api/v1/recipes/{id}/comments and answers with the
// refreshed thread.
func (h *CommentHandler) postComment(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	recipeID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("invalid recipe id"))
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	comments, err := h.comments.Post(c.Request().Context(), recipeID, user.ID, req.Content)
	if err != nil {
		return commentError(c, err, "unable to post comment")
	}
	return c.JSON(http.StatusCreated, util.Data("comments", toCommentResponses(comments)))
}

func (h *CommentHandler) deleteComment(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	commentID, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("invalid comment id"))
	}

	if err := h.comments.Delete(c.Request().Context(), commentID, user.ID); err != nil {
		return commentError(c, err, "unable to delete comment")
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func commentError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrCommentValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrCommentNotFound), errors.Is(err, service.ErrRecipeNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrCommentForbidden):
		return c.JSON(http.StatusForbidden, util.Error(err.Error()))
	default:
		logging.Error(c.Request().Context()).Err(err).Msg(fallback)
		return c.JSON(http.StatusInternalServerError, util.Error(fallback))
	}
}
