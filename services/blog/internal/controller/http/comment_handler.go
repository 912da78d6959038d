package http

import (
	"net/http"

	"blogicum/pkg/logger"
	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	errors         errorResponder
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, loginURL string, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		errors:         errorResponder{loginURL: loginURL, logger: logger},
		logger:         logger,
	}
}

type CommentRequest struct {
	Text string `form:"text" json:"text"`
}

func bindComment(c *gin.Context) (string, error) {
	var req CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		return "", entity.NewValidationError("body", err.Error())
	}
	return req.Text, nil
}

// AddComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body CommentRequest true "Comment"
// @Success      201  {object}  entity.Comment
// @Failure      303  {string}  string "Redirect to login"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	text, err := bindComment(c)
	if err != nil {
		h.errors.respond(c, err, "add comment")
		return
	}

	comment, err := h.commentUseCase.AddComment(principalFrom(c), c.Param("id"), text)
	if err != nil {
		h.errors.respond(c, err, "add comment")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        comment_id path string true "Comment ID"
// @Param        request body CommentRequest true "Comment"
// @Success      200  {object}  entity.Comment
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments/{comment_id} [put]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	text, err := bindComment(c)
	if err != nil {
		h.errors.respond(c, err, "update comment")
		return
	}

	comment, err := h.commentUseCase.UpdateComment(principalFrom(c), c.Param("id"), c.Param("comment_id"), text)
	if err != nil {
		h.errors.respond(c, err, "update comment")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        comment_id path string true "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments/{comment_id} [delete]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.commentUseCase.DeleteComment(principalFrom(c), c.Param("id"), c.Param("comment_id")); err != nil {
		h.errors.respond(c, err, "delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
