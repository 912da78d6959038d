package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"blogicum/pkg/logger"
	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/policy"
	"blogicum/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

// pubDateLayouts are accepted for pub_date, RFC 3339 first.
var pubDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

type PostHandler struct {
	postUseCase usecase.PostUseCase
	clock       policy.Clock
	errors      errorResponder
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, clock policy.Clock, loginURL string, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		clock:       clock,
		errors:      errorResponder{loginURL: loginURL, logger: logger},
		logger:      logger,
	}
}

type PostRequest struct {
	Title       string  `form:"title" json:"title"`
	Text        string  `form:"text" json:"text"`
	PubDate     string  `form:"pub_date" json:"pub_date"`
	IsPublished *bool   `form:"is_published" json:"is_published"`
	CategoryID  *string `form:"category_id" json:"category_id"`
	LocationID  *string `form:"location_id" json:"location_id"`
}

func parsePubDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, entity.NewValidationError("pub_date", "invalid date and time")
}

// bindPost reads the post form. The returned closer releases the uploaded
// image, if any, and must always be called.
func bindPost(c *gin.Context) (usecase.PostInput, func(), error) {
	noop := func() {}

	var req PostRequest
	if err := c.ShouldBind(&req); err != nil {
		return usecase.PostInput{}, noop, entity.NewValidationError("body", err.Error())
	}

	pubDate, err := parsePubDate(req.PubDate)
	if err != nil {
		return usecase.PostInput{}, noop, err
	}

	input := usecase.PostInput{
		Title:       req.Title,
		Text:        req.Text,
		PubDate:     pubDate,
		IsPublished: req.IsPublished,
		CategoryID:  req.CategoryID,
		LocationID:  req.LocationID,
	}

	file, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return input, noop, nil
	}
	if err != nil {
		return input, noop, entity.NewValidationError("image", "failed to read upload")
	}

	src, err := file.Open()
	if err != nil {
		return input, noop, entity.NewValidationError("image", "failed to read upload")
	}
	input.Image = imageUpload(file, src)
	return input, func() { src.Close() }, nil
}

func imageUpload(file *multipart.FileHeader, src multipart.File) *usecase.ImageUpload {
	return &usecase.ImageUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Body:        src,
	}
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Create a post with an optional image. Category and location must be published.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Post title"
// @Param        text formData string true "Post text"
// @Param        pub_date formData string false "Publish date (RFC 3339); defaults to now"
// @Param        is_published formData bool false "Published flag; defaults to true"
// @Param        category_id formData string false "Category ID"
// @Param        location_id formData string false "Location ID"
// @Param        image formData file false "Image (jpg/jpeg/png)"
// @Success      201  {object}  PostResponse
// @Failure      303  {string}  string "Redirect to login"
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	input, release, err := bindPost(c)
	defer release()
	if err != nil {
		h.errors.respond(c, err, "create post")
		return
	}

	post, err := h.postUseCase.CreatePost(principalFrom(c), input)
	if err != nil {
		h.errors.respond(c, err, "create post")
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(post, h.clock.Now()))
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Replace the post fields. Only the author can edit; anyone else is redirected to the post.
// @Tags         posts
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        title formData string true "Post title"
// @Param        text formData string true "Post text"
// @Param        pub_date formData string false "Publish date (RFC 3339); defaults to now"
// @Param        is_published formData bool false "Published flag; defaults to true"
// @Param        category_id formData string false "Category ID"
// @Param        location_id formData string false "Location ID"
// @Param        image formData file false "Replacement image"
// @Success      200  {object}  PostResponse
// @Failure      303  {string}  string "Redirect to the post or to login"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("id")

	input, release, err := bindPost(c)
	defer release()
	if err != nil {
		h.errors.respond(c, err, "update post")
		return
	}

	post, err := h.postUseCase.UpdatePost(principalFrom(c), postID, input)
	if errors.Is(err, entity.ErrForbidden) {
		c.Redirect(http.StatusSeeOther, c.Request.URL.Path)
		return
	}
	if err != nil {
		h.errors.respond(c, err, "update post")
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post, h.clock.Now()))
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Delete a post with its comments and image. Only the author can delete.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postUseCase.DeletePost(principalFrom(c), c.Param("id")); err != nil {
		h.errors.respond(c, err, "delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
