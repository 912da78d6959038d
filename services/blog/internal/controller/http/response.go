package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"blogicum/pkg/logger"
	"blogicum/pkg/middleware"
	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/policy"

	"github.com/gin-gonic/gin"
)

type PostResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Text         string           `json:"text"`
	PubDate      time.Time        `json:"pub_date"`
	IsPublished  bool             `json:"is_published"`
	ImageURL     string           `json:"image_url,omitempty"`
	Author       *entity.User     `json:"author"`
	Category     *entity.Category `json:"category"`
	Location     *entity.Location `json:"location"`
	CommentCount int64            `json:"comment_count"`
	State        policy.State     `json:"state"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type PageResponse struct {
	Posts       []PostResponse `json:"posts"`
	Number      int            `json:"number"`
	Size        int            `json:"size"`
	TotalItems  int64          `json:"total_items"`
	TotalPages  int            `json:"total_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

type PostDetailResponse struct {
	Post     PostResponse      `json:"post"`
	Comments []*entity.Comment `json:"comments"`
}

type CategoryPageResponse struct {
	Category *entity.Category `json:"category"`
	PageResponse
}

type ProfilePageResponse struct {
	Profile *entity.User `json:"profile"`
	PageResponse
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func toPostResponse(post *entity.Post, now time.Time) PostResponse {
	return PostResponse{
		ID:           post.ID,
		Title:        post.Title,
		Text:         post.Text,
		PubDate:      post.PubDate,
		IsPublished:  post.IsPublished,
		ImageURL:     post.ImageURL,
		Author:       post.Author,
		Category:     post.Category,
		Location:     post.Location,
		CommentCount: post.CommentCount,
		State:        policy.StateOf(post, now),
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

func toPageResponse(page *entity.Page[*entity.Post], now time.Time) PageResponse {
	posts := make([]PostResponse, len(page.Items))
	for i, p := range page.Items {
		posts[i] = toPostResponse(p, now)
	}
	return PageResponse{
		Posts:       posts,
		Number:      page.Number,
		Size:        page.Size,
		TotalItems:  page.TotalItems,
		TotalPages:  page.TotalPages,
		HasNext:     page.HasNext,
		HasPrevious: page.HasPrevious,
	}
}

func principalFrom(c *gin.Context) entity.Principal {
	return entity.Principal{
		UserID:   c.GetString(middleware.ContextUserID),
		Username: c.GetString(middleware.ContextUsername),
	}
}

// pageNumber reads ?page=. Anything that is not a number means the first page.
func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return page
}

// errorResponder turns use case errors into HTTP responses.
type errorResponder struct {
	loginURL string
	logger   *logger.Logger
}

func (r errorResponder) respond(c *gin.Context, err error, action string) {
	var valErr *entity.ValidationError
	switch {
	case errors.Is(err, entity.ErrUnauthenticated):
		c.Redirect(http.StatusSeeOther, middleware.LoginRedirectURL(r.loginURL, c.Request.URL.RequestURI()))
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "You can only change your own content"})
	case errors.As(err, &valErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: valErr.Message, Field: valErr.Field})
	case errors.Is(err, entity.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "category_id"})
	case errors.Is(err, entity.ErrInvalidLocation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "location_id"})
	default:
		r.logger.Error("Failed to %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}
