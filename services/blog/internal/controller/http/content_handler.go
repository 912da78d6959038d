package http

import (
	"net/http"

	"blogicum/pkg/logger"
	"blogicum/services/blog/internal/policy"
	"blogicum/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentUseCase usecase.ContentUseCase
	clock          policy.Clock
	errors         errorResponder
	logger         *logger.Logger
}

func NewContentHandler(contentUseCase usecase.ContentUseCase, clock policy.Clock, loginURL string, logger *logger.Logger) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
		clock:          clock,
		errors:         errorResponder{loginURL: loginURL, logger: logger},
		logger:         logger,
	}
}

// ListPosts godoc
// @Summary      List posts
// @Description  Live posts, newest first, with comment counts
// @Tags         posts
// @Produce      json
// @Param        page query int false "Page number (1-based)"
// @Success      200  {object}  PageResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /posts [get]
func (h *ContentHandler) ListPosts(c *gin.Context) {
	page, err := h.contentUseCase.ListPosts(pageNumber(c))
	if err != nil {
		h.errors.respond(c, err, "list posts")
		return
	}

	c.JSON(http.StatusOK, toPageResponse(page, h.clock.Now()))
}

// ListCategoryPosts godoc
// @Summary      List posts of a category
// @Description  Live posts of a published category. Unknown or unpublished categories are 404.
// @Tags         categories
// @Produce      json
// @Param        slug path string true "Category slug"
// @Param        page query int false "Page number (1-based)"
// @Success      200  {object}  CategoryPageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /category/{slug} [get]
func (h *ContentHandler) ListCategoryPosts(c *gin.Context) {
	res, err := h.contentUseCase.ListCategoryPosts(c.Param("slug"), pageNumber(c))
	if err != nil {
		h.errors.respond(c, err, "list category posts")
		return
	}

	c.JSON(http.StatusOK, CategoryPageResponse{
		Category:     res.Category,
		PageResponse: toPageResponse(res.Page, h.clock.Now()),
	})
}

// ListProfilePosts godoc
// @Summary      List posts of a user
// @Description  The owner sees drafts and scheduled posts too; everyone else sees live posts only
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "Username"
// @Param        page query int false "Page number (1-based)"
// @Success      200  {object}  ProfilePageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profile/{username} [get]
func (h *ContentHandler) ListProfilePosts(c *gin.Context) {
	res, err := h.contentUseCase.ListProfilePosts(c.Param("username"), principalFrom(c), pageNumber(c))
	if err != nil {
		h.errors.respond(c, err, "list profile posts")
		return
	}

	c.JSON(http.StatusOK, ProfilePageResponse{
		Profile:      res.Profile,
		PageResponse: toPageResponse(res.Page, h.clock.Now()),
	})
}

// GetPost godoc
// @Summary      Get post by ID
// @Description  Post with its comments. Posts that are not live are visible to their author only.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  PostDetailResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func (h *ContentHandler) GetPost(c *gin.Context) {
	detail, err := h.contentUseCase.GetPost(c.Param("id"), principalFrom(c))
	if err != nil {
		h.errors.respond(c, err, "get post")
		return
	}

	c.JSON(http.StatusOK, PostDetailResponse{
		Post:     toPostResponse(detail.Post, h.clock.Now()),
		Comments: detail.Comments,
	})
}

// ListCategories godoc
// @Summary      List published categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /categories [get]
func (h *ContentHandler) ListCategories(c *gin.Context) {
	categories, err := h.contentUseCase.ListCategories()
	if err != nil {
		h.errors.respond(c, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

// ListLocations godoc
// @Summary      List published locations
// @Tags         locations
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /locations [get]
func (h *ContentHandler) ListLocations(c *gin.Context) {
	locations, err := h.contentUseCase.ListLocations()
	if err != nil {
		h.errors.respond(c, err, "list locations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"locations": locations, "count": len(locations)})
}
