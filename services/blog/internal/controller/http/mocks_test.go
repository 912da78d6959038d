package http

import (
	"time"

	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

type MockContentUseCase struct {
	mock.Mock
}

func (m *MockContentUseCase) ListPosts(page int) (*entity.Page[*entity.Post], error) {
	args := m.Called(page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Page[*entity.Post]), args.Error(1)
}

func (m *MockContentUseCase) ListCategoryPosts(slug string, page int) (*usecase.CategoryPosts, error) {
	args := m.Called(slug, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CategoryPosts), args.Error(1)
}

func (m *MockContentUseCase) ListProfilePosts(username string, principal entity.Principal, page int) (*usecase.ProfilePosts, error) {
	args := m.Called(username, principal, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ProfilePosts), args.Error(1)
}

func (m *MockContentUseCase) GetPost(postID string, principal entity.Principal) (*usecase.PostDetail, error) {
	args := m.Called(postID, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.PostDetail), args.Error(1)
}

func (m *MockContentUseCase) ListCategories() ([]*entity.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *MockContentUseCase) ListLocations() ([]*entity.Location, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Location), args.Error(1)
}

type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(principal entity.Principal, input usecase.PostInput) (*entity.Post, error) {
	args := m.Called(principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) UpdatePost(principal entity.Principal, postID string, input usecase.PostInput) (*entity.Post, error) {
	args := m.Called(principal, postID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) DeletePost(principal entity.Principal, postID string) error {
	args := m.Called(principal, postID)
	return args.Error(0)
}

type MockCommentUseCase struct {
	mock.Mock
}

func (m *MockCommentUseCase) AddComment(principal entity.Principal, postID, text string) (*entity.Comment, error) {
	args := m.Called(principal, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) UpdateComment(principal entity.Principal, postID, commentID, text string) (*entity.Comment, error) {
	args := m.Called(principal, postID, commentID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) DeleteComment(principal entity.Principal, postID, commentID string) error {
	args := m.Called(principal, postID, commentID)
	return args.Error(0)
}

var (
	_ usecase.ContentUseCase = (*MockContentUseCase)(nil)
	_ usecase.PostUseCase    = (*MockPostUseCase)(nil)
	_ usecase.CommentUseCase = (*MockCommentUseCase)(nil)
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser marks the request as coming from userID before the handler runs.
func asUser(userID, username string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("username", username)
		handler(c)
	}
}
