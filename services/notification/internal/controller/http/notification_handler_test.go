package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogicum/pkg/jwt"
	"blogicum/pkg/logger"
	"blogicum/pkg/queue"
	"blogicum/services/notification/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationUseCase struct {
	mock.Mock
}

func (m *MockNotificationUseCase) HandleTask(task queue.Task) error {
	return m.Called(task).Error(0)
}

func (m *MockNotificationUseCase) GetNotifications(userID string, limit, offset int) ([]entity.Notification, int64, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationUseCase) DeleteNotificationsByPostID(userID, postID string) (int, error) {
	args := m.Called(userID, postID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationUseCase) ClearNotifications(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *MockNotificationUseCase) Stream(ctx context.Context, userID string, send func(payload []byte) error) error {
	return m.Called(ctx, userID, send).Error(0)
}

func setupNotificationTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withUser(userID string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		handler(c)
	}
}

func TestGetNotifications_Unauthorized(t *testing.T) {
	handler := NewNotificationHandler(new(MockNotificationUseCase), jwt.NewService("test-secret"), logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications", handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["error"], "Unauthorized")
}

func TestGetNotifications_Success(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, jwt.NewService("test-secret"), logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications", withUser("user-1", handler.GetNotifications))

	mockUseCase.On("GetNotifications", "user-1", 5, 10).
		Return([]entity.Notification{{ID: "n-1", PostID: "post-1"}}, int64(11), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications?limit=5&offset=10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(11), response["total"])
	assert.Len(t, response["notifications"], 1)
	mockUseCase.AssertExpectations(t)
}

func TestGetNotifications_LimitClamped(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, jwt.NewService("test-secret"), logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications", withUser("user-1", handler.GetNotifications))

	mockUseCase.On("GetNotifications", "user-1", defaultLimit, 0).Return([]entity.Notification{}, int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications?limit=5000&offset=-3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetNotifications_Error(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, jwt.NewService("test-secret"), logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications", withUser("user-1", handler.GetNotifications))

	mockUseCase.On("GetNotifications", "user-1", defaultLimit, 0).Return(nil, int64(0), errors.New("redis down"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDeleteNotificationsByPostID(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, jwt.NewService("test-secret"), logger.New())

	router := setupNotificationTestRouter()
	router.DELETE("/notifications/:post_id", withUser("user-1", handler.DeleteNotificationsByPostID))

	mockUseCase.On("DeleteNotificationsByPostID", "user-1", "post-1").Return(2, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/notifications/post-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":2}`, w.Body.String())
}

func TestClearNotifications(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, jwt.NewService("test-secret"), logger.New())

	router := setupNotificationTestRouter()
	router.DELETE("/notifications", withUser("user-1", handler.ClearNotifications))

	mockUseCase.On("ClearNotifications", "user-1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestHandleWebSocket_Unauthorized(t *testing.T) {
	mockUseCase := new(MockNotificationUseCase)
	handler := NewNotificationHandler(mockUseCase, jwt.NewService("test-secret"), logger.New())

	router := setupNotificationTestRouter()
	router.GET("/notifications/ws", handler.HandleWebSocket)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications/ws", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/notifications/ws?token=forged", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	mockUseCase.AssertNotCalled(t, "Stream", mock.Anything, mock.Anything, mock.Anything)
}
