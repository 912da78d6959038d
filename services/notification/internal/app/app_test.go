package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogicum/pkg/database"
	"blogicum/pkg/jwt"
	"blogicum/pkg/logger"
	"blogicum/pkg/queue"
	"blogicum/services/notification/internal/entity"
	"blogicum/services/notification/internal/model"
	"blogicum/services/notification/internal/repo/persistent"
	"blogicum/services/notification/internal/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.UserModel{}))
	require.NoError(t, db.Create(&model.UserModel{ID: "reader-1", Username: "bob"}).Error)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	log := logger.New()
	uc := usecase.NewNotificationUseCase(persistent.NewUserRepository(db), redisClient, log)
	jwtService := jwt.NewService("test-secret")
	router := NewRouter(uc, jwtService, log)

	// What the consumer does for a delivery published by the blog.
	body, err := queue.EncodeTask(queue.Task{
		Type:      queue.RoutingKeyNewComment,
		UserID:    "author-1",
		PostID:    "post-1",
		CommentID: "comment-1",
		ActorID:   "reader-1",
	})
	require.NoError(t, err)
	task, err := queue.DecodeTask(body)
	require.NoError(t, err)
	require.NoError(t, uc.HandleTask(task))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/notifications", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwtService.GenerateToken("author-1", "alice")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/v1/notifications", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob commented on your post")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", "/api/v1/notifications/post-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"deleted":1}`, w.Body.String())
}

func TestNotificationWebSocket(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.UserModel{}))
	require.NoError(t, db.Create(&model.UserModel{ID: "reader-1", Username: "bob"}).Error)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer redisClient.Close()

	log := logger.New()
	uc := usecase.NewNotificationUseCase(persistent.NewUserRepository(db), redisClient, log)
	jwtService := jwt.NewService("test-secret")

	server := httptest.NewServer(NewRouter(uc, jwtService, log))
	defer server.Close()

	token, err := jwtService.GenerateToken("author-1", "alice")
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/notifications/ws?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub("notifications:author-1")["notifications:author-1"] == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, uc.HandleTask(queue.Task{
		Type:      queue.RoutingKeyNewComment,
		UserID:    "author-1",
		PostID:    "post-1",
		CommentID: "comment-1",
		ActorID:   "reader-1",
	}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	messageType, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, messageType)

	var notification entity.Notification
	require.NoError(t, json.Unmarshal(payload, &notification))
	assert.Equal(t, "bob commented on your post", notification.Message)
	assert.Equal(t, "post-1", notification.PostID)
}
