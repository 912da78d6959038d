package http

import (
	"context"
	"net/http"
	"strconv"

	"blogicum/pkg/jwt"
	"blogicum/pkg/logger"
	"blogicum/pkg/middleware"
	"blogicum/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	jwtService          *jwt.Service
	logger              *logger.Logger
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, jwtService *jwt.Service, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		jwtService:          jwtService,
		logger:              logger,
	}
}

func (h *NotificationHandler) userID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 0 {
		return def
	}
	return v
}

// GetNotifications godoc
// @Summary      List notifications
// @Description  Notifications of the current user, newest first
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "Page size (max 100)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	limit := queryInt(c, "limit", defaultLimit)
	if limit == 0 || limit > maxLimit {
		limit = defaultLimit
	}
	offset := queryInt(c, "offset", 0)

	notifications, total, err := h.notificationUseCase.GetNotifications(userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get notifications for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"limit":         limit,
		"offset":        offset,
	})
}

// DeleteNotificationsByPostID godoc
// @Summary      Dismiss post notifications
// @Description  Remove every notification about a post
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        post_id  path  string  true  "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /notifications/{post_id} [delete]
func (h *NotificationHandler) DeleteNotificationsByPostID(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	deleted, err := h.notificationUseCase.DeleteNotificationsByPostID(userID, c.Param("post_id"))
	if err != nil {
		h.logger.Error("Failed to delete notifications for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// ClearNotifications godoc
// @Summary      Clear notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /notifications [delete]
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.notificationUseCase.ClearNotifications(userID); err != nil {
		h.logger.Error("Failed to clear notifications for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}

// HandleWebSocket godoc
// @Summary      Live notifications
// @Description  Upgrades to a WebSocket and pushes every new notification as a JSON text message. Browsers pass the JWT in the token query parameter.
// @Tags         notifications
// @Param        token  query  string  false  "JWT when no Authorization header is sent"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Router       /notifications/ws [get]
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
			return
		}
		claims, err := h.jwtService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		userID = claims.UserID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket connected for user %s", userID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The read loop answers pings and notices the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	err = h.notificationUseCase.Stream(ctx, userID, func(payload []byte) error {
		return conn.WriteMessage(websocket.TextMessage, payload)
	})
	if err != nil {
		h.logger.Warn("WebSocket stream for user %s ended: %v", userID, err)
	}

	h.logger.Info("WebSocket disconnected for user %s", userID)
}
