package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogicum/pkg/config"
	"blogicum/pkg/jwt"
	"blogicum/pkg/logger"
	"blogicum/pkg/middleware"
	"blogicum/pkg/queue"
	notificationHTTP "blogicum/services/notification/internal/controller/http"
	"blogicum/services/notification/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "blogicum/services/notification/docs" // Swagger docs
)

func NewRouter(notificationUseCase usecase.NotificationUseCase, jwtService *jwt.Service, log *logger.Logger) *gin.Engine {
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, jwtService, log)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.DELETE("/notifications", notificationHandler.ClearNotifications)
		protected.DELETE("/notifications/:post_id", notificationHandler.DeleteNotificationsByPostID)
	}
	// Browsers cannot set headers on a WebSocket handshake, so the token may come as a query parameter.
	ws := api.Group("")
	ws.Use(middleware.OptionalAuthMiddleware(jwtService))
	ws.GET("/notifications/ws", notificationHandler.HandleWebSocket)

	return r
}

// Run serves the notification API and, when a broker is available, stores
// every consumed task until SIGINT/SIGTERM.
func Run(cfg *config.Config, log *logger.Logger, notificationUseCase usecase.NotificationUseCase, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	router := NewRouter(notificationUseCase, jwtService, log)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	if queueClient != nil {
		if err := queueClient.ConsumeNotificationTasks(notificationUseCase.HandleTask); err != nil {
			log.Error("Error starting notification queue consumer: %v", err)
		}
	} else {
		log.Warn("RabbitMQ is not available, notifications will not be consumed")
	}

	go func() {
		log.Info("Notification service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notification service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if queueClient != nil {
		queueClient.Close()
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Notification service exited")
}
