package main

import (
	"blogicum/pkg/cache"
	"blogicum/pkg/config"
	"blogicum/pkg/database"
	"blogicum/pkg/logger"
	"blogicum/pkg/queue"
	notificationApp "blogicum/services/notification/internal/app"
	"blogicum/services/notification/internal/repo/persistent"
	"blogicum/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Blogicum Notification API
// @version         1.0
// @description     Comment notifications for post authors
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8002
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if !cfg.ValidateJWTSecret() {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()
	db, err := database.Open(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Notifications live in redis, so it is required here.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	notificationUseCase := usecase.NewNotificationUseCase(persistent.NewUserRepository(db), redisClient, log)
	notificationApp.Run(cfg, log, notificationUseCase, redisClient, queueClient)
}
