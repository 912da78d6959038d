package main

import (
	"blogicum/pkg/cache"
	"blogicum/pkg/config"
	"blogicum/pkg/database"
	"blogicum/pkg/logger"
	"blogicum/pkg/queue"
	"blogicum/pkg/s3"
	blogApp "blogicum/services/blog/internal/app"
	"blogicum/services/blog/internal/model"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Blogicum Blog API
// @version         1.0
// @description     Posts, categories, locations and comments of the Blogicum blog
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
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

	// Postgres is migrated by goose (cmd/migrate); SQLite is for local runs only.
	if cfg.DBDriver == "sqlite" {
		if err := db.AutoMigrate(model.All()...); err != nil {
			log.Error("Failed to migrate sqlite database: %v", err)
			panic(err)
		}
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (continuing without rate limiting)", err)
		redisClient = nil
	}

	var s3Client *s3.Client
	if cfg.AWSAccessKeyID != "" {
		s3Client, err = s3.NewClient(cfg)
		if err != nil {
			log.Warn("Failed to create S3 client: %v (image uploads disabled)", err)
			s3Client = nil
		}
	} else {
		log.Warn("AWS_ACCESS_KEY_ID is not set, image uploads disabled")
	}

	// Connect to RabbitMQ for publishing notification events
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	blogApp.Run(cfg, log, db, s3Client, queueClient, redisClient)
}
