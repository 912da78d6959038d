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
	"blogicum/pkg/s3"
	blogHTTP "blogicum/services/blog/internal/controller/http"
	"blogicum/services/blog/internal/policy"
	"blogicum/services/blog/internal/repo/persistent"
	"blogicum/services/blog/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "blogicum/services/blog/docs" // Swagger docs
)

// Repositories are the persistence collaborators of the blog.
type Repositories struct {
	Posts      persistent.PostRepository
	Comments   persistent.CommentRepository
	Categories persistent.CategoryRepository
	Locations  persistent.LocationRepository
	Users      persistent.UserRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Posts:      persistent.NewPostRepository(db),
		Comments:   persistent.NewCommentRepository(db),
		Categories: persistent.NewCategoryRepository(db),
		Locations:  persistent.NewLocationRepository(db),
		Users:      persistent.NewUserRepository(db),
	}
}

// Deps are the optional outside services. Any of them may be nil.
type Deps struct {
	Images      usecase.ImageStorage
	Notifier    usecase.Notifier
	RedisClient *redis.Client
}

// NewRouter builds the blog HTTP API.
func NewRouter(cfg *config.Config, log *logger.Logger, repos Repositories, deps Deps, clock policy.Clock) *gin.Engine {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize use cases
	contentUseCase := usecase.NewContentUseCase(repos.Posts, repos.Comments, repos.Categories, repos.Locations, repos.Users, clock, cfg.PostsPerPage, log)
	postUseCase := usecase.NewPostUseCase(repos.Posts, repos.Users, repos.Categories, repos.Locations, deps.Images, clock, log)
	commentUseCase := usecase.NewCommentUseCase(repos.Posts, repos.Comments, repos.Users, deps.Notifier, clock, log)

	// Initialize HTTP handlers
	contentHandler := blogHTTP.NewContentHandler(contentUseCase, clock, cfg.LoginURL, log)
	postHandler := blogHTTP.NewPostHandler(postUseCase, clock, cfg.LoginURL, log)
	commentHandler := blogHTTP.NewCommentHandler(commentUseCase, cfg.LoginURL, log)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuthMiddleware(jwtService))
	{
		api.GET("/posts", contentHandler.ListPosts)
		api.GET("/posts/:id", contentHandler.GetPost)
		api.GET("/category/:slug", contentHandler.ListCategoryPosts)
		api.GET("/profile/:username", contentHandler.ListProfilePosts)
		api.GET("/categories", contentHandler.ListCategories)
		api.GET("/locations", contentHandler.ListLocations)
	}

	// Mutations need a logged in user
	protected := api.Group("")
	protected.Use(middleware.LoginRequired(cfg.LoginURL))
	protected.Use(middleware.RateLimitMiddleware(deps.RedisClient, cfg.RateLimitPerMinute, time.Minute))
	{
		protected.POST("/posts", postHandler.CreatePost)
		protected.PUT("/posts/:id", postHandler.UpdatePost)
		protected.DELETE("/posts/:id", postHandler.DeletePost)
		protected.POST("/posts/:id/comments", commentHandler.AddComment)
		protected.PUT("/posts/:id/comments/:comment_id", commentHandler.UpdateComment)
		protected.DELETE("/posts/:id/comments/:comment_id", commentHandler.DeleteComment)
	}

	return r
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	deps := Deps{RedisClient: redisClient}
	// Typed nils must not leak into the interfaces.
	if s3Client != nil {
		deps.Images = s3Client
	}
	if queueClient != nil {
		deps.Notifier = queueClient
	}

	r := NewRouter(cfg, log, NewRepositories(db), deps, policy.SystemClock{})

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Blog service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down blog service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		queueClient.Close()
	}

	log.Info("Blog service exited")
}
