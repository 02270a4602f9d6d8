package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/L-YS-Ayoussef/EchoPost/pkg/middleware"
	"github.com/L-YS-Ayoussef/EchoPost/pkg/token"
)

// RouterConfig holds the handlers and settings the router wires together.
type RouterConfig struct {
	Feed   *FeedHandler
	Auth   *AuthHandler
	Images *ImageHandler
	WS     *WSHandler
	Tokens *token.Manager
	// ImageDir is served statically under /images.
	ImageDir string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()

	// Middleware
	r.Use(middleware.CorrelationID())
	r.Use(middleware.CORS())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Stored image assets
	r.Static("/images", cfg.ImageDir)

	// Public routes
	r.PUT("/auth/signup", cfg.Auth.Signup)
	r.POST("/auth/login", cfg.Auth.Login)
	r.GET("/ws/feed", cfg.WS.Stream)

	// Authenticated routes
	authed := r.Group("/", middleware.Auth(cfg.Tokens))
	authed.GET("/auth/status", cfg.Auth.GetStatus)
	authed.PATCH("/auth/status", cfg.Auth.UpdateStatus)
	authed.GET("/feed/posts", cfg.Feed.GetPosts)
	authed.POST("/feed/posts", cfg.Feed.CreatePost)
	authed.GET("/feed/posts/:id", cfg.Feed.GetPost)
	authed.PUT("/feed/posts/:id", cfg.Feed.UpdatePost)
	authed.DELETE("/feed/posts/:id", cfg.Feed.DeletePost)
	authed.PUT("/post-image", cfg.Images.UploadImage)

	return r
}
