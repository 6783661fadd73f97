// Package api assembles the HTTP surface: routing, middleware, and the
// central error handler.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campushub/blog-platform/internal/api/handler"
	"github.com/campushub/blog-platform/internal/api/middleware"
	"github.com/campushub/blog-platform/internal/core/domain"
	"github.com/campushub/blog-platform/internal/core/ports"
	"github.com/campushub/blog-platform/internal/core/service"
	"github.com/campushub/blog-platform/internal/infrastructure/config"
	mongodb "github.com/campushub/blog-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/campushub/blog-platform/internal/infrastructure/db/redis"
	"github.com/campushub/blog-platform/pkg/logger"
)

// NewRouter wires every dependency and returns the Echo instance with all
// routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, images ports.ImageStorage) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.BodyLimit(cfg.BodyLimit))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("blogplatform"))

	// --- Repositories and services ---
	users := mongodb.NewUserRepository(db)
	blogs := mongodb.NewBlogRepository(db)
	comments := mongodb.NewCommentRepository(db)
	cache := redisdb.NewListingCache(rdb, cfg.Redis.ListingTTL, log)

	authService := service.NewAuthService(users, images, cache, service.TokenConfig{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	}, log)
	userService := service.NewUserService(users, blogs, comments, cache, log)
	blogService := service.NewBlogService(blogs, users, images, cache, log)
	commentService := service.NewCommentService(comments, blogs, log)
	adminService := service.NewAdminService(users, blogs, comments, cache, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, handler.CookieSettings{
		Secure:     cfg.Auth.SecureCookies,
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
	})
	userHandler := handler.NewUserHandler(userService)
	blogHandler := handler.NewBlogHandler(blogService)
	commentHandler := handler.NewCommentHandler(commentService)
	dashboardHandler := handler.NewDashboardHandler(adminService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	// --- Route middleware ---
	authed := middleware.Auth(cfg.Auth.AccessSecret, users)
	ownBlog := middleware.BlogOwner(blogs)
	moderators := middleware.RequireRole(domain.RoleAdmin, domain.RoleModerator)
	admins := middleware.RequireRole(domain.RoleAdmin)

	v1 := e.Group("/api/v1")

	// --- Users and sessions ---
	usersGroup := v1.Group("/users")
	usersGroup.POST("/register", authHandler.Register)
	usersGroup.POST("/login", authHandler.Login)
	usersGroup.POST("/refresh-token", authHandler.Refresh)
	usersGroup.POST("/logout", authHandler.Logout, authed)
	usersGroup.GET("/me", authHandler.Me, authed)
	usersGroup.PATCH("/avatar", authHandler.UpdateAvatar, authed)
	usersGroup.PATCH("/cover-image", authHandler.UpdateCoverImage, authed)
	usersGroup.GET("", userHandler.List)
	usersGroup.GET("/profile", userHandler.Profile)
	usersGroup.GET("/profile/:user", userHandler.Profile)

	// --- Blogs and comments ---
	blogsGroup := v1.Group("/blogs")
	blogsGroup.GET("", blogHandler.List)
	blogsGroup.POST("", blogHandler.Create, authed)
	blogsGroup.PATCH("/:blogID", blogHandler.Update, authed, ownBlog)
	blogsGroup.DELETE("/:blogID", blogHandler.Delete, authed, ownBlog)
	blogsGroup.POST("/:blogID/comments", commentHandler.Create, authed)

	v1.DELETE("/comments/:commentID", commentHandler.Delete, authed)

	// --- Dashboard ---
	dashboard := v1.Group("/dashboard", authed)
	dashboard.PATCH("/users/:userID/role", dashboardHandler.ChangeRole, admins)
	dashboard.DELETE("/users/:userID", dashboardHandler.DeleteUser, admins)
	dashboard.DELETE("/blogs/:blogID", dashboardHandler.DeleteBlog, moderators)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	return e
}
