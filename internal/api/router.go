package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tracknest/issuetracker/internal/api/handler"
	"github.com/tracknest/issuetracker/internal/api/middleware"
	"github.com/tracknest/issuetracker/internal/core/ports"
	"github.com/tracknest/issuetracker/internal/core/service"
	"github.com/tracknest/issuetracker/internal/infrastructure/config"
	mongodb "github.com/tracknest/issuetracker/internal/infrastructure/db/mongo"
	"github.com/tracknest/issuetracker/internal/infrastructure/password"
	"github.com/tracknest/issuetracker/internal/infrastructure/token"
)

// NewRouter builds the Echo instance with all routes registered. The
// notifier is the (already started) async publish stage; passing it in
// keeps the router free of goroutine lifecycle concerns.
func NewRouter(db *mongo.Database, rdb *redis.Client, notifier ports.EventNotifier, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("issuetracker"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	issueRepo := mongodb.NewIssueRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	hasher := password.NewBcryptHasher(0)
	codec := token.NewJWTCodec(cfg.JWTSecret, cfg.TokenTTL)

	tagger := service.NewTaggingService(userRepo)
	issueService := service.NewIssueService(issueRepo, commentRepo, userRepo, tagger, notifier, log)
	commentService := service.NewCommentService(commentRepo, issueRepo, userRepo, tagger, notifier, log)
	userService := service.NewUserService(userRepo, issueRepo, commentRepo, hasher, log)
	statsService := service.NewStatsService(issueRepo, commentRepo, userRepo, tagger, log)
	authService := service.NewAuthService(userRepo, hasher, codec, log)

	authHandler := handler.NewAuthHandler(authService)
	issueHandler := handler.NewIssueHandler(issueService)
	commentHandler := handler.NewCommentHandler(commentService)
	userHandler := handler.NewUserHandler(userService)
	statsHandler := handler.NewStatsHandler(statsService)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(codec))

	v1.POST("/issues", issueHandler.Create)
	v1.GET("/issues", issueHandler.List)
	v1.GET("/issues/:id", issueHandler.Get)
	v1.PUT("/issues/:id", issueHandler.Update)
	v1.PATCH("/issues/:id", issueHandler.Patch)
	v1.DELETE("/issues/:id", issueHandler.Delete)
	v1.GET("/issues/:id/view", issueHandler.WithComments)
	v1.GET("/issues/:id/comments", commentHandler.ListByIssue)

	v1.POST("/comments", commentHandler.Post)
	v1.GET("/comments/:id", commentHandler.Get)
	v1.DELETE("/comments/:id", commentHandler.Delete)

	v1.POST("/users", userHandler.Create)
	v1.GET("/users", userHandler.List)
	v1.GET("/users/resolve", userHandler.Resolve)
	v1.GET("/users/:id", userHandler.Get)
	v1.DELETE("/users/:id", userHandler.Delete)
	v1.GET("/users/:id/data", userHandler.AllData)
	v1.GET("/users/:id/issues", issueHandler.ListByOwner)
	v1.GET("/users/:id/comments", commentHandler.ListByUser)

	v1.GET("/stats/users/count", statsHandler.UserCount)
	v1.GET("/stats/users/:id", statsHandler.ForUser)
	v1.GET("/stats/issues/:id/tags", statsHandler.TagsForIssue)

	return e
}
