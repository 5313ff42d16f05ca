package router

import (
	"github.com/Ayam7273/Eventmories/internal/handlers"
	"github.com/Ayam7273/Eventmories/internal/middleware"
	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/Ayam7273/Eventmories/internal/services"
	"github.com/Ayam7273/Eventmories/pkg/config"
	"github.com/Ayam7273/Eventmories/pkg/metrics"
	"github.com/Ayam7273/Eventmories/pkg/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Deps are the connections and clients the routes are built from.
// Redis, Firebase and PasswordResets may be nil.
type Deps struct {
	Config         *config.Config
	Postgres       *gorm.DB
	Posts          repositories.PostRepository
	Redis          *redis.Client
	Firebase       services.FirebaseAuth
	PasswordResets services.PasswordResetSender
	MediaBucket    storage.Bucket
	AvatarBucket   storage.Bucket
	HealthChecks   []handlers.HealthCheck
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger())
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Origins(),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	log.Debug().Msg("Global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) {
	cfg := deps.Config
	pgdb := deps.Postgres

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	feedRepo := repositories.NewPostgresFeedRepository(pgdb)
	memberRepo := repositories.NewPostgresFeedMemberRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	savedPostRepo := repositories.NewPostgresSavedPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	sessionRepo := repositories.NewRedisSessionRepository(deps.Redis)
	historyRepo := repositories.NewRedisSearchHistoryRepository(deps.Redis)
	identityCache := repositories.NewRedisIdentityCacheRepository(deps.Redis)

	// --- Services ---
	identityService := services.NewIdentityService(userRepo, profileRepo, identityCache)
	notificationService := services.NewNotificationService(notificationRepo)
	postService := services.NewPostService(deps.Posts, likeRepo, savedPostRepo, commentRepo, memberRepo, identityService, deps.MediaBucket)
	interactionService := services.NewInteractionService(deps.Posts, likeRepo, savedPostRepo, commentRepo, memberRepo, identityService, notificationService)
	feedService := services.NewFeedService(feedRepo, memberRepo, postService)
	searchService := services.NewSearchService(deps.Posts, feedRepo, memberRepo, historyRepo)
	profileService := services.NewProfileService(profileRepo, identityService, deps.AvatarBucket)
	authService := services.NewAuthService(userRepo, sessionRepo, identityService, deps.Firebase, deps.PasswordResets, cfg.JWTSecret)

	// Health check - always accessible
	e.GET("/health", handlers.NewHealthHandler(deps.HealthChecks...).Health)

	if cfg.StorageDriver == "local" {
		e.Static("/media", cfg.LocalStorageDir)
	}

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authGroup.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(rate.Limit(cfg.AuthRateLimit))))
	authHandler := handlers.NewAuthHandler(authService, identityService)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(authService))

	authHandler.RegisterSessionRoutes(api)
	handlers.NewUserHandler(profileService).RegisterProfileRoutes(api)
	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(api)
	handlers.NewPostHandler(postService, cfg.MaxUploadMB).RegisterPostRoutes(api)
	handlers.NewLikeHandler(interactionService).RegisterLikeRoutes(api)
	handlers.NewCommentHandler(interactionService).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	handlers.NewSearchHandler(searchService).RegisterSearchRoutes(api)

	log.Info().Int("routes", len(e.Routes())).Msg("All routes configured")
}
