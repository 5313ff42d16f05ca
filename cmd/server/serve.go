package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ayam7273/Eventmories/internal/handlers"
	"github.com/Ayam7273/Eventmories/internal/repositories"
	"github.com/Ayam7273/Eventmories/internal/router"
	"github.com/Ayam7273/Eventmories/internal/services"
	"github.com/Ayam7273/Eventmories/internal/validators"
	"github.com/Ayam7273/Eventmories/pkg/cache"
	"github.com/Ayam7273/Eventmories/pkg/config"
	"github.com/Ayam7273/Eventmories/pkg/firebase"
	"github.com/Ayam7273/Eventmories/pkg/metrics"
	"github.com/Ayam7273/Eventmories/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const shutdownTimeout = 10 * time.Second

var skipMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not run migrations on startup")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize databases: %w", err)
	}
	defer db.CloseDB()

	posts := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))
	if !skipMigrate {
		if err := repositories.AutoMigrate(db.Postgres); err != nil {
			return fmt.Errorf("failed to auto migrate models: %w", err)
		}
		if err := posts.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("failed to create post indexes: %w", err)
		}
		log.Info().Msg("Migrations completed")
	}

	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// Firebase is optional in development; without it OAuth login and
	// password reset emails are unavailable.
	var fbApp *firebase.App
	var fbAuth services.FirebaseAuth
	var resets services.PasswordResetSender
	if cfg.FirebaseCredentialsPath != "" {
		fbApp, err = firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return fmt.Errorf("failed to initialize Firebase: %w", err)
		}
		fbAuth = fbApp.AuthClient
		mailer, err := fbApp.PasswordResetMailer(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize password reset mailer: %w", err)
		}
		resets = mailer
	} else {
		log.Warn().Msg("FIREBASE_CREDENTIALS_PATH not set, Firebase login disabled")
	}

	media, avatars, err := openBuckets(ctx, cfg, fbApp)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, cfg)
	router.SetupRoutes(e, router.Deps{
		Config:         cfg,
		Postgres:       db.Postgres,
		Posts:          posts,
		Redis:          rdb,
		Firebase:       fbAuth,
		PasswordResets: resets,
		MediaBucket:    media,
		AvatarBucket:   avatars,
		HealthChecks:   healthChecks(db, rdb),
	})

	go metrics.Serve(ctx, ":"+cfg.MetricsPort)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}

func openBuckets(ctx context.Context, cfg *config.Config, app *firebase.App) (storage.Bucket, storage.Bucket, error) {
	if cfg.StorageDriver == "local" {
		return storage.NewLocalBucket(cfg.LocalStorageDir, cfg.PublicBaseURL, cfg.MediaBucket),
			storage.NewLocalBucket(cfg.LocalStorageDir, cfg.PublicBaseURL, cfg.AvatarBucket),
			nil
	}

	if app == nil {
		return nil, nil, errors.New("gcs storage driver requires Firebase credentials")
	}
	mediaHandle, err := app.Bucket(ctx, cfg.MediaBucket)
	if err != nil {
		return nil, nil, err
	}
	avatarHandle, err := app.Bucket(ctx, cfg.AvatarBucket)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewGCSBucket(mediaHandle, cfg.MediaBucket), storage.NewGCSBucket(avatarHandle, cfg.AvatarBucket), nil
}

func healthChecks(db *config.DB, rdb *redis.Client) []handlers.HealthCheck {
	checks := []handlers.HealthCheck{
		{Name: "postgres", Check: func(ctx context.Context) error {
			sqlDB, err := db.Postgres.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}},
		{Name: "mongo", Check: func(ctx context.Context) error {
			return db.Mongo.Ping(ctx, readpref.Primary())
		}},
	}
	if rdb != nil {
		checks = append(checks, handlers.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	return checks
}
