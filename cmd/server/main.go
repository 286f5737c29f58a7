package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prairiegiraffe/mtn-mud-backend/internal/config"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/database"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/handler"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/logger"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/mailer"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/middleware"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/repository"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/router"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/service"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/storage"
	"github.com/prairiegiraffe/mtn-mud-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting MTN MUD Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Object Storage and Mail ───────────────────────────────────────
	store, err := storage.NewClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure object storage")
	}

	mail, err := mailer.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure mailer")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewAdminUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	jobRepo := repository.NewJobRepository(pool)
	submissionRepo := repository.NewSubmissionRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, sessionRepo)
	userService := service.NewAdminUserService(userRepo, sessionRepo)
	catalogService := service.NewCatalogService(categoryRepo, productRepo)
	jobService := service.NewJobService(jobRepo)
	submissionService := service.NewSubmissionService(submissionRepo, userRepo, jobRepo, store, mail, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, authService, userService),
		AdminUser:  handler.NewAdminUserHandler(userService),
		Catalog:    handler.NewCatalogHandler(catalogService),
		Job:        handler.NewJobHandler(jobService),
		Submission: handler.NewSubmissionHandler(cfg, submissionService),
		File:       handler.NewFileHandler(cfg, store),
	}

	loginLimiter := middleware.NewLoginLimiter(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow, log)

	// ─── Session Pruning ──────────────────────────────────────────────
	// Expired rows are already unusable (IsValid checks expires_at); the
	// sweep just keeps the table from growing forever.
	pruneCtx, pruneCancel := context.WithCancel(context.Background())
	go pruneSessions(pruneCtx, sessionRepo, log)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, loginLimiter, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	pruneCancel()

	log.Info().Msg("Shutdown complete")
}

// pruneSessions deletes expired session rows once an hour.
func pruneSessions(ctx context.Context, sessions *repository.SessionRepository, log zerolog.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.DeleteExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Session prune failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("deleted", n).Msg("Pruned expired sessions")
			}
		}
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
