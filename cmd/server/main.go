package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/config"
	"github.com/stemsi/portfolio-backend/internal/database"
	"github.com/stemsi/portfolio-backend/internal/handler"
	"github.com/stemsi/portfolio-backend/internal/logger"
	"github.com/stemsi/portfolio-backend/internal/middleware"
	"github.com/stemsi/portfolio-backend/internal/repository"
	"github.com/stemsi/portfolio-backend/internal/router"
	"github.com/stemsi/portfolio-backend/internal/service"
	"github.com/stemsi/portfolio-backend/internal/validator"
	"github.com/stemsi/portfolio-backend/internal/worker"
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
		Msg("Starting portfolio backend")

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

	// ─── Initialize Repositories ───────────────────────────────────────
	contactRepo := repository.NewContactRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	gpaService := service.NewGPAService(log)
	visitorService := service.NewVisitorService(cfg)
	preferenceService := service.NewPreferenceService(rdb, cfg, log)
	contactService := service.NewContactService(rdb, cfg, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Site:       handler.NewSiteHandler(),
		GPA:        handler.NewGPAHandler(gpaService, cfg.MaxUploadBytes, log),
		Preference: handler.NewPreferenceHandler(visitorService, preferenceService, log),
		Contact:    handler.NewContactHandler(contactService, log),
		WS:         handler.NewWSHandler(log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	contactWorker := worker.NewContactWorker(contactRepo, rdb, log)
	go contactWorker.Start(workerCtx)

	contactLimiter := middleware.NewRateLimiter(cfg.ContactRateLimit, time.Minute)
	contactLimiter.StartCleanup(workerCtx.Done())

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(visitorService, handlers, contactLimiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
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

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the contact worker and give it time to flush its last batch.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
