package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"aether/internal/config"
	"aether/internal/database"
	"aether/internal/demo"
	"aether/internal/handlers"
	"aether/internal/logging"
	"aether/internal/middleware"
)

// App holds the application dependencies.
type App struct {
	config        *config.Config
	logger        zerolog.Logger
	detector      *demo.Detector
	demoHandler   *handlers.DemoHandler
	healthHandler *handlers.HealthHandler
	router        *chi.Mux
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		bootLogger := logging.New("info", true)
		bootLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	detector := demo.NewDetector(cfg.DemoFlag()).WithTrustedProxy(cfg.TrustProxy)

	// The flag alone decides at startup; static-host detection happens per request.
	ambientDemo := detector.DetectAmbient()
	logger.Info().Bool("demo", ambientDemo).Str("flag", detector.Flag()).Msg("Demo mode detection")

	db, err := database.New(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.RunMigrations(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Info().Msg("Database migrations completed")

	// Left nil unless seeded, so /health skips the seed self-check.
	var seedVerifier handlers.SeedVerifier
	if ambientDemo {
		seeder := demo.NewSeeder(db, logger)
		if err := seeder.SeedIfEmpty(ctx); err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed demo accounts")
		}
		seedVerifier = seeder
	}

	app := &App{
		config:        cfg,
		logger:        logger,
		detector:      detector,
		demoHandler:   handlers.NewDemoHandler(detector, cfg.PublicURL, logger),
		healthHandler: handlers.NewHealthHandler(seedVerifier, logger),
	}
	app.setupRouter()

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      app.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Address()).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	logger.Info().Msg("Server stopped")
}

func (app *App) setupRouter() {
	r := chi.NewRouter()

	// Chi middleware (aliased as chimw to avoid conflict with our middleware package)
	if app.config.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(app.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))

	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DemoMode(app.detector))
	r.Use(middleware.BlockWritesInDemo)

	r.Get("/health", app.healthHandler.Health)

	r.Route("/api/demo", func(r chi.Router) {
		r.With(middleware.LimitAPI).Get("/", app.demoHandler.Status)
		r.With(middleware.LimitAPI).Get("/accounts/{role}", app.demoHandler.Account)
		r.With(middleware.LimitStrict).Get("/qr.png", app.demoHandler.QRCode)
	})

	app.router = r
}
