package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/socialchef/pantry/internal/api"
	"github.com/socialchef/pantry/internal/config"
	"github.com/socialchef/pantry/internal/db"
	"github.com/socialchef/pantry/internal/logger"
	"github.com/socialchef/pantry/internal/metrics"
	"github.com/socialchef/pantry/internal/middleware"
	"github.com/socialchef/pantry/internal/sentry"
	"github.com/socialchef/pantry/internal/services/generation"
	"github.com/socialchef/pantry/internal/services/recipes"
	"github.com/socialchef/pantry/internal/services/video"
	"github.com/socialchef/pantry/internal/store"
	"github.com/socialchef/pantry/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdownTelemetry, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env, cfg.OtelExporterOTLPEndpoint, nil)
	if err != nil {
		slog.Warn("Failed to init telemetry", "error", err)
	} else {
		defer func() {
			if err := shutdownTelemetry(context.Background()); err != nil {
				slog.Warn("Telemetry shutdown failed", "error", err)
			}
		}()
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	}
	defer sentry.Flush(2 * time.Second)

	// Initialize business metrics
	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	// Initialize logger with OTel support
	slog.SetDefault(logger.New(cfg.Env))

	// Optional persistence
	var recipeStore store.RecipeStore
	if cfg.PersistenceEnabled() {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := store.RunMigrations(ctx, pool); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		recipeStore = store.NewPostgresStore(pool)
	} else {
		slog.Warn("DATABASE_URL not set, recipe history is disabled")
	}

	generator := generation.NewGenerator(cfg.Generation, generation.Keys{
		Gemini: cfg.GeminiKey,
		Groq:   cfg.GroqKey,
		OpenAI: cfg.OpenAIKey,
	})

	youtube, err := video.NewYouTubeClient(ctx, cfg.YouTubeKey)
	if err != nil {
		log.Fatalf("Failed to create YouTube client: %v", err)
	}

	enricher := recipes.NewEnricher(youtube, cfg.Enrichment.MaxRecipes, cfg.Enrichment.LookupConcurrency)
	recipeService := recipes.NewService(generator, enricher, recipeStore)

	router := api.NewRouter(api.NewServer(recipeService), api.RouterOptions{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: []string{cfg.FrontendURL},
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server",
			"port", cfg.Port,
			"provider", cfg.Generation.Provider,
			"fallback", cfg.Generation.FallbackEnabled,
			"persistence", cfg.PersistenceEnabled(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
