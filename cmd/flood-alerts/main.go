package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/floodguard/go-flood-alerts/internal/api"
	"github.com/floodguard/go-flood-alerts/internal/cities"
	"github.com/floodguard/go-flood-alerts/internal/classifier"
	"github.com/floodguard/go-flood-alerts/internal/config"
	"github.com/floodguard/go-flood-alerts/internal/ingestion"
	"github.com/floodguard/go-flood-alerts/internal/logging"
	"github.com/floodguard/go-flood-alerts/internal/observability"
	"github.com/floodguard/go-flood-alerts/internal/pipeline"
	"github.com/floodguard/go-flood-alerts/internal/repository"
	"github.com/floodguard/go-flood-alerts/internal/weather"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	history := weather.NewHistoryStore(weather.DefaultWindow, db)
	cityNames := make([]string, len(cities.All))
	for i, c := range cities.All {
		cityNames[i] = c.Name
	}
	if err := history.Warm(ctx, cityNames); err != nil {
		slog.Warn("failed to warm observation history", "error", err)
	}

	metrics := observability.NewMetrics()

	// Weather client wrapped in a circuit breaker, then a short-lived cache.
	var provider weather.Provider = weather.NewOpenWeatherClient(
		cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Timeout)
	provider = weather.NewBreakerProvider(provider)
	provider = weather.NewCachedProvider(provider, cfg.Weather.CacheTTL, clockwork.NewRealClock(), metrics)

	// A missing or corrupt artifact is startup-degraded mode, not fatal: the
	// heuristic serves until the artifact is fixed and the process restarted.
	var model classifier.Scorer
	if m, err := classifier.Load(cfg.Model.Path); err != nil {
		slog.Error("flood model unavailable, falling back to heuristic", "path", cfg.Model.Path, "error", err)
	} else {
		model = m
		slog.Info("flood model loaded", "path", cfg.Model.Path)
	}

	broadcaster := pipeline.NewBroadcaster()
	service := pipeline.NewService(provider, history, model, metrics, broadcaster)

	sampler := ingestion.NewSampler(cfg, provider, history, broadcaster)
	sampler.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(5)) // 5 req/s global limit

	handler := api.NewHandler(service, broadcaster)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	sampler.Stop()
	broadcaster.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
