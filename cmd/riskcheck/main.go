// riskcheck evaluates flood risk for a single city and prints the response
// as JSON. Useful for smoke-testing the pipeline without the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/floodguard/go-flood-alerts/internal/classifier"
	"github.com/floodguard/go-flood-alerts/internal/config"
	"github.com/floodguard/go-flood-alerts/internal/logging"
	"github.com/floodguard/go-flood-alerts/internal/observability"
	"github.com/floodguard/go-flood-alerts/internal/pipeline"
	"github.com/floodguard/go-flood-alerts/internal/weather"
)

func main() {
	city := flag.String("city", "", "city to evaluate (required)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall evaluation timeout")
	flag.Parse()

	if *city == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	metrics := observability.NewUnregisteredMetrics()

	var provider weather.Provider = weather.NewOpenWeatherClient(
		cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Timeout)
	provider = weather.NewBreakerProvider(provider)
	provider = weather.NewCachedProvider(provider, cfg.Weather.CacheTTL, clockwork.NewRealClock(), metrics)

	var model classifier.Scorer
	if m, err := classifier.Load(cfg.Model.Path); err != nil {
		slog.Warn("flood model unavailable, using heuristic", "path", cfg.Model.Path, "error", err)
	} else {
		model = m
	}

	history := weather.NewHistoryStore(weather.DefaultWindow, nil)
	service := pipeline.NewService(provider, history, model, metrics, nil)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	resp, err := service.Evaluate(ctx, *city)
	if err != nil {
		logging.Fatalf("evaluation failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		logging.Fatalf("failed to encode response: %v", err)
	}
}
