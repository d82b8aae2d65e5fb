// Package pipeline orchestrates one flood risk evaluation: weather fetch,
// feature derivation, classifier scoring, risk categorization, hazard alert
// evaluation, and response assembly.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/floodguard/go-flood-alerts/internal/alerts"
	"github.com/floodguard/go-flood-alerts/internal/cities"
	"github.com/floodguard/go-flood-alerts/internal/classifier"
	"github.com/floodguard/go-flood-alerts/internal/features"
	"github.com/floodguard/go-flood-alerts/internal/models"
	"github.com/floodguard/go-flood-alerts/internal/observability"
	"github.com/floodguard/go-flood-alerts/internal/weather"
)

const forecastDays = 7

// Service wires the pipeline's collaborators. Model may be nil when the
// artifact failed to load at startup; every evaluation then degrades to the
// heuristic rather than failing the request.
type Service struct {
	provider    weather.Provider
	history     *weather.HistoryStore
	model       classifier.Scorer // nil means artifact unavailable
	fallback    classifier.Scorer
	metrics     *observability.Metrics
	broadcaster *Broadcaster
}

func NewService(provider weather.Provider, history *weather.HistoryStore, model classifier.Scorer,
	metrics *observability.Metrics, broadcaster *Broadcaster) *Service {
	return &Service{
		provider:    provider,
		history:     history,
		model:       model,
		fallback:    classifier.Heuristic{},
		metrics:     metrics,
		broadcaster: broadcaster,
	}
}

// ModelLoaded reports whether the trained artifact is scoring requests.
func (s *Service) ModelLoaded() bool {
	return s.model != nil
}

// TrackedCities reports how many cities currently have observation history.
func (s *Service) TrackedCities() int {
	return len(s.history.Sizes())
}

// Evaluate runs the full pipeline for a city and returns the assembled
// response. It fails with models.ErrUnknownCity before any upstream call for
// a city outside the supported table, and with models.ErrUpstreamUnavailable
// when the weather provider cannot supply current conditions. A missing
// forecast or model only degrades the response.
func (s *Service) Evaluate(ctx context.Context, cityName string) (models.PredictionResponse, error) {
	city, err := cities.Lookup(cityName)
	if err != nil {
		s.metrics.Evaluations.WithLabelValues("unknown_city").Inc()
		return models.PredictionResponse{}, fmt.Errorf("evaluate %q: %w", cityName, err)
	}

	// Snapshot before appending: the history is the trailing window the
	// current observation is compared against.
	history := s.history.Snapshot(city.Name)

	current, err := s.fetchCurrent(ctx, city)
	if err != nil {
		s.metrics.Evaluations.WithLabelValues("upstream_error").Inc()
		return models.PredictionResponse{}, fmt.Errorf("evaluate %q: %w", city.Name, err)
	}
	s.history.Append(ctx, current)

	forecast := s.fetchForecast(ctx, city)

	fv, err := features.Derive(history, current)
	if err != nil {
		s.metrics.Evaluations.WithLabelValues("internal_error").Inc()
		slog.Error("feature derivation failed", "city", city.Name, "error", err)
		return models.PredictionResponse{}, fmt.Errorf("evaluate %q: %w", city.Name, err)
	}

	prediction := s.score(fv)
	hazards := alerts.Evaluate(current, forecast)

	for _, a := range hazards {
		s.metrics.AlertsEmitted.WithLabelValues(string(a.Type), string(a.Severity)).Inc()
		if s.broadcaster != nil && (a.Severity == models.AlertSeverityCritical || a.Severity == models.AlertSeverityHigh) {
			s.broadcaster.Broadcast(CityAlert{City: city.Name, Alert: a})
		}
	}

	s.metrics.Evaluations.WithLabelValues("ok").Inc()
	s.metrics.RiskScore.Observe(float64(prediction.RiskScore))

	return assemble(city.Name, current, prediction, hazards, forecast), nil
}

func (s *Service) fetchCurrent(ctx context.Context, city cities.City) (models.Observation, error) {
	start := time.Now()
	obs, err := s.provider.Current(ctx, city)
	s.metrics.UpstreamDuration.WithLabelValues("current").Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.UpstreamRequests.WithLabelValues("current", "error").Inc()
		return models.Observation{}, err
	}
	s.metrics.UpstreamRequests.WithLabelValues("current", "success").Inc()
	return obs, nil
}

// fetchForecast degrades to an empty forecast on failure: the flood score
// must not depend on forecast availability, and the alert engine then covers
// current conditions only.
func (s *Service) fetchForecast(ctx context.Context, city cities.City) []models.ForecastDay {
	start := time.Now()
	forecast, err := s.provider.Forecast(ctx, city, forecastDays)
	s.metrics.UpstreamDuration.WithLabelValues("forecast").Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.UpstreamRequests.WithLabelValues("forecast", "error").Inc()
		slog.Warn("forecast fetch failed, continuing without forecast", "city", city.Name, "error", err)
		return nil
	}
	s.metrics.UpstreamRequests.WithLabelValues("forecast", "success").Inc()
	return forecast
}

// score runs the trained model when loaded, the heuristic otherwise. A
// runtime scoring failure also falls back: degraded output beats a failed
// request.
func (s *Service) score(fv models.FeatureVector) models.FloodPrediction {
	usedFallback := s.model == nil

	var (
		label int
		p     float64
		err   error
	)
	if !usedFallback {
		label, p, err = s.model.Score(fv)
		if err != nil {
			slog.Warn("model scoring failed, using heuristic", "error", err)
			usedFallback = true
		}
	}
	if usedFallback {
		label, p, _ = s.fallback.Score(fv)
		s.metrics.FallbackScores.Inc()
	}

	confidence := p
	if label == 0 {
		confidence = 1 - p
	}
	if usedFallback && confidence > classifier.FallbackConfidenceCap {
		confidence = classifier.FallbackConfidenceCap
	}

	score, category, _ := Categorize(p)
	return models.FloodPrediction{
		Prediction:   label,
		RiskScore:    score,
		RiskCategory: category,
		Confidence:   confidence,
		Fallback:     usedFallback,
		Factors:      fv,
	}
}
