// Package ingestion periodically samples current conditions for every
// supported city so the observation history behind rolling rainfall and soil
// saturation keeps filling between user requests.
package ingestion

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/floodguard/go-flood-alerts/internal/alerts"
	"github.com/floodguard/go-flood-alerts/internal/cities"
	"github.com/floodguard/go-flood-alerts/internal/config"
	"github.com/floodguard/go-flood-alerts/internal/models"
	"github.com/floodguard/go-flood-alerts/internal/pipeline"
	"github.com/floodguard/go-flood-alerts/internal/weather"
	"github.com/floodguard/go-flood-alerts/internal/worker"
)

type Sampler struct {
	cfg         *config.Config
	provider    weather.Provider
	history     *weather.HistoryStore
	broadcaster *pipeline.Broadcaster
	pool        *worker.Pool[cities.City]
	wg          sync.WaitGroup
}

func NewSampler(cfg *config.Config, provider weather.Provider, history *weather.HistoryStore,
	broadcaster *pipeline.Broadcaster) *Sampler {
	return &Sampler{
		cfg:         cfg,
		provider:    provider,
		history:     history,
		broadcaster: broadcaster,
	}
}

func (s *Sampler) Start(ctx context.Context) {
	if !s.cfg.Sampler.Enabled {
		slog.Info("observation sampler disabled")
		return
	}

	sample := func(ctx context.Context, city cities.City) error {
		obs, err := s.provider.Current(ctx, city)
		if err != nil {
			slog.Error("sampling failed", "city", city.Name, "error", err)
			return err
		}
		s.history.Append(ctx, obs)
		s.publishHazards(city.Name, obs)
		slog.Debug("sampled observation", "city", city.Name, "rainfall", obs.Rainfall)
		return nil
	}

	s.pool = worker.NewPool(s.cfg.Worker.Count, s.cfg.Worker.BufferSize, sample)
	s.pool.Start(ctx)

	s.wg.Add(1)
	go s.run(ctx)
}

// publishHazards evaluates current conditions and fans CRITICAL and HIGH
// alerts out to stream subscribers, so a hazard detected between user
// requests still reaches push consumers.
func (s *Sampler) publishHazards(city string, obs models.Observation) {
	if s.broadcaster == nil {
		return
	}
	for _, a := range alerts.Evaluate(obs, nil) {
		if a.Severity != models.AlertSeverityCritical && a.Severity != models.AlertSeverityHigh {
			continue
		}
		slog.Info("hazard detected by sampler", "city", city, "type", a.Type, "severity", a.Severity)
		s.broadcaster.Broadcast(pipeline.CityAlert{City: city, Alert: a})
	}
}

func (s *Sampler) run(ctx context.Context) {
	defer s.wg.Done()
	slog.Info("starting observation sampler", "interval", s.cfg.Sampler.Interval)

	ticker := time.NewTicker(s.cfg.Sampler.Interval)
	defer ticker.Stop()

	s.sampleAll()

	for {
		select {
		case <-ctx.Done():
			slog.Info("observation sampler shutting down")
			return
		case <-ticker.C:
			s.sampleAll()
		}
	}
}

func (s *Sampler) sampleAll() {
	count := 0
	for _, list := range cities.ByProvince() {
		for _, city := range list {
			s.pool.Submit(city)
			count++
		}
	}
	slog.Debug("sampling round submitted", "cities", count)
}

func (s *Sampler) Stop() {
	s.wg.Wait()
	if s.pool != nil {
		s.pool.Stop()
	}
	slog.Info("observation sampler stopped")
}
