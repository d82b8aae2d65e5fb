package ingestion

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/floodguard/go-flood-alerts/internal/cities"
	"github.com/floodguard/go-flood-alerts/internal/config"
	"github.com/floodguard/go-flood-alerts/internal/models"
	"github.com/floodguard/go-flood-alerts/internal/pipeline"
	"github.com/floodguard/go-flood-alerts/internal/weather"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingProvider struct {
	mu          sync.Mutex
	calls       map[string]int
	temperature float64
}

func newCountingProvider() *countingProvider {
	return &countingProvider{calls: make(map[string]int), temperature: 30}
}

func (p *countingProvider) Current(_ context.Context, city cities.City) (models.Observation, error) {
	p.mu.Lock()
	p.calls[city.Name]++
	p.mu.Unlock()
	return models.Observation{
		City:        city.Name,
		Timestamp:   time.Now().UTC(),
		Temperature: p.temperature,
		Humidity:    50,
		Pressure:    1010,
	}, nil
}

func (p *countingProvider) Forecast(_ context.Context, _ cities.City, _ int) ([]models.ForecastDay, error) {
	return nil, nil
}

func (p *countingProvider) distinctCities() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func testConfig() *config.Config {
	return &config.Config{
		Sampler: config.SamplerConfig{Enabled: true, Interval: time.Hour},
		Worker:  config.WorkerConfig{Count: 4, BufferSize: 60},
	}
}

func TestSampler_SamplesEveryCity(t *testing.T) {
	provider := newCountingProvider()
	history := weather.NewHistoryStore(weather.DefaultWindow, nil)
	sampler := NewSampler(testConfig(), provider, history, nil)

	ctx, cancel := context.WithCancel(context.Background())
	sampler.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for provider.distinctCities() < 51 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	sampler.Stop()

	if got := provider.distinctCities(); got != 51 {
		t.Errorf("expected all 51 cities sampled, got %d", got)
	}
	if got := len(history.Sizes()); got != 51 {
		t.Errorf("expected history for 51 cities, got %d", got)
	}
}

func TestSampler_Disabled(t *testing.T) {
	provider := newCountingProvider()
	history := weather.NewHistoryStore(weather.DefaultWindow, nil)
	cfg := testConfig()
	cfg.Sampler.Enabled = false
	sampler := NewSampler(cfg, provider, history, nil)

	ctx, cancel := context.WithCancel(context.Background())
	sampler.Start(ctx)
	cancel()
	sampler.Stop()

	if got := provider.distinctCities(); got != 0 {
		t.Errorf("expected no sampling when disabled, got %d cities", got)
	}
}

func TestSampler_BroadcastsDetectedHazards(t *testing.T) {
	provider := newCountingProvider()
	provider.temperature = 46
	history := weather.NewHistoryStore(weather.DefaultWindow, nil)
	broadcaster := pipeline.NewBroadcaster()
	defer broadcaster.Close()
	sampler := NewSampler(testConfig(), provider, history, broadcaster)

	_, ch := broadcaster.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	sampler.Start(ctx)

	select {
	case got := <-ch:
		if got.Alert.Type != models.AlertTypeHeatwave {
			t.Errorf("expected HEATWAVE alert, got %s", got.Alert.Type)
		}
		if got.Alert.Severity != models.AlertSeverityCritical {
			t.Errorf("expected CRITICAL severity, got %s", got.Alert.Severity)
		}
		if got.City == "" {
			t.Error("expected alert to carry the sampled city")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for sampled hazard broadcast")
	}

	cancel()
	sampler.Stop()
}

func TestSampler_BenignConditionsBroadcastNothing(t *testing.T) {
	provider := newCountingProvider()
	history := weather.NewHistoryStore(weather.DefaultWindow, nil)
	broadcaster := pipeline.NewBroadcaster()
	defer broadcaster.Close()
	sampler := NewSampler(testConfig(), provider, history, broadcaster)

	_, ch := broadcaster.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	sampler.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for provider.distinctCities() < 51 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	sampler.Stop()

	select {
	case got := <-ch:
		t.Errorf("expected no broadcast for benign conditions, got %s for %s", got.Alert.Type, got.City)
	default:
	}
}
