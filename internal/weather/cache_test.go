package weather

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floodguard/go-flood-alerts/internal/cities"
	"github.com/floodguard/go-flood-alerts/internal/models"
	"github.com/floodguard/go-flood-alerts/internal/observability"
)

// stubProvider counts calls and returns canned data.
type stubProvider struct {
	currentCalls  int
	forecastCalls int
	obs           models.Observation
	forecast      []models.ForecastDay
	err           error
}

func (s *stubProvider) Current(ctx context.Context, city cities.City) (models.Observation, error) {
	s.currentCalls++
	if s.err != nil {
		return models.Observation{}, s.err
	}
	obs := s.obs
	obs.City = city.Name
	return obs, nil
}

func (s *stubProvider) Forecast(ctx context.Context, city cities.City, days int) ([]models.ForecastDay, error) {
	s.forecastCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.forecast, nil
}

func TestCachedProvider_ServesFreshEntry(t *testing.T) {
	stub := &stubProvider{obs: models.Observation{Temperature: 31}}
	clock := clockwork.NewFakeClock()
	cached := NewCachedProvider(stub, 10*time.Minute, clock, nil)

	ctx := context.Background()
	first, err := cached.Current(ctx, lahore)
	require.NoError(t, err)

	second, err := cached.Current(ctx, lahore)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, stub.currentCalls)
}

func TestCachedProvider_ExpiresAfterTTL(t *testing.T) {
	stub := &stubProvider{obs: models.Observation{Temperature: 31}}
	clock := clockwork.NewFakeClock()
	cached := NewCachedProvider(stub, 10*time.Minute, clock, nil)

	ctx := context.Background()
	_, err := cached.Current(ctx, lahore)
	require.NoError(t, err)

	clock.Advance(11 * time.Minute)

	_, err = cached.Current(ctx, lahore)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.currentCalls, "expired entry must not be served")
}

func TestCachedProvider_PerCityEntries(t *testing.T) {
	stub := &stubProvider{obs: models.Observation{Temperature: 31}}
	cached := NewCachedProvider(stub, 10*time.Minute, clockwork.NewFakeClock(), nil)

	ctx := context.Background()
	cached.Current(ctx, lahore)
	cached.Current(ctx, cities.City{Name: "Karachi", Lat: 24.86, Lon: 67.0})

	assert.Equal(t, 2, stub.currentCalls)
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	stub := &stubProvider{err: models.ErrUpstreamUnavailable}
	cached := NewCachedProvider(stub, 10*time.Minute, clockwork.NewFakeClock(), nil)

	ctx := context.Background()
	_, err := cached.Current(ctx, lahore)
	assert.ErrorIs(t, err, models.ErrUpstreamUnavailable)

	stub.err = nil
	stub.obs = models.Observation{Temperature: 20}
	_, err = cached.Current(ctx, lahore)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.currentCalls)
}

func TestCachedProvider_Forecast(t *testing.T) {
	stub := &stubProvider{forecast: []models.ForecastDay{
		{Date: "2026-08-30"}, {Date: "2026-08-31"}, {Date: "2026-09-01"},
	}}
	clock := clockwork.NewFakeClock()
	cached := NewCachedProvider(stub, 10*time.Minute, clock, nil)

	ctx := context.Background()
	full, err := cached.Forecast(ctx, lahore, 7)
	require.NoError(t, err)
	assert.Len(t, full, 3)

	trimmed, err := cached.Forecast(ctx, lahore, 2)
	require.NoError(t, err)
	assert.Len(t, trimmed, 2)
	assert.Equal(t, 1, stub.forecastCalls)

	clock.Advance(11 * time.Minute)
	_, err = cached.Forecast(ctx, lahore, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.forecastCalls)
}

func TestCachedProvider_ShortForecastEntryRefetched(t *testing.T) {
	stub := &stubProvider{forecast: []models.ForecastDay{
		{Date: "2026-08-30"}, {Date: "2026-08-31"}, {Date: "2026-09-01"},
	}}
	cached := NewCachedProvider(stub, 10*time.Minute, clockwork.NewFakeClock(), nil)

	ctx := context.Background()
	short, err := cached.Forecast(ctx, lahore, 3)
	require.NoError(t, err)
	assert.Len(t, short, 3)
	assert.Equal(t, 1, stub.forecastCalls)

	// The 3-day entry cannot satisfy a 7-day request even while fresh.
	_, err = cached.Forecast(ctx, lahore, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.forecastCalls)
}

func TestCachedProvider_RecordsHitsAndMisses(t *testing.T) {
	stub := &stubProvider{obs: models.Observation{Temperature: 31}}
	metrics := observability.NewUnregisteredMetrics()
	cached := NewCachedProvider(stub, 10*time.Minute, clockwork.NewFakeClock(), metrics)

	ctx := context.Background()
	_, err := cached.Current(ctx, lahore)
	require.NoError(t, err)
	_, err = cached.Current(ctx, lahore)
	require.NoError(t, err)

	misses := testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("current", "miss"))
	hits := testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("current", "hit"))
	assert.Equal(t, 1.0, misses)
	assert.Equal(t, 1.0, hits)
}
