package weather

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/floodguard/go-flood-alerts/internal/cities"
	"github.com/floodguard/go-flood-alerts/internal/models"
	"github.com/floodguard/go-flood-alerts/internal/observability"
)

// CachedProvider decorates a Provider with a short-TTL in-memory cache so a
// burst of requests for the same city does not hammer the upstream rate
// limit. Entries older than the TTL are never served: a stale cache plus an
// unavailable upstream is an upstream error, not silently stale data.
type CachedProvider struct {
	inner   Provider
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu        sync.Mutex
	current   map[string]cachedCurrent
	forecasts map[string]cachedForecast
}

type cachedCurrent struct {
	obs       models.Observation
	fetchedAt time.Time
}

type cachedForecast struct {
	days      []models.ForecastDay
	fetchedAt time.Time
}

// NewCachedProvider wraps inner with a TTL cache. Metrics may be nil;
// lookups then go uncounted.
func NewCachedProvider(inner Provider, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:     inner,
		ttl:       ttl,
		clock:     clock,
		metrics:   metrics,
		current:   make(map[string]cachedCurrent),
		forecasts: make(map[string]cachedForecast),
	}
}

func (c *CachedProvider) record(endpoint, result string) {
	if c.metrics != nil {
		c.metrics.CacheLookups.WithLabelValues(endpoint, result).Inc()
	}
}

func (c *CachedProvider) Current(ctx context.Context, city cities.City) (models.Observation, error) {
	c.mu.Lock()
	entry, ok := c.current[city.Name]
	c.mu.Unlock()
	if ok && c.clock.Since(entry.fetchedAt) < c.ttl {
		c.record("current", "hit")
		return entry.obs, nil
	}
	c.record("current", "miss")

	obs, err := c.inner.Current(ctx, city)
	if err != nil {
		return models.Observation{}, err
	}

	c.mu.Lock()
	c.current[city.Name] = cachedCurrent{obs: obs, fetchedAt: c.clock.Now()}
	c.mu.Unlock()
	return obs, nil
}

func (c *CachedProvider) Forecast(ctx context.Context, city cities.City, days int) ([]models.ForecastDay, error) {
	c.mu.Lock()
	entry, ok := c.forecasts[city.Name]
	c.mu.Unlock()
	// A cached entry shorter than the request cannot satisfy it; refetch
	// rather than silently serving fewer days.
	if ok && c.clock.Since(entry.fetchedAt) < c.ttl && len(entry.days) >= days {
		c.record("forecast", "hit")
		return entry.days[:days:days], nil
	}
	c.record("forecast", "miss")

	fc, err := c.inner.Forecast(ctx, city, days)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.forecasts[city.Name] = cachedForecast{days: fc, fetchedAt: c.clock.Now()}
	c.mu.Unlock()
	return fc, nil
}
