package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/floodguard/go-flood-alerts/internal/cities"
	"github.com/floodguard/go-flood-alerts/internal/models"
)

// BreakerProvider decorates a Provider with a circuit breaker so a flapping
// upstream fails fast instead of holding every request for the full timeout.
// An open breaker surfaces as models.ErrUpstreamUnavailable without issuing
// the HTTP call. One breaker covers both endpoints: they share a host and
// fail together.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[any]
}

func NewBreakerProvider(inner Provider) *BreakerProvider {
	return &BreakerProvider{
		inner: inner,
		cb: gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
			Name:     "openweather",
			Interval: time.Minute,
			Timeout:  30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (b *BreakerProvider) Current(ctx context.Context, city cities.City) (models.Observation, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.inner.Current(ctx, city)
	})
	if err != nil {
		return models.Observation{}, mapBreakerErr(err)
	}
	return v.(models.Observation), nil
}

func (b *BreakerProvider) Forecast(ctx context.Context, city cities.City, days int) ([]models.ForecastDay, error) {
	v, err := b.cb.Execute(func() (any, error) {
		return b.inner.Forecast(ctx, city, days)
	})
	if err != nil {
		return nil, mapBreakerErr(err)
	}
	return v.([]models.ForecastDay), nil
}

func mapBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: circuit breaker open", models.ErrUpstreamUnavailable)
	}
	return err
}
