// Package weather adapts the OpenWeather API into the pipeline's normalized
// observation and forecast records, and owns the per-city observation history
// the feature derivation reads.
package weather

import (
	"context"

	"github.com/floodguard/go-flood-alerts/internal/cities"
	"github.com/floodguard/go-flood-alerts/internal/models"
)

// Provider fetches normalized weather data for a supported city. The city is
// resolved against the fixed table before any call, so implementations never
// see an unknown name. Provider implementations do not retry; retry policy
// belongs to the caller.
type Provider interface {
	Current(ctx context.Context, city cities.City) (models.Observation, error)
	Forecast(ctx context.Context, city cities.City, days int) ([]models.ForecastDay, error)
}
