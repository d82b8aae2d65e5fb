package repository

import (
	"context"

	"github.com/floodguard/go-flood-alerts/internal/models"
)

// ObservationRepository persists the trailing observation window per city so
// rolling-rainfall and pressure-trend features survive a restart. Alert and
// prediction output is never persisted here.
type ObservationRepository interface {
	Append(ctx context.Context, obs models.Observation) error
	// RecentByCity returns up to limit observations for a city,
	// oldest-first, matching the in-memory history ordering.
	RecentByCity(ctx context.Context, city string, limit int) ([]models.Observation, error)
	// Prune deletes all but the newest keep observations for a city.
	Prune(ctx context.Context, city string, keep int) error
}
