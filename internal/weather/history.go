package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/floodguard/go-flood-alerts/internal/models"
	"github.com/floodguard/go-flood-alerts/internal/repository"
)

// HistoryStore owns the per-city trailing observation window the feature
// derivation reads. It is the only shared mutable state in the pipeline:
// appends for the same city serialize on that city's lock so a concurrent
// evaluation never loses an observation or reads a torn window. Different
// cities never contend.
//
// When constructed with a repository, appends are written through and the
// window is reloadable after a restart via Warm.
type HistoryStore struct {
	window int
	repo   repository.ObservationRepository // nil means memory-only

	mu     sync.Mutex
	cities map[string]*cityHistory
}

type cityHistory struct {
	mu           sync.Mutex
	observations []models.Observation // oldest-first
}

// DefaultWindow is the bounded per-city history length. Seven daily samples
// cover the widest rolling feature; a few extra absorb irregular sampling.
const DefaultWindow = 10

func NewHistoryStore(window int, repo repository.ObservationRepository) *HistoryStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &HistoryStore{
		window: window,
		repo:   repo,
		cities: make(map[string]*cityHistory),
	}
}

func (s *HistoryStore) city(name string) *cityHistory {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.cities[name]
	if !ok {
		h = &cityHistory{}
		s.cities[name] = h
	}
	return h
}

// Append records an observation at the end of its city's window, evicting the
// oldest entry when full. Persistence failures are logged, not fatal: the
// in-memory window keeps the request path alive.
func (s *HistoryStore) Append(ctx context.Context, obs models.Observation) {
	h := s.city(obs.City)

	h.mu.Lock()
	h.observations = append(h.observations, obs)
	if len(h.observations) > s.window {
		h.observations = h.observations[len(h.observations)-s.window:]
	}
	h.mu.Unlock()

	if s.repo == nil {
		return
	}
	if err := s.repo.Append(ctx, obs); err != nil {
		slog.Error("failed to persist observation", "city", obs.City, "error", err)
		return
	}
	if err := s.repo.Prune(ctx, obs.City, s.window); err != nil {
		slog.Error("failed to prune observation history", "city", obs.City, "error", err)
	}
}

// Snapshot returns a copy of the city's window, oldest-first. The copy means
// feature derivation never races a concurrent append.
func (s *HistoryStore) Snapshot(city string) []models.Observation {
	h := s.city(city)

	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]models.Observation, len(h.observations))
	copy(out, h.observations)
	return out
}

// Warm reloads the persisted windows for the given cities, replacing any
// in-memory state. Called once at startup before the store is shared.
func (s *HistoryStore) Warm(ctx context.Context, cityNames []string) error {
	if s.repo == nil {
		return nil
	}

	for _, name := range cityNames {
		observations, err := s.repo.RecentByCity(ctx, name, s.window)
		if err != nil {
			return fmt.Errorf("error warming history for %s: %w", name, err)
		}
		if len(observations) == 0 {
			continue
		}

		h := s.city(name)
		h.mu.Lock()
		h.observations = observations
		h.mu.Unlock()
	}
	return nil
}

// Sizes reports the current window length per tracked city.
func (s *HistoryStore) Sizes() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.cities))
	for name, h := range s.cities {
		h.mu.Lock()
		out[name] = len(h.observations)
		h.mu.Unlock()
	}
	return out
}
