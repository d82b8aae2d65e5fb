package models

import "errors"

// Pipeline error taxonomy. Callers dispatch with errors.Is; the HTTP layer maps
// ErrUnknownCity to a 4xx and ErrUpstreamUnavailable to a retryable 502.
// ErrModelUnavailable is degraded mode, not a request failure: the pipeline
// falls back to the rule-based heuristic.
var (
	ErrUnknownCity         = errors.New("city not in supported city table")
	ErrUpstreamUnavailable = errors.New("weather provider unavailable")
	ErrModelUnavailable    = errors.New("flood model artifact unavailable")
	ErrInvalidFeatures     = errors.New("invalid feature vector")
)
