// Package classifier wraps the pre-trained flood model artifact. Training
// happens elsewhere; this package only loads the exported artifact, checks
// that it matches the feature schema the pipeline produces, and scores
// feature vectors. When no usable artifact is available the pipeline degrades
// to the rule-based heuristic in heuristic.go.
package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/floodguard/go-flood-alerts/internal/models"
)

// schemaVersion is the artifact format this build understands. An artifact
// with any other version is rejected at load time rather than risking
// silently wrong scores against a reordered feature schema.
const schemaVersion = 1

// featureNames is the exact order the pipeline encodes a FeatureVector in.
// The artifact must declare the same names in the same order.
var featureNames = []string{
	"current_rainfall",
	"rainfall_3day",
	"rainfall_7day",
	"pressure_trend",
	"soil_saturation",
	"temperature",
	"humidity",
}

// Scorer is the single contract the pipeline depends on.
type Scorer interface {
	// Score returns the binary flood label and the model probability in [0,1].
	Score(fv models.FeatureVector) (label int, probability float64, err error)
}

// artifact is the serialized model: a standardized logistic regression
// exported by the training pipeline.
type artifact struct {
	SchemaVersion int       `json:"schema_version"`
	Features      []string  `json:"features"`
	Mean          []float64 `json:"mean"`
	Std           []float64 `json:"std"`
	Weights       []float64 `json:"weights"`
	Intercept     float64   `json:"intercept"`
}

// Model scores feature vectors with a loaded artifact.
type Model struct {
	art artifact
}

// Load reads and validates a model artifact. All failures wrap
// models.ErrModelUnavailable so callers can switch to the heuristic with a
// single errors.Is check.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", models.ErrModelUnavailable, path, err)
	}

	var art artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", models.ErrModelUnavailable, path, err)
	}

	if art.SchemaVersion != schemaVersion {
		return nil, fmt.Errorf("%w: artifact schema version %d, want %d",
			models.ErrModelUnavailable, art.SchemaVersion, schemaVersion)
	}
	if len(art.Features) != len(featureNames) {
		return nil, fmt.Errorf("%w: artifact has %d features, want %d",
			models.ErrModelUnavailable, len(art.Features), len(featureNames))
	}
	for i, name := range featureNames {
		if art.Features[i] != name {
			return nil, fmt.Errorf("%w: feature %d is %q, want %q",
				models.ErrModelUnavailable, i, art.Features[i], name)
		}
	}
	if len(art.Mean) != len(featureNames) || len(art.Std) != len(featureNames) || len(art.Weights) != len(featureNames) {
		return nil, fmt.Errorf("%w: mean/std/weights length mismatch", models.ErrModelUnavailable)
	}
	for i, s := range art.Std {
		if s <= 0 {
			return nil, fmt.Errorf("%w: non-positive std for feature %q", models.ErrModelUnavailable, art.Features[i])
		}
	}

	return &Model{art: art}, nil
}

// Score standardizes the encoded vector and applies the logistic model.
func (m *Model) Score(fv models.FeatureVector) (int, float64, error) {
	x := encode(fv)

	z := m.art.Intercept
	for i, v := range x {
		z += m.art.Weights[i] * (v - m.art.Mean[i]) / m.art.Std[i]
	}
	p := 1.0 / (1.0 + math.Exp(-z))

	label := 0
	if p > 0.5 {
		label = 1
	}
	return label, p, nil
}

// encode maps a FeatureVector to the artifact's column order. The pressure
// trend is the one categorical feature: falling=-1, stable=0, rising=+1.
func encode(fv models.FeatureVector) []float64 {
	return []float64{
		fv.CurrentRainfall,
		fv.Rainfall3Day,
		fv.Rainfall7Day,
		encodeTrend(fv.PressureTrend),
		fv.SoilSaturation,
		fv.Temperature,
		fv.Humidity,
	}
}

func encodeTrend(t models.PressureTrend) float64 {
	switch t {
	case models.PressureTrendFalling:
		return -1
	case models.PressureTrendRising:
		return 1
	default:
		return 0
	}
}
