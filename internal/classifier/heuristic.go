package classifier

import "github.com/floodguard/go-flood-alerts/internal/models"

// FallbackConfidenceCap bounds the confidence reported for heuristic scores.
// The heuristic is a coarse stand-in for the trained model and must never
// look as trustworthy as a real model score.
const FallbackConfidenceCap = 0.40

// Saturating normalization points for the heuristic inputs, in mm.
const (
	heuristicRain3DayFull = 150.0
	heuristicRainNowFull  = 100.0
)

// Heuristic is the rule-based fallback Scorer used when the model artifact
// cannot be loaded: a weighted sum of the three strongest flood signals,
// each normalized into [0,1].
type Heuristic struct{}

func (Heuristic) Score(fv models.FeatureVector) (int, float64, error) {
	p := 0.45*clamp01(fv.Rainfall3Day/heuristicRain3DayFull) +
		0.30*(fv.SoilSaturation/100) +
		0.25*clamp01(fv.CurrentRainfall/heuristicRainNowFull)

	label := 0
	if p > 0.5 {
		label = 1
	}
	return label, p, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
