// Package features computes the derived signals the flood classifier scores:
// rolling rainfall sums, barometric pressure trend, and a soil-saturation
// proxy. Derivation is a pure function over the observation history plus the
// newest observation, so the same inputs always produce the same vector.
package features

import (
	"fmt"
	"math"

	"github.com/floodguard/go-flood-alerts/internal/models"
)

const (
	// Pressure must move more than this against the trailing mean before the
	// trend leaves "stable". Calibration placeholder, like the saturation
	// constants below.
	pressureDeadBand = 1.0 // hPa

	// Number of prior entries averaged for the pressure trend baseline.
	pressureBaseline = 3

	// Soil saturation update: sat' = min(100, sat*decay + rain*gain).
	saturationDecay = 0.90
	saturationGain  = 2.0
	saturationMax   = 100.0
)

// Derive computes the feature vector for current given the trailing history
// (most-recent-last, not including current). Partial histories are valid:
// rolling sums cover whatever entries exist, and the pressure trend is
// "stable" until at least two prior entries are available.
func Derive(history []models.Observation, current models.Observation) (models.FeatureVector, error) {
	fv := models.FeatureVector{
		CurrentRainfall: current.Rainfall,
		Rainfall3Day:    rollingRainfall(history, current, 3),
		Rainfall7Day:    rollingRainfall(history, current, 7),
		PressureTrend:   pressureTrend(history, current),
		SoilSaturation:  soilSaturation(history, current),
		Temperature:     current.Temperature,
		Humidity:        current.Humidity,
	}

	if err := validate(fv); err != nil {
		return models.FeatureVector{}, err
	}
	return fv, nil
}

// rollingRainfall sums rainfall over the trailing window entries of
// history+current. A history shorter than the window sums what exists.
func rollingRainfall(history []models.Observation, current models.Observation, window int) float64 {
	sum := current.Rainfall
	for i := len(history) - 1; i >= 0 && window > len(history)-i; i-- {
		sum += history[i].Rainfall
	}
	return sum
}

// pressureTrend compares the current pressure against the mean of up to the
// previous three entries, with a dead band so sensor noise reads as stable.
func pressureTrend(history []models.Observation, current models.Observation) models.PressureTrend {
	if len(history) < 2 {
		return models.PressureTrendStable
	}

	n := pressureBaseline
	if n > len(history) {
		n = len(history)
	}
	var sum float64
	for _, obs := range history[len(history)-n:] {
		sum += obs.Pressure
	}
	delta := current.Pressure - sum/float64(n)

	switch {
	case delta > pressureDeadBand:
		return models.PressureTrendRising
	case delta < -pressureDeadBand:
		return models.PressureTrendFalling
	default:
		return models.PressureTrendStable
	}
}

// soilSaturation folds the decayed-accumulation update over the full history
// starting from 0, then applies the current observation. It proxies ground
// water retention, not actual hydrology: each step keeps 90% of the previous
// value and adds a gain-scaled share of that interval's rainfall, clamped
// to 100.
func soilSaturation(history []models.Observation, current models.Observation) float64 {
	sat := 0.0
	for _, obs := range history {
		sat = saturationStep(sat, obs.Rainfall)
	}
	return saturationStep(sat, current.Rainfall)
}

func saturationStep(prev, rainfall float64) float64 {
	return math.Min(saturationMax, prev*saturationDecay+rainfall*saturationGain)
}

// validate fails fast on NaN/Inf or out-of-range features so a corrupt
// observation never reaches the classifier.
func validate(fv models.FeatureVector) error {
	checks := []struct {
		name string
		val  float64
	}{
		{"current_rainfall", fv.CurrentRainfall},
		{"rainfall_3day", fv.Rainfall3Day},
		{"rainfall_7day", fv.Rainfall7Day},
		{"soil_saturation", fv.SoilSaturation},
		{"temperature", fv.Temperature},
		{"humidity", fv.Humidity},
	}
	for _, c := range checks {
		if math.IsNaN(c.val) || math.IsInf(c.val, 0) {
			return fmt.Errorf("%w: %s is not finite", models.ErrInvalidFeatures, c.name)
		}
	}

	if fv.CurrentRainfall < 0 || fv.Rainfall3Day < 0 || fv.Rainfall7Day < 0 {
		return fmt.Errorf("%w: negative rainfall", models.ErrInvalidFeatures)
	}
	if fv.Humidity < 0 || fv.Humidity > 100 {
		return fmt.Errorf("%w: humidity %.1f outside [0,100]", models.ErrInvalidFeatures, fv.Humidity)
	}
	if fv.SoilSaturation < 0 || fv.SoilSaturation > saturationMax {
		return fmt.Errorf("%w: soil saturation %.1f outside [0,100]", models.ErrInvalidFeatures, fv.SoilSaturation)
	}
	return nil
}
