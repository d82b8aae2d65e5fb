package pipeline

import (
	"time"

	"github.com/floodguard/go-flood-alerts/internal/models"
)

// assemble composes the final response. Pure composition: it cannot fail, and
// every upstream failure is handled before this step.
func assemble(city string, current models.Observation, prediction models.FloodPrediction,
	hazards []models.WeatherAlert, forecast []models.ForecastDay) models.PredictionResponse {
	if hazards == nil {
		hazards = []models.WeatherAlert{}
	}
	if forecast == nil {
		forecast = []models.ForecastDay{}
	}

	return models.PredictionResponse{
		City:            city,
		Timestamp:       time.Now().UTC(),
		CurrentWeather:  current,
		FloodPrediction: prediction,
		WeatherAlerts:   hazards,
		Forecast7Day:    forecast,
		Recommendations: recommendations(prediction.RiskCategory, hazards),
	}
}

// recommendations flattens the flood category's actions followed by the
// actions of every CRITICAL or HIGH alert, de-duplicated by string with the
// first occurrence winning.
func recommendations(category models.RiskCategory, hazards []models.WeatherAlert) []string {
	out := make([]string, 0, len(categoryActions[category]))
	seen := make(map[string]bool)

	add := func(actions []string) {
		for _, a := range actions {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}

	add(categoryActions[category])
	for _, h := range hazards {
		if h.Severity == models.AlertSeverityCritical || h.Severity == models.AlertSeverityHigh {
			add(h.Actions)
		}
	}
	return out
}
