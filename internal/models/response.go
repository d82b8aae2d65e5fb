package models

import "time"

// PredictionResponse is the sole externally visible artifact of the pipeline,
// recomputed fresh on every request.
type PredictionResponse struct {
	City            string          `json:"city"`
	Timestamp       time.Time       `json:"timestamp"`
	CurrentWeather  Observation     `json:"current_weather"`
	FloodPrediction FloodPrediction `json:"flood_prediction"`
	WeatherAlerts   []WeatherAlert  `json:"weather_alerts"`
	Forecast7Day    []ForecastDay   `json:"forecast_7day"`
	Recommendations []string        `json:"recommendations"`
}
