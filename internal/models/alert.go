package models

type AlertSeverity string

const (
	AlertSeverityModerate AlertSeverity = "MODERATE"
	AlertSeverityHigh     AlertSeverity = "HIGH"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

type AlertType string

const (
	AlertTypeHeatwave  AlertType = "HEATWAVE"
	AlertTypeColdWave  AlertType = "COLD_WAVE"
	AlertTypeStorm     AlertType = "STORM"
	AlertTypeHighWind  AlertType = "HIGH_WIND"
	AlertTypeHeavyRain AlertType = "HEAVY_RAIN"
)

const forecastSuffix = "_FORECAST"

// Forecast returns the forecast-tagged variant of t.
func (t AlertType) Forecast() AlertType {
	return t + forecastSuffix
}

// WeatherAlert is one independently triggered hazard warning. Alerts are
// independent of the flood prediction and of each other; an evaluation may
// emit any number of them.
type WeatherAlert struct {
	Type        AlertType     `json:"alert_type"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	Temperature *float64      `json:"temperature,omitempty"`
	WindSpeed   *float64      `json:"wind_speed,omitempty"`
	Rainfall    *float64      `json:"rainfall,omitempty"`
	StartDate   string        `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate     string        `json:"end_date,omitempty"`
	Actions     []string      `json:"actions"`
}
