package models

import "time"

// Observation is one normalized current-conditions reading for a city.
// Units are SI-ish: °C, %, mm (last interval), m/s, hPa.
// Immutable once fetched.
type Observation struct {
	City        string    `json:"city"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Rainfall    float64   `json:"rainfall"`
	WindSpeed   float64   `json:"wind_speed"`
	Pressure    float64   `json:"pressure"`
}

// ForecastDay is one day of aggregated forecast, built from the upstream
// 3-hourly points: max/min/avg temperature, total rain, max wind, avg humidity.
type ForecastDay struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	MaxTemp   float64 `json:"max_temp"`
	MinTemp   float64 `json:"min_temp"`
	AvgTemp   float64 `json:"avg_temp"`
	Rain      float64 `json:"rain"`
	WindSpeed float64 `json:"wind_speed"`
	Humidity  float64 `json:"humidity"`
}
