// Package alerts evaluates observations and forecast days against fixed
// hazard thresholds. The engine is independent of the flood classifier and
// never fails: quiet weather simply yields no alerts.
package alerts

import (
	"fmt"

	"github.com/floodguard/go-flood-alerts/internal/models"
)

// Hazard thresholds. Expressed as ordered (threshold, severity) tables so
// tuning a boundary is a data change, not a logic change.
const (
	stormWindThreshold = 15.0 // m/s
	stormRainThreshold = 50.0 // mm
)

type thresholdRule struct {
	threshold float64
	severity  models.AlertSeverity
}

// Evaluated in order; first match wins.
var (
	heatRules = []thresholdRule{ // temperature >=
		{45, models.AlertSeverityCritical},
		{40, models.AlertSeverityHigh},
	}
	coldRules = []thresholdRule{ // temperature <=
		{0, models.AlertSeverityCritical},
		{4, models.AlertSeverityHigh},
	}
	windRules = []thresholdRule{ // wind speed >=
		{25, models.AlertSeverityHigh},
		{15, models.AlertSeverityModerate},
	}
	rainRules = []thresholdRule{ // rainfall >=
		{100, models.AlertSeverityHigh},
		{50, models.AlertSeverityModerate},
	}
)

// period is one evaluation window: the current observation or one forecast
// day. Forecast days check max temperature for heat and min for cold.
type period struct {
	heatTemp  float64
	coldTemp  float64
	windSpeed float64
	rainfall  float64
	startDate string
	endDate   string
	forecast  bool
}

// Evaluate checks the current observation and each forecast day independently
// and returns every alert found: current-observation alerts first, then
// forecast alerts in chronological day order. Consecutive hazard days each
// produce their own alert; collapsing is a display concern.
func Evaluate(current models.Observation, forecast []models.ForecastDay) []models.WeatherAlert {
	out := evaluatePeriod(period{
		heatTemp:  current.Temperature,
		coldTemp:  current.Temperature,
		windSpeed: current.WindSpeed,
		rainfall:  current.Rainfall,
	})

	for _, day := range forecast {
		out = append(out, evaluatePeriod(period{
			heatTemp:  day.MaxTemp,
			coldTemp:  day.MinTemp,
			windSpeed: day.WindSpeed,
			rainfall:  day.Rain,
			startDate: day.Date,
			endDate:   day.Date,
			forecast:  true,
		})...)
	}

	return out
}

func evaluatePeriod(p period) []models.WeatherAlert {
	var out []models.WeatherAlert

	if sev, ok := matchAtLeast(heatRules, p.heatTemp); ok {
		out = append(out, p.build(models.AlertTypeHeatwave, sev,
			fmt.Sprintf("Extreme heat: %.1f°C", p.heatTemp),
			withTemperature(p.heatTemp)))
	}
	if sev, ok := matchAtMost(coldRules, p.coldTemp); ok {
		out = append(out, p.build(models.AlertTypeColdWave, sev,
			fmt.Sprintf("Severe cold: %.1f°C", p.coldTemp),
			withTemperature(p.coldTemp)))
	}

	// A wind-triggering period with heavy rain is one CRITICAL storm, not a
	// wind alert plus a rain alert.
	if p.windSpeed >= stormWindThreshold && p.rainfall >= stormRainThreshold {
		out = append(out, p.build(models.AlertTypeStorm, models.AlertSeverityCritical,
			fmt.Sprintf("Storm conditions: winds %.1f m/s with %.1f mm rain", p.windSpeed, p.rainfall),
			withWindSpeed(p.windSpeed), withRainfall(p.rainfall)))
		return out
	}

	if sev, ok := matchAtLeast(windRules, p.windSpeed); ok {
		out = append(out, p.build(models.AlertTypeHighWind, sev,
			fmt.Sprintf("High winds: %.1f m/s", p.windSpeed),
			withWindSpeed(p.windSpeed)))
	}
	if sev, ok := matchAtLeast(rainRules, p.rainfall); ok {
		out = append(out, p.build(models.AlertTypeHeavyRain, sev,
			fmt.Sprintf("Heavy rainfall: %.1f mm", p.rainfall),
			withRainfall(p.rainfall)))
	}

	return out
}

func matchAtLeast(rules []thresholdRule, v float64) (models.AlertSeverity, bool) {
	for _, r := range rules {
		if v >= r.threshold {
			return r.severity, true
		}
	}
	return "", false
}

func matchAtMost(rules []thresholdRule, v float64) (models.AlertSeverity, bool) {
	for _, r := range rules {
		if v <= r.threshold {
			return r.severity, true
		}
	}
	return "", false
}

type alertOption func(*models.WeatherAlert)

func withTemperature(v float64) alertOption {
	return func(a *models.WeatherAlert) { a.Temperature = &v }
}

func withWindSpeed(v float64) alertOption {
	return func(a *models.WeatherAlert) { a.WindSpeed = &v }
}

func withRainfall(v float64) alertOption {
	return func(a *models.WeatherAlert) { a.Rainfall = &v }
}

func (p period) build(typ models.AlertType, sev models.AlertSeverity, msg string, opts ...alertOption) models.WeatherAlert {
	alertType := typ
	if p.forecast {
		alertType = typ.Forecast()
	}

	a := models.WeatherAlert{
		Type:      alertType,
		Severity:  sev,
		Message:   msg,
		StartDate: p.startDate,
		EndDate:   p.endDate,
		Actions:   actionsFor(typ, sev),
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}
