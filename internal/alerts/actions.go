package alerts

import "github.com/floodguard/go-flood-alerts/internal/models"

// Recommended actions per alert type and severity. Fixed tables, not computed
// per request; forecast variants share the base type's actions.
var actionTable = map[models.AlertType]map[models.AlertSeverity][]string{
	models.AlertTypeHeatwave: {
		models.AlertSeverityCritical: {
			"Avoid outdoor activities",
			"Stay hydrated",
			"Never leave children or pets in vehicles",
			"Use fans or air conditioning",
			"Check on elderly and vulnerable neighbors",
		},
		models.AlertSeverityHigh: {
			"Limit outdoor activities",
			"Stay hydrated",
			"Wear light clothing",
			"Take frequent breaks in shade",
		},
	},
	models.AlertTypeColdWave: {
		models.AlertSeverityCritical: {
			"Stay indoors if possible",
			"Wear warm clothing",
			"Protect pipes from freezing",
			"Check on elderly neighbors",
		},
		models.AlertSeverityHigh: {
			"Dress in layers",
			"Limit time outdoors",
			"Keep warm indoors",
		},
	},
	models.AlertTypeStorm: {
		models.AlertSeverityCritical: {
			"Take shelter immediately",
			"Secure outdoor objects",
			"Avoid windows",
			"Stay away from trees and power lines",
		},
	},
	models.AlertTypeHighWind: {
		models.AlertSeverityHigh: {
			"Stay indoors",
			"Secure outdoor items",
			"Avoid travel",
		},
		models.AlertSeverityModerate: {
			"Secure loose outdoor items",
			"Take care when driving",
		},
	},
	models.AlertTypeHeavyRain: {
		models.AlertSeverityHigh: {
			"Prepare for possible flooding",
			"Clear drainage areas",
			"Avoid low-lying roads",
			"Monitor weather updates",
		},
		models.AlertSeverityModerate: {
			"Clear drainage areas",
			"Monitor weather updates",
		},
	},
}

func actionsFor(typ models.AlertType, sev models.AlertSeverity) []string {
	return actionTable[typ][sev]
}
