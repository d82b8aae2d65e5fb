package pipeline

import (
	"math"

	"github.com/floodguard/go-flood-alerts/internal/models"
)

// Fixed recommended actions per risk category. Four static lists, not
// computed per request.
var categoryActions = map[models.RiskCategory][]string{
	models.RiskCategoryLow: {
		"Continue monitoring weather conditions",
		"Review your emergency plan regularly",
	},
	models.RiskCategoryModerate: {
		"Prepare emergency kit and supplies",
		"Monitor local weather updates",
		"Clear drainage areas around your property",
	},
	models.RiskCategoryHigh: {
		"Prepare for possible evacuation",
		"Move vehicles to higher ground",
		"Prepare emergency kit with documents",
		"Charge all communication devices",
	},
	models.RiskCategorySevere: {
		"Follow evacuation orders immediately",
		"Move to higher ground now",
		"Keep emergency phone charged and monitor alerts",
		"Avoid walking or driving through flood waters",
	},
}

// Categorize maps a classifier probability to the reported risk score, the
// ordinal category, and the category's fixed action list. The category is
// decided on the unrounded probability*100 with closed lower boundaries
// (exactly 30 is Low, 30.001 is Moderate); the risk score is rounded
// separately for display.
func Categorize(probability float64) (int, models.RiskCategory, []string) {
	raw := probability * 100
	score := int(math.Round(raw))

	var category models.RiskCategory
	switch {
	case raw <= 30:
		category = models.RiskCategoryLow
	case raw <= 60:
		category = models.RiskCategoryModerate
	case raw <= 85:
		category = models.RiskCategoryHigh
	default:
		category = models.RiskCategorySevere
	}

	return score, category, categoryActions[category]
}
