package models

type PressureTrend string

const (
	PressureTrendRising  PressureTrend = "rising"
	PressureTrendFalling PressureTrend = "falling"
	PressureTrendStable  PressureTrend = "stable"
)

// FeatureVector is the fixed-schema input the classifier scores. Field order
// matters: the model artifact declares the exact feature names it was trained
// on and is rejected at load time if they disagree (see classifier.Load).
type FeatureVector struct {
	CurrentRainfall float64       `json:"current_rainfall"`
	Rainfall3Day    float64       `json:"rainfall_3day"`
	Rainfall7Day    float64       `json:"rainfall_7day"`
	PressureTrend   PressureTrend `json:"pressure_trend"`
	SoilSaturation  float64       `json:"soil_saturation"` // 0-100 decayed rainfall accumulation
	Temperature     float64       `json:"temperature"`
	Humidity        float64       `json:"humidity"`
}

type RiskCategory string

const (
	RiskCategoryLow      RiskCategory = "Low"
	RiskCategoryModerate RiskCategory = "Moderate"
	RiskCategoryHigh     RiskCategory = "High"
	RiskCategorySevere   RiskCategory = "Severe"
)

// FloodPrediction is the calibrated classifier output plus its derived
// category. Fallback is set when the rule-based heuristic scored the request
// because the model artifact was unavailable.
type FloodPrediction struct {
	Prediction   int           `json:"prediction"` // 0 or 1
	RiskScore    int           `json:"risk_score"` // 0-100
	RiskCategory RiskCategory  `json:"risk_category"`
	Confidence   float64       `json:"confidence"` // 0-1
	Fallback     bool          `json:"fallback"`
	Factors      FeatureVector `json:"factors"`
}
