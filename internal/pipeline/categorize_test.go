package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/floodguard/go-flood-alerts/internal/models"
)

func TestCategorize_Boundaries(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		score       int
		category    models.RiskCategory
	}{
		{"zero", 0.0, 0, models.RiskCategoryLow},
		{"exactly thirty", 0.30, 30, models.RiskCategoryLow},
		{"just above thirty", 0.3000001, 30, models.RiskCategoryModerate},
		{"exactly sixty", 0.60, 60, models.RiskCategoryModerate},
		{"just above sixty", 0.6001, 60, models.RiskCategoryHigh},
		{"exactly eighty-five", 0.85, 85, models.RiskCategoryHigh},
		{"just above eighty-five", 0.8501, 85, models.RiskCategorySevere},
		{"certain", 1.0, 100, models.RiskCategorySevere},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, category, actions := Categorize(tt.probability)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, categoryActions[tt.category], actions)
		})
	}
}

func TestCategorize_ActionsAreStatic(t *testing.T) {
	_, _, first := Categorize(0.95)
	_, _, second := Categorize(0.99)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
