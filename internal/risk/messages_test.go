package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/teniee/installment-service/internal/models"
)

func TestVerdict_OnePerLevel(t *testing.T) {
	levels := []models.RiskLevel{
		models.RiskGreen, models.RiskYellow, models.RiskOrange, models.RiskRed,
	}
	seen := map[string]bool{}
	for _, level := range levels {
		v := Verdict(level)
		assert.NotEmpty(t, v)
		assert.False(t, seen[v], "verdict for %s duplicates another level", level)
		seen[v] = true
	}
}

func TestNarrative_RedKeyedByDominantFactor(t *testing.T) {
	purchase := electronicsPurchase(12)

	cases := []struct {
		name     string
		factorID string
		contains string
	}{
		{"credit card debt", factorCreditCardDebt, "credit-card"},
		{"too many installments", factorTooManyInstallments, "installments"},
		{"high payment ratio", factorHighPaymentRatio, "income"},
		{"mortgage planned", factorMortgagePlanned, "mortgage"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			factors := []models.RiskFactor{{ID: tc.factorID, Severity: models.SeverityHigh}}
			msg := Narrative(models.RiskRed, factors, purchase)
			assert.Contains(t, msg, tc.contains)
		})
	}

	t.Run("generic red fallback", func(t *testing.T) {
		factors := []models.RiskFactor{{ID: factorInsufficientBalance, Severity: models.SeverityHigh}}
		msg := Narrative(models.RiskRed, factors, purchase)
		assert.NotEmpty(t, msg)
	})
}

func TestNarrative_DistressSplitsByCategory(t *testing.T) {
	factors := []models.RiskFactor{{ID: factorDistressCategory, Severity: models.SeverityHigh}}

	groceries := electronicsPurchase(6)
	groceries.Category = models.CategoryGroceries
	utilities := electronicsPurchase(6)
	utilities.Category = models.CategoryUtilities

	groceriesMsg := Narrative(models.RiskRed, factors, groceries)
	utilitiesMsg := Narrative(models.RiskRed, factors, utilities)

	assert.Contains(t, groceriesMsg, "groceries")
	assert.Contains(t, utilitiesMsg, "utility")
	assert.NotEqual(t, groceriesMsg, utilitiesMsg)
}

func TestStatistics_CappedAtFour(t *testing.T) {
	// Trigger every statistics condition at once.
	snap := models.FinancialSnapshot{
		MonthlyIncome:      decimal.NewFromInt(2000),
		AgeGroup:           models.AgeGroup18To24,
		HasCreditCardDebt:  true,
		ActiveInstallments: 3,
	}
	purchase := models.PurchaseRequest{
		Amount:      decimal.NewFromInt(500),
		Category:    models.CategoryGroceries,
		NumPayments: 24,
	}

	stats := Statistics(models.RiskRed, snap, purchase)

	assert.Len(t, stats, maxStatistics)
}

func TestWarnings_ConditionalInclusion(t *testing.T) {
	snap := healthySnapshot()
	snap.PlansMortgage = true

	warnings := Warnings(models.RiskGreen, snap, electronicsPurchase(6))

	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "mortgage")
}
