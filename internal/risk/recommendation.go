package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/teniee/installment-service/internal/models"
)

// savingsShare is the slice of monthly income assumed available for a
// purchase-savings plan.
var savingsShare = decimal.NewFromFloat(0.10)

var two = decimal.NewFromInt(2)

// Recommend proposes a safer alternative for the purchase, or nil when no
// alternative applies (YELLOW purchases with short terms).
//
// Durations use a flat 30-day month, not calendar months.
func Recommend(level models.RiskLevel, purchase models.PurchaseRequest, snap models.FinancialSnapshot, monthlyPayment decimal.Decimal) *models.AlternativeRecommendation {
	switch level {
	case models.RiskRed:
		months := monthsToSave(purchase.Amount, snap.MonthlyIncome)
		return &models.AlternativeRecommendation{
			Action: "save_first",
			Description: fmt.Sprintf(
				"Skip the installment. Put 10%% of your income aside each month and buy outright in about %d months.", months),
			SavingsAmount:  purchase.Amount,
			MonthlyAmount:  snap.MonthlyIncome.Mul(savingsShare).Round(2),
			TimeNeededDays: months * 30,
		}

	case models.RiskOrange:
		half := purchase.Amount.Div(two).Round(2)
		months := monthsToSave(half, snap.MonthlyIncome)
		return &models.AlternativeRecommendation{
			Action: "save_half_finance_half",
			Description: fmt.Sprintf(
				"Save half (%s) first, then finance the rest. Your monthly payment drops by half.", half),
			SavingsAmount:  half,
			MonthlyAmount:  monthlyPayment.Div(two).Round(2),
			TimeNeededDays: months * 30,
		}

	case models.RiskYellow:
		if purchase.NumPayments <= 6 {
			return nil
		}
		newTerm := purchase.NumPayments / 2
		if newTerm < 4 {
			newTerm = 4
		}
		return &models.AlternativeRecommendation{
			Action: "shorten_term",
			Description: fmt.Sprintf(
				"Cut the term to %d payments. The monthly amount rises, but you pay far less interest overall.", newTerm),
			SavingsAmount:  decimal.Zero,
			MonthlyAmount:  purchase.Amount.Div(decimal.NewFromInt(int64(newTerm))).Round(2),
			NewNumPayments: newTerm,
			TimeNeededDays: 0,
		}

	default:
		return &models.AlternativeRecommendation{
			Action:         "pay_cash",
			Description:    "Your cash flow covers this purchase outright; paying cash avoids all interest.",
			SavingsAmount:  purchase.Amount,
			MonthlyAmount:  decimal.Zero,
			TimeNeededDays: 0,
		}
	}
}

// monthsToSave returns how many whole months of saving 10% of income it
// takes to reach target. Zero income yields zero months; callers only see
// that combination on RED verdicts where the narrative already flags it.
func monthsToSave(target, monthlyIncome decimal.Decimal) int {
	perMonth := monthlyIncome.Mul(savingsShare)
	if perMonth.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return int(target.Div(perMonth).Ceil().IntPart())
}
