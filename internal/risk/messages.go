package risk

import (
	"fmt"

	"github.com/teniee/installment-service/internal/models"
)

// Risk factor identifiers, in rule-evaluation order.
const (
	factorHighPaymentRatio    = "high_payment_ratio"
	factorInsufficientBalance = "insufficient_balance"
	factorCriticalDebtLoad    = "critical_debt_load"
	factorCreditCardDebt      = "credit_card_debt"
	factorDistressCategory    = "distress_category"
	factorTooManyInstallments = "too_many_installments"
	factorMortgagePlanned     = "mortgage_planned"

	factorElevatedPaymentRatio = "elevated_payment_ratio"
	factorHighDebtLoad         = "high_debt_load"
	factorSecondInstallment    = "second_installment"
	factorLowEmergencyBuffer   = "low_emergency_buffer"
	factorYoungBorrowerLoad    = "young_borrower_load"
	factorLongExpensiveTerm    = "long_expensive_term"

	factorNoticeablePaymentRatio = "noticeable_payment_ratio"
	factorModerateDebtLoad       = "moderate_debt_load"
	factorExistingInstallment    = "existing_installment"
	factorModestEmergencyBuffer  = "modest_emergency_buffer"
	factorLongTerm               = "long_term"
)

// Verdict returns the short verdict line for a risk level.
func Verdict(level models.RiskLevel) string {
	switch level {
	case models.RiskRed:
		return "High risk: this installment is likely to break your budget."
	case models.RiskOrange:
		return "Elevated risk: this installment will noticeably strain your budget."
	case models.RiskYellow:
		return "Moderate risk: affordable, but keep an eye on your spending."
	default:
		return "Low risk: this installment fits comfortably in your budget."
	}
}

// Narrative selects the personalized explanation. For RED the dominant
// triggered factor drives the story; the other levels get a single
// narrative each.
func Narrative(level models.RiskLevel, factors []models.RiskFactor, purchase models.PurchaseRequest) string {
	if level == models.RiskRed {
		for _, f := range factors {
			switch f.ID {
			case factorCreditCardDebt:
				return "You are still paying off credit-card debt. Every new installment stacks interest on top of interest, so clearing the card first will save you far more than this purchase costs in convenience."
			case factorDistressCategory:
				if purchase.Category == models.CategoryGroceries {
					return "Financing groceries means next month's food competes with this month's bill. This pattern usually signals the monthly budget no longer covers essentials, and that needs fixing before any new debt."
				}
				return "Financing utility bills means borrowing to keep the lights on. Before adding debt, look for what pushed essentials out of the monthly budget."
			case factorTooManyInstallments:
				return "Several installments are already claiming slices of your income each month. Adding another shrinks the part of your paycheck you can actually decide about."
			case factorHighPaymentRatio:
				return "This payment would claim a share of your income that leaves no room for surprises. One irregular expense and the whole month tips into the red."
			case factorMortgagePlanned:
				return "Lenders will review every open obligation when you apply for the mortgage. A fresh installment now can mean a worse rate, or a rejection, on a loan that matters far more than this purchase."
			}
		}
		return "Several warning signs add up here. Taking this installment now is likely to cost you much more than waiting and buying later."
	}

	switch level {
	case models.RiskOrange:
		return "You can make these payments, but they will squeeze your budget every month. Consider the alternatives below before committing."
	case models.RiskYellow:
		return "This purchase is within your means. A shorter term or a small down payment would make it cheaper and safer still."
	default:
		return "Your finances comfortably absorb this purchase. If you have the cash on hand, paying outright avoids the interest entirely."
	}
}

// Warnings returns the warning lines for the given assessment context.
func Warnings(level models.RiskLevel, snap models.FinancialSnapshot, purchase models.PurchaseRequest) []string {
	var w []string
	if level == models.RiskRed || level == models.RiskOrange {
		w = append(w, "Missed installment payments are reported and lower your credit score.")
	}
	if snap.HasCreditCardDebt {
		w = append(w, "Credit-card interest almost certainly exceeds what this installment charges; pay the card down first.")
	}
	if snap.PlansMortgage {
		w = append(w, "New debt within 6 months of a mortgage application reduces the amount banks will lend you.")
	}
	if snap.ActiveInstallments >= 2 {
		w = append(w, fmt.Sprintf("You are juggling %d installments already; one missed due date triggers fees on each.", snap.ActiveInstallments))
	}
	if purchase.NumPayments > 24 {
		w = append(w, "Terms beyond two years usually outlive the thing being financed.")
	}
	return w
}

// Tips returns practical suggestions appropriate to the risk level.
func Tips(level models.RiskLevel, purchase models.PurchaseRequest) []string {
	var tips []string
	switch level {
	case models.RiskRed:
		tips = append(tips,
			"Set up an automatic transfer on payday so saving happens before spending.",
			"Revisit this purchase once existing obligations are below a third of your income.")
	case models.RiskOrange:
		tips = append(tips,
			"A down payment of even 20% meaningfully lowers the monthly burden.",
			"Schedule the payment date right after payday to avoid overdrafts.")
	case models.RiskYellow:
		tips = append(tips, "Paying one extra installment per year shortens the term and trims interest.")
	default:
		tips = append(tips, "Keep your emergency fund untouched; cash flow easily covers this purchase.")
	}
	if purchase.Category == models.CategoryElectronics {
		tips = append(tips, "Electronics depreciate fast; avoid terms longer than the device's useful life.")
	}
	return tips
}

// maxStatistics caps the statistics list.
const maxStatistics = 4

// Statistics returns up to maxStatistics context lines chosen by risk
// level, demographics, and purchase shape.
func Statistics(level models.RiskLevel, snap models.FinancialSnapshot, purchase models.PurchaseRequest) []string {
	var stats []string
	if level == models.RiskRed {
		stats = append(stats, "Borrowers with payments above 5% of income are 3x more likely to miss one within a year.")
	}
	if snap.AgeGroup == models.AgeGroup18To24 {
		stats = append(stats, "Borrowers under 25 carry the highest installment default rate of any age group.")
	}
	if snap.ActiveInstallments >= 2 {
		stats = append(stats, "Holding three or more concurrent installments doubles the odds of a late payment.")
	}
	if purchase.Category == models.CategoryGroceries || purchase.Category == models.CategoryUtilities {
		stats = append(stats, "Financing essentials is the single strongest predictor of future payment distress.")
	}
	if purchase.NumPayments > 12 {
		stats = append(stats, "Most installment defaults happen in the second year of the term.")
	}
	if snap.HasCreditCardDebt {
		stats = append(stats, "Average revolving credit-card APR is roughly double a typical installment rate.")
	}
	if len(stats) > maxStatistics {
		stats = stats[:maxStatistics]
	}
	return stats
}
