package amortization

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/teniee/installment-service/internal/models"
)

// Schedule computes a fixed-payment amortization schedule.
//
// annualRate is a percentage (e.g. 14.5 for 14.5% APR). The fixed payment
// follows the standard formula M = P * r * (1+r)^n / ((1+r)^n - 1) with
// r = annualRate / 100 / 12. The power term is computed in float64; all
// monetary arithmetic stays in decimal.
//
// The last entry absorbs the rounding remainder so that the remaining
// balance ends at exactly zero and the principal portions sum to the
// original principal.
//
// Input validation is the caller's job; non-positive principal or a term
// below one period yields zero values and a nil schedule.
func Schedule(principal decimal.Decimal, numPayments int, annualRate decimal.Decimal) (decimal.Decimal, decimal.Decimal, []models.ScheduleEntry) {
	if numPayments < 1 || principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero, nil
	}

	monthlyRate := annualRate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))

	var monthlyPayment decimal.Decimal
	if monthlyRate.IsZero() {
		monthlyPayment = principal.Div(decimal.NewFromInt(int64(numPayments))).Round(2)
	} else {
		r := monthlyRate.InexactFloat64()
		factor := math.Pow(1+r, float64(numPayments))
		payment := principal.InexactFloat64() * r * factor / (factor - 1)
		monthlyPayment = decimal.NewFromFloat(payment).Round(2)
	}

	schedule := make([]models.ScheduleEntry, 0, numPayments)
	remaining := principal
	totalInterest := decimal.Zero

	for number := 1; number <= numPayments; number++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principalPart := monthlyPayment.Sub(interest)
		payment := monthlyPayment

		// Last entry: clear the balance exactly, absorbing any rounding drift.
		if number == numPayments {
			principalPart = remaining
			payment = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}
		totalInterest = totalInterest.Add(interest)

		schedule = append(schedule, models.ScheduleEntry{
			Number:           number,
			Payment:          payment,
			Principal:        principalPart,
			Interest:         interest,
			RemainingBalance: remaining,
		})
	}

	return monthlyPayment, totalInterest, schedule
}
