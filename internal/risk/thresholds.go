package risk

import (
	"github.com/shopspring/decimal"

	"github.com/teniee/installment-service/internal/models"
)

// Thresholds holds the rule cutoffs used by the Engine. The zero value is
// not useful; construct with DefaultThresholds and override fields in
// tests when an alternate band layout is needed.
//
// Bands within one dimension must stay mutually exclusive: the red bound
// is the exclusive lower limit of the red band and the inclusive upper
// limit of the orange band, and likewise for orange/yellow.
type Thresholds struct {
	// Payment-to-income ratio bands, in percent of monthly income.
	PaymentRatioRed    decimal.Decimal // ratio > red        -> red
	PaymentRatioOrange decimal.Decimal // orange < ratio <= red -> orange
	PaymentRatioYellow decimal.Decimal // yellow < ratio <= orange -> yellow

	// Debt-to-income ratio bands, in percent of monthly income.
	DTIRed    decimal.Decimal
	DTIOrange decimal.Decimal
	DTIYellow decimal.Decimal

	// Active-installment counts.
	InstallmentsRed    int // count >= red -> red
	InstallmentsOrange int // count == orange -> orange
	InstallmentsYellow int // count == yellow -> yellow

	// Emergency buffer after the first payment, as multiples of the
	// monthly payment. Below zero is red regardless of these.
	BufferOrangeMonths decimal.Decimal // buffer < orange * payment -> orange
	BufferYellowMonths decimal.Decimal // buffer < yellow * payment -> yellow

	// Long-term financing.
	LongTermOrangePayments int             // term > this AND rate > LongTermOrangeRate -> orange
	LongTermOrangeRate     decimal.Decimal // percent
	LongTermYellowPayments int             // term > this (when orange rule did not fire) -> yellow

	// Categories treated as financial-distress signals when financed.
	DistressCategories map[models.Category]bool
}

// DefaultThresholds returns the production rule cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PaymentRatioRed:    decimal.NewFromInt(5),
		PaymentRatioOrange: decimal.NewFromInt(3),
		PaymentRatioYellow: decimal.NewFromFloat(1.5),

		DTIRed:    decimal.NewFromInt(40),
		DTIOrange: decimal.NewFromInt(30),
		DTIYellow: decimal.NewFromInt(20),

		InstallmentsRed:    3,
		InstallmentsOrange: 2,
		InstallmentsYellow: 1,

		BufferOrangeMonths: decimal.NewFromInt(1),
		BufferYellowMonths: decimal.NewFromInt(3),

		LongTermOrangePayments: 24,
		LongTermOrangeRate:     decimal.NewFromInt(15),
		LongTermYellowPayments: 12,

		DistressCategories: map[models.Category]bool{
			models.CategoryGroceries: true,
			models.CategoryUtilities: true,
		},
	}
}
