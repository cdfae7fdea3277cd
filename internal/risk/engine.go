package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/teniee/installment-service/internal/amortization"
	"github.com/teniee/installment-service/internal/models"
)

// Flat penalty fees used for the hidden-cost disclosure.
var (
	lateFee      = decimal.NewFromInt(35)
	overdraftFee = decimal.NewFromInt(35)
)

// Engine evaluates installment purchases against a fixed rule set. It is
// stateless apart from its immutable thresholds and safe for concurrent use.
type Engine struct {
	t Thresholds
}

// NewEngine creates an engine with the given rule cutoffs.
func NewEngine(t Thresholds) *Engine {
	return &Engine{t: t}
}

// derived holds the quantities the rules are evaluated against.
type derived struct {
	paymentRatio        decimal.Decimal // percent of income
	dtiRatio            decimal.Decimal // percent of income
	totalMonthlyDebt    decimal.Decimal
	balanceAfterPayment decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// derive computes the financial ratios. Zero or missing income fails
// toward maximum risk: both ratios are pinned to 100%.
func derive(monthlyPayment decimal.Decimal, snap models.FinancialSnapshot) derived {
	d := derived{
		totalMonthlyDebt:    monthlyPayment.Add(snap.InstallmentsPayment).Add(snap.OtherObligations),
		balanceAfterPayment: snap.CurrentBalance.Sub(monthlyPayment),
	}
	if snap.MonthlyIncome.LessThanOrEqual(decimal.Zero) {
		d.paymentRatio = hundred
		d.dtiRatio = hundred
		return d
	}
	d.paymentRatio = monthlyPayment.Div(snap.MonthlyIncome).Mul(hundred)
	d.dtiRatio = d.totalMonthlyDebt.Div(snap.MonthlyIncome).Mul(hundred)
	return d
}

// Assess runs the rule tiers over the payment and snapshot and classifies
// the result. Classification is a priority cascade, not a weighted sum:
// any red flag wins outright, then two or more orange flags, then two or
// more yellow flags, otherwise green.
func (e *Engine) Assess(monthlyPayment decimal.Decimal, snap models.FinancialSnapshot, purchase models.PurchaseRequest) (models.RiskLevel, int, []models.RiskFactor) {
	d := derive(monthlyPayment, snap)

	var factors []models.RiskFactor
	var red, orange, yellow int

	addRed := func(f models.RiskFactor) {
		f.Severity = models.SeverityHigh
		factors = append(factors, f)
		red++
	}
	addOrange := func(f models.RiskFactor) {
		f.Severity = models.SeverityMedium
		factors = append(factors, f)
		orange++
	}
	addYellow := func(f models.RiskFactor) {
		f.Severity = models.SeverityLow
		factors = append(factors, f)
		yellow++
	}

	t := e.t

	// Red tier.
	if d.paymentRatio.GreaterThan(t.PaymentRatioRed) {
		addRed(models.RiskFactor{
			ID:        factorHighPaymentRatio,
			Message:   "The monthly payment takes a dangerously large share of your income.",
			Statistic: fmt.Sprintf("Payment is %s%% of monthly income (safe limit: %s%%)", d.paymentRatio.Round(1), t.PaymentRatioRed),
		})
	}
	if d.balanceAfterPayment.LessThan(decimal.Zero) {
		addRed(models.RiskFactor{
			ID:        factorInsufficientBalance,
			Message:   "Your current balance does not cover even the first payment.",
			Statistic: fmt.Sprintf("Balance after first payment: %s", d.balanceAfterPayment.Round(2)),
		})
	}
	if d.dtiRatio.GreaterThan(t.DTIRed) {
		addRed(models.RiskFactor{
			ID:        factorCriticalDebtLoad,
			Message:   "Total monthly debt would exceed a critical share of your income.",
			Statistic: fmt.Sprintf("Debt-to-income would reach %s%%", d.dtiRatio.Round(1)),
		})
	}
	if snap.HasCreditCardDebt {
		addRed(models.RiskFactor{
			ID:      factorCreditCardDebt,
			Message: "Taking on installments while carrying credit-card debt compounds interest costs.",
		})
	}
	if t.DistressCategories[purchase.Category] {
		addRed(models.RiskFactor{
			ID:      factorDistressCategory,
			Message: "Financing everyday essentials is a strong sign the budget is already strained.",
		})
	}
	if snap.ActiveInstallments >= t.InstallmentsRed {
		addRed(models.RiskFactor{
			ID:        factorTooManyInstallments,
			Message:   "You already carry several active installments.",
			Statistic: fmt.Sprintf("%d active installments before this purchase", snap.ActiveInstallments),
		})
	}
	if snap.PlansMortgage {
		addRed(models.RiskFactor{
			ID:      factorMortgagePlanned,
			Message: "New installment debt shortly before a mortgage application hurts approval odds and terms.",
		})
	}

	// Orange tier.
	if d.paymentRatio.GreaterThan(t.PaymentRatioOrange) && d.paymentRatio.LessThanOrEqual(t.PaymentRatioRed) {
		addOrange(models.RiskFactor{
			ID:        factorElevatedPaymentRatio,
			Message:   "The monthly payment is a noticeable burden on your income.",
			Statistic: fmt.Sprintf("Payment is %s%% of monthly income", d.paymentRatio.Round(1)),
		})
	}
	if d.dtiRatio.GreaterThan(t.DTIOrange) && d.dtiRatio.LessThanOrEqual(t.DTIRed) {
		addOrange(models.RiskFactor{
			ID:        factorHighDebtLoad,
			Message:   "Total monthly obligations would take a high share of your income.",
			Statistic: fmt.Sprintf("Debt-to-income would reach %s%%", d.dtiRatio.Round(1)),
		})
	}
	if snap.ActiveInstallments == t.InstallmentsOrange {
		addOrange(models.RiskFactor{
			ID:      factorSecondInstallment,
			Message: "This would be your third concurrent installment.",
		})
	}
	orangeBuffer := monthlyPayment.Mul(t.BufferOrangeMonths)
	yellowBuffer := monthlyPayment.Mul(t.BufferYellowMonths)
	if !d.balanceAfterPayment.LessThan(decimal.Zero) && d.balanceAfterPayment.LessThan(orangeBuffer) {
		addOrange(models.RiskFactor{
			ID:        factorLowEmergencyBuffer,
			Message:   "After the first payment your balance would not cover the next one.",
			Statistic: fmt.Sprintf("Balance after first payment: %s", d.balanceAfterPayment.Round(2)),
		})
	}
	if snap.AgeGroup == models.AgeGroup18To24 && snap.ActiveInstallments >= 1 {
		addOrange(models.RiskFactor{
			ID:      factorYoungBorrowerLoad,
			Message: "Stacking installments early builds debt habits that are hard to unwind.",
		})
	}
	longTermOrange := purchase.NumPayments > t.LongTermOrangePayments && purchase.AnnualRate.GreaterThan(t.LongTermOrangeRate)
	if longTermOrange {
		addOrange(models.RiskFactor{
			ID:        factorLongExpensiveTerm,
			Message:   "A long term at a high rate multiplies the interest you pay.",
			Statistic: fmt.Sprintf("%d payments at %s%% APR", purchase.NumPayments, purchase.AnnualRate),
		})
	}

	// Yellow tier.
	if d.paymentRatio.GreaterThan(t.PaymentRatioYellow) && d.paymentRatio.LessThanOrEqual(t.PaymentRatioOrange) {
		addYellow(models.RiskFactor{
			ID:        factorNoticeablePaymentRatio,
			Message:   "The monthly payment is small but not negligible relative to your income.",
			Statistic: fmt.Sprintf("Payment is %s%% of monthly income", d.paymentRatio.Round(1)),
		})
	}
	if d.dtiRatio.GreaterThan(t.DTIYellow) && d.dtiRatio.LessThanOrEqual(t.DTIOrange) {
		addYellow(models.RiskFactor{
			ID:        factorModerateDebtLoad,
			Message:   "Total monthly obligations are moderate but worth watching.",
			Statistic: fmt.Sprintf("Debt-to-income would reach %s%%", d.dtiRatio.Round(1)),
		})
	}
	if snap.ActiveInstallments == t.InstallmentsYellow {
		addYellow(models.RiskFactor{
			ID:      factorExistingInstallment,
			Message: "You already have one active installment.",
		})
	}
	if !d.balanceAfterPayment.LessThan(orangeBuffer) && d.balanceAfterPayment.LessThan(yellowBuffer) {
		addYellow(models.RiskFactor{
			ID:      factorModestEmergencyBuffer,
			Message: "Your remaining balance covers fewer than three payments.",
		})
	}
	if !longTermOrange && purchase.NumPayments > t.LongTermYellowPayments {
		addYellow(models.RiskFactor{
			ID:        factorLongTerm,
			Message:   "A term beyond a year keeps this purchase on your budget for a long time.",
			Statistic: fmt.Sprintf("%d monthly payments", purchase.NumPayments),
		})
	}

	// Priority cascade, first match wins.
	switch {
	case red > 0:
		score := 90 + red*5
		if score > 100 {
			score = 100
		}
		return models.RiskRed, score, factors
	case orange >= 2:
		return models.RiskOrange, 60 + orange*5, factors
	case yellow >= 2:
		return models.RiskYellow, 30 + yellow*5, factors
	default:
		score := 10 - yellow*3
		if score < 0 {
			score = 0
		}
		return models.RiskGreen, score, factors
	}
}

// Evaluate runs the full pipeline for one purchase: amortization schedule,
// rule assessment, and all human-facing output.
func (e *Engine) Evaluate(purchase models.PurchaseRequest, snap models.FinancialSnapshot) models.Assessment {
	monthly, totalInterest, schedule := amortization.Schedule(purchase.Amount, purchase.NumPayments, purchase.AnnualRate)

	level, score, factors := e.Assess(monthly, snap, purchase)
	d := derive(monthly, snap)

	a := models.Assessment{
		RiskLevel:      level,
		RiskScore:      score,
		Verdict:        Verdict(level),
		Factors:        factors,
		Message:        Narrative(level, factors, purchase),
		Recommendation: Recommend(level, purchase, snap, monthly),
		Warnings:       Warnings(level, snap, purchase),
		Tips:           Tips(level, purchase),
		Statistics:     Statistics(level, snap, purchase),
		Ratios: models.Ratios{
			DebtToIncomePercent:    d.dtiRatio.Round(1),
			PaymentToIncomePercent: d.paymentRatio.Round(1),
			RemainingMonthlyFunds:  snap.MonthlyIncome.Sub(d.totalMonthlyDebt).Round(2),
			BalanceAfterPayment:    d.balanceAfterPayment.Round(2),
		},
		HiddenCosts:    hiddenCosts(level, purchase.Amount),
		MonthlyPayment: monthly,
		TotalInterest:  totalInterest,
		Schedule:       schedule,
	}
	return a
}

// hiddenCosts reports the flat penalty fees. For ORANGE and RED the
// combined fee is also expressed as an effective rate increase on the
// purchase amount.
func hiddenCosts(level models.RiskLevel, amount decimal.Decimal) models.HiddenCosts {
	hc := models.HiddenCosts{
		LateFee:      lateFee,
		OverdraftFee: overdraftFee,
	}
	if level != models.RiskOrange && level != models.RiskRed {
		return hc
	}
	if amount.GreaterThan(decimal.Zero) {
		combined := lateFee.Add(overdraftFee)
		pct := combined.Div(amount).Mul(hundred).Round(1)
		hc.Message = fmt.Sprintf(
			"One missed payment plus an overdraft costs $%s in fees, an effective %s%% rate increase on this purchase.",
			combined, pct)
	}
	return hc
}
