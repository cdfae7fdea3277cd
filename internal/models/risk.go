package models

import "github.com/shopspring/decimal"

// RiskLevel is the overall verdict tier for an installment purchase.
type RiskLevel string

const (
	RiskGreen  RiskLevel = "GREEN"
	RiskYellow RiskLevel = "YELLOW"
	RiskOrange RiskLevel = "ORANGE"
	RiskRed    RiskLevel = "RED"
)

// Rank orders risk levels by severity: GREEN < YELLOW < ORANGE < RED.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskGreen:
		return 0
	case RiskYellow:
		return 1
	case RiskOrange:
		return 2
	case RiskRed:
		return 3
	}
	return -1
}

// Severity marks how serious an individual risk factor is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// RiskFactor is one fired rule with its human-readable explanation.
type RiskFactor struct {
	ID        string   `json:"id"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Statistic string   `json:"statistic,omitempty"`
}

// AlternativeRecommendation suggests a safer way to make the purchase.
type AlternativeRecommendation struct {
	Action         string          `json:"action"`
	Description    string          `json:"description"`
	SavingsAmount  decimal.Decimal `json:"savings_amount"`
	MonthlyAmount  decimal.Decimal `json:"monthly_amount"`
	NewNumPayments int             `json:"new_num_payments,omitempty"`
	TimeNeededDays int             `json:"time_needed_days"`
}

// Ratios holds the derived financial ratios reported with an assessment.
type Ratios struct {
	DebtToIncomePercent    decimal.Decimal `json:"debt_to_income_percent"`
	PaymentToIncomePercent decimal.Decimal `json:"payment_to_income_percent"`
	RemainingMonthlyFunds  decimal.Decimal `json:"remaining_monthly_funds"`
	BalanceAfterPayment    decimal.Decimal `json:"balance_after_payment"`
}

// HiddenCosts lists the flat penalty fees a borrower is exposed to once
// an installment is active.
type HiddenCosts struct {
	LateFee      decimal.Decimal `json:"late_fee"`
	OverdraftFee decimal.Decimal `json:"overdraft_fee"`
	Message      string          `json:"message,omitempty"` // ORANGE/RED only
}

// Assessment is the full result of evaluating an installment purchase.
type Assessment struct {
	ID             string                     `json:"id"`
	RiskLevel      RiskLevel                  `json:"risk_level"`
	RiskScore      int                        `json:"risk_score"` // 0-100
	Verdict        string                     `json:"verdict"`
	Factors        []RiskFactor               `json:"factors"`
	Message        string                     `json:"message"`
	Recommendation *AlternativeRecommendation `json:"recommendation,omitempty"`
	Warnings       []string                   `json:"warnings"`
	Tips           []string                   `json:"tips"`
	Statistics     []string                   `json:"statistics"`
	Ratios         Ratios                     `json:"ratios"`
	HiddenCosts    HiddenCosts                `json:"hidden_costs"`
	MonthlyPayment decimal.Decimal            `json:"monthly_payment"`
	TotalInterest  decimal.Decimal            `json:"total_interest"`
	Schedule       []ScheduleEntry            `json:"schedule"`
}
