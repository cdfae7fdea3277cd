package models

import "github.com/shopspring/decimal"

// AgeGroup is a coarse demographic bucket used by the risk rules.
type AgeGroup string

const (
	AgeGroup18To24 AgeGroup = "18-24"
	AgeGroup25To34 AgeGroup = "25-34"
	AgeGroup35To44 AgeGroup = "35-44"
	AgeGroup45Plus AgeGroup = "45+"
)

// Valid reports whether a is one of the known age groups.
func (a AgeGroup) Valid() bool {
	switch a {
	case AgeGroup18To24, AgeGroup25To34, AgeGroup35To44, AgeGroup45Plus:
		return true
	}
	return false
}

// FinancialSnapshot captures the borrower's financial situation at the
// moment an installment purchase is evaluated.
type FinancialSnapshot struct {
	MonthlyIncome       decimal.Decimal `json:"monthly_income"`
	CurrentBalance      decimal.Decimal `json:"current_balance"`
	AgeGroup            AgeGroup        `json:"age_group"`
	HasCreditCardDebt   bool            `json:"has_credit_card_debt"`
	ActiveInstallments  int             `json:"active_installments"`
	InstallmentsPayment decimal.Decimal `json:"installments_payment"` // combined monthly payment of active installments
	OtherObligations    decimal.Decimal `json:"other_obligations"`    // rent, subscriptions, alimony, ...
	PlansMortgage       bool            `json:"plans_mortgage"`       // mortgage application within 6 months
}
