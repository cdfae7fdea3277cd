package models

import "github.com/shopspring/decimal"

// DayBudget tracks one day's spending against its limit.
type DayBudget struct {
	Total decimal.Decimal `json:"total"`
	Limit decimal.Decimal `json:"limit"`
}

// Transfer records money moved from one day's budget to another during
// redistribution.
type Transfer struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}
