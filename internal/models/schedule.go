package models

import "github.com/shopspring/decimal"

// ScheduleEntry represents one payment in an amortization schedule.
type ScheduleEntry struct {
	Number           int             `json:"number"` // 1-based
	Payment          decimal.Decimal `json:"payment"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}
