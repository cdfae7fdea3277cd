package budget

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/teniee/installment-service/internal/models"
)

// Redistributor moves surplus between days of a spending calendar so that
// days over their limit are covered by days under theirs. The total spend
// across the calendar is conserved; money only moves, it is never created
// or destroyed.
type Redistributor struct {
	calendar map[string]*models.DayBudget
}

// NewRedistributor wraps a calendar of day key -> budget. The calendar is
// mutated in place by Redistribute.
func NewRedistributor(calendar map[string]*models.DayBudget) *Redistributor {
	return &Redistributor{calendar: calendar}
}

// dayAmount pairs a day key with its overage or shortfall.
type dayAmount struct {
	day    string
	amount decimal.Decimal
}

// Redistribute matches over-limit days against under-limit days, largest
// first, transferring min(remaining overage, remaining shortfall) each
// step. Leftover overage or shortfall stays where it is when the two
// sides do not balance. Returns the updated calendar and the transfer log.
func (r *Redistributor) Redistribute() (map[string]*models.DayBudget, []models.Transfer) {
	var over, under []dayAmount
	for day, b := range r.calendar {
		switch b.Total.Cmp(b.Limit) {
		case 1:
			over = append(over, dayAmount{day: day, amount: b.Total.Sub(b.Limit)})
		case -1:
			under = append(under, dayAmount{day: day, amount: b.Limit.Sub(b.Total)})
		}
	}

	// Largest first; ties broken by day key so runs are deterministic.
	byAmountDesc := func(s []dayAmount) func(i, j int) bool {
		return func(i, j int) bool {
			if c := s[i].amount.Cmp(s[j].amount); c != 0 {
				return c > 0
			}
			return s[i].day < s[j].day
		}
	}
	sort.Slice(over, byAmountDesc(over))
	sort.Slice(under, byAmountDesc(under))

	var transfers []models.Transfer
	for i := range over {
		for j := range under {
			if over[i].amount.IsZero() {
				break
			}
			if under[j].amount.IsZero() {
				continue
			}
			amount := decimal.Min(over[i].amount, under[j].amount)
			r.applyTransfer(over[i].day, under[j].day, amount)
			over[i].amount = over[i].amount.Sub(amount)
			under[j].amount = under[j].amount.Sub(amount)
			transfers = append(transfers, models.Transfer{
				From:   over[i].day,
				To:     under[j].day,
				Amount: amount,
			})
		}
	}

	return r.calendar, transfers
}

// applyTransfer moves amount from one day's total to another's.
func (r *Redistributor) applyTransfer(from, to string, amount decimal.Decimal) {
	r.calendar[from].Total = r.calendar[from].Total.Sub(amount)
	r.calendar[to].Total = r.calendar[to].Total.Add(amount)
}

// Redistribute is the convenience form for callers that do not need the
// transfer log.
func Redistribute(calendar map[string]*models.DayBudget) map[string]*models.DayBudget {
	updated, _ := NewRedistributor(calendar).Redistribute()
	return updated
}
