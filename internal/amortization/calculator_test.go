package amortization

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_ZeroRateSimpleDivision(t *testing.T) {
	// $1200 over 12 payments at 0%: twelve flat $100 payments.
	monthly, totalInterest, schedule := Schedule(
		decimal.NewFromInt(1200), 12, decimal.Zero)

	require.Len(t, schedule, 12)
	assert.True(t, monthly.Equal(decimal.NewFromInt(100)),
		"monthly payment should be $100, got %s", monthly)
	assert.True(t, totalInterest.Equal(decimal.Zero),
		"total interest should be zero, got %s", totalInterest)

	for i, e := range schedule {
		assert.Equal(t, i+1, e.Number)
		assert.True(t, e.Interest.Equal(decimal.Zero), "entry %d interest", e.Number)
		assert.True(t, e.Principal.Equal(decimal.NewFromInt(100)),
			"entry %d principal should be $100, got %s", e.Number, e.Principal)
	}
	assert.True(t, schedule[11].RemainingBalance.Equal(decimal.Zero),
		"final balance should be zero, got %s", schedule[11].RemainingBalance)
}

func TestSchedule_PrincipalConservation(t *testing.T) {
	cases := []struct {
		name        string
		principal   decimal.Decimal
		numPayments int
		annualRate  decimal.Decimal
	}{
		{"12mo at 8%", decimal.NewFromInt(10_000), 12, decimal.NewFromInt(8)},
		{"24mo at 14.5%", decimal.NewFromFloat(2_499.99), 24, decimal.NewFromFloat(14.5)},
		{"48mo at 29.9%", decimal.NewFromInt(50_000), 48, decimal.NewFromFloat(29.9)},
		{"3mo at 0%, uneven split", decimal.NewFromInt(100), 3, decimal.Zero},
		{"2mo at 50%", decimal.NewFromFloat(333.33), 2, decimal.NewFromInt(50)},
	}

	cent := decimal.NewFromFloat(0.01)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			monthly, totalInterest, schedule := Schedule(tc.principal, tc.numPayments, tc.annualRate)
			require.Len(t, schedule, tc.numPayments)
			assert.True(t, monthly.GreaterThan(decimal.Zero))

			sumPrincipal := decimal.Zero
			sumInterest := decimal.Zero
			for _, e := range schedule {
				assert.False(t, e.RemainingBalance.LessThan(decimal.Zero),
					"entry %d has negative balance %s", e.Number, e.RemainingBalance)
				sumPrincipal = sumPrincipal.Add(e.Principal)
				sumInterest = sumInterest.Add(e.Interest)
			}

			assert.True(t, sumPrincipal.Sub(tc.principal).Abs().LessThanOrEqual(cent),
				"principal portions should sum to %s, got %s", tc.principal, sumPrincipal)
			assert.True(t, sumInterest.Equal(totalInterest),
				"interest portions should sum to %s, got %s", totalInterest, sumInterest)
			assert.True(t, schedule[len(schedule)-1].RemainingBalance.Equal(decimal.Zero),
				"final balance should be exactly zero")
		})
	}
}

func TestSchedule_FirstEntryInterest(t *testing.T) {
	// $10,000 at 12% for 12 months: first month interest is 10000 * 0.01 = $100.
	_, _, schedule := Schedule(decimal.NewFromInt(10_000), 12, decimal.NewFromInt(12))
	require.NotEmpty(t, schedule)
	assert.True(t, schedule[0].Interest.Equal(decimal.NewFromInt(100)),
		"first interest should be $100, got %s", schedule[0].Interest)
}

func TestSchedule_InvalidInputs(t *testing.T) {
	t.Run("zero term", func(t *testing.T) {
		monthly, _, schedule := Schedule(decimal.NewFromInt(1000), 0, decimal.NewFromInt(5))
		assert.Nil(t, schedule)
		assert.True(t, monthly.Equal(decimal.Zero))
	})
	t.Run("zero principal", func(t *testing.T) {
		_, _, schedule := Schedule(decimal.Zero, 12, decimal.NewFromInt(5))
		assert.Nil(t, schedule)
	})
	t.Run("negative principal", func(t *testing.T) {
		_, _, schedule := Schedule(decimal.NewFromInt(-500), 12, decimal.NewFromInt(5))
		assert.Nil(t, schedule)
	})
}
