package amortization

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFixedDepositMaturity(t *testing.T) {
	assert.Equal(t, "107000.00", FixedDepositMaturity(dec("100000"), dec("7.00"), 12).StringFixed(2))
	assert.Equal(t, "114490.00", FixedDepositMaturity(dec("100000"), dec("7.00"), 24).StringFixed(2))

	half := FixedDepositMaturity(dec("100000"), dec("7.00"), 6)
	assert.True(t, half.GreaterThan(dec("103400")) && half.LessThan(dec("103500")), "unexpected six month maturity %s", half)
}

func TestFixedDepositPrematureClosureBeforeHoldingPeriod(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	closure := FixedDepositPrematureClosure(dec("100000"), dec("7.00"), dec("107000.00"), start, start.AddDate(0, 0, 45))

	assert.Equal(t, 45, closure.DaysHeld)
	assert.True(t, closure.ClosureAmount.Equal(dec("100000")))
	assert.True(t, closure.InterestEarned.IsZero())
	assert.True(t, closure.Penalty.IsZero())
}

func TestFixedDepositPrematureClosureWithPenalty(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	closeOn := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	maturity := FixedDepositMaturity(dec("100000"), dec("7.00"), 12)

	closure := FixedDepositPrematureClosure(dec("100000"), dec("7.00"), maturity, start, closeOn)

	assert.Equal(t, 182, closure.DaysHeld)
	assert.True(t, closure.AppliedRate.Equal(dec("5.25")))
	assert.True(t, closure.ClosureAmount.GreaterThan(dec("100000")))
	assert.True(t, closure.ClosureAmount.LessThan(maturity))
	assert.True(t, closure.InterestEarned.Equal(closure.ClosureAmount.Sub(dec("100000"))))
	assert.True(t, closure.Penalty.Equal(maturity.Sub(closure.ClosureAmount)))
}

func TestRecurringDepositMaturity(t *testing.T) {
	assert.Equal(t, "12397.24", RecurringDepositMaturity(dec("1000"), dec("6.00"), 12).StringFixed(2))

	for _, months := range []int{6, 12, 24, 36} {
		withInterest := RecurringDepositMaturity(dec("2500"), dec("6.50"), months)
		deposited := dec("2500").Mul(decimal.NewFromInt(int64(months)))
		assert.True(t, withInterest.GreaterThan(deposited), "tenure %d: %s should exceed %s", months, withInterest, deposited)

		flat := RecurringDepositMaturity(dec("2500"), decimal.Zero, months)
		assert.True(t, flat.Equal(deposited), "tenure %d: %s should equal %s", months, flat, deposited)
	}
}

func TestRecurringDepositSchedule(t *testing.T) {
	start := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	schedule := RecurringDepositSchedule(dec("500"), 6, start)

	assert.Len(t, schedule, 6)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), schedule[0].DueDate)
	assert.Equal(t, time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC), schedule[5].DueDate)
	for _, row := range schedule {
		assert.True(t, row.Amount.Equal(dec("500")))
	}
}

func TestRecurringDepositPrematureClosure(t *testing.T) {
	early := RecurringDepositPrematureClosure(dec("1000"), dec("6.00"), 5)
	assert.Equal(t, "5000.00", early.ClosureAmount.StringFixed(2))
	assert.True(t, early.InterestEarned.IsZero())

	closure := RecurringDepositPrematureClosure(dec("1000"), dec("6.00"), 6)
	assert.Equal(t, "6000.00", closure.TotalDeposited.StringFixed(2))
	assert.Equal(t, "6079.24", closure.ClosureAmount.StringFixed(2))
	assert.Equal(t, "79.24", closure.InterestEarned.StringFixed(2))
	assert.Equal(t, "26.64", closure.Penalty.StringFixed(2))
}
