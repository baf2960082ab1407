package amortization

import (
	"errors"
	"testing"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/slabs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

func TestCalculateEMIReducingBalance(t *testing.T) {
	emi, err := CalculateEMI(dec("100000"), dec("12.00"), 12)
	require.NoError(t, err)
	assert.Equal(t, "8884.88", emi.StringFixed(2))
}

func TestCalculateEMIZeroRate(t *testing.T) {
	emi, err := CalculateEMI(dec("120000"), decimal.Zero, 12)
	require.NoError(t, err)
	assert.Equal(t, "10000.00", emi.StringFixed(2))

	emi, err = CalculateEMI(dec("100000"), decimal.Zero, 6)
	require.NoError(t, err)
	assert.Equal(t, "16666.67", emi.StringFixed(2))
}

func TestCalculateEMIRejectsBadInput(t *testing.T) {
	_, err := CalculateEMI(decimal.Zero, dec("10"), 12)
	assert.True(t, errors.Is(err, commons.ErrValidation))

	_, err = CalculateEMI(dec("1000"), dec("10"), 0)
	assert.True(t, errors.Is(err, commons.ErrValidation))

	_, err = CalculateEMI(dec("1000"), dec("-1"), 12)
	assert.True(t, errors.Is(err, commons.ErrValidation))
}

func TestValidateTenure(t *testing.T) {
	for _, months := range []int{6, 12, 24, 36} {
		assert.NoError(t, ValidateTenure(months))
	}
	for _, months := range []int{0, 3, 18, 48} {
		assert.True(t, errors.Is(ValidateTenure(months), commons.ErrValidation))
	}
}

func TestQuoteLoanUsesSlabRate(t *testing.T) {
	quote, err := QuoteLoan(dec("100000"), 12, slabs.Loan)
	require.NoError(t, err)

	assert.True(t, quote.AnnualRate.Equal(dec("12.00")))
	assert.Equal(t, "8884.88", quote.EMI.StringFixed(2))
	assert.Equal(t, "6618.56", quote.TotalInterest.StringFixed(2))
	assert.Equal(t, "106618.56", quote.TotalPayable.StringFixed(2))

	_, err = QuoteLoan(dec("100000"), 18, slabs.Loan)
	assert.True(t, errors.Is(err, commons.ErrValidation))
}

func TestGenerateScheduleSumsToPrincipal(t *testing.T) {
	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	schedule, err := GenerateSchedule(dec("100000"), dec("8884.88"), dec("12.00"), 12, start)
	require.NoError(t, err)
	require.Len(t, schedule, 12)

	first := schedule[0]
	assert.Equal(t, "1000.00", first.Interest.StringFixed(2))
	assert.Equal(t, "7884.88", first.Principal.StringFixed(2))
	assert.Equal(t, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), first.DueDate)

	sum := decimal.Zero
	for i, row := range schedule {
		assert.Equal(t, i+1, row.Number)
		sum = sum.Add(row.Principal)
	}
	assert.True(t, sum.Equal(dec("100000")), "expected principal sum 100000, got %s", sum)

	last := schedule[11]
	assert.True(t, last.Remaining.IsZero())
	assert.Equal(t, "8796.88", last.Principal.StringFixed(2))
	assert.Equal(t, "8884.85", last.Total.StringFixed(2))
}

func TestGenerateScheduleZeroRate(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	emi, err := CalculateEMI(dec("100000"), decimal.Zero, 6)
	require.NoError(t, err)

	schedule, err := GenerateSchedule(dec("100000"), emi, decimal.Zero, 6, start)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, row := range schedule {
		assert.True(t, row.Interest.IsZero())
		sum = sum.Add(row.Principal)
	}
	assert.True(t, sum.Equal(dec("100000")))
	assert.Equal(t, "16666.65", schedule[5].Principal.StringFixed(2))
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	start := time.Date(2024, time.January, 31, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), AddMonths(start, 1))
	assert.Equal(t, time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC), AddMonths(start, 3))
	assert.Equal(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), AddMonths(start, 12))
}
