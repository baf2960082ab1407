package creditscore

import (
	"errors"
	"testing"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestCalculateNewCustomerUsesDefaults(t *testing.T) {
	result := Calculate(Inputs{AsOf: time.Now()})

	assert.Equal(t, 70.0, result.SubScores.PaymentHistory)
	assert.Equal(t, 85.0, result.SubScores.Utilization)
	assert.Equal(t, 50.0, result.SubScores.AccountAge)
	assert.Equal(t, 60.0, result.SubScores.Diversity)
	assert.Equal(t, 80.0, result.SubScores.Inquiries)
	assert.Equal(t, 693, result.Score)
}

func TestBlendBounds(t *testing.T) {
	assert.Equal(t, MaxScore, Blend(SubScores{100, 100, 100, 100, 100}))
	assert.Equal(t, MinScore, Blend(SubScores{}))
}

func TestCalculateStrongProfile(t *testing.T) {
	asOf := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	oldest := asOf.AddDate(-11, 0, 0)

	result := Calculate(Inputs{
		Payments:           &domain.PaymentHistory{Total: 24, OnTime: 24},
		Overdraft:          &domain.OverdraftUsage{Limit: decimal.NewFromInt(10000), Used: decimal.NewFromInt(500)},
		OldestAccount:      &oldest,
		DistinctLoanTypes:  intPtr(3),
		RecentApplications: intPtr(0),
		AsOf:               asOf,
	})

	assert.Equal(t, 850, result.Score)
}

func TestPaymentHistoryScore(t *testing.T) {
	assert.Equal(t, 70.0, PaymentHistoryScore(&domain.PaymentHistory{}))
	assert.Equal(t, 50.0, PaymentHistoryScore(&domain.PaymentHistory{Total: 4, OnTime: 2, Overdue: 0}))
	assert.Equal(t, 0.0, PaymentHistoryScore(&domain.PaymentHistory{Total: 2, OnTime: 0, Overdue: 2}))
}

func TestUtilizationBrackets(t *testing.T) {
	limit := decimal.NewFromInt(1000)
	cases := map[int64]float64{0: 100, 100: 100, 300: 80, 500: 60, 700: 40, 900: 20}
	for used, want := range cases {
		got := UtilizationScore(&domain.OverdraftUsage{Limit: limit, Used: decimal.NewFromInt(used)})
		assert.Equalf(t, want, got, "used %d", used)
	}
	assert.Equal(t, 85.0, UtilizationScore(&domain.OverdraftUsage{}))
}

func TestAccountAgeBrackets(t *testing.T) {
	asOf := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	cases := map[int]float64{0: 20, 1: 40, 3: 60, 6: 80, 12: 100}
	for years, want := range cases {
		oldest := asOf.AddDate(-years, 0, -1)
		assert.Equalf(t, want, AccountAgeScore(&oldest, asOf), "years %d", years)
	}
}

func TestDiversityAndInquiries(t *testing.T) {
	assert.Equal(t, 40.0, DiversityScore(intPtr(0)))
	assert.Equal(t, 80.0, DiversityScore(intPtr(2)))
	assert.Equal(t, 100.0, InquiriesScore(intPtr(0)))
	assert.Equal(t, 60.0, InquiriesScore(intPtr(4)))
	assert.Equal(t, 30.0, InquiriesScore(intPtr(5)))
}

func TestCheckLoanEligibility(t *testing.T) {
	assert.NoError(t, CheckLoanEligibility(0, decimal.NewFromInt(100000)))
	assert.NoError(t, CheckLoanEligibility(600, decimal.NewFromInt(100000)))
	assert.True(t, errors.Is(CheckLoanEligibility(599, decimal.NewFromInt(1000)), commons.ErrValidation))
	assert.True(t, errors.Is(CheckLoanEligibility(650, decimal.NewFromInt(600000)), commons.ErrValidation))
	assert.NoError(t, CheckLoanEligibility(720, decimal.NewFromInt(600000)))
}
