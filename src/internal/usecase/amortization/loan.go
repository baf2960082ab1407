// Package amortization computes loan EMIs and schedules and deposit
// maturities. Everything here is pure: no clock, no storage.
package amortization

import (
	"fmt"
	"math"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/money"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/slabs"
	"github.com/shopspring/decimal"
)

const workingPlaces = 24

var AllowedTenures = []int{6, 12, 24, 36}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

func ValidateTenure(months int) error {
	for _, allowed := range AllowedTenures {
		if months == allowed {
			return nil
		}
	}
	return commons.ValidationError("invalid tenure %d, allowed tenures are %v months", months, AllowedTenures)
}

// MonthlyRate converts an annual percentage into a monthly fraction.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.DivRound(decimal.NewFromInt(1200), workingPlaces)
}

// CalculateEMI applies the reducing-balance formula
// P*r*(1+r)^n / ((1+r)^n - 1) and rounds to two places.
// A zero rate degenerates to P/n.
func CalculateEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if !principal.IsPositive() {
		return decimal.Zero, commons.ValidationError("principal must be greater than zero")
	}
	if tenureMonths <= 0 {
		return decimal.Zero, commons.ValidationError("tenure must be greater than zero")
	}
	if annualRatePercent.IsNegative() {
		return decimal.Zero, commons.ValidationError("rate cannot be negative")
	}

	n := decimal.NewFromInt(int64(tenureMonths))
	if annualRatePercent.IsZero() {
		return money.Round(principal.DivRound(n, workingPlaces)), nil
	}

	r := MonthlyRate(annualRatePercent)
	growth := powInt(one.Add(r), tenureMonths)
	emi := principal.Mul(r).Mul(growth).DivRound(growth.Sub(one), workingPlaces)
	return money.Round(emi), nil
}

// TotalInterest is the interest payable over the life of the loan at a fixed EMI.
func TotalInterest(principal, emi decimal.Decimal, tenureMonths int) decimal.Decimal {
	return money.Round(emi.Mul(decimal.NewFromInt(int64(tenureMonths))).Sub(principal))
}

type LoanQuote struct {
	Principal     decimal.Decimal
	AnnualRate    decimal.Decimal
	TenureMonths  int
	EMI           decimal.Decimal
	TotalInterest decimal.Decimal
	TotalPayable  decimal.Decimal
}

// QuoteLoan prices a loan from the slab table. Tenure must be allowed.
func QuoteLoan(principal decimal.Decimal, tenureMonths int, table slabs.Table) (LoanQuote, error) {
	if err := ValidateTenure(tenureMonths); err != nil {
		return LoanQuote{}, err
	}
	if err := money.ValidateAmount(principal, money.MinPrincipal); err != nil {
		return LoanQuote{}, err
	}

	rate := table.Resolve(principal)
	emi, err := CalculateEMI(principal, rate, tenureMonths)
	if err != nil {
		return LoanQuote{}, err
	}

	interest := TotalInterest(principal, emi, tenureMonths)
	return LoanQuote{
		Principal:     principal,
		AnnualRate:    rate,
		TenureMonths:  tenureMonths,
		EMI:           emi,
		TotalInterest: interest,
		TotalPayable:  principal.Add(interest),
	}, nil
}

type ScheduledInstallment struct {
	Number    int
	DueDate   time.Time
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Total     decimal.Decimal
	Remaining decimal.Decimal
}

// GenerateSchedule splits each EMI into interest on the outstanding balance
// and principal. Components are rounded per row and the final installment
// takes whatever principal is left, so the principal column always sums to
// the original principal.
func GenerateSchedule(principal, emi, annualRatePercent decimal.Decimal, tenureMonths int, start time.Time) ([]ScheduledInstallment, error) {
	if !principal.IsPositive() {
		return nil, commons.ValidationError("principal must be greater than zero")
	}
	if tenureMonths <= 0 {
		return nil, commons.ValidationError("tenure must be greater than zero")
	}
	if !emi.IsPositive() {
		return nil, commons.ValidationError("emi must be greater than zero")
	}

	r := MonthlyRate(annualRatePercent)
	remaining := principal
	schedule := make([]ScheduledInstallment, 0, tenureMonths)

	for i := 1; i <= tenureMonths; i++ {
		interest := money.Round(remaining.Mul(r))
		principalPart := emi.Sub(interest)
		if i == tenureMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}
		if principalPart.IsNegative() {
			return nil, fmt.Errorf("emi %s does not cover interest %s in installment %d", emi, interest, i)
		}
		remaining = remaining.Sub(principalPart)

		schedule = append(schedule, ScheduledInstallment{
			Number:    i,
			DueDate:   AddMonths(start, i),
			Principal: principalPart,
			Interest:  interest,
			Total:     principalPart.Add(interest),
			Remaining: remaining,
		})
	}

	return schedule, nil
}

func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	result := one
	for i := 0; i < exp; i++ {
		result = result.Mul(base).Round(workingPlaces)
	}
	return result
}

// compound raises base to a possibly fractional number of periods. The
// whole part is exact; the fractional part goes through float64.
func compound(base, periods decimal.Decimal) decimal.Decimal {
	whole := periods.IntPart()
	result := powInt(base, int(whole))

	frac := periods.Sub(decimal.NewFromInt(whole))
	if frac.IsPositive() {
		f, _ := frac.Float64()
		result = result.Mul(decimal.NewFromFloat(math.Pow(base.InexactFloat64(), f))).Round(workingPlaces)
	}
	return result
}
