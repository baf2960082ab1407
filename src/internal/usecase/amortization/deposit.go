package amortization

import (
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/money"
	"github.com/shopspring/decimal"
)

const (
	// MinHoldingDays is the fixed deposit age below which no interest is paid.
	MinHoldingDays = 90
	// MinPaidInstallments is the recurring deposit count below which no interest is paid.
	MinPaidInstallments = 6
)

var (
	PrematureRateFactor = decimal.RequireFromString("0.75")
	daysPerYear         = decimal.RequireFromString("365.25")
)

// FixedDepositMaturity compounds annually: P * (1 + rate/100)^(months/12).
func FixedDepositMaturity(principal, ratePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	years := decimal.NewFromInt(int64(tenureMonths)).DivRound(twelve, workingPlaces)
	growth := compound(one.Add(ratePercent.Div(hundred)), years)
	return money.Round(principal.Mul(growth))
}

type FixedDepositClosure struct {
	DaysHeld       int
	AppliedRate    decimal.Decimal
	ClosureAmount  decimal.Decimal
	InterestEarned decimal.Decimal
	Penalty        decimal.Decimal
}

// FixedDepositPrematureClosure pays the principal back untouched before
// MinHoldingDays; after that the elapsed period earns a reduced rate and the
// penalty is what the depositor gives up against the projected maturity.
func FixedDepositPrematureClosure(principal, ratePercent, maturityAmount decimal.Decimal, start, closeOn time.Time) FixedDepositClosure {
	days := DaysBetween(start, closeOn)
	if days < MinHoldingDays {
		return FixedDepositClosure{
			DaysHeld:       days,
			AppliedRate:    decimal.Zero,
			ClosureAmount:  principal,
			InterestEarned: decimal.Zero,
			Penalty:        decimal.Zero,
		}
	}

	applied := ratePercent.Mul(PrematureRateFactor)
	years := decimal.NewFromInt(int64(days)).DivRound(daysPerYear, workingPlaces)
	closure := money.Round(principal.Mul(compound(one.Add(applied.Div(hundred)), years)))

	return FixedDepositClosure{
		DaysHeld:       days,
		AppliedRate:    applied,
		ClosureAmount:  closure,
		InterestEarned: closure.Sub(principal),
		Penalty:        maturityAmount.Sub(closure),
	}
}

// RecurringDepositMaturity sums every installment grown monthly for the
// months left after it is paid: the first earns n months, the last one.
func RecurringDepositMaturity(installment, ratePercent decimal.Decimal, installments int) decimal.Decimal {
	factor := one.Add(MonthlyRate(ratePercent))
	growth := one
	total := decimal.Zero
	for j := 1; j <= installments; j++ {
		growth = growth.Mul(factor).Round(workingPlaces)
		total = total.Add(installment.Mul(growth))
	}
	return money.Round(total)
}

type ScheduledDeposit struct {
	Number  int
	DueDate time.Time
	Amount  decimal.Decimal
}

// RecurringDepositSchedule lays out one installment a month, the first due a
// month after opening.
func RecurringDepositSchedule(installment decimal.Decimal, installments int, start time.Time) []ScheduledDeposit {
	schedule := make([]ScheduledDeposit, 0, installments)
	for i := 1; i <= installments; i++ {
		schedule = append(schedule, ScheduledDeposit{
			Number:  i,
			DueDate: AddMonths(start, i),
			Amount:  installment,
		})
	}
	return schedule
}

type RecurringDepositClosure struct {
	PaidInstallments int
	TotalDeposited   decimal.Decimal
	AppliedRate      decimal.Decimal
	ClosureAmount    decimal.Decimal
	InterestEarned   decimal.Decimal
	Penalty          decimal.Decimal
}

func RecurringDepositPrematureClosure(installment, ratePercent decimal.Decimal, paid int) RecurringDepositClosure {
	deposited := money.Round(installment.Mul(decimal.NewFromInt(int64(paid))))
	if paid < MinPaidInstallments {
		return RecurringDepositClosure{
			PaidInstallments: paid,
			TotalDeposited:   deposited,
			AppliedRate:      decimal.Zero,
			ClosureAmount:    deposited,
			InterestEarned:   decimal.Zero,
			Penalty:          decimal.Zero,
		}
	}

	applied := ratePercent.Mul(PrematureRateFactor)
	closure := RecurringDepositMaturity(installment, applied, paid)
	contracted := RecurringDepositMaturity(installment, ratePercent, paid)

	return RecurringDepositClosure{
		PaidInstallments: paid,
		TotalDeposited:   deposited,
		AppliedRate:      applied,
		ClosureAmount:    closure,
		InterestEarned:   closure.Sub(deposited),
		Penalty:          contracted.Sub(closure),
	}
}
