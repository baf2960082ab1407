package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositStatus string

const (
	DepositStatusActive          DepositStatus = "ACTIVE"
	DepositStatusClosed          DepositStatus = "CLOSED"
	DepositStatusPrematureClosed DepositStatus = "PREMATURE_CLOSED"
)

func (s DepositStatus) Valid() bool {
	switch s {
	case DepositStatusActive, DepositStatusClosed, DepositStatusPrematureClosed:
		return true
	}
	return false
}

// CanTransitionTo allows only ACTIVE to move, and only into a terminal state.
func (s DepositStatus) CanTransitionTo(next DepositStatus) bool {
	return s == DepositStatusActive && (next == DepositStatusClosed || next == DepositStatusPrematureClosed)
}

type PayoutMode string

const (
	PayoutAtMaturity PayoutMode = "MATURITY"
	PayoutMonthly    PayoutMode = "MONTHLY"
	PayoutQuarterly  PayoutMode = "QUARTERLY"
)

func (m PayoutMode) Valid() bool {
	switch m {
	case PayoutAtMaturity, PayoutMonthly, PayoutQuarterly:
		return true
	}
	return false
}

type FixedDeposit struct {
	ID             int64
	AccountID      int64
	Principal      decimal.Decimal
	Rate           decimal.Decimal
	TenureMonths   int
	StartDate      time.Time
	MaturityDate   time.Time
	MaturityAmount decimal.Decimal
	PayoutMode     PayoutMode
	Status         DepositStatus
	ClosedOn       *time.Time
	ClosureAmount  *decimal.Decimal
	CreatedBy      int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type RecurringDeposit struct {
	ID                int64
	AccountID         int64
	InstallmentAmount decimal.Decimal
	TotalInstallments int
	PaidInstallments  int
	Rate              decimal.Decimal
	StartDate         time.Time
	MaturityDate      time.Time
	MaturityAmount    decimal.Decimal
	Status            DepositStatus
	NextDueDate       *time.Time
	ClosedOn          *time.Time
	ClosureAmount     *decimal.Decimal
	CreatedBy         int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type RDInstallmentStatus string

const (
	RDInstallmentDue    RDInstallmentStatus = "DUE"
	RDInstallmentPaid   RDInstallmentStatus = "PAID"
	RDInstallmentMissed RDInstallmentStatus = "MISSED"
)

type RDInstallment struct {
	ID      int64
	RDID    int64
	Number  int
	DueDate time.Time
	Amount  decimal.Decimal
	Status  RDInstallmentStatus
	Penalty decimal.Decimal
	PaidOn  *time.Time
}
