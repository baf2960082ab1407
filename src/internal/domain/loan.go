package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanType string

// LoanTypePersonal is the only product offered.
const LoanTypePersonal LoanType = "PERSONAL"

type LoanStatus string

const (
	LoanStatusPendingApproval LoanStatus = "PENDING_APPROVAL"
	LoanStatusApproved        LoanStatus = "APPROVED"
	LoanStatusActive          LoanStatus = "ACTIVE"
	LoanStatusClosed          LoanStatus = "CLOSED"
	LoanStatusDefaulted       LoanStatus = "DEFAULTED"
	LoanStatusRejected        LoanStatus = "REJECTED"
)

var loanTransitions = map[LoanStatus][]LoanStatus{
	LoanStatusPendingApproval: {LoanStatusApproved, LoanStatusRejected},
	LoanStatusApproved:        {LoanStatusActive},
	LoanStatusActive:          {LoanStatusClosed, LoanStatusDefaulted},
}

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanStatusPendingApproval, LoanStatusApproved, LoanStatusActive, LoanStatusClosed, LoanStatusDefaulted, LoanStatusRejected:
		return true
	}
	return false
}

func (s LoanStatus) CanTransitionTo(next LoanStatus) bool {
	for _, allowed := range loanTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Loan struct {
	ID                 int64
	UserID             int64
	AccountID          int64
	LoanType           LoanType
	Principal          decimal.Decimal
	AnnualRate         decimal.Decimal
	TenureMonths       int
	EMI                decimal.Decimal
	TotalInterest      decimal.Decimal
	RemainingPrincipal decimal.Decimal
	Status             LoanStatus
	Reference          string
	SanctionedOn       *time.Time
	DisbursedOn        *time.Time
	CreatedBy          int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type InstallmentStatus string

const (
	InstallmentDue     InstallmentStatus = "DUE"
	InstallmentPaid    InstallmentStatus = "PAID"
	InstallmentOverdue InstallmentStatus = "OVERDUE"
)

type LoanInstallment struct {
	ID        int64
	LoanID    int64
	Number    int
	DueDate   time.Time
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Total     decimal.Decimal
	Status    InstallmentStatus
	Penalty   decimal.Decimal
	PaidOn    *time.Time
}
