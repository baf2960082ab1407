package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusFrozen AccountStatus = "FROZEN"
	AccountStatusClosed AccountStatus = "CLOSED"
)

var accountTransitions = map[AccountStatus][]AccountStatus{
	AccountStatusActive: {AccountStatusFrozen, AccountStatusClosed},
	AccountStatusFrozen: {AccountStatusActive},
}

func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusActive, AccountStatusFrozen, AccountStatusClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether next is a legal successor of s.
// CLOSED has no successors.
func (s AccountStatus) CanTransitionTo(next AccountStatus) bool {
	for _, allowed := range accountTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type AccountType string

const (
	AccountTypeSavings AccountType = "SAVINGS"
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeSalary  AccountType = "SALARY"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeSavings, AccountTypeCurrent, AccountTypeSalary:
		return true
	}
	return false
}

type Account struct {
	ID             int64
	UserID         int64
	AccountNumber  string
	AccountType    AccountType
	Balance        decimal.Decimal
	MinBalance     decimal.Decimal
	OverdraftLimit decimal.Decimal
	InterestRate   decimal.Decimal
	Status         AccountStatus
	OpenedOn       time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AvailableBalance is the balance plus the overdraft headroom.
func (a Account) AvailableBalance() decimal.Decimal {
	return a.Balance.Add(a.OverdraftLimit)
}

func (a Account) BalanceStatus() string {
	switch {
	case a.Balance.IsNegative():
		return "Overdrawn"
	case a.Balance.LessThan(a.MinBalance):
		return "Below Minimum"
	case a.MinBalance.IsPositive() && a.Balance.GreaterThanOrEqual(a.MinBalance.Mul(decimal.NewFromInt(10))):
		return "High Balance"
	default:
		return "Normal"
	}
}

// Sufficiency is the outcome of checking an account against a requested debit.
type Sufficiency struct {
	AccountID        int64
	Sufficient       bool
	Balance          decimal.Decimal
	AvailableBalance decimal.Decimal
	Requested        decimal.Decimal
	Shortfall        decimal.Decimal
	UsesOverdraft    bool
}
