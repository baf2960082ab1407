package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditScore rows are append-only; the latest by CalculatedAt is current.
type CreditScore struct {
	ID            int64
	UserID        int64
	Score         int
	ReasonSummary string
	CalculatedAt  time.Time
}

// PaymentHistory counts loan installments that have fallen due.
type PaymentHistory struct {
	Total   int
	OnTime  int
	Overdue int
}

// OverdraftUsage sums overdraft limits and the overdrawn part of balances
// across a user's active accounts.
type OverdraftUsage struct {
	Limit decimal.Decimal
	Used  decimal.Decimal
}
