package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit        TransactionType = "DEPOSIT"
	TransactionWithdrawal     TransactionType = "WITHDRAWAL"
	TransactionTransferDebit  TransactionType = "TRANSFER_DEBIT"
	TransactionTransferCredit TransactionType = "TRANSFER_CREDIT"
)

func (t TransactionType) IsCredit() bool {
	return t == TransactionDeposit || t == TransactionTransferCredit
}

// Transaction is an immutable ledger record. Amount is always positive,
// the sign comes from Type.
type Transaction struct {
	ID               int64
	AccountID        int64
	RelatedAccountID *int64
	Type             TransactionType
	Amount           decimal.Decimal
	BalanceAfter     decimal.Decimal
	Reference        string
	Narration        string
	PerformedBy      int64
	CreatedAt        time.Time
}

func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type.IsCredit() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// ReplayBalance folds records, oldest first, into the balance they produce.
func ReplayBalance(records []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, record := range records {
		balance = balance.Add(record.SignedAmount())
	}
	return balance
}
