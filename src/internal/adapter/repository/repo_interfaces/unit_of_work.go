package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

// UnitOfWork runs fn inside one storage transaction. fn's writes commit
// together when it returns nil and are discarded otherwise. Lock* methods
// hold the row until the transaction ends.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	LedgerTx
	LoanTx
	DepositTx
}

type LedgerTx interface {
	CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	LockAccount(ctx context.Context, accountID int64) (domain.Account, error)
	UpdateAccountBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error
	UpdateAccountStatus(ctx context.Context, accountID int64, status domain.AccountStatus) error
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	InsertTransaction(ctx context.Context, record domain.Transaction) (domain.Transaction, error)
}

type LoanTx interface {
	LockLoan(ctx context.Context, loanID int64) (domain.Loan, error)
	UpdateLoan(ctx context.Context, loan domain.Loan) error
	InsertLoanInstallments(ctx context.Context, installments []domain.LoanInstallment) error
	LockLoanInstallment(ctx context.Context, loanID int64, number int) (domain.LoanInstallment, error)
	UpdateLoanInstallment(ctx context.Context, installment domain.LoanInstallment) error
}

type DepositTx interface {
	LockFixedDeposit(ctx context.Context, id int64) (domain.FixedDeposit, error)
	UpdateFixedDeposit(ctx context.Context, fd domain.FixedDeposit) error
	CreateRecurringDeposit(ctx context.Context, rd domain.RecurringDeposit) (domain.RecurringDeposit, error)
	InsertRDInstallments(ctx context.Context, installments []domain.RDInstallment) error
	LockRecurringDeposit(ctx context.Context, id int64) (domain.RecurringDeposit, error)
	UpdateRecurringDeposit(ctx context.Context, rd domain.RecurringDeposit) error
	LockRDInstallment(ctx context.Context, rdID int64, number int) (domain.RDInstallment, error)
	UpdateRDInstallment(ctx context.Context, installment domain.RDInstallment) error
	NextDueRDInstallment(ctx context.Context, rdID int64) (*time.Time, error)
}
