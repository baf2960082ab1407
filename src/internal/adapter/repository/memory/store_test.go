package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/memory"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAccount(t *testing.T, store *memory.Store, number string) domain.Account {
	t.Helper()
	var account domain.Account
	err := store.WithinTx(context.Background(), func(ctx context.Context, tx repo_interfaces.Tx) error {
		var err error
		account, err = tx.CreateAccount(ctx, domain.Account{
			UserID:        7,
			AccountNumber: number,
			AccountType:   domain.AccountTypeSavings,
			Balance:       decimal.NewFromInt(500),
			Status:        domain.AccountStatusActive,
		})
		return err
	})
	require.NoError(t, err)
	return account
}

func TestWithinTxDiscardsWritesOnError(t *testing.T) {
	store := memory.NewStore()
	account := openAccount(t, store, "0000000001")
	boom := errors.New("boom")

	err := store.WithinTx(context.Background(), func(ctx context.Context, tx repo_interfaces.Tx) error {
		if err := tx.UpdateAccountBalance(ctx, account.ID, decimal.NewFromInt(100)); err != nil {
			return err
		}
		if _, err := tx.InsertTransaction(ctx, domain.Transaction{
			AccountID: account.ID,
			Type:      domain.TransactionWithdrawal,
			Amount:    decimal.NewFromInt(400),
			Reference: "WDR1",
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := store.Accounts().GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(500)))

	_, err = store.Transactions().GetByReference(context.Background(), "WDR1")
	assert.ErrorIs(t, err, commons.ErrRecordNotFound)
}

func TestInsertTransactionRejectsDuplicateReference(t *testing.T) {
	store := memory.NewStore()
	account := openAccount(t, store, "0000000002")

	insert := func() error {
		return store.WithinTx(context.Background(), func(ctx context.Context, tx repo_interfaces.Tx) error {
			_, err := tx.InsertTransaction(ctx, domain.Transaction{
				AccountID: account.ID,
				Type:      domain.TransactionDeposit,
				Amount:    decimal.NewFromInt(1),
				Reference: "DEP-SAME",
			})
			return err
		})
	}

	require.NoError(t, insert())
	assert.ErrorIs(t, insert(), commons.ErrDuplicateReference)
}

func TestCreateAccountRejectsDuplicateNumber(t *testing.T) {
	store := memory.NewStore()
	openAccount(t, store, "0000000003")

	err := store.WithinTx(context.Background(), func(ctx context.Context, tx repo_interfaces.Tx) error {
		_, err := tx.CreateAccount(ctx, domain.Account{AccountNumber: "0000000003"})
		return err
	})
	assert.ErrorIs(t, err, commons.ErrAlreadyExists)
}

func TestListByAccountPagesNewestFirst(t *testing.T) {
	store := memory.NewStore()
	account := openAccount(t, store, "0000000004")

	for _, ref := range []string{"A", "B", "C"} {
		ref := ref
		require.NoError(t, store.WithinTx(context.Background(), func(ctx context.Context, tx repo_interfaces.Tx) error {
			_, err := tx.InsertTransaction(ctx, domain.Transaction{
				AccountID: account.ID,
				Type:      domain.TransactionDeposit,
				Amount:    decimal.NewFromInt(1),
				Reference: ref,
			})
			return err
		}))
	}

	page, err := store.Transactions().ListByAccount(context.Background(), account.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "C", page[0].Reference)
	assert.Equal(t, "B", page[1].Reference)

	all, err := store.Transactions().ListAllByAccount(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", all[0].Reference)
}

func TestOldestAccountIgnoresFrozenAccounts(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	opened := func(number string, on time.Time, status domain.AccountStatus) {
		err := store.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
			_, err := tx.CreateAccount(ctx, domain.Account{
				UserID:        7,
				AccountNumber: number,
				AccountType:   domain.AccountTypeSavings,
				Balance:       decimal.NewFromInt(500),
				Status:        status,
				OpenedOn:      on,
			})
			return err
		})
		require.NoError(t, err)
	}

	opened("0000000001", time.Date(2010, time.March, 1, 0, 0, 0, 0, time.UTC), domain.AccountStatusFrozen)
	opened("0000000002", time.Date(2018, time.June, 1, 0, 0, 0, 0, time.UTC), domain.AccountStatusClosed)
	opened("0000000003", time.Date(2022, time.May, 1, 0, 0, 0, 0, time.UTC), domain.AccountStatusActive)

	oldest, err := store.CreditProfile().OldestAccountOpenedOn(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, oldest)
	assert.Equal(t, time.Date(2018, time.June, 1, 0, 0, 0, 0, time.UTC), *oldest)

	none, err := store.CreditProfile().OldestAccountOpenedOn(ctx, 8)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestLoanListingsByStatusAndOverdue(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	account := openAccount(t, store, "0000000001")
	asOf := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	create := func(status domain.LoanStatus, due time.Time, installment domain.InstallmentStatus) domain.Loan {
		loan, err := store.Loans().Create(ctx, domain.Loan{UserID: 7, AccountID: account.ID, Status: status})
		require.NoError(t, err)
		err = store.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
			return tx.InsertLoanInstallments(ctx, []domain.LoanInstallment{{LoanID: loan.ID, Number: 1, DueDate: due, Status: installment}})
		})
		require.NoError(t, err)
		return loan
	}

	late := create(domain.LoanStatusActive, asOf.AddDate(0, 0, -1), domain.InstallmentDue)
	create(domain.LoanStatusActive, asOf, domain.InstallmentDue)
	marked := create(domain.LoanStatusActive, asOf.AddDate(0, 1, 0), domain.InstallmentOverdue)
	create(domain.LoanStatusDefaulted, asOf.AddDate(0, -1, 0), domain.InstallmentOverdue)
	pending, err := store.Loans().Create(ctx, domain.Loan{UserID: 7, AccountID: account.ID, Status: domain.LoanStatusPendingApproval})
	require.NoError(t, err)

	overdue, err := store.Loans().ListOverdue(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, []int64{marked.ID, late.ID}, []int64{overdue[0].ID, overdue[1].ID})

	waiting, err := store.Loans().ListByStatus(ctx, domain.LoanStatusPendingApproval)
	require.NoError(t, err)
	require.Len(t, waiting, 1)
	assert.Equal(t, pending.ID, waiting[0].ID)

	all, err := store.Loans().ListByStatus(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, pending.ID, all[0].ID)
}

func TestDepositListingsFollowAccountOwner(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	mine := openAccount(t, store, "0000000001")

	var theirs domain.Account
	err := store.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		var err error
		theirs, err = tx.CreateAccount(ctx, domain.Account{
			UserID:        8,
			AccountNumber: "0000000002",
			AccountType:   domain.AccountTypeSavings,
			Status:        domain.AccountStatusActive,
		})
		return err
	})
	require.NoError(t, err)

	older, err := store.Deposits().CreateFixedDeposit(ctx, domain.FixedDeposit{AccountID: mine.ID, Status: domain.DepositStatusClosed})
	require.NoError(t, err)
	newer, err := store.Deposits().CreateFixedDeposit(ctx, domain.FixedDeposit{AccountID: mine.ID, Status: domain.DepositStatusActive})
	require.NoError(t, err)
	_, err = store.Deposits().CreateFixedDeposit(ctx, domain.FixedDeposit{AccountID: theirs.ID, Status: domain.DepositStatusActive})
	require.NoError(t, err)

	own, err := store.Deposits().ListFixedDepositsByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, []int64{newer.ID, older.ID}, []int64{own[0].ID, own[1].ID})

	active, err := store.Deposits().ListFixedDeposits(ctx, domain.DepositStatusActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	recurring, err := store.Deposits().ListRecurringDepositsByUser(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, recurring)
}
