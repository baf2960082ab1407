package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, user_id, account_number, account_type, balance, min_balance, od_limit, interest_rate, status, opened_on, created_at, updated_at`

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.AccountNumber,
		&account.AccountType,
		&account.Balance,
		&account.MinBalance,
		&account.OverdraftLimit,
		&account.InterestRate,
		&account.Status,
		&account.OpenedOn,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	return account, err
}

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	account, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, notFound(err, "get account by id")
	}
	return account, nil
}

func (r *AccountRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_number = $1`, accountNumber)
	account, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, notFound(err, "get account by account number")
	}
	return account, nil
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		logger.Error("account repository list by user failed", err, logger.Fields{"userId": userID})
		return nil, fmt.Errorf("list accounts: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanAccount)
}

func (t *pgTx) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	user_id,
	account_number,
	account_type,
	balance,
	min_balance,
	od_limit,
	interest_rate,
	status,
	opened_on
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at, updated_at`

	err := t.q.QueryRowContext(
		ctx,
		query,
		account.UserID,
		account.AccountNumber,
		account.AccountType,
		account.Balance,
		account.MinBalance,
		account.OverdraftLimit,
		account.InterestRate,
		account.Status,
		account.OpenedOn,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, fmt.Errorf("account number %s: %w", account.AccountNumber, commons.ErrAlreadyExists)
		}
		logger.Error("account repository create failed", err, logger.Fields{
			"userId":        account.UserID,
			"accountNumber": account.AccountNumber,
		})
		return domain.Account{}, fmt.Errorf("create account: %w: %v", commons.ErrPersistence, err)
	}

	return account, nil
}

func (t *pgTx) LockAccount(ctx context.Context, accountID int64) (domain.Account, error) {
	row := t.q.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, accountID)
	account, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, notFound(err, "lock account")
	}
	return account, nil
}

func (t *pgTx) UpdateAccountBalance(ctx context.Context, accountID int64, balance decimal.Decimal) error {
	_, err := execRequiredRows(ctx, t.q, `UPDATE accounts SET balance = $2, updated_at = NOW() WHERE id = $1`, accountID, balance)
	return err
}

func (t *pgTx) UpdateAccountStatus(ctx context.Context, accountID int64, status domain.AccountStatus) error {
	_, err := execRequiredRows(ctx, t.q, `UPDATE accounts SET status = $2, updated_at = NOW() WHERE id = $1`, accountID, status)
	return err
}
