package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
)

const transactionColumns = `id, account_id, related_account_id, txn_type, amount, balance_after, reference, narration, performed_by, created_at`

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		record  domain.Transaction
		related sql.NullInt64
	)
	err := row.Scan(
		&record.ID,
		&record.AccountID,
		&related,
		&record.Type,
		&record.Amount,
		&record.BalanceAfter,
		&record.Reference,
		&record.Narration,
		&record.PerformedBy,
		&record.CreatedAt,
	)
	if related.Valid {
		record.RelatedAccountID = &related.Int64
	}
	return record, err
}

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID int64, limit int, offset int) ([]domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + `
FROM transactions
WHERE account_id = $1
ORDER BY id DESC
LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, accountID, limit, offset)
	if err != nil {
		logger.Error("transaction repository list failed", err, logger.Fields{"accountId": accountID})
		return nil, fmt.Errorf("list transactions: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanTransaction)
}

func (r *TransactionRepository) ListAllByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE account_id = $1 ORDER BY id`, accountID)
	if err != nil {
		logger.Error("transaction repository list all failed", err, logger.Fields{"accountId": accountID})
		return nil, fmt.Errorf("list transactions: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanTransaction)
}

func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (domain.Transaction, error) {
	record, err := scanTransaction(r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE reference = $1`, reference))
	if err != nil {
		return domain.Transaction{}, notFound(err, "get transaction by reference")
	}
	return record, nil
}

func (t *pgTx) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	if err := t.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE reference = $1)`, reference).Scan(&exists); err != nil {
		return false, fmt.Errorf("check reference: %w: %v", commons.ErrPersistence, err)
	}
	return exists, nil
}

func (t *pgTx) InsertTransaction(ctx context.Context, record domain.Transaction) (domain.Transaction, error) {
	const query = `
INSERT INTO transactions (
	account_id,
	related_account_id,
	txn_type,
	amount,
	balance_after,
	reference,
	narration,
	performed_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at`

	err := t.q.QueryRowContext(
		ctx,
		query,
		record.AccountID,
		record.RelatedAccountID,
		record.Type,
		record.Amount,
		record.BalanceAfter,
		record.Reference,
		record.Narration,
		record.PerformedBy,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Transaction{}, fmt.Errorf("reference %s: %w", record.Reference, commons.ErrDuplicateReference)
		}
		logger.Error("transaction repository insert failed", err, logger.Fields{
			"accountId": record.AccountID,
			"reference": record.Reference,
		})
		return domain.Transaction{}, fmt.Errorf("insert transaction: %w: %v", commons.ErrPersistence, err)
	}

	return record, nil
}
