package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

const creditScoreColumns = `id, user_id, score, reason_summary, calculated_at`

func scanCreditScore(row rowScanner) (domain.CreditScore, error) {
	var score domain.CreditScore
	err := row.Scan(&score.ID, &score.UserID, &score.Score, &score.ReasonSummary, &score.CalculatedAt)
	return score, err
}

type CreditScoreRepository struct {
	db *sql.DB
}

func NewCreditScoreRepository(db *sql.DB) *CreditScoreRepository {
	return &CreditScoreRepository{db: db}
}

func (r *CreditScoreRepository) Create(ctx context.Context, score domain.CreditScore) (domain.CreditScore, error) {
	const query = `
INSERT INTO credit_scores (user_id, score, reason_summary, calculated_at)
VALUES ($1, $2, $3, $4)
RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, score.UserID, score.Score, score.ReasonSummary, score.CalculatedAt).Scan(&score.ID); err != nil {
		return domain.CreditScore{}, fmt.Errorf("create credit score: %w: %v", commons.ErrPersistence, err)
	}
	return score, nil
}

func (r *CreditScoreRepository) Latest(ctx context.Context, userID int64) (domain.CreditScore, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+creditScoreColumns+` FROM credit_scores WHERE user_id = $1 ORDER BY calculated_at DESC, id DESC LIMIT 1`, userID)
	score, err := scanCreditScore(row)
	if err != nil {
		return domain.CreditScore{}, notFound(err, "latest credit score")
	}
	return score, nil
}

func (r *CreditScoreRepository) History(ctx context.Context, userID int64, limit int) ([]domain.CreditScore, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+creditScoreColumns+` FROM credit_scores WHERE user_id = $1 ORDER BY calculated_at DESC, id DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("credit score history: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanCreditScore)
}

// CreditProfileRepository runs the aggregate queries behind a credit score.
type CreditProfileRepository struct {
	db *sql.DB
}

func NewCreditProfileRepository(db *sql.DB) *CreditProfileRepository {
	return &CreditProfileRepository{db: db}
}

func (r *CreditProfileRepository) PaymentHistory(ctx context.Context, userID int64, asOf time.Time) (domain.PaymentHistory, error) {
	const query = `
SELECT
	COUNT(*),
	COUNT(*) FILTER (WHERE li.status = 'PAID' AND li.paid_on <= li.due_date),
	COUNT(*) FILTER (WHERE li.status = 'OVERDUE')
FROM loan_installments li
JOIN loans l ON l.id = li.loan_id
WHERE l.user_id = $1 AND li.due_date < $2`

	var history domain.PaymentHistory
	if err := r.db.QueryRowContext(ctx, query, userID, asOf).Scan(&history.Total, &history.OnTime, &history.Overdue); err != nil {
		return domain.PaymentHistory{}, fmt.Errorf("payment history: %w: %v", commons.ErrPersistence, err)
	}
	return history, nil
}

func (r *CreditProfileRepository) OverdraftUsage(ctx context.Context, userID int64) (domain.OverdraftUsage, error) {
	const query = `
SELECT
	COALESCE(SUM(od_limit), 0),
	COALESCE(SUM(CASE WHEN balance < 0 THEN -balance ELSE 0 END), 0)
FROM accounts
WHERE user_id = $1 AND od_limit > 0 AND status = 'ACTIVE'`

	usage := domain.OverdraftUsage{Limit: decimal.Zero, Used: decimal.Zero}
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&usage.Limit, &usage.Used); err != nil {
		return domain.OverdraftUsage{}, fmt.Errorf("overdraft usage: %w: %v", commons.ErrPersistence, err)
	}
	return usage, nil
}

func (r *CreditProfileRepository) OldestAccountOpenedOn(ctx context.Context, userID int64) (*time.Time, error) {
	var oldest sql.NullTime
	if err := r.db.QueryRowContext(ctx, `SELECT MIN(opened_on) FROM accounts WHERE user_id = $1 AND status IN ('ACTIVE', 'CLOSED')`, userID).Scan(&oldest); err != nil {
		return nil, fmt.Errorf("oldest account: %w: %v", commons.ErrPersistence, err)
	}
	return timePtr(oldest), nil
}

func (r *CreditProfileRepository) DistinctLoanTypes(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT loan_type) FROM loans WHERE user_id = $1 AND status IN ('ACTIVE', 'CLOSED')`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("distinct loan types: %w: %v", commons.ErrPersistence, err)
	}
	return count, nil
}

func (r *CreditProfileRepository) LoanApplicationsSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM loans WHERE user_id = $1 AND created_at >= $2`, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("loan applications: %w: %v", commons.ErrPersistence, err)
	}
	return count, nil
}
