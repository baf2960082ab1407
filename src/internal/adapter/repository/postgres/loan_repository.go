package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
)

const loanColumns = `id, user_id, account_id, loan_type, principal, annual_rate, tenure_months, emi, total_interest, remaining_principal, status, reference, sanctioned_on, disbursed_on, created_by, created_at, updated_at`

const installmentColumns = `id, loan_id, number, due_date, principal, interest, total, status, penalty, paid_on`

func scanLoan(row rowScanner) (domain.Loan, error) {
	var (
		loan       domain.Loan
		sanctioned sql.NullTime
		disbursed  sql.NullTime
	)
	err := row.Scan(
		&loan.ID,
		&loan.UserID,
		&loan.AccountID,
		&loan.LoanType,
		&loan.Principal,
		&loan.AnnualRate,
		&loan.TenureMonths,
		&loan.EMI,
		&loan.TotalInterest,
		&loan.RemainingPrincipal,
		&loan.Status,
		&loan.Reference,
		&sanctioned,
		&disbursed,
		&loan.CreatedBy,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	)
	loan.SanctionedOn = timePtr(sanctioned)
	loan.DisbursedOn = timePtr(disbursed)
	return loan, err
}

func scanInstallment(row rowScanner) (domain.LoanInstallment, error) {
	var (
		installment domain.LoanInstallment
		paidOn      sql.NullTime
	)
	err := row.Scan(
		&installment.ID,
		&installment.LoanID,
		&installment.Number,
		&installment.DueDate,
		&installment.Principal,
		&installment.Interest,
		&installment.Total,
		&installment.Status,
		&installment.Penalty,
		&paidOn,
	)
	installment.PaidOn = timePtr(paidOn)
	return installment, err
}

type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	logger.Info("loan repository create", logger.Fields{
		"userId":    loan.UserID,
		"reference": loan.Reference,
	})

	const query = `
INSERT INTO loans (
	user_id,
	account_id,
	loan_type,
	principal,
	annual_rate,
	tenure_months,
	emi,
	total_interest,
	remaining_principal,
	status,
	reference,
	created_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		loan.UserID,
		loan.AccountID,
		loan.LoanType,
		loan.Principal,
		loan.AnnualRate,
		loan.TenureMonths,
		loan.EMI,
		loan.TotalInterest,
		loan.RemainingPrincipal,
		loan.Status,
		loan.Reference,
		loan.CreatedBy,
	).Scan(&loan.ID, &loan.CreatedAt, &loan.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Loan{}, fmt.Errorf("loan reference %s: %w", loan.Reference, commons.ErrAlreadyExists)
		}
		logger.Error("loan repository create failed", err, logger.Fields{"reference": loan.Reference})
		return domain.Loan{}, fmt.Errorf("create loan: %w: %v", commons.ErrPersistence, err)
	}
	return loan, nil
}

func (r *LoanRepository) GetByID(ctx context.Context, id int64) (domain.Loan, error) {
	loan, err := scanLoan(r.db.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = $1`, id))
	if err != nil {
		return domain.Loan{}, notFound(err, "get loan")
	}
	return loan, nil
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanLoan)
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE ($1 = '' OR status = $1) ORDER BY id DESC`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list loans by status: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanLoan)
}

func (r *LoanRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Loan, error) {
	const query = `
SELECT ` + loanColumns + `
FROM loans l
WHERE l.status = 'ACTIVE'
  AND EXISTS (
	SELECT 1 FROM loan_installments li
	WHERE li.loan_id = l.id
	  AND (li.status = 'OVERDUE' OR (li.status = 'DUE' AND li.due_date < $1))
  )
ORDER BY l.id DESC`

	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("list overdue loans: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanLoan)
}

func (r *LoanRepository) ListInstallments(ctx context.Context, loanID int64) ([]domain.LoanInstallment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+installmentColumns+` FROM loan_installments WHERE loan_id = $1 ORDER BY number`, loanID)
	if err != nil {
		return nil, fmt.Errorf("list loan installments: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanInstallment)
}

func (t *pgTx) LockLoan(ctx context.Context, loanID int64) (domain.Loan, error) {
	loan, err := scanLoan(t.q.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = $1 FOR UPDATE`, loanID))
	if err != nil {
		return domain.Loan{}, notFound(err, "lock loan")
	}
	return loan, nil
}

func (t *pgTx) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	const query = `
UPDATE loans
SET status = $2,
    remaining_principal = $3,
    sanctioned_on = $4,
    disbursed_on = $5,
    updated_at = NOW()
WHERE id = $1`

	_, err := execRequiredRows(ctx, t.q, query, loan.ID, loan.Status, loan.RemainingPrincipal, loan.SanctionedOn, loan.DisbursedOn)
	return err
}

func (t *pgTx) InsertLoanInstallments(ctx context.Context, installments []domain.LoanInstallment) error {
	const query = `
INSERT INTO loan_installments (loan_id, number, due_date, principal, interest, total, status, penalty)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, installment := range installments {
		if _, err := t.q.ExecContext(
			ctx,
			query,
			installment.LoanID,
			installment.Number,
			installment.DueDate,
			installment.Principal,
			installment.Interest,
			installment.Total,
			installment.Status,
			installment.Penalty,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("installment %d of loan %d: %w", installment.Number, installment.LoanID, commons.ErrAlreadyExists)
			}
			return fmt.Errorf("insert loan installment: %w: %v", commons.ErrPersistence, err)
		}
	}
	return nil
}

func (t *pgTx) LockLoanInstallment(ctx context.Context, loanID int64, number int) (domain.LoanInstallment, error) {
	row := t.q.QueryRowContext(ctx, `SELECT `+installmentColumns+` FROM loan_installments WHERE loan_id = $1 AND number = $2 FOR UPDATE`, loanID, number)
	installment, err := scanInstallment(row)
	if err != nil {
		return domain.LoanInstallment{}, notFound(err, "lock loan installment")
	}
	return installment, nil
}

func (t *pgTx) UpdateLoanInstallment(ctx context.Context, installment domain.LoanInstallment) error {
	const query = `
UPDATE loan_installments
SET status = $3,
    penalty = $4,
    paid_on = $5
WHERE loan_id = $1 AND number = $2`

	_, err := execRequiredRows(ctx, t.q, query, installment.LoanID, installment.Number, installment.Status, installment.Penalty, installment.PaidOn)
	return err
}
