package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
	"github.com/shopspring/decimal"
)

const fixedDepositColumns = `id, account_id, principal, rate, tenure_months, start_date, maturity_date, maturity_amount, payout_mode, status, closed_on, closure_amount, created_by, created_at, updated_at`

const recurringDepositColumns = `id, account_id, installment_amount, total_installments, paid_installments, rate, start_date, maturity_date, maturity_amount, status, next_due_date, closed_on, closure_amount, created_by, created_at, updated_at`

const rdInstallmentColumns = `id, rd_id, number, due_date, amount, status, penalty, paid_on`

func scanFixedDeposit(row rowScanner) (domain.FixedDeposit, error) {
	var (
		fd       domain.FixedDeposit
		closedOn sql.NullTime
		closure  decimal.NullDecimal
	)
	err := row.Scan(
		&fd.ID,
		&fd.AccountID,
		&fd.Principal,
		&fd.Rate,
		&fd.TenureMonths,
		&fd.StartDate,
		&fd.MaturityDate,
		&fd.MaturityAmount,
		&fd.PayoutMode,
		&fd.Status,
		&closedOn,
		&closure,
		&fd.CreatedBy,
		&fd.CreatedAt,
		&fd.UpdatedAt,
	)
	fd.ClosedOn = timePtr(closedOn)
	fd.ClosureAmount = decimalPtr(closure)
	return fd, err
}

func scanRecurringDeposit(row rowScanner) (domain.RecurringDeposit, error) {
	var (
		rd       domain.RecurringDeposit
		nextDue  sql.NullTime
		closedOn sql.NullTime
		closure  decimal.NullDecimal
	)
	err := row.Scan(
		&rd.ID,
		&rd.AccountID,
		&rd.InstallmentAmount,
		&rd.TotalInstallments,
		&rd.PaidInstallments,
		&rd.Rate,
		&rd.StartDate,
		&rd.MaturityDate,
		&rd.MaturityAmount,
		&rd.Status,
		&nextDue,
		&closedOn,
		&closure,
		&rd.CreatedBy,
		&rd.CreatedAt,
		&rd.UpdatedAt,
	)
	rd.NextDueDate = timePtr(nextDue)
	rd.ClosedOn = timePtr(closedOn)
	rd.ClosureAmount = decimalPtr(closure)
	return rd, err
}

func scanRDInstallment(row rowScanner) (domain.RDInstallment, error) {
	var (
		installment domain.RDInstallment
		paidOn      sql.NullTime
	)
	err := row.Scan(
		&installment.ID,
		&installment.RDID,
		&installment.Number,
		&installment.DueDate,
		&installment.Amount,
		&installment.Status,
		&installment.Penalty,
		&paidOn,
	)
	installment.PaidOn = timePtr(paidOn)
	return installment, err
}

type DepositRepository struct {
	db *sql.DB
}

func NewDepositRepository(db *sql.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

func (r *DepositRepository) CreateFixedDeposit(ctx context.Context, fd domain.FixedDeposit) (domain.FixedDeposit, error) {
	const query = `
INSERT INTO fixed_deposits (
	account_id,
	principal,
	rate,
	tenure_months,
	start_date,
	maturity_date,
	maturity_amount,
	payout_mode,
	status,
	created_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		fd.AccountID,
		fd.Principal,
		fd.Rate,
		fd.TenureMonths,
		fd.StartDate,
		fd.MaturityDate,
		fd.MaturityAmount,
		fd.PayoutMode,
		fd.Status,
		fd.CreatedBy,
	).Scan(&fd.ID, &fd.CreatedAt, &fd.UpdatedAt)
	if err != nil {
		logger.Error("deposit repository create fixed deposit failed", err, logger.Fields{"accountId": fd.AccountID})
		return domain.FixedDeposit{}, fmt.Errorf("create fixed deposit: %w: %v", commons.ErrPersistence, err)
	}
	return fd, nil
}

func (r *DepositRepository) GetFixedDeposit(ctx context.Context, id int64) (domain.FixedDeposit, error) {
	fd, err := scanFixedDeposit(r.db.QueryRowContext(ctx, `SELECT `+fixedDepositColumns+` FROM fixed_deposits WHERE id = $1`, id))
	if err != nil {
		return domain.FixedDeposit{}, notFound(err, "get fixed deposit")
	}
	return fd, nil
}

func (r *DepositRepository) GetRecurringDeposit(ctx context.Context, id int64) (domain.RecurringDeposit, error) {
	rd, err := scanRecurringDeposit(r.db.QueryRowContext(ctx, `SELECT `+recurringDepositColumns+` FROM recurring_deposits WHERE id = $1`, id))
	if err != nil {
		return domain.RecurringDeposit{}, notFound(err, "get recurring deposit")
	}
	return rd, nil
}

func (r *DepositRepository) ListRDInstallments(ctx context.Context, rdID int64) ([]domain.RDInstallment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+rdInstallmentColumns+` FROM rd_installments WHERE rd_id = $1 ORDER BY number`, rdID)
	if err != nil {
		return nil, fmt.Errorf("list rd installments: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanRDInstallment)
}

func (r *DepositRepository) ListFixedDepositsByUser(ctx context.Context, userID int64) ([]domain.FixedDeposit, error) {
	query := `SELECT ` + fixedDepositColumns + ` FROM fixed_deposits WHERE account_id IN (SELECT id FROM accounts WHERE user_id = $1) ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list fixed deposits for user: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanFixedDeposit)
}

func (r *DepositRepository) ListRecurringDepositsByUser(ctx context.Context, userID int64) ([]domain.RecurringDeposit, error) {
	query := `SELECT ` + recurringDepositColumns + ` FROM recurring_deposits WHERE account_id IN (SELECT id FROM accounts WHERE user_id = $1) ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list recurring deposits for user: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanRecurringDeposit)
}

func (r *DepositRepository) ListFixedDeposits(ctx context.Context, status domain.DepositStatus) ([]domain.FixedDeposit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+fixedDepositColumns+` FROM fixed_deposits WHERE ($1 = '' OR status = $1) ORDER BY id DESC`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list fixed deposits: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanFixedDeposit)
}

func (r *DepositRepository) ListRecurringDeposits(ctx context.Context, status domain.DepositStatus) ([]domain.RecurringDeposit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+recurringDepositColumns+` FROM recurring_deposits WHERE ($1 = '' OR status = $1) ORDER BY id DESC`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list recurring deposits: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, scanRecurringDeposit)
}

func (r *DepositRepository) ListMaturedFixedDepositIDs(ctx context.Context, asOf time.Time) ([]int64, error) {
	return r.maturedIDs(ctx, `SELECT id FROM fixed_deposits WHERE status = 'ACTIVE' AND maturity_date <= $1 ORDER BY id`, asOf)
}

func (r *DepositRepository) ListMaturedRecurringDepositIDs(ctx context.Context, asOf time.Time) ([]int64, error) {
	return r.maturedIDs(ctx, `SELECT id FROM recurring_deposits WHERE status = 'ACTIVE' AND maturity_date <= $1 ORDER BY id`, asOf)
}

func (r *DepositRepository) maturedIDs(ctx context.Context, query string, asOf time.Time) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("list matured deposits: %w: %v", commons.ErrPersistence, err)
	}
	return collect(rows, func(row rowScanner) (int64, error) {
		var id int64
		err := row.Scan(&id)
		return id, err
	})
}

func (t *pgTx) LockFixedDeposit(ctx context.Context, id int64) (domain.FixedDeposit, error) {
	fd, err := scanFixedDeposit(t.q.QueryRowContext(ctx, `SELECT `+fixedDepositColumns+` FROM fixed_deposits WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return domain.FixedDeposit{}, notFound(err, "lock fixed deposit")
	}
	return fd, nil
}

func (t *pgTx) UpdateFixedDeposit(ctx context.Context, fd domain.FixedDeposit) error {
	const query = `
UPDATE fixed_deposits
SET status = $2,
    closed_on = $3,
    closure_amount = $4,
    updated_at = NOW()
WHERE id = $1`

	_, err := execRequiredRows(ctx, t.q, query, fd.ID, fd.Status, fd.ClosedOn, nullDecimal(fd.ClosureAmount))
	return err
}

func (t *pgTx) CreateRecurringDeposit(ctx context.Context, rd domain.RecurringDeposit) (domain.RecurringDeposit, error) {
	const query = `
INSERT INTO recurring_deposits (
	account_id,
	installment_amount,
	total_installments,
	paid_installments,
	rate,
	start_date,
	maturity_date,
	maturity_amount,
	status,
	next_due_date,
	created_by
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, created_at, updated_at`

	err := t.q.QueryRowContext(
		ctx,
		query,
		rd.AccountID,
		rd.InstallmentAmount,
		rd.TotalInstallments,
		rd.PaidInstallments,
		rd.Rate,
		rd.StartDate,
		rd.MaturityDate,
		rd.MaturityAmount,
		rd.Status,
		rd.NextDueDate,
		rd.CreatedBy,
	).Scan(&rd.ID, &rd.CreatedAt, &rd.UpdatedAt)
	if err != nil {
		logger.Error("deposit repository create recurring deposit failed", err, logger.Fields{"accountId": rd.AccountID})
		return domain.RecurringDeposit{}, fmt.Errorf("create recurring deposit: %w: %v", commons.ErrPersistence, err)
	}
	return rd, nil
}

func (t *pgTx) InsertRDInstallments(ctx context.Context, installments []domain.RDInstallment) error {
	const query = `
INSERT INTO rd_installments (rd_id, number, due_date, amount, status, penalty)
VALUES ($1, $2, $3, $4, $5, $6)`

	for _, installment := range installments {
		if _, err := t.q.ExecContext(
			ctx,
			query,
			installment.RDID,
			installment.Number,
			installment.DueDate,
			installment.Amount,
			installment.Status,
			installment.Penalty,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("installment %d of recurring deposit %d: %w", installment.Number, installment.RDID, commons.ErrAlreadyExists)
			}
			return fmt.Errorf("insert rd installment: %w: %v", commons.ErrPersistence, err)
		}
	}
	return nil
}

func (t *pgTx) LockRecurringDeposit(ctx context.Context, id int64) (domain.RecurringDeposit, error) {
	rd, err := scanRecurringDeposit(t.q.QueryRowContext(ctx, `SELECT `+recurringDepositColumns+` FROM recurring_deposits WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return domain.RecurringDeposit{}, notFound(err, "lock recurring deposit")
	}
	return rd, nil
}

func (t *pgTx) UpdateRecurringDeposit(ctx context.Context, rd domain.RecurringDeposit) error {
	const query = `
UPDATE recurring_deposits
SET paid_installments = $2,
    status = $3,
    next_due_date = $4,
    closed_on = $5,
    closure_amount = $6,
    updated_at = NOW()
WHERE id = $1`

	_, err := execRequiredRows(ctx, t.q, query, rd.ID, rd.PaidInstallments, rd.Status, rd.NextDueDate, rd.ClosedOn, nullDecimal(rd.ClosureAmount))
	return err
}

func (t *pgTx) LockRDInstallment(ctx context.Context, rdID int64, number int) (domain.RDInstallment, error) {
	row := t.q.QueryRowContext(ctx, `SELECT `+rdInstallmentColumns+` FROM rd_installments WHERE rd_id = $1 AND number = $2 FOR UPDATE`, rdID, number)
	installment, err := scanRDInstallment(row)
	if err != nil {
		return domain.RDInstallment{}, notFound(err, "lock rd installment")
	}
	return installment, nil
}

func (t *pgTx) UpdateRDInstallment(ctx context.Context, installment domain.RDInstallment) error {
	const query = `
UPDATE rd_installments
SET status = $3,
    penalty = $4,
    paid_on = $5
WHERE rd_id = $1 AND number = $2`

	_, err := execRequiredRows(ctx, t.q, query, installment.RDID, installment.Number, installment.Status, installment.Penalty, installment.PaidOn)
	return err
}

func (t *pgTx) NextDueRDInstallment(ctx context.Context, rdID int64) (*time.Time, error) {
	var due sql.NullTime
	err := t.q.QueryRowContext(ctx, `SELECT MIN(due_date) FROM rd_installments WHERE rd_id = $1 AND status = 'DUE'`, rdID).Scan(&due)
	if err != nil {
		return nil, fmt.Errorf("next due rd installment: %w: %v", commons.ErrPersistence, err)
	}
	return timePtr(due), nil
}
