package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type LoanRepository interface {
	Create(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	GetByID(ctx context.Context, id int64) (domain.Loan, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Loan, error)
	ListInstallments(ctx context.Context, loanID int64) ([]domain.LoanInstallment, error)
	// ListByStatus lists loans newest first; an empty status lists all.
	ListByStatus(ctx context.Context, status domain.LoanStatus) ([]domain.Loan, error)
	// ListOverdue returns ACTIVE loans holding an OVERDUE installment or a
	// DUE one dated before asOf.
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Loan, error)
}
