package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type DepositRepository interface {
	CreateFixedDeposit(ctx context.Context, fd domain.FixedDeposit) (domain.FixedDeposit, error)
	GetFixedDeposit(ctx context.Context, id int64) (domain.FixedDeposit, error)
	GetRecurringDeposit(ctx context.Context, id int64) (domain.RecurringDeposit, error)
	ListRDInstallments(ctx context.Context, rdID int64) ([]domain.RDInstallment, error)
	// ListFixedDepositsByUser and ListRecurringDepositsByUser cover every
	// account the user owns, newest first.
	ListFixedDepositsByUser(ctx context.Context, userID int64) ([]domain.FixedDeposit, error)
	ListRecurringDepositsByUser(ctx context.Context, userID int64) ([]domain.RecurringDeposit, error)
	// An empty status lists every deposit, newest first.
	ListFixedDeposits(ctx context.Context, status domain.DepositStatus) ([]domain.FixedDeposit, error)
	ListRecurringDeposits(ctx context.Context, status domain.DepositStatus) ([]domain.RecurringDeposit, error)
	ListMaturedFixedDepositIDs(ctx context.Context, asOf time.Time) ([]int64, error)
	ListMaturedRecurringDepositIDs(ctx context.Context, asOf time.Time) ([]int64, error)
}
