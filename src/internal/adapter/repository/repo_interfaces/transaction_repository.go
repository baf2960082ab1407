package repo_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type TransactionRepository interface {
	// ListByAccount pages records newest first.
	ListByAccount(ctx context.Context, accountID int64, limit int, offset int) ([]domain.Transaction, error)
	// ListAllByAccount returns every record oldest first.
	ListAllByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	GetByReference(ctx context.Context, reference string) (domain.Transaction, error)
}
