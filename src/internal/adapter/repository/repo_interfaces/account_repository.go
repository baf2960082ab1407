package repo_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Account, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Account, error)
}
