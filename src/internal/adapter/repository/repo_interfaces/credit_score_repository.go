package repo_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type CreditScoreRepository interface {
	Create(ctx context.Context, score domain.CreditScore) (domain.CreditScore, error)
	Latest(ctx context.Context, userID int64) (domain.CreditScore, error)
	History(ctx context.Context, userID int64, limit int) ([]domain.CreditScore, error)
}

// CreditProfileRepository answers the aggregate questions a credit score is built from.
type CreditProfileRepository interface {
	PaymentHistory(ctx context.Context, userID int64, asOf time.Time) (domain.PaymentHistory, error)
	OverdraftUsage(ctx context.Context, userID int64) (domain.OverdraftUsage, error)
	OldestAccountOpenedOn(ctx context.Context, userID int64) (*time.Time, error)
	DistinctLoanTypes(ctx context.Context, userID int64) (int, error)
	LoanApplicationsSince(ctx context.Context, userID int64, since time.Time) (int, error)
}
