package service_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type CreditScoreService interface {
	GetScore(ctx context.Context, actor domain.Actor, userID int64, limit int) (commons.Response[models.CreditScoreHistoryResponse], error)
	RecalculateScore(ctx context.Context, actor domain.Actor, userID int64, req models.RecalculateScoreRequest) (commons.Response[models.CreditScoreResponse], error)
}
