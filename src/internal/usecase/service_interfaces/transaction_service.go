package service_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type TransactionService interface {
	Deposit(ctx context.Context, actor domain.Actor, req models.CashRequest) (commons.Response[models.TransactionResponse], error)
	Withdraw(ctx context.Context, actor domain.Actor, req models.CashRequest) (commons.Response[models.TransactionResponse], error)
	Transfer(ctx context.Context, actor domain.Actor, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
	Statement(ctx context.Context, actor domain.Actor, accountID int64, limit int, offset int) (commons.Response[models.StatementResponse], error)
	Summary(ctx context.Context, actor domain.Actor, accountID int64) (commons.Response[models.SummaryResponse], error)
}
