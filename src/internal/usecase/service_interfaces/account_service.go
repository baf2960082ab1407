package service_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type AccountService interface {
	OpenAccount(ctx context.Context, actor domain.Actor, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, actor domain.Actor, accountID int64) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, actor domain.Actor, userID int64) (commons.Response[[]models.AccountResponse], error)
	CheckSufficiency(ctx context.Context, actor domain.Actor, accountID int64, rawAmount string) (commons.Response[models.SufficiencyResponse], error)
	ChangeStatus(ctx context.Context, actor domain.Actor, accountID int64, req models.ChangeStatusRequest) (commons.Response[models.AccountResponse], error)
}
