package service_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type DepositService interface {
	OpenFixedDeposit(ctx context.Context, actor domain.Actor, req models.OpenFixedDepositRequest) (commons.Response[models.FixedDepositResponse], error)
	CloseFixedDeposit(ctx context.Context, actor domain.Actor, fdID int64) (commons.Response[models.DepositClosureResponse], error)
	GetFixedDeposit(ctx context.Context, actor domain.Actor, fdID int64) (commons.Response[models.FixedDepositResponse], error)
	OpenRecurringDeposit(ctx context.Context, actor domain.Actor, req models.OpenRecurringDepositRequest) (commons.Response[models.RecurringDepositScheduleResponse], error)
	PayRDInstallment(ctx context.Context, actor domain.Actor, rdID int64, number int) (commons.Response[models.RDInstallmentPaymentResponse], error)
	MarkRDInstallmentMissed(ctx context.Context, actor domain.Actor, rdID int64, number int, req models.InstallmentActionRequest) (commons.Response[models.RDInstallmentResponse], error)
	CloseRecurringDeposit(ctx context.Context, actor domain.Actor, rdID int64) (commons.Response[models.DepositClosureResponse], error)
	GetRecurringDeposit(ctx context.Context, actor domain.Actor, rdID int64) (commons.Response[models.RecurringDepositScheduleResponse], error)
	ListFixedDeposits(ctx context.Context, actor domain.Actor, userID int64) (commons.Response[[]models.FixedDepositResponse], error)
	ListRecurringDeposits(ctx context.Context, actor domain.Actor, userID int64) (commons.Response[[]models.RecurringDepositResponse], error)
	ListAllFixedDeposits(ctx context.Context, actor domain.Actor, status string) (commons.Response[[]models.FixedDepositResponse], error)
	ListAllRecurringDeposits(ctx context.Context, actor domain.Actor, status string) (commons.Response[[]models.RecurringDepositResponse], error)
	ScanMaturities(ctx context.Context, actor domain.Actor) (commons.Response[models.MaturityScanResponse], error)
}
