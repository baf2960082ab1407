package service_interfaces

import (
	"context"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type LoanService interface {
	QuoteEMI(ctx context.Context, rawPrincipal string, tenureMonths int) (commons.Response[models.EMIQuoteResponse], error)
	Apply(ctx context.Context, actor domain.Actor, req models.ApplyLoanRequest) (commons.Response[models.LoanResponse], error)
	Approve(ctx context.Context, actor domain.Actor, loanID int64) (commons.Response[models.ScheduleResponse], error)
	Reject(ctx context.Context, actor domain.Actor, loanID int64, reason string) (commons.Response[models.LoanResponse], error)
	Disburse(ctx context.Context, actor domain.Actor, loanID int64) (commons.Response[models.LoanResponse], error)
	MarkDefaulted(ctx context.Context, actor domain.Actor, loanID int64, reason string) (commons.Response[models.LoanResponse], error)
	PayInstallment(ctx context.Context, actor domain.Actor, loanID int64, number int) (commons.Response[models.InstallmentPaymentResponse], error)
	MarkInstallmentOverdue(ctx context.Context, actor domain.Actor, loanID int64, number int, req models.InstallmentActionRequest) (commons.Response[models.InstallmentResponse], error)
	GetLoan(ctx context.Context, actor domain.Actor, loanID int64) (commons.Response[models.LoanResponse], error)
	GetSchedule(ctx context.Context, actor domain.Actor, loanID int64) (commons.Response[models.ScheduleResponse], error)
	ListLoans(ctx context.Context, actor domain.Actor, userID int64) (commons.Response[[]models.LoanResponse], error)
	ListAllLoans(ctx context.Context, actor domain.Actor, status string) (commons.Response[[]models.LoanResponse], error)
	ListOverdueLoans(ctx context.Context, actor domain.Actor) (commons.Response[[]models.LoanResponse], error)
}
