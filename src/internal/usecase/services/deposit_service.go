package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
	"github.com/api-sage/retail-ledger-engine/src/internal/money"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/amortization"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/slabs"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DepositService books fixed and recurring deposits against an account.
// Funding and payout are separate cash movements made by the caller.
type DepositService struct {
	uow      repo_interfaces.UnitOfWork
	deposits repo_interfaces.DepositRepository
	accounts repo_interfaces.AccountRepository
	audit    *AuditService
	fdRates  slabs.Table
	rdRates  slabs.Table
	now      func() time.Time
}

func NewDepositService(
	uow repo_interfaces.UnitOfWork,
	deposits repo_interfaces.DepositRepository,
	accounts repo_interfaces.AccountRepository,
	audit *AuditService,
) *DepositService {
	return &DepositService{
		uow:      uow,
		deposits: deposits,
		accounts: accounts,
		audit:    audit,
		fdRates:  slabs.FixedDeposit,
		rdRates:  slabs.RecurringDeposit,
		now:      time.Now,
	}
}

func (s *DepositService) SetClock(now func() time.Time) {
	s.now = now
}

// ownedActiveAccount loads the account a deposit is booked against and checks
// the actor may use it.
func (s *DepositService) ownedActiveAccount(ctx context.Context, actor domain.Actor, accountID int64) (domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %d: %w", accountID, err)
	}
	if err := requireOwnerOrAdmin(actor, account.UserID); err != nil {
		return domain.Account{}, err
	}
	if account.Status != domain.AccountStatusActive {
		return domain.Account{}, fmt.Errorf("account %s is %s: %w", account.AccountNumber, account.Status, commons.ErrAccountNotActive)
	}
	return account, nil
}

func (s *DepositService) authorizeAccount(ctx context.Context, actor domain.Actor, accountID int64) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("account %d: %w", accountID, err)
	}
	return requireOwnerOrAdmin(actor, account.UserID)
}

func (s *DepositService) OpenFixedDeposit(ctx context.Context, actor domain.Actor, req models.OpenFixedDepositRequest) (commons.Response[models.FixedDepositResponse], error) {
	const op = "deposit service open fixed deposit"
	logger.Info(op+" request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"actorId": actor.ID,
	})
	fields := logger.Fields{"accountId": req.AccountID}

	if err := req.Validate(); err != nil {
		return failure[models.FixedDepositResponse](op, err, fields)
	}
	if err := amortization.ValidateTenure(req.TenureMonths); err != nil {
		return failure[models.FixedDepositResponse](op, err, fields)
	}
	principal, err := money.Parse(req.Principal)
	if err != nil {
		return failure[models.FixedDepositResponse](op, err, fields)
	}
	if err := money.ValidateAmount(principal, money.MinPrincipal); err != nil {
		return failure[models.FixedDepositResponse](op, err, fields)
	}
	if _, err := s.ownedActiveAccount(ctx, actor, req.AccountID); err != nil {
		return failure[models.FixedDepositResponse](op, err, fields)
	}

	mode := domain.PayoutMode(strings.ToUpper(strings.TrimSpace(req.PayoutMode)))
	if mode == "" {
		mode = domain.PayoutAtMaturity
	}
	start := today(s.now)
	rate := s.fdRates.Resolve(principal)

	fd, err := s.deposits.CreateFixedDeposit(ctx, domain.FixedDeposit{
		AccountID:      req.AccountID,
		Principal:      principal,
		Rate:           rate,
		TenureMonths:   req.TenureMonths,
		StartDate:      start,
		MaturityDate:   amortization.AddMonths(start, req.TenureMonths),
		MaturityAmount: amortization.FixedDepositMaturity(principal, rate, req.TenureMonths),
		PayoutMode:     mode,
		Status:         domain.DepositStatusActive,
		CreatedBy:      actor.ID,
	})
	if err != nil {
		return failure[models.FixedDepositResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionFDOpen, map[string]any{
		"fdId":           fd.ID,
		"accountId":      fd.AccountID,
		"principal":      money.Format(fd.Principal),
		"rate":           money.Format(fd.Rate),
		"tenureMonths":   fd.TenureMonths,
		"maturityAmount": money.Format(fd.MaturityAmount),
	})
	logger.Info(op+" success", logger.Fields{"fdId": fd.ID})
	return commons.SuccessResponse("fixed deposit opened", toFixedDepositResponse(fd)), nil
}

// CloseFixedDeposit breaks an ACTIVE deposit before maturity. Matured
// deposits are left to the maturity scan.
func (s *DepositService) CloseFixedDeposit(ctx context.Context, actor domain.Actor, fdID int64) (commons.Response[models.DepositClosureResponse], error) {
	const op = "deposit service close fixed deposit"
	fields := logger.Fields{"fdId": fdID, "actorId": actor.ID}

	current, err := s.deposits.GetFixedDeposit(ctx, fdID)
	if err != nil {
		return failure[models.DepositClosureResponse](op, err, fields)
	}
	if err := s.authorizeAccount(ctx, actor, current.AccountID); err != nil {
		return failure[models.DepositClosureResponse](op, err, fields)
	}

	closeOn := today(s.now)
	var closure amortization.FixedDepositClosure
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		fd, err := tx.LockFixedDeposit(ctx, fdID)
		if err != nil {
			return fmt.Errorf("fixed deposit %d: %w", fdID, err)
		}
		if !fd.Status.CanTransitionTo(domain.DepositStatusPrematureClosed) {
			return commons.ValidationError("fixed deposit %d is %s", fdID, fd.Status)
		}
		if !closeOn.Before(fd.MaturityDate) {
			return commons.ValidationError("fixed deposit %d has matured on %s", fdID, fd.MaturityDate.Format(dateLayout))
		}

		closure = amortization.FixedDepositPrematureClosure(fd.Principal, fd.Rate, fd.MaturityAmount, fd.StartDate, closeOn)
		fd.Status = domain.DepositStatusPrematureClosed
		fd.ClosedOn = &closeOn
		fd.ClosureAmount = &closure.ClosureAmount
		return tx.UpdateFixedDeposit(ctx, fd)
	})
	if err != nil {
		return failure[models.DepositClosureResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionFDPrematureClose, map[string]any{
		"fdId":          fdID,
		"daysHeld":      closure.DaysHeld,
		"appliedRate":   money.Format(closure.AppliedRate),
		"closureAmount": money.Format(closure.ClosureAmount),
		"penalty":       money.Format(closure.Penalty),
	})
	return commons.SuccessResponse("fixed deposit closed", models.DepositClosureResponse{
		ID:             fdID,
		Status:         string(domain.DepositStatusPrematureClosed),
		ClosedOn:       closeOn.Format(dateLayout),
		AppliedRate:    money.Format(closure.AppliedRate),
		ClosureAmount:  money.Format(closure.ClosureAmount),
		InterestEarned: money.Format(closure.InterestEarned),
		Penalty:        money.Format(closure.Penalty),
	}), nil
}

func (s *DepositService) OpenRecurringDeposit(ctx context.Context, actor domain.Actor, req models.OpenRecurringDepositRequest) (commons.Response[models.RecurringDepositScheduleResponse], error) {
	const op = "deposit service open recurring deposit"
	logger.Info(op+" request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"actorId": actor.ID,
	})
	fields := logger.Fields{"accountId": req.AccountID}

	if err := req.Validate(); err != nil {
		return failure[models.RecurringDepositScheduleResponse](op, err, fields)
	}
	if err := amortization.ValidateTenure(req.TenureMonths); err != nil {
		return failure[models.RecurringDepositScheduleResponse](op, err, fields)
	}
	installment, err := money.Parse(req.InstallmentAmount)
	if err != nil {
		return failure[models.RecurringDepositScheduleResponse](op, err, fields)
	}
	if err := money.ValidateAmount(installment, money.MinCashAmount); err != nil {
		return failure[models.RecurringDepositScheduleResponse](op, err, fields)
	}
	if _, err := s.ownedActiveAccount(ctx, actor, req.AccountID); err != nil {
		return failure[models.RecurringDepositScheduleResponse](op, err, fields)
	}

	start := today(s.now)
	rate := s.rdRates.Resolve(installment)
	schedule := amortization.RecurringDepositSchedule(installment, req.TenureMonths, start)
	firstDue := schedule[0].DueDate

	var (
		rd           domain.RecurringDeposit
		installments []domain.RDInstallment
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		var err error
		rd, err = tx.CreateRecurringDeposit(ctx, domain.RecurringDeposit{
			AccountID:         req.AccountID,
			InstallmentAmount: installment,
			TotalInstallments: req.TenureMonths,
			Rate:              rate,
			StartDate:         start,
			MaturityDate:      amortization.AddMonths(start, req.TenureMonths),
			MaturityAmount:    amortization.RecurringDepositMaturity(installment, rate, req.TenureMonths),
			Status:            domain.DepositStatusActive,
			NextDueDate:       &firstDue,
			CreatedBy:         actor.ID,
		})
		if err != nil {
			return err
		}

		installments = make([]domain.RDInstallment, 0, len(schedule))
		for _, row := range schedule {
			installments = append(installments, domain.RDInstallment{
				RDID:    rd.ID,
				Number:  row.Number,
				DueDate: row.DueDate,
				Amount:  row.Amount,
				Status:  domain.RDInstallmentDue,
				Penalty: decimal.Zero,
			})
		}
		return tx.InsertRDInstallments(ctx, installments)
	})
	if err != nil {
		return failure[models.RecurringDepositScheduleResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionRDOpen, map[string]any{
		"rdId":           rd.ID,
		"accountId":      rd.AccountID,
		"installment":    money.Format(rd.InstallmentAmount),
		"rate":           money.Format(rd.Rate),
		"installments":   rd.TotalInstallments,
		"maturityAmount": money.Format(rd.MaturityAmount),
	})
	logger.Info(op+" success", logger.Fields{"rdId": rd.ID})
	return commons.SuccessResponse("recurring deposit opened", toRecurringDepositSchedule(rd, installments)), nil
}

func (s *DepositService) PayRDInstallment(ctx context.Context, actor domain.Actor, rdID int64, number int) (commons.Response[models.RDInstallmentPaymentResponse], error) {
	const op = "deposit service pay rd installment"
	fields := logger.Fields{"rdId": rdID, "installment": number, "actorId": actor.ID}

	current, err := s.deposits.GetRecurringDeposit(ctx, rdID)
	if err != nil {
		return failure[models.RDInstallmentPaymentResponse](op, err, fields)
	}
	if err := s.authorizeAccount(ctx, actor, current.AccountID); err != nil {
		return failure[models.RDInstallmentPaymentResponse](op, err, fields)
	}

	paidOn := today(s.now)
	var (
		rd          domain.RecurringDeposit
		installment domain.RDInstallment
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		var err error
		rd, err = tx.LockRecurringDeposit(ctx, rdID)
		if err != nil {
			return fmt.Errorf("recurring deposit %d: %w", rdID, err)
		}
		if rd.Status != domain.DepositStatusActive {
			return commons.ValidationError("recurring deposit %d is %s", rdID, rd.Status)
		}

		installment, err = tx.LockRDInstallment(ctx, rdID, number)
		if err != nil {
			return fmt.Errorf("installment %d of recurring deposit %d: %w", number, rdID, err)
		}
		if installment.Status == domain.RDInstallmentPaid {
			return commons.ValidationError("installment %d of recurring deposit %d is already PAID", number, rdID)
		}

		installment.Status = domain.RDInstallmentPaid
		installment.PaidOn = &paidOn
		if err := tx.UpdateRDInstallment(ctx, installment); err != nil {
			return err
		}

		rd.PaidInstallments++
		rd.NextDueDate, err = tx.NextDueRDInstallment(ctx, rdID)
		if err != nil {
			return err
		}
		return tx.UpdateRecurringDeposit(ctx, rd)
	})
	if err != nil {
		return failure[models.RDInstallmentPaymentResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionRDInstallment, map[string]any{
		"rdId":        rdID,
		"installment": number,
		"amount":      money.Format(installment.Amount),
		"paid":        rd.PaidInstallments,
	})
	return commons.SuccessResponse("installment paid", models.RDInstallmentPaymentResponse{
		Deposit:     toRecurringDepositResponse(rd),
		Installment: toRDInstallmentResponse(installment),
	}), nil
}

func (s *DepositService) MarkRDInstallmentMissed(ctx context.Context, actor domain.Actor, rdID int64, number int, req models.InstallmentActionRequest) (commons.Response[models.RDInstallmentResponse], error) {
	const op = "deposit service mark rd installment missed"
	fields := logger.Fields{"rdId": rdID, "installment": number, "actorId": actor.ID}

	if err := requireAdmin(actor, "mark installments missed"); err != nil {
		return failure[models.RDInstallmentResponse](op, err, fields)
	}
	penalty, err := parsePenalty(req)
	if err != nil {
		return failure[models.RDInstallmentResponse](op, err, fields)
	}

	var installment domain.RDInstallment
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		rd, err := tx.LockRecurringDeposit(ctx, rdID)
		if err != nil {
			return fmt.Errorf("recurring deposit %d: %w", rdID, err)
		}
		if rd.Status != domain.DepositStatusActive {
			return commons.ValidationError("recurring deposit %d is %s", rdID, rd.Status)
		}

		installment, err = tx.LockRDInstallment(ctx, rdID, number)
		if err != nil {
			return fmt.Errorf("installment %d of recurring deposit %d: %w", number, rdID, err)
		}
		if installment.Status != domain.RDInstallmentDue {
			return commons.ValidationError("installment %d of recurring deposit %d is %s, only DUE installments can be missed", number, rdID, installment.Status)
		}

		installment.Status = domain.RDInstallmentMissed
		installment.Penalty = penalty
		return tx.UpdateRDInstallment(ctx, installment)
	})
	if err != nil {
		return failure[models.RDInstallmentResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionRDMissed, map[string]any{
		"rdId":        rdID,
		"installment": number,
		"penalty":     money.Format(penalty),
	})
	return commons.SuccessResponse("installment marked missed", toRDInstallmentResponse(installment)), nil
}

// CloseRecurringDeposit breaks an ACTIVE deposit before maturity and pays out
// on the installments actually made.
func (s *DepositService) CloseRecurringDeposit(ctx context.Context, actor domain.Actor, rdID int64) (commons.Response[models.DepositClosureResponse], error) {
	const op = "deposit service close recurring deposit"
	fields := logger.Fields{"rdId": rdID, "actorId": actor.ID}

	current, err := s.deposits.GetRecurringDeposit(ctx, rdID)
	if err != nil {
		return failure[models.DepositClosureResponse](op, err, fields)
	}
	if err := s.authorizeAccount(ctx, actor, current.AccountID); err != nil {
		return failure[models.DepositClosureResponse](op, err, fields)
	}

	closeOn := today(s.now)
	var closure amortization.RecurringDepositClosure
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		rd, err := tx.LockRecurringDeposit(ctx, rdID)
		if err != nil {
			return fmt.Errorf("recurring deposit %d: %w", rdID, err)
		}
		if !rd.Status.CanTransitionTo(domain.DepositStatusPrematureClosed) {
			return commons.ValidationError("recurring deposit %d is %s", rdID, rd.Status)
		}
		if !closeOn.Before(rd.MaturityDate) {
			return commons.ValidationError("recurring deposit %d has matured on %s", rdID, rd.MaturityDate.Format(dateLayout))
		}

		closure = amortization.RecurringDepositPrematureClosure(rd.InstallmentAmount, rd.Rate, rd.PaidInstallments)
		rd.Status = domain.DepositStatusPrematureClosed
		rd.ClosedOn = &closeOn
		rd.ClosureAmount = &closure.ClosureAmount
		rd.NextDueDate = nil
		return tx.UpdateRecurringDeposit(ctx, rd)
	})
	if err != nil {
		return failure[models.DepositClosureResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionRDPrematureClose, map[string]any{
		"rdId":          rdID,
		"paid":          closure.PaidInstallments,
		"deposited":     money.Format(closure.TotalDeposited),
		"appliedRate":   money.Format(closure.AppliedRate),
		"closureAmount": money.Format(closure.ClosureAmount),
		"penalty":       money.Format(closure.Penalty),
	})
	return commons.SuccessResponse("recurring deposit closed", models.DepositClosureResponse{
		ID:             rdID,
		Status:         string(domain.DepositStatusPrematureClosed),
		ClosedOn:       closeOn.Format(dateLayout),
		AppliedRate:    money.Format(closure.AppliedRate),
		ClosureAmount:  money.Format(closure.ClosureAmount),
		InterestEarned: money.Format(closure.InterestEarned),
		Penalty:        money.Format(closure.Penalty),
	}), nil
}

func (s *DepositService) GetFixedDeposit(ctx context.Context, actor domain.Actor, fdID int64) (commons.Response[models.FixedDepositResponse], error) {
	fields := logger.Fields{"fdId": fdID}

	fd, err := s.deposits.GetFixedDeposit(ctx, fdID)
	if err != nil {
		return failure[models.FixedDepositResponse]("deposit service get fixed deposit", err, fields)
	}
	if err := s.authorizeAccount(ctx, actor, fd.AccountID); err != nil {
		return failure[models.FixedDepositResponse]("deposit service get fixed deposit", err, fields)
	}
	return commons.SuccessResponse("fixed deposit fetched successfully", toFixedDepositResponse(fd)), nil
}

func (s *DepositService) GetRecurringDeposit(ctx context.Context, actor domain.Actor, rdID int64) (commons.Response[models.RecurringDepositScheduleResponse], error) {
	fields := logger.Fields{"rdId": rdID}

	rd, err := s.deposits.GetRecurringDeposit(ctx, rdID)
	if err != nil {
		return failure[models.RecurringDepositScheduleResponse]("deposit service get recurring deposit", err, fields)
	}
	if err := s.authorizeAccount(ctx, actor, rd.AccountID); err != nil {
		return failure[models.RecurringDepositScheduleResponse]("deposit service get recurring deposit", err, fields)
	}

	installments, err := s.deposits.ListRDInstallments(ctx, rdID)
	if err != nil {
		return failure[models.RecurringDepositScheduleResponse]("deposit service get recurring deposit", err, fields)
	}
	return commons.SuccessResponse("recurring deposit fetched successfully", toRecurringDepositSchedule(rd, installments)), nil
}

func (s *DepositService) ListFixedDeposits(ctx context.Context, actor domain.Actor, userID int64) (commons.Response[[]models.FixedDepositResponse], error) {
	const op = "deposit service list fixed deposits"
	fields := logger.Fields{"userId": userID}
	if err := requireOwnerOrAdmin(actor, userID); err != nil {
		return failure[[]models.FixedDepositResponse](op, err, fields)
	}

	deposits, err := s.deposits.ListFixedDepositsByUser(ctx, userID)
	if err != nil {
		return failure[[]models.FixedDepositResponse](op, err, fields)
	}
	return commons.SuccessResponse("fixed deposits fetched successfully", toFixedDepositResponses(deposits)), nil
}

func (s *DepositService) ListRecurringDeposits(ctx context.Context, actor domain.Actor, userID int64) (commons.Response[[]models.RecurringDepositResponse], error) {
	const op = "deposit service list recurring deposits"
	fields := logger.Fields{"userId": userID}
	if err := requireOwnerOrAdmin(actor, userID); err != nil {
		return failure[[]models.RecurringDepositResponse](op, err, fields)
	}

	deposits, err := s.deposits.ListRecurringDepositsByUser(ctx, userID)
	if err != nil {
		return failure[[]models.RecurringDepositResponse](op, err, fields)
	}
	return commons.SuccessResponse("recurring deposits fetched successfully", toRecurringDepositResponses(deposits)), nil
}

// ListAllFixedDeposits is the admin view across every user. An empty status
// lists all of them.
func (s *DepositService) ListAllFixedDeposits(ctx context.Context, actor domain.Actor, status string) (commons.Response[[]models.FixedDepositResponse], error) {
	const op = "deposit service list all fixed deposits"
	fields := logger.Fields{"status": status}
	filter, err := depositStatusFilter(actor, "list all fixed deposits", status)
	if err != nil {
		return failure[[]models.FixedDepositResponse](op, err, fields)
	}

	deposits, err := s.deposits.ListFixedDeposits(ctx, filter)
	if err != nil {
		return failure[[]models.FixedDepositResponse](op, err, fields)
	}
	return commons.SuccessResponse("fixed deposits fetched successfully", toFixedDepositResponses(deposits)), nil
}

func (s *DepositService) ListAllRecurringDeposits(ctx context.Context, actor domain.Actor, status string) (commons.Response[[]models.RecurringDepositResponse], error) {
	const op = "deposit service list all recurring deposits"
	fields := logger.Fields{"status": status}
	filter, err := depositStatusFilter(actor, "list all recurring deposits", status)
	if err != nil {
		return failure[[]models.RecurringDepositResponse](op, err, fields)
	}

	deposits, err := s.deposits.ListRecurringDeposits(ctx, filter)
	if err != nil {
		return failure[[]models.RecurringDepositResponse](op, err, fields)
	}
	return commons.SuccessResponse("recurring deposits fetched successfully", toRecurringDepositResponses(deposits)), nil
}

func depositStatusFilter(actor domain.Actor, action string, status string) (domain.DepositStatus, error) {
	if err := requireAdmin(actor, action); err != nil {
		return "", err
	}
	filter := domain.DepositStatus(strings.ToUpper(strings.TrimSpace(status)))
	if filter != "" && !filter.Valid() {
		return "", commons.ValidationError("unknown deposit status %q", status)
	}
	return filter, nil
}

func toRecurringDepositSchedule(rd domain.RecurringDeposit, installments []domain.RDInstallment) models.RecurringDepositScheduleResponse {
	out := models.RecurringDepositScheduleResponse{
		Deposit:      toRecurringDepositResponse(rd),
		Installments: make([]models.RDInstallmentResponse, 0, len(installments)),
	}
	for _, i := range installments {
		out.Installments = append(out.Installments, toRDInstallmentResponse(i))
	}
	return out
}

// ProcessMaturities closes every ACTIVE deposit whose maturity date is on or
// before asOf. Deposits already closed are skipped, so rerunning a scan for
// the same day changes nothing.
func (s *DepositService) ProcessMaturities(ctx context.Context, asOf time.Time) (models.MaturityScanResponse, error) {
	asOf = amortization.DateOf(asOf)
	result := models.MaturityScanResponse{
		AsOf:                    asOf.Format(dateLayout),
		FixedDepositsClosed:     []int64{},
		RecurringDepositsClosed: []int64{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := s.deposits.ListMaturedFixedDepositIDs(gctx, asOf)
		if err != nil {
			return fmt.Errorf("list matured fixed deposits: %w", err)
		}
		for _, id := range ids {
			closed, err := s.matureFixedDeposit(gctx, id, asOf)
			if err != nil {
				return err
			}
			if closed {
				result.FixedDepositsClosed = append(result.FixedDepositsClosed, id)
			}
		}
		return nil
	})
	g.Go(func() error {
		ids, err := s.deposits.ListMaturedRecurringDepositIDs(gctx, asOf)
		if err != nil {
			return fmt.Errorf("list matured recurring deposits: %w", err)
		}
		for _, id := range ids {
			closed, err := s.matureRecurringDeposit(gctx, id, asOf)
			if err != nil {
				return err
			}
			if closed {
				result.RecurringDepositsClosed = append(result.RecurringDepositsClosed, id)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("deposit service maturity scan failed", err, logger.Fields{"asOf": result.AsOf})
		return result, err
	}

	logger.Info("deposit service maturity scan complete", logger.Fields{
		"asOf":                    result.AsOf,
		"fixedDepositsClosed":     len(result.FixedDepositsClosed),
		"recurringDepositsClosed": len(result.RecurringDepositsClosed),
	})
	return result, nil
}

func (s *DepositService) matureFixedDeposit(ctx context.Context, id int64, asOf time.Time) (bool, error) {
	closed := false
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		fd, err := tx.LockFixedDeposit(ctx, id)
		if err != nil {
			return fmt.Errorf("fixed deposit %d: %w", id, err)
		}
		if fd.Status != domain.DepositStatusActive || fd.MaturityDate.After(asOf) {
			return nil
		}
		amount := fd.MaturityAmount
		fd.Status = domain.DepositStatusClosed
		fd.ClosedOn = &asOf
		fd.ClosureAmount = &amount
		closed = true
		return tx.UpdateFixedDeposit(ctx, fd)
	})
	return closed, err
}

// matureRecurringDeposit pays out on the installments actually made, at the
// contracted rate.
func (s *DepositService) matureRecurringDeposit(ctx context.Context, id int64, asOf time.Time) (bool, error) {
	closed := false
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		rd, err := tx.LockRecurringDeposit(ctx, id)
		if err != nil {
			return fmt.Errorf("recurring deposit %d: %w", id, err)
		}
		if rd.Status != domain.DepositStatusActive || rd.MaturityDate.After(asOf) {
			return nil
		}
		amount := amortization.RecurringDepositMaturity(rd.InstallmentAmount, rd.Rate, rd.PaidInstallments)
		rd.Status = domain.DepositStatusClosed
		rd.ClosedOn = &asOf
		rd.ClosureAmount = &amount
		rd.NextDueDate = nil
		closed = true
		return tx.UpdateRecurringDeposit(ctx, rd)
	})
	return closed, err
}

// RunMaturityScan runs ProcessMaturities every interval until ctx is done.
func (s *DepositService) RunMaturityScan(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("deposit service maturity scan stopped", logger.Fields{})
			return
		case <-ticker.C:
			if _, err := s.ProcessMaturities(ctx, s.now()); err != nil && ctx.Err() == nil {
				logger.Error("deposit service scheduled maturity scan failed", err, logger.Fields{})
			}
		}
	}
}

func (s *DepositService) ScanMaturities(ctx context.Context, actor domain.Actor) (commons.Response[models.MaturityScanResponse], error) {
	const op = "deposit service scan maturities"
	fields := logger.Fields{"actorId": actor.ID}

	if err := requireAdmin(actor, "run the maturity scan"); err != nil {
		return failure[models.MaturityScanResponse](op, err, fields)
	}
	result, err := s.ProcessMaturities(ctx, s.now())
	if err != nil {
		return failure[models.MaturityScanResponse](op, err, fields)
	}
	return commons.SuccessResponse("maturity scan complete", result), nil
}
