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
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/creditscore"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/slabs"
	"github.com/shopspring/decimal"
)

type LoanService struct {
	uow      repo_interfaces.UnitOfWork
	loans    repo_interfaces.LoanRepository
	accounts repo_interfaces.AccountRepository
	credit   *CreditScoreService
	audit    *AuditService
	rates    slabs.Table
	now      func() time.Time
}

func NewLoanService(
	uow repo_interfaces.UnitOfWork,
	loans repo_interfaces.LoanRepository,
	accounts repo_interfaces.AccountRepository,
	credit *CreditScoreService,
	audit *AuditService,
) *LoanService {
	return &LoanService{
		uow:      uow,
		loans:    loans,
		accounts: accounts,
		credit:   credit,
		audit:    audit,
		rates:    slabs.Loan,
		now:      time.Now,
	}
}

func (s *LoanService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *LoanService) QuoteEMI(_ context.Context, rawPrincipal string, tenureMonths int) (commons.Response[models.EMIQuoteResponse], error) {
	fields := logger.Fields{"principal": rawPrincipal, "tenureMonths": tenureMonths}

	principal, err := money.Parse(rawPrincipal)
	if err != nil {
		return failure[models.EMIQuoteResponse]("loan service quote", err, fields)
	}
	quote, err := amortization.QuoteLoan(principal, tenureMonths, s.rates)
	if err != nil {
		return failure[models.EMIQuoteResponse]("loan service quote", err, fields)
	}
	return commons.SuccessResponse("emi calculated", toQuoteResponse(quote)), nil
}

// Apply prices the loan from the slab table and files it for approval.
// Applicants with a non-zero score under the eligibility floor are refused.
func (s *LoanService) Apply(ctx context.Context, actor domain.Actor, req models.ApplyLoanRequest) (commons.Response[models.LoanResponse], error) {
	const op = "loan service apply"
	logger.Info(op+" request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"actorId": actor.ID,
	})
	fields := logger.Fields{"userId": req.UserID, "accountId": req.AccountID}

	if err := requireOwnerOrAdmin(actor, req.UserID); err != nil {
		return failure[models.LoanResponse](op, err, fields)
	}
	if err := req.Validate(); err != nil {
		return failure[models.LoanResponse](op, err, fields)
	}

	account, err := s.accounts.GetByID(ctx, req.AccountID)
	if err != nil {
		return failure[models.LoanResponse](op, fmt.Errorf("account %d: %w", req.AccountID, err), fields)
	}
	if account.UserID != req.UserID {
		return failure[models.LoanResponse](op, commons.ValidationError("account %d does not belong to user %d", account.ID, req.UserID), fields)
	}
	if account.Status != domain.AccountStatusActive {
		return failure[models.LoanResponse](op, fmt.Errorf("account %s is %s: %w", account.AccountNumber, account.Status, commons.ErrAccountNotActive), fields)
	}

	principal, err := money.Parse(req.Principal)
	if err != nil {
		return failure[models.LoanResponse](op, err, fields)
	}
	quote, err := amortization.QuoteLoan(principal, req.TenureMonths, s.rates)
	if err != nil {
		return failure[models.LoanResponse](op, err, fields)
	}

	score, err := s.credit.CurrentScore(ctx, req.UserID)
	if err != nil {
		return failure[models.LoanResponse](op, err, fields)
	}
	if err := creditscore.CheckLoanEligibility(score, principal); err != nil {
		return failure[models.LoanResponse](op, err, fields)
	}

	loan, err := s.loans.Create(ctx, domain.Loan{
		UserID:             req.UserID,
		AccountID:          account.ID,
		LoanType:           domain.LoanTypePersonal,
		Principal:          quote.Principal,
		AnnualRate:         quote.AnnualRate,
		TenureMonths:       quote.TenureMonths,
		EMI:                quote.EMI,
		TotalInterest:      quote.TotalInterest,
		RemainingPrincipal: quote.Principal,
		Status:             domain.LoanStatusPendingApproval,
		Reference:          newReference(prefixLoan, s.now()),
		CreatedBy:          actor.ID,
	})
	if err != nil {
		return failure[models.LoanResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionLoanApply, map[string]any{
		"loanId":       loan.ID,
		"reference":    loan.Reference,
		"principal":    money.Format(loan.Principal),
		"rate":         money.Format(loan.AnnualRate),
		"tenureMonths": loan.TenureMonths,
		"creditScore":  score,
	})
	logger.Info(op+" success", logger.Fields{"loanId": loan.ID, "reference": loan.Reference})
	return commons.SuccessResponse("loan application submitted", toLoanResponse(loan)), nil
}

// Approve sanctions a pending loan and writes its full schedule in the same
// transaction. Due dates run from the sanction date and are not moved by
// disbursement.
func (s *LoanService) Approve(ctx context.Context, actor domain.Actor, loanID int64) (commons.Response[models.ScheduleResponse], error) {
	const op = "loan service approve"
	fields := logger.Fields{"loanId": loanID, "actorId": actor.ID}

	if err := requireAdmin(actor, "approve loans"); err != nil {
		return failure[models.ScheduleResponse](op, err, fields)
	}

	sanctioned := today(s.now)
	var (
		loan         domain.Loan
		installments []domain.LoanInstallment
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		var err error
		loan, err = lockLoanFor(ctx, tx, loanID, domain.LoanStatusApproved)
		if err != nil {
			return err
		}

		schedule, err := amortization.GenerateSchedule(loan.Principal, loan.EMI, loan.AnnualRate, loan.TenureMonths, sanctioned)
		if err != nil {
			return err
		}
		installments = make([]domain.LoanInstallment, 0, len(schedule))
		for _, row := range schedule {
			installments = append(installments, domain.LoanInstallment{
				LoanID:    loan.ID,
				Number:    row.Number,
				DueDate:   row.DueDate,
				Principal: row.Principal,
				Interest:  row.Interest,
				Total:     row.Total,
				Status:    domain.InstallmentDue,
				Penalty:   decimal.Zero,
			})
		}
		if err := tx.InsertLoanInstallments(ctx, installments); err != nil {
			return err
		}

		loan.Status = domain.LoanStatusApproved
		loan.SanctionedOn = &sanctioned
		return tx.UpdateLoan(ctx, loan)
	})
	if err != nil {
		return failure[models.ScheduleResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionLoanApprove, map[string]any{
		"loanId":       loan.ID,
		"reference":    loan.Reference,
		"sanctionedOn": sanctioned.Format(dateLayout),
		"installments": len(installments),
	})
	return commons.SuccessResponse("loan approved", models.ScheduleResponse{
		Loan:         toLoanResponse(loan),
		Installments: toInstallmentResponses(installments),
	}), nil
}

func (s *LoanService) Reject(ctx context.Context, actor domain.Actor, loanID int64, reason string) (commons.Response[models.LoanResponse], error) {
	return s.transition(ctx, actor, loanID, domain.LoanStatusRejected, domain.ActionLoanReject, "reject loans", reason)
}

func (s *LoanService) Disburse(ctx context.Context, actor domain.Actor, loanID int64) (commons.Response[models.LoanResponse], error) {
	return s.transition(ctx, actor, loanID, domain.LoanStatusActive, domain.ActionLoanDisburse, "disburse loans", "")
}

func (s *LoanService) MarkDefaulted(ctx context.Context, actor domain.Actor, loanID int64, reason string) (commons.Response[models.LoanResponse], error) {
	return s.transition(ctx, actor, loanID, domain.LoanStatusDefaulted, domain.ActionLoanDefault, "mark loans defaulted", reason)
}

func (s *LoanService) transition(ctx context.Context, actor domain.Actor, loanID int64, next domain.LoanStatus, action string, what string, reason string) (commons.Response[models.LoanResponse], error) {
	op := "loan service " + strings.ToLower(string(next))
	fields := logger.Fields{"loanId": loanID, "actorId": actor.ID}

	if err := requireAdmin(actor, what); err != nil {
		return failure[models.LoanResponse](op, err, fields)
	}

	var (
		loan     domain.Loan
		previous domain.LoanStatus
	)
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		var err error
		loan, err = lockLoanFor(ctx, tx, loanID, next)
		if err != nil {
			return err
		}
		previous = loan.Status
		loan.Status = next
		if next == domain.LoanStatusActive {
			disbursed := today(s.now)
			loan.DisbursedOn = &disbursed
		}
		return tx.UpdateLoan(ctx, loan)
	})
	if err != nil {
		return failure[models.LoanResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, action, map[string]any{
		"loanId":    loan.ID,
		"reference": loan.Reference,
		"from":      string(previous),
		"to":        string(next),
		"reason":    strings.TrimSpace(reason),
	})
	return commons.SuccessResponse("loan status updated", toLoanResponse(loan)), nil
}

func lockLoanFor(ctx context.Context, tx repo_interfaces.LoanTx, loanID int64, next domain.LoanStatus) (domain.Loan, error) {
	loan, err := tx.LockLoan(ctx, loanID)
	if err != nil {
		return domain.Loan{}, fmt.Errorf("loan %d: %w", loanID, err)
	}
	if !loan.Status.CanTransitionTo(next) {
		return domain.Loan{}, commons.ValidationError("loan %d cannot move from %s to %s", loanID, loan.Status, next)
	}
	return loan, nil
}

// PayInstallment settles one installment of an ACTIVE loan and reduces the
// remaining principal by its principal component. The loan closes once
// nothing remains.
func (s *LoanService) PayInstallment(ctx context.Context, actor domain.Actor, loanID int64, number int) (commons.Response[models.InstallmentPaymentResponse], error) {
	const op = "loan service pay installment"
	fields := logger.Fields{"loanId": loanID, "installment": number, "actorId": actor.ID}

	current, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return failure[models.InstallmentPaymentResponse](op, err, fields)
	}
	if err := requireOwnerOrAdmin(actor, current.UserID); err != nil {
		return failure[models.InstallmentPaymentResponse](op, err, fields)
	}

	paidOn := today(s.now)
	var (
		loan        domain.Loan
		installment domain.LoanInstallment
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		var err error
		loan, err = tx.LockLoan(ctx, loanID)
		if err != nil {
			return fmt.Errorf("loan %d: %w", loanID, err)
		}
		if loan.Status != domain.LoanStatusActive {
			return commons.ValidationError("loan %d is %s, only ACTIVE loans accept payments", loanID, loan.Status)
		}

		installment, err = tx.LockLoanInstallment(ctx, loanID, number)
		if err != nil {
			return fmt.Errorf("installment %d of loan %d: %w", number, loanID, err)
		}
		if installment.Status != domain.InstallmentDue && installment.Status != domain.InstallmentOverdue {
			return commons.ValidationError("installment %d of loan %d is already %s", number, loanID, installment.Status)
		}

		installment.Status = domain.InstallmentPaid
		installment.PaidOn = &paidOn
		if err := tx.UpdateLoanInstallment(ctx, installment); err != nil {
			return err
		}

		loan.RemainingPrincipal = loan.RemainingPrincipal.Sub(installment.Principal)
		if !loan.RemainingPrincipal.IsPositive() {
			loan.RemainingPrincipal = decimal.Zero
			loan.Status = domain.LoanStatusClosed
		}
		return tx.UpdateLoan(ctx, loan)
	})
	if err != nil {
		return failure[models.InstallmentPaymentResponse](op, err, fields)
	}

	if _, _, err := s.credit.Recalculate(ctx, loan.UserID, "EMI payment"); err != nil {
		logger.Error("loan service credit score refresh failed", err, fields)
	}
	s.audit.Record(ctx, actor, domain.ActionLoanEMIPaid, map[string]any{
		"loanId":             loan.ID,
		"installment":        number,
		"amount":             money.Format(installment.Total),
		"remainingPrincipal": money.Format(loan.RemainingPrincipal),
		"loanStatus":         string(loan.Status),
	})
	return commons.SuccessResponse("installment paid", models.InstallmentPaymentResponse{
		Loan:        toLoanResponse(loan),
		Installment: toInstallmentResponse(installment),
	}), nil
}

func (s *LoanService) MarkInstallmentOverdue(ctx context.Context, actor domain.Actor, loanID int64, number int, req models.InstallmentActionRequest) (commons.Response[models.InstallmentResponse], error) {
	const op = "loan service mark installment overdue"
	fields := logger.Fields{"loanId": loanID, "installment": number, "actorId": actor.ID}

	if err := requireAdmin(actor, "mark installments overdue"); err != nil {
		return failure[models.InstallmentResponse](op, err, fields)
	}
	penalty, err := parsePenalty(req)
	if err != nil {
		return failure[models.InstallmentResponse](op, err, fields)
	}

	var installment domain.LoanInstallment
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		loan, err := tx.LockLoan(ctx, loanID)
		if err != nil {
			return fmt.Errorf("loan %d: %w", loanID, err)
		}
		if loan.Status != domain.LoanStatusActive {
			return commons.ValidationError("loan %d is %s, only ACTIVE loans have overdue installments", loanID, loan.Status)
		}

		installment, err = tx.LockLoanInstallment(ctx, loanID, number)
		if err != nil {
			return fmt.Errorf("installment %d of loan %d: %w", number, loanID, err)
		}
		if installment.Status != domain.InstallmentDue {
			return commons.ValidationError("installment %d of loan %d is %s, only DUE installments can become overdue", number, loanID, installment.Status)
		}

		installment.Status = domain.InstallmentOverdue
		installment.Penalty = penalty
		return tx.UpdateLoanInstallment(ctx, installment)
	})
	if err != nil {
		return failure[models.InstallmentResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionLoanEMIOverdue, map[string]any{
		"loanId":      loanID,
		"installment": number,
		"penalty":     money.Format(penalty),
	})
	return commons.SuccessResponse("installment marked overdue", toInstallmentResponse(installment)), nil
}

func parsePenalty(req models.InstallmentActionRequest) (decimal.Decimal, error) {
	if err := req.Validate(); err != nil {
		return decimal.Zero, err
	}
	if strings.TrimSpace(req.Penalty) == "" {
		return decimal.Zero, nil
	}
	penalty, err := money.Parse(req.Penalty)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Round(penalty), nil
}

func (s *LoanService) GetLoan(ctx context.Context, actor domain.Actor, loanID int64) (commons.Response[models.LoanResponse], error) {
	fields := logger.Fields{"loanId": loanID}

	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return failure[models.LoanResponse]("loan service get loan", err, fields)
	}
	if err := requireOwnerOrAdmin(actor, loan.UserID); err != nil {
		return failure[models.LoanResponse]("loan service get loan", err, fields)
	}
	return commons.SuccessResponse("loan fetched successfully", toLoanResponse(loan)), nil
}

func (s *LoanService) GetSchedule(ctx context.Context, actor domain.Actor, loanID int64) (commons.Response[models.ScheduleResponse], error) {
	fields := logger.Fields{"loanId": loanID}

	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		return failure[models.ScheduleResponse]("loan service get schedule", err, fields)
	}
	if err := requireOwnerOrAdmin(actor, loan.UserID); err != nil {
		return failure[models.ScheduleResponse]("loan service get schedule", err, fields)
	}

	installments, err := s.loans.ListInstallments(ctx, loanID)
	if err != nil {
		return failure[models.ScheduleResponse]("loan service get schedule", err, fields)
	}
	return commons.SuccessResponse("schedule fetched successfully", models.ScheduleResponse{
		Loan:         toLoanResponse(loan),
		Installments: toInstallmentResponses(installments),
	}), nil
}

func (s *LoanService) ListLoans(ctx context.Context, actor domain.Actor, userID int64) (commons.Response[[]models.LoanResponse], error) {
	fields := logger.Fields{"userId": userID}
	if err := requireOwnerOrAdmin(actor, userID); err != nil {
		return failure[[]models.LoanResponse]("loan service list loans", err, fields)
	}

	loans, err := s.loans.ListByUser(ctx, userID)
	if err != nil {
		return failure[[]models.LoanResponse]("loan service list loans", err, fields)
	}

	return commons.SuccessResponse("loans fetched successfully", toLoanResponses(loans)), nil
}

// ListAllLoans lists every loan newest first, optionally narrowed to one
// status.
func (s *LoanService) ListAllLoans(ctx context.Context, actor domain.Actor, status string) (commons.Response[[]models.LoanResponse], error) {
	const op = "loan service list all loans"
	fields := logger.Fields{"status": status}
	if err := requireAdmin(actor, "list all loans"); err != nil {
		return failure[[]models.LoanResponse](op, err, fields)
	}
	filter := domain.LoanStatus(strings.ToUpper(strings.TrimSpace(status)))
	if filter != "" && !filter.Valid() {
		return failure[[]models.LoanResponse](op, commons.ValidationError("unknown loan status %q", status), fields)
	}

	loans, err := s.loans.ListByStatus(ctx, filter)
	if err != nil {
		return failure[[]models.LoanResponse](op, err, fields)
	}
	return commons.SuccessResponse("loans fetched successfully", toLoanResponses(loans)), nil
}

// ListOverdueLoans lists ACTIVE loans with an installment past its due date
// as of today.
func (s *LoanService) ListOverdueLoans(ctx context.Context, actor domain.Actor) (commons.Response[[]models.LoanResponse], error) {
	const op = "loan service list overdue loans"
	if err := requireAdmin(actor, "list overdue loans"); err != nil {
		return failure[[]models.LoanResponse](op, err, nil)
	}

	loans, err := s.loans.ListOverdue(ctx, today(s.now))
	if err != nil {
		return failure[[]models.LoanResponse](op, err, nil)
	}
	return commons.SuccessResponse("overdue loans fetched successfully", toLoanResponses(loans)), nil
}
