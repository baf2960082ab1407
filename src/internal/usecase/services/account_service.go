package services

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
	"github.com/api-sage/retail-ledger-engine/src/internal/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const accountNumberAttempts = 5

type accountTypeConfig struct {
	MinBalance     decimal.Decimal
	OverdraftLimit func(monthlyIncome *decimal.Decimal) decimal.Decimal
	InterestRate   decimal.Decimal
}

var (
	currentOverdraftCap     = decimal.NewFromInt(100000)
	currentOverdraftDefault = decimal.NewFromInt(10000)
)

func noOverdraft(*decimal.Decimal) decimal.Decimal { return decimal.Zero }

// currentOverdraft is three months of income capped at 100000, or 10000 when
// income is unknown.
func currentOverdraft(income *decimal.Decimal) decimal.Decimal {
	if income == nil {
		return currentOverdraftDefault
	}
	return decimal.Min(money.Round(income.Mul(decimal.NewFromInt(3))), currentOverdraftCap)
}

var accountTypes = map[domain.AccountType]accountTypeConfig{
	domain.AccountTypeSavings: {
		MinBalance:     decimal.NewFromInt(500),
		OverdraftLimit: noOverdraft,
		InterestRate:   decimal.RequireFromString("4.00"),
	},
	domain.AccountTypeCurrent: {
		MinBalance:     decimal.NewFromInt(1000),
		OverdraftLimit: currentOverdraft,
		InterestRate:   decimal.Zero,
	},
	domain.AccountTypeSalary: {
		MinBalance:     decimal.Zero,
		OverdraftLimit: noOverdraft,
		InterestRate:   decimal.RequireFromString("3.50"),
	},
}

type AccountService struct {
	uow      repo_interfaces.UnitOfWork
	accounts repo_interfaces.AccountRepository
	actors   repo_interfaces.ActorRepository
	ledger   *Ledger
	audit    *AuditService
	now      func() time.Time
}

func NewAccountService(
	uow repo_interfaces.UnitOfWork,
	accounts repo_interfaces.AccountRepository,
	actors repo_interfaces.ActorRepository,
	ledger *Ledger,
	audit *AuditService,
) *AccountService {
	return &AccountService{
		uow:      uow,
		accounts: accounts,
		actors:   actors,
		ledger:   ledger,
		audit:    audit,
		now:      time.Now,
	}
}

func (s *AccountService) SetClock(now func() time.Time) {
	s.now = now
}

// OpenAccount creates the account with a zero balance and books the initial
// deposit as its first DEPOSIT record in the same transaction.
func (s *AccountService) OpenAccount(ctx context.Context, actor domain.Actor, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service open account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"actorId": actor.ID,
	})
	fields := logger.Fields{"userId": req.UserID}

	if err := requireOwnerOrAdmin(actor, req.UserID); err != nil {
		return failure[models.AccountResponse]("account service open account", err, fields)
	}
	if err := req.Validate(); err != nil {
		return failure[models.AccountResponse]("account service open account", err, fields)
	}

	accountType := domain.AccountType(strings.ToUpper(strings.TrimSpace(req.AccountType)))
	cfg := accountTypes[accountType]

	initial := decimal.Zero
	if strings.TrimSpace(req.InitialDeposit) != "" {
		parsed, err := money.Parse(req.InitialDeposit)
		if err != nil {
			return failure[models.AccountResponse]("account service open account", err, fields)
		}
		initial = parsed
	}
	if initial.LessThan(cfg.MinBalance) {
		err := commons.ValidationError("initial deposit must be at least %s for a %s account", money.Format(cfg.MinBalance), accountType)
		return failure[models.AccountResponse]("account service open account", err, fields)
	}
	if !money.HasValidPrecision(initial) {
		err := commons.ValidationError("initialDeposit cannot have more than 2 decimal places")
		return failure[models.AccountResponse]("account service open account", err, fields)
	}

	var income *decimal.Decimal
	if strings.TrimSpace(req.MonthlyIncome) != "" {
		parsed, err := money.Parse(req.MonthlyIncome)
		if err != nil {
			return failure[models.AccountResponse]("account service open account", err, fields)
		}
		income = &parsed
	}

	if _, err := s.actors.GetByID(ctx, req.UserID); err != nil {
		return failure[models.AccountResponse]("account service open account owner lookup", fmt.Errorf("user %d: %w", req.UserID, err), fields)
	}

	account := domain.Account{
		UserID:         req.UserID,
		AccountType:    accountType,
		Balance:        decimal.Zero,
		MinBalance:     cfg.MinBalance,
		OverdraftLimit: cfg.OverdraftLimit(income),
		InterestRate:   cfg.InterestRate,
		Status:         domain.AccountStatusActive,
		OpenedOn:       today(s.now),
	}

	var created domain.Account
	var err error
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		account.AccountNumber = generateAccountNumber()
		created, err = s.createWithOpeningDeposit(ctx, actor, account, initial)
		if !errors.Is(err, commons.ErrAlreadyExists) {
			break
		}
		logger.Info("account service account number collision, retrying", logger.Fields{
			"attempt": attempt + 1,
		})
	}
	if err != nil {
		return failure[models.AccountResponse]("account service open account", err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionAccountOpen, map[string]any{
		"accountId":      created.ID,
		"accountNumber":  created.AccountNumber,
		"accountType":    string(created.AccountType),
		"userId":         created.UserID,
		"initialDeposit": money.Format(initial),
	})
	logger.Info("account service open account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
	})

	return commons.SuccessResponse("account opened successfully", toAccountResponse(created)), nil
}

func (s *AccountService) createWithOpeningDeposit(ctx context.Context, actor domain.Actor, account domain.Account, initial decimal.Decimal) (domain.Account, error) {
	var created domain.Account
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		var err error
		created, err = tx.CreateAccount(ctx, account)
		if err != nil {
			return err
		}
		if !initial.IsPositive() {
			return nil
		}

		created, err = s.ledger.ApplyDelta(ctx, tx, created.ID, initial)
		if err != nil {
			return err
		}
		_, err = tx.InsertTransaction(ctx, domain.Transaction{
			AccountID:    created.ID,
			Type:         domain.TransactionDeposit,
			Amount:       initial,
			BalanceAfter: created.Balance,
			Reference:    newReference(prefixDeposit, s.now()),
			Narration:    "Opening deposit",
			PerformedBy:  actor.ID,
		})
		return err
	})
	return created, err
}

func (s *AccountService) GetAccount(ctx context.Context, actor domain.Actor, accountID int64) (commons.Response[models.AccountResponse], error) {
	fields := logger.Fields{"accountId": accountID}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return failure[models.AccountResponse]("account service get account", err, fields)
	}
	if err := requireOwnerOrAdmin(actor, account.UserID); err != nil {
		return failure[models.AccountResponse]("account service get account", err, fields)
	}

	return commons.SuccessResponse("account fetched successfully", toAccountResponse(account)), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, actor domain.Actor, userID int64) (commons.Response[[]models.AccountResponse], error) {
	fields := logger.Fields{"userId": userID}
	if err := requireOwnerOrAdmin(actor, userID); err != nil {
		return failure[[]models.AccountResponse]("account service list accounts", err, fields)
	}

	accounts, err := s.accounts.ListByUser(ctx, userID)
	if err != nil {
		return failure[[]models.AccountResponse]("account service list accounts", err, fields)
	}

	out := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, toAccountResponse(account))
	}
	return commons.SuccessResponse("accounts fetched successfully", out), nil
}

func (s *AccountService) CheckSufficiency(ctx context.Context, actor domain.Actor, accountID int64, rawAmount string) (commons.Response[models.SufficiencyResponse], error) {
	fields := logger.Fields{"accountId": accountID, "amount": rawAmount}

	amount, err := money.Parse(rawAmount)
	if err == nil {
		err = money.ValidateAmount(amount, decimal.RequireFromString("0.01"))
	}
	if err != nil {
		return failure[models.SufficiencyResponse]("account service check sufficiency", err, fields)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return failure[models.SufficiencyResponse]("account service check sufficiency", err, fields)
	}
	if err := requireOwnerOrAdmin(actor, account.UserID); err != nil {
		return failure[models.SufficiencyResponse]("account service check sufficiency", err, fields)
	}

	check := Sufficiency(account, amount)
	return commons.SuccessResponse("sufficiency checked", models.SufficiencyResponse{
		AccountID:        check.AccountID,
		Sufficient:       check.Sufficient,
		Balance:          money.Format(check.Balance),
		AvailableBalance: money.Format(check.AvailableBalance),
		Requested:        money.Format(check.Requested),
		Shortfall:        money.Format(check.Shortfall),
		UsesOverdraft:    check.UsesOverdraft,
	}), nil
}

func (s *AccountService) ChangeStatus(ctx context.Context, actor domain.Actor, accountID int64, req models.ChangeStatusRequest) (commons.Response[models.AccountResponse], error) {
	fields := logger.Fields{"accountId": accountID, "action": req.Action}

	if err := requireAdmin(actor, "change account status"); err != nil {
		return failure[models.AccountResponse]("account service change status", err, fields)
	}
	if err := req.Validate(); err != nil {
		return failure[models.AccountResponse]("account service change status", err, fields)
	}

	next := domain.AccountStatusActive
	switch strings.ToUpper(strings.TrimSpace(req.Action)) {
	case "FREEZE":
		next = domain.AccountStatusFrozen
	case "CLOSE":
		next = domain.AccountStatusClosed
	}

	account, err := s.ledger.TransitionStatus(ctx, actor, accountID, next, strings.TrimSpace(req.Reason))
	if err != nil {
		return failure[models.AccountResponse]("account service change status", err, fields)
	}
	return commons.SuccessResponse("account status updated", toAccountResponse(account)), nil
}

// generateAccountNumber takes ten digits from a random UUID. Collisions are
// caught by the unique index and retried.
func generateAccountNumber() string {
	id := uuid.New()
	return fmt.Sprintf("%010d", binary.BigEndian.Uint64(id[:8])%10_000_000_000)
}
