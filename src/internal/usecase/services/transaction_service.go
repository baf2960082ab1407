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
	"github.com/shopspring/decimal"
)

const (
	defaultStatementLimit = 50
	maxStatementLimit     = 500
)

type TransactionService struct {
	uow          repo_interfaces.UnitOfWork
	accounts     repo_interfaces.AccountRepository
	transactions repo_interfaces.TransactionRepository
	ledger       *Ledger
	audit        *AuditService
	notifier     *NotificationService
	now          func() time.Time
}

func NewTransactionService(
	uow repo_interfaces.UnitOfWork,
	accounts repo_interfaces.AccountRepository,
	transactions repo_interfaces.TransactionRepository,
	ledger *Ledger,
	audit *AuditService,
	notifier *NotificationService,
) *TransactionService {
	return &TransactionService{
		uow:          uow,
		accounts:     accounts,
		transactions: transactions,
		ledger:       ledger,
		audit:        audit,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *TransactionService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *TransactionService) Deposit(ctx context.Context, actor domain.Actor, req models.CashRequest) (commons.Response[models.TransactionResponse], error) {
	return s.cash(ctx, actor, req, domain.TransactionDeposit)
}

func (s *TransactionService) Withdraw(ctx context.Context, actor domain.Actor, req models.CashRequest) (commons.Response[models.TransactionResponse], error) {
	return s.cash(ctx, actor, req, domain.TransactionWithdrawal)
}

// cash books an admin cash deposit or withdrawal as one balance write plus
// one record.
func (s *TransactionService) cash(ctx context.Context, actor domain.Actor, req models.CashRequest, kind domain.TransactionType) (commons.Response[models.TransactionResponse], error) {
	op := "transaction service " + strings.ToLower(string(kind))
	logger.Info(op+" request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"actorId": actor.ID,
	})
	fields := logger.Fields{"accountId": req.AccountID, "actorId": actor.ID}

	if err := requireAdmin(actor, "post cash transactions"); err != nil {
		return failure[models.TransactionResponse](op, err, fields)
	}
	if err := req.Validate(); err != nil {
		return failure[models.TransactionResponse](op, err, fields)
	}
	amount, err := money.Parse(req.Amount)
	if err == nil {
		err = money.ValidateAmount(amount, money.MinCashAmount)
	}
	if err != nil {
		return failure[models.TransactionResponse](op, err, fields)
	}

	prefix, delta, narration, action := prefixDeposit, amount, "Cash deposit", domain.ActionCashDeposit
	if kind == domain.TransactionWithdrawal {
		prefix, delta, narration, action = prefixWithdrawal, amount.Neg(), "Cash withdrawal", domain.ActionCashWithdrawal
	}
	if n := strings.TrimSpace(req.Narration); n != "" {
		narration = n
	}
	callerRef := strings.TrimSpace(req.Reference)
	reference := callerRef
	if reference == "" {
		reference = newReference(prefix, s.now())
	}

	var (
		account domain.Account
		record  domain.Transaction
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		if err := rejectUsedReference(ctx, tx, callerRef, reference); err != nil {
			return err
		}

		var err error
		account, err = s.ledger.ApplyDelta(ctx, tx, req.AccountID, delta)
		if err != nil {
			return err
		}
		record, err = tx.InsertTransaction(ctx, domain.Transaction{
			AccountID:    account.ID,
			Type:         kind,
			Amount:       amount,
			BalanceAfter: account.Balance,
			Reference:    reference,
			Narration:    narration,
			PerformedBy:  actor.ID,
		})
		return err
	})
	if err != nil {
		return failure[models.TransactionResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, action, map[string]any{
		"accountId":    account.ID,
		"amount":       money.Format(amount),
		"balanceAfter": money.Format(account.Balance),
		"reference":    reference,
	})
	s.notifier.Notify(ctx, account.UserID, domain.NotificationTransaction,
		fmt.Sprintf("%s of %s on account %s. Balance %s.", narration, money.Format(amount), account.AccountNumber, money.Format(account.Balance)))
	if kind == domain.TransactionWithdrawal {
		s.alertLowBalance(ctx, account)
	}

	logger.Info(op+" success", logger.Fields{
		"accountId": account.ID,
		"reference": reference,
	})
	return commons.SuccessResponse(strings.ToLower(string(kind))+" successful", toTransactionResponse(record)), nil
}

// Transfer moves amount between two accounts. Both rows are locked in id
// order, both balances and both records commit together.
func (s *TransactionService) Transfer(ctx context.Context, actor domain.Actor, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	const op = "transaction service transfer"
	logger.Info(op+" request", logger.Fields{
		"payload": logger.SanitizePayload(req),
		"actorId": actor.ID,
	})
	fields := logger.Fields{
		"fromAccountId": req.FromAccountID,
		"toAccountId":   req.ToAccountID,
		"actorId":       actor.ID,
	}

	if err := req.Validate(); err != nil {
		return failure[models.TransferResponse](op, err, fields)
	}

	source, err := s.accounts.GetByID(ctx, req.FromAccountID)
	if err != nil {
		return failure[models.TransferResponse](op, fmt.Errorf("source account %d: %w", req.FromAccountID, err), fields)
	}
	if err := requireOwnerOrAdmin(actor, source.UserID); err != nil {
		return failure[models.TransferResponse](op, err, fields)
	}
	amount, err := money.Parse(req.Amount)
	if err == nil {
		err = money.ValidateAmount(amount, money.MinCashAmount)
	}
	if err != nil {
		return failure[models.TransferResponse](op, err, fields)
	}

	callerRef := strings.TrimSpace(req.Reference)
	reference := callerRef
	if reference == "" {
		reference = newReference(prefixTransfer, s.now())
	}

	var (
		from, to      domain.Account
		debit, credit domain.Transaction
	)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		if err := rejectUsedReference(ctx, tx, callerRef, reference, reference+"-D", reference+"-C"); err != nil {
			return err
		}

		first, second := req.FromAccountID, req.ToAccountID
		if second < first {
			first, second = second, first
		}
		if _, err := tx.LockAccount(ctx, first); err != nil {
			return fmt.Errorf("account %d: %w", first, err)
		}
		if _, err := tx.LockAccount(ctx, second); err != nil {
			return fmt.Errorf("account %d: %w", second, err)
		}

		var err error
		if from, err = s.ledger.ApplyDelta(ctx, tx, req.FromAccountID, amount.Neg()); err != nil {
			return err
		}
		if to, err = s.ledger.ApplyDelta(ctx, tx, req.ToAccountID, amount); err != nil {
			return err
		}

		debitNarration, creditNarration := transferNarrations(req.Narration, from, to)
		toID, fromID := to.ID, from.ID
		debit, err = tx.InsertTransaction(ctx, domain.Transaction{
			AccountID:        from.ID,
			RelatedAccountID: &toID,
			Type:             domain.TransactionTransferDebit,
			Amount:           amount,
			BalanceAfter:     from.Balance,
			Reference:        reference + "-D",
			Narration:        debitNarration,
			PerformedBy:      actor.ID,
		})
		if err != nil {
			return err
		}
		credit, err = tx.InsertTransaction(ctx, domain.Transaction{
			AccountID:        to.ID,
			RelatedAccountID: &fromID,
			Type:             domain.TransactionTransferCredit,
			Amount:           amount,
			BalanceAfter:     to.Balance,
			Reference:        reference + "-C",
			Narration:        creditNarration,
			PerformedBy:      actor.ID,
		})
		return err
	})
	if err != nil {
		return failure[models.TransferResponse](op, err, fields)
	}

	s.audit.Record(ctx, actor, domain.ActionTransfer, map[string]any{
		"fromAccountId": from.ID,
		"toAccountId":   to.ID,
		"amount":        money.Format(amount),
		"reference":     reference,
	})
	s.notifier.Notify(ctx, from.UserID, domain.NotificationTransaction,
		fmt.Sprintf("%s debited from account %s. Balance %s.", money.Format(amount), from.AccountNumber, money.Format(from.Balance)))
	s.notifier.Notify(ctx, to.UserID, domain.NotificationTransaction,
		fmt.Sprintf("%s credited to account %s. Balance %s.", money.Format(amount), to.AccountNumber, money.Format(to.Balance)))
	s.alertLowBalance(ctx, from)

	logger.Info(op+" success", logger.Fields{"reference": reference})
	return commons.SuccessResponse("transfer successful", models.TransferResponse{
		Reference: reference,
		Debit:     toTransactionResponse(debit),
		Credit:    toTransactionResponse(credit),
	}), nil
}

func transferNarrations(custom string, from, to domain.Account) (string, string) {
	if n := strings.TrimSpace(custom); n != "" {
		return n, n
	}
	return "Transfer to " + to.AccountNumber, "Transfer from " + from.AccountNumber
}

// rejectUsedReference fails when a caller-supplied reference, or any
// reference derived from it, has already been booked.
func rejectUsedReference(ctx context.Context, tx repo_interfaces.LedgerTx, callerRef string, references ...string) error {
	if callerRef == "" {
		return nil
	}
	for _, reference := range references {
		exists, err := tx.ReferenceExists(ctx, reference)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("reference %s: %w", reference, commons.ErrDuplicateReference)
		}
	}
	return nil
}

func (s *TransactionService) alertLowBalance(ctx context.Context, account domain.Account) {
	if !account.Balance.LessThan(account.MinBalance) {
		return
	}
	s.notifier.Notify(ctx, account.UserID, domain.NotificationLowBalance,
		fmt.Sprintf("Account %s balance %s is below the minimum of %s.", account.AccountNumber, money.Format(account.Balance), money.Format(account.MinBalance)))
}

func (s *TransactionService) Statement(ctx context.Context, actor domain.Actor, accountID int64, limit int, offset int) (commons.Response[models.StatementResponse], error) {
	const op = "transaction service statement"
	fields := logger.Fields{"accountId": accountID, "limit": limit, "offset": offset}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return failure[models.StatementResponse](op, err, fields)
	}
	if err := requireOwnerOrAdmin(actor, account.UserID); err != nil {
		return failure[models.StatementResponse](op, err, fields)
	}

	if limit <= 0 {
		limit = defaultStatementLimit
	}
	if limit > maxStatementLimit {
		limit = maxStatementLimit
	}
	if offset < 0 {
		return failure[models.StatementResponse](op, commons.ValidationError("offset cannot be negative"), fields)
	}

	records, err := s.transactions.ListByAccount(ctx, accountID, limit, offset)
	if err != nil {
		return failure[models.StatementResponse](op, err, fields)
	}

	out := make([]models.TransactionResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toTransactionResponse(record))
	}
	return commons.SuccessResponse("statement fetched successfully", models.StatementResponse{
		AccountID:    accountID,
		Limit:        limit,
		Offset:       offset,
		Transactions: out,
	}), nil
}

func (s *TransactionService) Summary(ctx context.Context, actor domain.Actor, accountID int64) (commons.Response[models.SummaryResponse], error) {
	const op = "transaction service summary"
	fields := logger.Fields{"accountId": accountID}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return failure[models.SummaryResponse](op, err, fields)
	}
	if err := requireOwnerOrAdmin(actor, account.UserID); err != nil {
		return failure[models.SummaryResponse](op, err, fields)
	}

	records, err := s.transactions.ListAllByAccount(ctx, accountID)
	if err != nil {
		return failure[models.SummaryResponse](op, err, fields)
	}

	credits, debits := decimal.Zero, decimal.Zero
	for _, record := range records {
		if record.Type.IsCredit() {
			credits = credits.Add(record.Amount)
		} else {
			debits = debits.Add(record.Amount)
		}
	}
	replayed := domain.ReplayBalance(records)

	return commons.SuccessResponse("summary fetched successfully", models.SummaryResponse{
		AccountID:        accountID,
		TotalCredits:     money.Format(credits),
		TotalDebits:      money.Format(debits),
		TransactionCount: len(records),
		Balance:          money.Format(account.Balance),
		ReplayedBalance:  money.Format(replayed),
		Reconciled:       replayed.Equal(account.Balance),
	}), nil
}

// Replay recomputes an account's balance from its records, oldest first.
func (s *TransactionService) Replay(ctx context.Context, accountID int64) (decimal.Decimal, error) {
	records, err := s.transactions.ListAllByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.ReplayBalance(records), nil
}
