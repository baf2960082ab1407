package services

import (
	"context"
	"fmt"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/logger"
	"github.com/shopspring/decimal"
)

// Ledger owns account balances and statuses. ApplyDelta is the only code
// path that writes a balance.
type Ledger struct {
	uow      repo_interfaces.UnitOfWork
	accounts repo_interfaces.AccountRepository
	audit    *AuditService
}

func NewLedger(uow repo_interfaces.UnitOfWork, accounts repo_interfaces.AccountRepository, audit *AuditService) *Ledger {
	return &Ledger{uow: uow, accounts: accounts, audit: audit}
}

// Sufficiency compares amount against balance plus overdraft headroom.
func Sufficiency(account domain.Account, amount decimal.Decimal) domain.Sufficiency {
	available := account.AvailableBalance()
	result := domain.Sufficiency{
		AccountID:        account.ID,
		Sufficient:       available.GreaterThanOrEqual(amount),
		Balance:          account.Balance,
		AvailableBalance: available,
		Requested:        amount,
		Shortfall:        decimal.Zero,
		UsesOverdraft:    account.Balance.LessThan(amount),
	}
	if !result.Sufficient {
		result.Shortfall = amount.Sub(available)
	}
	return result
}

func (l *Ledger) CheckSufficiency(ctx context.Context, accountID int64, amount decimal.Decimal) (domain.Sufficiency, error) {
	account, err := l.accounts.GetByID(ctx, accountID)
	if err != nil {
		return domain.Sufficiency{}, fmt.Errorf("account %d: %w", accountID, err)
	}
	return Sufficiency(account, amount), nil
}

// ApplyDelta locks the account inside tx, checks it is ACTIVE and that a
// debit stays within the overdraft limit, then writes the new balance.
func (l *Ledger) ApplyDelta(ctx context.Context, tx repo_interfaces.LedgerTx, accountID int64, delta decimal.Decimal) (domain.Account, error) {
	account, err := tx.LockAccount(ctx, accountID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %d: %w", accountID, err)
	}
	if account.Status != domain.AccountStatusActive {
		return domain.Account{}, fmt.Errorf("account %s is %s: %w", account.AccountNumber, account.Status, commons.ErrAccountNotActive)
	}

	if delta.IsNegative() {
		check := Sufficiency(account, delta.Neg())
		if !check.Sufficient {
			return domain.Account{}, &commons.InsufficientFundsError{
				Available: check.AvailableBalance,
				Requested: check.Requested,
				Shortfall: check.Shortfall,
			}
		}
	}

	balance := account.Balance.Add(delta)
	if err := tx.UpdateAccountBalance(ctx, accountID, balance); err != nil {
		return domain.Account{}, fmt.Errorf("update balance of account %d: %w", accountID, err)
	}

	account.Balance = balance
	return account, nil
}

// TransitionStatus moves an account along ACTIVE<->FROZEN or ACTIVE->CLOSED.
// Closing needs a zero balance.
func (l *Ledger) TransitionStatus(ctx context.Context, actor domain.Actor, accountID int64, next domain.AccountStatus, reason string) (domain.Account, error) {
	if err := requireAdmin(actor, "change account status"); err != nil {
		return domain.Account{}, err
	}

	var (
		updated  domain.Account
		previous domain.AccountStatus
	)
	err := l.uow.WithinTx(ctx, func(ctx context.Context, tx repo_interfaces.Tx) error {
		account, err := tx.LockAccount(ctx, accountID)
		if err != nil {
			return fmt.Errorf("account %d: %w", accountID, err)
		}
		if !account.Status.CanTransitionTo(next) {
			return commons.ValidationError("account cannot move from %s to %s", account.Status, next)
		}
		if next == domain.AccountStatusClosed && !account.Balance.IsZero() {
			return commons.ValidationError("account balance must be zero to close, current balance %s", account.Balance.StringFixed(2))
		}
		if err := tx.UpdateAccountStatus(ctx, accountID, next); err != nil {
			return err
		}

		previous = account.Status
		account.Status = next
		updated = account
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	logger.Info("ledger account status changed", logger.Fields{
		"accountId": accountID,
		"from":      previous,
		"to":        next,
		"actorId":   actor.ID,
	})
	l.audit.Record(ctx, actor, statusAction(next), map[string]any{
		"accountId":     accountID,
		"accountNumber": updated.AccountNumber,
		"from":          string(previous),
		"to":            string(next),
		"reason":        reason,
	})
	return updated, nil
}

func statusAction(next domain.AccountStatus) string {
	switch next {
	case domain.AccountStatusFrozen:
		return domain.ActionAccountFreeze
	case domain.AccountStatusClosed:
		return domain.ActionAccountClose
	default:
		return domain.ActionAccountUnfreeze
	}
}
