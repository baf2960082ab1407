package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/memory"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/services"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store        *memory.Store
	clock        time.Time
	accounts     *services.AccountService
	transactions *services.TransactionService
	loans        *services.LoanService
	deposits     *services.DepositService
	credit       *services.CreditScoreService
	actors       *services.ActorService
	admin        domain.Actor
	customer     domain.Actor
	other        domain.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store: memory.NewStore(),
		clock: time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC),
	}
	now := func() time.Time { return f.clock }
	f.store.SetClock(now)

	audit := services.NewAuditService(f.store.Audit())
	notifier := services.NewNotificationService(f.store.Notifications())
	ledger := services.NewLedger(f.store, f.store.Accounts(), audit)

	f.credit = services.NewCreditScoreService(f.store.CreditProfile(), f.store.CreditScores())
	f.credit.SetClock(now)
	f.actors = services.NewActorService(f.store.Actors(), audit, bcrypt.MinCost)
	f.accounts = services.NewAccountService(f.store, f.store.Accounts(), f.store.Actors(), ledger, audit)
	f.accounts.SetClock(now)
	f.transactions = services.NewTransactionService(f.store, f.store.Accounts(), f.store.Transactions(), ledger, audit, notifier)
	f.transactions.SetClock(now)
	f.loans = services.NewLoanService(f.store, f.store.Loans(), f.store.Accounts(), f.credit, audit)
	f.loans.SetClock(now)
	f.deposits = services.NewDepositService(f.store, f.store.Deposits(), f.store.Accounts(), audit)
	f.deposits.SetClock(now)

	f.admin = f.mustActor(t, "teller", domain.RoleAdmin)
	f.customer = f.mustActor(t, "ada", domain.RoleCustomer)
	f.other = f.mustActor(t, "grace", domain.RoleCustomer)
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func (f *fixture) mustActor(t *testing.T, username string, role domain.Role) domain.Actor {
	t.Helper()
	actor, err := f.store.Actors().Create(context.Background(), domain.Actor{Username: username, Role: role, Active: true})
	if err != nil {
		t.Fatalf("create actor %s: %v", username, err)
	}
	return actor
}

func (f *fixture) mustOpen(t *testing.T, owner domain.Actor, accountType, initial string) models.AccountResponse {
	t.Helper()
	resp, err := f.accounts.OpenAccount(context.Background(), f.admin, models.OpenAccountRequest{
		UserID:         owner.ID,
		AccountType:    accountType,
		InitialDeposit: initial,
	})
	if err != nil {
		t.Fatalf("open %s account: %v", accountType, err)
	}
	return *resp.Data
}

func (f *fixture) balance(t *testing.T, accountID int64) string {
	t.Helper()
	account, err := f.store.Accounts().GetByID(context.Background(), accountID)
	if err != nil {
		t.Fatalf("get account %d: %v", accountID, err)
	}
	return account.Balance.StringFixed(2)
}

func expectKind(t *testing.T, err error, kind error) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}
