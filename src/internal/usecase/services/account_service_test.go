package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

func TestAccountServiceOpenAccountBooksOpeningDeposit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	account := f.mustOpen(t, f.customer, "savings", "1000")

	if account.Balance != "1000.00" || account.Status != "ACTIVE" || account.AccountType != "SAVINGS" {
		t.Fatalf("unexpected account %+v", account)
	}
	if len(account.AccountNumber) != 10 {
		t.Fatalf("expected 10 digit account number, got %q", account.AccountNumber)
	}
	if account.MinBalance != "500.00" || account.InterestRate != "4.00" {
		t.Fatalf("expected savings configuration, got min %s rate %s", account.MinBalance, account.InterestRate)
	}

	records, err := f.store.Transactions().ListAllByAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(records) != 1 || records[0].Type != domain.TransactionDeposit || records[0].Amount.StringFixed(2) != "1000.00" {
		t.Fatalf("expected one opening deposit record, got %+v", records)
	}

	summary, err := f.transactions.Summary(ctx, f.customer, account.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.Data.Reconciled {
		t.Fatalf("expected replay to reconcile, got %+v", *summary.Data)
	}
}

func TestAccountServiceOpenAccountRejectsDepositBelowMinimum(t *testing.T) {
	f := newFixture(t)

	resp, err := f.accounts.OpenAccount(context.Background(), f.admin, models.OpenAccountRequest{
		UserID:         f.customer.ID,
		AccountType:    "SAVINGS",
		InitialDeposit: "499.99",
	})
	expectKind(t, err, commons.ErrValidation)
	if resp.Success || resp.Message != "validation failed" {
		t.Fatalf("expected validation failure response, got %+v", resp)
	}
}

func TestAccountServiceOpenAccountForAnotherUserIsUnauthorized(t *testing.T) {
	f := newFixture(t)

	_, err := f.accounts.OpenAccount(context.Background(), f.customer, models.OpenAccountRequest{
		UserID:         f.other.ID,
		AccountType:    "SALARY",
		InitialDeposit: "0",
	})
	expectKind(t, err, commons.ErrUnauthorized)
}

func TestAccountServiceOpenAccountUnknownOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.accounts.OpenAccount(context.Background(), f.admin, models.OpenAccountRequest{
		UserID:      999,
		AccountType: "SALARY",
	})
	expectKind(t, err, commons.ErrRecordNotFound)
}

func TestAccountServiceCurrentAccountOverdraft(t *testing.T) {
	cases := []struct {
		income string
		want   string
	}{
		{income: "", want: "10000.00"},
		{income: "20000", want: "60000.00"},
		{income: "50000", want: "100000.00"},
	}

	for _, tc := range cases {
		f := newFixture(t)
		resp, err := f.accounts.OpenAccount(context.Background(), f.admin, models.OpenAccountRequest{
			UserID:         f.customer.ID,
			AccountType:    "CURRENT",
			InitialDeposit: "1000",
			MonthlyIncome:  tc.income,
		})
		if err != nil {
			t.Fatalf("income %q: open current account: %v", tc.income, err)
		}
		if resp.Data.OverdraftLimit != tc.want {
			t.Fatalf("income %q: expected overdraft %s, got %s", tc.income, tc.want, resp.Data.OverdraftLimit)
		}
	}
}

func TestAccountServiceCheckSufficiencyUsesOverdraft(t *testing.T) {
	f := newFixture(t)
	account := f.mustOpen(t, f.customer, "CURRENT", "1000")

	resp, err := f.accounts.CheckSufficiency(context.Background(), f.customer, account.ID, "5000")
	if err != nil {
		t.Fatalf("check sufficiency: %v", err)
	}
	if !resp.Data.Sufficient || !resp.Data.UsesOverdraft || resp.Data.AvailableBalance != "11000.00" {
		t.Fatalf("expected overdraft-backed sufficiency, got %+v", *resp.Data)
	}

	resp, err = f.accounts.CheckSufficiency(context.Background(), f.customer, account.ID, "11000.01")
	if err != nil {
		t.Fatalf("check sufficiency: %v", err)
	}
	if resp.Data.Sufficient || resp.Data.Shortfall != "0.01" {
		t.Fatalf("expected shortfall 0.01, got %+v", *resp.Data)
	}
}

func TestAccountServiceChangeStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.mustOpen(t, f.customer, "SAVINGS", "600")

	_, err := f.accounts.ChangeStatus(ctx, f.customer, account.ID, models.ChangeStatusRequest{Action: "FREEZE", Reason: "self"})
	expectKind(t, err, commons.ErrUnauthorized)

	resp, err := f.accounts.ChangeStatus(ctx, f.admin, account.ID, models.ChangeStatusRequest{Action: "FREEZE", Reason: "kyc review"})
	if err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if resp.Data.Status != "FROZEN" {
		t.Fatalf("expected FROZEN, got %s", resp.Data.Status)
	}

	_, err = f.transactions.Deposit(ctx, f.admin, models.CashRequest{AccountID: account.ID, Amount: "10"})
	expectKind(t, err, commons.ErrAccountNotActive)

	_, err = f.accounts.ChangeStatus(ctx, f.admin, account.ID, models.ChangeStatusRequest{Action: "CLOSE", Reason: "frozen accounts cannot close"})
	expectKind(t, err, commons.ErrValidation)

	if _, err := f.accounts.ChangeStatus(ctx, f.admin, account.ID, models.ChangeStatusRequest{Action: "UNFREEZE", Reason: "cleared"}); err != nil {
		t.Fatalf("unfreeze: %v", err)
	}

	_, err = f.accounts.ChangeStatus(ctx, f.admin, account.ID, models.ChangeStatusRequest{Action: "CLOSE", Reason: "customer request"})
	expectKind(t, err, commons.ErrValidation)

	if _, err := f.transactions.Withdraw(ctx, f.admin, models.CashRequest{AccountID: account.ID, Amount: "600"}); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	resp, err = f.accounts.ChangeStatus(ctx, f.admin, account.ID, models.ChangeStatusRequest{Action: "CLOSE", Reason: "customer request"})
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if resp.Data.Status != "CLOSED" {
		t.Fatalf("expected CLOSED, got %s", resp.Data.Status)
	}

	actions := map[string]bool{}
	for _, entry := range f.store.AuditEntries() {
		actions[entry.Action] = true
	}
	for _, want := range []string{domain.ActionAccountOpen, domain.ActionAccountFreeze, domain.ActionAccountUnfreeze, domain.ActionAccountClose} {
		if !actions[want] {
			t.Fatalf("expected audit entry %s, got %v", want, actions)
		}
	}
}

func TestAccountServiceGetAccountOwnership(t *testing.T) {
	f := newFixture(t)
	account := f.mustOpen(t, f.customer, "SALARY", "0")

	_, err := f.accounts.GetAccount(context.Background(), f.other, account.ID)
	expectKind(t, err, commons.ErrUnauthorized)

	resp, err := f.accounts.ListAccounts(context.Background(), f.customer, f.customer.ID)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if len(*resp.Data) != 1 {
		t.Fatalf("expected 1 account, got %d", len(*resp.Data))
	}
}

func TestAccountServiceConcurrentOpensGetDistinctNumbers(t *testing.T) {
	f := newFixture(t)
	const opens = 20

	numbers := make([]string, opens)
	errs := make([]error, opens)
	var wg sync.WaitGroup
	for i := 0; i < opens; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := f.accounts.OpenAccount(context.Background(), f.admin, models.OpenAccountRequest{
				UserID:         f.customer.ID,
				AccountType:    "SAVINGS",
				InitialDeposit: "500",
			})
			if err != nil {
				errs[i] = err
				return
			}
			numbers[i] = resp.Data.AccountNumber
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i, number := range numbers {
		if errs[i] != nil {
			t.Fatalf("open %d: %v", i, errs[i])
		}
		if len(number) != 10 {
			t.Fatalf("expected a 10 digit account number, got %q", number)
		}
		for _, ch := range number {
			if ch < '0' || ch > '9' {
				t.Fatalf("expected digits only, got %q", number)
			}
		}
		if seen[number] {
			t.Fatalf("account number %s issued twice", number)
		}
		seen[number] = true
	}
}
