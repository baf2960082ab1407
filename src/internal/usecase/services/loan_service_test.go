package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

func (f *fixture) mustApply(t *testing.T, account models.AccountResponse, principal string, tenure int) models.LoanResponse {
	t.Helper()
	resp, err := f.loans.Apply(context.Background(), f.customer, models.ApplyLoanRequest{
		UserID:       account.UserID,
		AccountID:    account.ID,
		LoanType:     "PERSONAL",
		Principal:    principal,
		TenureMonths: tenure,
	})
	if err != nil {
		t.Fatalf("apply for loan: %v", err)
	}
	return *resp.Data
}

func TestLoanServiceQuoteEMI(t *testing.T) {
	f := newFixture(t)

	resp, err := f.loans.QuoteEMI(context.Background(), "100000", 12)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if resp.Data.AnnualRate != "12.00" || resp.Data.EMI != "8884.88" {
		t.Fatalf("expected 12.00%% and EMI 8884.88, got %+v", *resp.Data)
	}

	_, err = f.loans.QuoteEMI(context.Background(), "100000", 18)
	expectKind(t, err, commons.ErrValidation)
}

func TestLoanServiceLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.mustOpen(t, f.customer, "SAVINGS", "1000")

	loan := f.mustApply(t, account, "100000", 12)
	if loan.Status != "PENDING_APPROVAL" || loan.AnnualRate != "12.00" || loan.Reference[:3] != "LON" {
		t.Fatalf("unexpected application %+v", loan)
	}

	_, err := f.loans.Approve(ctx, f.customer, loan.ID)
	expectKind(t, err, commons.ErrUnauthorized)

	approved, err := f.loans.Approve(ctx, f.admin, loan.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	schedule := approved.Data.Installments
	if len(schedule) != 12 || approved.Data.Loan.SanctionedOn != "2026-01-15" {
		t.Fatalf("expected 12 installments sanctioned 2026-01-15, got %d on %q", len(schedule), approved.Data.Loan.SanctionedOn)
	}
	if schedule[0].DueDate != "2026-02-15" {
		t.Fatalf("expected first installment due 2026-02-15, got %s", schedule[0].DueDate)
	}
	sum := decimal.Zero
	for _, row := range schedule {
		sum = sum.Add(decimal.RequireFromString(row.Principal))
	}
	if sum.StringFixed(2) != "100000.00" {
		t.Fatalf("expected principal components to sum to 100000.00, got %s", sum.StringFixed(2))
	}

	_, err = f.loans.PayInstallment(ctx, f.customer, loan.ID, 1)
	expectKind(t, err, commons.ErrValidation)

	f.advance(3 * 24 * time.Hour)
	disbursed, err := f.loans.Disburse(ctx, f.admin, loan.ID)
	if err != nil {
		t.Fatalf("disburse: %v", err)
	}
	if disbursed.Data.Status != "ACTIVE" || disbursed.Data.DisbursedOn != "2026-01-18" {
		t.Fatalf("expected ACTIVE loan disbursed 2026-01-18, got %s on %q", disbursed.Data.Status, disbursed.Data.DisbursedOn)
	}
	after, err := f.loans.GetSchedule(ctx, f.customer, loan.ID)
	if err != nil {
		t.Fatalf("get schedule: %v", err)
	}
	if after.Data.Installments[0].DueDate != "2026-02-15" {
		t.Fatalf("expected due dates to stay anchored on the sanction date, got %s", after.Data.Installments[0].DueDate)
	}

	var last models.InstallmentPaymentResponse
	for n := 1; n <= 12; n++ {
		f.advance(24 * time.Hour)
		resp, err := f.loans.PayInstallment(ctx, f.customer, loan.ID, n)
		if err != nil {
			t.Fatalf("pay installment %d: %v", n, err)
		}
		last = *resp.Data
	}
	if last.Loan.Status != "CLOSED" || last.Loan.RemainingPrincipal != "0.00" {
		t.Fatalf("expected closed loan with nothing remaining, got %+v", last.Loan)
	}

	_, err = f.loans.PayInstallment(ctx, f.customer, loan.ID, 12)
	expectKind(t, err, commons.ErrValidation)

	scores, err := f.store.CreditScores().History(ctx, f.customer.ID, 50)
	if err != nil {
		t.Fatalf("score history: %v", err)
	}
	if len(scores) != 12 {
		t.Fatalf("expected a score per payment, got %d", len(scores))
	}
}

func TestLoanServicePayInstallmentTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.mustOpen(t, f.customer, "SAVINGS", "1000")
	loan := f.mustApply(t, account, "30000", 6)

	if _, err := f.loans.Approve(ctx, f.admin, loan.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := f.loans.Disburse(ctx, f.admin, loan.ID); err != nil {
		t.Fatalf("disburse: %v", err)
	}

	first, err := f.loans.PayInstallment(ctx, f.admin, loan.ID, 1)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	_, err = f.loans.PayInstallment(ctx, f.admin, loan.ID, 1)
	expectKind(t, err, commons.ErrValidation)

	current, err := f.loans.GetLoan(ctx, f.customer, loan.ID)
	if err != nil {
		t.Fatalf("get loan: %v", err)
	}
	if current.Data.RemainingPrincipal != first.Data.Loan.RemainingPrincipal {
		t.Fatalf("expected remaining principal unchanged by the rejected payment")
	}

	_, err = f.loans.PayInstallment(ctx, f.other, loan.ID, 2)
	expectKind(t, err, commons.ErrUnauthorized)
}

func TestLoanServiceOverdueInstallmentCanBePaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.mustOpen(t, f.customer, "SAVINGS", "1000")
	loan := f.mustApply(t, account, "30000", 6)
	_, _ = f.loans.Approve(ctx, f.admin, loan.ID)
	_, _ = f.loans.Disburse(ctx, f.admin, loan.ID)

	overdue, err := f.loans.MarkInstallmentOverdue(ctx, f.admin, loan.ID, 2, models.InstallmentActionRequest{Penalty: "150"})
	if err != nil {
		t.Fatalf("mark overdue: %v", err)
	}
	if overdue.Data.Status != "OVERDUE" || overdue.Data.Penalty != "150.00" {
		t.Fatalf("unexpected installment %+v", *overdue.Data)
	}

	_, err = f.loans.MarkInstallmentOverdue(ctx, f.admin, loan.ID, 2, models.InstallmentActionRequest{})
	expectKind(t, err, commons.ErrValidation)

	paid, err := f.loans.PayInstallment(ctx, f.customer, loan.ID, 2)
	if err != nil {
		t.Fatalf("pay overdue installment: %v", err)
	}
	if paid.Data.Installment.Status != "PAID" || paid.Data.Installment.PaidOn != "2026-01-15" {
		t.Fatalf("unexpected payment %+v", paid.Data.Installment)
	}
}

func TestLoanServiceStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.mustOpen(t, f.customer, "SAVINGS", "1000")

	rejected := f.mustApply(t, account, "20000", 6)
	resp, err := f.loans.Reject(ctx, f.admin, rejected.ID, "insufficient documents")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if resp.Data.Status != "REJECTED" {
		t.Fatalf("expected REJECTED, got %s", resp.Data.Status)
	}
	_, err = f.loans.Approve(ctx, f.admin, rejected.ID)
	expectKind(t, err, commons.ErrValidation)

	defaulted := f.mustApply(t, account, "20000", 6)
	_, err = f.loans.MarkDefaulted(ctx, f.admin, defaulted.ID, "too early")
	expectKind(t, err, commons.ErrValidation)
	_, _ = f.loans.Approve(ctx, f.admin, defaulted.ID)
	_, _ = f.loans.Disburse(ctx, f.admin, defaulted.ID)
	resp, err = f.loans.MarkDefaulted(ctx, f.admin, defaulted.ID, "90 days past due")
	if err != nil {
		t.Fatalf("mark defaulted: %v", err)
	}
	if resp.Data.Status != "DEFAULTED" {
		t.Fatalf("expected DEFAULTED, got %s", resp.Data.Status)
	}

	list, err := f.loans.ListLoans(ctx, f.customer, f.customer.ID)
	if err != nil {
		t.Fatalf("list loans: %v", err)
	}
	if len(*list.Data) != 2 {
		t.Fatalf("expected 2 loans, got %d", len(*list.Data))
	}
}

func TestLoanServiceEligibility(t *testing.T) {
	cases := []struct {
		name      string
		score     int
		principal string
		wantErr   bool
	}{
		{name: "no score yet", score: 0, principal: "600000", wantErr: false},
		{name: "below floor", score: 550, principal: "10000", wantErr: true},
		{name: "high value below 700", score: 650, principal: "600000", wantErr: true},
		{name: "at threshold below 700", score: 650, principal: "500000", wantErr: false},
		{name: "high value at 700", score: 700, principal: "600000", wantErr: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			account := f.mustOpen(t, f.customer, "SAVINGS", "1000")
			if tc.score > 0 {
				if _, err := f.store.CreditScores().Create(ctx, domain.CreditScore{UserID: f.customer.ID, Score: tc.score, CalculatedAt: f.clock}); err != nil {
					t.Fatalf("seed score: %v", err)
				}
			}

			_, err := f.loans.Apply(ctx, f.customer, models.ApplyLoanRequest{
				UserID:       f.customer.ID,
				AccountID:    account.ID,
				Principal:    tc.principal,
				TenureMonths: 24,
			})
			if tc.wantErr {
				expectKind(t, err, commons.ErrValidation)
				return
			}
			if err != nil {
				t.Fatalf("expected application to pass, got %v", err)
			}
		})
	}
}

func TestLoanServiceApplyAgainstSomeoneElsesAccount(t *testing.T) {
	f := newFixture(t)
	account := f.mustOpen(t, f.other, "SAVINGS", "1000")

	_, err := f.loans.Apply(context.Background(), f.customer, models.ApplyLoanRequest{
		UserID:       f.customer.ID,
		AccountID:    account.ID,
		Principal:    "10000",
		TenureMonths: 6,
	})
	expectKind(t, err, commons.ErrValidation)
}

func TestLoanServiceAdminListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.mustOpen(t, f.customer, "SAVINGS", "1000")

	first := f.mustApply(t, account, "60000", 6)
	second := f.mustApply(t, account, "30000", 6)
	pending := f.mustApply(t, account, "10000", 3)
	for _, id := range []int64{first.ID, second.ID} {
		if _, err := f.loans.Approve(ctx, f.admin, id); err != nil {
			t.Fatalf("approve %d: %v", id, err)
		}
		if _, err := f.loans.Disburse(ctx, f.admin, id); err != nil {
			t.Fatalf("disburse %d: %v", id, err)
		}
	}
	if _, err := f.loans.MarkInstallmentOverdue(ctx, f.admin, second.ID, 1, models.InstallmentActionRequest{}); err != nil {
		t.Fatalf("mark overdue: %v", err)
	}

	all, err := f.loans.ListAllLoans(ctx, f.admin, "")
	if err != nil {
		t.Fatalf("list all loans: %v", err)
	}
	if got := *all.Data; len(got) != 3 || got[0].ID != pending.ID || got[2].ID != first.ID {
		t.Fatalf("expected three loans newest first, got %+v", got)
	}
	waiting, err := f.loans.ListAllLoans(ctx, f.admin, "pending_approval")
	if err != nil {
		t.Fatalf("list pending loans: %v", err)
	}
	if got := *waiting.Data; len(got) != 1 || got[0].ID != pending.ID {
		t.Fatalf("expected the pending loan only, got %+v", got)
	}
	_, err = f.loans.ListAllLoans(ctx, f.admin, "LATE")
	expectKind(t, err, commons.ErrValidation)
	_, err = f.loans.ListAllLoans(ctx, f.customer, "")
	expectKind(t, err, commons.ErrUnauthorized)

	overdueIDs := func() []int64 {
		t.Helper()
		resp, err := f.loans.ListOverdueLoans(ctx, f.admin)
		if err != nil {
			t.Fatalf("list overdue loans: %v", err)
		}
		ids := []int64{}
		for _, loan := range *resp.Data {
			ids = append(ids, loan.ID)
		}
		return ids
	}
	if ids := overdueIDs(); len(ids) != 1 || ids[0] != second.ID {
		t.Fatalf("expected only the loan with an OVERDUE installment, got %v", ids)
	}

	// First installments fall due on 2026-02-15; due today is not yet late.
	f.clock = time.Date(2026, time.February, 15, 10, 0, 0, 0, time.UTC)
	if ids := overdueIDs(); len(ids) != 1 {
		t.Fatalf("expected an installment due today to be ignored, got %v", ids)
	}
	f.advance(24 * time.Hour)
	if ids := overdueIDs(); len(ids) != 2 || ids[0] != second.ID || ids[1] != first.ID {
		t.Fatalf("expected both active loans overdue, got %v", ids)
	}

	_, err = f.loans.ListOverdueLoans(ctx, f.customer)
	expectKind(t, err, commons.ErrUnauthorized)
}
