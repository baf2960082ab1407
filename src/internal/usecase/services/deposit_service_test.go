package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
)

const day = 24 * time.Hour

func (f *fixture) mustOpenFD(t *testing.T, accountID int64, principal string, tenure int) models.FixedDepositResponse {
	t.Helper()
	resp, err := f.deposits.OpenFixedDeposit(context.Background(), f.customer, models.OpenFixedDepositRequest{
		AccountID:    accountID,
		Principal:    principal,
		TenureMonths: tenure,
	})
	if err != nil {
		t.Fatalf("open fixed deposit: %v", err)
	}
	return *resp.Data
}

func (f *fixture) mustOpenRD(t *testing.T, accountID int64, installment string, tenure int) models.RecurringDepositScheduleResponse {
	t.Helper()
	resp, err := f.deposits.OpenRecurringDeposit(context.Background(), f.customer, models.OpenRecurringDepositRequest{
		AccountID:         accountID,
		InstallmentAmount: installment,
		TenureMonths:      tenure,
	})
	if err != nil {
		t.Fatalf("open recurring deposit: %v", err)
	}
	return *resp.Data
}

func TestDepositServiceOpenFixedDeposit(t *testing.T) {
	f := newFixture(t)
	account := f.mustOpen(t, f.customer, "SAVINGS", "1000")

	fd := f.mustOpenFD(t, account.ID, "100000", 12)
	if fd.Rate != "7.00" || fd.MaturityAmount != "107000.00" || fd.MaturityDate != "2027-01-15" {
		t.Fatalf("unexpected fixed deposit %+v", fd)
	}
	if fd.PayoutMode != "MATURITY" || fd.Status != "ACTIVE" {
		t.Fatalf("expected ACTIVE deposit paid at maturity, got %s/%s", fd.Status, fd.PayoutMode)
	}
	if got := f.balance(t, account.ID); got != "1000.00" {
		t.Fatalf("expected opening a deposit to leave the account alone, got %s", got)
	}

	_, err := f.deposits.OpenFixedDeposit(context.Background(), f.customer, models.OpenFixedDepositRequest{
		AccountID:    account.ID,
		Principal:    "5000",
		TenureMonths: 9,
	})
	expectKind(t, err, commons.ErrValidation)

	_, err = f.deposits.OpenFixedDeposit(context.Background(), f.other, models.OpenFixedDepositRequest{
		AccountID:    account.ID,
		Principal:    "5000",
		TenureMonths: 6,
	})
	expectKind(t, err, commons.ErrUnauthorized)
}

func TestDepositServiceCloseFixedDepositEarly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.mustOpen(t, f.customer, "SAVINGS", "1000")

	young := f.mustOpenFD(t, account.ID, "100000", 12)
	seasoned := f.mustOpenFD(t, account.ID, "100000", 12)

	f.advance(30 * day)
	resp, err := f.deposits.CloseFixedDeposit(ctx, f.customer, young.ID)
	if err != nil {
		t.Fatalf("close young deposit: %v", err)
	}
	if resp.Data.ClosureAmount != "100000.00" || resp.Data.InterestEarned != "0.00" || resp.Data.AppliedRate != "0.00" {
		t.Fatalf("expected principal back without interest, got %+v", *resp.Data)
	}
	if resp.Data.Status != "PREMATURE_CLOSED" {
		t.Fatalf("expected PREMATURE_CLOSED, got %s", resp.Data.Status)
	}

	_, err = f.deposits.CloseFixedDeposit(ctx, f.customer, young.ID)
	expectKind(t, err, commons.ErrValidation)

	f.advance(170 * day)
	resp, err = f.deposits.CloseFixedDeposit(ctx, f.customer, seasoned.ID)
	if err != nil {
		t.Fatalf("close seasoned deposit: %v", err)
	}
	if resp.Data.AppliedRate != "5.25" {
		t.Fatalf("expected penalized rate 5.25, got %s", resp.Data.AppliedRate)
	}
	if resp.Data.InterestEarned == "0.00" || resp.Data.Penalty == "0.00" {
		t.Fatalf("expected interest and a penalty, got %+v", *resp.Data)
	}

	stored, err := f.deposits.GetFixedDeposit(ctx, f.customer, seasoned.ID)
	if err != nil {
		t.Fatalf("get deposit: %v", err)
	}
	if stored.Data.ClosureAmount != resp.Data.ClosureAmount || stored.Data.ClosedOn != "2026-08-03" {
		t.Fatalf("expected stored closure to match, got %+v", *stored.Data)
	}
}

func TestDepositServiceMaturityScanIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.mustOpen(t, f.customer, "SAVINGS", "1000")

	short := f.mustOpenFD(t, account.ID, "100000", 6)
	long := f.mustOpenFD(t, account.ID, "100000", 24)
	rd := f.mustOpenRD(t, account.ID, "1000", 6)

	f.advance(200 * day)
	first, err := f.deposits.ProcessMaturities(ctx, f.clock)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(first.FixedDepositsClosed) != 1 || first.FixedDepositsClosed[0] != short.ID {
		t.Fatalf("expected only fixed deposit %d to mature, got %v", short.ID, first.FixedDepositsClosed)
	}
	if len(first.RecurringDepositsClosed) != 1 || first.RecurringDepositsClosed[0] != rd.Deposit.ID {
		t.Fatalf("expected recurring deposit %d to mature, got %v", rd.Deposit.ID, first.RecurringDepositsClosed)
	}

	second, err := f.deposits.ProcessMaturities(ctx, f.clock)
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if len(second.FixedDepositsClosed) != 0 || len(second.RecurringDepositsClosed) != 0 {
		t.Fatalf("expected rescan to change nothing, got %+v", second)
	}

	matured, _ := f.deposits.GetFixedDeposit(ctx, f.customer, short.ID)
	if matured.Data.Status != "CLOSED" || matured.Data.ClosureAmount != short.MaturityAmount {
		t.Fatalf("expected closed at maturity amount %s, got %+v", short.MaturityAmount, *matured.Data)
	}
	unpaid, _ := f.deposits.GetRecurringDeposit(ctx, f.customer, rd.Deposit.ID)
	if unpaid.Data.Deposit.ClosureAmount != "0.00" {
		t.Fatalf("expected unpaid recurring deposit to close at 0.00, got %s", unpaid.Data.Deposit.ClosureAmount)
	}
	still, _ := f.deposits.GetFixedDeposit(ctx, f.customer, long.ID)
	if still.Data.Status != "ACTIVE" {
		t.Fatalf("expected 24 month deposit to stay ACTIVE, got %s", still.Data.Status)
	}

	_, err = f.deposits.CloseFixedDeposit(ctx, f.customer, short.ID)
	expectKind(t, err, commons.ErrValidation)
}

func TestDepositServiceScanMaturitiesRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.deposits.ScanMaturities(context.Background(), f.customer)
	expectKind(t, err, commons.ErrUnauthorized)

	resp, err := f.deposits.ScanMaturities(context.Background(), f.admin)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if resp.Data.AsOf != "2026-01-15" {
		t.Fatalf("expected scan as of 2026-01-15, got %s", resp.Data.AsOf)
	}
}

func TestDepositServiceRecurringDepositInstallments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := f.mustOpen(t, f.customer, "SAVINGS", "1000")

	rd := f.mustOpenRD(t, account.ID, "1000", 12)
	if rd.Deposit.Rate != "6.00" || rd.Deposit.MaturityAmount != "12397.24" {
		t.Fatalf("unexpected recurring deposit %+v", rd.Deposit)
	}
	if len(rd.Installments) != 12 || rd.Deposit.NextDueDate != "2026-02-15" {
		t.Fatalf("expected 12 installments, next due 2026-02-15, got %d / %s", len(rd.Installments), rd.Deposit.NextDueDate)
	}

	paid, err := f.deposits.PayRDInstallment(ctx, f.customer, rd.Deposit.ID, 1)
	if err != nil {
		t.Fatalf("pay installment 1: %v", err)
	}
	if paid.Data.Deposit.PaidInstallments != 1 || paid.Data.Deposit.NextDueDate != "2026-03-15" {
		t.Fatalf("unexpected deposit after payment %+v", paid.Data.Deposit)
	}

	_, err = f.deposits.PayRDInstallment(ctx, f.customer, rd.Deposit.ID, 1)
	expectKind(t, err, commons.ErrValidation)

	_, err = f.deposits.MarkRDInstallmentMissed(ctx, f.customer, rd.Deposit.ID, 2, models.InstallmentActionRequest{})
	expectKind(t, err, commons.ErrUnauthorized)

	missed, err := f.deposits.MarkRDInstallmentMissed(ctx, f.admin, rd.Deposit.ID, 2, models.InstallmentActionRequest{Penalty: "25"})
	if err != nil {
		t.Fatalf("mark missed: %v", err)
	}
	if missed.Data.Status != "MISSED" || missed.Data.Penalty != "25.00" {
		t.Fatalf("unexpected installment %+v", *missed.Data)
	}

	paid, err = f.deposits.PayRDInstallment(ctx, f.customer, rd.Deposit.ID, 2)
	if err != nil {
		t.Fatalf("pay missed installment: %v", err)
	}
	if paid.Data.Deposit.PaidInstallments != 2 {
		t.Fatalf("expected 2 paid installments, got %d", paid.Data.Deposit.PaidInstallments)
	}

	closed, err := f.deposits.CloseRecurringDeposit(ctx, f.customer, rd.Deposit.ID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Data.ClosureAmount != "2000.00" || closed.Data.InterestEarned != "0.00" {
		t.Fatalf("expected deposited total back without interest, got %+v", *closed.Data)
	}

	_, err = f.deposits.PayRDInstallment(ctx, f.customer, rd.Deposit.ID, 3)
	expectKind(t, err, commons.ErrValidation)
}

func TestDepositServiceListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.mustOpen(t, f.customer, "SAVINGS", "1000")
	theirs := f.mustOpen(t, f.other, "SAVINGS", "1000")

	first := f.mustOpenFD(t, mine.ID, "50000", 12)
	second := f.mustOpenFD(t, mine.ID, "20000", 6)
	otherFD, err := f.deposits.OpenFixedDeposit(ctx, f.admin, models.OpenFixedDepositRequest{AccountID: theirs.ID, Principal: "10000", TenureMonths: 12})
	if err != nil {
		t.Fatalf("open fixed deposit for another user: %v", err)
	}
	rd := f.mustOpenRD(t, mine.ID, "500", 12)
	if _, err := f.deposits.CloseFixedDeposit(ctx, f.customer, first.ID); err != nil {
		t.Fatalf("close fixed deposit: %v", err)
	}

	fds, err := f.deposits.ListFixedDeposits(ctx, f.customer, f.customer.ID)
	if err != nil {
		t.Fatalf("list own fixed deposits: %v", err)
	}
	if got := *fds.Data; len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("expected own deposits newest first, got %+v", got)
	}
	rds, err := f.deposits.ListRecurringDeposits(ctx, f.admin, f.customer.ID)
	if err != nil {
		t.Fatalf("admin lists recurring deposits: %v", err)
	}
	if got := *rds.Data; len(got) != 1 || got[0].ID != rd.Deposit.ID {
		t.Fatalf("expected one recurring deposit, got %+v", got)
	}
	_, err = f.deposits.ListFixedDeposits(ctx, f.other, f.customer.ID)
	expectKind(t, err, commons.ErrUnauthorized)

	all, err := f.deposits.ListAllFixedDeposits(ctx, f.admin, "")
	if err != nil {
		t.Fatalf("list all fixed deposits: %v", err)
	}
	if got := *all.Data; len(got) != 3 || got[0].ID != otherFD.Data.ID {
		t.Fatalf("expected three deposits newest first, got %+v", got)
	}
	active, err := f.deposits.ListAllFixedDeposits(ctx, f.admin, "active")
	if err != nil {
		t.Fatalf("list active fixed deposits: %v", err)
	}
	if got := *active.Data; len(got) != 2 {
		t.Fatalf("expected two active deposits, got %+v", got)
	}
	closed, _ := f.deposits.ListAllFixedDeposits(ctx, f.admin, "PREMATURE_CLOSED")
	if got := *closed.Data; len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("expected the closed deposit only, got %+v", got)
	}
	allRDs, err := f.deposits.ListAllRecurringDeposits(ctx, f.admin, "ACTIVE")
	if err != nil || len(*allRDs.Data) != 1 {
		t.Fatalf("expected one active recurring deposit, got %v %v", allRDs.Data, err)
	}

	_, err = f.deposits.ListAllFixedDeposits(ctx, f.admin, "MATURED")
	expectKind(t, err, commons.ErrValidation)
	_, err = f.deposits.ListAllRecurringDeposits(ctx, f.customer, "")
	expectKind(t, err, commons.ErrUnauthorized)
}
