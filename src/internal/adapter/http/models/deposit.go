package models

import (
	"strings"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type OpenFixedDepositRequest struct {
	AccountID    int64  `json:"accountId"`
	Principal    string `json:"principal"`
	TenureMonths int    `json:"tenureMonths"`
	PayoutMode   string `json:"payoutMode,omitempty"`
}

func (r OpenFixedDepositRequest) Validate() error {
	var errs fieldErrors

	errs.requireID("accountId", r.AccountID)
	errs.requireAmount("principal", r.Principal)
	if r.TenureMonths <= 0 {
		errs.add("tenureMonths is required")
	}
	mode := strings.ToUpper(strings.TrimSpace(r.PayoutMode))
	if mode != "" && !domain.PayoutMode(mode).Valid() {
		errs.add("payoutMode must be one of MATURITY, MONTHLY, QUARTERLY")
	}

	return errs.err()
}

type OpenRecurringDepositRequest struct {
	AccountID         int64  `json:"accountId"`
	InstallmentAmount string `json:"installmentAmount"`
	TenureMonths      int    `json:"tenureMonths"`
}

func (r OpenRecurringDepositRequest) Validate() error {
	var errs fieldErrors

	errs.requireID("accountId", r.AccountID)
	errs.requireAmount("installmentAmount", r.InstallmentAmount)
	if r.TenureMonths <= 0 {
		errs.add("tenureMonths is required")
	}

	return errs.err()
}

type FixedDepositResponse struct {
	ID             int64  `json:"id"`
	AccountID      int64  `json:"accountId"`
	Principal      string `json:"principal"`
	Rate           string `json:"rate"`
	TenureMonths   int    `json:"tenureMonths"`
	StartDate      string `json:"startDate"`
	MaturityDate   string `json:"maturityDate"`
	MaturityAmount string `json:"maturityAmount"`
	PayoutMode     string `json:"payoutMode"`
	Status         string `json:"status"`
	ClosedOn       string `json:"closedOn,omitempty"`
	ClosureAmount  string `json:"closureAmount,omitempty"`
}

type RecurringDepositResponse struct {
	ID                int64  `json:"id"`
	AccountID         int64  `json:"accountId"`
	InstallmentAmount string `json:"installmentAmount"`
	TotalInstallments int    `json:"totalInstallments"`
	PaidInstallments  int    `json:"paidInstallments"`
	Rate              string `json:"rate"`
	StartDate         string `json:"startDate"`
	MaturityDate      string `json:"maturityDate"`
	MaturityAmount    string `json:"maturityAmount"`
	Status            string `json:"status"`
	NextDueDate       string `json:"nextDueDate,omitempty"`
	ClosedOn          string `json:"closedOn,omitempty"`
	ClosureAmount     string `json:"closureAmount,omitempty"`
}

type RDInstallmentResponse struct {
	Number  int    `json:"number"`
	DueDate string `json:"dueDate"`
	Amount  string `json:"amount"`
	Status  string `json:"status"`
	Penalty string `json:"penalty"`
	PaidOn  string `json:"paidOn,omitempty"`
}

type RDInstallmentPaymentResponse struct {
	Deposit     RecurringDepositResponse `json:"deposit"`
	Installment RDInstallmentResponse    `json:"installment"`
}

type DepositClosureResponse struct {
	ID             int64  `json:"id"`
	Status         string `json:"status"`
	ClosedOn       string `json:"closedOn"`
	AppliedRate    string `json:"appliedRate"`
	ClosureAmount  string `json:"closureAmount"`
	InterestEarned string `json:"interestEarned"`
	Penalty        string `json:"penalty"`
}

type MaturityScanResponse struct {
	AsOf                    string  `json:"asOf"`
	FixedDepositsClosed     []int64 `json:"fixedDepositsClosed"`
	RecurringDepositsClosed []int64 `json:"recurringDepositsClosed"`
}

type RecurringDepositScheduleResponse struct {
	Deposit      RecurringDepositResponse `json:"deposit"`
	Installments []RDInstallmentResponse  `json:"installments"`
}
