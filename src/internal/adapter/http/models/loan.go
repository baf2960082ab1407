package models

import (
	"strings"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type ApplyLoanRequest struct {
	UserID       int64  `json:"userId"`
	AccountID    int64  `json:"accountId"`
	LoanType     string `json:"loanType"`
	Principal    string `json:"principal"`
	TenureMonths int    `json:"tenureMonths"`
}

func (r ApplyLoanRequest) Validate() error {
	var errs fieldErrors

	errs.requireID("userId", r.UserID)
	errs.requireID("accountId", r.AccountID)
	loanType := strings.ToUpper(strings.TrimSpace(r.LoanType))
	if loanType != "" && domain.LoanType(loanType) != domain.LoanTypePersonal {
		errs.add("loanType must be PERSONAL")
	}
	errs.requireAmount("principal", r.Principal)
	if r.TenureMonths <= 0 {
		errs.add("tenureMonths is required")
	}

	return errs.err()
}

type LoanDecisionRequest struct {
	Reason string `json:"reason,omitempty"`
}

type InstallmentActionRequest struct {
	Penalty string `json:"penalty,omitempty"`
}

func (r InstallmentActionRequest) Validate() error {
	var errs fieldErrors
	if strings.TrimSpace(r.Penalty) != "" && strings.TrimSpace(r.Penalty) != "0" {
		errs.requireAmount("penalty", r.Penalty)
	}
	return errs.err()
}

type EMIQuoteResponse struct {
	Principal     string `json:"principal"`
	AnnualRate    string `json:"annualRate"`
	TenureMonths  int    `json:"tenureMonths"`
	EMI           string `json:"emi"`
	TotalInterest string `json:"totalInterest"`
	TotalPayable  string `json:"totalPayable"`
}

type LoanResponse struct {
	ID                 int64  `json:"id"`
	UserID             int64  `json:"userId"`
	AccountID          int64  `json:"accountId"`
	LoanType           string `json:"loanType"`
	Principal          string `json:"principal"`
	AnnualRate         string `json:"annualRate"`
	TenureMonths       int    `json:"tenureMonths"`
	EMI                string `json:"emi"`
	TotalInterest      string `json:"totalInterest"`
	RemainingPrincipal string `json:"remainingPrincipal"`
	Status             string `json:"status"`
	Reference          string `json:"reference"`
	SanctionedOn       string `json:"sanctionedOn,omitempty"`
	DisbursedOn        string `json:"disbursedOn,omitempty"`
	CreatedAt          string `json:"createdAt"`
}

type InstallmentResponse struct {
	Number    int    `json:"number"`
	DueDate   string `json:"dueDate"`
	Principal string `json:"principal"`
	Interest  string `json:"interest"`
	Total     string `json:"total"`
	Status    string `json:"status"`
	Penalty   string `json:"penalty"`
	PaidOn    string `json:"paidOn,omitempty"`
}

type ScheduleResponse struct {
	Loan         LoanResponse          `json:"loan"`
	Installments []InstallmentResponse `json:"installments"`
}

type InstallmentPaymentResponse struct {
	Loan        LoanResponse        `json:"loan"`
	Installment InstallmentResponse `json:"installment"`
}
