package models

import "strings"

type CashRequest struct {
	AccountID int64  `json:"accountId"`
	Amount    string `json:"amount"`
	Reference string `json:"reference,omitempty"`
	Narration string `json:"narration,omitempty"`
}

func (r CashRequest) Validate() error {
	var errs fieldErrors

	errs.requireID("accountId", r.AccountID)
	errs.requireAmount("amount", r.Amount)
	validateReference(&errs, r.Reference)

	return errs.err()
}

type TransferRequest struct {
	FromAccountID int64  `json:"fromAccountId"`
	ToAccountID   int64  `json:"toAccountId"`
	Amount        string `json:"amount"`
	Reference     string `json:"reference,omitempty"`
	Narration     string `json:"narration,omitempty"`
}

func (r TransferRequest) Validate() error {
	var errs fieldErrors

	errs.requireID("fromAccountId", r.FromAccountID)
	errs.requireID("toAccountId", r.ToAccountID)
	if r.FromAccountID > 0 && r.FromAccountID == r.ToAccountID {
		errs.add("cannot transfer to the same account")
	}
	errs.requireAmount("amount", r.Amount)
	validateReference(&errs, r.Reference)

	return errs.err()
}

func validateReference(errs *fieldErrors, reference string) {
	reference = strings.TrimSpace(reference)
	if len(reference) > 60 {
		errs.add("reference cannot exceed 60 characters")
	}
	if strings.HasSuffix(reference, "-D") || strings.HasSuffix(reference, "-C") {
		errs.add("reference cannot end with -D or -C")
	}
}

type TransactionResponse struct {
	ID               int64  `json:"id"`
	AccountID        int64  `json:"accountId"`
	RelatedAccountID *int64 `json:"relatedAccountId,omitempty"`
	Type             string `json:"type"`
	Amount           string `json:"amount"`
	BalanceAfter     string `json:"balanceAfter"`
	Reference        string `json:"reference"`
	Narration        string `json:"narration"`
	PerformedBy      int64  `json:"performedBy"`
	CreatedAt        string `json:"createdAt"`
}

type TransferResponse struct {
	Reference string              `json:"reference"`
	Debit     TransactionResponse `json:"debit"`
	Credit    TransactionResponse `json:"credit"`
}

type StatementResponse struct {
	AccountID    int64                 `json:"accountId"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
	Transactions []TransactionResponse `json:"transactions"`
}

type SummaryResponse struct {
	AccountID        int64  `json:"accountId"`
	TotalCredits     string `json:"totalCredits"`
	TotalDebits      string `json:"totalDebits"`
	TransactionCount int    `json:"transactionCount"`
	Balance          string `json:"balance"`
	ReplayedBalance  string `json:"replayedBalance"`
	Reconciled       bool   `json:"reconciled"`
}
