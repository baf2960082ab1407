package models

import (
	"strings"

	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type OpenAccountRequest struct {
	UserID         int64  `json:"userId"`
	AccountType    string `json:"accountType"`
	InitialDeposit string `json:"initialDeposit"`
	MonthlyIncome  string `json:"monthlyIncome,omitempty"`
}

func (r OpenAccountRequest) Validate() error {
	var errs fieldErrors

	errs.requireID("userId", r.UserID)
	if !domain.AccountType(strings.ToUpper(strings.TrimSpace(r.AccountType))).Valid() {
		errs.add("accountType must be one of SAVINGS, CURRENT, SALARY")
	}
	if strings.TrimSpace(r.InitialDeposit) != "" && strings.HasPrefix(strings.TrimSpace(r.InitialDeposit), "-") {
		errs.add("initialDeposit cannot be negative")
	}
	if strings.TrimSpace(r.MonthlyIncome) != "" {
		errs.requireAmount("monthlyIncome", r.MonthlyIncome)
	}

	return errs.err()
}

type AccountResponse struct {
	ID               int64  `json:"id"`
	UserID           int64  `json:"userId"`
	AccountNumber    string `json:"accountNumber"`
	AccountType      string `json:"accountType"`
	Balance          string `json:"balance"`
	AvailableBalance string `json:"availableBalance"`
	MinBalance       string `json:"minBalance"`
	OverdraftLimit   string `json:"overdraftLimit"`
	InterestRate     string `json:"interestRate"`
	Status           string `json:"status"`
	BalanceStatus    string `json:"balanceStatus"`
	OpenedOn         string `json:"openedOn"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

type SufficiencyResponse struct {
	AccountID        int64  `json:"accountId"`
	Sufficient       bool   `json:"sufficient"`
	Balance          string `json:"balance"`
	AvailableBalance string `json:"availableBalance"`
	Requested        string `json:"requested"`
	Shortfall        string `json:"shortfall"`
	UsesOverdraft    bool   `json:"usesOverdraft"`
}

// ChangeStatusRequest carries FREEZE, UNFREEZE or CLOSE.
type ChangeStatusRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

func (r ChangeStatusRequest) Validate() error {
	var errs fieldErrors

	switch strings.ToUpper(strings.TrimSpace(r.Action)) {
	case "FREEZE", "UNFREEZE", "CLOSE":
	default:
		errs.add("action must be one of FREEZE, UNFREEZE, CLOSE")
	}
	if strings.TrimSpace(r.Reason) == "" {
		errs.add("reason is required")
	}

	return errs.err()
}
