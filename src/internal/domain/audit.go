package domain

import "time"

const (
	ActionAccountOpen      = "ACCOUNT_OPEN"
	ActionAccountFreeze    = "ACCOUNT_FREEZE"
	ActionAccountUnfreeze  = "ACCOUNT_UNFREEZE"
	ActionAccountClose     = "ACCOUNT_CLOSE"
	ActionCashDeposit      = "CASH_DEPOSIT"
	ActionCashWithdrawal   = "CASH_WITHDRAWAL"
	ActionTransfer         = "TRANSFER"
	ActionLoanApply        = "LOAN_APPLY"
	ActionLoanApprove      = "LOAN_APPROVE"
	ActionLoanReject       = "LOAN_REJECT"
	ActionLoanDisburse     = "LOAN_DISBURSE"
	ActionLoanDefault      = "LOAN_DEFAULT"
	ActionLoanEMIPaid      = "LOAN_EMI_PAID"
	ActionLoanEMIOverdue   = "LOAN_EMI_OVERDUE"
	ActionFDOpen           = "FD_OPEN"
	ActionFDPrematureClose = "FD_PREMATURE_CLOSE"
	ActionRDOpen           = "RD_OPEN"
	ActionRDInstallment    = "RD_INSTALLMENT_PAID"
	ActionRDMissed         = "RD_INSTALLMENT_MISSED"
	ActionRDPrematureClose = "RD_PREMATURE_CLOSE"
	ActionActorCreate      = "ACTOR_CREATE"
)

type AuditEntry struct {
	ID        int64
	ActorID   int64
	Role      Role
	Action    string
	Details   map[string]any
	CreatedAt time.Time
}

type NotificationType string

const (
	NotificationTransaction NotificationType = "TRANSACTION_ALERT"
	NotificationLowBalance  NotificationType = "BALANCE_ALERT"
)

type Notification struct {
	ID        int64
	UserID    int64
	Type      NotificationType
	Channel   string
	Message   string
	Status    string
	CreatedAt time.Time
}
