package services

import (
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/api-sage/retail-ledger-engine/src/internal/money"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/amortization"
	"github.com/api-sage/retail-ledger-engine/src/internal/usecase/creditscore"
)

func toAccountResponse(a domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:               a.ID,
		UserID:           a.UserID,
		AccountNumber:    a.AccountNumber,
		AccountType:      string(a.AccountType),
		Balance:          money.Format(a.Balance),
		AvailableBalance: money.Format(a.AvailableBalance()),
		MinBalance:       money.Format(a.MinBalance),
		OverdraftLimit:   money.Format(a.OverdraftLimit),
		InterestRate:     money.Format(a.InterestRate),
		Status:           string(a.Status),
		BalanceStatus:    a.BalanceStatus(),
		OpenedOn:         a.OpenedOn.Format(dateLayout),
		CreatedAt:        a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        a.UpdatedAt.Format(time.RFC3339),
	}
}

func toTransactionResponse(t domain.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID:               t.ID,
		AccountID:        t.AccountID,
		RelatedAccountID: t.RelatedAccountID,
		Type:             string(t.Type),
		Amount:           money.Format(t.Amount),
		BalanceAfter:     money.Format(t.BalanceAfter),
		Reference:        t.Reference,
		Narration:        t.Narration,
		PerformedBy:      t.PerformedBy,
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
	}
}

func toLoanResponse(l domain.Loan) models.LoanResponse {
	return models.LoanResponse{
		ID:                 l.ID,
		UserID:             l.UserID,
		AccountID:          l.AccountID,
		LoanType:           string(l.LoanType),
		Principal:          money.Format(l.Principal),
		AnnualRate:         money.Format(l.AnnualRate),
		TenureMonths:       l.TenureMonths,
		EMI:                money.Format(l.EMI),
		TotalInterest:      money.Format(l.TotalInterest),
		RemainingPrincipal: money.Format(l.RemainingPrincipal),
		Status:             string(l.Status),
		Reference:          l.Reference,
		SanctionedOn:       formatDate(l.SanctionedOn),
		DisbursedOn:        formatDate(l.DisbursedOn),
		CreatedAt:          l.CreatedAt.Format(time.RFC3339),
	}
}

func toLoanResponses(loans []domain.Loan) []models.LoanResponse {
	out := make([]models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, toLoanResponse(loan))
	}
	return out
}

func toInstallmentResponse(i domain.LoanInstallment) models.InstallmentResponse {
	return models.InstallmentResponse{
		Number:    i.Number,
		DueDate:   i.DueDate.Format(dateLayout),
		Principal: money.Format(i.Principal),
		Interest:  money.Format(i.Interest),
		Total:     money.Format(i.Total),
		Status:    string(i.Status),
		Penalty:   money.Format(i.Penalty),
		PaidOn:    formatDate(i.PaidOn),
	}
}

func toInstallmentResponses(installments []domain.LoanInstallment) []models.InstallmentResponse {
	out := make([]models.InstallmentResponse, 0, len(installments))
	for _, installment := range installments {
		out = append(out, toInstallmentResponse(installment))
	}
	return out
}

func toQuoteResponse(q amortization.LoanQuote) models.EMIQuoteResponse {
	return models.EMIQuoteResponse{
		Principal:     money.Format(q.Principal),
		AnnualRate:    money.Format(q.AnnualRate),
		TenureMonths:  q.TenureMonths,
		EMI:           money.Format(q.EMI),
		TotalInterest: money.Format(q.TotalInterest),
		TotalPayable:  money.Format(q.TotalPayable),
	}
}

func toFixedDepositResponse(fd domain.FixedDeposit) models.FixedDepositResponse {
	resp := models.FixedDepositResponse{
		ID:             fd.ID,
		AccountID:      fd.AccountID,
		Principal:      money.Format(fd.Principal),
		Rate:           money.Format(fd.Rate),
		TenureMonths:   fd.TenureMonths,
		StartDate:      fd.StartDate.Format(dateLayout),
		MaturityDate:   fd.MaturityDate.Format(dateLayout),
		MaturityAmount: money.Format(fd.MaturityAmount),
		PayoutMode:     string(fd.PayoutMode),
		Status:         string(fd.Status),
		ClosedOn:       formatDate(fd.ClosedOn),
	}
	if fd.ClosureAmount != nil {
		resp.ClosureAmount = money.Format(*fd.ClosureAmount)
	}
	return resp
}

func toRecurringDepositResponse(rd domain.RecurringDeposit) models.RecurringDepositResponse {
	resp := models.RecurringDepositResponse{
		ID:                rd.ID,
		AccountID:         rd.AccountID,
		InstallmentAmount: money.Format(rd.InstallmentAmount),
		TotalInstallments: rd.TotalInstallments,
		PaidInstallments:  rd.PaidInstallments,
		Rate:              money.Format(rd.Rate),
		StartDate:         rd.StartDate.Format(dateLayout),
		MaturityDate:      rd.MaturityDate.Format(dateLayout),
		MaturityAmount:    money.Format(rd.MaturityAmount),
		Status:            string(rd.Status),
		NextDueDate:       formatDate(rd.NextDueDate),
		ClosedOn:          formatDate(rd.ClosedOn),
	}
	if rd.ClosureAmount != nil {
		resp.ClosureAmount = money.Format(*rd.ClosureAmount)
	}
	return resp
}

func toFixedDepositResponses(deposits []domain.FixedDeposit) []models.FixedDepositResponse {
	out := make([]models.FixedDepositResponse, 0, len(deposits))
	for _, fd := range deposits {
		out = append(out, toFixedDepositResponse(fd))
	}
	return out
}

func toRecurringDepositResponses(deposits []domain.RecurringDeposit) []models.RecurringDepositResponse {
	out := make([]models.RecurringDepositResponse, 0, len(deposits))
	for _, rd := range deposits {
		out = append(out, toRecurringDepositResponse(rd))
	}
	return out
}

func toRDInstallmentResponse(i domain.RDInstallment) models.RDInstallmentResponse {
	return models.RDInstallmentResponse{
		Number:  i.Number,
		DueDate: i.DueDate.Format(dateLayout),
		Amount:  money.Format(i.Amount),
		Status:  string(i.Status),
		Penalty: money.Format(i.Penalty),
		PaidOn:  formatDate(i.PaidOn),
	}
}

func toCreditScoreResponse(score domain.CreditScore, sub *creditscore.SubScores) models.CreditScoreResponse {
	resp := models.CreditScoreResponse{
		UserID:        score.UserID,
		Score:         score.Score,
		ReasonSummary: score.ReasonSummary,
	}
	if !score.CalculatedAt.IsZero() {
		resp.CalculatedAt = score.CalculatedAt.Format(time.RFC3339)
	}
	if sub != nil {
		resp.SubScores = &models.SubScoresResponse{
			PaymentHistory: sub.PaymentHistory,
			Utilization:    sub.Utilization,
			AccountAge:     sub.AccountAge,
			Diversity:      sub.Diversity,
			Inquiries:      sub.Inquiries,
		}
	}
	return resp
}

func toActorResponse(a domain.Actor) models.ActorResponse {
	return models.ActorResponse{
		ID:        a.ID,
		Username:  a.Username,
		Role:      string(a.Role),
		Active:    a.Active,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}
