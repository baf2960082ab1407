package memory

import (
	"context"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

func (r creditScoreRepo) Create(_ context.Context, score domain.CreditScore) (domain.CreditScore, error) {
	r.write(func(st *state, now time.Time) {
		score.ID = st.next("credit_scores")
		if score.CalculatedAt.IsZero() {
			score.CalculatedAt = now
		}
		st.scores = append(st.scores, score)
	})
	return score, nil
}

func (r creditScoreRepo) Latest(_ context.Context, userID int64) (domain.CreditScore, error) {
	var (
		latest domain.CreditScore
		ok     bool
	)
	r.read(func(st *state) {
		for _, score := range st.scores {
			if score.UserID == userID && (!ok || !score.CalculatedAt.Before(latest.CalculatedAt)) {
				latest, ok = score, true
			}
		}
	})
	if !ok {
		return domain.CreditScore{}, commons.ErrRecordNotFound
	}
	return latest, nil
}

// History returns scores newest first.
func (r creditScoreRepo) History(_ context.Context, userID int64, limit int) ([]domain.CreditScore, error) {
	scores := []domain.CreditScore{}
	r.read(func(st *state) {
		for i := len(st.scores) - 1; i >= 0; i-- {
			if st.scores[i].UserID == userID {
				scores = append(scores, st.scores[i])
			}
		}
	})
	if limit > 0 && limit < len(scores) {
		scores = scores[:limit]
	}
	return scores, nil
}

func (r creditProfile) PaymentHistory(_ context.Context, userID int64, asOf time.Time) (domain.PaymentHistory, error) {
	var history domain.PaymentHistory
	r.read(func(st *state) {
		for loanID, loan := range st.loans {
			if loan.UserID != userID {
				continue
			}
			for _, installment := range st.loanInstallments[loanID] {
				if !installment.DueDate.Before(asOf) {
					continue
				}
				history.Total++
				switch {
				case installment.Status == domain.InstallmentPaid && installment.PaidOn != nil && !installment.PaidOn.After(installment.DueDate):
					history.OnTime++
				case installment.Status == domain.InstallmentOverdue:
					history.Overdue++
				}
			}
		}
	})
	return history, nil
}

func (r creditProfile) OverdraftUsage(_ context.Context, userID int64) (domain.OverdraftUsage, error) {
	usage := domain.OverdraftUsage{Limit: decimal.Zero, Used: decimal.Zero}
	r.read(func(st *state) {
		for _, account := range st.accounts {
			if account.UserID != userID || account.Status != domain.AccountStatusActive || !account.OverdraftLimit.IsPositive() {
				continue
			}
			usage.Limit = usage.Limit.Add(account.OverdraftLimit)
			if account.Balance.IsNegative() {
				usage.Used = usage.Used.Add(account.Balance.Neg())
			}
		}
	})
	return usage, nil
}

func (r creditProfile) OldestAccountOpenedOn(_ context.Context, userID int64) (*time.Time, error) {
	var oldest *time.Time
	r.read(func(st *state) {
		for _, account := range st.accounts {
			if account.UserID != userID || (account.Status != domain.AccountStatusActive && account.Status != domain.AccountStatusClosed) {
				continue
			}
			if oldest == nil || account.OpenedOn.Before(*oldest) {
				opened := account.OpenedOn
				oldest = &opened
			}
		}
	})
	return oldest, nil
}

func (r creditProfile) DistinctLoanTypes(_ context.Context, userID int64) (int, error) {
	types := map[domain.LoanType]struct{}{}
	r.read(func(st *state) {
		for _, loan := range st.loans {
			if loan.UserID == userID && (loan.Status == domain.LoanStatusActive || loan.Status == domain.LoanStatusClosed) {
				types[loan.LoanType] = struct{}{}
			}
		}
	})
	return len(types), nil
}

func (r creditProfile) LoanApplicationsSince(_ context.Context, userID int64, since time.Time) (int, error) {
	count := 0
	r.read(func(st *state) {
		for _, loan := range st.loans {
			if loan.UserID == userID && !loan.CreatedAt.Before(since) {
				count++
			}
		}
	})
	return count, nil
}
