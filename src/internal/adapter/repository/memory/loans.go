package memory

import (
	"context"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

func (r loanRepo) Create(_ context.Context, loan domain.Loan) (domain.Loan, error) {
	r.write(func(st *state, now time.Time) {
		loan.ID = st.next("loans")
		loan.CreatedAt = now
		loan.UpdatedAt = now
		st.loans[loan.ID] = loan
	})
	return loan, nil
}

func (r loanRepo) GetByID(_ context.Context, id int64) (domain.Loan, error) {
	var (
		loan domain.Loan
		ok   bool
	)
	r.read(func(st *state) { loan, ok = st.loans[id] })
	if !ok {
		return domain.Loan{}, commons.ErrRecordNotFound
	}
	return loan, nil
}

func (r loanRepo) ListByUser(_ context.Context, userID int64) ([]domain.Loan, error) {
	loans := []domain.Loan{}
	r.read(func(st *state) {
		for _, loan := range st.loans {
			if loan.UserID == userID {
				loans = append(loans, loan)
			}
		}
	})
	sortByID(loans, func(l domain.Loan) int64 { return l.ID })
	return loans, nil
}

func (r loanRepo) ListInstallments(_ context.Context, loanID int64) ([]domain.LoanInstallment, error) {
	var installments []domain.LoanInstallment
	r.read(func(st *state) {
		installments = append([]domain.LoanInstallment{}, st.loanInstallments[loanID]...)
	})
	return installments, nil
}

func (t *memTx) LockLoan(_ context.Context, loanID int64) (domain.Loan, error) {
	loan, ok := t.st.loans[loanID]
	if !ok {
		return domain.Loan{}, commons.ErrRecordNotFound
	}
	return loan, nil
}

func (t *memTx) UpdateLoan(_ context.Context, loan domain.Loan) error {
	if _, ok := t.st.loans[loan.ID]; !ok {
		return commons.ErrRecordNotFound
	}
	loan.UpdatedAt = t.now()
	t.st.loans[loan.ID] = loan
	return nil
}

func (t *memTx) InsertLoanInstallments(_ context.Context, installments []domain.LoanInstallment) error {
	for _, installment := range installments {
		for _, existing := range t.st.loanInstallments[installment.LoanID] {
			if existing.Number == installment.Number {
				return commons.ErrAlreadyExists
			}
		}
		installment.ID = t.st.next("loan_installments")
		t.st.loanInstallments[installment.LoanID] = append(t.st.loanInstallments[installment.LoanID], installment)
	}
	return nil
}

func (t *memTx) LockLoanInstallment(_ context.Context, loanID int64, number int) (domain.LoanInstallment, error) {
	for _, installment := range t.st.loanInstallments[loanID] {
		if installment.Number == number {
			return installment, nil
		}
	}
	return domain.LoanInstallment{}, commons.ErrRecordNotFound
}

func (t *memTx) UpdateLoanInstallment(_ context.Context, installment domain.LoanInstallment) error {
	rows := t.st.loanInstallments[installment.LoanID]
	for i := range rows {
		if rows[i].Number == installment.Number {
			installment.ID = rows[i].ID
			rows[i] = installment
			return nil
		}
	}
	return commons.ErrRecordNotFound
}

func (r loanRepo) ListByStatus(_ context.Context, status domain.LoanStatus) ([]domain.Loan, error) {
	loans := []domain.Loan{}
	r.read(func(st *state) {
		for _, loan := range st.loans {
			if status == "" || loan.Status == status {
				loans = append(loans, loan)
			}
		}
	})
	sortNewestFirst(loans, func(l domain.Loan) int64 { return l.ID })
	return loans, nil
}

func (r loanRepo) ListOverdue(_ context.Context, asOf time.Time) ([]domain.Loan, error) {
	loans := []domain.Loan{}
	r.read(func(st *state) {
		for id, loan := range st.loans {
			if loan.Status != domain.LoanStatusActive {
				continue
			}
			for _, installment := range st.loanInstallments[id] {
				if installment.Status == domain.InstallmentOverdue ||
					(installment.Status == domain.InstallmentDue && installment.DueDate.Before(asOf)) {
					loans = append(loans, loan)
					break
				}
			}
		}
	})
	sortNewestFirst(loans, func(l domain.Loan) int64 { return l.ID })
	return loans, nil
}
