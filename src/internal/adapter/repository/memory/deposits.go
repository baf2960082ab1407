package memory

import (
	"context"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

func (r depositRepo) CreateFixedDeposit(_ context.Context, fd domain.FixedDeposit) (domain.FixedDeposit, error) {
	r.write(func(st *state, now time.Time) {
		fd.ID = st.next("fixed_deposits")
		fd.CreatedAt = now
		fd.UpdatedAt = now
		st.fixedDeposits[fd.ID] = fd
	})
	return fd, nil
}

func (r depositRepo) GetFixedDeposit(_ context.Context, id int64) (domain.FixedDeposit, error) {
	var (
		fd domain.FixedDeposit
		ok bool
	)
	r.read(func(st *state) { fd, ok = st.fixedDeposits[id] })
	if !ok {
		return domain.FixedDeposit{}, commons.ErrRecordNotFound
	}
	return fd, nil
}

func (r depositRepo) GetRecurringDeposit(_ context.Context, id int64) (domain.RecurringDeposit, error) {
	var (
		rd domain.RecurringDeposit
		ok bool
	)
	r.read(func(st *state) { rd, ok = st.recurring[id] })
	if !ok {
		return domain.RecurringDeposit{}, commons.ErrRecordNotFound
	}
	return rd, nil
}

func (r depositRepo) ListRDInstallments(_ context.Context, rdID int64) ([]domain.RDInstallment, error) {
	var installments []domain.RDInstallment
	r.read(func(st *state) {
		installments = append([]domain.RDInstallment{}, st.rdInstallments[rdID]...)
	})
	return installments, nil
}

func (r depositRepo) ListFixedDepositsByUser(_ context.Context, userID int64) ([]domain.FixedDeposit, error) {
	deposits := []domain.FixedDeposit{}
	r.read(func(st *state) {
		for _, fd := range st.fixedDeposits {
			if st.accounts[fd.AccountID].UserID == userID {
				deposits = append(deposits, fd)
			}
		}
	})
	sortNewestFirst(deposits, func(fd domain.FixedDeposit) int64 { return fd.ID })
	return deposits, nil
}

func (r depositRepo) ListRecurringDepositsByUser(_ context.Context, userID int64) ([]domain.RecurringDeposit, error) {
	deposits := []domain.RecurringDeposit{}
	r.read(func(st *state) {
		for _, rd := range st.recurring {
			if st.accounts[rd.AccountID].UserID == userID {
				deposits = append(deposits, rd)
			}
		}
	})
	sortNewestFirst(deposits, func(rd domain.RecurringDeposit) int64 { return rd.ID })
	return deposits, nil
}

func (r depositRepo) ListFixedDeposits(_ context.Context, status domain.DepositStatus) ([]domain.FixedDeposit, error) {
	deposits := []domain.FixedDeposit{}
	r.read(func(st *state) {
		for _, fd := range st.fixedDeposits {
			if status == "" || fd.Status == status {
				deposits = append(deposits, fd)
			}
		}
	})
	sortNewestFirst(deposits, func(fd domain.FixedDeposit) int64 { return fd.ID })
	return deposits, nil
}

func (r depositRepo) ListRecurringDeposits(_ context.Context, status domain.DepositStatus) ([]domain.RecurringDeposit, error) {
	deposits := []domain.RecurringDeposit{}
	r.read(func(st *state) {
		for _, rd := range st.recurring {
			if status == "" || rd.Status == status {
				deposits = append(deposits, rd)
			}
		}
	})
	sortNewestFirst(deposits, func(rd domain.RecurringDeposit) int64 { return rd.ID })
	return deposits, nil
}

func (r depositRepo) ListMaturedFixedDepositIDs(_ context.Context, asOf time.Time) ([]int64, error) {
	ids := []int64{}
	r.read(func(st *state) {
		for id, fd := range st.fixedDeposits {
			if fd.Status == domain.DepositStatusActive && !fd.MaturityDate.After(asOf) {
				ids = append(ids, id)
			}
		}
	})
	sortByID(ids, func(id int64) int64 { return id })
	return ids, nil
}

func (r depositRepo) ListMaturedRecurringDepositIDs(_ context.Context, asOf time.Time) ([]int64, error) {
	ids := []int64{}
	r.read(func(st *state) {
		for id, rd := range st.recurring {
			if rd.Status == domain.DepositStatusActive && !rd.MaturityDate.After(asOf) {
				ids = append(ids, id)
			}
		}
	})
	sortByID(ids, func(id int64) int64 { return id })
	return ids, nil
}

func (t *memTx) LockFixedDeposit(_ context.Context, id int64) (domain.FixedDeposit, error) {
	fd, ok := t.st.fixedDeposits[id]
	if !ok {
		return domain.FixedDeposit{}, commons.ErrRecordNotFound
	}
	return fd, nil
}

func (t *memTx) UpdateFixedDeposit(_ context.Context, fd domain.FixedDeposit) error {
	if _, ok := t.st.fixedDeposits[fd.ID]; !ok {
		return commons.ErrRecordNotFound
	}
	fd.UpdatedAt = t.now()
	t.st.fixedDeposits[fd.ID] = fd
	return nil
}

func (t *memTx) CreateRecurringDeposit(_ context.Context, rd domain.RecurringDeposit) (domain.RecurringDeposit, error) {
	now := t.now()
	rd.ID = t.st.next("recurring_deposits")
	rd.CreatedAt = now
	rd.UpdatedAt = now
	t.st.recurring[rd.ID] = rd
	return rd, nil
}

func (t *memTx) InsertRDInstallments(_ context.Context, installments []domain.RDInstallment) error {
	for _, installment := range installments {
		if _, ok := t.st.recurring[installment.RDID]; !ok {
			return commons.ErrRecordNotFound
		}
		installment.ID = t.st.next("rd_installments")
		t.st.rdInstallments[installment.RDID] = append(t.st.rdInstallments[installment.RDID], installment)
	}
	return nil
}

func (t *memTx) LockRecurringDeposit(_ context.Context, id int64) (domain.RecurringDeposit, error) {
	rd, ok := t.st.recurring[id]
	if !ok {
		return domain.RecurringDeposit{}, commons.ErrRecordNotFound
	}
	return rd, nil
}

func (t *memTx) UpdateRecurringDeposit(_ context.Context, rd domain.RecurringDeposit) error {
	if _, ok := t.st.recurring[rd.ID]; !ok {
		return commons.ErrRecordNotFound
	}
	rd.UpdatedAt = t.now()
	t.st.recurring[rd.ID] = rd
	return nil
}

func (t *memTx) LockRDInstallment(_ context.Context, rdID int64, number int) (domain.RDInstallment, error) {
	for _, installment := range t.st.rdInstallments[rdID] {
		if installment.Number == number {
			return installment, nil
		}
	}
	return domain.RDInstallment{}, commons.ErrRecordNotFound
}

func (t *memTx) UpdateRDInstallment(_ context.Context, installment domain.RDInstallment) error {
	rows := t.st.rdInstallments[installment.RDID]
	for i := range rows {
		if rows[i].Number == installment.Number {
			installment.ID = rows[i].ID
			rows[i] = installment
			return nil
		}
	}
	return commons.ErrRecordNotFound
}

// NextDueRDInstallment returns the due date of the lowest-numbered DUE
// installment, or nil once none remain.
func (t *memTx) NextDueRDInstallment(_ context.Context, rdID int64) (*time.Time, error) {
	var next *domain.RDInstallment
	for i, installment := range t.st.rdInstallments[rdID] {
		if installment.Status != domain.RDInstallmentDue {
			continue
		}
		if next == nil || installment.Number < next.Number {
			next = &t.st.rdInstallments[rdID][i]
		}
	}
	if next == nil {
		return nil, nil
	}
	due := next.DueDate
	return &due, nil
}
