package memory

import (
	"context"
	"fmt"

	"github.com/api-sage/retail-ledger-engine/src/internal/commons"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

func (t *memTx) CreateAccount(_ context.Context, account domain.Account) (domain.Account, error) {
	for _, existing := range t.st.accounts {
		if existing.AccountNumber == account.AccountNumber {
			return domain.Account{}, fmt.Errorf("account number %s: %w", account.AccountNumber, commons.ErrAlreadyExists)
		}
	}

	now := t.now()
	account.ID = t.st.next("accounts")
	account.CreatedAt = now
	account.UpdatedAt = now
	t.st.accounts[account.ID] = account
	return account, nil
}

func (t *memTx) LockAccount(_ context.Context, accountID int64) (domain.Account, error) {
	account, ok := t.st.accounts[accountID]
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (t *memTx) UpdateAccountBalance(_ context.Context, accountID int64, balance decimal.Decimal) error {
	account, ok := t.st.accounts[accountID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	if balance.Add(account.OverdraftLimit).IsNegative() {
		return fmt.Errorf("%w: balance %s breaches overdraft limit", commons.ErrPersistence, balance.StringFixed(2))
	}
	account.Balance = balance
	account.UpdatedAt = t.now()
	t.st.accounts[accountID] = account
	return nil
}

func (t *memTx) UpdateAccountStatus(_ context.Context, accountID int64, status domain.AccountStatus) error {
	account, ok := t.st.accounts[accountID]
	if !ok {
		return commons.ErrRecordNotFound
	}
	account.Status = status
	account.UpdatedAt = t.now()
	t.st.accounts[accountID] = account
	return nil
}

func (t *memTx) ReferenceExists(_ context.Context, reference string) (bool, error) {
	for _, record := range t.st.transactions {
		if record.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) InsertTransaction(ctx context.Context, record domain.Transaction) (domain.Transaction, error) {
	exists, _ := t.ReferenceExists(ctx, record.Reference)
	if exists {
		return domain.Transaction{}, fmt.Errorf("reference %s: %w", record.Reference, commons.ErrDuplicateReference)
	}
	if _, ok := t.st.accounts[record.AccountID]; !ok {
		return domain.Transaction{}, commons.ErrRecordNotFound
	}

	record.ID = t.st.next("transactions")
	record.CreatedAt = t.now()
	t.st.transactions = append(t.st.transactions, record)
	return record, nil
}

func (r accountRepo) GetByID(_ context.Context, id int64) (domain.Account, error) {
	var (
		account domain.Account
		ok      bool
	)
	r.read(func(st *state) { account, ok = st.accounts[id] })
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (r accountRepo) GetByAccountNumber(_ context.Context, accountNumber string) (domain.Account, error) {
	var (
		account domain.Account
		ok      bool
	)
	r.read(func(st *state) {
		for _, candidate := range st.accounts {
			if candidate.AccountNumber == accountNumber {
				account, ok = candidate, true
				return
			}
		}
	})
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (r accountRepo) ListByUser(_ context.Context, userID int64) ([]domain.Account, error) {
	accounts := []domain.Account{}
	r.read(func(st *state) {
		for _, account := range st.accounts {
			if account.UserID == userID {
				accounts = append(accounts, account)
			}
		}
	})
	sortByID(accounts, func(a domain.Account) int64 { return a.ID })
	return accounts, nil
}

func (r transactionRepo) ListByAccount(_ context.Context, accountID int64, limit int, offset int) ([]domain.Transaction, error) {
	records := []domain.Transaction{}
	r.read(func(st *state) {
		for i := len(st.transactions) - 1; i >= 0; i-- {
			if st.transactions[i].AccountID == accountID {
				records = append(records, st.transactions[i])
			}
		}
	})
	if offset >= len(records) {
		return []domain.Transaction{}, nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

func (r transactionRepo) ListAllByAccount(_ context.Context, accountID int64) ([]domain.Transaction, error) {
	records := []domain.Transaction{}
	r.read(func(st *state) {
		for _, record := range st.transactions {
			if record.AccountID == accountID {
				records = append(records, record)
			}
		}
	})
	return records, nil
}

func (r transactionRepo) GetByReference(_ context.Context, reference string) (domain.Transaction, error) {
	var (
		record domain.Transaction
		ok     bool
	)
	r.read(func(st *state) {
		for _, candidate := range st.transactions {
			if candidate.Reference == reference {
				record, ok = candidate, true
				return
			}
		}
	})
	if !ok {
		return domain.Transaction{}, commons.ErrRecordNotFound
	}
	return record, nil
}
