// Package memory is an in-process implementation of every repository and of
// the unit of work. It backs tests and the STORE=memory mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/retail-ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-ledger-engine/src/internal/domain"
)

type state struct {
	seq              map[string]int64
	accounts         map[int64]domain.Account
	transactions     []domain.Transaction
	loans            map[int64]domain.Loan
	loanInstallments map[int64][]domain.LoanInstallment
	fixedDeposits    map[int64]domain.FixedDeposit
	recurring        map[int64]domain.RecurringDeposit
	rdInstallments   map[int64][]domain.RDInstallment
	scores           []domain.CreditScore
	actors           map[int64]domain.Actor
	audit            []domain.AuditEntry
	notifications    []domain.Notification
}

func newState() *state {
	return &state{
		seq:              map[string]int64{},
		accounts:         map[int64]domain.Account{},
		loans:            map[int64]domain.Loan{},
		loanInstallments: map[int64][]domain.LoanInstallment{},
		fixedDeposits:    map[int64]domain.FixedDeposit{},
		recurring:        map[int64]domain.RecurringDeposit{},
		rdInstallments:   map[int64][]domain.RDInstallment{},
		actors:           map[int64]domain.Actor{},
	}
}

func (s *state) clone() *state {
	c := &state{
		seq:              make(map[string]int64, len(s.seq)),
		accounts:         make(map[int64]domain.Account, len(s.accounts)),
		transactions:     append([]domain.Transaction(nil), s.transactions...),
		loans:            make(map[int64]domain.Loan, len(s.loans)),
		loanInstallments: make(map[int64][]domain.LoanInstallment, len(s.loanInstallments)),
		fixedDeposits:    make(map[int64]domain.FixedDeposit, len(s.fixedDeposits)),
		recurring:        make(map[int64]domain.RecurringDeposit, len(s.recurring)),
		rdInstallments:   make(map[int64][]domain.RDInstallment, len(s.rdInstallments)),
		scores:           append([]domain.CreditScore(nil), s.scores...),
		actors:           make(map[int64]domain.Actor, len(s.actors)),
		audit:            append([]domain.AuditEntry(nil), s.audit...),
		notifications:    append([]domain.Notification(nil), s.notifications...),
	}
	for k, v := range s.seq {
		c.seq[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.loans {
		c.loans[k] = v
	}
	for k, v := range s.loanInstallments {
		c.loanInstallments[k] = append([]domain.LoanInstallment(nil), v...)
	}
	for k, v := range s.fixedDeposits {
		c.fixedDeposits[k] = v
	}
	for k, v := range s.recurring {
		c.recurring[k] = v
	}
	for k, v := range s.rdInstallments {
		c.rdInstallments[k] = append([]domain.RDInstallment(nil), v...)
	}
	for k, v := range s.actors {
		c.actors[k] = v
	}
	return c
}

func (s *state) next(name string) int64 {
	s.seq[name]++
	return s.seq[name]
}

// Store serialises every transaction behind one mutex. A transaction works
// on a private copy of the state which replaces the shared one on commit.
type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// SetClock fixes the timestamps the store stamps on created rows.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// WithinTx must not be re-entered from fn: the callback runs under the
// store's write lock.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repo_interfaces.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.st.clone()
	if err := fn(ctx, &memTx{st: working, now: s.now}); err != nil {
		return err
	}
	s.st = working
	return nil
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state, now time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st, s.now())
}

type memTx struct {
	st  *state
	now func() time.Time
}

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}

func sortNewestFirst[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) > id(items[j]) })
}

type (
	accountRepo      struct{ *Store }
	transactionRepo  struct{ *Store }
	loanRepo         struct{ *Store }
	depositRepo      struct{ *Store }
	creditScoreRepo  struct{ *Store }
	creditProfile    struct{ *Store }
	actorRepo        struct{ *Store }
	auditRepo        struct{ *Store }
	notificationRepo struct{ *Store }
)

func (s *Store) Accounts() repo_interfaces.AccountRepository {
	return accountRepo{s}
}

func (s *Store) Transactions() repo_interfaces.TransactionRepository {
	return transactionRepo{s}
}

func (s *Store) Loans() repo_interfaces.LoanRepository {
	return loanRepo{s}
}

func (s *Store) Deposits() repo_interfaces.DepositRepository {
	return depositRepo{s}
}

func (s *Store) CreditScores() repo_interfaces.CreditScoreRepository {
	return creditScoreRepo{s}
}

func (s *Store) CreditProfile() repo_interfaces.CreditProfileRepository {
	return creditProfile{s}
}

func (s *Store) Actors() repo_interfaces.ActorRepository {
	return actorRepo{s}
}

func (s *Store) Audit() repo_interfaces.AuditRepository {
	return auditRepo{s}
}

func (s *Store) Notifications() repo_interfaces.NotificationRepository {
	return notificationRepo{s}
}
