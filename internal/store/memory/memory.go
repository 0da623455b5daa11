// Package memory implements the in-memory store backing all three services.
// It keeps one keyed collection per entity type plus the id counters, scoped
// to the Store instance so independent stores can coexist in one process.
package memory

import (
	"context"
	"sync"

	"github.com/dkrasnov/kopilka/internal/account"
	"github.com/dkrasnov/kopilka/internal/goal"
	"github.com/dkrasnov/kopilka/internal/transaction"
)

var (
	_ account.Repository     = (*Store)(nil)
	_ transaction.Repository = (*Store)(nil)
	_ goal.Repository        = (*Store)(nil)
)

// Store holds three independent collections. All reads hand out copies, so
// callers never observe a partially applied mutation; all writes run under
// the write lock, which serializes read-modify-write on any single id.
type Store struct {
	mu sync.RWMutex

	accounts     map[int64]account.Account
	transactions map[int64]transaction.Transaction
	goals        map[int64]goal.Goal

	accountSeq     int64
	transactionSeq int64
	goalSeq        int64
}

func New() *Store {
	return &Store{
		accounts:     make(map[int64]account.Account),
		transactions: make(map[int64]transaction.Transaction),
		goals:        make(map[int64]goal.Goal),
	}
}

// CreateAccount checks email uniqueness and inserts under one write lock,
// so two concurrent creates with the same email cannot both pass the scan.
func (s *Store) CreateAccount(_ context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Email == a.Email {
			return account.ErrDuplicateEmail
		}
	}

	s.accountSeq++
	a.ID = s.accountSeq
	s.accounts[a.ID] = *a

	return nil
}

func (s *Store) GetAccount(_ context.Context, id int64) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, account.ErrNotFound
	}

	return &a, nil
}

func (s *Store) GetAccountByEmail(_ context.Context, email string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return &a, nil
		}
	}

	return nil, account.ErrNotFound
}

func (s *Store) ListAccounts(_ context.Context) ([]*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]*account.Account, 0, len(s.accounts))

	for _, a := range s.accounts {
		accounts = append(accounts, &a)
	}

	return accounts, nil
}

func (s *Store) UpdateAccount(_ context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[a.ID]; !ok {
		return account.ErrNotFound
	}

	for _, existing := range s.accounts {
		if existing.Email == a.Email && existing.ID != a.ID {
			return account.ErrDuplicateEmail
		}
	}

	s.accounts[a.ID] = *a

	return nil
}

// DeleteAccount removes the id if present. There is no cascade: the
// account's transactions and goals stay behind as orphans.
func (s *Store) DeleteAccount(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.accounts, id)

	return nil
}

func (s *Store) CreateTransaction(_ context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactionSeq++
	tx.ID = s.transactionSeq
	s.transactions[tx.ID] = *tx

	return nil
}

func (s *Store) GetTransaction(_ context.Context, id int64) (*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return &tx, nil
}

func (s *Store) UpdateTransaction(_ context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[tx.ID]; !ok {
		return transaction.ErrNotFound
	}

	s.transactions[tx.ID] = *tx

	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.transactions, id)

	return nil
}

func (s *Store) ListTransactionsByOwner(_ context.Context, ownerID int64) ([]*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txs []*transaction.Transaction

	for _, tx := range s.transactions {
		if tx.OwnerID == ownerID {
			txs = append(txs, &tx)
		}
	}

	return txs, nil
}

func (s *Store) CreateGoal(_ context.Context, g *goal.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goalSeq++
	g.ID = s.goalSeq
	s.goals[g.ID] = *g

	return nil
}

func (s *Store) GetGoal(_ context.Context, id int64) (*goal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.goals[id]
	if !ok {
		return nil, goal.ErrNotFound
	}

	return &g, nil
}

func (s *Store) UpdateGoal(_ context.Context, g *goal.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.goals[g.ID]; !ok {
		return goal.ErrNotFound
	}

	s.goals[g.ID] = *g

	return nil
}

// AddToGoal applies the increment under the write lock, so two concurrent
// deposits to the same goal both land.
func (s *Store) AddToGoal(_ context.Context, id int64, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.goals[id]
	if !ok {
		return goal.ErrNotFound
	}

	g.CurrentAmount += amount
	s.goals[id] = g

	return nil
}

func (s *Store) DeleteGoal(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.goals, id)

	return nil
}

func (s *Store) ListGoalsByOwner(_ context.Context, ownerID int64) ([]*goal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var goals []*goal.Goal

	for _, g := range s.goals {
		if g.OwnerID == ownerID {
			goals = append(goals, &g)
		}
	}

	return goals, nil
}
