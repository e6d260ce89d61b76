// Package memory provides an in-process implementation of store.Repository.
//
// Writes made inside an atomic scope are staged on the scope and only folded
// into the committed maps when the scope's function returns nil.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/store"
)

// Compile-time check: Store implements store.Repository.
var _ store.Repository = (*Store)(nil)

// Store is an in-memory ledger. Safe for concurrent use; scopes are serialized.
type Store struct {
	mu           sync.Mutex
	accounts     map[model.ClientID]model.Account
	transactions map[model.TxID]model.Transaction
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		accounts:     make(map[model.ClientID]model.Account),
		transactions: make(map[model.TxID]model.Transaction),
	}
}

func (s *Store) ExecTx(ctx context.Context, fn func(store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sc := &scope{
		base:         s,
		accounts:     make(map[model.ClientID]model.Account),
		transactions: make(map[model.TxID]model.Transaction),
	}

	// Dropping sc without merging is the rollback.
	if err := fn(sc); err != nil {
		return err
	}

	for k, v := range sc.accounts {
		s.accounts[k] = v
	}
	for k, v := range sc.transactions {
		s.transactions[k] = v
	}
	return nil
}

func (s *Store) ListAccounts(_ context.Context) ([]*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := make([]*model.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		accounts = append(accounts, &acc)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Client < accounts[j].Client
	})
	return accounts, nil
}

func (s *Store) FindTransaction(_ context.Context, id model.TxID) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[id]
	if !ok {
		return nil, fmt.Errorf("transaction %d: %w", id, store.ErrRecordNotFound)
	}
	return &tx, nil
}

func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[model.ClientID]model.Account)
	s.transactions = make(map[model.TxID]model.Transaction)
	return nil
}

func (s *Store) Close() error { return nil }

// scope overlays staged writes on the committed maps. Callers hold base.mu.
type scope struct {
	base         *Store
	accounts     map[model.ClientID]model.Account
	transactions map[model.TxID]model.Transaction
}

func (sc *scope) GetTransaction(_ context.Context, id model.TxID) (*model.Transaction, error) {
	if tx, ok := sc.transactions[id]; ok {
		return &tx, nil
	}
	if tx, ok := sc.base.transactions[id]; ok {
		return &tx, nil
	}
	return nil, fmt.Errorf("transaction %d: %w", id, store.ErrRecordNotFound)
}

func (sc *scope) UpsertTransaction(ctx context.Context, tx *model.Transaction) error {
	if _, err := sc.GetAccount(ctx, tx.Client); err != nil {
		return fmt.Errorf("transaction %d references client %d: %w", tx.ID, tx.Client, store.ErrConstraintViolation)
	}
	sc.transactions[tx.ID] = *tx
	return nil
}

func (sc *scope) GetAccount(_ context.Context, client model.ClientID) (*model.Account, error) {
	if acc, ok := sc.accounts[client]; ok {
		return &acc, nil
	}
	if acc, ok := sc.base.accounts[client]; ok {
		return &acc, nil
	}
	return nil, fmt.Errorf("account %d: %w", client, store.ErrRecordNotFound)
}

func (sc *scope) CreateAccountIfAbsent(ctx context.Context, client model.ClientID) (*model.Account, error) {
	if acc, err := sc.GetAccount(ctx, client); err == nil {
		return acc, nil
	}
	acc := model.NewAccount(client)
	sc.accounts[client] = *acc
	return acc, nil
}

func (sc *scope) UpsertAccount(_ context.Context, acc *model.Account) error {
	sc.accounts[acc.Client] = *acc
	return nil
}
