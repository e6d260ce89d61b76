package store

import (
	"context"

	"github.com/hance08/payledger/internal/model"
)

// Repository is the durable home of the account and transaction stores.
type Repository interface {
	// ExecTx runs fn inside one atomic scope over both stores. The scope
	// commits only if fn returns nil; any error, including a business
	// rejection, rolls every write back.
	ExecTx(ctx context.Context, fn func(Tx) error) error

	// Read-only snapshot access, outside any scope.
	ListAccounts(ctx context.Context) ([]*model.Account, error)
	FindTransaction(ctx context.Context, id model.TxID) (*model.Transaction, error)

	// Reset drops every account and transaction record.
	Reset(ctx context.Context) error
	Close() error
}

// Tx is the view of both stores inside a single atomic scope. Getters
// return ErrRecordNotFound when the key is absent.
type Tx interface {
	// Transaction Operations
	GetTransaction(ctx context.Context, id model.TxID) (*model.Transaction, error)
	UpsertTransaction(ctx context.Context, tx *model.Transaction) error

	// Account Operations
	GetAccount(ctx context.Context, client model.ClientID) (*model.Account, error)
	CreateAccountIfAbsent(ctx context.Context, client model.ClientID) (*model.Account, error)
	UpsertAccount(ctx context.Context, acc *model.Account) error
}
