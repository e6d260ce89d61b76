package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/money"
	"github.com/hance08/payledger/internal/store"
	"github.com/hance08/payledger/internal/store/memory"
	"github.com/hance08/payledger/internal/store/sqlite"
)

var errBoom = errors.New("boom")

// forEachBackend runs fn against every store implementation that needs no
// external service.
func forEachBackend(t *testing.T, fn func(t *testing.T, repo store.Repository)) {
	t.Helper()

	backends := []struct {
		name string
		open func(t *testing.T) store.Repository
	}{
		{"memory", func(t *testing.T) store.Repository { return memory.New() }},
		{"sqlite", func(t *testing.T) store.Repository {
			s, err := sqlite.NewStore(sqlite.MemoryPath)
			require.NoError(t, err)
			return s
		}},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			repo := b.open(t)
			t.Cleanup(func() { _ = repo.Close() })
			fn(t, repo)
		})
	}
}

func amt(s string) money.Money { return money.MustParse(s) }

func deposit(tx model.TxID, client model.ClientID, amount string) model.Event {
	return model.NewDeposit(tx, client, amt(amount))
}

func withdrawal(tx model.TxID, client model.ClientID, amount string) model.Event {
	return model.NewWithdrawal(tx, client, amt(amount))
}

func dispute(tx model.TxID, client model.ClientID) model.Event {
	return model.NewDispute(tx, client)
}

func resolve(tx model.TxID, client model.ClientID) model.Event {
	return model.NewResolve(tx, client)
}

func chargeback(tx model.TxID, client model.ClientID) model.Event {
	return model.NewChargeback(tx, client)
}

// balance is the printable view of an account used in assertions.
type balance struct {
	Available, Held, Total string
	Locked                 bool
}

func snapshot(t *testing.T, repo store.Repository) map[model.ClientID]balance {
	t.Helper()

	accounts, err := repo.ListAccounts(context.Background())
	require.NoError(t, err)

	out := make(map[model.ClientID]balance, len(accounts))
	for _, acc := range accounts {
		total, err := acc.Total()
		require.NoError(t, err)
		out[acc.Client] = balance{
			Available: acc.Available.String(),
			Held:      acc.Held.String(),
			Total:     total.String(),
			Locked:    acc.Locked,
		}
	}
	return out
}

func applyAll(t *testing.T, engine *Engine, events ...model.Event) []Outcome {
	t.Helper()

	outcomes := make([]Outcome, 0, len(events))
	for _, ev := range events {
		o, err := engine.Apply(context.Background(), ev)
		require.NoError(t, err)
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// failingRepo injects store errors into every scope it opens.
type failingRepo struct {
	store.Repository
	failUpsertTx bool
	failGetTx    bool
}

func (f *failingRepo) ExecTx(ctx context.Context, fn func(store.Tx) error) error {
	return f.Repository.ExecTx(ctx, func(tx store.Tx) error {
		return fn(&failingTx{Tx: tx, repo: f})
	})
}

type failingTx struct {
	store.Tx
	repo *failingRepo
}

func (f *failingTx) GetTransaction(ctx context.Context, id model.TxID) (*model.Transaction, error) {
	if f.repo.failGetTx {
		return nil, errBoom
	}
	return f.Tx.GetTransaction(ctx, id)
}

func (f *failingTx) UpsertTransaction(ctx context.Context, rec *model.Transaction) error {
	if f.repo.failUpsertTx {
		return errBoom
	}
	return f.Tx.UpsertTransaction(ctx, rec)
}
