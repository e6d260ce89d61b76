// Package storetest holds the behaviour every store.Repository must share.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/money"
	"github.com/hance08/payledger/internal/store"
)

var errBoom = errors.New("boom")

// Run executes the conformance suite. newRepo must return an empty repository.
func Run(t *testing.T, newRepo func(t *testing.T) store.Repository) {
	tests := []struct {
		name string
		fn   func(t *testing.T, repo store.Repository)
	}{
		{"missing records", testMissingRecords},
		{"create account is idempotent", testCreateAccountIdempotent},
		{"commit persists both stores", testCommit},
		{"error rolls back both stores", testRollback},
		{"scope sees its own writes", testReadYourWrites},
		{"transaction status update", testStatusUpdate},
		{"transaction needs an account", testTransactionNeedsAccount},
		{"accounts listed by client id", testListOrder},
		{"reset clears everything", testReset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo(t)
			t.Cleanup(func() { _ = repo.Close() })
			tt.fn(t, repo)
		})
	}
}

func deposit(id model.TxID, client model.ClientID, amount string) *model.Transaction {
	return &model.Transaction{
		ID:     id,
		Kind:   model.KindDeposit,
		Client: client,
		Amount: money.MustParse(amount),
		Status: model.StatusProcessed,
	}
}

func seed(t *testing.T, repo store.Repository, client model.ClientID, tx *model.Transaction) {
	t.Helper()
	err := repo.ExecTx(context.Background(), func(s store.Tx) error {
		acc, err := s.CreateAccountIfAbsent(context.Background(), client)
		if err != nil {
			return err
		}
		if tx != nil {
			if acc.Available, err = acc.Available.Add(tx.Amount); err != nil {
				return err
			}
			if err := s.UpsertAccount(context.Background(), acc); err != nil {
				return err
			}
			return s.UpsertTransaction(context.Background(), tx)
		}
		return nil
	})
	require.NoError(t, err)
}

func testMissingRecords(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	err := repo.ExecTx(ctx, func(s store.Tx) error {
		_, err := s.GetAccount(ctx, 1)
		assert.ErrorIs(t, err, store.ErrRecordNotFound)
		_, err = s.GetTransaction(ctx, 1)
		assert.ErrorIs(t, err, store.ErrRecordNotFound)
		return nil
	})
	require.NoError(t, err)

	_, err = repo.FindTransaction(ctx, 1)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func testCreateAccountIdempotent(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	seed(t, repo, 7, deposit(1, 7, "5"))

	err := repo.ExecTx(ctx, func(s store.Tx) error {
		acc, err := s.CreateAccountIfAbsent(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, money.MustParse("5"), acc.Available)

		fresh, err := s.CreateAccountIfAbsent(ctx, 8)
		require.NoError(t, err)
		assert.Equal(t, model.NewAccount(8), fresh)
		return nil
	})
	require.NoError(t, err)
}

func testCommit(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	seed(t, repo, 1, deposit(10, 1, "1.5"))

	tx, err := repo.FindTransaction(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, deposit(10, 1, "1.5"), tx)

	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, model.ClientID(1), accounts[0].Client)
	assert.Equal(t, "1.5000", accounts[0].Available.String())
	assert.True(t, accounts[0].Held.IsZero())
	assert.False(t, accounts[0].Locked)
}

func testRollback(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	seed(t, repo, 1, deposit(1, 1, "2"))

	err := repo.ExecTx(ctx, func(s store.Tx) error {
		acc, err := s.GetAccount(ctx, 1)
		require.NoError(t, err)
		acc.Available = money.MustParse("100")
		acc.Locked = true
		require.NoError(t, s.UpsertAccount(ctx, acc))

		_, err = s.CreateAccountIfAbsent(ctx, 2)
		require.NoError(t, err)
		require.NoError(t, s.UpsertTransaction(ctx, deposit(2, 2, "3")))
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "2.0000", accounts[0].Available.String())
	assert.False(t, accounts[0].Locked)

	_, err = repo.FindTransaction(ctx, 2)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func testReadYourWrites(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	err := repo.ExecTx(ctx, func(s store.Tx) error {
		acc, err := s.CreateAccountIfAbsent(ctx, 3)
		require.NoError(t, err)
		acc.Held = money.MustParse("0.0001")
		require.NoError(t, s.UpsertAccount(ctx, acc))
		require.NoError(t, s.UpsertTransaction(ctx, deposit(4, 3, "0.0001")))

		got, err := s.GetAccount(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, money.FromUnits(1), got.Held)

		tx, err := s.GetTransaction(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, model.StatusProcessed, tx.Status)
		return nil
	})
	require.NoError(t, err)
}

func testStatusUpdate(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	seed(t, repo, 1, deposit(5, 1, "1"))

	err := repo.ExecTx(ctx, func(s store.Tx) error {
		tx, err := s.GetTransaction(ctx, 5)
		require.NoError(t, err)
		tx.Status = model.StatusInDispute
		return s.UpsertTransaction(ctx, tx)
	})
	require.NoError(t, err)

	tx, err := repo.FindTransaction(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInDispute, tx.Status)
	assert.Equal(t, money.MustParse("1"), tx.Amount)
}

func testTransactionNeedsAccount(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	err := repo.ExecTx(ctx, func(s store.Tx) error {
		return s.UpsertTransaction(ctx, deposit(9, 99, "1"))
	})
	assert.ErrorIs(t, err, store.ErrConstraintViolation)

	_, err = repo.FindTransaction(ctx, 9)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func testListOrder(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	for _, c := range []model.ClientID{42, 3, 65535, 0} {
		seed(t, repo, c, nil)
	}

	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	var got []model.ClientID
	for _, a := range accounts {
		got = append(got, a.Client)
	}
	assert.Equal(t, []model.ClientID{0, 3, 42, 65535}, got)
}

func testReset(t *testing.T, repo store.Repository) {
	ctx := context.Background()
	seed(t, repo, 1, deposit(1, 1, "1"))
	seed(t, repo, 2, deposit(2, 2, "1"))

	require.NoError(t, repo.Reset(ctx))

	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
	_, err = repo.FindTransaction(ctx, 1)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}
