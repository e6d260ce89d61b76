package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/payledger/internal/ledger"
	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/money"
	"github.com/hance08/payledger/internal/store"
	"github.com/hance08/payledger/internal/store/memory"
)

func seeded(t *testing.T) (*Service, store.Repository) {
	t.Helper()

	repo := memory.New()
	engine := ledger.NewEngine(repo, nil)
	_, err := ledger.NewProcessor(engine, nil).Run(context.Background(), ledger.NewSliceSource(
		model.NewDeposit(1, 1, money.MustParse("1.5")),
		model.NewDeposit(2, 2, money.MustParse("2")),
		model.NewDeposit(3, 3, money.MustParse("4")),
		model.NewDispute(2, 2),
		model.NewDispute(3, 3),
		model.NewChargeback(3, 3),
	))
	require.NoError(t, err)

	return NewService(repo), repo
}

func TestAccountService(t *testing.T) {
	ctx := context.Background()
	svc, _ := seeded(t)

	accounts, err := svc.Account.GetAllAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	acc, err := svc.Account.GetAccount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "2.0000", acc.Held.String())

	_, err = svc.Account.GetAccount(ctx, 9)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	totals, err := svc.Account.GetTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, totals.Accounts)
	assert.Equal(t, 1, totals.Locked)
	assert.Equal(t, "1.5000", totals.Available.String())
	assert.Equal(t, "2.0000", totals.Held.String())
	assert.Equal(t, "3.5000", totals.Total.String())
}

func TestTransactionService(t *testing.T) {
	ctx := context.Background()
	svc, repo := seeded(t)

	detail, err := svc.Transaction.GetTransactionByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, model.StatusChargeback, detail.Transaction.Status)
	assert.True(t, detail.Account.Locked)

	_, err = svc.Transaction.GetTransactionByID(ctx, 42)
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	require.NoError(t, svc.Transaction.ResetLedger(ctx))
	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}
