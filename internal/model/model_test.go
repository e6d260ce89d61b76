package model

import (
	"testing"

	"github.com/hance08/payledger/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, name := range []string{"deposit", "withdrawal", "dispute", "resolve", "chargeback"} {
		k, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, name, k.String())
	}

	_, err := ParseKind("refund")
	assert.Error(t, err)
	_, err = ParseKind("Deposit")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	for _, st := range []Status{StatusProcessed, StatusInDispute, StatusResolved, StatusChargeback} {
		got, err := ParseStatus(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
	_, err := ParseStatus("pending")
	assert.Error(t, err)

	assert.False(t, StatusProcessed.Terminal())
	assert.False(t, StatusInDispute.Terminal())
	assert.True(t, StatusResolved.Terminal())
	assert.True(t, StatusChargeback.Terminal())
}

func TestNewEvent(t *testing.T) {
	amt := money.MustParse("1.5")

	ev, err := NewEvent(KindDeposit, 7, 3, &amt)
	require.NoError(t, err)
	dep, ok := ev.(Deposit)
	require.True(t, ok)
	assert.Equal(t, TxID(7), dep.TxID())
	assert.Equal(t, ClientID(3), dep.ClientID())
	assert.Equal(t, amt, dep.Amount)

	_, err = NewEvent(KindWithdrawal, 8, 3, nil)
	assert.ErrorIs(t, err, ErrMissingAmount)

	ev, err = NewEvent(KindChargeback, 9, 4, &amt)
	require.NoError(t, err)
	assert.Equal(t, KindChargeback, ev.Kind())
	assert.IsType(t, Chargeback{}, ev)

	_, err = NewEvent(Kind(42), 1, 1, nil)
	assert.Error(t, err)
}

func TestAccountTotal(t *testing.T) {
	acc := NewAccount(1)
	acc.Available = money.MustParse("2.5")
	acc.Held = money.MustParse("1.25")

	total, err := acc.Total()
	require.NoError(t, err)
	assert.Equal(t, "3.7500", total.String())
	assert.False(t, acc.Locked)
}
