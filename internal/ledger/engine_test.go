package ledger

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/money"
	"github.com/hance08/payledger/internal/store"
	"github.com/hance08/payledger/internal/store/memory"
)

func TestScenarios(t *testing.T) {
	tests := []struct {
		name   string
		events []model.Event
		want   map[model.ClientID]balance
	}{
		{
			name: "deposits with reused withdrawal ids",
			events: []model.Event{
				deposit(1, 1, "1.0"),
				deposit(2, 2, "2.0"),
				deposit(3, 1, "2.0"),
				withdrawal(1, 1, "0.0"),
				withdrawal(2, 2, "0.0"),
			},
			want: map[model.ClientID]balance{
				1: {Available: "3.0000", Held: "0.0000", Total: "3.0000"},
				2: {Available: "2.0000", Held: "0.0000", Total: "2.0000"},
			},
		},
		{
			name: "dispute resolve chargeback",
			events: []model.Event{
				deposit(1, 1, "1.0"),
				deposit(2, 2, "2.0"),
				deposit(3, 1, "2.0"),
				dispute(1, 1),
				dispute(2, 2),
				resolve(2, 2),
				chargeback(1, 1),
			},
			want: map[model.ClientID]balance{
				1: {Available: "2.0000", Held: "0.0000", Total: "2.0000", Locked: true},
				2: {Available: "2.0000", Held: "0.0000", Total: "2.0000"},
			},
		},
		{
			name: "replayed settlement events",
			events: []model.Event{
				deposit(1, 1, "1.0"),
				deposit(2, 2, "2.0"),
				deposit(3, 1, "2.0"),
				dispute(1, 1),
				dispute(2, 2),
				resolve(2, 2),
				resolve(2, 2),
				dispute(1, 1),
				chargeback(1, 1),
				chargeback(1, 1),
				deposit(1, 1, "1.0"),
			},
			want: map[model.ClientID]balance{
				1: {Available: "2.0000", Held: "0.0000", Total: "2.0000", Locked: true},
				2: {Available: "2.0000", Held: "0.0000", Total: "2.0000"},
			},
		},
		{
			name: "withdrawal drains third client",
			events: []model.Event{
				deposit(1, 1, "1.0"),
				deposit(2, 2, "2.0"),
				deposit(3, 1, "2.0"),
				deposit(4, 3, "2.0"),
				dispute(1, 1),
				dispute(2, 2),
				resolve(2, 2),
				resolve(2, 2),
				dispute(1, 1),
				withdrawal(5, 3, "2.0"),
				chargeback(1, 1),
				chargeback(1, 1),
				deposit(1, 1, "1.0"),
			},
			want: map[model.ClientID]balance{
				1: {Available: "2.0000", Held: "0.0000", Total: "2.0000", Locked: true},
				2: {Available: "2.0000", Held: "0.0000", Total: "2.0000"},
				3: {Available: "0.0000", Held: "0.0000", Total: "0.0000"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forEachBackend(t, func(t *testing.T, repo store.Repository) {
				applyAll(t, NewEngine(repo, nil), tt.events...)
				assert.Equal(t, tt.want, snapshot(t, repo))
			})
		})
	}
}

func TestTotalsHoldAfterEveryEvent(t *testing.T) {
	events := []model.Event{
		deposit(1, 1, "10.5"),
		deposit(2, 1, "0.0001"),
		withdrawal(3, 1, "4.25"),
		deposit(4, 2, "7"),
		dispute(1, 1),
		withdrawal(5, 1, "1"),
		resolve(1, 1),
		dispute(4, 2),
		withdrawal(6, 2, "1"),
		chargeback(4, 2),
		deposit(7, 2, "3"),
		dispute(3, 1),
		chargeback(3, 1),
		withdrawal(8, 1, "100"),
	}

	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		engine := NewEngine(repo, nil)
		flows := money.Zero

		for i, ev := range events {
			outcome, err := engine.Apply(context.Background(), ev)
			require.NoError(t, err)

			// Track money that entered or left the ledger for good.
			if outcome == OutcomeApplied {
				var err error
				switch e := ev.(type) {
				case model.Deposit:
					flows, err = flows.Add(e.Amount)
				case model.Withdrawal:
					flows, err = flows.Sub(e.Amount)
				case model.Chargeback:
					rec, findErr := repo.FindTransaction(context.Background(), e.TxID())
					require.NoError(t, findErr)
					flows, err = flows.Sub(rec.Amount)
				}
				require.NoError(t, err)
			}

			accounts, err := repo.ListAccounts(context.Background())
			require.NoError(t, err)

			sum := money.Zero
			for _, acc := range accounts {
				total, err := acc.Total()
				require.NoError(t, err)
				expect, err := acc.Available.Add(acc.Held)
				require.NoError(t, err)
				assert.True(t, total.Equal(expect), "event %d client %d", i, acc.Client)
				assert.False(t, acc.Held.IsNegative(), "event %d client %d", i, acc.Client)

				sum, err = sum.Add(total)
				require.NoError(t, err)
			}
			assert.Equal(t, flows.String(), sum.String(), "after event %d", i)
		}
	})
}

func TestDuplicateIDsAreIdempotent(t *testing.T) {
	tests := []struct {
		name   string
		events []model.Event
	}{
		{"deposit", []model.Event{deposit(1, 1, "5")}},
		{"withdrawal", []model.Event{deposit(1, 1, "5"), withdrawal(2, 1, "2")}},
		{"withdrawal reusing deposit id", []model.Event{deposit(1, 1, "5"), withdrawal(1, 1, "5")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forEachBackend(t, func(t *testing.T, repo store.Repository) {
				engine := NewEngine(repo, nil)
				applyAll(t, engine, tt.events...)
				once := snapshot(t, repo)

				last := tt.events[len(tt.events)-1]
				outcome, err := engine.Apply(context.Background(), last)
				require.NoError(t, err)
				assert.Equal(t, OutcomeDuplicateTx, outcome)
				assert.Equal(t, once, snapshot(t, repo))
			})
		})
	}
}

func TestDisputeOfUnknownTxIsNoop(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		engine := NewEngine(repo, nil)
		applyAll(t, engine, deposit(1, 1, "3"))
		before := snapshot(t, repo)

		for _, ev := range []model.Event{dispute(99, 1), resolve(99, 1), chargeback(99, 1), dispute(5, 42)} {
			outcome, err := engine.Apply(context.Background(), ev)
			require.NoError(t, err)
			assert.Equal(t, OutcomeUnknownTx, outcome)
		}

		assert.Equal(t, before, snapshot(t, repo))
		_, err := repo.FindTransaction(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrRecordNotFound)
		rec, err := repo.FindTransaction(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, model.StatusProcessed, rec.Status)
	})
}

func TestDisputeFromOtherClientIsNoop(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		engine := NewEngine(repo, nil)
		applyAll(t, engine, deposit(1, 1, "3"), deposit(2, 2, "1"))
		before := snapshot(t, repo)

		outcome, err := engine.Apply(context.Background(), dispute(1, 2))
		require.NoError(t, err)
		assert.Equal(t, OutcomeClientMismatch, outcome)
		assert.Equal(t, before, snapshot(t, repo))
	})
}

func TestResolveUndoesDispute(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		engine := NewEngine(repo, nil)
		applyAll(t, engine, deposit(1, 1, "3"), deposit(2, 1, "1.5"))
		before := snapshot(t, repo)

		applyAll(t, engine, dispute(2, 1))
		assert.Equal(t, balance{Available: "3.0000", Held: "1.5000", Total: "4.5000"}, snapshot(t, repo)[1])

		applyAll(t, engine, resolve(2, 1))
		assert.Equal(t, before, snapshot(t, repo))

		rec, err := repo.FindTransaction(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, model.StatusResolved, rec.Status)
	})
}

func TestChargebackLocksAndRemovesHeldOnly(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		engine := NewEngine(repo, nil)
		applyAll(t, engine, deposit(1, 1, "3"), deposit(2, 1, "1.25"), dispute(2, 1))
		assert.Equal(t, balance{Available: "3.0000", Held: "1.2500", Total: "4.2500"}, snapshot(t, repo)[1])

		applyAll(t, engine, chargeback(2, 1))
		assert.Equal(t, balance{Available: "3.0000", Held: "0.0000", Total: "3.0000", Locked: true}, snapshot(t, repo)[1])

		rec, err := repo.FindTransaction(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, model.StatusChargeback, rec.Status)
	})
}

func TestSettledRecordsAreTerminal(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		engine := NewEngine(repo, nil)
		applyAll(t, engine,
			deposit(1, 1, "2"), dispute(1, 1), resolve(1, 1),
			deposit(2, 2, "2"), dispute(2, 2), chargeback(2, 2),
		)
		before := snapshot(t, repo)

		replays := []model.Event{
			resolve(1, 1), chargeback(1, 1), dispute(1, 1),
			chargeback(2, 2), resolve(2, 2), dispute(2, 2),
		}
		for _, ev := range replays {
			outcome, err := engine.Apply(context.Background(), ev)
			require.NoError(t, err)
			assert.Equal(t, OutcomeInvalidStatus, outcome, "%s %d", ev.Kind(), ev.TxID())
		}
		assert.Equal(t, before, snapshot(t, repo))
	})
}

func TestSettlementNeedsOpenDispute(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		engine := NewEngine(repo, nil)
		applyAll(t, engine, deposit(1, 1, "2"))

		outcomes := applyAll(t, engine, resolve(1, 1), chargeback(1, 1), dispute(1, 1), dispute(1, 1))
		assert.Equal(t, []Outcome{OutcomeInvalidStatus, OutcomeInvalidStatus, OutcomeApplied, OutcomeInvalidStatus}, outcomes)
		assert.Equal(t, balance{Available: "0.0000", Held: "2.0000", Total: "2.0000"}, snapshot(t, repo)[1])
	})
}

func TestLockedAccountRejectsNewFunds(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		ctx := context.Background()
		engine := NewEngine(repo, nil)
		applyAll(t, engine,
			deposit(1, 1, "5"), deposit(2, 1, "3"),
			dispute(1, 1), chargeback(1, 1),
		)
		require.True(t, snapshot(t, repo)[1].Locked)

		outcomes := applyAll(t, engine, deposit(3, 1, "1"), withdrawal(4, 1, "1"))
		assert.Equal(t, []Outcome{OutcomeAccountLocked, OutcomeAccountLocked}, outcomes)

		for _, id := range []model.TxID{3, 4} {
			_, err := repo.FindTransaction(ctx, id)
			assert.ErrorIs(t, err, store.ErrRecordNotFound)
		}

		// Funds already in flight still settle.
		applyAll(t, engine, dispute(2, 1))
		assert.Equal(t, balance{Available: "0.0000", Held: "3.0000", Total: "3.0000", Locked: true}, snapshot(t, repo)[1])
		applyAll(t, engine, resolve(2, 1))
		assert.Equal(t, balance{Available: "3.0000", Held: "0.0000", Total: "3.0000", Locked: true}, snapshot(t, repo)[1])
	})
}

func TestWithdrawalRules(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		ctx := context.Background()
		engine := NewEngine(repo, nil)
		applyAll(t, engine, deposit(1, 1, "2"))

		outcomes := applyAll(t, engine,
			withdrawal(2, 1, "2.0001"),
			withdrawal(3, 9, "1"),
			withdrawal(4, 1, "-1"),
			withdrawal(5, 1, "2"),
		)
		assert.Equal(t, []Outcome{
			OutcomeInsufficientFunds,
			OutcomeUnknownAccount,
			OutcomeInvalidAmount,
			OutcomeApplied,
		}, outcomes)

		for _, id := range []model.TxID{2, 3, 4} {
			_, err := repo.FindTransaction(ctx, id)
			assert.ErrorIs(t, err, store.ErrRecordNotFound, "tx %d", id)
		}
		rec, err := repo.FindTransaction(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, model.KindWithdrawal, rec.Kind)

		snap := snapshot(t, repo)
		assert.Len(t, snap, 1, "withdrawal must not open an account")
		assert.Equal(t, balance{Available: "0.0000", Held: "0.0000", Total: "0.0000"}, snap[1])

		// A rejected id stays free for a later valid event.
		applyAll(t, engine, deposit(2, 1, "1"))
		assert.Equal(t, "1.0000", snapshot(t, repo)[1].Available)
	})
}

func TestDisputedWithdrawalCanDriveAvailableNegative(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		engine := NewEngine(repo, nil)
		applyAll(t, engine, deposit(1, 1, "5"), withdrawal(2, 1, "5"), dispute(2, 1))
		assert.Equal(t, balance{Available: "-5.0000", Held: "5.0000", Total: "0.0000"}, snapshot(t, repo)[1])
	})
}

func TestNegativeDepositRejected(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		outcomes := applyAll(t, NewEngine(repo, nil), deposit(1, 1, "-3"))
		assert.Equal(t, []Outcome{OutcomeInvalidAmount}, outcomes)
		assert.Empty(t, snapshot(t, repo))
	})
}

func TestOverflowRejected(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo store.Repository) {
		engine := NewEngine(repo, nil)
		huge := money.FromUnits(math.MaxInt64)

		outcome, err := engine.Apply(context.Background(), model.NewDeposit(1, 1, huge))
		require.NoError(t, err)
		require.Equal(t, OutcomeApplied, outcome)

		outcome, err = engine.Apply(context.Background(), deposit(2, 1, "0.0001"))
		require.NoError(t, err)
		assert.Equal(t, OutcomeOverflow, outcome)

		// Held + available would not fit either.
		applyAll(t, engine, dispute(1, 1))
		outcome, err = engine.Apply(context.Background(), deposit(3, 1, "1"))
		require.NoError(t, err)
		assert.Equal(t, OutcomeOverflow, outcome)

		_, err = repo.FindTransaction(context.Background(), 2)
		assert.ErrorIs(t, err, store.ErrRecordNotFound)
	})
}

func TestStoreErrorRollsBackEvent(t *testing.T) {
	base := memory.New()
	engine := NewEngine(base, nil)
	applyAll(t, engine, deposit(1, 1, "1"))
	before := snapshot(t, base)

	failing := &failingRepo{Repository: base, failUpsertTx: true}
	engine = NewEngine(failing, nil)

	for _, ev := range []model.Event{deposit(2, 1, "4"), deposit(3, 7, "4"), dispute(1, 1)} {
		_, err := engine.Apply(context.Background(), ev)
		assert.ErrorIs(t, err, errBoom)
	}

	// Neither the account credits nor the new client survived.
	assert.Equal(t, before, snapshot(t, base))
	rec, err := base.FindTransaction(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusProcessed, rec.Status)
}

func TestStoreReadErrorIsFatal(t *testing.T) {
	failing := &failingRepo{Repository: memory.New(), failGetTx: true}
	_, err := NewEngine(failing, nil).Apply(context.Background(), deposit(1, 1, "1"))
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "deposit tx 1 client 1")
}

func TestUnknownEventType(t *testing.T) {
	engine := NewEngine(memory.New(), nil)

	_, err := engine.Apply(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnknownEvent)

	dep := model.NewDeposit(1, 1, amt("1"))
	_, err = engine.Apply(context.Background(), &dep)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestRejectionsAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine := NewEngine(memory.New(), zap.New(core))

	applyAll(t, engine, deposit(1, 1, "1"), deposit(1, 1, "1"))

	rejected := logs.FilterMessage("event rejected").All()
	require.Len(t, rejected, 1)
	fields := rejected[0].ContextMap()
	assert.Equal(t, "duplicate_tx", fields["reason"])
	assert.Equal(t, "deposit", fields["kind"])
	assert.EqualValues(t, 1, fields["tx"])

	assert.Equal(t, 1, logs.FilterMessage("event applied").Len())
}
