// Package ledger applies feed events to the account and transaction stores.
//
// Every event runs inside one store scope: it either commits the account
// change together with the transaction record, or nothing at all. Events
// that break a business rule (duplicate id, insufficient funds, unknown or
// already settled transaction, locked account) are rejected silently and
// reported through the returned Outcome, never as an error.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/money"
	"github.com/hance08/payledger/internal/store"
)

type Engine struct {
	repo   store.Repository
	logger *zap.Logger
}

func NewEngine(repo store.Repository, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{repo: repo, logger: logger.Named("engine")}
}

// Apply processes one event. The error is non-nil only for store failures
// or an event type the engine does not know; in that case the scope has
// been rolled back and the caller should stop.
func (e *Engine) Apply(ctx context.Context, ev model.Event) (Outcome, error) {
	if ev == nil {
		return 0, fmt.Errorf("%w: nil", ErrUnknownEvent)
	}

	err := e.repo.ExecTx(ctx, func(tx store.Tx) error {
		return e.apply(ctx, tx, ev)
	})

	fields := []zap.Field{
		zap.Stringer("kind", ev.Kind()),
		zap.Uint32("tx", uint32(ev.TxID())),
		zap.Uint16("client", uint16(ev.ClientID())),
	}

	var rej *rejection
	switch {
	case err == nil:
		e.logger.Debug("event applied", fields...)
		return OutcomeApplied, nil
	case errors.As(err, &rej):
		e.logger.Debug("event rejected", append(fields, zap.Stringer("reason", rej.outcome))...)
		return rej.outcome, nil
	default:
		return 0, fmt.Errorf("%s tx %d client %d: %w", ev.Kind(), ev.TxID(), ev.ClientID(), err)
	}
}

func (e *Engine) apply(ctx context.Context, tx store.Tx, ev model.Event) error {
	switch ev := ev.(type) {
	case model.Deposit:
		return e.deposit(ctx, tx, ev)
	case model.Withdrawal:
		return e.withdraw(ctx, tx, ev)
	case model.Dispute:
		return e.dispute(ctx, tx, ev)
	case model.Resolve:
		return e.resolve(ctx, tx, ev)
	case model.Chargeback:
		return e.chargeback(ctx, tx, ev)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
}

func (e *Engine) deposit(ctx context.Context, tx store.Tx, ev model.Deposit) error {
	if err := requireUnusedID(ctx, tx, ev.TxID()); err != nil {
		return err
	}
	if ev.Amount.IsNegative() {
		return reject(OutcomeInvalidAmount)
	}

	acc, err := tx.CreateAccountIfAbsent(ctx, ev.ClientID())
	if err != nil {
		return err
	}
	if acc.Locked {
		return reject(OutcomeAccountLocked)
	}

	var c calc
	acc.Available = c.add(acc.Available, ev.Amount)
	if err := c.check(acc); err != nil {
		return err
	}

	return save(ctx, tx, acc, &model.Transaction{
		ID:     ev.TxID(),
		Kind:   model.KindDeposit,
		Client: ev.ClientID(),
		Amount: ev.Amount,
		Status: model.StatusProcessed,
	})
}

func (e *Engine) withdraw(ctx context.Context, tx store.Tx, ev model.Withdrawal) error {
	if err := requireUnusedID(ctx, tx, ev.TxID()); err != nil {
		return err
	}
	if ev.Amount.IsNegative() {
		return reject(OutcomeInvalidAmount)
	}

	acc, err := tx.GetAccount(ctx, ev.ClientID())
	if errors.Is(err, store.ErrRecordNotFound) {
		return reject(OutcomeUnknownAccount)
	}
	if err != nil {
		return err
	}
	if acc.Locked {
		return reject(OutcomeAccountLocked)
	}
	if acc.Available.LessThan(ev.Amount) {
		return reject(OutcomeInsufficientFunds)
	}

	var c calc
	acc.Available = c.sub(acc.Available, ev.Amount)
	if err := c.check(acc); err != nil {
		return err
	}

	return save(ctx, tx, acc, &model.Transaction{
		ID:     ev.TxID(),
		Kind:   model.KindWithdrawal,
		Client: ev.ClientID(),
		Amount: ev.Amount,
		Status: model.StatusProcessed,
	})
}

// dispute moves the disputed amount from available to held.
func (e *Engine) dispute(ctx context.Context, tx store.Tx, ev model.Dispute) error {
	rec, acc, err := lookup(ctx, tx, ev.TxID(), ev.ClientID(), model.StatusProcessed)
	if err != nil {
		return err
	}

	var c calc
	acc.Available = c.sub(acc.Available, rec.Amount)
	acc.Held = c.add(acc.Held, rec.Amount)
	if err := c.check(acc); err != nil {
		return err
	}

	rec.Status = model.StatusInDispute
	return save(ctx, tx, acc, rec)
}

// resolve releases held funds back to available.
func (e *Engine) resolve(ctx context.Context, tx store.Tx, ev model.Resolve) error {
	rec, acc, err := lookup(ctx, tx, ev.TxID(), ev.ClientID(), model.StatusInDispute)
	if err != nil {
		return err
	}

	var c calc
	acc.Available = c.add(acc.Available, rec.Amount)
	acc.Held = c.sub(acc.Held, rec.Amount)
	if err := c.check(acc); err != nil {
		return err
	}

	rec.Status = model.StatusResolved
	return save(ctx, tx, acc, rec)
}

// chargeback removes held funds for good and freezes the account.
// Available is never credited back.
func (e *Engine) chargeback(ctx context.Context, tx store.Tx, ev model.Chargeback) error {
	rec, acc, err := lookup(ctx, tx, ev.TxID(), ev.ClientID(), model.StatusInDispute)
	if err != nil {
		return err
	}

	var c calc
	acc.Held = c.sub(acc.Held, rec.Amount)
	if err := c.check(acc); err != nil {
		return err
	}
	acc.Locked = true

	rec.Status = model.StatusChargeback
	return save(ctx, tx, acc, rec)
}

func requireUnusedID(ctx context.Context, tx store.Tx, id model.TxID) error {
	_, err := tx.GetTransaction(ctx, id)
	switch {
	case err == nil:
		return reject(OutcomeDuplicateTx)
	case errors.Is(err, store.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

// lookup loads the record a dispute event refers to, together with its
// owner's account, and checks it is in the expected state.
func lookup(ctx context.Context, tx store.Tx, id model.TxID, client model.ClientID, want model.Status) (*model.Transaction, *model.Account, error) {
	rec, err := tx.GetTransaction(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, nil, reject(OutcomeUnknownTx)
	}
	if err != nil {
		return nil, nil, err
	}
	if rec.Client != client {
		return nil, nil, reject(OutcomeClientMismatch)
	}
	if rec.Status != want {
		return nil, nil, reject(OutcomeInvalidStatus)
	}

	acc, err := tx.GetAccount(ctx, rec.Client)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("transaction %d: %w", rec.ID, ErrOrphanTx)
	}
	if err != nil {
		return nil, nil, err
	}
	return rec, acc, nil
}

// save writes the account before the record so the record's owner exists.
func save(ctx context.Context, tx store.Tx, acc *model.Account, rec *model.Transaction) error {
	if err := tx.UpsertAccount(ctx, acc); err != nil {
		return err
	}
	return tx.UpsertTransaction(ctx, rec)
}

// calc chains Money arithmetic and remembers the first overflow.
type calc struct {
	err error
}

func (c *calc) add(a, b money.Money) money.Money {
	if c.err != nil {
		return a
	}
	r, err := a.Add(b)
	if err != nil {
		c.err = err
		return a
	}
	return r
}

func (c *calc) sub(a, b money.Money) money.Money {
	if c.err != nil {
		return a
	}
	r, err := a.Sub(b)
	if err != nil {
		c.err = err
		return a
	}
	return r
}

// check rejects the event if any step overflowed or the derived total
// would not be representable.
func (c *calc) check(acc *model.Account) error {
	if c.err == nil {
		_, c.err = acc.Total()
	}
	if c.err != nil {
		return reject(OutcomeOverflow)
	}
	return nil
}
