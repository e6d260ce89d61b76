package model

import (
	"errors"
	"fmt"

	"github.com/hance08/payledger/internal/money"
)

var ErrMissingAmount = errors.New("missing amount")

// Event is one entry of the ordered input feed. The set of implementations
// is closed: Deposit, Withdrawal, Dispute, Resolve and Chargeback.
type Event interface {
	Kind() Kind
	TxID() TxID
	ClientID() ClientID
	isEvent()
}

type header struct {
	Tx     TxID
	Client ClientID
}

func (h header) TxID() TxID         { return h.Tx }
func (h header) ClientID() ClientID { return h.Client }
func (header) isEvent()             {}

type Deposit struct {
	header
	Amount money.Money
}

type Withdrawal struct {
	header
	Amount money.Money
}

type Dispute struct{ header }

type Resolve struct{ header }

type Chargeback struct{ header }

func (Deposit) Kind() Kind    { return KindDeposit }
func (Withdrawal) Kind() Kind { return KindWithdrawal }
func (Dispute) Kind() Kind    { return KindDispute }
func (Resolve) Kind() Kind    { return KindResolve }
func (Chargeback) Kind() Kind { return KindChargeback }

func NewDeposit(tx TxID, client ClientID, amount money.Money) Deposit {
	return Deposit{header: header{Tx: tx, Client: client}, Amount: amount}
}

func NewWithdrawal(tx TxID, client ClientID, amount money.Money) Withdrawal {
	return Withdrawal{header: header{Tx: tx, Client: client}, Amount: amount}
}

func NewDispute(tx TxID, client ClientID) Dispute {
	return Dispute{header{Tx: tx, Client: client}}
}

func NewResolve(tx TxID, client ClientID) Resolve {
	return Resolve{header{Tx: tx, Client: client}}
}

func NewChargeback(tx TxID, client ClientID) Chargeback {
	return Chargeback{header{Tx: tx, Client: client}}
}

// NewEvent builds the event for kind. Deposit and Withdrawal require an
// amount; the other kinds ignore it.
func NewEvent(kind Kind, tx TxID, client ClientID, amount *money.Money) (Event, error) {
	switch kind {
	case KindDeposit, KindWithdrawal:
		if amount == nil {
			return nil, fmt.Errorf("%s tx %d: %w", kind, tx, ErrMissingAmount)
		}
		if kind == KindDeposit {
			return NewDeposit(tx, client, *amount), nil
		}
		return NewWithdrawal(tx, client, *amount), nil
	case KindDispute:
		return NewDispute(tx, client), nil
	case KindResolve:
		return NewResolve(tx, client), nil
	case KindChargeback:
		return NewChargeback(tx, client), nil
	default:
		return nil, fmt.Errorf("unknown event kind %s", kind)
	}
}
