package model

import (
	"fmt"

	"github.com/hance08/payledger/internal/money"
)

// TxID is the feed-assigned transaction identifier. First occurrence wins.
type TxID uint32

// Kind is the type tag of an event.
type Kind uint8

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

var kindNames = map[Kind]string{
	KindDeposit:    "deposit",
	KindWithdrawal: "withdrawal",
	KindDispute:    "dispute",
	KindResolve:    "resolve",
	KindChargeback: "chargeback",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a feed type tag to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%q is an invalid transaction type", s)
}

// Status is the lifecycle state of a Deposit or Withdrawal record.
type Status uint8

const (
	StatusProcessed Status = iota + 1
	StatusInDispute
	StatusResolved
	StatusChargeback
)

var statusNames = map[Status]string{
	StatusProcessed:  "processed",
	StatusInDispute:  "in_dispute",
	StatusResolved:   "resolved",
	StatusChargeback: "chargeback",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%q is an invalid transaction status", s)
}

// Terminal reports whether no further dispute events can move the record.
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusChargeback
}

// Transaction is the persisted record of an accepted Deposit or Withdrawal.
type Transaction struct {
	ID     TxID
	Kind   Kind
	Client ClientID
	Amount money.Money
	Status Status
}
