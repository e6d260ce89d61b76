package model

import "github.com/hance08/payledger/internal/money"

// ClientID identifies the owner of an account.
type ClientID uint16

// Account is the per-client balance record. Total is never stored.
type Account struct {
	Client    ClientID
	Available money.Money
	Held      money.Money
	Locked    bool
}

// NewAccount returns the zero-balance, unlocked account a first deposit creates.
func NewAccount(client ClientID) *Account {
	return &Account{Client: client}
}

// Total is Available + Held.
func (a *Account) Total() (money.Money, error) {
	return a.Available.Add(a.Held)
}
