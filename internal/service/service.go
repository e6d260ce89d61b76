// Package service exposes read and maintenance operations over a ledger
// store for the command layer.
package service

import (
	"github.com/hance08/payledger/internal/store"
)

type Service struct {
	Account     *AccountService
	Transaction *TransactionService
}

func NewService(repo store.Repository) *Service {
	return &Service{
		Account:     NewAccountService(repo),
		Transaction: NewTransactionService(repo),
	}
}
