package service

import (
	"context"
	"fmt"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/store"
)

type TransactionService struct {
	repo store.Repository
}

func NewTransactionService(repo store.Repository) *TransactionService {
	return &TransactionService{repo: repo}
}

// TransactionDetail is a stored record together with its owner's account.
type TransactionDetail struct {
	Transaction *model.Transaction
	Account     *model.Account
}

// GetTransactionByID loads one record and the account it belongs to.
func (ts *TransactionService) GetTransactionByID(ctx context.Context, id model.TxID) (*TransactionDetail, error) {
	var detail TransactionDetail
	err := ts.repo.ExecTx(ctx, func(tx store.Tx) error {
		rec, err := tx.GetTransaction(ctx, id)
		if err != nil {
			return err
		}
		acc, err := tx.GetAccount(ctx, rec.Client)
		if err != nil {
			return err
		}
		detail = TransactionDetail{Transaction: rec, Account: acc}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("transaction %d: %w", id, err)
	}
	return &detail, nil
}

// ResetLedger permanently removes every account and transaction record.
func (ts *TransactionService) ResetLedger(ctx context.Context) error {
	return ts.repo.Reset(ctx)
}
