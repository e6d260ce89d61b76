package service

import (
	"context"
	"fmt"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/money"
	"github.com/hance08/payledger/internal/store"
)

type AccountService struct {
	repo store.Repository
}

func NewAccountService(repo store.Repository) *AccountService {
	return &AccountService{repo: repo}
}

// GetAllAccounts returns every account in ascending client order.
func (as *AccountService) GetAllAccounts(ctx context.Context) ([]*model.Account, error) {
	return as.repo.ListAccounts(ctx)
}

// GetAccount returns a single account, or store.ErrRecordNotFound.
func (as *AccountService) GetAccount(ctx context.Context, client model.ClientID) (*model.Account, error) {
	var acc *model.Account
	err := as.repo.ExecTx(ctx, func(tx store.Tx) error {
		var err error
		acc, err = tx.GetAccount(ctx, client)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("client %d: %w", client, err)
	}
	return acc, nil
}

// Totals aggregates balances across all accounts.
type Totals struct {
	Accounts  int
	Locked    int
	Available money.Money
	Held      money.Money
	Total     money.Money
}

func (as *AccountService) GetTotals(ctx context.Context) (Totals, error) {
	accounts, err := as.repo.ListAccounts(ctx)
	if err != nil {
		return Totals{}, err
	}
	return Summarize(accounts)
}

func Summarize(accounts []*model.Account) (Totals, error) {
	t := Totals{Accounts: len(accounts)}
	for _, acc := range accounts {
		if acc.Locked {
			t.Locked++
		}

		var err error
		if t.Available, err = t.Available.Add(acc.Available); err != nil {
			return Totals{}, err
		}
		if t.Held, err = t.Held.Add(acc.Held); err != nil {
			return Totals{}, err
		}
	}

	total, err := t.Available.Add(t.Held)
	if err != nil {
		return Totals{}, err
	}
	t.Total = total
	return t, nil
}
