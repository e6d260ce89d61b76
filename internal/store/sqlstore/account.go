package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/money"
	"github.com/hance08/payledger/internal/store"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var (
		acc    model.Account
		client int64
	)
	if err := row.Scan(&client, &acc.Available, &acc.Held, &acc.Locked); err != nil {
		return nil, err
	}
	acc.Client = model.ClientID(client)
	return &acc, nil
}

func (q *queries) GetAccount(ctx context.Context, client model.ClientID) (*model.Account, error) {
	row := q.db.QueryRowContext(ctx, q.dialect.rebind(`
        SELECT client_id, available, held, locked
        FROM accounts
        WHERE client_id = ?
    `), int64(client))

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %d: %w", client, store.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account %d: %w", client, err)
	}
	return acc, nil
}

func (q *queries) CreateAccountIfAbsent(ctx context.Context, client model.ClientID) (*model.Account, error) {
	_, err := q.db.ExecContext(ctx, q.dialect.rebind(`
        INSERT INTO accounts (client_id, available, held, locked)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (client_id) DO NOTHING
    `), int64(client), money.Zero, money.Zero, false)
	if err != nil {
		return nil, q.dialect.wrap(err, "failed to create account %d", client)
	}
	return q.GetAccount(ctx, client)
}

func (q *queries) UpsertAccount(ctx context.Context, acc *model.Account) error {
	_, err := q.db.ExecContext(ctx, q.dialect.rebind(`
        INSERT INTO accounts (client_id, available, held, locked)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (client_id) DO UPDATE SET
            available = excluded.available,
            held = excluded.held,
            locked = excluded.locked
    `), int64(acc.Client), acc.Available, acc.Held, acc.Locked)
	if err != nil {
		return q.dialect.wrap(err, "failed to upsert account %d", acc.Client)
	}
	return nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT client_id, available, held, locked
        FROM accounts
        ORDER BY client_id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}
