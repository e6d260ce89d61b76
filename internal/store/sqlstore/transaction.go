package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/payledger/internal/model"
	"github.com/hance08/payledger/internal/store"
)

const selectTransaction = `
        SELECT id, kind, client_id, amount, status
        FROM transactions
        WHERE id = ?
    `

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		tx           model.Transaction
		id, client   int64
		kind, status string
	)
	if err := row.Scan(&id, &kind, &client, &tx.Amount, &status); err != nil {
		return nil, err
	}

	var err error
	if tx.Kind, err = model.ParseKind(kind); err != nil {
		return nil, fmt.Errorf("transaction %d: %w", id, err)
	}
	if tx.Status, err = model.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("transaction %d: %w", id, err)
	}
	tx.ID = model.TxID(id)
	tx.Client = model.ClientID(client)
	return &tx, nil
}

func (q *queries) GetTransaction(ctx context.Context, id model.TxID) (*model.Transaction, error) {
	tx, err := scanTransaction(q.db.QueryRowContext(ctx, q.dialect.rebind(selectTransaction), int64(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %d: %w", id, store.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction %d: %w", id, err)
	}
	return tx, nil
}

func (q *queries) UpsertTransaction(ctx context.Context, tx *model.Transaction) error {
	_, err := q.db.ExecContext(ctx, q.dialect.rebind(`
        INSERT INTO transactions (id, kind, client_id, amount, status)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (id) DO UPDATE SET
            status = excluded.status
    `), int64(tx.ID), tx.Kind.String(), int64(tx.Client), tx.Amount, tx.Status.String())
	if err != nil {
		return q.dialect.wrap(err, "failed to upsert transaction %d", tx.ID)
	}
	return nil
}

func (s *Store) FindTransaction(ctx context.Context, id model.TxID) (*model.Transaction, error) {
	return (&queries{db: s.db, dialect: s.dialect}).GetTransaction(ctx, id)
}
