// Package sqlstore implements store.Repository on top of database/sql.
// The sqlite and postgres packages open the database, run migrations and
// hand the connection over together with their Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/hance08/payledger/internal/store"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect captures what differs between SQL backends.
type Dialect struct {
	Name string
	// Numbered placeholders ($1, $2, ...) instead of "?".
	NumberedParams bool
	// IsConstraintError reports whether err is a constraint violation.
	IsConstraintError func(err error) bool
}

func (d Dialect) rebind(query string) string {
	if !d.NumberedParams {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) wrap(err error, format string, args ...any) error {
	if d.IsConstraintError != nil && d.IsConstraintError(err) {
		return fmt.Errorf(format+": %w: %v", append(args, store.ErrConstraintViolation, err)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Compile-time check: Store implements store.Repository.
var _ store.Repository = (*Store)(nil)

type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying handle, mainly for tests.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) ExecTx(ctx context.Context, fn func(store.Tx) error) error {
	return s.execTx(ctx, func(q *queries) error { return fn(q) })
}

func (s *Store) execTx(ctx context.Context, fn func(*queries) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&queries{db: tx, dialect: s.dialect}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w: %v (tx err: %v)", store.ErrRollback, rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Reset(ctx context.Context) error {
	return s.execTx(ctx, func(q *queries) error {
		// transactions first: they reference accounts.
		for _, table := range []string{"transactions", "accounts"} {
			if _, err := q.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

// queries runs the per-record statements against either the pool or an
// open transaction.
type queries struct {
	db      DBTX
	dialect Dialect
}
