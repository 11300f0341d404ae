package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recus/internal/infra"
	"recus/internal/sqlinline"
)

// CounterName is the single shared counter backing receipt numbering.
const CounterName = "receipts"

// CounterSource yields the next receipt number.
type CounterSource interface {
	Next(ctx context.Context) (int64, error)
}

// CounterRepositoryPG assigns receipt numbers from a single counter row
// using an atomic read-modify-write transaction.
type CounterRepositoryPG struct {
	pool *pgxpool.Pool
	name string
}

// NewCounterRepository creates a counter repo for the receipts counter.
func NewCounterRepository(pool *pgxpool.Pool) *CounterRepositoryPG {
	return &CounterRepositoryPG{pool: pool, name: CounterName}
}

// Next reads the counter under a row lock, writes back value+1 and returns
// the new value. An absent row starts the sequence at 1. Under concurrent
// invocation each caller observes a distinct, strictly increasing integer;
// on failure the caller must abort before rendering anything.
func (r *CounterRepositoryPG) Next(ctx context.Context) (int64, error) {
	var next int64
	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var current int64
		err := tx.QueryRow(ctx, sqlinline.QSelectCounterForUpdate, r.name).Scan(&current)
		switch {
		case infra.IsNoRows(err):
			next = 1
			_, err = tx.Exec(ctx, sqlinline.QInsertCounter, r.name, next)
			return err
		case err != nil:
			return err
		}
		next = current + 1
		_, err = tx.Exec(ctx, sqlinline.QUpdateCounter, r.name, next)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("next receipt number: %w", err)
	}
	return next, nil
}

var _ CounterSource = (*CounterRepositoryPG)(nil)
