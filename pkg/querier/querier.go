package querier

import (
	"context"
	"database/sql"

	trmsql "github.com/avito-tech/go-transaction-manager/sql"
)

// Querier выполняет запросы в транзакции из контекста, а если ее нет - прямо в базе.
type Querier struct {
	db     *sql.DB
	getter *trmsql.CtxGetter
}

func New(db *sql.DB, getter *trmsql.CtxGetter) *Querier {
	return &Querier{
		db:     db,
		getter: getter,
	}
}

func (q *Querier) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.get(ctx).ExecContext(ctx, query, args...)
}

func (q *Querier) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.get(ctx).QueryContext(ctx, query, args...)
}

func (q *Querier) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.get(ctx).QueryRowContext(ctx, query, args...)
}

func (q *Querier) get(ctx context.Context) trmsql.Tr {
	return q.getter.DefaultTrOrDB(ctx, q.db)
}
