package repository

import (
	"context"
	"database/sql"
)

// Querier - то, что нужно репозиториям от pkg/querier.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row
}
