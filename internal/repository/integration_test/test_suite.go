package integration_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	trmsql "github.com/avito-tech/go-transaction-manager/sql"
	"github.com/stretchr/testify/require"
	"ridersync/internal/pkg/config"
	"ridersync/internal/pkg/sqlite"
	"ridersync/pkg/logger"
	"ridersync/pkg/querier"
	"ridersync/pkg/tx"
)

// Suite - отдельная база на каждый тест, файлы живут во временном каталоге теста.
type Suite struct {
	DB      *sql.DB
	Querier *querier.Querier
	Tx      *tx.Manager
}

func NewSuite(t *testing.T) *Suite {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := &config.Storage{SQLitePath: filepath.Join(t.TempDir(), "state.db")}
	db, err := sqlite.Open(ctx, logger.Nop(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &Suite{
		DB:      db,
		Querier: querier.New(db, trmsql.DefaultCtxGetter),
		Tx:      tx.New(db),
	}
}

func (s *Suite) SetupDB(t *testing.T, setupSql string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := s.Querier.Exec(ctx, setupSql)
	require.NoError(t, err)
}
