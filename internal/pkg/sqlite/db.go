package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"ridersync/internal/pkg/config"
	"ridersync/pkg/logger"
	retrierconfig "ridersync/pkg/retrier"
	"ridersync/pkg/retrier/backoff_adapter"
)

const driverName = "sqlite3"

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = time.Second
	maxElapsedTime  = 10 * time.Second
	randomization   = 0.5
	multiplier      = 2
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open открывает локальное хранилище и накатывает миграции.
// Одно соединение: SQLite все равно сериализует запись, а так не ловим SQLITE_BUSY.
func Open(ctx context.Context, log logger.Logger, cfg *config.Storage) (*sql.DB, error) {
	db, err := sql.Open(driverName, newDsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	dbLog := log.With(logger.NewField("path", cfg.SQLitePath))

	if err := pingDatabase(ctx, dbLog, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database connection: %w", err)
	}

	if err := Migrate(ctx, dbLog, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func newDsn(cfg *config.Storage) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL", cfg.SQLitePath)
}

// Migrate накатывает встроенные миграции.
func Migrate(ctx context.Context, log logger.Logger, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("migrations provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		log.Info("migration applied",
			logger.NewField("version", res.Source.Version),
			logger.NewField("duration", res.Duration.String()),
		)
	}
	return nil
}

func pingDatabase(ctx context.Context, log logger.Logger, db *sql.DB) error {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     nil, // все ошибки ретраим
	}

	retrier := backoff_adapter.New(retryConfig)

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(
			logger.NewField("attempt", attempt),
		).Debug("attempting database open")

		return db.PingContext(ctx)
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("Database open failed after retries")
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.With(
		logger.NewField("attempts", attempt),
	).Info("Database opened")
	return nil
}
