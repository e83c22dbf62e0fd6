package main

import (
	"context"
	"database/sql"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	trmsql "github.com/avito-tech/go-transaction-manager/sql"

	"ridersync/internal/app"
	"ridersync/internal/cli"
	"ridersync/internal/pkg/config"
	"ridersync/internal/pkg/dotenv"
	"ridersync/internal/pkg/sqlite"
	"ridersync/pkg/logger"
	"ridersync/pkg/logger/zap_adapter"
)

// Логи CLI идут в stderr и по умолчанию только предупреждения: stdout занят выводом команд.
const defaultLogLevel = "warn"

func main() {
	os.Exit(run())
}

func run() int {
	if err := dotenv.Load(); err != nil {
		stdlog.Printf("failed to load .env file: %v", err)
		return 1
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = defaultLogLevel
	}
	zapLogger, err := zap_adapter.NewZapAdapter(level, zap_adapter.WithOutput("stderr"), zap_adapter.WithConsole())
	if err != nil {
		stdlog.Printf("failed to initialize logger: %v", err)
		return 1
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	var log logger.Logger = zapLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var db *sql.DB
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	load := func(ctx context.Context) (*cli.Deps, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}

		db, err = sqlite.Open(ctx, log, &cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}

		cliApp, err := app.InitializeCLI(ctx, log, db, trmsql.DefaultCtxGetter, cfg)
		if err != nil {
			return nil, err
		}

		return &cli.Deps{
			Log:      log,
			Sessions: cliApp.Session,
			Wallet:   cliApp.Wallet,
			Orders:   cliApp.Gateway,
			Alerts:   cliApp.Alerts,
		}, nil
	}

	if err := cli.NewRootCommand(load).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "riderctl:", cli.Hint(err))
		return 1
	}
	return 0
}
