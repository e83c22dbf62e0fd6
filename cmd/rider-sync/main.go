package main

import (
	"context"
	"database/sql"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	trmsql "github.com/avito-tech/go-transaction-manager/sql"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	application "ridersync/internal/app"
	"ridersync/internal/handlers/rest/alert_action_post"
	"ridersync/internal/handlers/rest/alert_dismiss_post"
	"ridersync/internal/handlers/rest/alerts_get"
	"ridersync/internal/handlers/rest/healthcheck_head"
	"ridersync/internal/handlers/rest/order_accept_post"
	"ridersync/internal/handlers/rest/order_status_post"
	"ridersync/internal/handlers/rest/orders_get"
	"ridersync/internal/handlers/rest/ping_get"
	"ridersync/internal/handlers/rest/status_get"
	"ridersync/internal/pkg/config"
	"ridersync/internal/pkg/dotenv"
	metrics_system "ridersync/internal/pkg/metrics"
	"ridersync/internal/pkg/middlewares/graceful_shutdown"
	"ridersync/internal/pkg/middlewares/metrics"
	"ridersync/internal/pkg/middlewares/rate_limiter"
	"ridersync/internal/pkg/middlewares/timeout"
	"ridersync/internal/pkg/sqlite"
	"ridersync/pkg/logger"
	"ridersync/pkg/logger/zap_adapter"
	"ridersync/pkg/token_bucket"
)

func main() {
	if err := dotenv.LoadWithFlags(os.Args[0], os.Args[1:]); err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting rider-sync application")

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // ongoingCtx и shutdownCtx намеренно наследуются от context.Background(), это часть graceful shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 2 * time.Second
	)

	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	db, err := sqlite.Open(ctx, log, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			runLog.Error("failed to close database", logger.NewField("error", err))
		}
	}()

	// Прогрев фоновых задач делает первую загрузку заказов, поэтому сервер должен быть доступен уже здесь.
	businessApp, err := application.InitializeApplication(ctx, log, db, trmsql.DefaultCtxGetter, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	eventLoop, eventCtx := errgroup.WithContext(ctx)
	eventLoop.Go(func() error {
		return businessApp.Registry.Run(eventCtx)
	})

	channel, err := businessApp.Channel.Connect(eventCtx)
	if err != nil {
		stop()
		_ = eventLoop.Wait()
		return fmt.Errorf("event channel: %w", err)
	}

	go superviseChannel(ctx, runLog, channel)

	metrics_system.StartSystemMetricsCollector(ctx)

	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, db, businessApp, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, db),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // при выключенном pprof канал nil и кейс не срабатывает
		runErr = fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	// подписки снимаем первыми: события после этой точки уже никому не нужны
	businessApp.Orders.Close()

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	if err := eventLoop.Wait(); err != nil {
		runLog.Error("event dispatch loop", logger.NewField("error", err))
	}
	<-channel.Done()
	businessApp.Orders.Drain()
	businessApp.Notifier.Wait()
	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return runErr
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	db *sql.DB,
	app *application.Application,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, db)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")
	router.Handle("/status", status_get.New(log, app.Channel, app.Orders)).Methods("GET")

	router.Handle("/orders", orders_get.New(log, app.Orders)).Methods("GET")
	router.Handle("/orders/{id}/accept", order_accept_post.New(log, app.Orders)).Methods("POST")
	router.Handle("/orders/{id}/status", order_status_post.New(log, app.Orders)).Methods("POST")

	router.Handle("/alerts", alerts_get.New(log, app.Alerts)).Methods("GET")
	router.Handle("/alerts/{id}/dismiss", alert_dismiss_post.New(log, app.Alerts)).Methods("POST")
	router.Handle("/alerts/{id}/action", alert_action_post.New(log, app.Alerts)).Methods("POST")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, db *sql.DB) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, db)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}

type channelOutcome interface {
	Done() <-chan struct{}
	Err() error
}

// superviseChannel сообщает об остановке канала. Процесс при этом живет: /status отдает
// connected=false, а orders_resync продолжает перечитывать заказы.
func superviseChannel(ctx context.Context, log logger.Logger, ch channelOutcome) {
	select {
	case <-ctx.Done():
		return
	case <-ch.Done():
	}

	if err := ch.Err(); err != nil {
		log.Error("realtime channel stopped, serving without live events",
			logger.NewField("error", err),
		)
	}
}
