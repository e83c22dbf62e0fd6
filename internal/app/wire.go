//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	trmsql "github.com/avito-tech/go-transaction-manager/sql"
	"github.com/google/wire"

	"ridersync/internal/entities"
	"ridersync/internal/events"
	"ridersync/internal/gateway/rest/rider"
	alert_action_post "ridersync/internal/handlers/rest/alert_action_post"
	alert_dismiss_post "ridersync/internal/handlers/rest/alert_dismiss_post"
	alerts_get "ridersync/internal/handlers/rest/alerts_get"
	order_accept_post "ridersync/internal/handlers/rest/order_accept_post"
	order_status_post "ridersync/internal/handlers/rest/order_status_post"
	orders_get "ridersync/internal/handlers/rest/orders_get"
	"ridersync/internal/handlers/tasks/alert_expiry"
	"ridersync/internal/handlers/tasks/orders_resync"
	"ridersync/internal/pkg/config"
	"ridersync/internal/pkg/factory/alert_deadline"
	"ridersync/internal/pkg/factory/order_event"
	"ridersync/internal/pkg/sound"
	alertRepo "ridersync/internal/repository/alert"
	sessionRepo "ridersync/internal/repository/session"
	alertsService "ridersync/internal/service/alerts"
	"ridersync/internal/service/notification"
	ordersService "ridersync/internal/service/orders"
	sessionService "ridersync/internal/service/session"
	walletService "ridersync/internal/service/wallet"
	"ridersync/internal/transport/channel"

	"ridersync/pkg/background"
	"ridersync/pkg/logger"
	"ridersync/pkg/querier"
	"ridersync/pkg/tx"
)

const gatewayRequestTimeout = 15 * time.Second

type (
	AlertSweepInterval   time.Duration
	OrdersResyncInterval time.Duration
)

type Application struct {
	Registry          *events.Registry
	Channel           *channel.Provider
	Orders            *ordersService.Reconciler
	Notifier          *notification.Dispatcher
	Alerts            ServiceAlerts
	BackgroundWorkers *background.Worker
}

type ServiceOrders interface {
	orders_get.Service
	order_accept_post.Service
	order_status_post.Service
	orders_resync.Service
}

type ServiceAlerts interface {
	alerts_get.Service
	alert_dismiss_post.Service
	alert_action_post.Service
	alert_expiry.Service
}

// InitializeApplication для демона (cmd/rider-sync)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	db *sql.DB,
	getter *trmsql.CtxGetter,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideSessionRepository,
		provideAlertRepository,

		provideHTTPClient,
		provideRiderGateway,
		provideSessionService,
		provideRider,

		provideRegistry,
		provideChannelProvider,

		provideAlertCenter,
		providePlayer,
		alert_deadline.New,
		provideDispatcher,

		order_event.NewStrategyFactory,
		provideReconciler,

		provideAlertSweepInterval,
		provideOrdersResyncInterval,
		provideAlertExpiryTask,
		provideOrdersResyncTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceAlerts), new(*alertsService.Center)),
		wire.Bind(new(ServiceOrders), new(*ordersService.Reconciler)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	Registry          *events.Registry
	Orders            *ordersService.Reconciler
	Notifier          *notification.Dispatcher
	Alerts            ServiceAlerts
	BackgroundWorkers *background.Worker
}

// InitializeKafkaWorkerApp для моста Kafka (cmd/worker-rider-events)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	db *sql.DB,
	getter *trmsql.CtxGetter,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideSessionRepository,
		provideAlertRepository,

		provideHTTPClient,
		provideRiderGateway,
		provideSessionService,
		provideRider,

		provideRegistry,

		provideAlertCenter,
		providePlayer,
		alert_deadline.New,
		provideDispatcher,

		order_event.NewStrategyFactory,
		provideReconciler,

		provideAlertSweepInterval,
		provideOrdersResyncInterval,
		provideAlertExpiryTask,
		provideOrdersResyncTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(KafkaWorkerApp), "*"),

		wire.Bind(new(ServiceAlerts), new(*alertsService.Center)),
		wire.Bind(new(ServiceOrders), new(*ordersService.Reconciler)),
	)
	return nil, nil
}

type CLIApp struct {
	Session *sessionService.Service
	Wallet  *walletService.Service
	Gateway *rider.Gateway
	Alerts  *alertsService.Center
}

// InitializeCLI для команд riderctl. Курьер не резолвится заранее: login работает и без сессии.
func InitializeCLI(
	ctx context.Context,
	log logger.Logger,
	db *sql.DB,
	getter *trmsql.CtxGetter,
	cfg *config.Config,
) (*CLIApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideSessionRepository,
		provideAlertRepository,

		provideHTTPClient,
		provideRiderGateway,
		provideSessionService,
		provideWalletService,
		provideAlertCenter,

		wire.Struct(new(CLIApp), "*"),
	)
	return nil, nil
}

func provideTxManager(db *sql.DB) *tx.Manager {
	return tx.New(db)
}

func provideQuerier(db *sql.DB, getter *trmsql.CtxGetter) *querier.Querier {
	return querier.New(db, getter)
}

func provideSessionRepository(querier *querier.Querier) *sessionRepo.Repository {
	return sessionRepo.New(querier)
}

func provideAlertRepository(querier *querier.Querier) *alertRepo.Repository {
	return alertRepo.New(querier)
}

func provideHTTPClient() *http.Client {
	return &http.Client{Timeout: gatewayRequestTimeout}
}

// provideRiderGateway - токен берется из сохраненной сессии на каждый запрос.
func provideRiderGateway(cfg *config.Config, client *http.Client, sessions *sessionRepo.Repository) *rider.Gateway {
	return rider.New(cfg.API.BaseURL, client, sessions)
}

func provideSessionService(
	gateway *rider.Gateway,
	repository *sessionRepo.Repository,
	txManager *tx.Manager,
) *sessionService.Service {
	return sessionService.New(gateway, repository, txManager)
}

// provideRider - без входа демону работать не от чьего имени, поэтому ошибка фатальна.
func provideRider(ctx context.Context, sessions *sessionService.Service) (entities.Rider, error) {
	return sessions.ResolveRider(ctx)
}

func provideWalletService(gateway *rider.Gateway, sessions *sessionService.Service) *walletService.Service {
	return walletService.New(gateway, sessions)
}

func provideRegistry(log logger.Logger) *events.Registry {
	return events.NewRegistry(log)
}

func provideChannelProvider(log logger.Logger, cfg *config.Config, registry *events.Registry) *channel.Provider {
	channelCfg := channel.DefaultConfig(cfg.API.BaseURL)
	channelCfg.Path = cfg.Channel.Path
	channelCfg.Transports = cfg.Channel.Transports
	channelCfg.ReconnectAttempts = cfg.Channel.ReconnectAttempts
	channelCfg.ReconnectDelay = cfg.Channel.ReconnectDelay

	return channel.NewProvider(log, channelCfg, registry)
}

func provideAlertCenter(log logger.Logger, history *alertRepo.Repository) *alertsService.Center {
	return alertsService.New(log, history)
}

func providePlayer(cfg *config.Config) (notification.Player, error) {
	return sound.New(cfg.Notify.SoundCommand, os.Stderr)
}

func provideDispatcher(
	log logger.Logger,
	player notification.Player,
	center *alertsService.Center,
	deadlines *alert_deadline.AlertExpiryFactory,
	rider entities.Rider,
	cfg *config.Config,
) *notification.Dispatcher {
	return notification.New(log, player, center, deadlines, rider, notification.Config{
		DedupeWindow: cfg.Notify.DedupeWindow,
	})
}

// provideReconciler создает коллекцию заказов и сразу подписывает ее на реестр.
func provideReconciler(
	log logger.Logger,
	gateway *rider.Gateway,
	dispatcher *notification.Dispatcher,
	strategies *order_event.StrategyFactory,
	rider entities.Rider,
	registry *events.Registry,
) *ordersService.Reconciler {
	reconciler := ordersService.New(log, gateway, dispatcher, strategies, rider)
	reconciler.Attach(registry)
	return reconciler
}

func provideAlertSweepInterval(cfg *config.Config) AlertSweepInterval {
	return AlertSweepInterval(cfg.Tasks.AlertSweepInterval)
}

func provideOrdersResyncInterval(cfg *config.Config) OrdersResyncInterval {
	return OrdersResyncInterval(cfg.Tasks.OrdersResyncInterval)
}

func provideAlertExpiryTask(
	log logger.Logger,
	alerts ServiceAlerts,
	interval AlertSweepInterval,
) *alert_expiry.AlertExpiry {
	return alert_expiry.NewAlertExpiry(log, alerts, time.Duration(interval))
}

func provideOrdersResyncTask(
	orders ServiceOrders,
	interval OrdersResyncInterval,
) *orders_resync.OrdersResync {
	return orders_resync.NewOrdersResync(orders, time.Duration(interval))
}

func provideTaskList(
	alertExpiryTask *alert_expiry.AlertExpiry,
	ordersResyncTask *orders_resync.OrdersResync,
) []background.Task {
	return []background.Task{
		alertExpiryTask,
		ordersResyncTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
