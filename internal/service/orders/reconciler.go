package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"ridersync/internal/entities"
	"ridersync/internal/events"
	"ridersync/pkg/logger"
)

// subscribedEvents - события, на которые реагирует коллекция заказов.
var subscribedEvents = []entities.EventName{
	entities.EventOrdersNew,
	entities.EventOrderStatus,
	entities.EventOrderAssignRider,
	entities.EventVendorPacksUpdate,
}

// Reconciler держит каноническую локальную коллекцию заказов курьера.
// Обработчики событий вызываются из одной горутины реестра, перечитывание идет в фоне.
type Reconciler struct {
	log        handlerLogger
	gateway    OrdersGateway
	notifier   Notifier
	strategies StrategyFactory
	rider      entities.Rider

	mu      sync.RWMutex
	orders  []entities.Order
	index   map[string]int
	applied uint64
	alive   bool
	scope   *events.Scope

	issued atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(
	log handlerLogger,
	gateway OrdersGateway,
	notifier Notifier,
	strategies StrategyFactory,
	rider entities.Rider,
) *Reconciler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Reconciler{
		log:        log,
		gateway:    gateway,
		notifier:   notifier,
		strategies: strategies,
		rider:      rider,
		index:      make(map[string]int),
		alive:      true,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Attach подписывает коллекцию на события заказов. Повторный вызов снимает прежние подписки.
func (r *Reconciler) Attach(registry *events.Registry) {
	scope := registry.NewScope()
	for _, name := range subscribedEvents {
		scope.On(name, r.Handle)
	}

	r.mu.Lock()
	if !r.alive {
		r.mu.Unlock()
		scope.Close()
		return
	}
	prev := r.scope
	r.scope = scope
	r.mu.Unlock()

	if prev != nil {
		prev.Close()
	}
}

// Close снимает подписки и отменяет текущие запросы. Результаты, пришедшие после Close,
// отбрасываются без ошибки.
func (r *Reconciler) Close() {
	r.mu.Lock()
	if !r.alive {
		r.mu.Unlock()
		return
	}
	r.alive = false
	scope := r.scope
	r.scope = nil
	r.mu.Unlock()

	if scope != nil {
		scope.Close()
	}
	r.cancel()

	r.log.Info("order reconciler closed")
}

// Drain ждет завершения фоновых перечитываний.
func (r *Reconciler) Drain() {
	r.wg.Wait()
}

// Handle применяет стратегию события к коллекции и передает событие дальше уведомлениям.
func (r *Reconciler) Handle(ctx context.Context, ev entities.Event) {
	strategy, err := r.strategies.GetStrategy(ev.Name())
	switch {
	case errors.Is(err, ErrUndefinedEvent):
		r.log.Debug("no reconcile strategy for event", logger.NewField("event", ev.Name().String()))
	case err != nil:
		r.log.Warn("get reconcile strategy",
			logger.NewField("event", ev.Name().String()),
			logger.NewField("error", err),
		)
	case strategy == StrategyRefresh:
		r.refreshAsync()
	case strategy == StrategyPatch:
		if order, ok := orderOf(ev); ok {
			r.Patch(order)
		}
	}

	r.notifier.Notify(ctx, ev)
}

// Snapshot возвращает копию коллекции в порядке, в котором ее отдал сервер.
func (r *Reconciler) Snapshot() []entities.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]entities.Order, len(r.orders))
	for i, o := range r.orders {
		snapshot[i] = o.Clone()
	}
	return snapshot
}

// Find возвращает копию заказа по идентификатору.
func (r *Reconciler) Find(orderID string) (entities.Order, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.index[orderID]
	if !ok {
		return entities.Order{}, false
	}
	return r.orders[idx].Clone(), true
}

// Patch заменяет запись с тем же id. Позиция и остальные записи не меняются.
// Заказ, которого нет в коллекции, молча отбрасывается.
func (r *Reconciler) Patch(order entities.Order) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.index[order.ID]
	if !ok {
		r.log.Debug("patch for unknown order dropped", logger.NewField("order_id", order.ID))
		ReconcileOperationsTotal.WithLabelValues(operationPatch, resultUnknownOrder).Inc()
		return false
	}

	r.orders[idx] = order.Clone()
	ReconcileOperationsTotal.WithLabelValues(operationPatch, resultApplied).Inc()
	return true
}

// RefreshNow перечитывает коллекцию синхронно. Используется на старте и периодической задачей.
func (r *Reconciler) RefreshNow(ctx context.Context) error {
	gen := r.issued.Add(1)

	orders, err := r.gateway.FetchOrders(ctx)
	if err != nil {
		ReconcileOperationsTotal.WithLabelValues(operationRefresh, resultFailed).Inc()
		return fmt.Errorf("refresh orders: %w", err)
	}

	r.apply(gen, orders)
	return nil
}

func (r *Reconciler) refreshAsync() {
	r.mu.Lock()
	if !r.alive {
		r.mu.Unlock()
		return
	}
	gen := r.issued.Add(1)
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		orders, err := r.gateway.FetchOrders(r.ctx)
		if err != nil {
			if r.ctx.Err() != nil {
				ReconcileOperationsTotal.WithLabelValues(operationRefresh, resultDiscarded).Inc()
				return
			}
			r.log.Warn("background orders refresh failed",
				logger.NewField("generation", gen),
				logger.NewField("error", err),
			)
			ReconcileOperationsTotal.WithLabelValues(operationRefresh, resultFailed).Inc()
			return
		}

		r.apply(gen, orders)
	}()
}

// apply заменяет коллекцию целиком, если держатель еще жив и более свежий результат
// не был применен раньше.
func (r *Reconciler) apply(gen uint64, fetched []entities.Order) {
	orders := r.inScope(fetched)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.alive {
		r.log.Debug("refresh result discarded after close", logger.NewField("generation", gen))
		ReconcileOperationsTotal.WithLabelValues(operationRefresh, resultDiscarded).Inc()
		return
	}
	if gen <= r.applied {
		r.log.Debug("stale refresh result discarded",
			logger.NewField("generation", gen),
			logger.NewField("applied", r.applied),
		)
		ReconcileOperationsTotal.WithLabelValues(operationRefresh, resultStale).Inc()
		return
	}

	index := make(map[string]int, len(orders))
	for i, o := range orders {
		if _, dup := index[o.ID]; !dup {
			index[o.ID] = i
		}
	}

	r.orders = orders
	r.index = index
	r.applied = gen
	ReconcileOperationsTotal.WithLabelValues(operationRefresh, resultApplied).Inc()
}

// inScope оставляет заказы университета курьера, сравнение строгое: у курьера без
// университета в ленте только заказы без университета.
func (r *Reconciler) inScope(fetched []entities.Order) []entities.Order {
	orders := make([]entities.Order, 0, len(fetched))
	for _, o := range fetched {
		if o.University != r.rider.University {
			continue
		}
		orders = append(orders, o.Clone())
	}
	return orders
}

func orderOf(ev entities.Event) (entities.Order, bool) {
	switch e := ev.(type) {
	case entities.OrderStatusChanged:
		return e.Order, true
	case entities.PacksUpdated:
		return e.Order, true
	default:
		return entities.Order{}, false
	}
}
