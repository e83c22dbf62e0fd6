package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"

	"ridersync/internal/entities"
	"ridersync/pkg/logger"
)

const defaultQueueSize = 256

// Registry хранит подписки на события и доставляет события обработчикам строго по одному,
// в порядке поступления.
type Registry struct {
	log handlerLogger

	mu       sync.RWMutex
	handlers map[entities.EventName][]*Subscription

	queue   chan entities.Event
	running atomic.Bool
}

// Subscription - хэндл одной регистрации. Отписка снимает ровно эту пару имя/обработчик.
type Subscription struct {
	registry *Registry
	name     entities.EventName
	handler  Handler
	active   atomic.Bool
}

func NewRegistry(log handlerLogger) *Registry {
	return NewRegistryWithQueue(log, defaultQueueSize)
}

func NewRegistryWithQueue(log handlerLogger, queueSize int) *Registry {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Registry{
		log:      log,
		handlers: make(map[entities.EventName][]*Subscription),
		queue:    make(chan entities.Event, queueSize),
	}
}

// Subscribe добавляет обработчик в конец списка для name. На одно имя можно повесить сколько угодно
// независимых обработчиков, срабатывают все.
func (r *Registry) Subscribe(name entities.EventName, handler Handler) *Subscription {
	sub := &Subscription{
		registry: r,
		name:     name,
		handler:  handler,
	}
	sub.active.Store(true)

	r.mu.Lock()
	r.handlers[name] = append(r.handlers[name], sub)
	r.mu.Unlock()

	SubscriptionsGauge.Inc()
	return sub
}

// Unsubscribe идемпотентна. После возврата обработчик больше не вызывается,
// даже если событие уже стоит в очереди.
func (s *Subscription) Unsubscribe() {
	if !s.active.CompareAndSwap(true, false) {
		return
	}

	r := s.registry
	r.mu.Lock()
	subs := r.handlers[s.name]
	if idx := slices.Index(subs, s); idx >= 0 {
		subs = slices.Delete(subs, idx, idx+1)
	}
	if len(subs) == 0 {
		delete(r.handlers, s.name)
	} else {
		r.handlers[s.name] = subs
	}
	r.mu.Unlock()

	SubscriptionsGauge.Dec()
}

func (s *Subscription) Active() bool {
	return s.active.Load()
}

// Handlers - число активных обработчиков на имя события.
func (r *Registry) Handlers(name entities.EventName) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[name])
}

// Publish разбирает сырое событие и ставит его в очередь. Неизвестные имена пропускаются.
// Ошибка возвращается только для битых данных и отмененного контекста.
func (r *Registry) Publish(ctx context.Context, name string, payload json.RawMessage) error {
	ev, err := Decode(name, payload)
	if err != nil {
		if errors.Is(err, ErrUnknownEvent) {
			r.log.Debug("ignoring unknown event", logger.NewField("event", name))
			EventsTotal.WithLabelValues(name, resultIgnored).Inc()
			return nil
		}

		r.log.Warn("dropping invalid event",
			logger.NewField("event", name),
			logger.NewField("error", err),
		)
		EventsTotal.WithLabelValues(name, resultInvalid).Inc()
		return err
	}

	return r.Enqueue(ctx, ev)
}

// Enqueue ставит уже типизированное событие в очередь (события жизненного цикла канала).
// Если очередь полна - ждет, порядок не нарушается и события не теряются.
func (r *Registry) Enqueue(ctx context.Context, ev entities.Event) error {
	select {
	case r.queue <- ev:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue %s: %w", ev.Name(), ctx.Err())
	}
}

// Run - единственный цикл доставки. Блокируется до отмены контекста.
func (r *Registry) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("run: dispatch loop already started")
	}
	defer r.running.Store(false)

	r.log.Info("event dispatch loop started")
	for {
		select {
		case <-ctx.Done():
			r.log.Info("event dispatch loop stopped")
			return nil
		case ev := <-r.queue:
			r.Dispatch(ctx, ev)
		}
	}
}

// Dispatch синхронно вызывает обработчики ev в порядке регистрации.
// Паника обработчика перехватывается, остальные обработчики все равно вызываются.
func (r *Registry) Dispatch(ctx context.Context, ev entities.Event) {
	name := ev.Name()

	r.mu.RLock()
	subs := slices.Clone(r.handlers[name])
	r.mu.RUnlock()

	if len(subs) == 0 {
		EventsTotal.WithLabelValues(name.String(), resultNoHandlers).Inc()
		return
	}

	for _, sub := range subs {
		if !sub.active.Load() {
			continue
		}
		r.invoke(ctx, sub, ev)
	}

	EventsTotal.WithLabelValues(name.String(), resultDispatched).Inc()
}

func (r *Registry) invoke(ctx context.Context, sub *Subscription, ev entities.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			EventsTotal.WithLabelValues(ev.Name().String(), resultPanic).Inc()
			r.log.With(
				logger.NewField("event", ev.Name().String()),
				logger.NewField("recover", rec),
				logger.NewField("stack", string(debug.Stack())),
			).Error("event handler panic")
		}
	}()

	sub.handler(ctx, ev)
}
