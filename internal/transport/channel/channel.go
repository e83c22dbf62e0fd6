package channel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"ridersync/internal/entities"
	"ridersync/pkg/logger"
	"ridersync/pkg/retrier"
	"ridersync/pkg/retrier/backoff_adapter"
)

// Channel - единственное на процесс подключение к серверу событий.
// Переподключается сам: ограниченное число попыток с фиксированной паузой, транспорты по порядку.
type Channel struct {
	cfg       Config
	log       handlerLogger
	publisher Publisher
	retrier   Retrier
	dialers   []namedDialer

	connected atomic.Bool
	sid       atomic.Value

	done chan struct{}
	err  error
}

type namedDialer struct {
	name string
	dial dialFunc
}

func New(log handlerLogger, cfg Config, publisher Publisher) (*Channel, error) {
	cfg = cfg.withDefaults()

	dialers := make([]namedDialer, 0, len(cfg.Transports))
	for _, name := range cfg.Transports {
		dial, err := dialerFor(name)
		if err != nil {
			return nil, err
		}
		dialers = append(dialers, namedDialer{name: name, dial: dial})
	}
	if len(dialers) == 0 {
		return nil, ErrNoTransports
	}

	return &Channel{
		cfg:       cfg,
		log:       log,
		publisher: publisher,
		retrier:   newReconnectRetrier(cfg),
		dialers:   dialers,
		done:      make(chan struct{}),
	}, nil
}

// newReconnectRetrier: первая попытка + ReconnectAttempts повторов через ReconnectDelay.
func newReconnectRetrier(cfg Config) Retrier {
	maxRetries := uint64(cfg.ReconnectAttempts)
	if maxRetries == 0 {
		// backoff трактует 0 как "без ограничения", а нам нужна ровно одна попытка
		return oneShot{}
	}
	return backoff_adapter.New(retrier.Config{
		Policy:          retrier.Constant,
		InitialInterval: cfg.ReconnectDelay,
		MaxRetries:      maxRetries,
	})
}

type oneShot struct{}

func (oneShot) ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (c *Channel) Connected() bool {
	return c.connected.Load()
}

// SID - идентификатор текущей socket.io сессии, пустой без подключения.
func (c *Channel) SID() string {
	if v, ok := c.sid.Load().(string); ok && c.Connected() {
		return v
	}
	return ""
}

// Done закрывается, когда Run завершился.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

// Err - результат Run, валиден после закрытия Done.
func (c *Channel) Err() error {
	<-c.done
	return c.err
}

// Run держит подключение до отмены контекста. Обрыв соединения - не ошибка: канал переподключается,
// а подписчики узнают о разрыве через события disconnect / connect_error.
// Ошибку возвращает только исчерпание попыток переподключения.
func (c *Channel) Run(ctx context.Context) error {
	for {
		sess, err := c.connectWithRetry(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			c.log.With(
				logger.NewField("attempts", c.cfg.ReconnectAttempts),
				logger.NewField("error", err),
			).Error("realtime channel gave up reconnecting")
			return fmt.Errorf("%w: %w", ErrReconnectExhausted, err)
		}

		c.sid.Store(sess.sid)
		c.setConnected(true)
		c.log.With(
			logger.NewField("transport", sess.transport.Name()),
			logger.NewField("sid", sess.sid),
		).Info("realtime channel connected")
		c.notify(ctx, entities.Connected{})

		reason := sess.serve(ctx, c.log, c.publisher)
		sess.close()

		c.setConnected(false)
		c.log.With(
			logger.NewField("reason", reason),
		).Warn("realtime channel disconnected")
		c.notify(context.WithoutCancel(ctx), entities.Disconnected{Reason: reason})

		// перед переподключением после обрыва выдерживаем ту же паузу, что и между попытками
		if !sleepCtx(ctx, c.cfg.ReconnectDelay) {
			return nil
		}
	}
}

// sleepCtx ждет d или отмены ctx. false - ctx отменен.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (c *Channel) connectWithRetry(ctx context.Context) (*session, error) {
	var (
		sess    *session
		attempt int
	)

	err := c.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			ReconnectAttemptsTotal.Inc()
		}

		s, err := c.connect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			c.log.With(
				logger.NewField("attempt", attempt),
				logger.NewField("error", err),
			).Warn("realtime channel connect error")
			c.notify(ctx, entities.ConnectFailed{Err: err})
			return err
		}

		sess = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// connect перебирает транспорты по порядку до первого успешного handshake.
func (c *Channel) connect(ctx context.Context) (*session, error) {
	var errs []error

	for _, d := range c.dialers {
		t, err := d.dial(ctx, c.cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
			continue
		}

		sess, err := openSession(t, c.cfg.HandshakeTimeout)
		if err != nil {
			_ = t.Close()
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
			// отказ сервера в connect не зависит от транспорта
			if errors.Is(err, ErrConnectRejected) {
				break
			}
			continue
		}

		return sess, nil
	}

	return nil, errors.Join(errs...)
}

func (c *Channel) setConnected(v bool) {
	c.connected.Store(v)
	if v {
		ConnectedGauge.Set(1)
	} else {
		ConnectedGauge.Set(0)
	}
}

func (c *Channel) notify(ctx context.Context, ev entities.Event) {
	if err := c.publisher.Enqueue(ctx, ev); err != nil {
		c.log.Debug("lifecycle event not delivered",
			logger.NewField("event", ev.Name().String()),
			logger.NewField("error", err),
		)
	}
}

// Provider лениво создает и запускает канал. Все вызовы Connect получают один и тот же канал.
type Provider struct {
	log       handlerLogger
	cfg       Config
	publisher Publisher

	mu      sync.Mutex
	channel *Channel
}

func NewProvider(log handlerLogger, cfg Config, publisher Publisher) *Provider {
	return &Provider{
		log:       log,
		cfg:       cfg,
		publisher: publisher,
	}
}

// Connect идемпотентен. Первый вызов создает канал и запускает его Run на ctx,
// поэтому ctx первого вызова должен жить столько же, сколько процесс.
func (p *Provider) Connect(ctx context.Context) (*Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		return p.channel, nil
	}

	ch, err := New(p.log, p.cfg, p.publisher)
	if err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}

	go func() {
		ch.err = ch.Run(ctx)
		close(ch.done)
	}()

	p.channel = ch
	return ch, nil
}

// Current возвращает канал, если он уже создан.
func (p *Provider) Current() *Channel {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel
}

// Connected - есть ли сейчас живое подключение. Пока канал не создан, false.
func (p *Provider) Connected() bool {
	ch := p.Current()
	return ch != nil && ch.Connected()
}
