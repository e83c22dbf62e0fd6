package alerts

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"ridersync/internal/entities"
	"ridersync/pkg/logger"
)

const DefaultHistoryLimit = 50

// Center держит уведомления, которые курьер еще не закрыл. Каждое показанное уведомление
// дописывается в журнал, ошибки журнала только логируются.
type Center struct {
	log     handlerLogger
	history HistoryRepository
	now     func() time.Time
	newID   func() string

	mu     sync.Mutex
	active []entities.Alert
}

type Option func(*Center)

// WithClock подменяет часы, нужно для проверки истечения.
func WithClock(now func() time.Time) Option {
	return func(c *Center) {
		c.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(c *Center) {
		c.newID = newID
	}
}

func New(log handlerLogger, history HistoryRepository, opts ...Option) *Center {
	c := &Center{
		log:     log,
		history: history,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show выдает уведомлению идентификатор и делает его видимым.
func (c *Center) Show(ctx context.Context, alert entities.Alert) entities.Alert {
	alert.ID = c.newID()
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = c.now()
	}
	alert.DismissedAt = nil

	c.mu.Lock()
	c.active = append(c.active, alert)
	ActiveAlertsGauge.Set(float64(len(c.active)))
	c.mu.Unlock()

	if err := c.history.Append(ctx, alert); err != nil {
		c.log.Warn("append alert to history",
			logger.NewField("alert_id", alert.ID),
			logger.NewField("error", err),
		)
	}

	return alert
}

// Active - видимые уведомления, от старых к новым. Истекшие не возвращаются,
// даже если Sweep еще не успел их убрать.
func (c *Center) Active() []entities.Alert {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]entities.Alert, 0, len(c.active))
	for _, a := range c.active {
		if a.Expired(now) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Dismiss закрывает уведомление по запросу курьера.
func (c *Center) Dismiss(ctx context.Context, alertID string) error {
	_, err := c.close(ctx, alertID, reasonDismissed)
	return err
}

// Act закрывает уведомление и возвращает, куда вести курьера.
func (c *Center) Act(ctx context.Context, alertID string) (entities.AlertAction, error) {
	alert, err := c.close(ctx, alertID, reasonAction)
	if err != nil {
		return entities.AlertAction{}, err
	}
	return alert.Action, nil
}

// Sweep убирает истекшие уведомления и возвращает их число.
func (c *Center) Sweep(_ context.Context) int {
	now := c.now()

	c.mu.Lock()
	before := len(c.active)
	c.active = slices.DeleteFunc(c.active, func(a entities.Alert) bool {
		return a.Expired(now)
	})
	removed := before - len(c.active)
	ActiveAlertsGauge.Set(float64(len(c.active)))
	c.mu.Unlock()

	if removed > 0 {
		AlertsClosedTotal.WithLabelValues(reasonExpired).Add(float64(removed))
		c.log.Debug("expired alerts swept", logger.NewField("count", removed))
	}
	return removed
}

// History - последние показанные уведомления из журнала, новые первыми.
func (c *Center) History(ctx context.Context, limit int) ([]entities.Alert, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	list, err := c.history.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list alert history: %w", err)
	}
	return list, nil
}

func (c *Center) close(ctx context.Context, alertID, reason string) (entities.Alert, error) {
	now := c.now()

	c.mu.Lock()
	idx := slices.IndexFunc(c.active, func(a entities.Alert) bool {
		return a.ID == alertID && !a.Expired(now)
	})
	if idx < 0 {
		c.mu.Unlock()
		return entities.Alert{}, fmt.Errorf("%w: %s", ErrAlertNotFound, alertID)
	}
	alert := c.active[idx]
	c.active = slices.Delete(c.active, idx, idx+1)
	ActiveAlertsGauge.Set(float64(len(c.active)))
	c.mu.Unlock()

	alert.DismissedAt = &now
	AlertsClosedTotal.WithLabelValues(reason).Inc()

	if err := c.history.MarkDismissed(ctx, alertID, now); err != nil {
		c.log.Warn("mark alert dismissed in history",
			logger.NewField("alert_id", alertID),
			logger.NewField("error", err),
		)
	}

	return alert, nil
}
