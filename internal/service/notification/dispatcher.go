package notification

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"ridersync/internal/entities"
	"ridersync/pkg/logger"
)

const (
	DefaultDedupeWindow = 10 * time.Minute
	defaultDedupeSize   = 1024
)

const (
	titleAssigned       = "New Delivery Assignment!"
	titleReadyForPickup = "Order Ready for Pickup!"

	actionViewDetails = "View Details"
	actionViewOrders  = "View Available Orders"
	actionTarget      = "/order"
)

type Config struct {
	// DedupeWindow - сколько помнить показанное уведомление. Ноль отключает склейку повторов.
	DedupeWindow time.Duration
	DedupeSize   int
}

// Dispatcher решает по каждому событию, звать ли курьера, и показывает ровно одно уведомление.
type Dispatcher struct {
	log       handlerLogger
	player    Player
	alerts    AlertCenter
	deadlines ExpiryCalculator
	riderID   string

	seen    *expirable.LRU[string, struct{}]
	printer *message.Printer
	now     func() time.Time
	cues    sync.WaitGroup
}

func New(
	log handlerLogger,
	player Player,
	alerts AlertCenter,
	deadlines ExpiryCalculator,
	rider entities.Rider,
	cfg Config,
) *Dispatcher {
	d := &Dispatcher{
		log:       log,
		player:    player,
		alerts:    alerts,
		deadlines: deadlines,
		riderID:   rider.ID,
		printer:   message.NewPrinter(language.English),
		now:       time.Now,
	}

	if cfg.DedupeWindow > 0 {
		size := cfg.DedupeSize
		if size <= 0 {
			size = defaultDedupeSize
		}
		d.seen = expirable.NewLRU[string, struct{}](size, nil, cfg.DedupeWindow)
	}

	return d
}

// Notify оценивает событие и при необходимости показывает уведомление, звук играет фоном.
// Паники и ошибки наружу не выходят.
func (d *Dispatcher) Notify(ctx context.Context, ev entities.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			NotificationsTotal.WithLabelValues(ev.Name().String(), resultPanic).Inc()
			d.log.With(
				logger.NewField("event", ev.Name().String()),
				logger.NewField("recover", rec),
				logger.NewField("stack", string(debug.Stack())),
			).Error("notification dispatch panic")
		}
	}()

	n, ok := Evaluate(d.riderID, ev)
	if !ok {
		return
	}

	if d.duplicate(n) {
		d.log.Debug("duplicate notification suppressed",
			logger.NewField("kind", n.Kind.String()),
			logger.NewField("order_id", n.Order.ID),
		)
		NotificationsTotal.WithLabelValues(n.Kind.String(), resultDuplicate).Inc()
		return
	}

	d.playCue(ctx)

	alert := d.alerts.Show(ctx, d.render(n))

	d.log.Info("rider notified",
		logger.NewField("alert_id", alert.ID),
		logger.NewField("kind", n.Kind.String()),
		logger.NewField("order_id", n.Order.ID),
	)
	NotificationsTotal.WithLabelValues(n.Kind.String(), resultShown).Inc()
}

// playCue играет звук в отдельной горутине: медленный проигрыватель не держит разбор событий.
func (d *Dispatcher) playCue(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	d.cues.Add(1)
	go func() {
		defer d.cues.Done()
		defer func() {
			if rec := recover(); rec != nil {
				SoundFailuresTotal.Inc()
				d.log.Warn("sound cue panic", logger.NewField("recover", rec))
			}
		}()

		if err := d.player.Play(ctx); err != nil {
			SoundFailuresTotal.Inc()
			d.log.Warn("sound cue failed", logger.NewField("error", err))
		}
	}()
}

// Wait дожидается звуков, которые еще играют.
func (d *Dispatcher) Wait() {
	d.cues.Wait()
}

// duplicate запоминает ключ и сообщает, видели ли его в пределах окна.
func (d *Dispatcher) duplicate(n entities.Notification) bool {
	if d.seen == nil {
		return false
	}

	key := n.Kind.String() + "|" + n.Order.ID + "|" + n.Order.Status.String()
	if d.seen.Contains(key) {
		return true
	}
	d.seen.Add(key, struct{}{})
	return false
}

func (d *Dispatcher) render(n entities.Notification) entities.Alert {
	shownAt := d.now()
	shortID := n.Order.ShortID()

	alert := entities.Alert{
		Kind:      n.Kind,
		OrderID:   n.Order.ID,
		ShortID:   shortID,
		CreatedAt: shownAt,
		ExpiresAt: d.deadlines.CalculateExpiry(n.Kind, shownAt),
	}

	switch n.Kind {
	case entities.NotificationAssigned:
		alert.Title = titleAssigned
		alert.Earning = n.Earning
		alert.Lines = []string{
			"Order #" + shortID,
			"Earn: ₦" + d.FormatAmount(n.Earning),
		}
		alert.Action = entities.AlertAction{Label: actionViewDetails, Target: actionTarget}
	case entities.NotificationReadyForPickup:
		alert.Title = titleReadyForPickup
		alert.Lines = []string{"Order #" + shortID}
		alert.Action = entities.AlertAction{Label: actionViewOrders, Target: actionTarget}
	}

	return alert
}

// FormatAmount печатает сумму с разделителями разрядов: 1000 -> "1,000", 777.5 -> "777.5".
func (d *Dispatcher) FormatAmount(amount decimal.Decimal) string {
	if amount.IsInteger() {
		return d.printer.Sprint(number.Decimal(amount.IntPart()))
	}
	return d.printer.Sprint(number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(2)))
}
