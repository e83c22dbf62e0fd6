package alert_expiry

import (
	"context"
	"time"

	"ridersync/pkg/logger"
)

type Service interface {
	Sweep(ctx context.Context) int
}

// AlertExpiry убирает уведомления, которые курьер не закрыл вовремя.
type AlertExpiry struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewAlertExpiry(log logger.Logger, service Service, interval time.Duration) *AlertExpiry {
	return &AlertExpiry{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (a *AlertExpiry) TTL() time.Duration {
	return a.interval
}

func (a *AlertExpiry) Do(ctx context.Context) error {
	if expired := a.service.Sweep(ctx); expired > 0 {
		a.log.With(
			logger.NewField("expired_alerts", expired),
		).Debug("alert expiry")
	}
	return nil
}

func (a *AlertExpiry) Info() string {
	return "alert expiry"
}
