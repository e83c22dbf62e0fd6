package orders_resync

import (
	"context"
	"time"
)

type Service interface {
	RefreshNow(ctx context.Context) error
}

// OrdersResync периодически перечитывает всю коллекцию заказов: события могли потеряться,
// пока канал переподключался. Прогрев этой задачи - первоначальная загрузка.
type OrdersResync struct {
	service  Service
	interval time.Duration
}

func NewOrdersResync(service Service, interval time.Duration) *OrdersResync {
	return &OrdersResync{
		service:  service,
		interval: interval,
	}
}

func (o *OrdersResync) TTL() time.Duration {
	return o.interval
}

func (o *OrdersResync) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	return o.service.RefreshNow(ctxWithTimeout)
}

func (o *OrdersResync) Info() string {
	return "orders resync"
}
