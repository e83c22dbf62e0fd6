package notification

import (
	"github.com/shopspring/decimal"

	"ridersync/internal/entities"
)

// riderShare - доля курьера в стоимости доставки.
var riderShare = decimal.NewFromFloat(0.5)

// Evaluate решает, стоит ли звать курьера из-за события. Функция чистая:
// только событие и идентификатор курьера.
func Evaluate(riderID string, ev entities.Event) (entities.Notification, bool) {
	switch e := ev.(type) {
	case entities.OrderStatusChanged:
		order := e.Order
		if !order.AssignedTo(riderID) || order.Status == entities.OrderDelivered {
			return entities.Notification{}, false
		}
		return entities.Notification{
			Kind:    entities.NotificationAssigned,
			Order:   order,
			Earning: Earning(order.DeliveryFee),
		}, true

	case entities.PacksUpdated:
		order := e.Order
		if !entities.AllPacksAccepted(order) || !order.IsUnassigned() {
			return entities.Notification{}, false
		}
		return entities.Notification{
			Kind:  entities.NotificationReadyForPickup,
			Order: order,
		}, true

	default:
		return entities.Notification{}, false
	}
}

// Earning - заработок курьера с заказа: половина стоимости доставки.
func Earning(fee decimal.Decimal) decimal.Decimal {
	return fee.Mul(riderShare)
}
