package orders

import (
	"context"
	"fmt"

	"ridersync/internal/entities"
	"ridersync/pkg/logger"
)

// Rider - курьер, от имени которого работает коллекция.
func (r *Reconciler) Rider() entities.Rider {
	return r.rider
}

// Accept назначает заказ на текущего курьера. Заказ должен быть свободен и все продавцы
// должны ответить по своим пакам.
func (r *Reconciler) Accept(ctx context.Context, orderID string) (entities.Order, error) {
	if r.rider.ID == "" {
		return entities.Order{}, ErrNoRider
	}

	order, ok := r.Find(orderID)
	if !ok {
		return entities.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if !order.IsUnassigned() {
		return entities.Order{}, fmt.Errorf("%w: %s", ErrAlreadyAssigned, orderID)
	}
	if !entities.EligibleForAssignment(order) {
		return entities.Order{}, fmt.Errorf("%w: %s", ErrNotEligible, orderID)
	}

	if err := r.gateway.AssignRider(ctx, orderID, r.rider.ID); err != nil {
		ReconcileOperationsTotal.WithLabelValues(operationAccept, resultFailed).Inc()
		return entities.Order{}, fmt.Errorf("accept order: %w", err)
	}

	order.Rider = r.rider.ID
	r.Patch(order)

	r.log.Info("order accepted",
		logger.NewField("order_id", orderID),
		logger.NewField("rider_id", r.rider.ID),
	)
	ReconcileOperationsTotal.WithLabelValues(operationAccept, resultSuccess).Inc()
	return order, nil
}

// AdvanceStatus двигает заказ курьера на следующую стадию. Локальная запись обновляется
// только после ответа сервера.
func (r *Reconciler) AdvanceStatus(ctx context.Context, orderID string, status entities.OrderStatusType) (entities.Order, error) {
	order, ok := r.Find(orderID)
	if !ok {
		return entities.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if !order.AssignedTo(r.rider.ID) {
		return entities.Order{}, fmt.Errorf("%w: %s", ErrNotAssignedToRider, orderID)
	}
	if !order.Status.CanTransitionTo(status) {
		return entities.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := r.gateway.UpdateStatus(ctx, orderID, status); err != nil {
		ReconcileOperationsTotal.WithLabelValues(operationAdvanceStatus, resultFailed).Inc()
		return entities.Order{}, fmt.Errorf("advance order status: %w", err)
	}

	order.Status = status
	r.Patch(order)

	r.log.Info("order status advanced",
		logger.NewField("order_id", orderID),
		logger.NewField("status", status.String()),
	)
	ReconcileOperationsTotal.WithLabelValues(operationAdvanceStatus, resultSuccess).Inc()
	return order, nil
}
