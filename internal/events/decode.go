package events

import (
	"encoding/json"
	"fmt"

	"ridersync/internal/dto"
	"ridersync/internal/entities"
)

// Decode превращает сырое событие сервера в типизированное.
// События с заказом обязаны нести заказ с непустым _id.
func Decode(name string, payload json.RawMessage) (entities.Event, error) {
	switch entities.EventName(name) {
	case entities.EventOrdersNew:
		return entities.OrdersNew{}, nil
	case entities.EventOrderAssignRider:
		return entities.RiderAssigned{}, nil
	case entities.EventOrderStatus:
		order, err := decodeOrder(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return entities.OrderStatusChanged{Order: order}, nil
	case entities.EventVendorPacksUpdate:
		order, err := decodeOrder(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return entities.PacksUpdated{Order: order}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
}

func decodeOrder(payload json.RawMessage) (entities.Order, error) {
	if len(payload) == 0 {
		return entities.Order{}, fmt.Errorf("%w: missing order", ErrInvalidPayload)
	}

	var o dto.Order
	if err := json.Unmarshal(payload, &o); err != nil {
		return entities.Order{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if o.ID == "" {
		return entities.Order{}, fmt.Errorf("%w: order without _id", ErrInvalidPayload)
	}

	return dto.OrderToEntity(o), nil
}
