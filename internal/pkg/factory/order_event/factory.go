package order_event

import (
	"fmt"

	"ridersync/internal/entities"
	"ridersync/internal/service/orders"
)

type StrategyFactory struct{}

func NewStrategyFactory() *StrategyFactory {
	return &StrategyFactory{}
}

// GetStrategy решает, как событие меняет коллекцию. События без данных и обновления паков
// перечитывают коллекцию целиком, смена статуса правит одну запись.
func (f *StrategyFactory) GetStrategy(name entities.EventName) (orders.Strategy, error) {
	switch name {
	case entities.EventOrdersNew, entities.EventOrderAssignRider, entities.EventVendorPacksUpdate:
		return orders.StrategyRefresh, nil
	case entities.EventOrderStatus:
		return orders.StrategyPatch, nil
	default:
		return 0, fmt.Errorf("%w: %s", orders.ErrUndefinedEvent, name)
	}
}
