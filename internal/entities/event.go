package entities

type EventName string

const (
	EventOrdersNew         EventName = "orders:new"
	EventOrderStatus       EventName = "orders:status"
	EventOrderAssignRider  EventName = "orders:assignRider"
	EventVendorPacksUpdate EventName = "vendors:packsUpdated"

	EventConnect      EventName = "connect"
	EventDisconnect   EventName = "disconnect"
	EventConnectError EventName = "connect_error"
)

func (n EventName) String() string {
	return string(n)
}

// Event - событие, уже разобранное на границе канала. Набор реализаций закрыт.
type Event interface {
	Name() EventName
	isEvent()
}

// OrdersNew - на сервере появились новые заказы. Данных не несет.
type OrdersNew struct{}

// OrderStatusChanged несет полный обновленный заказ.
type OrderStatusChanged struct {
	Order Order
}

// RiderAssigned - кому-то назначили курьера. Данных не несет.
type RiderAssigned struct{}

// PacksUpdated - продавец принял или отклонил пак, несет полный заказ.
type PacksUpdated struct {
	Order Order
}

type Connected struct{}

type Disconnected struct {
	Reason string
}

type ConnectFailed struct {
	Err error
}

func (OrdersNew) Name() EventName          { return EventOrdersNew }
func (OrderStatusChanged) Name() EventName { return EventOrderStatus }
func (RiderAssigned) Name() EventName      { return EventOrderAssignRider }
func (PacksUpdated) Name() EventName       { return EventVendorPacksUpdate }
func (Connected) Name() EventName          { return EventConnect }
func (Disconnected) Name() EventName       { return EventDisconnect }
func (ConnectFailed) Name() EventName      { return EventConnectError }

func (OrdersNew) isEvent()          {}
func (OrderStatusChanged) isEvent() {}
func (RiderAssigned) isEvent()      {}
func (PacksUpdated) isEvent()       {}
func (Connected) isEvent()          {}
func (Disconnected) isEvent()       {}
func (ConnectFailed) isEvent()      {}
