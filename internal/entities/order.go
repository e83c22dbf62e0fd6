package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnassignedRider - значение поля rider у заказа, который еще никто не взял.
const UnassignedRider = "Not assigned"

type Order struct {
	ID          string
	Rider       string
	Status      OrderStatusType
	Packs       []Pack
	DeliveryFee decimal.Decimal
	University  string
	UserName    string
	CreatedAt   time.Time
}

// IsUnassigned - у заказа нет курьера: пустое поле или служебное "Not assigned".
func (o Order) IsUnassigned() bool {
	return o.Rider == "" || o.Rider == UnassignedRider
}

// AssignedTo сравнивает курьера заказа с riderID как строки. Пустой riderID не совпадает ни с чем.
func (o Order) AssignedTo(riderID string) bool {
	return riderID != "" && o.Rider == riderID
}

// ShortID - последние 6 символов идентификатора, так заказ показывается курьеру.
func (o Order) ShortID() string {
	const shortLen = 6
	if len(o.ID) <= shortLen {
		return o.ID
	}
	return o.ID[len(o.ID)-shortLen:]
}

// Clone копирует заказ вместе с паками, чтобы снимок не делил память с коллекцией.
func (o Order) Clone() Order {
	clone := o
	if o.Packs != nil {
		clone.Packs = make([]Pack, len(o.Packs))
		for i, p := range o.Packs {
			clone.Packs[i] = p.Clone()
		}
	}
	return clone
}

type OrderStatusType string

const (
	OrderPending    OrderStatusType = "Pending"
	OrderProcessing OrderStatusType = "Processing"
	OrderDelivered  OrderStatusType = "Delivered"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) rank() int {
	switch s {
	case OrderPending:
		return 1
	case OrderProcessing:
		return 2
	case OrderDelivered:
		return 3
	default:
		return 0
	}
}

// CanTransitionTo разрешает только шаг вперед на одну стадию: Pending -> Processing -> Delivered.
func (s OrderStatusType) CanTransitionTo(next OrderStatusType) bool {
	from, to := s.rank(), next.rank()
	return from > 0 && to == from+1
}

// Pack - часть заказа от одного продавца.
type Pack struct {
	VendorName string
	Items      []LineItem
	// Accepted: true - продавец принял, false - отклонил, nil - решение еще не принято.
	Accepted *bool
}

func (p Pack) Clone() Pack {
	clone := p
	if p.Items != nil {
		clone.Items = append([]LineItem(nil), p.Items...)
	}
	if p.Accepted != nil {
		accepted := *p.Accepted
		clone.Accepted = &accepted
	}
	return clone
}

type LineItem struct {
	Name     string
	Quantity int
}

// EligibleForAssignment - все продавцы приняли решение по своим пакам.
// Единственное правило допуска заказа к назначению курьера.
func EligibleForAssignment(o Order) bool {
	for _, p := range o.Packs {
		if p.Accepted == nil {
			return false
		}
	}
	return true
}

// AwaitingVendors - хотя бы один продавец еще не ответил.
func AwaitingVendors(o Order) bool {
	for _, p := range o.Packs {
		if p.Accepted == nil {
			return true
		}
	}
	return false
}

// AllPacksAccepted - паки есть, и все приняты. Пустой список паков не считается готовым заказом.
func AllPacksAccepted(o Order) bool {
	if len(o.Packs) == 0 {
		return false
	}
	for _, p := range o.Packs {
		if p.Accepted == nil || !*p.Accepted {
			return false
		}
	}
	return true
}
