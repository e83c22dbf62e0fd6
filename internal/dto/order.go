// Package dto - JSON-представление сущностей сервера заказов. Одна и та же форма приходит
// из REST и внутри событий канала.
package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"ridersync/internal/entities"
)

type Order struct {
	ID            string          `json:"_id"`
	Rider         RiderRef        `json:"rider"`
	CurrentStatus string          `json:"currentStatus"`
	Packs         []Pack          `json:"packs"`
	DeliveryFee   decimal.Decimal `json:"deliveryFee"`
	University    string          `json:"university,omitempty"`
	UserName      string          `json:"userName,omitempty"`
	CreatedAt     *time.Time      `json:"createdAt,omitempty"`
}

type Pack struct {
	VendorName string     `json:"vendorName"`
	Items      []LineItem `json:"items"`
	Accepted   *bool      `json:"accepted"`
}

type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type OrdersResponse struct {
	Orders []Order `json:"orders"`
}

// RiderRef - поле rider заказа. Сервер присылает либо строку (id или "Not assigned"),
// либо null, либо вложенный документ курьера с _id.
type RiderRef string

func (r *RiderRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	if len(data) > 0 && data[0] == '{' {
		var doc struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		*r = RiderRef(doc.ID)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = RiderRef(s)
	return nil
}

func OrderToEntity(o Order) entities.Order {
	order := entities.Order{
		ID:          o.ID,
		Rider:       string(o.Rider),
		Status:      entities.OrderStatusType(o.CurrentStatus),
		DeliveryFee: o.DeliveryFee,
		University:  o.University,
		UserName:    o.UserName,
	}
	if o.CreatedAt != nil {
		order.CreatedAt = *o.CreatedAt
	}

	if o.Packs != nil {
		order.Packs = make([]entities.Pack, 0, len(o.Packs))
		for _, p := range o.Packs {
			pack := entities.Pack{
				VendorName: p.VendorName,
				Accepted:   p.Accepted,
			}
			for _, item := range p.Items {
				pack.Items = append(pack.Items, entities.LineItem{Name: item.Name, Quantity: item.Quantity})
			}
			order.Packs = append(order.Packs, pack)
		}
	}

	return order
}

func OrdersToEntities(orders []Order) []entities.Order {
	result := make([]entities.Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, OrderToEntity(o))
	}
	return result
}

func OrderFromEntity(o entities.Order) Order {
	order := Order{
		ID:            o.ID,
		Rider:         RiderRef(o.Rider),
		CurrentStatus: o.Status.String(),
		DeliveryFee:   o.DeliveryFee,
		University:    o.University,
		UserName:      o.UserName,
	}
	if !o.CreatedAt.IsZero() {
		createdAt := o.CreatedAt
		order.CreatedAt = &createdAt
	}

	for _, p := range o.Packs {
		pack := Pack{VendorName: p.VendorName, Accepted: p.Accepted}
		for _, item := range p.Items {
			pack.Items = append(pack.Items, LineItem{Name: item.Name, Quantity: item.Quantity})
		}
		order.Packs = append(order.Packs, pack)
	}

	return order
}
