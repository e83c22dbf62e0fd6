package dto

import (
	"time"

	"ridersync/internal/entities"
)

// Формы ответов локального API демона.

type PingResponse struct {
	Message string `json:"message"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

type OrderView struct {
	Order
	ShortID         string `json:"shortId"`
	Eligible        bool   `json:"eligible"`
	AwaitingVendors bool   `json:"awaitingVendors"`
	AssignedToMe    bool   `json:"assignedToMe"`
}

type OrdersCounters struct {
	Total     int `json:"total"`
	New       int `json:"new"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
}

type OrdersView struct {
	Orders   []OrderView    `json:"orders"`
	Counters OrdersCounters `json:"counters"`
}

func OrderViewFromEntity(o entities.Order, riderID string) OrderView {
	return OrderView{
		Order:           OrderFromEntity(o),
		ShortID:         o.ShortID(),
		Eligible:        entities.EligibleForAssignment(o),
		AwaitingVendors: entities.AwaitingVendors(o),
		AssignedToMe:    o.AssignedTo(riderID),
	}
}

type AlertActionView struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

type AlertView struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Title       string          `json:"title"`
	Lines       []string        `json:"lines"`
	OrderID     string          `json:"orderId"`
	ShortID     string          `json:"shortId"`
	Earning     string          `json:"earning,omitempty"`
	Action      AlertActionView `json:"action"`
	CreatedAt   time.Time       `json:"createdAt"`
	ExpiresAt   time.Time       `json:"expiresAt"`
	DismissedAt *time.Time      `json:"dismissedAt,omitempty"`
}

func AlertFromEntity(a entities.Alert) AlertView {
	view := AlertView{
		ID:          a.ID,
		Kind:        a.Kind.String(),
		Title:       a.Title,
		Lines:       a.Lines,
		OrderID:     a.OrderID,
		ShortID:     a.ShortID,
		Action:      AlertActionView{Label: a.Action.Label, Target: a.Action.Target},
		CreatedAt:   a.CreatedAt,
		ExpiresAt:   a.ExpiresAt,
		DismissedAt: a.DismissedAt,
	}
	if !a.Earning.IsZero() {
		view.Earning = a.Earning.String()
	}
	if view.Lines == nil {
		view.Lines = []string{}
	}
	return view
}

type StatusResponse struct {
	Connected  bool   `json:"connected"`
	RiderID    string `json:"riderId"`
	University string `json:"university,omitempty"`
	Orders     int    `json:"orders"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}
