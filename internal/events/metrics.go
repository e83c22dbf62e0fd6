package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registry_events_total",
			Help: "Events passed through the subscription registry",
		},
		[]string{"event", "result"},
	)

	SubscriptionsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "registry_subscriptions",
			Help: "Currently registered event handlers",
		},
	)
)

const (
	resultDispatched = "dispatched"
	resultNoHandlers = "no_handlers"
	resultIgnored    = "ignored"
	resultInvalid    = "invalid"
	resultPanic      = "handler_panic"
)
