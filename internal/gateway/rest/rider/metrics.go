package rider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метки: method - операция шлюза (fetch_orders, assign_rider...), code - HTTP-код, OK или TRANSPORT.
var (
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ridersync",
			Subsystem: "rider_api",
			Name:      "retries_total",
			Help:      "Repeated attempts of rider API calls (first attempt not counted)",
		},
		[]string{"method", "code"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ridersync",
			Subsystem: "rider_api",
			Name:      "request_duration_seconds",
			Help:      "Rider API call duration including retries",
			// мобильная сеть курьера: хвост до десятков секунд
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"method", "code"},
	)
)
