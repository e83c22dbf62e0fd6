package alerts

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActiveAlertsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "alerts_active",
			Help: "Alerts currently visible to the rider",
		},
	)

	AlertsClosedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alerts_closed_total",
			Help: "Alerts removed from the active set",
		},
		[]string{"reason"},
	)
)

const (
	reasonDismissed = "dismissed"
	reasonAction    = "action"
	reasonExpired   = "expired"
)
