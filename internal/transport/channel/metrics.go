package channel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectedGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "channel_connected",
			Help: "1 while the realtime channel is connected",
		},
	)

	ReconnectAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "channel_reconnect_attempts_total",
			Help: "Reconnection attempts made by the realtime channel",
		},
	)

	PacketsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "channel_packets_total",
			Help: "Engine.IO packets received by the realtime channel",
		},
		[]string{"transport", "type"},
	)
)
