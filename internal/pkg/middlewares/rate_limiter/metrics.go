package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ridersync/internal/pkg/middlewares/metrics"
)

var RejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Subsystem: metrics.Subsystem,
		Name:      "rate_limited_total",
		Help:      "Local API requests rejected by the rate limiter",
	},
	[]string{"method", "route"},
)
