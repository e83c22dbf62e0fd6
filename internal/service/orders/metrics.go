package orders

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ReconcileOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reconcile_operations_total",
		Help: "Operations applied to the local order collection",
	},
	[]string{"operation", "result"},
)

const (
	operationRefresh       = "refresh"
	operationPatch         = "patch"
	operationAccept        = "accept"
	operationAdvanceStatus = "advance_status"
)

const (
	resultApplied      = "applied"
	resultStale        = "stale"
	resultDiscarded    = "discarded"
	resultUnknownOrder = "unknown_order"
	resultFailed       = "failed"
	resultSuccess      = "success"
)
