package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Alert-worthy notifications by kind and outcome",
		},
		[]string{"kind", "result"},
	)

	SoundFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_sound_failures_total",
			Help: "Sound cues that failed to play",
		},
	)
)

const (
	resultShown     = "shown"
	resultDuplicate = "duplicate"
	resultPanic     = "panic"
)
