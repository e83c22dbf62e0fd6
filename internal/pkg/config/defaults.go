package config

import "time"

const (
	defaultPort             = "8080"
	defaultRequestTimeout   = 5 * time.Second
	defaultRateLimiterQPS   = 50
	defaultRateLimiterBurst = 100
	defaultSQLitePath       = "ridersync.db"
	defaultLogLevel         = "info"
)

var defaultChannel = Channel{
	Path:              "/socket.io/",
	Transports:        []string{"websocket", "polling"},
	ReconnectAttempts: 5,
	ReconnectDelay:    time.Second,
}

var defaultNotify = Notify{
	DedupeWindow: 10 * time.Minute,
}

var defaultTasks = Tasks{
	AlertSweepInterval:   time.Second,
	OrdersResyncInterval: time.Minute,
}

var defaultKafka = Kafka{
	PortHealthcheck: "8081",
	Topic:           "rider-events",
	ConsumerGroup:   "rider-sync",
	Sarama: Sarama{
		Version:                   "3.6.0",
		ConsumerOffsetsAutocommit: true,
	},
	Handlers: KafkaHandlers{
		RiderEvents: RiderEvents{
			ProcessTimeout: 5 * time.Second,
		},
	},
}

// DefaultChannel - настройки канала, если переменные окружения не заданы.
func DefaultChannel() Channel {
	channel := defaultChannel
	channel.Transports = append([]string(nil), defaultChannel.Transports...)
	return channel
}

func DefaultNotify() Notify {
	return defaultNotify
}

func DefaultTasks() Tasks {
	return defaultTasks
}

func DefaultKafka() Kafka {
	return defaultKafka
}
