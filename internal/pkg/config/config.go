package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	RiderAPI struct {
		BaseURL string
	}

	Tasks struct {
		AlertSweepInterval   time.Duration
		OrdersResyncInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Storage struct {
		SQLitePath string
	}

	Channel struct {
		Path              string
		Transports        []string
		ReconnectAttempts int
		ReconnectDelay    time.Duration
	}

	Notify struct {
		SoundCommand string
		DedupeWindow time.Duration
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		RiderEvents RiderEvents
	}

	RiderEvents struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		API      RiderAPI
		Tasks    Tasks
		Server   HTTPServer
		Storage  Storage
		Channel  Channel
		Notify   Notify
		Kafka    Kafka
		LogLevel string
	}
)

// Load читает общие настройки всех бинарников. Настройки Kafka проверяет ValidateKafka.
func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	tasks := DefaultTasks()
	channel := DefaultChannel()
	notify := DefaultNotify()
	kafka := DefaultKafka()

	var err error

	if tasks.AlertSweepInterval, err = osGetEnvDuration("BACKGROUND_ALERT_SWEEP_INTERVAL", tasks.AlertSweepInterval); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if tasks.OrdersResyncInterval, err = osGetEnvDuration("BACKGROUND_ORDERS_RESYNC_INTERVAL", tasks.OrdersResyncInterval); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if channel.ReconnectAttempts, err = osGetInt("CHANNEL_RECONNECT_ATTEMPTS", channel.ReconnectAttempts); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if channel.ReconnectDelay, err = osGetEnvDuration("CHANNEL_RECONNECT_DELAY", channel.ReconnectDelay); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	channel.Path = osGetString("CHANNEL_PATH", channel.Path)
	channel.Transports = osGetList("CHANNEL_TRANSPORTS", channel.Transports)

	if notify.DedupeWindow, err = osGetEnvDuration("NOTIFY_DEDUPE_WINDOW", notify.DedupeWindow); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	notify.SoundCommand = os.Getenv("NOTIFY_SOUND_COMMAND")

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS", defaultRateLimiterQPS)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST", defaultRateLimiterBurst)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED", false)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if kafka.Sarama.ConsumerOffsetsAutocommit, err = osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT", kafka.Sarama.ConsumerOffsetsAutocommit); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if kafka.Handlers.RiderEvents.ProcessTimeout, err = osGetEnvDuration(
		"KAFKA_HANDLER_RIDER_EVENTS_PROCESS_TIMEOUT",
		kafka.Handlers.RiderEvents.ProcessTimeout,
	); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	kafka.Brokers = os.Getenv("KAFKA_BROKERS")
	kafka.Topic = osGetString("KAFKA_TOPIC", kafka.Topic)
	kafka.ConsumerGroup = osGetString("KAFKA_CONSUMER_GROUP", kafka.ConsumerGroup)
	kafka.PortHealthcheck = osGetString("KAFKA_HTTP_HEALTHCHECK_PORT", kafka.PortHealthcheck)
	kafka.Sarama.Version = osGetString("KAFKA_SARAMA_VERSION", kafka.Sarama.Version)

	return &Config{
		API: RiderAPI{
			BaseURL: os.Getenv("RIDER_API_URL"),
		},
		Tasks: tasks,
		Server: HTTPServer{
			Port:             osGetString("PORT", defaultPort),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Storage: Storage{
			SQLitePath: osGetString("SQLITE_PATH", defaultSQLitePath),
		},
		Channel:  channel,
		Notify:   notify,
		Kafka:    kafka,
		LogLevel: osGetString("LOG_LEVEL", defaultLogLevel),
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return errors.New("RIDER_API_URL is required")
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("RIDER_API_URL must be an absolute http(s) url, got %q", cfg.API.BaseURL)
	}

	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout <= 0 {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT must be positive")
	}
	if cfg.Server.RateLimiterQPS <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS must be positive")
	}
	if cfg.Server.RateLimiterBurst <= 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST must be positive")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Storage.SQLitePath == "" {
		return errors.New("SQLITE_PATH is required")
	}

	if cfg.Channel.ReconnectAttempts < 0 {
		return errors.New("CHANNEL_RECONNECT_ATTEMPTS must not be negative")
	}
	if cfg.Channel.ReconnectDelay < 0 {
		return errors.New("CHANNEL_RECONNECT_DELAY must not be negative")
	}
	if len(cfg.Channel.Transports) == 0 {
		return errors.New("CHANNEL_TRANSPORTS must name at least one transport")
	}
	for _, tr := range cfg.Channel.Transports {
		if tr != "websocket" && tr != "polling" {
			return fmt.Errorf("CHANNEL_TRANSPORTS: unknown transport %q", tr)
		}
	}

	if cfg.Notify.DedupeWindow < 0 {
		return errors.New("NOTIFY_DEDUPE_WINDOW must not be negative")
	}

	if cfg.Tasks.AlertSweepInterval <= 0 {
		return errors.New("BACKGROUND_ALERT_SWEEP_INTERVAL must be positive")
	}
	if cfg.Tasks.OrdersResyncInterval <= 0 {
		return errors.New("BACKGROUND_ORDERS_RESYNC_INTERVAL must be positive")
	}

	return nil
}

// ValidateKafka проверяет настройки моста Kafka. Нужен только воркеру.
func (c *Config) ValidateKafka() error {
	if c.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if c.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if c.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if c.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if c.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if c.Kafka.Handlers.RiderEvents.ProcessTimeout <= 0 {
		return errors.New("KAFKA_HANDLER_RIDER_EVENTS_PROCESS_TIMEOUT must be positive")
	}

	return nil
}

func osGetString(s, def string) string {
	val := os.Getenv(s)
	if val == "" {
		return def
	}
	return val
}

// osGetList разбирает список через запятую, пустые элементы выбрасывает.
func osGetList(s string, def []string) []string {
	val := os.Getenv(s)
	if val == "" {
		return def
	}

	var res []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}

func osGetInt(s string, def int) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string, def time.Duration) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string, def bool) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return def, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
