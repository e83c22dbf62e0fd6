package kafka

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"ridersync/internal/pkg/config"
	"ridersync/pkg/logger"
	"ridersync/pkg/retrier"
	"ridersync/pkg/retrier/backoff_adapter"
)

const clientID = "ridersync-rider-events"

// ErrTopicMissing - брокеры отвечают, но топика событий курьера на них нет.
var ErrTopicMissing = errors.New("rider events topic not found")

// brokerWait - сколько ждем брокеров и топик при старте воркера.
var brokerWait = retrier.Config{
	Policy:          retrier.Exponential,
	InitialInterval: time.Second,
	MaxInterval:     30 * time.Second,
	MaxElapsedTime:  2 * time.Minute,
	Randomization:   0.5,
	Multiplier:      2,
}

// SaramaOptions - то, что в конфиге sarama зависит от окружения.
type SaramaOptions struct {
	Version       string
	AutoCommit    bool
	InitialOffset int64
	Strategy      sarama.BalanceStrategy
}

func NewSaramaConfig(opts SaramaOptions) (*sarama.Config, error) {
	version, err := sarama.ParseKafkaVersion(opts.Version)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", opts.Version, err)
	}

	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Version = version
	cfg.Consumer.Return.Errors = true
	cfg.Consumer.Offsets.Initial = opts.InitialOffset
	cfg.Consumer.Offsets.AutoCommit.Enable = opts.AutoCommit
	if opts.Strategy != nil {
		cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{opts.Strategy}
	}

	return cfg, nil
}

// Brokers разбирает KAFKA_BROKERS: адреса через запятую, пустые отбрасываются.
func Brokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Consumer читает топик событий курьера в составе группы и отдает сообщения handler.
type Consumer struct {
	log     logger.Logger
	group   sarama.ConsumerGroup
	topic   string
	handler sarama.ConsumerGroupHandler
}

// NewConsumer дожидается брокеров и топика cfg.Topic, затем входит в группу cfg.ConsumerGroup.
func NewConsumer(ctx context.Context, log logger.Logger, cfg *config.Kafka, handler sarama.ConsumerGroupHandler) (*Consumer, error) {
	brokers := Brokers(cfg.Brokers)
	if len(brokers) == 0 {
		return nil, fmt.Errorf("no kafka brokers in %q", cfg.Brokers)
	}

	saramaConfig, err := NewSaramaConfig(SaramaOptions{
		Version:       cfg.Sarama.Version,
		AutoCommit:    cfg.Sarama.ConsumerOffsetsAutocommit,
		InitialOffset: sarama.OffsetOldest,
		Strategy:      sarama.NewBalanceStrategyRoundRobin(),
	})
	if err != nil {
		return nil, fmt.Errorf("sarama config: %w", err)
	}

	consumerLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("group", cfg.ConsumerGroup),
		logger.NewField("topic", cfg.Topic),
	)

	if err := waitForTopic(ctx, consumerLog, brokers, cfg.Topic, saramaConfig); err != nil {
		return nil, err
	}

	group, err := sarama.NewConsumerGroup(brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("join consumer group %q: %w", cfg.ConsumerGroup, err)
	}

	return &Consumer{
		log:     consumerLog,
		group:   group,
		topic:   cfg.Topic,
		handler: handler,
	}, nil
}

// Start читает события до отмены ctx. Consume возвращается на каждом ребалансе, поэтому цикл.
func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("rider events consumer starting")

	go c.logGroupErrors()

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, c.handler); err != nil {
			c.log.Error("consume rider events", logger.NewField("error", err))
			return fmt.Errorf("consume %s: %w", c.topic, err)
		}

		if ctx.Err() != nil {
			c.log.Info("rider events consumer stopped")
			return ctx.Err()
		}
		c.log.Debug("consumer group rebalanced, rejoining")
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

// logGroupErrors вычитывает ошибки группы (Consumer.Return.Errors), канал закрывается вместе с группой.
func (c *Consumer) logGroupErrors() {
	for err := range c.group.Errors() {
		c.log.Warn("consumer group error", logger.NewField("error", err))
	}
}

func waitForTopic(ctx context.Context, log logger.Logger, brokers []string, topic string, cfg *sarama.Config) error {
	var attempt uint64
	err := backoff_adapter.New(brokerWait).ExecuteWithContext(ctx, func(context.Context) error {
		attempt++
		log.Info("checking kafka brokers", logger.NewField("attempt", attempt))

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Warn("close kafka metadata client", logger.NewField("error", err))
			}
		}()

		topics, err := client.Topics()
		if err != nil {
			return err
		}
		if !slices.Contains(topics, topic) {
			// топик может создаваться автоматически чуть позже брокера
			return ErrTopicMissing
		}
		return nil
	})
	if err != nil {
		log.Error("kafka is not ready",
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		)
		return fmt.Errorf("wait for kafka topic %q: %w", topic, err)
	}

	log.Info("kafka is ready", logger.NewField("attempts", attempt))
	return nil
}
