package rider_events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"ridersync/pkg/logger"
)

type Handler struct {
	publisher                Publisher
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, publisher Publisher, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		publisher:                publisher,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("rider.events: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// rebalance или остановка consumer group
			h.log.Info("rider.events: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing кладет одно событие в реестр.
// true - прервать ConsumeClaim без коммита, сообщение перечитается.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var ev envelope
	err := json.Unmarshal(message.Value, &ev)
	if err != nil || ev.Event == "" {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("rider.events handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("event", ev.Event),
		logger.NewField("offset", message.Offset),
	)

	err = h.publisher.Publish(ctx, ev.Event, ev.Payload)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			msgLog.With(
				logger.NewField("error", err),
			).Warn("rider.events handler context cancelled, message will be reprocessed")
			return true
		}

		msgLog.With(
			logger.NewField("error", err),
		).Warn("rider.events handler dropped invalid event")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Debug("rider.events: published")
	sess.MarkMessage(message, "")
	return false
}
