package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"tigertix/pkg/logger"

	"github.com/IBM/sarama"
)

// KafkaConsumerConfig contains configuration for the Kafka consumer
type KafkaConsumerConfig struct {
	Brokers       []string
	Topic         string
	ConsumerGroup string
}

// KafkaConsumer reads booking notifications and dispatches them. Delivery
// here is a log line standing in for an email/push integration.
type KafkaConsumer struct {
	group  sarama.ConsumerGroup
	config *KafkaConsumerConfig
	log    *logger.Logger
}

// NewKafkaConsumer creates a consumer-group reader for booking notifications
func NewKafkaConsumer(config *KafkaConsumerConfig) (*KafkaConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(config.Brokers, config.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer group: %w", err)
	}

	return &KafkaConsumer{
		group:  group,
		config: config,
		log:    logger.GetDefault(),
	}, nil
}

// Start consumes until the context is cancelled
func (kc *KafkaConsumer) Start(ctx context.Context) error {
	handler := &notificationHandler{log: kc.log}

	for {
		if err := kc.group.Consume(ctx, []string{kc.config.Topic}, handler); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			kc.log.Error("consumer group session failed", slog.Any("error", err))
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Close shuts down the consumer group
func (kc *KafkaConsumer) Close() error {
	return kc.group.Close()
}

type notificationHandler struct {
	log *logger.Logger
}

func (h *notificationHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *notificationHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *notificationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var notification BookingNotification
		if err := json.Unmarshal(message.Value, &notification); err != nil {
			h.log.Error("failed to decode booking notification",
				slog.Any("error", err),
				slog.Int64("offset", message.Offset),
			)
			session.MarkMessage(message, "")
			continue
		}

		h.log.Info("booking notification received",
			slog.String("type", notification.Type),
			slog.String("booking_id", notification.BookingID),
			slog.String("event_id", notification.EventID),
			slog.Int("quantity", notification.Quantity),
		)

		session.MarkMessage(message, "")
	}
	return nil
}
