package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/IBM/sarama"
)

// MessageHandler processes one consumed message and reports whether its
// offset should be committed.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) (shouldMark bool, err error)
}

// Consumer runs a consumer group over one topic with a pluggable handler.
type Consumer struct {
	group   sarama.ConsumerGroup
	handler MessageHandler
	topic   string
	groupID string
	ready   chan bool
}

// ConsumerConfig holds Kafka consumer configuration
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler MessageHandler
}

// NewConsumer connects a consumer group to the brokers.
func NewConsumer(config ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}
	return newConsumer(group, config), nil
}

func newConsumer(group sarama.ConsumerGroup, config ConsumerConfig) *Consumer {
	return &Consumer{
		group:   group,
		handler: config.Handler,
		topic:   config.Topic,
		groupID: config.GroupID,
		ready:   make(chan bool),
	}
}

// Start consumes in the background and returns once the first session is
// set up or ctx is done.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{
		messageHandler: c.handler,
		ready:          c.ready,
	}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, sarama.ErrClosedConsumerGroup) {
					slog.Info("kafka consumer stopped", "group", c.groupID)
					return
				}
				slog.Error("kafka consume failed", "group", c.groupID, "error", err)
			}
			if ctx.Err() != nil {
				return
			}
			handler.ready = make(chan bool)
		}
	}()

	go func() {
		for err := range c.group.Errors() {
			slog.Error("kafka consumer error", "group", c.groupID, "error", err)
		}
	}()

	select {
	case <-c.ready:
		slog.Info("kafka consumer started", "group", c.groupID, "topic", c.topic)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts down the consumer group.
func (c *Consumer) Close() error {
	slog.Info("closing kafka consumer", "group", c.groupID)
	return c.group.Close()
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	messageHandler MessageHandler
	ready          chan bool
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim handles messages one at a time, in partition order.
func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			slog.Debug("kafka message received",
				"topic", message.Topic,
				"partition", message.Partition,
				"offset", message.Offset,
				"key", string(message.Key))

			shouldMark, err := h.messageHandler.HandleMessage(session.Context(), message.Value)
			if err != nil {
				slog.Error("kafka message handling failed", "offset", message.Offset, "error", err)
			}
			if shouldMark {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

// TypedMessageHandler decodes JSON messages into T before processing.
type TypedMessageHandler[T any] struct {
	// Validate rejects messages that should not be processed.
	Validate func(msg *T) bool
	Process  func(ctx context.Context, msg *T) error
	// MarkOnFailure commits undecodable, invalid and failed messages too, so
	// each message is attempted exactly once.
	MarkOnFailure bool
}

func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		slog.Warn("dropping undecodable kafka message", "error", err)
		return h.MarkOnFailure, nil
	}

	if h.Validate != nil && !h.Validate(&msg) {
		return h.MarkOnFailure, nil
	}

	if err := h.Process(ctx, &msg); err != nil {
		return h.MarkOnFailure, err
	}
	return true, nil
}
