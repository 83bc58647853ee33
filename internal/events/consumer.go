package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventHandler processes a decoded interview event
type EventHandler func(ctx context.Context, event *InterviewEvent) error

// Consumer reads interview events from a Watermill subscriber and hands them
// to a handler. Messages are always acked: a failing handler is logged, not retried.
type Consumer struct {
	subscriber message.Subscriber
	topicName  string
	handler    EventHandler
	logger     *slog.Logger
}

func NewConsumer(subscriber message.Subscriber, topicName string, handler EventHandler, logger *slog.Logger) *Consumer {
	return &Consumer{
		subscriber: subscriber,
		topicName:  topicName,
		handler:    handler,
		logger:     logger,
	}
}

// Run blocks until ctx is cancelled or the subscription is closed.
func (c *Consumer) Run(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topicName)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", c.topicName, err)
	}

	c.logger.Info("Consuming interview events", "topic", c.topicName)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var event InterviewEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		c.logger.Warn("Dropping malformed interview event",
			"message_uuid", msg.UUID,
			"error", err)
		return
	}

	if err := c.handler(ctx, &event); err != nil {
		c.logger.Error("Failed to handle interview event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
	}
}
