package config

import (
	"log/slog"
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/mockinsight/interview-service/internal/events"
)

const (
	PublisherGoChannel = "gochannel"
	PublisherKafka     = "kafka"
	PublisherMock      = "mock"

	metricsConsumerGroup = "interview-service-metrics"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled      bool
	Publisher    string // gochannel, kafka or mock
	KafkaBrokers string
	Topic        string
}

// EventBus pairs a publisher with the subscriber reading the same topic.
// Subscriber is nil when events are only recorded in memory.
type EventBus struct {
	Publisher  events.EventPublisher
	Subscriber message.Subscriber
}

// Close releases both sides of the bus
func (b *EventBus) Close() error {
	err := b.Publisher.Close()
	if b.Subscriber != nil {
		if subErr := b.Subscriber.Close(); subErr != nil && err == nil {
			err = subErr
		}
	}
	return err
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	brokers := strings.Split(c.KafkaBrokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}

// CreateEventBus creates the event publisher and subscriber based on configuration
func (c *EventConfig) CreateEventBus(logger *slog.Logger) (*EventBus, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return &EventBus{Publisher: events.NewMockEventPublisher(logger)}, nil
	}

	switch c.Publisher {
	case PublisherGoChannel:
		logger.Info("Creating in-process event bus", "topic", c.Topic)
		pubsub := events.NewGoChannel(logger)
		return &EventBus{
			Publisher:  events.NewWatermillEventPublisher(pubsub, c.Topic, logger),
			Subscriber: pubsub,
		}, nil
	case PublisherKafka:
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.Topic)

		publisherConfig := events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.Topic,
			Logger:       logger,
		}
		publisher, err := events.NewKafkaEventPublisher(publisherConfig)
		if err != nil {
			return nil, err
		}
		subscriber, err := events.NewKafkaSubscriber(publisherConfig, metricsConsumerGroup)
		if err != nil {
			publisher.Close()
			return nil, err
		}
		return &EventBus{Publisher: publisher, Subscriber: subscriber}, nil
	case PublisherMock:
		logger.Info("Using mock event publisher")
		return &EventBus{Publisher: events.NewMockEventPublisher(logger)}, nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return &EventBus{Publisher: events.NewMockEventPublisher(logger)}, nil
	}
}
