// Command eventlog tails the interview event topic on Kafka and logs every
// event. It runs as a separate process next to the interview service when
// EVENTS_PUBLISHER=kafka.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mockinsight/interview-service/internal/config"
	"github.com/mockinsight/interview-service/internal/events"
	"github.com/mockinsight/interview-service/internal/utils"
)

const consumerGroup = "interview-eventlog"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewLogger(false).LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.ToSlogLogger(utils.NewLogger(cfg.IsProduction()))

	subscriber, err := events.NewKafkaSubscriber(events.PublisherConfig{
		KafkaBrokers: cfg.Events.GetKafkaBrokers(),
		TopicName:    cfg.Events.Topic,
		Logger:       logger,
	}, consumerGroup)
	if err != nil {
		logger.Error("Failed to create Kafka subscriber", "error", err)
		os.Exit(1)
	}
	defer subscriber.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := events.NewConsumer(subscriber, cfg.Events.Topic, func(ctx context.Context, event *events.InterviewEvent) error {
		logger.Info("Interview event",
			"event_id", event.ID,
			"event_type", event.Type,
			"session_id", event.SessionID,
			"timestamp", event.Timestamp,
			"data", string(event.Data))
		return nil
	}, logger)

	if err := consumer.Run(ctx); err != nil {
		logger.Error("Event consumer failed", "error", err)
		os.Exit(1)
	}
}
