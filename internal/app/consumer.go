package app

import (
	"context"
	"errors"

	"github.com/geraldDev01/onboarding-dashboard/internal/config"
	"github.com/geraldDev01/onboarding-dashboard/internal/messaging/kafka/consumer"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/audit"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer reads employee lifecycle events until ctx is done.
func RunConsumer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          cfg.KafkaEmployeeTopic,
		GroupID:        cfg.KafkaConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	consumer.ConsumeEmployeeLifecycle(ctx, reader, audit.NewStdoutLogger(logger), logger.Named("app.consumer"))

	logger.Info("consumer shutting down")
	return nil
}
