package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/geraldDev01/onboarding-dashboard/internal/events"
	"github.com/geraldDev01/onboarding-dashboard/internal/metrics"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/audit"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeEmployeeLifecycle turns employee_created events into audit entries
// until ctx is done. Undecodable messages are committed and skipped.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	auditLogger audit.Logger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EventType != events.EmployeeCreatedType {
			log.Warn("skip unknown employee lifecycle message",
				zap.String("key", string(msg.Key)),
				zap.Error(err),
			)
			metrics.EventsConsumed.WithLabelValues(metrics.ResultInvalid).Inc()
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		auditLogger.Log(ctx, audit.AuditLog{
			Action:  audit.ActionEmployeeAnnounce,
			Message: fmt.Sprintf("%s joined %s", event.Name, event.Department),
			Meta: map[string]any{
				"employee_id": event.EmployeeID,
				"email":       event.Email,
				"country":     event.Country,
				"hire_date":   event.HireDate,
				"created_by":  event.CreatedBy,
				"occurred_at": event.OccurredAt,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			metrics.EventsConsumed.WithLabelValues(metrics.ResultFailure).Inc()
			continue
		}
		metrics.EventsConsumed.WithLabelValues(metrics.ResultSuccess).Inc()

		log.Info("employee_created event handled",
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
