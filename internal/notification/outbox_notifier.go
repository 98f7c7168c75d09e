// Package notification bridges workflow events into the persistent
// notification outbox, from where the Kafka producer worker delivers them.
package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrflow/internal/events"
	"hrflow/internal/messaging/kafka"
	"hrflow/internal/workflow"
)

// OutboxNotifier implements workflow.Notifier. Failures are logged and
// swallowed: notification delivery never blocks or undoes a workflow
// transition.
type OutboxNotifier struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxNotifier(outbox kafka.OutboxRepository, logger ...*zap.Logger) *OutboxNotifier {
	l := zap.L().Named("notification.outbox")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.outbox")
	}
	return &OutboxNotifier{outbox: outbox, logger: l}
}

func (n *OutboxNotifier) Notify(ctx context.Context, request *workflow.EmployeeRequest, event string) {
	payload, err := json.Marshal(events.RequestNotificationEvent{
		EventType:       event,
		RequestID:       request.RequestID,
		RequestType:     string(request.RequestType),
		EmployeeID:      request.EmployeeID,
		EmployeeName:    request.EmployeeName,
		CurrentApprover: request.CurrentApprover,
		ApprovalStatus:  string(request.ApprovalStatus),
		WorkflowStage:   request.WorkflowStage,
		OccurredAt:      time.Now().UTC(),
	})
	if err != nil {
		n.logger.Error("encode notification failed",
			zap.String("request_id", request.RequestID),
			zap.String("event", event),
			zap.Error(err),
		)
		return
	}

	outboxEvent := kafka.OutboxEvent{
		ID:        uuid.NewString(),
		RequestID: request.RequestID,
		EventType: event,
		Topic:     events.RequestNotificationTopic,
		Payload:   payload,
		Status:    kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outboxEvent); err != nil {
		n.logger.Error("invalid notification event", zap.Error(err))
		return
	}
	if err := n.outbox.Create(ctx, outboxEvent); err != nil {
		if kafka.IsDuplicateEvent(err) {
			n.logger.Debug("notification already enqueued",
				zap.String("request_id", request.RequestID),
				zap.String("event", event),
			)
			return
		}
		n.logger.Error("enqueue notification failed",
			zap.String("request_id", request.RequestID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}
