package notification_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"hrflow/internal/events"
	"hrflow/internal/messaging/kafka"
	"hrflow/internal/notification"
	"hrflow/internal/workflow"
)

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func sampleRequest() *workflow.EmployeeRequest {
	return &workflow.EmployeeRequest{
		RequestID:       "REQ-1",
		EmployeeID:      "EMP-001",
		EmployeeName:    "Khalid Al-Harbi",
		RequestType:     workflow.TypeLeave,
		CurrentApprover: "approver-direct-manager-EMP-001",
		ApprovalStatus:  workflow.StatusPending,
		WorkflowStage:   "Manager Review",
	}
}

func TestOutboxNotifier_Notify(t *testing.T) {
	var captured kafka.OutboxEvent
	outbox := &fakeOutboxRepository{
		createFn: func(_ context.Context, event kafka.OutboxEvent) error {
			captured = event
			return nil
		},
	}
	notifier := notification.NewOutboxNotifier(outbox, zap.NewNop())

	notifier.Notify(context.Background(), sampleRequest(), workflow.EventSubmitted)

	assert.NotEmpty(t, captured.ID)
	assert.Equal(t, "REQ-1", captured.RequestID)
	assert.Equal(t, workflow.EventSubmitted, captured.EventType)
	assert.Equal(t, events.RequestNotificationTopic, captured.Topic)
	assert.Equal(t, kafka.OutboxStatusPending, captured.Status)

	var payload events.RequestNotificationEvent
	assert.NoError(t, json.Unmarshal(captured.Payload, &payload))
	assert.Equal(t, workflow.EventSubmitted, payload.EventType)
	assert.Equal(t, "EMP-001", payload.EmployeeID)
	assert.Equal(t, "Manager Review", payload.WorkflowStage)
	assert.Equal(t, string(workflow.StatusPending), payload.ApprovalStatus)
	assert.False(t, payload.OccurredAt.IsZero())
}

func TestOutboxNotifier_SwallowsCreateFailure(t *testing.T) {
	outbox := &fakeOutboxRepository{
		createFn: func(_ context.Context, _ kafka.OutboxEvent) error {
			return errors.New("database down")
		},
	}
	notifier := notification.NewOutboxNotifier(outbox, zap.NewNop())

	// Must not panic or propagate anything to the workflow.
	notifier.Notify(context.Background(), sampleRequest(), workflow.EventApproved)
}
