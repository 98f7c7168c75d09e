package workflow

import (
	"context"

	"go.uber.org/zap"
)

// Notification events emitted by the engine. Delivery is fire-and-forget;
// a failing notifier never blocks or rolls back a workflow transition.
const (
	EventSubmitted        = "Request Submitted"
	EventApprovalRequired = "Approval Required"
	EventApproved         = "Request Approved"
	EventRejected         = "Request Rejected"
	EventDelegated        = "Request Delegated"
	EventEscalated        = "Request Escalated"
	EventCompleted        = "Request Completed"
)

type Notifier interface {
	Notify(ctx context.Context, request *EmployeeRequest, event string)
}

// LogNotifier writes notification events to the structured log. It is the
// default when no outbox-backed notifier is wired in.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger ...*zap.Logger) *LogNotifier {
	l := zap.L().Named("workflow.notifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) Notify(_ context.Context, request *EmployeeRequest, event string) {
	n.logger.Info("workflow notification",
		zap.String("event", event),
		zap.String("request_id", request.RequestID),
		zap.String("request_type", string(request.RequestType)),
		zap.String("employee_id", request.EmployeeID),
		zap.String("current_approver", request.CurrentApprover),
		zap.String("approval_status", string(request.ApprovalStatus)),
	)
}
