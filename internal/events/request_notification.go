package events

import "time"

const RequestNotificationTopic = "hr.request.notifications.v1"

// RequestNotificationEvent is the outbox payload emitted for every workflow
// notification hand-off. Consumers own the actual delivery transport.
type RequestNotificationEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id"`
	RequestType     string    `json:"request_type"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    string    `json:"employee_name"`
	CurrentApprover string    `json:"current_approver,omitempty"`
	ApprovalStatus  string    `json:"approval_status"`
	WorkflowStage   string    `json:"workflow_stage"`
	OccurredAt      time.Time `json:"occurred_at"`
}
