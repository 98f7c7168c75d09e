package workflow

import "time"

type RequestType string

const (
	TypeLeave                 RequestType = "Leave"
	TypeExitClearance         RequestType = "Exit Clearance"
	TypeIDRenewal             RequestType = "ID Renewal"
	TypeSalaryCertificate     RequestType = "Salary Certificate"
	TypeVacationSalaryAdvance RequestType = "Vacation Salary Advance"
	TypeTransferRequest       RequestType = "Transfer Request"
	TypeMedicalReimbursement  RequestType = "Medical Reimbursement"
	TypeContractAmendment     RequestType = "Contract Amendment"
	TypeDocumentRequest       RequestType = "Document Request"
	TypeTrainingRequest       RequestType = "Training Request"
)

type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyMedium   Urgency = "Medium"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

type ApprovalStatus string

const (
	StatusPending   ApprovalStatus = "Pending"
	StatusInReview  ApprovalStatus = "In Review"
	StatusApproved  ApprovalStatus = "Approved"
	StatusRejected  ApprovalStatus = "Rejected"
	StatusCompleted ApprovalStatus = "Completed"
	StatusCancelled ApprovalStatus = "Cancelled"
)

// Terminal reports whether no further approval transitions are allowed.
func (s ApprovalStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

type ExecutionStatus string

const (
	ExecutionNotStarted ExecutionStatus = "Not Started"
	ExecutionInProgress ExecutionStatus = "In Progress"
	ExecutionCompleted  ExecutionStatus = "Completed"
	ExecutionOnHold     ExecutionStatus = "On Hold"
)

type ApprovalAction string

const (
	ActionApproved  ApprovalAction = "Approved"
	ActionRejected  ApprovalAction = "Rejected"
	ActionDelegated ApprovalAction = "Delegated"
	ActionEscalated ApprovalAction = "Escalated"
)

type ApproverIdentity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type Approver struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Order    int    `json:"order"`
	Required bool   `json:"required"`
}

type ApprovalLogEntry struct {
	ApproverID     string         `json:"approver_id"`
	ApproverName   string         `json:"approver_name"`
	ApproverRole   string         `json:"approver_role"`
	Status         ApprovalAction `json:"status"`
	ActionDate     time.Time      `json:"action_date"`
	Comments       string         `json:"comments,omitempty"`
	DelegatedTo    string         `json:"delegated_to,omitempty"`
	EscalatedAfter int            `json:"escalated_after,omitempty"`
}

type EscalationEntry struct {
	FromLevel   string    `json:"from_level"`
	ToLevel     string    `json:"to_level"`
	EscalatedAt time.Time `json:"escalated_at"`
	Reason      string    `json:"reason"`
}

type AutoEscalation struct {
	Enabled             bool              `json:"enabled"`
	EscalateAfterHours  int               `json:"escalate_after_hours"`
	NextEscalationLevel string            `json:"next_escalation_level"`
	EscalationHistory   []EscalationEntry `json:"escalation_history"`
}

type DateRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	TotalDays int       `json:"total_days"`
}

type ResultDocument struct {
	FileName    string    `json:"file_name"`
	FileURL     string    `json:"file_url"`
	GeneratedAt time.Time `json:"generated_at"`
	Content     []byte    `json:"-"`
}

// EmployeeRequest is one HR request moving through its approval workflow.
// All mutation happens inside the engine under the request's lock.
type EmployeeRequest struct {
	RequestID    string      `json:"request_id"`
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	DateSubmitted time.Time  `json:"date_submitted"`
	RequestType  RequestType `json:"request_type"`
	SubType      string      `json:"sub_type,omitempty"`
	Description  string      `json:"description"`
	Urgency      Urgency     `json:"urgency"`

	RequestedAmount float64    `json:"requested_amount,omitempty"`
	RequestedDates  *DateRange `json:"requested_dates,omitempty"`
	Attachments     []string   `json:"document_attachment,omitempty"`

	Approvers       []Approver         `json:"approvers"`
	CurrentApprover string             `json:"current_approver,omitempty"`
	ApprovalStatus  ApprovalStatus     `json:"approval_status"`
	ApprovalLog     []ApprovalLogEntry `json:"approval_log"`
	WorkflowStage   string             `json:"workflow_stage"`

	ExecutionStatus      ExecutionStatus  `json:"execution_status"`
	ExecutionDate        *time.Time       `json:"execution_date,omitempty"`
	ActualCompletionDate *time.Time       `json:"actual_completion_date,omitempty"`
	ResultDocuments      []ResultDocument `json:"result_documents,omitempty"`

	AutoEscalation AutoEscalation `json:"auto_escalation"`

	Tags                   []string `json:"tags,omitempty"`
	BudgetApprovalRequired bool     `json:"budget_approval_required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// clone returns a snapshot safe to hand to callers while the engine keeps
// mutating the original.
func (r *EmployeeRequest) clone() *EmployeeRequest {
	cp := *r
	cp.Approvers = append([]Approver(nil), r.Approvers...)
	cp.ApprovalLog = append([]ApprovalLogEntry(nil), r.ApprovalLog...)
	cp.Attachments = append([]string(nil), r.Attachments...)
	cp.ResultDocuments = append([]ResultDocument(nil), r.ResultDocuments...)
	cp.Tags = append([]string(nil), r.Tags...)
	cp.AutoEscalation.EscalationHistory = append([]EscalationEntry(nil), r.AutoEscalation.EscalationHistory...)
	if r.RequestedDates != nil {
		dates := *r.RequestedDates
		cp.RequestedDates = &dates
	}
	if r.ExecutionDate != nil {
		d := *r.ExecutionDate
		cp.ExecutionDate = &d
	}
	if r.ActualCompletionDate != nil {
		d := *r.ActualCompletionDate
		cp.ActualCompletionDate = &d
	}
	return &cp
}

type ApprovalStage struct {
	StageID               string   `json:"stage_id"`
	StageName             string   `json:"stage_name"`
	StageOrder            int      `json:"stage_order"`
	RequiredRole          string   `json:"required_role"`
	IsRequired            bool     `json:"is_required"`
	CanDelegate           bool     `json:"can_delegate"`
	CanSkip               bool     `json:"can_skip"`
	TimeoutHours          int      `json:"timeout_hours"`
	AutoApproveConditions []string `json:"auto_approve_conditions,omitempty"`
	// ParallelApproval and RequiredApprovers are declared for forward
	// compatibility; stage routing currently supports single-approver
	// stages only.
	ParallelApproval  bool `json:"parallel_approval"`
	RequiredApprovers int  `json:"required_approvers"`
}

type AutoEscalationRule struct {
	Enabled            bool   `json:"enabled"`
	EscalateAfterHours int    `json:"escalate_after_hours"`
	EscalateToRole     string `json:"escalate_to_role"`
}

type WorkflowConditions struct {
	UrgencyLevels   []Urgency `json:"urgency_levels,omitempty"`
	AmountThreshold float64   `json:"amount_threshold,omitempty"`
}

// Workflow is a static per-request-type template, immutable after engine
// construction.
type Workflow struct {
	ID                  string             `json:"id"`
	RequestType         RequestType        `json:"request_type"`
	WorkflowName        string             `json:"workflow_name"`
	Description         string             `json:"description"`
	IsActive            bool               `json:"is_active"`
	Stages              []ApprovalStage    `json:"stages"`
	AutoEscalationRules AutoEscalationRule `json:"auto_escalation_rules"`
	Conditions          WorkflowConditions `json:"conditions"`
}
