package workflow

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	workflowerrors "hrflow/internal/workflow/errors"
)

// stageDisplayNames maps a zero-based stage index to the stage label shown
// on the request while that stage is active.
var stageDisplayNames = []string{"Manager Review", "HR Review", "Finance Review", "CEO Approval"}

const (
	stageSubmission = "Submission"
	stageExecution  = "Execution"
	stageCompleted  = "Completed"
)

const highValueThreshold = 5000

type EngineConfig struct {
	Directory ApproverDirectory
	Notifier  Notifier
	Logger    *zap.Logger
	// Workflows overrides the built-in templates when non-nil.
	Workflows []Workflow
	// HourUnit is the wall-clock length of one escalation hour. It defaults
	// to time.Hour; tests shrink it to exercise timer behaviour.
	HourUnit time.Duration
}

// Engine runs employee requests through their approval workflows. Requests
// live in memory; each one is guarded by its own lock so approvals on
// different requests never contend.
type Engine struct {
	mu        sync.RWMutex
	requests  map[string]*requestState
	workflows map[RequestType]Workflow

	directory ApproverDirectory
	notifier  Notifier
	logger    *zap.Logger
	hourUnit  time.Duration
}

type requestState struct {
	mu      sync.Mutex
	request *EmployeeRequest

	timer    *time.Timer
	timerGen uint64
}

func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Directory == nil {
		cfg.Directory = NewStaticDirectory()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.L().Named("workflow.engine")
	}
	if cfg.Notifier == nil {
		cfg.Notifier = NewLogNotifier(cfg.Logger.Named("notifier"))
	}
	if cfg.HourUnit <= 0 {
		cfg.HourUnit = time.Hour
	}
	templates := cfg.Workflows
	if templates == nil {
		templates = DefaultWorkflows()
	}
	workflows := make(map[RequestType]Workflow, len(templates))
	for _, wf := range templates {
		if wf.IsActive {
			workflows[wf.RequestType] = wf
		}
	}
	return &Engine{
		requests:  make(map[string]*requestState),
		workflows: workflows,
		directory: cfg.Directory,
		notifier:  cfg.Notifier,
		logger:    cfg.Logger,
		hourUnit:  cfg.HourUnit,
	}
}

type SubmitInput struct {
	EmployeeID      string
	EmployeeName    string
	RequestType     RequestType
	SubType         string
	Description     string
	Urgency         Urgency
	RequestedAmount float64
	RequestedDates  *DateRange
	Attachments     []string
}

// SubmitRequest creates a request in the Submission stage, assigns the
// first-stage approver and arms the escalation timer. Salary certificates
// auto-approve immediately when their stage carries an auto-approve
// condition.
func (e *Engine) SubmitRequest(ctx context.Context, input SubmitInput) (*EmployeeRequest, error) {
	wf, ok := e.workflows[input.RequestType]
	if !ok {
		return nil, workflowerrors.ErrWorkflowNotFound
	}
	if input.EmployeeID == "" {
		return nil, workflowerrors.ErrEmployeeRequired
	}

	now := time.Now().UTC()
	request := &EmployeeRequest{
		RequestID:      "REQ-" + uuid.NewString(),
		EmployeeID:     input.EmployeeID,
		EmployeeName:   input.EmployeeName,
		DateSubmitted:  now,
		RequestType:    input.RequestType,
		SubType:        input.SubType,
		Description:    input.Description,
		Urgency:        input.Urgency,
		RequestedAmount: input.RequestedAmount,
		RequestedDates: input.RequestedDates,
		Attachments:    append([]string(nil), input.Attachments...),
		ApprovalStatus: StatusPending,
		ApprovalLog:    []ApprovalLogEntry{},
		WorkflowStage:  stageSubmission,
		ExecutionStatus: ExecutionNotStarted,
		AutoEscalation: AutoEscalation{
			Enabled:             wf.AutoEscalationRules.Enabled,
			EscalateAfterHours:  wf.AutoEscalationRules.EscalateAfterHours,
			NextEscalationLevel: wf.AutoEscalationRules.EscalateToRole,
			EscalationHistory:   []EscalationEntry{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	request.Tags = deriveTags(request)
	request.BudgetApprovalRequired = wf.Conditions.AmountThreshold > 0 &&
		input.RequestedAmount >= wf.Conditions.AmountThreshold

	for i, stage := range wf.Stages {
		identity := e.directory.ResolveApprover(stage.RequiredRole, input.EmployeeID)
		request.Approvers = append(request.Approvers, Approver{
			ID:       identity.ID,
			Name:     identity.Name,
			Role:     identity.Role,
			Order:    i + 1,
			Required: stage.IsRequired,
		})
	}
	if len(request.Approvers) > 0 {
		request.CurrentApprover = request.Approvers[0].ID
	}

	state := &requestState{request: request}
	e.mu.Lock()
	e.requests[request.RequestID] = state
	e.mu.Unlock()

	// Snapshot before releasing the lock: once the escalation timer is
	// armed the request may be mutated concurrently.
	state.mu.Lock()
	e.armEscalationTimer(state)
	submitted := request.clone()
	state.mu.Unlock()

	e.notifier.Notify(ctx, submitted, EventSubmitted)
	e.notifier.Notify(ctx, submitted, EventApprovalRequired)

	if len(wf.Stages) > 0 && len(wf.Stages[0].AutoApproveConditions) > 0 {
		comment := "Auto-approved: " + wf.Stages[0].AutoApproveConditions[0]
		if err := e.ProcessApproval(ctx, request.RequestID, SystemApproverID, ActionApproved, comment, ""); err != nil {
			e.logger.Error("auto-approval failed",
				zap.String("request_id", request.RequestID),
				zap.Error(err),
			)
		}
	}

	return e.snapshot(request.RequestID)
}

// ProcessApproval records one approver action and advances, rejects or
// delegates the request accordingly. Closed requests fail fast.
func (e *Engine) ProcessApproval(ctx context.Context, requestID, approverID string, action ApprovalAction, comments, delegatedTo string) error {
	state, err := e.state(requestID)
	if err != nil {
		return err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	request := state.request
	if request.ApprovalStatus.Terminal() {
		return workflowerrors.ErrRequestClosed
	}
	switch action {
	case ActionApproved, ActionRejected:
	case ActionDelegated:
		if delegatedTo == "" {
			return workflowerrors.ErrDelegateRequired
		}
	default:
		return workflowerrors.ErrInvalidAction
	}

	// Index of the stage this action decides: the count of approvals that
	// already happened before this call.
	stageIndex := approvedCount(request.ApprovalLog)

	e.stopEscalationTimer(state)

	identity := e.directory.Identify(approverID)
	now := time.Now().UTC()
	request.ApprovalLog = append(request.ApprovalLog, ApprovalLogEntry{
		ApproverID:   identity.ID,
		ApproverName: identity.Name,
		ApproverRole: identity.Role,
		Status:       action,
		ActionDate:   now,
		Comments:     comments,
		DelegatedTo:  delegatedTo,
	})
	request.UpdatedAt = now

	switch action {
	case ActionRejected:
		request.ApprovalStatus = StatusRejected
		request.WorkflowStage = stageCompleted
		e.notifier.Notify(ctx, request.clone(), EventRejected)

	case ActionDelegated:
		// Delegation hands the decision to someone else; the approval
		// status stays where it was.
		request.CurrentApprover = delegatedTo
		e.armEscalationTimer(state)
		e.notifier.Notify(ctx, request.clone(), EventDelegated)
		e.notifier.Notify(ctx, request.clone(), EventApprovalRequired)

	case ActionApproved:
		wf := e.workflows[request.RequestType]
		if stageIndex+1 >= len(wf.Stages) {
			e.completeApproval(ctx, request, now)
		} else {
			next := stageIndex + 1
			request.ApprovalStatus = StatusInReview
			request.WorkflowStage = stageName(next)
			request.CurrentApprover = request.Approvers[next].ID
			e.armEscalationTimer(state)
			e.notifier.Notify(ctx, request.clone(), EventApprovalRequired)
		}
	}

	e.logger.Info("approval processed",
		zap.String("request_id", request.RequestID),
		zap.String("approver_id", approverID),
		zap.String("action", string(action)),
		zap.String("status", string(request.ApprovalStatus)),
	)
	return nil
}

// completeApproval runs after the final stage approves: the request is
// marked approved and executed. Execution failure parks the request On
// Hold without reverting the approval.
func (e *Engine) completeApproval(ctx context.Context, request *EmployeeRequest, now time.Time) {
	request.ApprovalStatus = StatusApproved
	request.WorkflowStage = stageExecution
	request.ExecutionStatus = ExecutionInProgress
	request.CurrentApprover = ""
	execDate := now
	request.ExecutionDate = &execDate
	e.notifier.Notify(ctx, request.clone(), EventApproved)

	if err := e.executeRequest(request); err != nil {
		request.ExecutionStatus = ExecutionOnHold
		e.logger.Error("request execution failed",
			zap.String("request_id", request.RequestID),
			zap.String("request_type", string(request.RequestType)),
			zap.Error(err),
		)
		return
	}

	completed := time.Now().UTC()
	request.ExecutionStatus = ExecutionCompleted
	request.WorkflowStage = stageCompleted
	request.ActualCompletionDate = &completed
	e.notifier.Notify(ctx, request.clone(), EventCompleted)
}

func (e *Engine) executeRequest(request *EmployeeRequest) error {
	switch request.RequestType {
	case TypeSalaryCertificate:
		doc, err := generateSalaryCertificate(request)
		if err != nil {
			return fmt.Errorf("generate salary certificate: %w", err)
		}
		request.ResultDocuments = append(request.ResultDocuments, doc)
	default:
		// Other request types have no document side effect; approval
		// itself is the outcome.
	}
	return nil
}

// escalate fires when a stage times out. It reassigns the request to the
// configured escalation role and re-arms the timer; the stage and the
// approval status are untouched.
func (e *Engine) escalate(state *requestState, gen uint64) {
	state.mu.Lock()
	defer state.mu.Unlock()

	// A stop or re-arm that raced the firing timer wins.
	if gen != state.timerGen {
		return
	}

	request := state.request
	if request.ApprovalStatus.Terminal() || !request.AutoEscalation.Enabled {
		return
	}
	role := request.AutoEscalation.NextEscalationLevel
	if role == "" {
		return
	}

	now := time.Now().UTC()
	target := e.directory.ResolveApprover(role, request.EmployeeID)
	fromApprover := e.directory.Identify(request.CurrentApprover)

	request.AutoEscalation.EscalationHistory = append(request.AutoEscalation.EscalationHistory, EscalationEntry{
		FromLevel:   fromApprover.Role,
		ToLevel:     role,
		EscalatedAt: now,
		Reason:      fmt.Sprintf("No response within %d hours", request.AutoEscalation.EscalateAfterHours),
	})
	request.ApprovalLog = append(request.ApprovalLog, ApprovalLogEntry{
		ApproverID:     SystemApproverID,
		ApproverName:   "System",
		ApproverRole:   "System",
		Status:         ActionEscalated,
		ActionDate:     now,
		Comments:       fmt.Sprintf("Escalated to %s after timeout", role),
		EscalatedAfter: request.AutoEscalation.EscalateAfterHours,
	})
	request.CurrentApprover = target.ID
	request.UpdatedAt = now

	e.armEscalationTimer(state)

	e.logger.Warn("request escalated",
		zap.String("request_id", request.RequestID),
		zap.String("escalated_to", role),
		zap.Int("after_hours", request.AutoEscalation.EscalateAfterHours),
	)
	e.notifier.Notify(context.Background(), request.clone(), EventEscalated)
	e.notifier.Notify(context.Background(), request.clone(), EventApprovalRequired)
}

// armEscalationTimer schedules the next escalation check. Caller holds
// state.mu.
func (e *Engine) armEscalationTimer(state *requestState) {
	esc := state.request.AutoEscalation
	if !esc.Enabled || esc.EscalateAfterHours <= 0 {
		return
	}
	if state.timer != nil {
		state.timer.Stop()
	}
	state.timerGen++
	gen := state.timerGen
	delay := time.Duration(esc.EscalateAfterHours) * e.hourUnit
	state.timer = time.AfterFunc(delay, func() {
		e.escalate(state, gen)
	})
}

// stopEscalationTimer cancels any pending escalation, including one whose
// callback already fired and is waiting on the lock. Caller holds state.mu.
func (e *Engine) stopEscalationTimer(state *requestState) {
	if state.timer != nil {
		state.timer.Stop()
		state.timer = nil
	}
	state.timerGen++
}

// GetRequestByID returns a snapshot of one request.
func (e *Engine) GetRequestByID(requestID string) (*EmployeeRequest, error) {
	return e.snapshot(requestID)
}

// GetEmployeeRequests lists an employee's requests, newest first.
func (e *Engine) GetEmployeeRequests(employeeID string) []*EmployeeRequest {
	out := e.collect(func(r *EmployeeRequest) bool {
		return r.EmployeeID == employeeID
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateSubmitted.After(out[j].DateSubmitted)
	})
	return out
}

// GetPendingApprovals lists open requests currently waiting on the given
// approver, oldest first so the longest-waiting request surfaces on top.
func (e *Engine) GetPendingApprovals(approverID string) []*EmployeeRequest {
	out := e.collect(func(r *EmployeeRequest) bool {
		if r.CurrentApprover != approverID {
			return false
		}
		return r.ApprovalStatus == StatusPending || r.ApprovalStatus == StatusInReview
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateSubmitted.Before(out[j].DateSubmitted)
	})
	return out
}

// GetTeamRequests lists every request that has the given manager anywhere
// in its approver chain, newest first.
func (e *Engine) GetTeamRequests(managerID string) []*EmployeeRequest {
	out := e.collect(func(r *EmployeeRequest) bool {
		for _, a := range r.Approvers {
			if a.ID == managerID {
				return true
			}
		}
		return false
	})
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateSubmitted.After(out[j].DateSubmitted)
	})
	return out
}

// Workflows returns the active workflow templates sorted by name.
func (e *Engine) Workflows() []Workflow {
	out := make([]Workflow, 0, len(e.workflows))
	for _, wf := range e.workflows {
		out = append(out, wf)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WorkflowName < out[j].WorkflowName
	})
	return out
}

// WorkflowFor returns the active template for a request type.
func (e *Engine) WorkflowFor(requestType RequestType) (Workflow, error) {
	wf, ok := e.workflows[requestType]
	if !ok {
		return Workflow{}, workflowerrors.ErrWorkflowNotFound
	}
	return wf, nil
}

func (e *Engine) state(requestID string) (*requestState, error) {
	e.mu.RLock()
	state, ok := e.requests[requestID]
	e.mu.RUnlock()
	if !ok {
		return nil, workflowerrors.ErrRequestNotFound
	}
	return state, nil
}

func (e *Engine) snapshot(requestID string) (*EmployeeRequest, error) {
	state, err := e.state(requestID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.request.clone(), nil
}

func (e *Engine) collect(match func(*EmployeeRequest) bool) []*EmployeeRequest {
	e.mu.RLock()
	states := make([]*requestState, 0, len(e.requests))
	for _, state := range e.requests {
		states = append(states, state)
	}
	e.mu.RUnlock()

	out := make([]*EmployeeRequest, 0, len(states))
	for _, state := range states {
		state.mu.Lock()
		if match(state.request) {
			out = append(out, state.request.clone())
		}
		state.mu.Unlock()
	}
	return out
}

func approvedCount(log []ApprovalLogEntry) int {
	count := 0
	for _, entry := range log {
		if entry.Status == ActionApproved {
			count++
		}
	}
	return count
}

func stageName(index int) string {
	if index >= 0 && index < len(stageDisplayNames) {
		return stageDisplayNames[index]
	}
	return "Review"
}

func deriveTags(request *EmployeeRequest) []string {
	var tags []string
	if request.Urgency == UrgencyHigh || request.Urgency == UrgencyCritical {
		tags = append(tags, "URGENT")
	}
	if request.RequestedAmount > highValueThreshold {
		tags = append(tags, "HIGH_VALUE")
	}
	switch request.RequestType {
	case TypeLeave:
		tags = append(tags, "LEAVE_REQUEST")
	case TypeExitClearance:
		tags = append(tags, "EXIT_PROCESS")
	}
	return tags
}
