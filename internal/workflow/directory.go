package workflow

import (
	"strings"
	"sync"
)

// SystemApproverID marks actions taken by the engine itself, such as
// auto-approval and escalation bookkeeping.
const SystemApproverID = "SYSTEM"

// ApproverDirectory resolves workflow roles to concrete approvers. The
// engine calls ResolveApprover when a request enters a stage and Identify
// when an actor shows up in the approval log.
type ApproverDirectory interface {
	ResolveApprover(role, employeeID string) ApproverIdentity
	Identify(approverID string) ApproverIdentity
}

var defaultRoleNames = map[string]string{
	"Direct Manager":     "Ahmed Al-Mansouri",
	"Department Manager": "Fatima Hassan",
	"HR Manager":         "Mohammad Al-Rashid",
	"CEO":                "Abdullah Al-Otaibi",
	"Finance Manager":    "Sarah Al-Zahra",
}

// StaticDirectory is an in-memory directory backed by a fixed role-to-name
// table. It remembers every identity it resolves so that Identify can
// round-trip approver IDs seen earlier in a request's life.
type StaticDirectory struct {
	mu       sync.RWMutex
	names    map[string]string
	resolved map[string]ApproverIdentity
}

func NewStaticDirectory() *StaticDirectory {
	names := make(map[string]string, len(defaultRoleNames))
	for role, name := range defaultRoleNames {
		names[role] = name
	}
	return &StaticDirectory{
		names:    names,
		resolved: make(map[string]ApproverIdentity),
	}
}

func (d *StaticDirectory) ResolveApprover(role, employeeID string) ApproverIdentity {
	id := ApproverIdentity{
		ID:   "approver-" + roleSlug(role) + "-" + employeeID,
		Name: d.roleName(role),
		Role: role,
	}
	d.mu.Lock()
	d.resolved[id.ID] = id
	d.mu.Unlock()
	return id
}

func (d *StaticDirectory) Identify(approverID string) ApproverIdentity {
	if approverID == SystemApproverID {
		return ApproverIdentity{ID: SystemApproverID, Name: "System", Role: "System"}
	}
	d.mu.RLock()
	id, ok := d.resolved[approverID]
	d.mu.RUnlock()
	if ok {
		return id
	}
	return ApproverIdentity{ID: approverID, Name: "Approver", Role: "Manager"}
}

func (d *StaticDirectory) roleName(role string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if name, ok := d.names[role]; ok {
		return name
	}
	return role
}

func roleSlug(role string) string {
	return strings.ReplaceAll(strings.ToLower(role), " ", "-")
}
