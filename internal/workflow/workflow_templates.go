package workflow

// DefaultWorkflows returns the built-in approval templates. One template per
// request type; the engine indexes them by RequestType at construction.
func DefaultWorkflows() []Workflow {
	return []Workflow{
		{
			ID:           "wf-leave",
			RequestType:  TypeLeave,
			WorkflowName: "Leave Request Workflow",
			Description:  "Standard leave approval through manager and HR",
			IsActive:     true,
			Stages: []ApprovalStage{
				{
					StageID:      "leave-manager",
					StageName:    "Manager Review",
					StageOrder:   1,
					RequiredRole: "Direct Manager",
					IsRequired:   true,
					CanDelegate:  true,
					TimeoutHours: 48,
				},
				{
					StageID:      "leave-hr",
					StageName:    "HR Review",
					StageOrder:   2,
					RequiredRole: "HR Manager",
					IsRequired:   true,
					CanDelegate:  false,
					TimeoutHours: 24,
				},
			},
			AutoEscalationRules: AutoEscalationRule{
				Enabled:            true,
				EscalateAfterHours: 72,
				EscalateToRole:     "Department Manager",
			},
		},
		{
			ID:           "wf-exit-clearance",
			RequestType:  TypeExitClearance,
			WorkflowName: "Exit Clearance Workflow",
			Description:  "Exit clearance with manager, HR and executive sign-off",
			IsActive:     true,
			Stages: []ApprovalStage{
				{
					StageID:      "exit-manager",
					StageName:    "Manager Review",
					StageOrder:   1,
					RequiredRole: "Direct Manager",
					IsRequired:   true,
					CanDelegate:  true,
					TimeoutHours: 48,
				},
				{
					StageID:      "exit-hr",
					StageName:    "HR Review",
					StageOrder:   2,
					RequiredRole: "HR Manager",
					IsRequired:   true,
					CanDelegate:  false,
					TimeoutHours: 48,
				},
				{
					StageID:      "exit-ceo",
					StageName:    "CEO Approval",
					StageOrder:   3,
					RequiredRole: "CEO",
					IsRequired:   true,
					CanDelegate:  false,
					TimeoutHours: 72,
				},
			},
			AutoEscalationRules: AutoEscalationRule{
				Enabled:            true,
				EscalateAfterHours: 96,
				EscalateToRole:     "CEO",
			},
		},
		{
			ID:           "wf-salary-certificate",
			RequestType:  TypeSalaryCertificate,
			WorkflowName: "Salary Certificate Workflow",
			Description:  "Auto-approved document generation",
			IsActive:     true,
			Stages: []ApprovalStage{
				{
					StageID:               "cert-hr",
					StageName:             "HR Review",
					StageOrder:            1,
					RequiredRole:          "HR Manager",
					IsRequired:            true,
					CanDelegate:           false,
					TimeoutHours:          24,
					AutoApproveConditions: []string{"Template available"},
				},
			},
			AutoEscalationRules: AutoEscalationRule{
				Enabled: false,
			},
		},
		{
			ID:           "wf-vacation-advance",
			RequestType:  TypeVacationSalaryAdvance,
			WorkflowName: "Vacation Salary Advance Workflow",
			Description:  "Salary advance with manager and finance approval",
			IsActive:     true,
			Stages: []ApprovalStage{
				{
					StageID:      "advance-manager",
					StageName:    "Manager Review",
					StageOrder:   1,
					RequiredRole: "Direct Manager",
					IsRequired:   true,
					CanDelegate:  true,
					TimeoutHours: 48,
				},
				{
					StageID:      "advance-finance",
					StageName:    "Finance Review",
					StageOrder:   2,
					RequiredRole: "Finance Manager",
					IsRequired:   true,
					CanDelegate:  false,
					TimeoutHours: 48,
				},
			},
			AutoEscalationRules: AutoEscalationRule{
				Enabled:            true,
				EscalateAfterHours: 72,
				EscalateToRole:     "CEO",
			},
			Conditions: WorkflowConditions{
				AmountThreshold: 10000,
			},
		},
		{
			ID:           "wf-medical-reimbursement",
			RequestType:  TypeMedicalReimbursement,
			WorkflowName: "Medical Reimbursement Workflow",
			Description:  "Medical expense reimbursement through manager and HR",
			IsActive:     true,
			Stages: []ApprovalStage{
				{
					StageID:      "medical-manager",
					StageName:    "Manager Review",
					StageOrder:   1,
					RequiredRole: "Direct Manager",
					IsRequired:   true,
					CanDelegate:  true,
					TimeoutHours: 48,
				},
				{
					StageID:      "medical-hr",
					StageName:    "HR Review",
					StageOrder:   2,
					RequiredRole: "HR Manager",
					IsRequired:   true,
					CanDelegate:  false,
					TimeoutHours: 48,
				},
			},
			AutoEscalationRules: AutoEscalationRule{
				Enabled:            true,
				EscalateAfterHours: 72,
				EscalateToRole:     "Department Manager",
			},
			Conditions: WorkflowConditions{
				AmountThreshold: 5000,
			},
		},
	}
}
