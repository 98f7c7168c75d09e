package workflow

import (
	"time"

	workflowerrors "hrflow/internal/workflow/errors"
)

type SubmitRequestDTO struct {
	EmployeeID      string         `json:"employee_id" binding:"required"`
	EmployeeName    string         `json:"employee_name" binding:"required"`
	RequestType     string         `json:"request_type" binding:"required"`
	SubType         string         `json:"sub_type"`
	Description     string         `json:"description"`
	Urgency         string         `json:"urgency" binding:"omitempty,oneof=Low Medium High Critical"`
	RequestedAmount float64        `json:"requested_amount" binding:"min=0"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	Attachments     []string       `json:"attachments"`
	FormValues      map[string]any `json:"form_values"`
}

func (r SubmitRequestDTO) toInput() (SubmitInput, error) {
	input := SubmitInput{
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		RequestType:     RequestType(r.RequestType),
		SubType:         r.SubType,
		Description:     r.Description,
		Urgency:         UrgencyMedium,
		RequestedAmount: r.RequestedAmount,
		Attachments:     r.Attachments,
	}
	if r.Urgency != "" {
		input.Urgency = Urgency(r.Urgency)
	}

	if r.StartDate != "" || r.EndDate != "" {
		start, err := time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			return SubmitInput{}, workflowerrors.ErrInvalidDate
		}
		end, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return SubmitInput{}, workflowerrors.ErrInvalidDate
		}
		if end.Before(start) {
			return SubmitInput{}, workflowerrors.ErrInvalidDateRange
		}
		input.RequestedDates = &DateRange{
			StartDate: start,
			EndDate:   end,
			TotalDays: int(end.Sub(start).Hours()/24) + 1,
		}
	}

	return input, nil
}

type ApprovalActionDTO struct {
	ApproverID  string `json:"approver_id" binding:"required"`
	Action      string `json:"action" binding:"required,oneof=Approved Rejected Delegated"`
	Comments    string `json:"comments"`
	DelegatedTo string `json:"delegated_to"`
}
