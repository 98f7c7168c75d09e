package workflow

import (
	"time"

	"hrflow/internal/shared/apperror"
	workflowerrors "hrflow/internal/workflow/errors"
)

type FieldType string

const (
	FieldText      FieldType = "text"
	FieldTextarea  FieldType = "textarea"
	FieldSelect    FieldType = "select"
	FieldDate      FieldType = "date"
	FieldDateRange FieldType = "dateRange"
	FieldCurrency  FieldType = "currency"
	FieldFile      FieldType = "file"
)

type FieldValidation struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

type FormField struct {
	FieldID    string           `json:"field_id"`
	FieldName  string           `json:"field_name"`
	FieldType  FieldType        `json:"field_type"`
	IsRequired bool             `json:"is_required"`
	Options    []string         `json:"options,omitempty"`
	Validation *FieldValidation `json:"validation,omitempty"`
}

type FormConfig struct {
	RequestType             RequestType `json:"request_type"`
	FormFields              []FormField `json:"form_fields"`
	RequiredDocuments       []string    `json:"required_documents"`
	ApprovalWorkflow        RequestType `json:"approval_workflow"`
	EstimatedProcessingDays int         `json:"estimated_processing_days"`
	AutoGenerate            bool        `json:"auto_generate"`
}

// FieldValue is a typed form value. Exactly one payload field is meaningful,
// selected by Kind; ValidateFormValues produces these from raw submissions.
type FieldValue struct {
	FieldID string    `json:"field_id"`
	Kind    FieldType `json:"kind"`

	Text     string    `json:"text,omitempty"`
	Option   string    `json:"option,omitempty"`
	Amount   float64   `json:"amount,omitempty"`
	Date     time.Time `json:"date,omitempty"`
	Range    DateRange `json:"range,omitempty"`
	FileName string    `json:"file_name,omitempty"`
}

// FormConfigFor returns the submission form schema for a request type.
func FormConfigFor(requestType RequestType) FormConfig {
	cfg := FormConfig{
		RequestType:             requestType,
		FormFields:              []FormField{},
		RequiredDocuments:       []string{},
		ApprovalWorkflow:        requestType,
		EstimatedProcessingDays: 3,
	}

	switch requestType {
	case TypeLeave:
		cfg.FormFields = []FormField{
			{FieldID: "leaveType", FieldName: "Leave Type", FieldType: FieldSelect, IsRequired: true, Options: []string{"Annual", "Sick", "Emergency", "Maternity/Paternity", "Hajj/Umrah"}},
			{FieldID: "dateRange", FieldName: "Leave Dates", FieldType: FieldDateRange, IsRequired: true},
			{FieldID: "reason", FieldName: "Reason", FieldType: FieldTextarea, IsRequired: true},
			{FieldID: "emergencyContact", FieldName: "Emergency Contact", FieldType: FieldText, IsRequired: false},
		}
		cfg.RequiredDocuments = []string{"Medical Report (for sick leave)"}
		cfg.EstimatedProcessingDays = 2

	case TypeSalaryCertificate:
		cfg.FormFields = []FormField{
			{FieldID: "purpose", FieldName: "Purpose", FieldType: FieldSelect, IsRequired: true, Options: []string{"Bank Loan", "Visa Application", "Embassy", "Other"}},
			{FieldID: "language", FieldName: "Language", FieldType: FieldSelect, IsRequired: true, Options: []string{"English", "Arabic", "Both"}},
			{FieldID: "additionalInfo", FieldName: "Additional Information", FieldType: FieldTextarea, IsRequired: false},
		}
		cfg.EstimatedProcessingDays = 1
		cfg.AutoGenerate = true

	case TypeVacationSalaryAdvance:
		cfg.FormFields = []FormField{
			{FieldID: "amount", FieldName: "Requested Amount", FieldType: FieldCurrency, IsRequired: true, Validation: &FieldValidation{Min: 1000, Max: 10000}},
			{FieldID: "reason", FieldName: "Reason", FieldType: FieldTextarea, IsRequired: true},
			{FieldID: "repaymentMethod", FieldName: "Repayment Method", FieldType: FieldSelect, IsRequired: true, Options: []string{"Salary Deduction", "Lump Sum"}},
		}
		cfg.EstimatedProcessingDays = 5

	case TypeMedicalReimbursement:
		cfg.FormFields = []FormField{
			{FieldID: "amount", FieldName: "Claim Amount", FieldType: FieldCurrency, IsRequired: true},
			{FieldID: "description", FieldName: "Medical Service Description", FieldType: FieldTextarea, IsRequired: true},
			{FieldID: "provider", FieldName: "Healthcare Provider", FieldType: FieldText, IsRequired: true},
			{FieldID: "attachments", FieldName: "Receipts/Reports", FieldType: FieldFile, IsRequired: true},
		}
		cfg.RequiredDocuments = []string{"Medical Receipts", "Medical Reports"}
		cfg.EstimatedProcessingDays = 7

	case TypeExitClearance:
		cfg.FormFields = []FormField{
			{FieldID: "lastWorkingDay", FieldName: "Last Working Day", FieldType: FieldDate, IsRequired: true},
			{FieldID: "reason", FieldName: "Reason for Leaving", FieldType: FieldSelect, IsRequired: true, Options: []string{"Resignation", "Contract Expiry", "Transfer", "Other"}},
			{FieldID: "handoverPlan", FieldName: "Handover Plan", FieldType: FieldTextarea, IsRequired: true},
		}
		cfg.EstimatedProcessingDays = 10
	}

	return cfg
}

// ValidateFormValues checks a raw field-value bag against the form schema
// and returns typed values. Unknown fields are rejected so a client cannot
// smuggle data past the schema.
func ValidateFormValues(cfg FormConfig, raw map[string]any) ([]FieldValue, error) {
	fields := make(map[string]FormField, len(cfg.FormFields))
	for _, f := range cfg.FormFields {
		fields[f.FieldID] = f
	}

	for id := range raw {
		if _, ok := fields[id]; !ok {
			return nil, workflowerrors.FieldError(id, "not part of this request form")
		}
	}

	values := make([]FieldValue, 0, len(raw))
	for _, field := range cfg.FormFields {
		v, present := raw[field.FieldID]
		if !present || v == nil {
			if field.IsRequired {
				return nil, workflowerrors.FieldError(field.FieldID, "is required")
			}
			continue
		}
		fv, err := coerceFieldValue(field, v)
		if err != nil {
			return nil, err
		}
		values = append(values, fv)
	}
	return values, nil
}

func coerceFieldValue(field FormField, v any) (FieldValue, error) {
	out := FieldValue{FieldID: field.FieldID, Kind: field.FieldType}

	switch field.FieldType {
	case FieldText, FieldTextarea:
		s, ok := v.(string)
		if !ok || (field.IsRequired && s == "") {
			return out, workflowerrors.FieldError(field.FieldID, "must be a non-empty string")
		}
		out.Text = s

	case FieldSelect:
		s, ok := v.(string)
		if !ok {
			return out, workflowerrors.FieldError(field.FieldID, "must be a string option")
		}
		for _, opt := range field.Options {
			if opt == s {
				out.Option = s
				return out, nil
			}
		}
		return out, workflowerrors.FieldError(field.FieldID, "is not an allowed option")

	case FieldCurrency:
		amount, ok := toFloat(v)
		if !ok {
			return out, workflowerrors.FieldError(field.FieldID, "must be a number")
		}
		if field.Validation != nil {
			if amount < field.Validation.Min {
				return out, workflowerrors.FieldError(field.FieldID, "is below the minimum amount")
			}
			if field.Validation.Max > 0 && amount > field.Validation.Max {
				return out, workflowerrors.FieldError(field.FieldID, "exceeds the maximum amount")
			}
		}
		out.Amount = amount

	case FieldDate:
		s, ok := v.(string)
		if !ok {
			return out, workflowerrors.FieldError(field.FieldID, "must be a YYYY-MM-DD date string")
		}
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return out, workflowerrors.ErrInvalidDate
		}
		out.Date = d

	case FieldDateRange:
		m, ok := v.(map[string]any)
		if !ok {
			return out, workflowerrors.FieldError(field.FieldID, "must be an object with start_date and end_date")
		}
		start, err := parseDateField(m, "start_date")
		if err != nil {
			return out, err
		}
		end, err := parseDateField(m, "end_date")
		if err != nil {
			return out, err
		}
		if end.Before(start) {
			return out, workflowerrors.ErrInvalidDateRange
		}
		out.Range = DateRange{
			StartDate: start,
			EndDate:   end,
			TotalDays: int(end.Sub(start).Hours()/24) + 1,
		}

	case FieldFile:
		s, ok := v.(string)
		if !ok || s == "" {
			return out, workflowerrors.FieldError(field.FieldID, "must reference an uploaded file name")
		}
		out.FileName = s

	default:
		return out, apperror.New(apperror.CodeInternalError, "unknown field type in form config", 500)
	}

	return out, nil
}

func parseDateField(m map[string]any, key string) (time.Time, error) {
	s, ok := m[key].(string)
	if !ok {
		return time.Time{}, workflowerrors.ErrInvalidDate
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, workflowerrors.ErrInvalidDate
	}
	return d, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
