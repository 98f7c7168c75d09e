package payroll

import "time"

// Allowances itemizes the recurring monthly additions and deductions that
// arrive alongside the basic salary.
type Allowances struct {
	Housing         float64 `json:"housing"`
	Transport       float64 `json:"transport"`
	Other           float64 `json:"other"`
	TotalAllowances float64 `json:"total_allowances"`
	TotalDeductions float64 `json:"total_deductions"`
}

type AttendanceData struct {
	RegularHours         float64 `json:"regular_hours"`
	OvertimeHours        float64 `json:"overtime_hours"`
	HolidayOvertimeHours float64 `json:"holiday_overtime_hours"`
	AverageDailyHours    float64 `json:"average_daily_hours"`
	AverageWeeklyHours   float64 `json:"average_weekly_hours"`
	// ApprovedBy is the supervisor who signed off the overtime, when one did.
	ApprovedBy string `json:"approved_by,omitempty"`
}

type ContractInfo struct {
	StartDate   time.Time `json:"start_date"`
	GOSIExempt  bool      `json:"gosi_exempt"`
	Nationality string    `json:"nationality"`
	Salary      float64   `json:"salary"`
}

type CalculationInput struct {
	EmployeeID  string
	BasicSalary float64
	Allowances  Allowances
	Attendance  AttendanceData
	Contract    ContractInfo
}

type GOSICalculation struct {
	BasicSalaryForGOSI   float64 `json:"basic_salary_for_gosi"`
	EmployeeRate         float64 `json:"employee_rate"`
	EmployerRate         float64 `json:"employer_rate"`
	EmployeeContribution float64 `json:"employee_contribution"`
	EmployerContribution float64 `json:"employer_contribution"`
	TotalContribution    float64 `json:"total_contribution"`
	IsExempt             bool    `json:"is_exempt"`
	ExemptionReason      string  `json:"exemption_reason,omitempty"`
	CeilingApplied       bool    `json:"ceiling_applied"`
	CeilingAmount        float64 `json:"ceiling_amount,omitempty"`
}

type EOSAccrual struct {
	CurrentServiceYears  int       `json:"current_service_years"`
	CurrentServiceMonths int       `json:"current_service_months"`
	DailyRate            float64   `json:"daily_rate"`
	MonthlyAccrual       float64   `json:"monthly_accrual"`
	YearToDateAccrual    float64   `json:"year_to_date_accrual"`
	TotalAccrued         float64   `json:"total_accrued"`
	CalculationMethod    string    `json:"calculation_method"`
	LastCalculationDate  time.Time `json:"last_calculation_date"`
}

type OvertimeCalculation struct {
	RegularHours         float64 `json:"regular_hours"`
	OvertimeHours        float64 `json:"overtime_hours"`
	OvertimeRate         float64 `json:"overtime_rate"`
	OvertimeAmount       float64 `json:"overtime_amount"`
	HolidayOvertimeHours float64 `json:"holiday_overtime_hours"`
	HolidayOvertimeRate  float64 `json:"holiday_overtime_rate"`
	HolidayOvertimeAmount float64 `json:"holiday_overtime_amount"`
	TotalOvertimeAmount  float64 `json:"total_overtime_amount"`
	ApprovalRequired     bool    `json:"approval_required"`
	ApprovedBy           string  `json:"approved_by,omitempty"`
}

type CheckSeverity string

const (
	SeverityInfo     CheckSeverity = "info"
	SeverityWarning  CheckSeverity = "warning"
	SeverityError    CheckSeverity = "error"
	SeverityCritical CheckSeverity = "critical"
)

type ComplianceCheck struct {
	CheckType string        `json:"check_type"`
	CheckName string        `json:"check_name"`
	Passed    bool          `json:"passed"`
	Value     any           `json:"value"`
	Threshold any           `json:"threshold"`
	Message   string        `json:"message"`
	Severity  CheckSeverity `json:"severity"`
}

type ValidationResult struct {
	RuleID         string        `json:"rule_id"`
	RuleName       string        `json:"rule_name"`
	Passed         bool          `json:"passed"`
	Message        string        `json:"message"`
	Severity       CheckSeverity `json:"severity"`
	AffectedAmount float64       `json:"affected_amount,omitempty"`
	SuggestedFix   string        `json:"suggested_fix,omitempty"`
	AutoFixApplied bool          `json:"auto_fix_applied"`
}

type CalculationStep struct {
	StepNumber  int            `json:"step_number"`
	StepName    string         `json:"step_name"`
	Operation   string         `json:"operation"`
	InputValues map[string]any `json:"input_values"`
	OutputValue any            `json:"output_value"`
	Formula     string         `json:"formula,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	Notes       string         `json:"notes,omitempty"`
}

type Deductions struct {
	GOSIEmployee    float64 `json:"gosi_employee"`
	Insurance       float64 `json:"insurance"`
	Loans           float64 `json:"loans"`
	Advances        float64 `json:"advances"`
	Penalties       float64 `json:"penalties"`
	Other           float64 `json:"other"`
	TotalDeductions float64 `json:"total_deductions"`
}

// Calculation is one employee's payroll for one pay period. Every derived
// figure is traceable to an AuditTrail entry.
type Calculation struct {
	ID                string              `json:"id"`
	EmployeeID        string              `json:"employee_id"`
	PayPeriod         string              `json:"pay_period"`
	CalculationDate   time.Time           `json:"calculation_date"`
	BasicSalary       float64             `json:"basic_salary"`
	Allowances        Allowances          `json:"allowances"`
	Deductions        Deductions          `json:"deductions"`
	GOSI              GOSICalculation     `json:"gosi_calculation"`
	EOSAccrual        EOSAccrual          `json:"eos_accrual"`
	Overtime          OvertimeCalculation `json:"overtime_calculation"`
	ComplianceChecks  []ComplianceCheck   `json:"compliance_checks"`
	GrossPay          float64             `json:"gross_pay"`
	NetPay            float64             `json:"net_pay"`
	ValidationResults []ValidationResult  `json:"validation_results"`
	AuditTrail        []CalculationStep   `json:"calculation_audit_trail"`
	Status            string              `json:"status"`
	ProcessedBy       string              `json:"processed_by"`
	WPSEligible       bool                `json:"wps_eligible"`
}
