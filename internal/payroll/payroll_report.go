package payroll

import "time"

type RunSummary struct {
	TotalEmployees   int     `json:"total_employees"`
	TotalGrossPay    float64 `json:"total_gross_pay"`
	TotalNetPay      float64 `json:"total_net_pay"`
	TotalGOSIEmployee float64 `json:"total_gosi_employee"`
	TotalGOSIEmployer float64 `json:"total_gosi_employer"`
	TotalOvertime    float64 `json:"total_overtime"`
	ComplianceRate   float64 `json:"compliance_rate"`

	CompliantEmployees    int `json:"compliant_employees"`
	NonCompliantEmployees int `json:"non_compliant_employees"`
	CriticalIssues        int `json:"critical_issues"`

	WPSEligibleEmployees int     `json:"wps_eligible_employees"`
	TotalWPSAmount       float64 `json:"total_wps_amount"`

	GeneratedAt  time.Time `json:"generated_at"`
	ReportPeriod string    `json:"report_period"`
}

// SummarizeRun aggregates a batch of calculations into run-level totals and
// compliance counters. An employee is non-compliant when any error-severity
// compliance check failed.
func SummarizeRun(records []Calculation) RunSummary {
	summary := RunSummary{
		TotalEmployees: len(records),
		GeneratedAt:    time.Now().UTC(),
	}
	if len(records) == 0 {
		return summary
	}
	summary.ReportPeriod = records[0].PayPeriod

	for _, record := range records {
		summary.TotalGrossPay += record.GrossPay
		summary.TotalNetPay += record.NetPay
		summary.TotalGOSIEmployee += record.GOSI.EmployeeContribution
		summary.TotalGOSIEmployer += record.GOSI.EmployerContribution
		summary.TotalOvertime += record.Overtime.TotalOvertimeAmount

		if hasComplianceError(record) {
			summary.NonCompliantEmployees++
		}
		if hasCriticalValidation(record) {
			summary.CriticalIssues++
		}

		if record.WPSEligible {
			summary.WPSEligibleEmployees++
			summary.TotalWPSAmount += record.NetPay
		}
	}

	summary.CompliantEmployees = summary.TotalEmployees - summary.NonCompliantEmployees
	summary.ComplianceRate = round2(float64(summary.CompliantEmployees) / float64(summary.TotalEmployees) * 100)

	return summary
}

func hasComplianceError(record Calculation) bool {
	for _, check := range record.ComplianceChecks {
		if !check.Passed && check.Severity == SeverityError {
			return true
		}
	}
	return false
}

func hasCriticalValidation(record Calculation) bool {
	for _, result := range record.ValidationResults {
		if result.Severity == SeverityCritical && !result.Passed {
			return true
		}
	}
	return false
}
