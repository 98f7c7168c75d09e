package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hrflow/internal/payroll"
)

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func baseInput() payroll.CalculationInput {
	return payroll.CalculationInput{
		EmployeeID:  "EMP-001",
		BasicSalary: 8500,
		Allowances: payroll.Allowances{
			Housing:         2000,
			Transport:       500,
			TotalAllowances: 2500,
		},
		Attendance: payroll.AttendanceData{
			RegularHours:       176,
			AverageDailyHours:  8,
			AverageWeeklyHours: 44,
		},
		Contract: payroll.ContractInfo{
			StartDate:   date("2022-03-15"),
			Nationality: "Indian",
			Salary:      8500,
		},
	}
}

func TestCalculateAt_GOSIContributions(t *testing.T) {
	calc := payroll.CalculateAt(baseInput(), date("2026-06-30"))

	assert.Equal(t, 765.00, calc.GOSI.EmployeeContribution)
	assert.Equal(t, 935.00, calc.GOSI.EmployerContribution)
	assert.Equal(t, 1700.00, calc.GOSI.TotalContribution)
	assert.False(t, calc.GOSI.CeilingApplied)
	assert.Equal(t, 8500.00, calc.GOSI.BasicSalaryForGOSI)
}

func TestCalculateAt_GOSICeiling(t *testing.T) {
	input := baseInput()
	input.BasicSalary = 50000
	input.Contract.Salary = 50000

	calc := payroll.CalculateAt(input, date("2026-06-30"))

	assert.True(t, calc.GOSI.CeilingApplied)
	assert.Equal(t, 45000.00, calc.GOSI.BasicSalaryForGOSI)
	assert.Equal(t, 4050.00, calc.GOSI.EmployeeContribution)
	assert.Equal(t, 4950.00, calc.GOSI.EmployerContribution)
	assert.Equal(t, float64(payroll.GOSICeiling), calc.GOSI.CeilingAmount)
}

func TestCalculateAt_GOSIExempt(t *testing.T) {
	input := baseInput()
	input.Contract.GOSIExempt = true

	calc := payroll.CalculateAt(input, date("2026-06-30"))

	assert.True(t, calc.GOSI.IsExempt)
	assert.Zero(t, calc.GOSI.EmployeeContribution)
	assert.Zero(t, calc.GOSI.EmployerContribution)
	assert.Zero(t, calc.GOSI.TotalContribution)
}

func TestCalculateAt_NetPayInvariant(t *testing.T) {
	calc := payroll.CalculateAt(baseInput(), date("2026-06-30"))

	assert.InDelta(t, calc.GrossPay-calc.Deductions.TotalDeductions, calc.NetPay, 1e-9)
	assert.Equal(t, 8500.00+2500.00, calc.GrossPay)
	assert.Equal(t, 8500.00+2500.00-765.00, calc.NetPay)
}

func TestCalculateAt_EOSAccrualTiers(t *testing.T) {
	t.Run("under five years uses half-month accrual", func(t *testing.T) {
		input := baseInput()
		input.Contract.StartDate = date("2024-01-01")

		calc := payroll.CalculateAt(input, date("2026-06-30"))

		dailyRate := 8500.0 / 30
		assert.InDelta(t, dailyRate, calc.EOSAccrual.DailyRate, 1e-9)
		assert.InDelta(t, dailyRate*15/12, calc.EOSAccrual.MonthlyAccrual, 1e-9)
		assert.Equal(t, 2, calc.EOSAccrual.CurrentServiceYears)
	})

	t.Run("over five years uses full-month accrual", func(t *testing.T) {
		input := baseInput()
		input.Contract.StartDate = date("2018-01-01")

		calc := payroll.CalculateAt(input, date("2026-06-30"))

		dailyRate := 8500.0 / 30
		assert.InDelta(t, dailyRate*30/12, calc.EOSAccrual.MonthlyAccrual, 1e-9)
		assert.Equal(t, 8, calc.EOSAccrual.CurrentServiceYears)

		// 5 years * 15 days + 3 years * 30 days + 5 months pro-rata at 30/12.
		wantDays := 5*15.0 + 3*30.0 + 5*(30.0/12)
		assert.InDelta(t, wantDays*dailyRate, calc.EOSAccrual.TotalAccrued, 1e-6)
	})

	t.Run("year to date follows the calendar month", func(t *testing.T) {
		calc := payroll.CalculateAt(baseInput(), date("2026-06-30"))
		assert.InDelta(t, calc.EOSAccrual.MonthlyAccrual*6, calc.EOSAccrual.YearToDateAccrual, 1e-9)
	})
}

func TestCalculateAt_Overtime(t *testing.T) {
	input := baseInput()
	input.Attendance.OvertimeHours = 10
	input.Attendance.HolidayOvertimeHours = 4

	calc := payroll.CalculateAt(input, date("2026-06-30"))

	hourly := 8500.0 / (30 * 8)
	assert.InDelta(t, hourly*1.5, calc.Overtime.OvertimeRate, 1e-9)
	assert.InDelta(t, hourly*2.0, calc.Overtime.HolidayOvertimeRate, 1e-9)
	assert.InDelta(t, 10*hourly*1.5+4*hourly*2.0, calc.Overtime.TotalOvertimeAmount, 1e-9)
	assert.False(t, calc.Overtime.ApprovalRequired)
}

func TestCalculateAt_OvertimeApprovalRequired(t *testing.T) {
	input := baseInput()
	input.Attendance.OvertimeHours = 20
	input.Attendance.HolidayOvertimeHours = 10

	calc := payroll.CalculateAt(input, date("2026-06-30"))

	assert.True(t, calc.Overtime.ApprovalRequired)

	var approvalCheck *payroll.ComplianceCheck
	for i := range calc.ComplianceChecks {
		if calc.ComplianceChecks[i].CheckType == "overtime_approval" {
			approvalCheck = &calc.ComplianceChecks[i]
		}
	}
	if assert.NotNil(t, approvalCheck) {
		assert.False(t, approvalCheck.Passed)
		assert.Equal(t, payroll.SeverityError, approvalCheck.Severity)
	}

	input.Attendance.ApprovedBy = "MGR-001"
	calc = payroll.CalculateAt(input, date("2026-06-30"))
	assert.Equal(t, "MGR-001", calc.Overtime.ApprovedBy)
}

func TestCalculateAt_ComplianceViolationsDoNotFail(t *testing.T) {
	input := baseInput()
	input.BasicSalary = 2500
	input.Contract.Salary = 2500
	input.Attendance.AverageDailyHours = 10
	input.Attendance.AverageWeeklyHours = 55

	calc := payroll.CalculateAt(input, date("2026-06-30"))

	bySeverity := map[string]payroll.CheckSeverity{}
	for _, check := range calc.ComplianceChecks {
		if !check.Passed {
			bySeverity[check.CheckType] = check.Severity
		}
	}
	assert.Equal(t, payroll.SeverityError, bySeverity["minimum_wage"])
	assert.Equal(t, payroll.SeverityWarning, bySeverity["max_daily_hours"])
	assert.Equal(t, payroll.SeverityWarning, bySeverity["max_weekly_hours"])

	// Computation still completed.
	assert.NotZero(t, calc.NetPay)
	assert.Equal(t, "calculated", calc.Status)
}

func TestCalculateAt_NegativeNetPayFlaggedCritical(t *testing.T) {
	input := baseInput()
	input.Allowances.TotalDeductions = 20000

	calc := payroll.CalculateAt(input, date("2026-06-30"))

	assert.Less(t, calc.NetPay, 0.0)
	var netRule *payroll.ValidationResult
	for i := range calc.ValidationResults {
		if calc.ValidationResults[i].RuleID == "NET_PAY_POSITIVE" {
			netRule = &calc.ValidationResults[i]
		}
	}
	if assert.NotNil(t, netRule) {
		assert.False(t, netRule.Passed)
		assert.Equal(t, payroll.SeverityCritical, netRule.Severity)
		assert.InDelta(t, -calc.NetPay, netRule.AffectedAmount, 1e-9)
	}
}

func TestCalculateAt_AuditTrail(t *testing.T) {
	calc := payroll.CalculateAt(baseInput(), date("2026-06-30"))

	if assert.Len(t, calc.AuditTrail, 5) {
		wantSteps := []string{
			"validate_basic_salary",
			"calculate_gosi",
			"calculate_eos_accrual",
			"calculate_overtime",
			"calculate_net_pay",
		}
		for i, step := range calc.AuditTrail {
			assert.Equal(t, i+1, step.StepNumber)
			assert.Equal(t, wantSteps[i], step.Operation)
		}
		assert.NotEmpty(t, calc.AuditTrail[1].Formula)
		assert.NotEmpty(t, calc.AuditTrail[4].Formula)
	}
}

func TestCalculateAt_WPSEligibility(t *testing.T) {
	calc := payroll.CalculateAt(baseInput(), date("2026-06-30"))
	assert.True(t, calc.WPSEligible)

	saudi := baseInput()
	saudi.Contract.Nationality = "Saudi"
	assert.False(t, payroll.CalculateAt(saudi, date("2026-06-30")).WPSEligible)

	lowPaid := baseInput()
	lowPaid.Contract.Salary = 2500
	assert.False(t, payroll.CalculateAt(lowPaid, date("2026-06-30")).WPSEligible)
}

func TestSummarizeRun(t *testing.T) {
	asOf := date("2026-06-30")

	compliant := payroll.CalculateAt(baseInput(), asOf)

	belowMinimum := baseInput()
	belowMinimum.EmployeeID = "EMP-002"
	belowMinimum.BasicSalary = 2500
	belowMinimum.Contract.Salary = 2500
	nonCompliant := payroll.CalculateAt(belowMinimum, asOf)

	summary := payroll.SummarizeRun([]payroll.Calculation{compliant, nonCompliant})

	assert.Equal(t, 2, summary.TotalEmployees)
	assert.Equal(t, 1, summary.CompliantEmployees)
	assert.Equal(t, 1, summary.NonCompliantEmployees)
	assert.Equal(t, 50.00, summary.ComplianceRate)
	assert.InDelta(t, compliant.GrossPay+nonCompliant.GrossPay, summary.TotalGrossPay, 1e-9)
	assert.Equal(t, 1, summary.WPSEligibleEmployees)
	assert.InDelta(t, compliant.NetPay, summary.TotalWPSAmount, 1e-9)
	assert.Equal(t, "2026-06", summary.ReportPeriod)
}

func TestSummarizeRun_Empty(t *testing.T) {
	summary := payroll.SummarizeRun(nil)
	assert.Zero(t, summary.TotalEmployees)
	assert.Zero(t, summary.ComplianceRate)
}
