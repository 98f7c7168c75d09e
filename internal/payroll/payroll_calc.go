package payroll

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Saudi labor law constants.
const (
	GOSIEmployeeRate    = 0.09
	GOSIEmployerRate    = 0.11
	GOSICeiling         = 45000 // SAR monthly ceiling
	OvertimeRate        = 1.5
	HolidayOvertimeRate = 2.0
	MaxDailyHours       = 8
	MaxWeeklyHours      = 48
	MinimumWage         = 3000 // SAR

	// Overtime above this share of basic salary needs a recorded approver.
	overtimeApprovalShare = 0.10
)

// Calculate computes the payroll for the current pay period.
func Calculate(input CalculationInput) Calculation {
	return CalculateAt(input, time.Now().UTC())
}

// CalculateAt computes the payroll as of the given date. It never fails on
// out-of-range figures: violations are recorded as compliance or validation
// findings so the result stays auditable, and the caller decides how to act.
func CalculateAt(input CalculationInput, asOf time.Time) Calculation {
	trail := make([]CalculationStep, 0, 5)

	trail = append(trail, CalculationStep{
		StepNumber: 1,
		StepName:   "Basic Salary Validation",
		Operation:  "validate_basic_salary",
		InputValues: map[string]any{
			"basic_salary":    input.BasicSalary,
			"contract_salary": input.Contract.Salary,
		},
		OutputValue: input.BasicSalary,
		Timestamp:   asOf,
		Notes:       "Validated basic salary against contract",
	})

	gosi := calculateGOSI(input.BasicSalary, input.Contract.GOSIExempt)
	trail = append(trail, CalculationStep{
		StepNumber: 2,
		StepName:   "GOSI Calculation",
		Operation:  "calculate_gosi",
		InputValues: map[string]any{
			"basic_salary": input.BasicSalary,
			"is_exempt":    input.Contract.GOSIExempt,
		},
		OutputValue: gosi,
		Formula: fmt.Sprintf("Employee: min(%.2f, %d) * %.2f, Employer: min(%.2f, %d) * %.2f",
			input.BasicSalary, GOSICeiling, GOSIEmployeeRate,
			input.BasicSalary, GOSICeiling, GOSIEmployerRate),
		Timestamp: asOf,
	})

	eos := calculateEOSAccrual(input.BasicSalary, input.Contract.StartDate, asOf)
	trail = append(trail, CalculationStep{
		StepNumber: 3,
		StepName:   "EOS Accrual",
		Operation:  "calculate_eos_accrual",
		InputValues: map[string]any{
			"basic_salary": input.BasicSalary,
			"start_date":   input.Contract.StartDate,
		},
		OutputValue: eos,
		Timestamp:   asOf,
	})

	overtime := calculateOvertime(input.BasicSalary, input.Attendance)
	trail = append(trail, CalculationStep{
		StepNumber: 4,
		StepName:   "Overtime Calculation",
		Operation:  "calculate_overtime",
		InputValues: map[string]any{
			"basic_salary":           input.BasicSalary,
			"overtime_hours":         input.Attendance.OvertimeHours,
			"holiday_overtime_hours": input.Attendance.HolidayOvertimeHours,
		},
		OutputValue: overtime,
		Timestamp:   asOf,
	})

	checks := performComplianceChecks(input.BasicSalary, input.Attendance, overtime)

	grossPay := input.BasicSalary + input.Allowances.TotalAllowances + overtime.TotalOvertimeAmount
	totalDeductions := gosi.EmployeeContribution + input.Allowances.TotalDeductions
	netPay := grossPay - totalDeductions

	trail = append(trail, CalculationStep{
		StepNumber: 5,
		StepName:   "Final Calculation",
		Operation:  "calculate_net_pay",
		InputValues: map[string]any{
			"gross_pay":        grossPay,
			"total_deductions": totalDeductions,
		},
		OutputValue: netPay,
		Formula:     fmt.Sprintf("%.2f - %.2f = %.2f", grossPay, totalDeductions, netPay),
		Timestamp:   asOf,
	})

	validations := validateCalculation(input.BasicSalary, netPay, gosi, overtime)

	return Calculation{
		ID:              fmt.Sprintf("PAY-%s-%s", input.EmployeeID, uuid.New().String()),
		EmployeeID:      input.EmployeeID,
		PayPeriod:       asOf.Format("2006-01"),
		CalculationDate: asOf,
		BasicSalary:     input.BasicSalary,
		Allowances:      input.Allowances,
		Deductions: Deductions{
			GOSIEmployee:    gosi.EmployeeContribution,
			Other:           input.Allowances.TotalDeductions,
			TotalDeductions: totalDeductions,
		},
		GOSI:              gosi,
		EOSAccrual:        eos,
		Overtime:          overtime,
		ComplianceChecks:  checks,
		GrossPay:          grossPay,
		NetPay:            netPay,
		ValidationResults: validations,
		AuditTrail:        trail,
		Status:            "calculated",
		ProcessedBy:       "SYSTEM",
		WPSEligible:       isWPSEligible(input.Contract),
	}
}

func calculateGOSI(basicSalary float64, isExempt bool) GOSICalculation {
	if isExempt {
		return GOSICalculation{
			BasicSalaryForGOSI: basicSalary,
			IsExempt:           true,
			ExemptionReason:    "Employee exempt from GOSI",
		}
	}

	salaryForGOSI := math.Min(basicSalary, GOSICeiling)
	ceilingApplied := basicSalary > GOSICeiling

	employeeContribution := round2(salaryForGOSI * GOSIEmployeeRate)
	employerContribution := round2(salaryForGOSI * GOSIEmployerRate)

	calc := GOSICalculation{
		BasicSalaryForGOSI:   salaryForGOSI,
		EmployeeRate:         GOSIEmployeeRate,
		EmployerRate:         GOSIEmployerRate,
		EmployeeContribution: employeeContribution,
		EmployerContribution: employerContribution,
		TotalContribution:    employeeContribution + employerContribution,
		CeilingApplied:       ceilingApplied,
	}
	if ceilingApplied {
		calc.CeilingAmount = GOSICeiling
	}
	return calc
}

// calculateEOSAccrual applies the tenure tiers of Saudi labor law: half a
// month's pay per year for the first five years of service, a full month
// after that.
//
// YearToDateAccrual multiplies the monthly accrual by the calendar month
// number, not by months elapsed since hire. Downstream reports depend on this
// running total as-is; see DESIGN.md before changing it.
func calculateEOSAccrual(basicSalary float64, startDate, asOf time.Time) EOSAccrual {
	serviceMonths := monthsBetween(startDate, asOf)
	serviceYears := serviceMonths / 12

	dailyRate := basicSalary / 30
	var monthlyAccrual float64
	if serviceYears < 5 {
		monthlyAccrual = dailyRate * 15 / 12
	} else {
		monthlyAccrual = dailyRate * 30 / 12
	}

	yearToDateAccrual := monthlyAccrual * float64(asOf.Month())
	totalAccrued := totalEOSAccrued(basicSalary, serviceYears, serviceMonths)

	return EOSAccrual{
		CurrentServiceYears:  serviceYears,
		CurrentServiceMonths: serviceMonths,
		DailyRate:            dailyRate,
		MonthlyAccrual:       monthlyAccrual,
		YearToDateAccrual:    yearToDateAccrual,
		TotalAccrued:         totalAccrued,
		CalculationMethod:    "progressive",
		LastCalculationDate:  asOf,
	}
}

func totalEOSAccrued(basicSalary float64, serviceYears, serviceMonths int) float64 {
	dailyRate := basicSalary / 30
	totalDays := float64(min(serviceYears, 5) * 15)

	if serviceYears > 5 {
		totalDays += float64((serviceYears - 5) * 30)
	}

	// Pro-rata for the partial year in progress.
	if serviceMonths%12 > 0 {
		currentYearMonths := float64(serviceMonths % 12)
		daysPerMonth := 30.0 / 12
		if serviceYears < 5 {
			daysPerMonth = 15.0 / 12
		}
		totalDays += currentYearMonths * daysPerMonth
	}

	return totalDays * dailyRate
}

func calculateOvertime(basicSalary float64, attendance AttendanceData) OvertimeCalculation {
	regularHourlyRate := basicSalary / (30 * 8)
	overtimeRate := regularHourlyRate * OvertimeRate
	holidayOvertimeRate := regularHourlyRate * HolidayOvertimeRate

	overtimeAmount := attendance.OvertimeHours * overtimeRate
	holidayOvertimeAmount := attendance.HolidayOvertimeHours * holidayOvertimeRate
	totalOvertimeAmount := overtimeAmount + holidayOvertimeAmount

	approvalRequired := totalOvertimeAmount > basicSalary*overtimeApprovalShare

	calc := OvertimeCalculation{
		RegularHours:          attendance.RegularHours,
		OvertimeHours:         attendance.OvertimeHours,
		OvertimeRate:          overtimeRate,
		OvertimeAmount:        overtimeAmount,
		HolidayOvertimeHours:  attendance.HolidayOvertimeHours,
		HolidayOvertimeRate:   holidayOvertimeRate,
		HolidayOvertimeAmount: holidayOvertimeAmount,
		TotalOvertimeAmount:   totalOvertimeAmount,
		ApprovalRequired:      approvalRequired,
	}
	if approvalRequired {
		calc.ApprovedBy = attendance.ApprovedBy
	}
	return calc
}

func performComplianceChecks(
	basicSalary float64,
	attendance AttendanceData,
	overtime OvertimeCalculation,
) []ComplianceCheck {
	checks := make([]ComplianceCheck, 0, 4)

	meetsMinimum := basicSalary >= MinimumWage
	checks = append(checks, ComplianceCheck{
		CheckType: "minimum_wage",
		CheckName: "Minimum Wage Compliance",
		Passed:    meetsMinimum,
		Value:     basicSalary,
		Threshold: float64(MinimumWage),
		Message:   pick(meetsMinimum, "Salary meets minimum wage requirement", "Salary below minimum wage"),
		Severity:  pickSeverity(meetsMinimum, SeverityError),
	})

	dailyOK := attendance.AverageDailyHours <= MaxDailyHours
	checks = append(checks, ComplianceCheck{
		CheckType: "max_daily_hours",
		CheckName: "Maximum Daily Hours",
		Passed:    dailyOK,
		Value:     attendance.AverageDailyHours,
		Threshold: float64(MaxDailyHours),
		Message:   pick(dailyOK, "Daily hours within legal limit", "Daily hours exceed legal limit"),
		Severity:  pickSeverity(dailyOK, SeverityWarning),
	})

	weeklyOK := attendance.AverageWeeklyHours <= MaxWeeklyHours
	checks = append(checks, ComplianceCheck{
		CheckType: "max_weekly_hours",
		CheckName: "Maximum Weekly Hours",
		Passed:    weeklyOK,
		Value:     attendance.AverageWeeklyHours,
		Threshold: float64(MaxWeeklyHours),
		Message:   pick(weeklyOK, "Weekly hours within legal limit", "Weekly hours exceed legal limit"),
		Severity:  pickSeverity(weeklyOK, SeverityWarning),
	})

	if overtime.ApprovalRequired {
		approved := overtime.ApprovedBy != ""
		value := overtime.ApprovedBy
		if value == "" {
			value = "Not Approved"
		}
		checks = append(checks, ComplianceCheck{
			CheckType: "overtime_approval",
			CheckName: "Overtime Approval Required",
			Passed:    approved,
			Value:     value,
			Threshold: "Required",
			Message:   pick(approved, "Overtime approved by supervisor", "Overtime requires approval"),
			Severity:  pickSeverity(approved, SeverityError),
		})
	}

	return checks
}

func validateCalculation(
	basicSalary, netPay float64,
	gosi GOSICalculation,
	overtime OvertimeCalculation,
) []ValidationResult {
	results := make([]ValidationResult, 0, 3)

	netPositive := netPay >= 0
	netResult := ValidationResult{
		RuleID:   "NET_PAY_POSITIVE",
		RuleName: "Net Pay Positive",
		Passed:   netPositive,
		Message:  pick(netPositive, "Net pay is positive", "Net pay cannot be negative"),
		Severity: pickSeverity(netPositive, SeverityCritical),
	}
	if !netPositive {
		netResult.AffectedAmount = math.Abs(netPay)
		netResult.SuggestedFix = "Review deductions and allowances"
	}
	results = append(results, netResult)

	gosiValid := gosi.EmployeeContribution <= GOSICeiling*GOSIEmployeeRate
	results = append(results, ValidationResult{
		RuleID:         "GOSI_LIMIT",
		RuleName:       "GOSI Contribution Limit",
		Passed:         gosiValid,
		Message:        pick(gosiValid, "GOSI contribution within limits", "GOSI contribution exceeds maximum"),
		Severity:       pickSeverity(gosiValid, SeverityError),
		AutoFixApplied: !gosiValid, // ceiling re-applied downstream
	})

	overtimeValid := overtime.OvertimeRate >= basicSalary/(30*8)*OvertimeRate
	results = append(results, ValidationResult{
		RuleID:   "OVERTIME_RATE",
		RuleName: "Overtime Rate Compliance",
		Passed:   overtimeValid,
		Message:  pick(overtimeValid, "Overtime rate complies with labor law", "Overtime rate below minimum requirement"),
		Severity: pickSeverity(overtimeValid, SeverityError),
	})

	return results
}

func isWPSEligible(contract ContractInfo) bool {
	return contract.Nationality != "Saudi" && contract.Salary >= MinimumWage
}

// monthsBetween counts whole calendar months from start to end.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func pick(ok bool, passMsg, failMsg string) string {
	if ok {
		return passMsg
	}
	return failMsg
}

func pickSeverity(ok bool, failSeverity CheckSeverity) CheckSeverity {
	if ok {
		return SeverityInfo
	}
	return failSeverity
}
