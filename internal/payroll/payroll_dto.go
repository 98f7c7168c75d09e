package payroll

import (
	"time"

	payrollerrors "hrflow/internal/payroll/errors"
)

type AllowancesRequest struct {
	Housing         float64 `json:"housing"`
	Transport       float64 `json:"transport"`
	Other           float64 `json:"other"`
	TotalAllowances float64 `json:"total_allowances"`
	TotalDeductions float64 `json:"total_deductions"`
}

type AttendanceRequest struct {
	RegularHours         float64 `json:"regular_hours" binding:"min=0"`
	OvertimeHours        float64 `json:"overtime_hours" binding:"min=0"`
	HolidayOvertimeHours float64 `json:"holiday_overtime_hours" binding:"min=0"`
	AverageDailyHours    float64 `json:"average_daily_hours" binding:"min=0"`
	AverageWeeklyHours   float64 `json:"average_weekly_hours" binding:"min=0"`
	ApprovedBy           string  `json:"approved_by"`
}

type ContractRequest struct {
	StartDate   string  `json:"start_date" binding:"required"`
	GOSIExempt  bool    `json:"gosi_exempt"`
	Nationality string  `json:"nationality" binding:"required"`
	Salary      float64 `json:"salary" binding:"min=0"`
}

type CalculateRequest struct {
	EmployeeID  string            `json:"employee_id" binding:"required"`
	BasicSalary float64           `json:"basic_salary" binding:"min=0"`
	Allowances  AllowancesRequest `json:"allowances"`
	Attendance  AttendanceRequest `json:"attendance"`
	Contract    ContractRequest   `json:"contract" binding:"required"`
}

func (r CalculateRequest) toInput() (CalculationInput, error) {
	startDate, err := time.Parse("2006-01-02", r.Contract.StartDate)
	if err != nil {
		return CalculationInput{}, payrollerrors.ErrInvalidStartDate
	}

	return CalculationInput{
		EmployeeID:  r.EmployeeID,
		BasicSalary: r.BasicSalary,
		Allowances: Allowances{
			Housing:         r.Allowances.Housing,
			Transport:       r.Allowances.Transport,
			Other:           r.Allowances.Other,
			TotalAllowances: r.Allowances.TotalAllowances,
			TotalDeductions: r.Allowances.TotalDeductions,
		},
		Attendance: AttendanceData{
			RegularHours:         r.Attendance.RegularHours,
			OvertimeHours:        r.Attendance.OvertimeHours,
			HolidayOvertimeHours: r.Attendance.HolidayOvertimeHours,
			AverageDailyHours:    r.Attendance.AverageDailyHours,
			AverageWeeklyHours:   r.Attendance.AverageWeeklyHours,
			ApprovedBy:           r.Attendance.ApprovedBy,
		},
		Contract: ContractInfo{
			StartDate:   startDate,
			GOSIExempt:  r.Contract.GOSIExempt,
			Nationality: r.Contract.Nationality,
			Salary:      r.Contract.Salary,
		},
	}, nil
}

type RunSummaryRequest struct {
	Calculations []CalculateRequest `json:"calculations" binding:"dive"`
}
