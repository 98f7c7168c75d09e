package audit

import (
	"time"

	auditerrors "hrflow/internal/audit/errors"
)

type PayrollReportRequest struct {
	StartDate         string   `json:"start_date" binding:"required"`
	EndDate           string   `json:"end_date" binding:"required"`
	Departments       []string `json:"departments"`
	IncludeCompliance *bool    `json:"include_compliance"`
}

type AttendanceReportRequest struct {
	StartDate       string `json:"start_date" binding:"required"`
	EndDate         string `json:"end_date" binding:"required"`
	IncludeOvertime *bool  `json:"include_overtime"`
}

type ExportRequest struct {
	Format string `json:"format" binding:"required,oneof=PDF Excel CSV JSON"`
}

type ScheduleRequest struct {
	ReportType string   `json:"report_type" binding:"required"`
	Frequency  string   `json:"frequency" binding:"required,oneof=Daily Weekly Monthly Quarterly Annually"`
	DayOfWeek  int      `json:"day_of_week" binding:"min=0,max=6"`
	DayOfMonth int      `json:"day_of_month" binding:"min=0,max=28"`
	Time       string   `json:"time"`
	Timezone   string   `json:"timezone"`
	Recipients []string `json:"recipients" binding:"required,min=1,dive,email"`
}

func parsePeriod(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, auditerrors.ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, auditerrors.ErrInvalidDate
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, auditerrors.ErrInvalidPeriod
	}
	return start, end, nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
