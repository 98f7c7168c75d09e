package audit

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	auditerrors "hrflow/internal/audit/errors"
	"hrflow/internal/shared/apperror"
)

const complianceWindowDays = 90

// Service builds audit reports from persisted records and keeps every
// generated report in memory for later export. Identical concurrent
// generation calls are collapsed into a single build.
type Service struct {
	source RecordSource
	logger *zap.Logger

	group   singleflight.Group
	mu      sync.RWMutex
	reports map[string]*Report
}

func NewService(source RecordSource, logger ...*zap.Logger) *Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &Service{
		source:  source,
		logger:  l,
		reports: make(map[string]*Report),
	}
}

// GeneratePayrollReport audits payroll runs inside the window, optionally
// restricted to departments.
func (s *Service) GeneratePayrollReport(ctx context.Context, start, end time.Time, departments []string, includeCompliance bool) (*Report, error) {
	if end.Before(start) {
		return nil, auditerrors.ErrInvalidPeriod
	}
	key := fmt.Sprintf("payroll|%s|%s|%s|%t", start.Format("2006-01-02"), end.Format("2006-01-02"), strings.Join(departments, ","), includeCompliance)
	return s.buildOnce(key, func() (*Report, error) {
		records, err := s.source.FindPayrollRecords(ctx, start, end, departments)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load payroll records", http.StatusInternalServerError)
		}

		metrics := payrollMetrics(records)
		var findings []Finding
		if includeCompliance {
			findings = payrollFindings(records)
		}
		score := complianceScore(countCompliantPayroll(records), len(records), findings)

		report := s.packageReport(ReportPayrollAudit, reportInputs{
			IDPrefix:    "AUDIT-PAY",
			Title:       fmt.Sprintf("Payroll Audit Report - %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
			Description: "Comprehensive audit of payroll processing, GOSI compliance, and Saudi labor law adherence",
			Period:      ReportPeriod{StartDate: start.Format("2006-01-02"), EndDate: end.Format("2006-01-02")},
			Filters: []ReportFilter{
				{Field: "date_range", Operator: "between", Value: []string{start.Format("2006-01-02"), end.Format("2006-01-02")}, DisplayName: "Report Period"},
				{Field: "departments", Operator: "in", Value: departments, DisplayName: "Departments"},
			},
			Metrics:  metrics,
			Findings: findings,
			Score:    score,
		})
		return report, nil
	})
}

// GenerateAttendanceReport audits attendance and working-hours compliance
// inside the window.
func (s *Service) GenerateAttendanceReport(ctx context.Context, start, end time.Time, includeOvertime bool) (*Report, error) {
	if end.Before(start) {
		return nil, auditerrors.ErrInvalidPeriod
	}
	key := fmt.Sprintf("attendance|%s|%s|%t", start.Format("2006-01-02"), end.Format("2006-01-02"), includeOvertime)
	return s.buildOnce(key, func() (*Report, error) {
		records, err := s.source.FindAttendanceRecords(ctx, start, end)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load attendance records", http.StatusInternalServerError)
		}

		metrics := attendanceMetrics(records, includeOvertime)
		findings := attendanceFindings(records, includeOvertime)
		score := complianceScore(countCompliantAttendance(records), len(records), findings)

		report := s.packageReport(ReportAttendanceAudit, reportInputs{
			IDPrefix:    "AUDIT-ATT",
			Title:       fmt.Sprintf("Attendance Compliance Audit - %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
			Description: "Analysis of attendance patterns, overtime compliance, and working hours adherence to Saudi labor law",
			Period:      ReportPeriod{StartDate: start.Format("2006-01-02"), EndDate: end.Format("2006-01-02")},
			Filters: []ReportFilter{
				{Field: "date_range", Operator: "between", Value: []string{start.Format("2006-01-02"), end.Format("2006-01-02")}, DisplayName: "Report Period"},
				{Field: "include_overtime", Operator: "equals", Value: includeOvertime, DisplayName: "Include Overtime Analysis"},
			},
			Metrics:  metrics,
			Findings: findings,
			Score:    score,
		})
		return report, nil
	})
}

// GenerateComplianceReport audits regulatory compliance over the trailing
// ninety days.
func (s *Service) GenerateComplianceReport(ctx context.Context) (*Report, error) {
	now := time.Now().UTC()
	end := now
	start := now.AddDate(0, 0, -complianceWindowDays)

	key := fmt.Sprintf("compliance|%s|%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	return s.buildOnce(key, func() (*Report, error) {
		records, err := s.source.FindComplianceRecords(ctx, start, end)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to load compliance records", http.StatusInternalServerError)
		}

		metrics := complianceMetrics(records)
		findings := complianceFindings(records, now)
		score := complianceScore(countCompliantRegulatory(records, now), len(records), findings)

		report := s.packageReport(ReportComplianceAudit, reportInputs{
			IDPrefix:    "AUDIT-COMP",
			Title:       "Saudi Labor Law Compliance Audit",
			Description: "Comprehensive review of compliance with Saudi labor law, visa requirements, and regulatory obligations",
			Period:      ReportPeriod{StartDate: start.Format("2006-01-02"), EndDate: end.Format("2006-01-02")},
			Filters:     []ReportFilter{},
			Metrics:     metrics,
			Findings:    findings,
			Score:       score,
		})
		return report, nil
	})
}

// GetReport returns a previously generated report by ID.
func (s *Service) GetReport(reportID string) (*Report, error) {
	s.mu.RLock()
	report, ok := s.reports[reportID]
	s.mu.RUnlock()
	if !ok {
		return nil, auditerrors.ErrReportNotFound
	}
	return report, nil
}

func (s *Service) buildOnce(key string, build func() (*Report, error)) (*Report, error) {
	v, err, shared := s.group.Do(key, func() (any, error) {
		return build()
	})
	if err != nil {
		return nil, err
	}
	report := v.(*Report)

	s.mu.Lock()
	s.reports[report.ID] = report
	s.mu.Unlock()

	s.logger.Info("audit report generated",
		zap.String("report_id", report.ID),
		zap.String("report_type", string(report.ReportType)),
		zap.Float64("compliance_score", report.ComplianceScore),
		zap.String("risk_level", string(report.RiskLevel)),
		zap.Bool("deduplicated", shared),
	)
	return report, nil
}

type reportInputs struct {
	IDPrefix    string
	Title       string
	Description string
	Period      ReportPeriod
	Filters     []ReportFilter
	Metrics     []Metric
	Findings    []Finding
	Score       float64
}

func (s *Service) packageReport(reportType ReportType, in reportInputs) *Report {
	meta := reportMetadataByType[reportType]
	return &Report{
		ID:                   fmt.Sprintf("%s-%d", in.IDPrefix, time.Now().UnixMilli()),
		ReportType:           reportType,
		Title:                in.Title,
		Description:          in.Description,
		GeneratedBy:          meta.GeneratedBy,
		GeneratedAt:          time.Now().UTC().Format(time.RFC3339),
		ReportPeriod:         in.Period,
		Filters:              in.Filters,
		Metrics:              in.Metrics,
		Findings:             in.Findings,
		Recommendations:      deriveRecommendations(in.Findings),
		ComplianceScore:      in.Score,
		RiskLevel:            riskLevel(in.Findings, in.Score),
		ActionItems:          deriveActionItems(in.Findings),
		ExportFormats:        append([]ExportFormat(nil), meta.ExportFormats...),
		DistributionList:     append([]string(nil), meta.DistributionList...),
		RetentionDays:        meta.RetentionDays,
		ConfidentialityLevel: meta.Confidentiality,
		ApprovalRequired:     meta.ApprovalRequired,
		Status:               meta.Status,
	}
}

// complianceScore is the base compliant-record rate minus severity
// deductions, floored at zero. An empty record set scores 100.
func complianceScore(compliant, total int, findings []Finding) float64 {
	base := 100.0
	if total > 0 {
		base = float64(compliant) / float64(total) * 100
	}
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			base -= 10
		case SeverityHigh:
			base -= 5
		case SeverityMedium:
			base -= 2
		case SeverityLow:
			base -= 1
		}
	}
	if base < 0 {
		return 0
	}
	return round2(base)
}

func riskLevel(findings []Finding, score float64) RiskLevel {
	var critical, high int
	for _, f := range findings {
		switch f.Severity {
		case SeverityCritical:
			critical++
		case SeverityHigh:
			high++
		}
	}
	switch {
	case critical > 0 || score < 70:
		return RiskCritical
	case high > 0 || score < 85:
		return RiskHigh
	case score < 95:
		return RiskMedium
	default:
		return RiskLow
	}
}

// deriveRecommendations is a pure 1:1 mapping from findings; the templated
// text keeps the derivation deterministic and testable.
func deriveRecommendations(findings []Finding) []Recommendation {
	out := make([]Recommendation, 0, len(findings))
	for _, f := range findings {
		out = append(out, Recommendation{
			ID:          "REC-" + f.ID,
			Priority:    f.Severity,
			Category:    f.Category,
			Title:       "Address " + f.Title,
			Description: "Implement controls to prevent recurrence of " + strings.ToLower(f.Title),
			Implementation: Implementation{
				Effort:    "Medium",
				Timeline:  "1-2 months",
				Resources: []string{"HR Team", "IT Support"},
				Cost:      10000,
			},
			ExpectedBenefit: "Improved compliance and reduced risk",
			RiskMitigation:  "Prevents regulatory violations and penalties",
		})
	}
	return out
}

func deriveActionItems(findings []Finding) []ActionItem {
	out := make([]ActionItem, 0, len(findings))
	for _, f := range findings {
		assignee := f.AssignedTo
		if assignee == "" {
			assignee = "HR-TEAM"
		}
		due := f.DueDate
		if due == "" {
			due = time.Now().UTC().AddDate(0, 0, 30).Format("2006-01-02")
		}
		out = append(out, ActionItem{
			ID:           "ACT-" + f.ID,
			Title:        "Resolve " + f.Title,
			Description:  f.RecommendedAction,
			AssignedTo:   assignee,
			DueDate:      due,
			Priority:     f.Severity,
			Status:       "Not_Started",
			Dependencies: []string{},
		})
	}
	return out
}

// --- payroll rules ---

func countCompliantPayroll(records []PayrollRunRecord) int {
	count := 0
	for _, r := range records {
		if r.ComplianceStatus == "compliant" {
			count++
		}
	}
	return count
}

func payrollMetrics(records []PayrollRunRecord) []Metric {
	var totalNet float64
	for _, r := range records {
		totalNet += r.NetPay
	}
	complianceRate := 100.0
	if len(records) > 0 {
		complianceRate = float64(countCompliantPayroll(records)) / float64(len(records)) * 100
	}
	return []Metric{
		{
			ID:       "total_payroll",
			Name:     "Total Payroll Amount",
			Value:    round2(totalNet),
			Unit:     "SAR",
			Trend:    TrendIncreasing,
			Category: "Financial",
			IsKPI:    true,
		},
		{
			ID:        "gosi_compliance_rate",
			Name:      "GOSI Compliance Rate",
			Value:     round2(complianceRate),
			Unit:      "%",
			Benchmark: 100,
			Variance:  round2(complianceRate - 100),
			Trend:     TrendStable,
			Category:  "Compliance",
			IsKPI:     true,
		},
	}
}

func payrollFindings(records []PayrollRunRecord) []Finding {
	var findings []Finding

	if n := countWhere(len(records), func(i int) bool { return records[i].ComplianceStatus != "compliant" }); n > 0 {
		findings = append(findings, Finding{
			ID:                "COMP-001",
			Category:          "GOSI Compliance",
			Severity:          SeverityMedium,
			Title:             "GOSI Calculation Variance",
			Description:       fmt.Sprintf("%d employees have GOSI calculation discrepancies", n),
			Evidence:          []string{"gosi-calculation-report.xlsx"},
			AffectedRecords:   n,
			ComplianceImpact:  "Potential under-payment of GOSI contributions",
			RecommendedAction: "Review and correct GOSI calculations",
			Status:            FindingOpen,
		})
	}
	if n := countWhere(len(records), func(i int) bool { return records[i].BasicSalary < 3000 }); n > 0 {
		findings = append(findings, Finding{
			ID:                "COMP-002",
			Category:          "Minimum Wage",
			Severity:          SeverityHigh,
			Title:             "Salaries Below Minimum Wage",
			Description:       fmt.Sprintf("%d employees are paid below the 3000 SAR minimum wage", n),
			AffectedRecords:   n,
			ComplianceImpact:  "Direct violation of Saudi minimum wage regulation",
			RecommendedAction: "Adjust base salaries to the statutory minimum",
			Status:            FindingOpen,
		})
	}
	if n := countWhere(len(records), func(i int) bool { return records[i].NetPay < 0 }); n > 0 {
		findings = append(findings, Finding{
			ID:                "COMP-003",
			Category:          "Payroll Integrity",
			Severity:          SeverityCritical,
			Title:             "Negative Net Pay Detected",
			Description:       fmt.Sprintf("%d payroll records resolve to a negative net amount", n),
			AffectedRecords:   n,
			ComplianceImpact:  "Employees would receive invalid payments",
			RecommendedAction: "Block the affected payments and review deductions",
			Status:            FindingOpen,
		})
	}
	return findings
}

// --- attendance rules ---

func countCompliantAttendance(records []AttendanceRecord) int {
	count := 0
	for _, r := range records {
		if r.Violations == 0 {
			count++
		}
	}
	return count
}

func attendanceMetrics(records []AttendanceRecord, includeOvertime bool) []Metric {
	var scoreSum, overtimeSum float64
	for _, r := range records {
		scoreSum += r.ComplianceScore
		overtimeSum += r.OvertimeHours
	}
	avgScore := 100.0
	if len(records) > 0 {
		avgScore = scoreSum / float64(len(records))
	}
	metrics := []Metric{
		{
			ID:        "avg_attendance_rate",
			Name:      "Average Attendance Rate",
			Value:     round2(avgScore),
			Unit:      "%",
			Benchmark: 95,
			Trend:     TrendStable,
			Category:  "Attendance",
			IsKPI:     true,
		},
	}
	if includeOvertime {
		metrics = append(metrics, Metric{
			ID:       "total_overtime_hours",
			Name:     "Total Overtime Hours",
			Value:    round2(overtimeSum),
			Unit:     "hours",
			Trend:    TrendIncreasing,
			Category: "Working Hours",
			IsKPI:    false,
		})
	}
	return metrics
}

func attendanceFindings(records []AttendanceRecord, includeOvertime bool) []Finding {
	var findings []Finding

	if includeOvertime {
		// 48h weekly cap over a four-week record window.
		if n := countWhere(len(records), func(i int) bool { return records[i].TotalHours+records[i].OvertimeHours > 192 }); n > 0 {
			findings = append(findings, Finding{
				ID:                "ATT-001",
				Category:          "Working Hours",
				Severity:          SeverityLow,
				Title:             "Excessive Overtime",
				Description:       fmt.Sprintf("%d employees exceeded maximum weekly hours", n),
				Evidence:          []string{"overtime-report.xlsx"},
				AffectedRecords:   n,
				ComplianceImpact:  "Potential violation of working hours regulations",
				RecommendedAction: "Implement overtime controls",
				Status:            FindingOpen,
			})
		}
	}
	if n := countWhere(len(records), func(i int) bool { return records[i].Violations > 0 }); n > 0 {
		findings = append(findings, Finding{
			ID:                "ATT-002",
			Category:          "Attendance Violations",
			Severity:          SeverityMedium,
			Title:             "Recorded Attendance Violations",
			Description:       fmt.Sprintf("%d employees carry unresolved attendance violations", n),
			AffectedRecords:   n,
			ComplianceImpact:  "Repeated violations weaken working-hours compliance",
			RecommendedAction: "Review violation records with the employees' managers",
			Status:            FindingOpen,
		})
	}
	if n := countWhere(len(records), func(i int) bool { return records[i].ComplianceScore < 70 }); n > 0 {
		findings = append(findings, Finding{
			ID:                "ATT-003",
			Category:          "Attendance Compliance",
			Severity:          SeverityHigh,
			Title:             "Critically Low Attendance Scores",
			Description:       fmt.Sprintf("%d employees score below 70%% attendance compliance", n),
			AffectedRecords:   n,
			ComplianceImpact:  "Sustained non-compliance with contracted working hours",
			RecommendedAction: "Escalate to HR for corrective action plans",
			Status:            FindingOpen,
		})
	}
	return findings
}

// --- regulatory compliance rules ---

func countCompliantRegulatory(records []ComplianceRecord, now time.Time) int {
	count := 0
	for _, r := range records {
		if regulatoryCompliant(r, now) {
			count++
		}
	}
	return count
}

func regulatoryCompliant(r ComplianceRecord, now time.Time) bool {
	if !r.GOSIRegistered || !r.ContractRenewedOnTime {
		return false
	}
	if r.VisaExpiryDate != nil && r.VisaExpiryDate.Before(now.AddDate(0, 0, 60)) {
		return false
	}
	return true
}

func complianceMetrics(records []ComplianceRecord) []Metric {
	now := time.Now().UTC()
	total := len(records)
	rate := func(ok int) float64 {
		if total == 0 {
			return 100
		}
		return round2(float64(ok) / float64(total) * 100)
	}

	visaOK := countWhere(total, func(i int) bool {
		r := records[i]
		return r.VisaExpiryDate == nil || !r.VisaExpiryDate.Before(now.AddDate(0, 0, 60))
	})
	gosiOK := countWhere(total, func(i int) bool { return records[i].GOSIRegistered })
	contractOK := countWhere(total, func(i int) bool { return records[i].ContractRenewedOnTime })

	return []Metric{
		{
			ID:        "visa_expiry_compliance",
			Name:      "Visa Expiry Compliance",
			Value:     rate(visaOK),
			Unit:      "%",
			Benchmark: 100,
			Variance:  round2(rate(visaOK) - 100),
			Trend:     TrendStable,
			Category:  "Document Compliance",
			IsKPI:     true,
		},
		{
			ID:        "gosi_registration_rate",
			Name:      "GOSI Registration Rate",
			Value:     rate(gosiOK),
			Unit:      "%",
			Benchmark: 100,
			Variance:  round2(rate(gosiOK) - 100),
			Trend:     TrendIncreasing,
			Category:  "GOSI Compliance",
			IsKPI:     true,
		},
		{
			ID:        "contract_renewal_timeliness",
			Name:      "Contract Renewal Timeliness",
			Value:     rate(contractOK),
			Unit:      "%",
			Benchmark: 95,
			Variance:  round2(rate(contractOK) - 95),
			Trend:     TrendDecreasing,
			Category:  "Contract Management",
			IsKPI:     true,
		},
	}
}

func complianceFindings(records []ComplianceRecord, now time.Time) []Finding {
	var findings []Finding

	if n := countWhere(len(records), func(i int) bool {
		r := records[i]
		return r.VisaExpiryDate != nil && r.VisaExpiryDate.Before(now.AddDate(0, 0, 60))
	}); n > 0 {
		findings = append(findings, Finding{
			ID:                "FIND-001",
			Category:          "Document Expiry",
			Severity:          SeverityHigh,
			Title:             "Multiple Visa Expiries Approaching",
			Description:       fmt.Sprintf("%d employees have visas expiring within 60 days without renewal documentation", n),
			Evidence:          []string{"visa-expiry-report.xlsx", "renewal-status-tracker.pdf"},
			AffectedRecords:   n,
			ComplianceImpact:  "Potential work authorization violations",
			RecommendedAction: "Immediate renewal process initiation",
			DueDate:           now.AddDate(0, 0, 30).Format("2006-01-02"),
			AssignedTo:        "HR-COMPLIANCE-TEAM",
			Status:            FindingOpen,
		})
	}
	if n := countWhere(len(records), func(i int) bool { return !records[i].GOSIRegistered }); n > 0 {
		findings = append(findings, Finding{
			ID:                "FIND-002",
			Category:          "GOSI Compliance",
			Severity:          SeverityMedium,
			Title:             "GOSI Registration Delays",
			Description:       fmt.Sprintf("%d new employees not registered with GOSI within required timeframe", n),
			Evidence:          []string{"gosi-pending-list.xlsx"},
			AffectedRecords:   n,
			ComplianceImpact:  "Potential penalties and delayed benefits",
			RecommendedAction: "Expedite GOSI registration process",
			DueDate:           now.AddDate(0, 0, 14).Format("2006-01-02"),
			AssignedTo:        "PAYROLL-TEAM",
			Status:            FindingInProgress,
		})
	}
	if n := countWhere(len(records), func(i int) bool { return !records[i].ContractRenewedOnTime }); n > 0 {
		findings = append(findings, Finding{
			ID:                "FIND-003",
			Category:          "Contract Management",
			Severity:          SeverityMedium,
			Title:             "Late Contract Renewals",
			Description:       fmt.Sprintf("%d employee contracts were not renewed before expiry", n),
			AffectedRecords:   n,
			ComplianceImpact:  "Employees working under lapsed contracts",
			RecommendedAction: "Backfill renewals and tighten the renewal calendar",
			Status:            FindingOpen,
		})
	}

	sort.Slice(findings, func(i, j int) bool { return findings[i].ID < findings[j].ID })
	return findings
}

func countWhere(n int, match func(i int) bool) int {
	count := 0
	for i := 0; i < n; i++ {
		if match(i) {
			count++
		}
	}
	return count
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
