package audit

type ReportType string

const (
	ReportPayrollAudit    ReportType = "Payroll_Audit"
	ReportAttendanceAudit ReportType = "Attendance_Audit"
	ReportComplianceAudit ReportType = "Compliance_Audit"
)

type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

type ReportStatus string

const (
	StatusGenerated   ReportStatus = "Generated"
	StatusUnderReview ReportStatus = "Under_Review"
)

type Confidentiality string

const (
	ConfidentialityInternal     Confidentiality = "Internal"
	ConfidentialityConfidential Confidentiality = "Confidential"
	ConfidentialityRestricted   Confidentiality = "Restricted"
)

type ExportFormat string

const (
	FormatPDF   ExportFormat = "PDF"
	FormatExcel ExportFormat = "Excel"
	FormatCSV   ExportFormat = "CSV"
	FormatJSON  ExportFormat = "JSON"
)

type FindingStatus string

const (
	FindingOpen       FindingStatus = "Open"
	FindingInProgress FindingStatus = "In_Progress"
)

// ReportPeriod keeps dates as YYYY-MM-DD strings so exported JSON
// round-trips byte-exact.
type ReportPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ReportFilter struct {
	Field       string `json:"field"`
	Operator    string `json:"operator"`
	Value       any    `json:"value"`
	DisplayName string `json:"display_name"`
}

type Metric struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Benchmark float64 `json:"benchmark,omitempty"`
	Variance  float64 `json:"variance,omitempty"`
	Trend     Trend   `json:"trend"`
	Category  string  `json:"category"`
	IsKPI     bool    `json:"is_kpi"`
}

type Finding struct {
	ID                string        `json:"id"`
	Category          string        `json:"category"`
	Severity          Severity      `json:"severity"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Evidence          []string      `json:"evidence,omitempty"`
	AffectedRecords   int           `json:"affected_records"`
	ComplianceImpact  string        `json:"compliance_impact"`
	RecommendedAction string        `json:"recommended_action"`
	DueDate           string        `json:"due_date,omitempty"`
	AssignedTo        string        `json:"assigned_to,omitempty"`
	Status            FindingStatus `json:"status"`
}

type Implementation struct {
	Effort    string   `json:"effort"`
	Timeline  string   `json:"timeline"`
	Resources []string `json:"resources"`
	Cost      float64  `json:"cost"`
}

type Recommendation struct {
	ID              string         `json:"id"`
	Priority        Severity       `json:"priority"`
	Category        string         `json:"category"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Implementation  Implementation `json:"implementation"`
	ExpectedBenefit string         `json:"expected_benefit"`
	RiskMitigation  string         `json:"risk_mitigation"`
}

type ActionItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	AssignedTo   string   `json:"assigned_to"`
	DueDate      string   `json:"due_date"`
	Priority     Severity `json:"priority"`
	Status       string   `json:"status"`
	Progress     int      `json:"progress"`
	Dependencies []string `json:"dependencies"`
}

type Report struct {
	ID                   string           `json:"id"`
	ReportType           ReportType       `json:"report_type"`
	Title                string           `json:"title"`
	Description          string           `json:"description"`
	GeneratedBy          string           `json:"generated_by"`
	GeneratedAt          string           `json:"generated_at"`
	ReportPeriod         ReportPeriod     `json:"report_period"`
	Filters              []ReportFilter   `json:"filters"`
	Metrics              []Metric         `json:"metrics"`
	Findings             []Finding        `json:"findings"`
	Recommendations      []Recommendation `json:"recommendations"`
	ComplianceScore      float64          `json:"compliance_score"`
	RiskLevel            RiskLevel        `json:"risk_level"`
	ActionItems          []ActionItem     `json:"action_items"`
	ExportFormats        []ExportFormat   `json:"export_formats"`
	DistributionList     []string         `json:"distribution_list"`
	IsScheduled          bool             `json:"is_scheduled"`
	RetentionDays        int              `json:"retention_days"`
	ConfidentialityLevel Confidentiality  `json:"confidentiality_level"`
	ApprovalRequired     bool             `json:"approval_required"`
	Status               ReportStatus     `json:"status"`
}

// reportMetadata is the fixed per-type packaging applied to every report.
type reportMetadata struct {
	GeneratedBy      string
	RetentionDays    int
	Confidentiality  Confidentiality
	DistributionList []string
	ExportFormats    []ExportFormat
	ApprovalRequired bool
	Status           ReportStatus
}

var reportMetadataByType = map[ReportType]reportMetadata{
	ReportPayrollAudit: {
		GeneratedBy:      "SYSTEM_AUDIT",
		RetentionDays:    2555, // 7 years
		Confidentiality:  ConfidentialityConfidential,
		DistributionList: []string{"hr-manager@company.com", "finance-director@company.com"},
		ExportFormats:    []ExportFormat{FormatPDF, FormatExcel, FormatCSV},
		ApprovalRequired: true,
		Status:           StatusGenerated,
	},
	ReportAttendanceAudit: {
		GeneratedBy:      "SYSTEM_AUDIT",
		RetentionDays:    1095, // 3 years
		Confidentiality:  ConfidentialityInternal,
		DistributionList: []string{"hr-manager@company.com", "operations-manager@company.com"},
		ExportFormats:    []ExportFormat{FormatPDF, FormatExcel, FormatCSV},
		ApprovalRequired: false,
		Status:           StatusGenerated,
	},
	ReportComplianceAudit: {
		GeneratedBy:      "COMPLIANCE_OFFICER",
		RetentionDays:    2555,
		Confidentiality:  ConfidentialityRestricted,
		DistributionList: []string{"ceo@company.com", "hr-director@company.com", "legal@company.com"},
		ExportFormats:    []ExportFormat{FormatPDF, FormatExcel},
		ApprovalRequired: true,
		Status:           StatusUnderReview,
	},
}
