package audit_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"hrflow/internal/audit"
	auditerrors "hrflow/internal/audit/errors"
)

type fakeRenderer struct {
	render func(report *audit.Report, format audit.ExportFormat) ([]byte, error)
}

func (f *fakeRenderer) Render(report *audit.Report, format audit.ExportFormat) ([]byte, error) {
	return f.render(report, format)
}

func sampleReport() *audit.Report {
	return &audit.Report{
		ID:          "AUDIT-PAY-1756500000000",
		ReportType:  audit.ReportPayrollAudit,
		Title:       "Payroll Audit Report - 2026-06-01 to 2026-06-30",
		GeneratedBy: "SYSTEM_AUDIT",
		GeneratedAt: "2026-08-30T09:00:00Z",
		ReportPeriod: audit.ReportPeriod{
			StartDate: "2026-06-01",
			EndDate:   "2026-06-30",
		},
		Metrics: []audit.Metric{
			{ID: "total_payroll", Name: "Total Payroll Amount", Value: 13885, Unit: "SAR", Trend: audit.TrendIncreasing, Category: "Financial", IsKPI: true},
		},
		Findings: []audit.Finding{
			{ID: "COMP-002", Category: "Minimum Wage", Severity: audit.SeverityHigh, Title: "Salaries Below Minimum Wage", AffectedRecords: 1, Status: audit.FindingOpen},
		},
		ComplianceScore: 58,
		RiskLevel:       audit.RiskCritical,
		ExportFormats:   []audit.ExportFormat{audit.FormatPDF, audit.FormatExcel, audit.FormatCSV},
	}
}

func TestExporter_JSON(t *testing.T) {
	exporter := audit.NewExporter(nil)
	report := sampleReport()

	out, err := exporter.Export(report, audit.FormatJSON)
	assert.NoError(t, err)

	var decoded audit.Report
	assert.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, *report, decoded)
	// Indented output, stable for diffing archived exports.
	assert.True(t, bytes.HasPrefix(out, []byte("{\n  \"id\"")))
}

func TestExporter_JSONAlwaysAllowed(t *testing.T) {
	exporter := audit.NewExporter(nil)
	report := sampleReport()
	report.ExportFormats = []audit.ExportFormat{audit.FormatPDF}

	_, err := exporter.Export(report, audit.FormatJSON)
	assert.NoError(t, err)
}

func TestExporter_CSV(t *testing.T) {
	exporter := audit.NewExporter(nil)

	out, err := exporter.Export(sampleReport(), audit.FormatCSV)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if assert.Len(t, lines, 2) {
		assert.Equal(t, "ID,Category,Severity,Title,Affected Records,Status", lines[0])
		assert.Equal(t, "COMP-002,Minimum Wage,High,Salaries Below Minimum Wage,1,Open", lines[1])
	}
}

func TestExporter_PDF(t *testing.T) {
	exporter := audit.NewExporter(nil)

	out, err := exporter.Export(sampleReport(), audit.FormatPDF)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Contains(t, string(out), "Salaries Below Minimum Wage")
}

func TestExporter_Excel(t *testing.T) {
	t.Run("no renderer wired", func(t *testing.T) {
		exporter := audit.NewExporter(nil)
		_, err := exporter.Export(sampleReport(), audit.FormatExcel)
		assert.ErrorIs(t, err, auditerrors.ErrRendererUnavailable)
	})

	t.Run("delegates to renderer", func(t *testing.T) {
		renderer := &fakeRenderer{
			render: func(report *audit.Report, format audit.ExportFormat) ([]byte, error) {
				assert.Equal(t, audit.FormatExcel, format)
				return []byte("xlsx-bytes"), nil
			},
		}
		exporter := audit.NewExporter(renderer)

		out, err := exporter.Export(sampleReport(), audit.FormatExcel)
		assert.NoError(t, err)
		assert.Equal(t, []byte("xlsx-bytes"), out)
	})

	t.Run("renderer failure is wrapped", func(t *testing.T) {
		renderer := &fakeRenderer{
			render: func(_ *audit.Report, _ audit.ExportFormat) ([]byte, error) {
				return nil, errors.New("sheet too large")
			},
		}
		exporter := audit.NewExporter(renderer)

		_, err := exporter.Export(sampleReport(), audit.FormatExcel)
		assert.ErrorContains(t, err, "excel renderer failed")
	})
}

func TestExporter_FormatNotAllowed(t *testing.T) {
	exporter := audit.NewExporter(nil)
	report := sampleReport()
	// Compliance reports allow PDF and Excel only.
	report.ExportFormats = []audit.ExportFormat{audit.FormatPDF, audit.FormatExcel}

	_, err := exporter.Export(report, audit.FormatCSV)
	assert.ErrorIs(t, err, auditerrors.ErrFormatNotAllowed)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", audit.ContentType(audit.FormatJSON))
	assert.Equal(t, "text/csv", audit.ContentType(audit.FormatCSV))
	assert.Equal(t, "application/pdf", audit.ContentType(audit.FormatPDF))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", audit.ContentType(audit.FormatExcel))
}
