package audit

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	auditerrors "hrflow/internal/audit/errors"
	"hrflow/internal/shared/apperror"
)

// Renderer produces document formats the exporter cannot build itself.
// Excel export delegates to it; when none is wired in the exporter reports
// ErrRendererUnavailable.
type Renderer interface {
	Render(report *Report, format ExportFormat) ([]byte, error)
}

type Exporter struct {
	renderer Renderer
}

func NewExporter(renderer Renderer) *Exporter {
	return &Exporter{renderer: renderer}
}

// Export converts a report into the requested format. CSV and JSON are
// byte-exact reproducible for the same report value.
func (e *Exporter) Export(report *Report, format ExportFormat) ([]byte, error) {
	if !formatAllowed(report, format) {
		return nil, auditerrors.ErrFormatNotAllowed
	}

	switch format {
	case FormatJSON:
		return exportJSON(report)
	case FormatCSV:
		return exportCSV(report)
	case FormatPDF:
		return exportPDF(report)
	case FormatExcel:
		if e.renderer == nil {
			return nil, auditerrors.ErrRendererUnavailable
		}
		out, err := e.renderer.Render(report, FormatExcel)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInternalError, "excel renderer failed", http.StatusInternalServerError)
		}
		return out, nil
	default:
		return nil, auditerrors.ErrUnsupportedFormat
	}
}

// JSON is always exportable; the report's own export-format list governs
// the document formats only.
func formatAllowed(report *Report, format ExportFormat) bool {
	if format == FormatJSON {
		return true
	}
	for _, f := range report.ExportFormats {
		if f == format {
			return true
		}
	}
	return false
}

func exportJSON(report *Report) ([]byte, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to encode report", http.StatusInternalServerError)
	}
	return out, nil
}

func exportCSV(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ID", "Category", "Severity", "Title", "Affected Records", "Status"}); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to write csv", http.StatusInternalServerError)
	}
	for _, f := range report.Findings {
		row := []string{f.ID, f.Category, string(f.Severity), f.Title, strconv.Itoa(f.AffectedRecords), string(f.Status)}
		if err := w.Write(row); err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to write csv", http.StatusInternalServerError)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to write csv", http.StatusInternalServerError)
	}
	return buf.Bytes(), nil
}

func exportPDF(report *Report) ([]byte, error) {
	lines := []string{
		report.Title,
		"",
		fmt.Sprintf("Report ID: %s", report.ID),
		fmt.Sprintf("Generated: %s by %s", report.GeneratedAt, report.GeneratedBy),
		fmt.Sprintf("Period: %s to %s", report.ReportPeriod.StartDate, report.ReportPeriod.EndDate),
		fmt.Sprintf("Compliance Score: %.2f    Risk Level: %s", report.ComplianceScore, report.RiskLevel),
		"",
		"Metrics",
	}
	for _, m := range report.Metrics {
		lines = append(lines, fmt.Sprintf("  %s: %.2f %s", m.Name, m.Value, m.Unit))
	}
	lines = append(lines, "", "Findings")
	if len(report.Findings) == 0 {
		lines = append(lines, "  No findings.")
	}
	for _, f := range report.Findings {
		lines = append(lines,
			fmt.Sprintf("  [%s] %s (%s)", f.Severity, f.Title, f.ID),
			fmt.Sprintf("    %s", f.Description),
			fmt.Sprintf("    Action: %s", f.RecommendedAction),
		)
	}
	return buildReportPDF(lines)
}

func buildReportPDF(lines []string) ([]byte, error) {
	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n40 800 Td\n13 TL\n")
	for i, line := range lines {
		escaped := reportPDFEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func reportPDFEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}

// ContentType returns the MIME type for a downloadable export.
func ContentType(format ExportFormat) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
