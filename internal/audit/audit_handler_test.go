package audit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"hrflow/internal/audit"
)

func newAuditRouter(t *testing.T) (*gin.Engine, *audit.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	source := &fakeRecordSource{
		findPayrollRecords: func(_ context.Context, _, _ time.Time, _ []string) ([]audit.PayrollRunRecord, error) {
			return payrollFixture(), nil
		},
		findAttendanceRecords: func(_ context.Context, _, _ time.Time) ([]audit.AttendanceRecord, error) {
			return nil, nil
		},
		findComplianceRecords: func(_ context.Context, _, _ time.Time) ([]audit.ComplianceRecord, error) {
			return nil, nil
		},
	}
	service := audit.NewService(source, zap.NewNop())
	exporter := audit.NewExporter(nil)
	rdb, _ := redismock.NewClientMock()
	schedules := audit.NewScheduleStore(rdb, zap.NewNop())
	handler := audit.NewHandler(service, exporter, schedules, zap.NewNop())

	router := gin.New()
	reports := router.Group("/audit/reports")
	reports.POST("/payroll", handler.GeneratePayrollReport)
	reports.POST("/attendance", handler.GenerateAttendanceReport)
	reports.POST("/compliance", handler.GenerateComplianceReport)
	reports.GET("/:id", handler.GetReport)
	reports.POST("/:id/export", handler.ExportReport)
	router.POST("/audit/schedules", handler.CreateSchedule)
	return router, service
}

func auditPostJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuditHandler_GeneratePayrollReport(t *testing.T) {
	router, _ := newAuditRouter(t)

	rec := auditPostJSON(t, router, "/audit/reports/payroll", map[string]any{
		"start_date": "2026-06-01",
		"end_date":   "2026-06-30",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var envelope map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope["ok"])
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "Payroll_Audit", data["report_type"])
	assert.Equal(t, 58.0, data["compliance_score"])
	assert.Len(t, data["findings"].([]any), 3)
}

func TestAuditHandler_GeneratePayrollReport_Validation(t *testing.T) {
	router, _ := newAuditRouter(t)

	t.Run("missing dates", func(t *testing.T) {
		rec := auditPostJSON(t, router, "/audit/reports/payroll", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		rec := auditPostJSON(t, router, "/audit/reports/payroll", map[string]any{
			"start_date": "01/06/2026",
			"end_date":   "2026-06-30",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("inverted period", func(t *testing.T) {
		rec := auditPostJSON(t, router, "/audit/reports/payroll", map[string]any{
			"start_date": "2026-06-30",
			"end_date":   "2026-06-01",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuditHandler_GenerateComplianceReport(t *testing.T) {
	router, _ := newAuditRouter(t)

	rec := auditPostJSON(t, router, "/audit/reports/compliance", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var envelope map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "Compliance_Audit", data["report_type"])
	assert.Equal(t, 100.0, data["compliance_score"])
}

func TestAuditHandler_GetReport(t *testing.T) {
	router, service := newAuditRouter(t)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	report, err := service.GeneratePayrollReport(context.Background(), start, end, nil, true)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/audit/reports/"+report.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/audit/reports/AUDIT-PAY-0", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuditHandler_ExportReport(t *testing.T) {
	router, service := newAuditRouter(t)

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	report, err := service.GeneratePayrollReport(context.Background(), start, end, nil, true)
	assert.NoError(t, err)

	t.Run("csv download", func(t *testing.T) {
		rec := auditPostJSON(t, router, "/audit/reports/"+report.ID+"/export", map[string]any{"format": "CSV"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), report.ID+".csv")
		assert.Contains(t, rec.Body.String(), "ID,Category,Severity,Title,Affected Records,Status")
	})

	t.Run("excel without renderer", func(t *testing.T) {
		rec := auditPostJSON(t, router, "/audit/reports/"+report.ID+"/export", map[string]any{"format": "Excel"})
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("unknown format rejected by binding", func(t *testing.T) {
		rec := auditPostJSON(t, router, "/audit/reports/"+report.ID+"/export", map[string]any{"format": "XML"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuditHandler_CreateSchedule_Validation(t *testing.T) {
	router, _ := newAuditRouter(t)

	rec := auditPostJSON(t, router, "/audit/schedules", map[string]any{
		"report_type": "Payroll_Audit",
		"frequency":   "Monthly",
		"recipients":  []string{"not-an-email"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
