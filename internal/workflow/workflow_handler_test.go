package workflow_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"hrflow/internal/workflow"
)

func newWorkflowRouter(t *testing.T) (*gin.Engine, *workflow.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := workflow.NewEngine(workflow.EngineConfig{
		Logger:   zap.NewNop(),
		HourUnit: time.Millisecond,
	})
	handler := workflow.NewHandler(engine, zap.NewNop())

	router := gin.New()
	router.POST("/requests", handler.SubmitRequest)
	router.POST("/requests/:id/approval", handler.ProcessApproval)
	router.GET("/requests", handler.ListEmployeeRequests)
	router.GET("/requests/pending", handler.ListPendingApprovals)
	router.GET("/requests/form-config/:type", handler.GetFormConfig)
	router.GET("/requests/:id", handler.GetRequest)
	router.GET("/workflows", handler.ListWorkflows)
	return router, engine
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func submitBody() map[string]any {
	return map[string]any{
		"employee_id":   "EMP-001",
		"employee_name": "Khalid Al-Harbi",
		"request_type":  "Leave",
		"sub_type":      "Annual",
		"description":   "Annual leave",
		"urgency":       "Medium",
	}
}

func TestWorkflowHandler_SubmitRequest(t *testing.T) {
	router, _ := newWorkflowRouter(t)

	rec := postJSON(t, router, "/requests", submitBody())
	assert.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["ok"])
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "Pending", data["approval_status"])
	assert.Equal(t, "Submission", data["workflow_stage"])
	assert.NotEmpty(t, data["request_id"])
}

func TestWorkflowHandler_SubmitRequest_Validation(t *testing.T) {
	router, _ := newWorkflowRouter(t)

	body := submitBody()
	delete(body, "employee_id")

	rec := postJSON(t, router, "/requests", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["ok"])
	errObj := envelope["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

func TestWorkflowHandler_SubmitRequest_UnknownWorkflow(t *testing.T) {
	router, _ := newWorkflowRouter(t)

	body := submitBody()
	body["request_type"] = "Document Request"

	rec := postJSON(t, router, "/requests", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	envelope := decodeEnvelope(t, rec)
	errObj := envelope["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestWorkflowHandler_SubmitRequest_BadFormValues(t *testing.T) {
	router, _ := newWorkflowRouter(t)

	body := submitBody()
	body["form_values"] = map[string]any{
		"leaveType": "Sabbatical",
		"dateRange": map[string]any{"start_date": "2026-09-01", "end_date": "2026-09-02"},
		"reason":    "time off",
	}

	rec := postJSON(t, router, "/requests", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkflowHandler_ProcessApproval(t *testing.T) {
	router, engine := newWorkflowRouter(t)

	request, err := engine.SubmitRequest(context.Background(), workflow.SubmitInput{
		EmployeeID:   "EMP-001",
		EmployeeName: "Khalid Al-Harbi",
		RequestType:  workflow.TypeLeave,
		Urgency:      workflow.UrgencyMedium,
	})
	assert.NoError(t, err)

	rec := postJSON(t, router, "/requests/"+request.RequestID+"/approval", map[string]any{
		"approver_id": request.Approvers[0].ID,
		"action":      "Approved",
		"comments":    "ok",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "In Review", data["approval_status"])
	assert.Equal(t, "HR Review", data["workflow_stage"])
}

func TestWorkflowHandler_ProcessApproval_BadAction(t *testing.T) {
	router, engine := newWorkflowRouter(t)

	request, err := engine.SubmitRequest(context.Background(), workflow.SubmitInput{
		EmployeeID:   "EMP-001",
		EmployeeName: "Khalid Al-Harbi",
		RequestType:  workflow.TypeLeave,
		Urgency:      workflow.UrgencyMedium,
	})
	assert.NoError(t, err)

	rec := postJSON(t, router, "/requests/"+request.RequestID+"/approval", map[string]any{
		"approver_id": request.Approvers[0].ID,
		"action":      "Vetoed",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkflowHandler_GetRequest_NotFound(t *testing.T) {
	router, _ := newWorkflowRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/requests/REQ-missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkflowHandler_ListEmployeeRequests(t *testing.T) {
	router, engine := newWorkflowRouter(t)

	_, err := engine.SubmitRequest(context.Background(), workflow.SubmitInput{
		EmployeeID:   "EMP-001",
		EmployeeName: "Khalid Al-Harbi",
		RequestType:  workflow.TypeLeave,
		Urgency:      workflow.UrgencyMedium,
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/requests?employee_id=EMP-001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Len(t, envelope["data"].([]any), 1)

	// Missing query parameter is a validation error.
	req = httptest.NewRequest(http.MethodGet, "/requests", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWorkflowHandler_GetFormConfig(t *testing.T) {
	router, _ := newWorkflowRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/requests/form-config/Leave", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "Leave", data["request_type"])
	assert.Len(t, data["form_fields"].([]any), 4)
}

func TestWorkflowHandler_ListWorkflows(t *testing.T) {
	router, _ := newWorkflowRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/workflows", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Len(t, envelope["data"].([]any), 5)
}
