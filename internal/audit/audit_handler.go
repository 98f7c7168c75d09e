package audit

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hrflow/internal/shared/apperror"
	"hrflow/internal/shared/response"
)

type Handler struct {
	service   *Service
	exporter  *Exporter
	schedules *ScheduleStore
	logger    *zap.Logger
}

func NewHandler(service *Service, exporter *Exporter, schedules *ScheduleStore, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, exporter: exporter, schedules: schedules, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("audit request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GeneratePayrollReport(c *gin.Context) {
	var req PayrollReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http payroll report validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}
	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	report, err := h.service.GeneratePayrollReport(c.Request.Context(), start, end, req.Departments, boolOrDefault(req.IncludeCompliance, true))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, report, nil)
}

func (h *Handler) GenerateAttendanceReport(c *gin.Context) {
	var req AttendanceReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http attendance report validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}
	start, end, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	report, err := h.service.GenerateAttendanceReport(c.Request.Context(), start, end, boolOrDefault(req.IncludeOvertime, true))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, report, nil)
}

func (h *Handler) GenerateComplianceReport(c *gin.Context) {
	report, err := h.service.GenerateComplianceReport(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, report, nil)
}

func (h *Handler) GetReport(c *gin.Context) {
	report, err := h.service.GetReport(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report, nil)
}

func (h *Handler) ExportReport(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http export validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	report, err := h.service.GetReport(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	format := ExportFormat(req.Format)
	out, err := h.exporter.Export(report, format)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	fileName := fmt.Sprintf("%s.%s", report.ID, strings.ToLower(req.Format))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, ContentType(format), out)
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http schedule validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	cfg := ScheduleConfig{
		Frequency:  Frequency(req.Frequency),
		DayOfWeek:  req.DayOfWeek,
		DayOfMonth: req.DayOfMonth,
		Time:       req.Time,
		Timezone:   req.Timezone,
	}
	schedule, err := h.schedules.Create(c.Request.Context(), ReportType(req.ReportType), cfg, req.Recipients)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, schedule, nil)
}

func (h *Handler) ListSchedules(c *gin.Context) {
	schedules, err := h.schedules.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, schedules, nil)
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	if err := h.schedules.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
