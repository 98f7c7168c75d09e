package workflow

import (
	"net/http"

	"hrflow/internal/shared/apperror"
	"hrflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	engine *Engine
	logger *zap.Logger
}

func NewHandler(engine *Engine, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("workflow.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workflow.handler")
	}
	return &Handler{engine: engine, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("workflow request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) SubmitRequest(c *gin.Context) {
	var req SubmitRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit request validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if len(req.FormValues) > 0 {
		cfg := FormConfigFor(input.RequestType)
		if _, err := ValidateFormValues(cfg, req.FormValues); err != nil {
			h.writeServiceError(c, err)
			return
		}
	}

	request, err := h.engine.SubmitRequest(c.Request.Context(), input)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.logger.Info("request submitted",
		zap.String("request_id", request.RequestID),
		zap.String("request_type", string(request.RequestType)),
		zap.String("employee_id", request.EmployeeID),
	)
	response.Success(c, http.StatusCreated, request, nil)
}

func (h *Handler) ProcessApproval(c *gin.Context) {
	requestID := c.Param("id")

	var req ApprovalActionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http approval action validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	err := h.engine.ProcessApproval(c.Request.Context(), requestID, req.ApproverID, ApprovalAction(req.Action), req.Comments, req.DelegatedTo)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	request, err := h.engine.GetRequestByID(requestID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, request, nil)
}

func (h *Handler) GetRequest(c *gin.Context) {
	request, err := h.engine.GetRequestByID(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, request, nil)
}

func (h *Handler) ListEmployeeRequests(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "employee_id query parameter is required", nil)
		return
	}
	requests := h.engine.GetEmployeeRequests(employeeID)
	response.Success(c, http.StatusOK, requests, nil)
}

func (h *Handler) ListPendingApprovals(c *gin.Context) {
	approverID := c.Query("approver_id")
	if approverID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "approver_id query parameter is required", nil)
		return
	}
	requests := h.engine.GetPendingApprovals(approverID)
	response.Success(c, http.StatusOK, requests, nil)
}

func (h *Handler) ListTeamRequests(c *gin.Context) {
	managerID := c.Query("manager_id")
	if managerID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "manager_id query parameter is required", nil)
		return
	}
	requests := h.engine.GetTeamRequests(managerID)
	response.Success(c, http.StatusOK, requests, nil)
}

func (h *Handler) GetFormConfig(c *gin.Context) {
	response.Success(c, http.StatusOK, FormConfigFor(RequestType(c.Param("type"))), nil)
}

func (h *Handler) ListWorkflows(c *gin.Context) {
	response.Success(c, http.StatusOK, h.engine.Workflows(), nil)
}
