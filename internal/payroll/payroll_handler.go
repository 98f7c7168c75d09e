package payroll

import (
	"net/http"

	payrollerrors "hrflow/internal/payroll/errors"
	"hrflow/internal/shared/apperror"
	"hrflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http calculate payroll validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	calc := Calculate(input)
	h.logger.Info("payroll calculated",
		zap.String("employee_id", calc.EmployeeID),
		zap.String("pay_period", calc.PayPeriod),
		zap.Float64("net_pay", calc.NetPay),
	)

	response.Success(c, http.StatusOK, calc, nil)
}

func (h *Handler) RunSummary(c *gin.Context) {
	var req RunSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http payroll run summary validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}
	if len(req.Calculations) == 0 {
		h.writeServiceError(c, payrollerrors.ErrEmptyBatch)
		return
	}

	records := make([]Calculation, 0, len(req.Calculations))
	for _, calcReq := range req.Calculations {
		input, err := calcReq.toInput()
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		records = append(records, Calculate(input))
	}

	summary := SummarizeRun(records)
	response.Success(c, http.StatusOK, summary, nil)
}
