// Package auditerrors defines the sentinel errors for audit report
// generation, export and scheduling.
package auditerrors

import (
	"net/http"

	"hrflow/internal/shared/apperror"
)

var (
	ErrReportNotFound       = apperror.New(apperror.CodeNotFound, "audit report not found", http.StatusNotFound)
	ErrScheduleNotFound     = apperror.New(apperror.CodeNotFound, "audit schedule not found", http.StatusNotFound)
	ErrInvalidPeriod        = apperror.New(apperror.CodeInvalidInput, "end_date must not be before start_date", http.StatusBadRequest)
	ErrInvalidDate          = apperror.New(apperror.CodeInvalidInput, "date must use the YYYY-MM-DD format", http.StatusBadRequest)
	ErrUnsupportedFormat    = apperror.New(apperror.CodeInvalidInput, "unsupported export format", http.StatusBadRequest)
	ErrFormatNotAllowed     = apperror.New(apperror.CodeInvalidInput, "format is not allowed for this report type", http.StatusBadRequest)
	ErrRendererUnavailable  = apperror.New(apperror.CodeServiceUnavailable, "no document renderer configured for this format", http.StatusServiceUnavailable)
	ErrInvalidFrequency     = apperror.New(apperror.CodeInvalidInput, "unsupported schedule frequency", http.StatusBadRequest)
	ErrInvalidReportType    = apperror.New(apperror.CodeInvalidInput, "unsupported report type", http.StatusBadRequest)
)
