// Package workflowerrors defines the sentinel errors returned by the
// workflow engine and its HTTP surface.
package workflowerrors

import (
	"net/http"

	"hrflow/internal/shared/apperror"
)

var (
	ErrWorkflowNotFound = apperror.New(apperror.CodeNotFound, "no workflow registered for request type", http.StatusNotFound)
	ErrRequestNotFound  = apperror.New(apperror.CodeNotFound, "request not found", http.StatusNotFound)
	ErrRequestClosed    = apperror.New(apperror.CodeInvalidState, "request is closed and no longer accepts approval actions", http.StatusConflict)
	ErrDelegateRequired = apperror.New(apperror.CodeInvalidInput, "delegated_to is required for a delegation action", http.StatusBadRequest)
	ErrInvalidAction    = apperror.New(apperror.CodeInvalidInput, "unsupported approval action", http.StatusBadRequest)
	ErrEmployeeRequired = apperror.New(apperror.CodeInvalidInput, "employee_id is required", http.StatusBadRequest)
	ErrInvalidDateRange = apperror.New(apperror.CodeInvalidInput, "end_date must not be before start_date", http.StatusBadRequest)
	ErrInvalidDate      = apperror.New(apperror.CodeInvalidInput, "date must use the YYYY-MM-DD format", http.StatusBadRequest)
)

// FieldError reports a form value that failed validation against the
// request type's form configuration.
func FieldError(fieldID, reason string) *apperror.AppError {
	return apperror.New(apperror.CodeInvalidInput, "field "+fieldID+": "+reason, http.StatusBadRequest)
}
