package payrollerrors

import (
	"net/http"

	"hrflow/internal/shared/apperror"
)

var (
	ErrInvalidStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid contract start_date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmptyBatch = apperror.New(
		apperror.CodeInvalidInput,
		"at least one calculation is required",
		http.StatusBadRequest,
	)
)
