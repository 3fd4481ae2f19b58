package employeeerrors

import (
	"net/http"

	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/validation"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrMalformedInput = apperror.New(
		apperror.CodeInvalidInput,
		"Employee payload must be a JSON object",
		http.StatusBadRequest,
	)
	ErrCreateFailed = apperror.New(
		apperror.CodeServiceError,
		"Could not create the employee, please try again",
		http.StatusServiceUnavailable,
	)
	ErrListFailed = apperror.New(
		apperror.CodeServiceError,
		"Could not load employees, please try again",
		http.StatusServiceUnavailable,
	)
	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not build the export file",
		http.StatusInternalServerError,
	)
)

// ValidationFailed carries one message per invalid field; the message joins
// them in form order.
func ValidationFailed(fe validation.FieldErrors, order ...string) *apperror.AppError {
	return apperror.New(
		apperror.CodeValidation,
		"Validation failed: "+fe.Join(order...),
		http.StatusBadRequest,
	).WithDetails(fe)
}
