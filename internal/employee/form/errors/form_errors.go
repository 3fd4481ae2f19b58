package formerrors

import (
	"net/http"

	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
)

var (
	ErrUnknownField = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown form field",
		http.StatusBadRequest,
	)
	ErrInvalidValue = apperror.New(
		apperror.CodeInvalidInput,
		"Value does not fit the field type",
		http.StatusBadRequest,
	)
	ErrFormInvalid = apperror.New(
		apperror.CodeValidation,
		"Fix the highlighted fields before submitting",
		http.StatusBadRequest,
	)
	ErrAlreadySubmitting = apperror.New(
		apperror.CodeInvalidState,
		"Form is already being submitted",
		http.StatusConflict,
	)
	ErrFormClosed = apperror.New(
		apperror.CodeInvalidState,
		"Form was closed, reload to start again",
		http.StatusGone,
	)
)
