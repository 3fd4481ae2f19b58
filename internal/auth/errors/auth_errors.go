package autherrors

import (
	"net/http"

	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeAuthFailed,
		"Invalid credentials",
		http.StatusUnauthorized,
	)
	ErrNotAuthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"Not authenticated",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid or expired token",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate token",
		http.StatusInternalServerError,
	)
	ErrLogoutFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"Could not end the session, please try again",
		http.StatusServiceUnavailable,
	)
)
