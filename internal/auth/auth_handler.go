package auth

import (
	"net/http"

	"github.com/geraldDev01/onboarding-dashboard/internal/metrics"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/audit"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service      Service
	schema       *LoginSchema
	audit        audit.Logger
	secureCookie bool
	logger       *zap.Logger
}

func NewHandler(service Service, schema *LoginSchema, auditLogger audit.Logger, secureCookie bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{
		service:      service,
		schema:       schema,
		audit:        auditLogger,
		secureCookie: secureCookie,
		logger:       l,
	}
}

func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("http login bind failed", zap.Error(err))
		response.Fail(c, apperror.ErrInvalidInput)
		return
	}

	payload, fe := h.schema.Validate(req)
	if fe != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.ResultInvalid).Inc()
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, fe.Join("email", "password"), fe)
		return
	}

	token, user, err := h.service.Login(ctx, payload.Email, payload.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.ResultFailure).Inc()
		h.audit.Log(ctx, audit.AuditLog{
			Action:  audit.ActionLoginFailed,
			Message: "login rejected",
			Meta:    map[string]any{"email": payload.Email, "ip": c.ClientIP()},
		})
		response.Fail(c, err)
		return
	}

	metrics.LoginAttempts.WithLabelValues(metrics.ResultSuccess).Inc()
	SetSessionCookie(c, token, h.service.SessionTTL(), h.secureCookie)
	h.audit.Log(ctx, audit.AuditLog{
		Action:  audit.ActionLoginSucceeded,
		Message: "operator signed in",
		Meta:    map[string]any{"email": user.Email, "ip": c.ClientIP()},
	})

	response.Success(c, http.StatusOK, SessionResponse{User: user}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	identity, err := h.service.CurrentUser(c.Request.Context(), SessionToken(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, SessionResponse{
		User: UserResponse{Email: identity.Email, Name: identity.Name},
	}, nil)
}

// Logout always clears the cookie, even if revoking the token failed.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	token := SessionToken(c)

	var email string
	if identity, err := h.service.CurrentUser(ctx, token); err == nil {
		email = identity.Email
	}

	err := h.service.Logout(ctx, token)
	ClearSessionCookie(c, h.secureCookie)

	if err != nil {
		h.logger.Warn("http logout could not revoke token", zap.Error(err))
		response.Fail(c, err)
		return
	}

	h.audit.Log(ctx, audit.AuditLog{
		Action:  audit.ActionLogout,
		Message: "operator signed out",
		Meta:    map[string]any{"email": email, "ip": c.ClientIP()},
	})
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true}, nil)
}

