package form

import (
	"net/http"

	formerrors "github.com/geraldDev01/onboarding-dashboard/internal/employee/form/errors"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	registry *Registry
	logger   *zap.Logger
}

func NewHandler(registry *Registry, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.form.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.form.handler")
	}
	return &Handler{registry: registry, logger: l}
}

// writeFormError answers with the error and, when there is one, the form as
// it stands so the client can redraw inline messages.
func (h *Handler) writeFormError(c *gin.Context, f *Form, snap Snapshot, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Debug("employee form request rejected",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("code", httpErr.Code),
	)
	if f == nil || snap.Values == nil {
		response.Fail(c, err)
		return
	}
	response.ErrorWithData(c, httpErr, FormResponse{Form: snap, Notifications: f.Drain()})
}

func (h *Handler) Get(c *gin.Context) {
	f := h.registry.Get(c.Request.Context())
	response.Success(c, http.StatusOK, FormResponse{Form: f.Snapshot(), Notifications: f.Drain()}, nil)
}

func (h *Handler) Fields(c *gin.Context) {
	response.Success(c, http.StatusOK, FieldsResponse{Fields: h.registry.Fields()}, nil)
}

func (h *Handler) Set(c *gin.Context) {
	var req SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}
	value, ok := rawText(req.Value)
	if !ok {
		response.Fail(c, formerrors.ErrInvalidValue)
		return
	}

	f := h.registry.Get(c.Request.Context())
	snap, err := f.Set(req.Field, value)
	if err != nil {
		h.writeFormError(c, f, snap, err)
		return
	}

	response.Success(c, http.StatusOK, FormResponse{Form: snap, Notifications: f.Drain()}, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	f := h.registry.Get(c.Request.Context())
	snap, err := f.Submit(c.Request.Context())
	if err != nil {
		h.writeFormError(c, f, snap, err)
		return
	}

	response.Success(c, http.StatusCreated, FormResponse{Form: snap, Notifications: f.Drain()}, nil)
}

func (h *Handler) Reset(c *gin.Context) {
	f := h.registry.Get(c.Request.Context())
	snap, err := f.Reset()
	if err != nil {
		h.writeFormError(c, f, snap, err)
		return
	}

	response.Success(c, http.StatusOK, FormResponse{Form: snap, Notifications: f.Drain()}, nil)
}
