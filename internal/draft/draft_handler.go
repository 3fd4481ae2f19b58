package draft

import (
	"net/http"

	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	store  Store
	logger *zap.Logger
}

func NewHandler(store Store, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("draft.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("draft.handler")
	}
	return &Handler{store: store, logger: l}
}

type DraftResponse struct {
	Found bool  `json:"found"`
	Draft Draft `json:"draft"`
}

func (h *Handler) Get(c *gin.Context) {
	d, found := h.store.Load(c.Request.Context())
	response.Success(c, http.StatusOK, DraftResponse{Found: found, Draft: d}, nil)
}

func (h *Handler) Put(c *gin.Context) {
	var d Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		h.logger.Debug("http save draft rejected", zap.Error(err))
		response.Fail(c, apperror.ErrInvalidInput)
		return
	}

	h.store.Save(c.Request.Context(), d)
	response.Success(c, http.StatusOK, DraftResponse{Found: true, Draft: d}, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	h.store.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}
