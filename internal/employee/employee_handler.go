package employee

import (
	"bytes"
	"net/http"

	employeeerrors "github.com/geraldDev01/onboarding-dashboard/internal/employee/errors"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/response"
	"github.com/geraldDev01/onboarding-dashboard/internal/table"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	schema  *Schema
	table   *table.Table[EmployeeResponse]
	logger  *zap.Logger
}

func NewHandler(service Service, schema *Schema, tbl *table.Table[EmployeeResponse], logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, schema: schema, table: tbl, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.writeServiceError(c, apperror.ErrInvalidInput)
		return
	}

	req, typeErrs, err := h.schema.Decode(raw)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if typeErrs != nil {
		_, fe := h.schema.Validate(req)
		h.writeServiceError(c, employeeerrors.ValidationFailed(typeErrs.Merge(fe), FieldOrder...))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll serves the directory table: filter, sort and page come from the query.
func (h *Handler) GetAll(c *gin.Context) {
	list, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	state := ParseTableQuery(c).State(h.table)
	view := h.table.Render(list, state)

	items := make([]EmployeeResponse, len(view.Rows))
	for i, row := range view.Rows {
		items[i] = row.Record
	}
	meta := response.NewPaginationMeta(int64(view.Filtered), view.PageIndex+1, view.PageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Export downloads the filtered and sorted directory, unpaginated, as XLSX.
func (h *Handler) Export(c *gin.Context) {
	list, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	rows := h.table.Apply(list, ParseTableQuery(c).State(h.table))

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, h.table, rows); err != nil {
		h.logger.Error("export employees failed", zap.Error(err))
		h.writeServiceError(c, employeeerrors.ErrExportFailed)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="employees.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
