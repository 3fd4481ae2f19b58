package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/geraldDev01/onboarding-dashboard/internal/auth"
	"github.com/geraldDev01/onboarding-dashboard/internal/domain"
	"github.com/geraldDev01/onboarding-dashboard/internal/employee"
	"github.com/geraldDev01/onboarding-dashboard/internal/employee/form"
	"github.com/geraldDev01/onboarding-dashboard/internal/metrics"
	"github.com/geraldDev01/onboarding-dashboard/internal/middleware"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/audit"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/validation"
	"github.com/geraldDev01/onboarding-dashboard/internal/table"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const recentHires = 5

// Deps are the services behind the HTML pages.
type Deps struct {
	Auth         auth.Service
	LoginSchema  *auth.LoginSchema
	Employees    employee.Service
	Table        *table.Table[employee.EmployeeResponse]
	Forms        *form.Registry
	Audit        audit.Logger
	OrgDomain    string
	SecureCookie bool
}

type Handler struct {
	deps   Deps
	logger *zap.Logger
}

func NewHandler(deps Deps, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("web.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("web.handler")
	}
	if deps.Audit == nil {
		deps.Audit = audit.Nop{}
	}
	return &Handler{deps: deps, logger: l}
}

// page fills the values every template reads.
func page(c *gin.Context, title string, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	if identity, ok := middleware.CurrentIdentity(c); ok {
		data["User"] = &identity
	} else {
		data["User"] = (*domain.Identity)(nil)
	}
	if _, ok := data["Notifications"]; !ok {
		data["Notifications"] = []form.Notification(nil)
	}
	return data
}

func (h *Handler) renderError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	contextutil.GetLogger(c.Request.Context(), h.logger).Warn("page request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	c.HTML(httpErr.Status, "error.html", page(c, http.StatusText(httpErr.Status), gin.H{
		"Message": httpErr.Message,
	}))
}

func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", page(c, "Welcome", nil))
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", page(c, "Sign in", gin.H{
		"OrgDomain": h.deps.OrgDomain,
		"Errors":    validation.FieldErrors(nil),
	}))
}

func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	req := auth.LoginRequest{
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}

	renderLogin := func(status int, msg string, fe validation.FieldErrors) {
		c.HTML(status, "login.html", page(c, "Sign in", gin.H{
			"OrgDomain": h.deps.OrgDomain,
			"Email":     req.Email,
			"Error":     msg,
			"Errors":    fe,
		}))
	}

	payload, fe := h.deps.LoginSchema.Validate(req)
	if fe != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.ResultInvalid).Inc()
		renderLogin(http.StatusBadRequest, "", fe)
		return
	}

	token, user, err := h.deps.Auth.Login(ctx, payload.Email, payload.Password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.ResultFailure).Inc()
		h.deps.Audit.Log(ctx, audit.AuditLog{
			Action:  audit.ActionLoginFailed,
			Message: "login rejected",
			Meta:    map[string]any{"email": payload.Email, "ip": c.ClientIP()},
		})
		httpErr := apperror.ToHTTP(err)
		renderLogin(httpErr.Status, httpErr.Message, nil)
		return
	}

	metrics.LoginAttempts.WithLabelValues(metrics.ResultSuccess).Inc()
	auth.SetSessionCookie(c, token, h.deps.Auth.SessionTTL(), h.deps.SecureCookie)
	h.deps.Audit.Log(ctx, audit.AuditLog{
		Action:  audit.ActionLoginSucceeded,
		Message: "operator signed in",
		Meta:    map[string]any{"email": user.Email, "ip": c.ClientIP()},
	})
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	identity, _ := middleware.CurrentIdentity(c)

	if err := h.deps.Auth.Logout(ctx, auth.SessionToken(c)); err != nil {
		h.logger.Warn("page logout could not revoke token", zap.Error(err))
	}
	auth.ClearSessionCookie(c, h.deps.SecureCookie)

	h.deps.Audit.Log(ctx, audit.AuditLog{
		Action:  audit.ActionLogout,
		Message: "operator signed out",
		Meta:    map[string]any{"email": identity.Email, "ip": c.ClientIP()},
	})
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) Dashboard(c *gin.Context) {
	list, err := h.deps.Employees.GetAll(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	recent := list
	if len(recent) > recentHires {
		recent = recent[:recentHires]
	}
	c.HTML(http.StatusOK, "dashboard.html", page(c, "Dashboard", gin.H{
		"Total":  len(list),
		"Recent": recent,
	}))
}

func (h *Handler) Employees(c *gin.Context) {
	list, err := h.deps.Employees.GetAll(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	tbl := h.deps.Table
	query := employee.ParseTableQuery(c)
	state := query.State(tbl)
	view := tbl.Render(list, state)

	data := gin.H{
		"Query":         query.Q,
		"Headers":       headerViews(tbl, state, view),
		"Rows":          rowViews(state, tbl.PageSize(), view),
		"Shown":         len(view.Rows),
		"Filtered":      view.Filtered,
		"Total":         view.Total,
		"Page":          view.PageIndex + 1,
		"PageCount":     max(view.PageCount, 1),
		"ExportHref":    strings.Replace(directoryHref(state, tbl.PageSize()), "/employees", "/api/v1/employees/export.xlsx", 1),
		"Notifications": h.deps.Forms.Get(c.Request.Context()).Drain(),
	}
	if view.CanPrev {
		data["PrevHref"] = directoryHref(tbl.SetPage(state, view.PageIndex-1), tbl.PageSize())
	}
	if view.CanNext {
		data["NextHref"] = directoryHref(tbl.SetPage(state, view.PageIndex+1), tbl.PageSize())
	}
	c.HTML(http.StatusOK, "employees.html", page(c, "Employees", data))
}

// OpenRow opens the employee behind row :index of the directory view the
// query describes. When the directory changed since the page was rendered
// the id from the link wins.
func (h *Handler) OpenRow(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.renderError(c, apperror.ErrNotFound)
		return
	}
	list, err := h.deps.Employees.GetAll(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	tbl := h.deps.Table
	view := tbl.Render(list, employee.ParseTableQuery(c).State(tbl))

	want := c.Query("id")
	if index < 0 || index >= len(view.Rows) || (want != "" && view.Rows[index].Record.ID != want) {
		if want == "" {
			h.renderError(c, apperror.ErrNotFound)
			return
		}
		c.Redirect(http.StatusFound, "/employees/"+url.PathEscape(want))
		return
	}

	rec, _ := tbl.ClickRow(view, index)
	c.Redirect(http.StatusFound, "/employees/"+url.PathEscape(rec.ID))
}

func (h *Handler) EmployeeDetail(c *gin.Context) {
	emp, err := h.deps.Employees.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "employee_detail.html", page(c, emp.Name, gin.H{"Employee": emp}))
}

func (h *Handler) renderForm(c *gin.Context, status int, f *form.Form, snap form.Snapshot) {
	c.HTML(status, "employee_new.html", page(c, "New employee", gin.H{
		"Form":          snap,
		"Fields":        fieldViews(h.deps.Forms.Fields(), snap),
		"Notifications": f.Drain(),
	}))
}

func (h *Handler) NewEmployee(c *gin.Context) {
	f := h.deps.Forms.Get(c.Request.Context())
	h.renderForm(c, http.StatusOK, f, f.Snapshot())
}

// CreateEmployee applies every posted field to the profile's form and
// submits it. On success the notification is shown by the directory page.
func (h *Handler) CreateEmployee(c *gin.Context) {
	ctx := c.Request.Context()
	f := h.deps.Forms.Get(ctx)

	for _, field := range h.deps.Forms.Fields() {
		value, ok := c.GetPostForm(field.Name)
		if !ok {
			continue
		}
		if _, err := f.Set(field.Name, value); err != nil {
			h.renderFormError(c, f, err)
			return
		}
	}

	if _, err := f.Submit(ctx); err != nil {
		h.renderFormError(c, f, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/employees")
}

func (h *Handler) ResetEmployeeForm(c *gin.Context) {
	f := h.deps.Forms.Get(c.Request.Context())
	if _, err := f.Reset(); err != nil {
		h.renderFormError(c, f, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/employees/new")
}

func (h *Handler) renderFormError(c *gin.Context, f *form.Form, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		h.renderError(c, err)
		return
	}
	snap := f.Snapshot()
	if snap.SubmitError == "" && appErr.Details == nil {
		snap.SubmitError = appErr.Message
	}
	h.renderForm(c, appErr.HTTPStatus, f, snap)
}

func (h *Handler) NotFound(c *gin.Context) {
	h.renderError(c, apperror.ErrNotFound)
}
