package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/geraldDev01/onboarding-dashboard/internal/auth"
	"github.com/geraldDev01/onboarding-dashboard/internal/domain"
	"github.com/geraldDev01/onboarding-dashboard/internal/draft"
	"github.com/geraldDev01/onboarding-dashboard/internal/employee"
	"github.com/geraldDev01/onboarding-dashboard/internal/employee/form"
	"github.com/geraldDev01/onboarding-dashboard/internal/middleware"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/audit"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/clock"
	"github.com/geraldDev01/onboarding-dashboard/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	operatorEmail    = "admin@rebuhr.com"
	operatorPassword = "password123"
	profileID        = "0b8a3f8e-2f4c-4f7e-9a55-3c2b1d0e9f11"
)

var now = time.Date(2030, time.June, 15, 10, 0, 0, 0, time.UTC)

type site struct {
	router    *gin.Engine
	token     string
	employees employee.Service
}

func newSite(t *testing.T) *site {
	t.Helper()
	gin.SetMode(gin.TestMode)
	clk := clock.Fixed(now)

	hash, err := bcrypt.GenerateFromPassword([]byte(operatorPassword), bcrypt.MinCost)
	require.NoError(t, err)
	operator, err := auth.NewStaticOperator(operatorEmail, "Admin", "", string(hash))
	require.NoError(t, err)
	authSvc := auth.NewService(operator, auth.NewMemoryRevocationStore(clk), "secret", time.Hour, clk, zap.NewNop())

	schema := employee.NewSchema("@rebuhr.com", clk)
	employeeSvc := employee.NewService(employee.NewMemoryRepository(), schema, nil, audit.Nop{}, clk, employee.Options{}, zap.NewNop())
	drafts := draft.NewStore(draft.NewMemoryKV(), time.Hour, zap.NewNop())
	forms := form.NewRegistry(form.Fields("@rebuhr.com"), schema, employeeSvc, drafts, form.Options{
		DraftDebounce: time.Hour,
		Clock:         clk,
	}, time.Hour, zap.NewNop())
	t.Cleanup(forms.Close)

	tmpl, err := web.Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	pages := r.Group("", middleware.RouteGate(authSvc, "/", "/login"), middleware.BrowserProfile(false))
	web.RegisterRoutes(pages, web.NewHandler(web.Deps{
		Auth:        authSvc,
		LoginSchema: auth.NewLoginSchema("@rebuhr.com"),
		Employees:   employeeSvc,
		Table:       employee.NewTable(10),
		Forms:       forms,
		OrgDomain:   "@rebuhr.com",
	}, zap.NewNop()))

	return &site{router: r, employees: employeeSvc}
}

func (s *site) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.AddCookie(&http.Cookie{Name: domain.ProfileCookieName, Value: profileID})
	if s.token != "" {
		req.AddCookie(&http.Cookie{Name: domain.SessionCookieName, Value: s.token})
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *site) login(t *testing.T) {
	t.Helper()
	w := s.do(http.MethodPost, "/login", url.Values{"email": {operatorEmail}, "password": {operatorPassword}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == domain.SessionCookieName {
			s.token = c.Value
		}
	}
	require.NotEmpty(t, s.token)
}

func (s *site) hire(t *testing.T, name, email string) employee.EmployeeResponse {
	t.Helper()
	salary := 4000.0
	emp, err := s.employees.Create(context.Background(), employee.CreateEmployeeRequest{
		Name:       name,
		Email:      email,
		Department: "Engineering",
		HireDate:   "2030-06-20",
		Salary:     &salary,
		Country:    "El Salvador",
	})
	require.NoError(t, err)
	return emp
}

func TestPages_RouteGate(t *testing.T) {
	s := newSite(t)

	w := s.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	s.login(t)

	w = s.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome, Admin")
}

func TestPages_Login(t *testing.T) {
	s := newSite(t)

	w := s.do(http.MethodPost, "/login", url.Values{"email": {"admin@gmail.com"}, "password": {"123"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email must use @rebuhr.com domain")
	assert.Contains(t, w.Body.String(), "Password must be at least 6 characters")

	w = s.do(http.MethodPost, "/login", url.Values{"email": {operatorEmail}, "password": {"password124"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestPages_Logout(t *testing.T) {
	s := newSite(t)
	s.login(t)

	w := s.do(http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// The old token was revoked.
	w = s.do(http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestPages_CreateEmployee(t *testing.T) {
	s := newSite(t)
	s.login(t)

	w := s.do(http.MethodGet, "/employees/new", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `type="range"`)
	assert.Contains(t, w.Body.String(), `<select id="department"`)
	assert.Contains(t, w.Body.String(), `type="date"`)

	w = s.do(http.MethodPost, "/employees/new", url.Values{"name": {"Jo"}, "email": {"jo@gmail.com"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Name must have at least 3 characters")
	assert.Contains(t, w.Body.String(), "Email must use the domain @rebuhr.com")

	w = s.do(http.MethodPost, "/employees/new", url.Values{
		"name":       {"Jane Roe"},
		"email":      {"jane.roe@rebuhr.com"},
		"department": {"Engineering"},
		"country":    {"El Salvador"},
		"hireDate":   {"2030-06-16"},
		"salary":     {"5000"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/employees", w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/employees", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Jane Roe")
	assert.Contains(t, body, "$5,000.00")
	assert.Contains(t, body, "Employee Jane Roe created successfully!")

	// The notification is shown once.
	w = s.do(http.MethodGet, "/employees", nil)
	assert.NotContains(t, w.Body.String(), "created successfully")
}

func TestPages_EmployeesTable(t *testing.T) {
	s := newSite(t)
	s.login(t)

	w := s.do(http.MethodGet, "/employees?sort=name&dir=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "NAME ▲")
	assert.Contains(t, body, "dir=desc")
	assert.Contains(t, body, "No employees found.")

	w = s.do(http.MethodGet, "/employees/2b1f0c3e-8d4a-4e6b-9c7d-5a3e2f1b0c9d", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Employee not found")
}

func TestPages_OpenRow(t *testing.T) {
	s := newSite(t)
	s.login(t)

	ann := s.hire(t, "Ann Lee", "ann@rebuhr.com")
	bob := s.hire(t, "Bob Ray", "bob@rebuhr.com")

	// Newest first, so Bob is the first row.
	w := s.do(http.MethodGet, "/employees", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/employees/row/0?id="+bob.ID)
	assert.Contains(t, w.Body.String(), "/employees/row/1?id="+ann.ID)

	w = s.do(http.MethodGet, "/employees/row/1?sort=name&dir=desc", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/employees/"+ann.ID, w.Header().Get("Location"))

	// The row moved since the link was rendered: the id in the link wins.
	w = s.do(http.MethodGet, "/employees/row/0?id="+ann.ID, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/employees/"+ann.ID, w.Header().Get("Location"))

	w = s.do(http.MethodGet, "/employees/row/5", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/employees/row/first", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
