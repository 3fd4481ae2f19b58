package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geraldDev01/onboarding-dashboard/internal/app"
	"github.com/geraldDev01/onboarding-dashboard/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := config.FromMap(map[string]string{
		"EMPLOYEE_CREATE_DELAY": "0s",
		"EMPLOYEE_LIST_DELAY":   "0s",
		"LOGIN_RATE_LIMIT":      "100",
		"LOGIN_RATE_BURST":      "100",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router, err := app.BuildApp(ctx, cfg, &app.Infra{}, zap.NewNop())
	require.NoError(t, err)
	return router
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBuildApp_Health(t *testing.T) {
	router := setupApp(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestBuildApp_UnknownAPIRoute(t *testing.T) {
	router := setupApp(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Ok)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestBuildApp_UnknownPage(t *testing.T) {
	router := setupApp(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestBuildApp_ProtectedRoutes(t *testing.T) {
	router := setupApp(t)

	page := serve(router, httptest.NewRequest(http.MethodGet, "/employees", nil))
	assert.Equal(t, http.StatusFound, page.Code)
	assert.Equal(t, "/login", page.Header().Get("Location"))

	api := serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))
	assert.Equal(t, http.StatusUnauthorized, api.Code)
}

func TestBuildApp_LoginThenListEmployees(t *testing.T) {
	router := setupApp(t)

	login := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"admin@rebuhr.com","password":"password123"}`))
	login.Header.Set("Content-Type", "application/json")
	lw := serve(router, login)
	require.Equal(t, http.StatusOK, lw.Code)

	cookies := lw.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
}
