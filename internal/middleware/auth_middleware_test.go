package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geraldDev01/onboarding-dashboard/internal/domain"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSessions struct {
	valid map[string]domain.Identity
}

func (f fakeSessions) CurrentUser(_ context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, apperror.New(apperror.CodeUnauthorized, "Not authenticated", http.StatusUnauthorized)
	}
	if id, ok := f.valid[token]; ok {
		return id, nil
	}
	return domain.Identity{}, errors.New("bad token")
}

var operator = domain.Identity{Email: "admin@rebuhr.com", Name: "Admin User"}

func gateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RouteGate(fakeSessions{valid: map[string]domain.Identity{"good": operator}},
		"/", "/login", "/static/*"))

	ok := func(c *gin.Context) {
		email := contextutil.GetUserEmail(c.Request.Context())
		c.String(http.StatusOK, "page:"+email)
	}
	r.GET("/", ok)
	r.GET("/login", ok)
	r.GET("/dashboard", ok)
	r.GET("/employees/new", ok)
	r.GET("/static/app.css", ok)
	return r
}

func TestRouteGate(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		cookie   string
		wantCode int
		wantLoc  string
		wantBody string
	}{
		{name: "public root without session", path: "/", wantCode: http.StatusOK, wantBody: "page:"},
		{name: "login without session", path: "/login", wantCode: http.StatusOK},
		{name: "static asset without session", path: "/static/app.css", wantCode: http.StatusOK},
		{name: "protected without session", path: "/dashboard", wantCode: http.StatusFound, wantLoc: "/login"},
		{name: "protected with invalid session", path: "/employees/new", cookie: "forged", wantCode: http.StatusFound, wantLoc: "/login"},
		{name: "protected with session", path: "/dashboard", cookie: "good", wantCode: http.StatusOK, wantBody: "page:admin@rebuhr.com"},
		{name: "login with session", path: "/login", cookie: "good", wantCode: http.StatusFound, wantLoc: "/dashboard"},
		{name: "login with invalid session", path: "/login", cookie: "forged", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: domain.SessionCookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			gateRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			}
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestRequireSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/v1/employees", RequireSession(fakeSessions{valid: map[string]domain.Identity{"good": operator}}),
		func(c *gin.Context) {
			id, ok := CurrentIdentity(c)
			assert.True(t, ok)
			c.String(http.StatusOK, id.Name)
		})

	t.Run("no cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":false`)
		assert.Contains(t, w.Body.String(), "Not authenticated")
	})

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
		req.AddCookie(&http.Cookie{Name: domain.SessionCookieName, Value: "good"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Admin User", w.Body.String())
	})
}

func TestIsPublic(t *testing.T) {
	public := []string{"/", "/login", "/static/*"}

	assert.True(t, isPublic("/", public))
	assert.True(t, isPublic("/static", public))
	assert.True(t, isPublic("/static/css/app.css", public))
	assert.False(t, isPublic("/staticky", public))
	assert.False(t, isPublic("/login/extra", public))
	assert.False(t, isPublic("/dashboard", public))
}
