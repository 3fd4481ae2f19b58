package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geraldDev01/onboarding-dashboard/internal/domain"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BrowserProfile(false))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetProfileID(c.Request.Context()))
	})

	t.Run("issues a profile", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, domain.ProfileCookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, cookies[0].Value, w.Body.String())
	})

	t.Run("keeps an existing profile", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: domain.ProfileCookieName, Value: id})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Empty(t, w.Result().Cookies())
		assert.Equal(t, id, w.Body.String())
	})
}
