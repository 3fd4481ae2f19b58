package auth

import (
	"net/http"
	"time"

	"github.com/geraldDev01/onboarding-dashboard/internal/domain"

	"github.com/gin-gonic/gin"
)

// SetSessionCookie persists token in the session cookie for ttl.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie overwrites the session cookie with an expired empty value.
// Attributes must match SetSessionCookie or browsers keep the old one.
func ClearSessionCookie(c *gin.Context, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     domain.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionToken returns the raw session cookie, or "" when absent.
func SessionToken(c *gin.Context) string {
	token, err := c.Cookie(domain.SessionCookieName)
	if err != nil {
		return ""
	}
	return token
}
