package middleware

import (
	"net/http"

	"github.com/geraldDev01/onboarding-dashboard/internal/domain"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const profileCookieMaxAge = 365 * 24 * 60 * 60

// BrowserProfile makes sure every request carries a browser profile id,
// issuing the profile cookie on first sight.
func BrowserProfile(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(domain.ProfileCookieName)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     domain.ProfileCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   profileCookieMaxAge,
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set("profile_id", id)
		c.Request = c.Request.WithContext(contextutil.WithProfileID(c.Request.Context(), id))
		c.Next()
	}
}
