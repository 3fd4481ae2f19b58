package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/geraldDev01/onboarding-dashboard/internal/domain"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdentityKey is where the session identity is stored on the gin context.
const IdentityKey = "identity"

// SessionReader adalah interface lokal.
// Apapun package yang bisa membaca session dari token bisa masuk ke sini.
type SessionReader interface {
	CurrentUser(ctx context.Context, token string) (domain.Identity, error)
}

// RequireSession guards API routes: no valid session cookie means 401 JSON.
func RequireSession(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(domain.SessionCookieName)

		identity, err := sessions.CurrentUser(c.Request.Context(), token)
		if err != nil {
			response.Fail(c, err)
			c.Abort()
			return
		}

		attachIdentity(c, identity)
		c.Next()
	}
}

// RouteGate guards page routes. Paths outside public without a valid session
// are redirected to /login; a signed-in visitor of /login goes to /dashboard.
// A public entry ending in "/*" matches every path under that prefix.
func RouteGate(sessions SessionReader, public ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		token, _ := c.Cookie(domain.SessionCookieName)
		identity, err := sessions.CurrentUser(c.Request.Context(), token)
		signedIn := err == nil

		if signedIn {
			attachIdentity(c, identity)
		}

		switch {
		case path == "/login" && signedIn:
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
		case isPublic(path, public):
			c.Next()
		case !signedIn:
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
		default:
			c.Next()
		}
	}
}

// CurrentIdentity returns the identity attached by RequireSession or RouteGate.
func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}

func attachIdentity(c *gin.Context, identity domain.Identity) {
	c.Set(IdentityKey, identity)

	ctx := contextutil.WithUserEmail(c.Request.Context(), identity.Email)
	if l := contextutil.GetLogger(ctx, nil); l != nil {
		ctx = contextutil.WithLogger(ctx, l.With(zap.String("user", identity.Email)))
	}
	c.Request = c.Request.WithContext(ctx)
}

func isPublic(path string, public []string) bool {
	for _, p := range public {
		if prefix, ok := strings.CutSuffix(p, "/*"); ok {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == p {
			return true
		}
	}
	return false
}
