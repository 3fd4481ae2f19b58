package auth

import (
	"github.com/geraldDev01/onboarding-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, loginRate rate.Limit, loginBurst int) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(loginRate, loginBurst), handler.Login)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", handler.Me)
	}
}
