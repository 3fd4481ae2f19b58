package employee

import (
	"github.com/geraldDev01/onboarding-dashboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the directory endpoints on a group that already
// requires a session. createGuards run in front of POST, e.g. idempotency.
func RegisterRoutes(employees *gin.RouterGroup, handler *Handler, createGuards ...gin.HandlerFunc) {
	employees.GET("", middleware.RateLimitByUser(5, 20), handler.GetAll)
	employees.GET("/export.xlsx", middleware.RateLimitByUser(1, 3), handler.Export)
	employees.GET("/:id", middleware.RateLimitByUser(5, 20), handler.GetByID)

	create := append([]gin.HandlerFunc{middleware.RateLimitByUser(1, 5)}, createGuards...)
	employees.POST("", append(create, handler.Create)...)
}
