package form

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the form endpoints on the employees group.
// submitGuards run in front of submit, e.g. idempotency.
func RegisterRoutes(employees *gin.RouterGroup, handler *Handler, submitGuards ...gin.HandlerFunc) {
	employees.GET("/form", handler.Get)
	employees.GET("/form/fields", handler.Fields)
	employees.PATCH("/form", handler.Set)
	employees.DELETE("/form", handler.Reset)
	employees.POST("/form/submit", append(submitGuards, handler.Submit)...)
}
