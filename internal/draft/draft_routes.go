package draft

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the draft endpoints on an employees group that
// already carries the session and profile middleware.
func RegisterRoutes(employees *gin.RouterGroup, handler *Handler) {
	employees.GET("/draft", handler.Get)
	employees.PUT("/draft", handler.Put)
	employees.DELETE("/draft", handler.Delete)
}
