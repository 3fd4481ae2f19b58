package web

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the pages. The group is expected to run the route
// gate and the browser profile middleware; loginGuards run before the login
// form is processed.
func RegisterRoutes(pages *gin.RouterGroup, handler *Handler, loginGuards ...gin.HandlerFunc) {
	pages.GET("/", handler.Home)
	pages.GET("/login", handler.LoginPage)
	pages.POST("/login", append(loginGuards, handler.Login)...)
	pages.POST("/logout", handler.Logout)
	pages.GET("/dashboard", handler.Dashboard)

	pages.GET("/employees", handler.Employees)
	pages.GET("/employees/new", handler.NewEmployee)
	pages.POST("/employees/new", handler.CreateEmployee)
	pages.POST("/employees/new/reset", handler.ResetEmployeeForm)
	pages.GET("/employees/row/:index", handler.OpenRow)
	pages.GET("/employees/:id", handler.EmployeeDetail)
}
