package web

import (
	"embed"
	"html/template"

	"github.com/geraldDev01/onboarding-dashboard/internal/employee"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates. Install the result with
// gin's Engine.SetHTMLTemplate.
func Templates() (*template.Template, error) {
	return template.New("pages").
		Funcs(template.FuncMap{
			"hireDate": employee.FormatHireDate,
			"salary":   employee.FormatSalary,
		}).
		ParseFS(templateFS, "templates/*.html")
}
