package templates

import (
	"embed"
	"fmt"
	"html/template"
)

// FS holds the dashboard's HTML templates.
//
//go:embed *.html
var FS embed.FS

// ParseTemplates parses HTML templates from the embedded filesystem.
// It takes a variadic list of template file paths and returns a parsed template
// or an error if parsing fails.
func ParseTemplates(files ...string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"subtract": func(a, b int) int {
			return a - b
		},
		"fixed": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
	}

	return template.New("").Funcs(funcMap).ParseFS(FS, files...)
}
