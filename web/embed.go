// Package web holds the server-rendered HTML templates, embedded into the binary.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded page template together with the shared layout.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}
