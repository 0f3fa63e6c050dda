package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Parse returns every embedded page, addressable by file name.
func Parse() (*template.Template, error) {
	return template.New("").ParseFS(files, "*.html")
}
