package httpapi

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed views/*.tmpl
var viewsFS embed.FS

//go:embed public
var publicFS embed.FS

// loadViews parses the page templates from dir, or the embedded set when dir is empty.
func loadViews(dir string) (*template.Template, error) {
	if dir == "" {
		return template.ParseFS(viewsFS, "views/*.tmpl")
	}

	tmpl, err := template.ParseGlob(filepath.Join(dir, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("load views from %s: %w", dir, err)
	}
	return tmpl, nil
}

// publicFiles returns the static asset tree served at the site root.
func publicFiles(dir string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(publicFS, "public")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("public dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("public dir %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
