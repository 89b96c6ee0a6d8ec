package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Content types of the rendered documents
const (
	SVGContentType  = "image/svg+xml; charset=utf-8"
	HTMLContentType = "text/html; charset=utf-8"
)

// PageData fills the editor page
type PageData struct {
	Title     string
	Session   string
	Threshold float64
	InFlight  bool
	Canvas    Canvas
}

// Renderer executes the embedded templates
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// SVG writes the canvas as a standalone SVG document
func (r *Renderer) SVG(w io.Writer, canvas Canvas) error {
	return r.execute(w, "canvas", canvas)
}

// Page writes the editor page with the canvas inlined
func (r *Renderer) Page(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "Graph Coloring"
	}
	return r.execute(w, "page", data)
}

// execute renders into a buffer first so a template error never leaves a
// partial document on w
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
