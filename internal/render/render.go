package render

import (
	"bytes"
	"errors"
	"time"

	"uece-planner/internal/form"
)

// ErrConverterUnavailable the external HTML to PDF converter is missing.
var ErrConverterUnavailable = errors.New("conversor de PDF indisponível")

// Format names an export format.
type Format string

const (
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
	FormatICS  Format = "ics"
)

// Renderer turns a Document into a downloadable artifact.
// Renderers read nothing but the document.
type Renderer interface {
	Render(doc *form.Document) (*bytes.Buffer, error)
	ContentType() string
	Extension() string
}

// Options shared by the renderers.
type Options struct {
	SupportEmail string
	Location     *time.Location
	Converter    Converter
}

// NewRegistry builds every renderer.
func NewRegistry(opts Options) map[Format]Renderer {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	html := NewHTMLRenderer(opts.SupportEmail)
	return map[Format]Renderer{
		FormatDOCX: NewDocxRenderer(opts.SupportEmail),
		FormatPDF:  NewPDFRenderer(html, opts.Converter),
		FormatHTML: html,
		FormatXLSX: NewXLSXRenderer(),
		FormatICS:  NewICSRenderer(opts.Location),
	}
}
