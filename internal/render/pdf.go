package render

import (
	"bytes"
	"fmt"

	"uece-planner/internal/form"
)

// Converter turns an HTML page into PDF bytes.
type Converter interface {
	Convert(html []byte) ([]byte, error)
}

// PDFRenderer renders the HTML page and hands it to a Converter.
type PDFRenderer struct {
	html      *HTMLRenderer
	converter Converter
}

// NewPDFRenderer creates the PDF renderer. A nil converter makes every
// render fail with ErrConverterUnavailable.
func NewPDFRenderer(html *HTMLRenderer, converter Converter) *PDFRenderer {
	return &PDFRenderer{html: html, converter: converter}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Extension() string { return string(FormatPDF) }

// Available reports whether a converter is configured.
func (r *PDFRenderer) Available() bool { return r.converter != nil }

func (r *PDFRenderer) Render(doc *form.Document) (*bytes.Buffer, error) {
	if r.converter == nil {
		return nil, ErrConverterUnavailable
	}
	page, err := r.html.Render(doc)
	if err != nil {
		return nil, err
	}
	out, err := r.converter.Convert(page.Bytes())
	if err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return bytes.NewBuffer(out), nil
}
