package render

import (
	"bytes"
	"fmt"
	"os/exec"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// WkhtmltopdfConverter drives the wkhtmltopdf binary.
type WkhtmltopdfConverter struct {
	dpi uint
}

// NewWkhtmltopdfConverter locates the wkhtmltopdf binary, using path when
// set and PATH otherwise. It returns ErrConverterUnavailable when the binary
// cannot be found.
func NewWkhtmltopdfConverter(path string, dpi uint) (*WkhtmltopdfConverter, error) {
	if path != "" {
		wkhtmltopdf.SetPath(path)
	} else if _, err := exec.LookPath("wkhtmltopdf"); err != nil {
		return nil, ErrConverterUnavailable
	}
	if _, err := wkhtmltopdf.NewPDFGenerator(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConverterUnavailable, err)
	}
	if dpi == 0 {
		dpi = 150
	}
	return &WkhtmltopdfConverter{dpi: dpi}, nil
}

// Convert renders an A4 portrait PDF.
func (c *WkhtmltopdfConverter) Convert(html []byte) ([]byte, error) {
	gen, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConverterUnavailable, err)
	}
	gen.Dpi.Set(c.dpi)
	gen.PageSize.Set(wkhtmltopdf.PageSizeA4)
	gen.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	gen.MarginTop.Set(10)
	gen.MarginBottom.Set(10)
	gen.MarginLeft.Set(10)
	gen.MarginRight.Set(10)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.Encoding.Set("utf-8")
	gen.AddPage(page)

	if err := gen.Create(); err != nil {
		return nil, err
	}
	return gen.Bytes(), nil
}
