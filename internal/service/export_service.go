package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"uece-planner/internal/form"
	"uece-planner/internal/render"
)

// ── Export errors ──

var (
	ErrValidationFailed   = errors.New("existem campos obrigatórios não preenchidos")
	ErrExportUnavailable  = errors.New("formato de exportação indisponível")
	ErrUnsupportedFormat  = errors.New("formato de exportação não suportado")
	ErrExportGenerateFail = errors.New("falha ao gerar o documento")
)

// ValidationFailure carries the violations that blocked an export.
type ValidationFailure struct {
	Result form.ValidationResult
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("%s (%d campos)", ErrValidationFailed.Error(), len(e.Result.Violations))
}

func (e *ValidationFailure) Unwrap() error { return ErrValidationFailed }

// DraftSource hands out a validated snapshot of the draft to export.
type DraftSource interface {
	ValidatedDraft() (*form.Draft, form.ValidationResult)
}

type staticSource struct {
	draft *form.Draft
}

// NewDraftSource wraps a fixed draft, e.g. one read from a file.
func NewDraftSource(d *form.Draft) DraftSource {
	return staticSource{draft: d}
}

func (s staticSource) ValidatedDraft() (*form.Draft, form.ValidationResult) {
	return s.draft.Clone(), form.Validate(s.draft)
}

// Export is one rendered document.
type Export struct {
	Buffer      *bytes.Buffer
	Filename    string
	ContentType string
}

// ExportService validates the draft, builds the document and renders it.
//
// Nothing is built or rendered while the draft has violations: the caller
// gets a *ValidationFailure with every offending field instead.
type ExportService interface {
	Export(ctx context.Context, format render.Format) (*Export, error)
	// Preview returns the document the renderers would receive.
	Preview(ctx context.Context) (*form.Document, error)
	Formats() []render.Format
}

type exportService struct {
	source    DraftSource
	builder   form.Builder
	renderers map[render.Format]render.Renderer
	logger    *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(source DraftSource, builder form.Builder, renderers map[render.Format]render.Renderer, logger *zap.Logger) ExportService {
	return &exportService{source: source, builder: builder, renderers: renderers, logger: logger}
}

// ────────────────────── Export ──────────────────────

func (s *exportService) Export(ctx context.Context, format render.Format) (*Export, error) {
	r, ok := s.renderers[format]
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	if pr, ok := r.(*render.PDFRenderer); ok && !pr.Available() {
		return nil, ErrExportUnavailable
	}

	doc, err := s.Preview(ctx)
	if err != nil {
		return nil, err
	}

	buf, err := r.Render(doc)
	if err != nil {
		if errors.Is(err, render.ErrConverterUnavailable) {
			s.logger.Warn("conversor indisponível", zap.String("format", string(format)), zap.Error(err))
			return nil, ErrExportUnavailable
		}
		s.logger.Error("falha ao renderizar documento", zap.String("format", string(format)), zap.Error(err))
		return nil, ErrExportGenerateFail
	}

	filename := render.Filename(doc, r.Extension())
	s.logger.Info("documento exportado",
		zap.String("format", string(format)),
		zap.String("filename", filename),
		zap.Int("size", buf.Len()),
	)
	return &Export{Buffer: buf, Filename: filename, ContentType: r.ContentType()}, nil
}

// ────────────────────── Preview ──────────────────────

func (s *exportService) Preview(ctx context.Context) (*form.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d, res := s.source.ValidatedDraft()
	if !res.Valid {
		return nil, &ValidationFailure{Result: res}
	}
	return s.builder.Build(d), nil
}

func (s *exportService) Formats() []render.Format {
	out := make([]render.Format, 0, len(s.renderers))
	for _, f := range []render.Format{render.FormatDOCX, render.FormatPDF, render.FormatHTML, render.FormatXLSX, render.FormatICS} {
		if _, ok := s.renderers[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
