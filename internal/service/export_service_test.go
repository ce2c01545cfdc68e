package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"uece-planner/internal/form"
	"uece-planner/internal/render"
)

// countingBuilder records how often the document is built.
type countingBuilder struct {
	calls int
	inner form.Builder
}

func (b *countingBuilder) Build(d *form.Draft) *form.Document {
	b.calls++
	return b.inner.Build(d)
}

type stubRenderer struct {
	ext   string
	err   error
	calls int
}

func (r *stubRenderer) Render(doc *form.Document) (*bytes.Buffer, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return bytes.NewBufferString("conteúdo de " + doc.Disciplina()), nil
}

func (r *stubRenderer) ContentType() string { return "application/octet-stream" }
func (r *stubRenderer) Extension() string   { return r.ext }

func validDraft() *form.Draft {
	d := form.NewDraft()
	for _, spec := range form.StaticFieldSpecs() {
		if spec.Required {
			d.Static.Set(spec.Key, "preenchido")
		}
	}
	d.Static.Set(form.KeyDisciplina, "Algoritmos")
	return d
}

func newTestExport(src DraftSource, renderers map[render.Format]render.Renderer) (ExportService, *countingBuilder) {
	b := &countingBuilder{inner: form.NewDocumentBuilder(false)}
	return NewExportService(src, b, renderers, zap.NewNop()), b
}

func TestExportService_Export(t *testing.T) {
	r := &stubRenderer{ext: "docx"}
	svc, b := newTestExport(NewDraftSource(validDraft()), map[render.Format]render.Renderer{render.FormatDOCX: r})

	out, err := svc.Export(context.Background(), render.FormatDOCX)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if out.Filename != "Planejamento_Algoritmos.docx" {
		t.Errorf("nome do arquivo: obtido %q", out.Filename)
	}
	if out.Buffer.String() != "conteúdo de Algoritmos" {
		t.Errorf("conteúdo: obtido %q", out.Buffer.String())
	}
	if b.calls != 1 || r.calls != 1 {
		t.Errorf("esperado uma montagem e uma renderização, obtido %d/%d", b.calls, r.calls)
	}
}

func TestExportService_InvalidDraftIsNotBuilt(t *testing.T) {
	r := &stubRenderer{ext: "docx"}
	svc, b := newTestExport(NewDraftSource(form.NewDefaultDraft()), map[render.Format]render.Renderer{render.FormatDOCX: r})

	_, err := svc.Export(context.Background(), render.FormatDOCX)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("esperado ErrValidationFailed, obtido %v", err)
	}
	var vf *ValidationFailure
	if !errors.As(err, &vf) || vf.Result.FirstInvalid == nil {
		t.Fatal("erro deveria carregar as violações")
	}
	if b.calls != 0 || r.calls != 0 {
		t.Errorf("nada deveria ser montado nem renderizado, obtido %d/%d", b.calls, r.calls)
	}
}

func TestExportService_Errors(t *testing.T) {
	ctx := context.Background()
	renderers := map[render.Format]render.Renderer{
		render.FormatDOCX: &stubRenderer{ext: "docx", err: errors.New("zip quebrado")},
		render.FormatPDF:  render.NewPDFRenderer(render.NewHTMLRenderer(""), nil),
		render.FormatXLSX: &stubRenderer{ext: "xlsx", err: render.ErrConverterUnavailable},
	}
	svc, _ := newTestExport(NewDraftSource(validDraft()), renderers)

	cases := []struct {
		format render.Format
		want   error
	}{
		{render.FormatDOCX, ErrExportGenerateFail},
		{render.FormatPDF, ErrExportUnavailable},
		{render.FormatXLSX, ErrExportUnavailable},
		{render.Format("odt"), ErrUnsupportedFormat},
	}
	for _, tc := range cases {
		if _, err := svc.Export(ctx, tc.format); !errors.Is(err, tc.want) {
			t.Errorf("%s: esperado %v, obtido %v", tc.format, tc.want, err)
		}
	}
}

func TestExportService_PreviewFromSession(t *testing.T) {
	f := newPlanFixture(t, newMockDraftRepo(), 0)
	svc, _ := newTestExport(f.svc, nil)

	if _, err := svc.Preview(context.Background()); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("plano padrão não deveria ser exportável, obtido %v", err)
	}
	if v := f.svc.View(); v.Focus == nil {
		t.Error("exportar um plano inválido deveria marcar os campos e mover o foco")
	}
}

func TestExportService_Formats(t *testing.T) {
	svc, _ := newTestExport(NewDraftSource(validDraft()), render.NewRegistry(render.Options{}))
	got := svc.Formats()
	if len(got) != 5 || got[0] != render.FormatDOCX {
		t.Errorf("formatos: obtido %v", got)
	}
}

func TestExportService_NonISODateBlocksCalendar(t *testing.T) {
	d := validDraft()
	d.Modules = []form.Module{{
		Handle: "m1",
		Title:  "Introdução",
		Intro:  "Apresentação",
		Resources: []form.Resource{{
			Handle:      "r1",
			Type:        form.ResourceTask,
			Title:       "Tarefa 1",
			Start:       form.DateWindow{Enabled: form.ToggleYes, Date: "10/03/2025", Time: "08:00"},
			End:         form.DateWindow{Enabled: form.ToggleNo},
			Evaluation:  form.EvaluationSpec{Method: form.MethodScore, Score: "2"},
			Description: "Lista",
		}},
	}}
	svc, b := newTestExport(NewDraftSource(d), map[render.Format]render.Renderer{
		render.FormatICS: render.NewICSRenderer(nil),
	})

	_, err := svc.Export(context.Background(), render.FormatICS)
	if errors.Is(err, ErrExportGenerateFail) {
		t.Fatal("data fora do formato deveria ser barrada na validação, não na geração")
	}
	var vf *ValidationFailure
	if !errors.As(err, &vf) {
		t.Fatalf("esperado *ValidationFailure, obtido %v", err)
	}
	if vf.Result.FirstInvalid.Reason != form.ReasonBadDate {
		t.Errorf("motivo inesperado: %+v", vf.Result.FirstInvalid)
	}
	if b.calls != 0 {
		t.Errorf("documento não deveria ser montado, montagens: %d", b.calls)
	}
}
