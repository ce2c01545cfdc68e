package render

import (
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	"uece-planner/internal/form"
)

func renderCalendar(t *testing.T, doc *form.Document) *ics.Calendar {
	t.Helper()
	r := NewICSRenderer(time.UTC)
	r.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	buf, err := r.Render(doc)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	cal, err := ics.ParseCalendar(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("calendário inválido: %v", err)
	}
	return cal
}

func summaries(cal *ics.Calendar) []string {
	var out []string
	for _, ev := range cal.Events() {
		if p := ev.GetProperty(ics.ComponentPropertySummary); p != nil {
			out = append(out, p.Value)
		}
	}
	return out
}

func TestICSRenderer_Events(t *testing.T) {
	cal := renderCalendar(t, sampleDocument())

	got := summaries(cal)
	if len(got) != 2 {
		t.Fatalf("esperado 2 eventos, obtido %d: %v", len(got), got)
	}
	if !strings.HasPrefix(got[0], "Módulo 1") {
		t.Errorf("primeiro evento: obtido %q", got[0])
	}
	if !strings.HasPrefix(got[1], "NPC") {
		t.Errorf("segundo evento: obtido %q", got[1])
	}
}

func TestICSRenderer_StableUIDs(t *testing.T) {
	a := renderCalendar(t, sampleDocument()).Events()
	b := renderCalendar(t, sampleDocument()).Events()
	for i := range a {
		if a[i].Id() != b[i].Id() {
			t.Errorf("UID mudou entre exportações: %q != %q", a[i].Id(), b[i].Id())
		}
	}
}

func TestICSRenderer_DeadlineOnly(t *testing.T) {
	doc := sampleDocument()
	res := &doc.Modules[0].Resources[0]
	res.Start = form.DateWindow{Enabled: form.ToggleNo}
	res.End = form.DateWindow{Enabled: form.ToggleYes, Date: "2025-03-20"}
	doc.Evaluations = nil

	got := summaries(renderCalendar(t, doc))
	if len(got) != 1 || !strings.HasPrefix(got[0], "Prazo: ") {
		t.Errorf("esperado um prazo, obtido %v", got)
	}
}

func TestICSRenderer_NoDates(t *testing.T) {
	doc := sampleDocument()
	doc.Modules[0].Resources[0].Start.Enabled = form.ToggleUnset
	doc.Evaluations = doc.Evaluations[:1]

	if got := renderCalendar(t, doc).Events(); len(got) != 0 {
		t.Errorf("esperado nenhum evento, obtido %d", len(got))
	}
}
