package form

import "strings"

// DateWindow is an optional date+time pair gated by a toggle.
type DateWindow struct {
	Enabled Toggle `json:"enabled"`
	Date    string `json:"date"` // YYYY-MM-DD
	Time    string `json:"time"` // HH:MM
}

// EvaluationSpec is the scoring block shared by resources and evaluations.
type EvaluationSpec struct {
	Method EvalMethod `json:"method"`
	Score  string     `json:"score"`
	Rubric string     `json:"rubric"`
}

// Resource is a gradable or informational item owned by one module.
type Resource struct {
	Handle      string         `json:"-"`
	Type        ResourceType   `json:"type"`
	Title       string         `json:"title"`
	Start       DateWindow     `json:"start"`
	End         DateWindow     `json:"end"`
	Evaluation  EvaluationSpec `json:"evaluation"`
	Description string         `json:"description"`
}

// Module is a content unit. Its display index is its position plus one
// and is never stored on the value itself.
type Module struct {
	Handle    string     `json:"-"`
	Title     string     `json:"title"`
	Intro     string     `json:"intro"`
	Resources []Resource `json:"resources"`
}

// Evaluation is a course-level graded activity.
type Evaluation struct {
	Handle      string         `json:"-"`
	Identity    Identity       `json:"identity"`
	Type        string         `json:"type"`
	Start       DateWindow     `json:"start"`
	End         DateWindow     `json:"end"`
	Evaluation  EvaluationSpec `json:"evaluation"`
	Description string         `json:"description"`
}

// AttendanceRow is one dated entry of the attendance distribution.
// Hours is kept as typed so that invalid input survives until validation.
type AttendanceRow struct {
	Handle      string `json:"-"`
	Date        string `json:"date"`
	Hours       string `json:"hours"`
	Description string `json:"description"`
}

// Blank reports whether every field of the row is empty.
// Blank rows are dropped from persisted and exported data.
func (r AttendanceRow) Blank() bool {
	return r.Date == "" && r.Hours == "" && r.Description == ""
}

// Draft is the full form state: the unit of persistence and export.
type Draft struct {
	Static      StaticFields    `json:"static"`
	Modules     []Module        `json:"modules"`
	Evaluations []Evaluation    `json:"evaluations"`
	Frequency   []AttendanceRow `json:"frequency"`
}

// NewDraft returns an empty draft with no entities.
func NewDraft() *Draft {
	return &Draft{
		Static:      StaticFields{KeyWebconfType: WebconfStandard},
		Modules:     []Module{},
		Evaluations: []Evaluation{},
		Frequency:   []AttendanceRow{},
	}
}

// DefaultEvaluationIdentities seeds a fresh plan.
var DefaultEvaluationIdentities = []Identity{
	IdentitySelfAssessment, IdentityNPC, IdentityNPCRetake, IdentityNEF,
}

// NewDefaultDraft returns the seeded state of a fresh plan: two empty
// modules, the default evaluations and one empty attendance row.
func NewDefaultDraft() *Draft {
	d := NewDraft()
	d.Modules = append(d.Modules, Module{Resources: []Resource{}}, Module{Resources: []Resource{}})
	for _, id := range DefaultEvaluationIdentities {
		d.Evaluations = append(d.Evaluations, Evaluation{Identity: id})
	}
	d.Frequency = append(d.Frequency, AttendanceRow{})
	return d
}

// Clone returns a deep copy of the draft, handles included.
func (d *Draft) Clone() *Draft {
	out := &Draft{
		Static:      d.Static.Clone(),
		Modules:     make([]Module, len(d.Modules)),
		Evaluations: make([]Evaluation, len(d.Evaluations)),
		Frequency:   make([]AttendanceRow, len(d.Frequency)),
	}
	for i, m := range d.Modules {
		m.Resources = append([]Resource(nil), m.Resources...)
		if m.Resources == nil {
			m.Resources = []Resource{}
		}
		out.Modules[i] = m
	}
	copy(out.Evaluations, d.Evaluations)
	copy(out.Frequency, d.Frequency)
	return out
}

// ── Labels ──

// ModuleLabel renders a module card title: "Módulo {n}" or "Módulo {n} – {title}".
func ModuleLabel(index int, title string) string {
	prefix := "Módulo " + itoa(index)
	if title == "" {
		return prefix
	}
	return prefix + " – " + title
}

// ResourceLabel renders a resource entry title.
func ResourceLabel(t ResourceType) string {
	if t == ResourceUnset {
		return "Novo Recurso"
	}
	return "Recurso – " + string(t)
}

// EvaluationLabel renders an evaluation card title.
func EvaluationLabel(id Identity) string {
	return "Avaliação – " + string(id)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
