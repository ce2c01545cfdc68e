package form

// Document is the normalized payload handed to every renderer.
// Renderers read nothing else.
type Document struct {
	Static      StaticFields    `json:"static"`
	Modules     []DocModule     `json:"modules"`
	Evaluations []Evaluation    `json:"evaluations"`
	Frequency   []AttendanceRow `json:"frequency"`
	TotalCH     int             `json:"totalCH"`
}

// DocModule is a module with its 1-based display index resolved.
type DocModule struct {
	Index     int        `json:"index"`
	Title     string     `json:"title"`
	Intro     string     `json:"intro"`
	Resources []Resource `json:"resources"`
}

// Disciplina returns the course name used in export filenames.
func (doc *Document) Disciplina() string {
	return doc.Static.Get(KeyDisciplina)
}

// Builder assembles a Document from a validated draft.
type Builder interface {
	Build(d *Draft) *Document
}

// DocumentBuilder is the default Builder.
type DocumentBuilder struct {
	// DropHiddenValues clears values the form currently hides: dates behind
	// a toggle other than "Sim", the score or rubric the method does not
	// show, the custom webconf URL and every Autoavaliação detail.
	DropHiddenValues bool
}

// NewDocumentBuilder returns a builder with the given hidden-value policy.
func NewDocumentBuilder(dropHidden bool) *DocumentBuilder {
	return &DocumentBuilder{DropHiddenValues: dropHidden}
}

// Build copies the draft into a Document. Blank attendance rows are skipped
// and TotalCH is the sum of the remaining hours.
func (b *DocumentBuilder) Build(d *Draft) *Document {
	src := d.Clone()
	doc := &Document{
		Static:      src.Static,
		Modules:     make([]DocModule, 0, len(src.Modules)),
		Evaluations: make([]Evaluation, 0, len(src.Evaluations)),
		Frequency:   make([]AttendanceRow, 0, len(src.Frequency)),
	}
	if b.DropHiddenValues && !doc.Static.CustomWebconf() {
		doc.Static.Set(KeyWebconfURL, "")
	}

	for i, m := range src.Modules {
		dm := DocModule{Index: i + 1, Title: m.Title, Intro: m.Intro, Resources: m.Resources}
		if b.DropHiddenValues {
			for j := range dm.Resources {
				r := &dm.Resources[j]
				r.Start = visibleWindow(r.Start)
				r.End = visibleWindow(r.End)
				r.Evaluation = visibleSpec(r.Evaluation)
			}
		}
		doc.Modules = append(doc.Modules, dm)
	}

	for _, e := range src.Evaluations {
		if b.DropHiddenValues {
			if e.Identity.SelfAssessment() {
				e = Evaluation{Handle: e.Handle, Identity: e.Identity}
			} else {
				e.Start = visibleWindow(e.Start)
				e.End = visibleWindow(e.End)
				e.Evaluation = visibleSpec(e.Evaluation)
			}
		}
		doc.Evaluations = append(doc.Evaluations, e)
	}

	for _, row := range src.Frequency {
		if !row.Blank() {
			doc.Frequency = append(doc.Frequency, row)
		}
	}
	doc.TotalCH = TotalHours(doc.Frequency)
	return doc
}

func visibleWindow(w DateWindow) DateWindow {
	if w.Enabled.DateVisible() {
		return w
	}
	return DateWindow{Enabled: w.Enabled}
}

func visibleSpec(s EvaluationSpec) EvaluationSpec {
	out := EvaluationSpec{Method: s.Method}
	switch s.Method.VisibleInput() {
	case InputScore:
		out.Score = s.Score
	case InputRubric:
		out.Rubric = s.Rubric
	}
	return out
}
