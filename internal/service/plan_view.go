package service

import (
	"uece-planner/internal/dto"
	"uece-planner/internal/form"
)

// ────────────────────── Projection ──────────────────────

func (s *planService) viewLocked() *dto.PlanView {
	d := s.draft
	v := &dto.PlanView{
		Static:      make([]dto.StaticFieldView, 0, len(form.StaticFieldSpecs())),
		Modules:     make([]dto.ModuleView, 0, len(d.Modules)),
		Evaluations: make([]dto.EvaluationView, 0, len(d.Evaluations)),
		Attendance:  make([]dto.AttendanceView, 0, len(d.Frequency)),
		TotalHours:  form.TotalHours(d.Frequency),
		Status:      *s.statusLocked(),
	}

	for _, spec := range form.StaticFieldSpecs() {
		_, invalid := s.marks[markKey{field: string(spec.Key)}]
		required := spec.Required
		visible := true
		if spec.Key == form.KeyWebconfURL {
			visible = d.Static.CustomWebconf()
			required = visible
		}
		v.Static = append(v.Static, dto.StaticFieldView{
			Key:      string(spec.Key),
			Label:    spec.Label,
			Value:    d.Static.Get(spec.Key),
			Required: required,
			Visible:  visible,
			Invalid:  invalid,
		})
	}
	for i := range d.Modules {
		v.Modules = append(v.Modules, s.moduleView(i, &d.Modules[i]))
	}
	for i := range d.Evaluations {
		v.Evaluations = append(v.Evaluations, s.evaluationView(&d.Evaluations[i]))
	}
	for i := range d.Frequency {
		v.Attendance = append(v.Attendance, s.attendanceView(&d.Frequency[i]))
	}
	if s.focus != nil {
		v.Focus = &dto.FocusView{ID: s.focus.id, Field: s.focus.field}
	}
	return v
}

func (s *planService) moduleView(idx int, m *form.Module) dto.ModuleView {
	mv := dto.ModuleView{
		ID:        m.Handle,
		Index:     idx + 1,
		Label:     form.ModuleLabel(idx+1, m.Title),
		Title:     m.Title,
		Intro:     m.Intro,
		Resources: make([]dto.ResourceView, 0, len(m.Resources)),
		Invalid:   s.marked(m.Handle),
	}
	for i := range m.Resources {
		mv.Resources = append(mv.Resources, s.resourceView(&m.Resources[i]))
	}
	return mv
}

func (s *planService) resourceView(r *form.Resource) dto.ResourceView {
	return dto.ResourceView{
		ID:          r.Handle,
		Label:       form.ResourceLabel(r.Type),
		Type:        string(r.Type),
		Title:       r.Title,
		Start:       windowView(r.Start),
		End:         windowView(r.End),
		Evaluation:  specView(r.Evaluation),
		Description: r.Description,
		Invalid:     s.marked(r.Handle),
	}
}

func (s *planService) evaluationView(e *form.Evaluation) dto.EvaluationView {
	ev := dto.EvaluationView{
		ID:             e.Handle,
		Label:          form.EvaluationLabel(e.Identity),
		Identity:       string(e.Identity),
		SelfAssessment: e.Identity.SelfAssessment(),
		Type:           e.Type,
		Start:          windowView(e.Start),
		End:            windowView(e.End),
		Evaluation:     specView(e.Evaluation),
		Description:    e.Description,
		Invalid:        s.marked(e.Handle),
	}
	if ev.SelfAssessment {
		ev.Notice = form.SelfAssessmentNotice
		ev.Start.Visible = false
		ev.End.Visible = false
		ev.Evaluation.ScoreVisible = false
		ev.Evaluation.RubricVisible = false
	}
	return ev
}

func (s *planService) attendanceView(r *form.AttendanceRow) dto.AttendanceView {
	return dto.AttendanceView{
		ID:          r.Handle,
		Date:        r.Date,
		Hours:       r.Hours,
		Description: r.Description,
		Invalid:     s.marked(r.Handle),
	}
}

func windowView(w form.DateWindow) dto.DateWindowView {
	return dto.DateWindowView{
		Enabled: string(w.Enabled),
		Date:    w.Date,
		Time:    w.Time,
		Visible: w.Enabled.DateVisible(),
	}
}

func specView(spec form.EvaluationSpec) dto.EvaluationSpecView {
	input := spec.Method.VisibleInput()
	return dto.EvaluationSpecView{
		Method:        string(spec.Method),
		Score:         spec.Score,
		Rubric:        spec.Rubric,
		ScoreVisible:  input == form.InputScore,
		RubricVisible: input == form.InputRubric,
	}
}
