package service

import (
	"uece-planner/internal/dto"
	"uece-planner/internal/form"
)

// patch applies request fields onto an entity and records which fields
// changed, so their validation marks can be dropped.
type patch struct {
	fields   []string
	revealed string // first field of a date block that became visible
}

func (p *patch) str(dst *string, src *string, field string) {
	if src == nil {
		return
	}
	*dst = *src
	p.fields = append(p.fields, field)
}

func (p *patch) window(w *form.DateWindow, in *dto.DateWindowInput, enabled, date, clock string) {
	if in == nil {
		return
	}
	if in.Enabled != nil {
		next, _ := form.ParseToggle(*in.Enabled)
		if form.ToggleTransition(w.Enabled, next) == form.BlockRevealed {
			p.revealed = date
		}
		w.Enabled = next
		p.fields = append(p.fields, enabled, date, clock)
	}
	p.str(&w.Date, in.Date, date)
	p.str(&w.Time, in.Time, clock)
}

func (p *patch) scoring(spec *form.EvaluationSpec, in *dto.EvaluationSpecInput) {
	if in == nil {
		return
	}
	if in.Method != nil {
		// switching method keeps the now hidden value
		spec.Method, _ = form.ParseEvalMethod(*in.Method)
		p.fields = append(p.fields, form.FieldMethod, form.FieldScore, form.FieldRubric)
	}
	p.str(&spec.Score, in.Score, form.FieldScore)
	p.str(&spec.Rubric, in.Rubric, form.FieldRubric)
}

func (p *patch) resource(r *form.Resource, req *dto.ResourceRequest) {
	if req.Type != nil {
		r.Type, _ = form.ParseResourceType(*req.Type)
		p.fields = append(p.fields, form.FieldType)
	}
	p.str(&r.Title, req.Title, form.FieldTitle)
	p.window(&r.Start, req.Start, form.FieldStartEnabled, form.FieldStartDate, form.FieldStartTime)
	p.window(&r.End, req.End, form.FieldEndEnabled, form.FieldEndDate, form.FieldEndTime)
	p.scoring(&r.Evaluation, req.Evaluation)
	p.str(&r.Description, req.Description, form.FieldDescription)
}

func (p *patch) evaluation(e *form.Evaluation, req *dto.EvaluationRequest) {
	if req.Identity != nil {
		e.Identity = form.NormalizeIdentity(*req.Identity)
		p.fields = append(p.fields, "identity")
	}
	p.str(&e.Type, req.Type, form.FieldType)
	p.window(&e.Start, req.Start, form.FieldStartEnabled, form.FieldStartDate, form.FieldStartTime)
	p.window(&e.End, req.End, form.FieldEndEnabled, form.FieldEndDate, form.FieldEndTime)
	p.scoring(&e.Evaluation, req.Evaluation)
	p.str(&e.Description, req.Description, form.FieldDescription)
}

func (p *patch) attendance(r *form.AttendanceRow, req *dto.AttendanceRowRequest) {
	p.str(&r.Date, req.Date, form.FieldAttendanceDate)
	p.str(&r.Hours, req.Hours, form.FieldHours)
	p.str(&r.Description, req.Description, form.FieldDescription)
}

// commit drops the marks of every touched field and moves focus to a
// freshly revealed date block.
func (s *planService) commit(id string, p *patch) {
	s.focus = nil
	s.unmark(id, p.fields...)
	if p.revealed != "" {
		s.focus = &focusTarget{id: id, field: p.revealed}
	}
	s.edited()
}
