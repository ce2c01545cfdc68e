package form

import (
	"fmt"
	"strconv"
	"strings"
)

// Reason describes why a field was flagged.
type Reason string

const (
	ReasonRequired   Reason = "required"
	ReasonUnset      Reason = "unset"
	ReasonNotNumeric Reason = "not_numeric"
	ReasonHoursRange Reason = "hours_out_of_range"
	ReasonBadDate    Reason = "invalid_date"
	ReasonBadTime    Reason = "invalid_time"
)

// Violation is one flagged field. Handle is empty for static fields.
type Violation struct {
	Path   string `json:"path"`
	Handle string `json:"handle,omitempty"`
	Field  string `json:"field"`
	Reason Reason `json:"reason"`
}

// ValidationResult lists every violation in walk order.
// FirstInvalid is the field that receives focus, nil when valid.
type ValidationResult struct {
	Valid        bool        `json:"valid"`
	FirstInvalid *Violation  `json:"firstInvalidField"`
	Violations   []Violation `json:"violations"`
}

// Field names used in violations and marks.
const (
	FieldTitle          = "title"
	FieldIntro          = "intro"
	FieldType           = "type"
	FieldDescription    = "description"
	FieldStartEnabled   = "start.enabled"
	FieldStartDate      = "start.date"
	FieldStartTime      = "start.time"
	FieldEndEnabled     = "end.enabled"
	FieldEndDate        = "end.date"
	FieldEndTime        = "end.time"
	FieldMethod         = "evaluation.method"
	FieldScore          = "evaluation.score"
	FieldRubric         = "evaluation.rubric"
	FieldAttendanceDate = "date"
	FieldHours          = "hours"
)

type walker struct {
	violations []Violation
}

func (w *walker) flag(path, handle, field string, reason Reason) {
	w.violations = append(w.violations, Violation{
		Path:   path + "." + field,
		Handle: handle,
		Field:  field,
		Reason: reason,
	})
}

func (w *walker) require(path, handle, field, value string) {
	if blank(value) {
		w.flag(path, handle, field, ReasonRequired)
	}
}

func (w *walker) date(path, handle, field, value string) {
	switch {
	case blank(value):
		w.flag(path, handle, field, ReasonRequired)
	case !ValidDate(value):
		w.flag(path, handle, field, ReasonBadDate)
	}
}

func (w *walker) clock(path, handle, field, value string) {
	switch {
	case blank(value):
		w.flag(path, handle, field, ReasonRequired)
	case !ValidTime(value):
		w.flag(path, handle, field, ReasonBadTime)
	}
}

// Validate walks the draft in display order: static fields, each module and
// its resources, each evaluation, then each attendance row. Every violation
// is recorded; the first one is reported for focus.
func Validate(d *Draft) ValidationResult {
	w := &walker{}

	for _, spec := range staticRegistry {
		if spec.Required {
			w.require("static", "", string(spec.Key), d.Static.Get(spec.Key))
		}
	}
	if d.Static.CustomWebconf() {
		w.require("static", "", string(KeyWebconfURL), d.Static.Get(KeyWebconfURL))
	}

	for i, m := range d.Modules {
		path := fmt.Sprintf("modules[%d]", i)
		w.require(path, m.Handle, FieldTitle, m.Title)
		w.require(path, m.Handle, FieldIntro, m.Intro)
		for j, r := range m.Resources {
			rpath := fmt.Sprintf("%s.resources[%d]", path, j)
			if r.Type == ResourceUnset {
				w.flag(rpath, r.Handle, FieldType, ReasonUnset)
			}
			w.require(rpath, r.Handle, FieldTitle, r.Title)
			w.window(rpath, r.Handle, r.Start, FieldStartEnabled, FieldStartDate, FieldStartTime)
			w.window(rpath, r.Handle, r.End, FieldEndEnabled, FieldEndDate, FieldEndTime)
			w.scoring(rpath, r.Handle, r.Evaluation)
			w.require(rpath, r.Handle, FieldDescription, r.Description)
		}
	}

	for i, e := range d.Evaluations {
		if e.Identity.SelfAssessment() {
			continue
		}
		path := fmt.Sprintf("evaluations[%d]", i)
		w.require(path, e.Handle, FieldType, e.Type)
		w.window(path, e.Handle, e.Start, FieldStartEnabled, FieldStartDate, FieldStartTime)
		w.window(path, e.Handle, e.End, FieldEndEnabled, FieldEndDate, FieldEndTime)
		w.scoring(path, e.Handle, e.Evaluation)
		w.require(path, e.Handle, FieldDescription, e.Description)
	}

	for i, row := range d.Frequency {
		path := fmt.Sprintf("frequency[%d]", i)
		w.date(path, row.Handle, FieldAttendanceDate, row.Date)
		switch hours := strings.TrimSpace(row.Hours); {
		case hours == "":
			w.flag(path, row.Handle, FieldHours, ReasonRequired)
		case !validHours(hours):
			w.flag(path, row.Handle, FieldHours, ReasonHoursRange)
		}
		w.require(path, row.Handle, FieldDescription, row.Description)
	}

	res := ValidationResult{Valid: len(w.violations) == 0, Violations: w.violations}
	if res.Violations == nil {
		res.Violations = []Violation{}
	}
	if !res.Valid {
		first := w.violations[0]
		res.FirstInvalid = &first
	}
	return res
}

func (w *walker) window(path, handle string, win DateWindow, enabledField, dateField, timeField string) {
	switch win.Enabled {
	case ToggleUnset:
		w.flag(path, handle, enabledField, ReasonUnset)
	case ToggleYes:
		w.date(path, handle, dateField, win.Date)
		w.clock(path, handle, timeField, win.Time)
	}
}

func (w *walker) scoring(path, handle string, spec EvaluationSpec) {
	switch spec.Method {
	case MethodUnset:
		w.flag(path, handle, FieldMethod, ReasonUnset)
	case MethodScore:
		score := strings.TrimSpace(spec.Score)
		if score == "" {
			w.flag(path, handle, FieldScore, ReasonRequired)
		} else if _, err := strconv.ParseFloat(strings.ReplaceAll(score, ",", "."), 64); err != nil {
			w.flag(path, handle, FieldScore, ReasonNotNumeric)
		}
	case MethodRubric:
		w.require(path, handle, FieldRubric, spec.Rubric)
	}
}
