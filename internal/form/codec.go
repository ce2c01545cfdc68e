package form

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// StorageKey is the single key the draft is persisted under.
const StorageKey = "uece_planning_draft_v1"

// ErrMalformedDraft is returned when a stored value cannot be read back as a draft.
var ErrMalformedDraft = errors.New("rascunho armazenado em formato incompatível")

// ── Stored representation ──
//
// The stored JSON keeps the flat shape the planner has always written:
// date windows and scoring are spread over sibling keys and attendance
// hours live under "ch".

type storedDraft struct {
	Static      map[string]flexString `json:"static"`
	Modules     []storedModule        `json:"modules"`
	Evaluations []storedEvaluation    `json:"evaluations"`
	Frequency   []storedAttendance    `json:"frequency"`
}

type storedModule struct {
	Index     int              `json:"index"`
	Title     flexString       `json:"title"`
	Intro     flexString       `json:"intro"`
	Resources []storedResource `json:"resources"`
}

type storedWindowedFields struct {
	StartDate   flexString `json:"startDate"`
	StartTime   flexString `json:"startTime"`
	StartToggle flexString `json:"startToggle"`
	EndDate     flexString `json:"endDate"`
	EndTime     flexString `json:"endTime"`
	EndToggle   flexString `json:"endToggle"`
	EvalMethod  flexString `json:"evalMethod"`
	Score       flexString `json:"score"`
	Rubric      flexString `json:"rubric"`
	Desc        flexString `json:"desc"`
}

type storedResource struct {
	Type  flexString `json:"type"`
	Title flexString `json:"title"`
	storedWindowedFields
}

type storedEvaluation struct {
	ID   flexString `json:"id"`
	Type flexString `json:"type"`
	storedWindowedFields
}

type storedAttendance struct {
	Date flexString `json:"date"`
	CH   flexString `json:"ch"`
	Desc flexString `json:"desc"`
}

// flexString accepts JSON strings, numbers and null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("valor não textual: %s", b)
	}
	*f = flexString(n.String())
	return nil
}

// EncodeDraft serializes d into the stored representation.
// Blank attendance rows are left out.
func EncodeDraft(d *Draft) ([]byte, error) {
	out := storedDraft{
		Static:      make(map[string]flexString, len(d.Static)),
		Modules:     make([]storedModule, 0, len(d.Modules)),
		Evaluations: make([]storedEvaluation, 0, len(d.Evaluations)),
		Frequency:   make([]storedAttendance, 0, len(d.Frequency)),
	}
	for _, spec := range staticRegistry {
		if v, ok := d.Static[spec.Key]; ok {
			out.Static[string(spec.Key)] = flexString(v)
		}
	}
	for i, m := range d.Modules {
		sm := storedModule{
			Index:     i + 1,
			Title:     flexString(m.Title),
			Intro:     flexString(m.Intro),
			Resources: make([]storedResource, 0, len(m.Resources)),
		}
		for _, r := range m.Resources {
			sm.Resources = append(sm.Resources, storedResource{
				Type:                 flexString(r.Type),
				Title:                flexString(r.Title),
				storedWindowedFields: encodeWindowed(r.Start, r.End, r.Evaluation, r.Description),
			})
		}
		out.Modules = append(out.Modules, sm)
	}
	for _, e := range d.Evaluations {
		out.Evaluations = append(out.Evaluations, storedEvaluation{
			ID:                   flexString(e.Identity),
			Type:                 flexString(e.Type),
			storedWindowedFields: encodeWindowed(e.Start, e.End, e.Evaluation, e.Description),
		})
	}
	for _, r := range d.Frequency {
		if r.Blank() {
			continue
		}
		out.Frequency = append(out.Frequency, storedAttendance{
			Date: flexString(r.Date),
			CH:   flexString(r.Hours),
			Desc: flexString(r.Description),
		})
	}
	return json.Marshal(out)
}

// DecodeDraft parses a stored value. Handles are left empty; callers
// assign their own. Unknown selector values decode as unset.
func DecodeDraft(b []byte) (*Draft, error) {
	var in storedDraft
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDraft, err)
	}

	d := NewDraft()
	for k, v := range in.Static {
		d.Static.Set(StaticKey(k), string(v))
	}
	for _, sm := range in.Modules {
		m := Module{
			Title:     string(sm.Title),
			Intro:     string(sm.Intro),
			Resources: make([]Resource, 0, len(sm.Resources)),
		}
		for _, sr := range sm.Resources {
			rt, _ := ParseResourceType(string(sr.Type))
			start, end, spec, desc := decodeWindowed(sr.storedWindowedFields)
			m.Resources = append(m.Resources, Resource{
				Type:        rt,
				Title:       string(sr.Title),
				Start:       start,
				End:         end,
				Evaluation:  spec,
				Description: desc,
			})
		}
		d.Modules = append(d.Modules, m)
	}
	for _, se := range in.Evaluations {
		start, end, spec, desc := decodeWindowed(se.storedWindowedFields)
		d.Evaluations = append(d.Evaluations, Evaluation{
			Identity:    NormalizeIdentity(string(se.ID)),
			Type:        string(se.Type),
			Start:       start,
			End:         end,
			Evaluation:  spec,
			Description: desc,
		})
	}
	for _, sa := range in.Frequency {
		d.Frequency = append(d.Frequency, AttendanceRow{
			Date:        string(sa.Date),
			Hours:       string(sa.CH),
			Description: string(sa.Desc),
		})
	}
	return d, nil
}

// NormalizeIdentity resolves a raw identity, defaulting to DefaultIdentity.
func NormalizeIdentity(s string) Identity {
	if id, ok := ParseIdentity(s); ok {
		return id
	}
	return DefaultIdentity
}

func encodeWindowed(start, end DateWindow, spec EvaluationSpec, desc string) storedWindowedFields {
	return storedWindowedFields{
		StartDate:   flexString(start.Date),
		StartTime:   flexString(start.Time),
		StartToggle: flexString(start.Enabled),
		EndDate:     flexString(end.Date),
		EndTime:     flexString(end.Time),
		EndToggle:   flexString(end.Enabled),
		EvalMethod:  flexString(spec.Method),
		Score:       flexString(spec.Score),
		Rubric:      flexString(spec.Rubric),
		Desc:        flexString(desc),
	}
}

func decodeWindowed(f storedWindowedFields) (DateWindow, DateWindow, EvaluationSpec, string) {
	startToggle, _ := ParseToggle(string(f.StartToggle))
	endToggle, _ := ParseToggle(string(f.EndToggle))
	method, _ := ParseEvalMethod(string(f.EvalMethod))
	return DateWindow{Enabled: startToggle, Date: string(f.StartDate), Time: string(f.StartTime)},
		DateWindow{Enabled: endToggle, Date: string(f.EndDate), Time: string(f.EndTime)},
		EvaluationSpec{Method: method, Score: string(f.Score), Rubric: string(f.Rubric)},
		string(f.Desc)
}
