package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"uece-planner/internal/form"
)

// ICSRenderer lists every dated resource and evaluation as a calendar event.
type ICSRenderer struct {
	loc *time.Location
	now func() time.Time
}

// NewICSRenderer creates the calendar renderer. Dates without a zone are
// read in loc.
func NewICSRenderer(loc *time.Location) *ICSRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &ICSRenderer{loc: loc, now: time.Now}
}

func (r *ICSRenderer) ContentType() string { return "text/calendar; charset=utf-8" }

func (r *ICSRenderer) Extension() string { return string(FormatICS) }

// calendarEntry is one dated item before it becomes a VEVENT.
type calendarEntry struct {
	key         string
	summary     string
	description string
	start, end  form.DateWindow
}

func (r *ICSRenderer) Render(doc *form.Document) (*bytes.Buffer, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//UECE SATE//Planejamento de Disciplina//PT")
	cal.SetXWRCalName(PlanName(doc))
	cal.SetXWRTimezone(r.loc.String())

	stamp := r.now().UTC()
	for _, entry := range calendarEntries(doc) {
		if err := r.addEvent(cal, doc, entry, stamp); err != nil {
			return nil, fmt.Errorf("ics: %w", err)
		}
	}
	return bytes.NewBufferString(cal.Serialize()), nil
}

func calendarEntries(doc *form.Document) []calendarEntry {
	var out []calendarEntry
	for _, m := range doc.Modules {
		for j, res := range m.Resources {
			out = append(out, calendarEntry{
				key:         fmt.Sprintf("modulo/%d/recurso/%d", m.Index, j+1),
				summary:     fmt.Sprintf("Módulo %d – %s: %s", m.Index, Text(string(res.Type)), Text(res.Title)),
				description: strings.Join(DescribeResource(res).Lines(), "\n"),
				start:       res.Start,
				end:         res.End,
			})
		}
	}
	for i, e := range doc.Evaluations {
		if e.Identity.SelfAssessment() {
			continue
		}
		row := DescribeEvaluation(e)
		out = append(out, calendarEntry{
			key:         fmt.Sprintf("avaliacao/%d", i+1),
			summary:     fmt.Sprintf("%s – %s", row.Identity, Text(e.Type)),
			description: row.Details,
			start:       e.Start,
			end:         e.End,
		})
	}
	return out
}

// addEvent emits entry when at least one of its windows is shown. With a
// single window the event is anchored on it; an end-only entry is a deadline.
func (r *ICSRenderer) addEvent(cal *ics.Calendar, doc *form.Document, entry calendarEntry, stamp time.Time) error {
	start, hasStart, err := r.windowTime(entry.start)
	if err != nil {
		return err
	}
	end, hasEnd, err := r.windowTime(entry.end)
	if err != nil {
		return err
	}
	if !hasStart && !hasEnd {
		return nil
	}

	summary := entry.summary
	switch {
	case hasStart && !hasEnd:
		end = start
	case !hasStart && hasEnd:
		start = end
		summary = "Prazo: " + summary
	}
	if end.Before(start) {
		end = start
	}

	uid := uuid.NewSHA1(uuid.NameSpaceURL, []byte("uece-planner/"+doc.Disciplina()+"/"+entry.key))
	ev := cal.AddEvent(uid.String() + "@uece-planner")
	ev.SetDtStampTime(stamp)
	ev.SetSummary(summary)
	ev.SetDescription(entry.description)

	allDay := (hasStart && entry.start.Time == "" || !hasStart) && (hasEnd && entry.end.Time == "" || !hasEnd)
	if allDay {
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(end.AddDate(0, 0, 1))
		return nil
	}
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	return nil
}

// windowTime reads a shown window. A blank time means midnight.
func (r *ICSRenderer) windowTime(w form.DateWindow) (time.Time, bool, error) {
	if !w.Enabled.DateVisible() || w.Date == "" {
		return time.Time{}, false, nil
	}
	layout, value := "2006-01-02", w.Date
	if w.Time != "" {
		layout, value = "2006-01-02 15:04", w.Date+" "+w.Time
	}
	t, err := time.ParseInLocation(layout, value, r.loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("data inválida %q: %w", value, err)
	}
	return t, true, nil
}
