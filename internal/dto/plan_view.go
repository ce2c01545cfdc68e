package dto

import "time"

// ── Plan projection ──

// PlanView is the rendered state of the form.
type PlanView struct {
	Static      []StaticFieldView `json:"static"`
	Modules     []ModuleView      `json:"modules"`
	Evaluations []EvaluationView  `json:"evaluations"`
	Attendance  []AttendanceView  `json:"attendance"`
	TotalHours  int               `json:"total_hours"`
	Status      StatusView        `json:"status"`
	Focus       *FocusView        `json:"focus,omitempty"`
}

// StaticFieldView is one top-level field.
type StaticFieldView struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Required bool   `json:"required"`
	Visible  bool   `json:"visible"`
	Invalid  bool   `json:"invalid"`
}

// DateWindowView is a toggle with its date sub-block.
type DateWindowView struct {
	Enabled string `json:"enabled"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Visible bool   `json:"visible"`
}

// EvaluationSpecView shows at most one of score and rubric.
type EvaluationSpecView struct {
	Method        string `json:"method"`
	Score         string `json:"score"`
	Rubric        string `json:"rubric"`
	ScoreVisible  bool   `json:"score_visible"`
	RubricVisible bool   `json:"rubric_visible"`
}

// ModuleView is a module card.
type ModuleView struct {
	ID        string         `json:"id"`
	Index     int            `json:"index"`
	Label     string         `json:"label"`
	Title     string         `json:"title"`
	Intro     string         `json:"intro"`
	Resources []ResourceView `json:"resources"`
	Invalid   []string       `json:"invalid"`
}

// ResourceView is a resource entry inside a module card.
type ResourceView struct {
	ID          string             `json:"id"`
	Label       string             `json:"label"`
	Type        string             `json:"type"`
	Title       string             `json:"title"`
	Start       DateWindowView     `json:"start"`
	End         DateWindowView     `json:"end"`
	Evaluation  EvaluationSpecView `json:"evaluation"`
	Description string             `json:"description"`
	Invalid     []string           `json:"invalid"`
}

// EvaluationView is an evaluation card. For Autoavaliação only the
// identity is shown and Notice replaces the other fields.
type EvaluationView struct {
	ID             string             `json:"id"`
	Label          string             `json:"label"`
	Identity       string             `json:"identity"`
	SelfAssessment bool               `json:"self_assessment"`
	Notice         string             `json:"notice,omitempty"`
	Type           string             `json:"type"`
	Start          DateWindowView     `json:"start"`
	End            DateWindowView     `json:"end"`
	Evaluation     EvaluationSpecView `json:"evaluation"`
	Description    string             `json:"description"`
	Invalid        []string           `json:"invalid"`
}

// AttendanceView is one attendance row.
type AttendanceView struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Hours       string   `json:"hours"`
	Description string   `json:"description"`
	Invalid     []string `json:"invalid"`
}

// FocusView names the field that should receive input focus.
type FocusView struct {
	ID    string `json:"id,omitempty"`
	Field string `json:"field"`
}

// ── Status ──

// StatusView is the save indicator plus live notifications.
type StatusView struct {
	Text          string             `json:"text"`
	Pending       bool               `json:"pending"`
	LastSavedAt   *time.Time         `json:"last_saved_at,omitempty"`
	Notifications []NotificationView `json:"notifications"`
}

// NotificationView is a transient toast.
type NotificationView struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"` // success | error | info
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ── Validation ──

// ViolationView is one flagged field.
type ViolationView struct {
	Path   string `json:"path"`
	ID     string `json:"id,omitempty"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationResponse is the outcome of validating the plan.
type ValidationResponse struct {
	Valid             bool            `json:"valid"`
	FirstInvalidField *ViolationView  `json:"first_invalid_field"`
	Violations        []ViolationView `json:"violations"`
}
