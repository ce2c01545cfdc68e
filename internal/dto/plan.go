package dto

// ── Plan editing requests ──
//
// Every field is a pointer: nil leaves the current value untouched. The same
// request adds an entity pre-filled with the given values.

// UpdateStaticRequest patches top-level fields by key.
type UpdateStaticRequest struct {
	Fields map[string]string `json:"fields" binding:"required,dive,keys,statickey,endkeys"`
}

// DateWindowInput patches a toggle-gated date+time pair.
type DateWindowInput struct {
	Enabled *string `json:"enabled" binding:"omitempty,toggle"`
	Date    *string `json:"date"    binding:"omitempty,isodate"` // "2025-03-10"
	Time    *string `json:"time"    binding:"omitempty,hhmm"`    // "08:00"
}

// EvaluationSpecInput patches the scoring block.
type EvaluationSpecInput struct {
	Method *string `json:"method" binding:"omitempty,evalmethod"`
	Score  *string `json:"score"`
	Rubric *string `json:"rubric"`
}

// ResourceRequest adds or edits a module resource.
type ResourceRequest struct {
	Type        *string              `json:"type"        binding:"omitempty,restype"`
	Title       *string              `json:"title"       binding:"omitempty,max=500"`
	Start       *DateWindowInput     `json:"start"`
	End         *DateWindowInput     `json:"end"`
	Evaluation  *EvaluationSpecInput `json:"evaluation"`
	Description *string              `json:"description"`
}

// ModuleRequest adds or edits a module. Resources are only read on add.
type ModuleRequest struct {
	Title     *string           `json:"title"     binding:"omitempty,max=500"`
	Intro     *string           `json:"intro"`
	Resources []ResourceRequest `json:"resources" binding:"omitempty,dive"`
}

// EvaluationRequest adds or edits a course evaluation.
type EvaluationRequest struct {
	Identity    *string              `json:"identity"    binding:"omitempty,evalidentity"`
	Type        *string              `json:"type"        binding:"omitempty,max=500"`
	Start       *DateWindowInput     `json:"start"`
	End         *DateWindowInput     `json:"end"`
	Evaluation  *EvaluationSpecInput `json:"evaluation"`
	Description *string              `json:"description"`
}

// AttendanceRowRequest adds or edits an attendance row. Hours is kept as
// typed; range checks happen when the plan is validated.
type AttendanceRowRequest struct {
	Date        *string `json:"date"        binding:"omitempty,isodate"`
	Hours       *string `json:"hours"       binding:"omitempty,max=10"`
	Description *string `json:"description"`
}

// ── Plan responses ──

// RemovedResponse reports whether a confirmable removal happened.
type RemovedResponse struct {
	Removed bool `json:"removed"`
}

// ClearedResponse reports whether the draft was cleared.
type ClearedResponse struct {
	Cleared bool `json:"cleared"`
}
