package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"uece-planner/internal/dto"
	"uece-planner/internal/form"
)

// ── Plan errors ──

var (
	ErrModuleNotFound        = errors.New("módulo não encontrado")
	ErrResourceNotFound      = errors.New("recurso não encontrado")
	ErrEvaluationNotFound    = errors.New("avaliação não encontrada")
	ErrAttendanceRowNotFound = errors.New("linha de frequência não encontrada")
)

// PlanService is the form session: it owns the draft being edited, the
// autosave timer, the save indicator, notifications and validation marks.
// One instance lives for the whole process.
type PlanService interface {
	// Start loads the stored draft, or seeds a fresh plan when none exists.
	Start(ctx context.Context) error
	// Close flushes a pending autosave.
	Close(ctx context.Context) error

	View() *dto.PlanView
	Draft() *form.Draft
	StoredDraft() (json.RawMessage, error)
	UpdateStatic(req *dto.UpdateStaticRequest) *dto.PlanView

	AddModule(req *dto.ModuleRequest) *dto.ModuleView
	UpdateModule(id string, req *dto.ModuleRequest) (*dto.ModuleView, error)
	RemoveModule(id string, confirm bool) (bool, error)
	AddResource(moduleID string, req *dto.ResourceRequest) (*dto.ResourceView, error)
	UpdateResource(id string, req *dto.ResourceRequest) (*dto.ResourceView, error)
	RemoveResource(id string) error

	AddEvaluation(req *dto.EvaluationRequest) *dto.EvaluationView
	AddDefaultEvaluations() []dto.EvaluationView
	UpdateEvaluation(id string, req *dto.EvaluationRequest) (*dto.EvaluationView, error)
	RemoveEvaluation(id string, confirm bool) (bool, error)

	AddAttendanceRow(req *dto.AttendanceRowRequest) *dto.AttendanceView
	UpdateAttendanceRow(id string, req *dto.AttendanceRowRequest) (*dto.AttendanceView, error)
	RemoveAttendanceRow(id string) error
	TotalHours() int

	// Validate checks the whole plan and marks every offending field.
	Validate() form.ValidationResult
	// ValidatedDraft validates and snapshots the draft in one step.
	ValidatedDraft() (*form.Draft, form.ValidationResult)

	Save(ctx context.Context) (*dto.StatusView, error)
	Reload(ctx context.Context) (*dto.PlanView, error)
	Clear(ctx context.Context, confirm bool) (bool, error)
	Status() *dto.StatusView
}

// PlanOptions tunes the session timing.
type PlanOptions struct {
	AutosaveDelay    time.Duration
	StatusClearDelay time.Duration
	NotificationTTL  time.Duration

	// test hooks
	now   func() time.Time
	after afterFunc
}

type markKey struct {
	id    string // empty for static fields
	field string
}

type focusTarget struct {
	id    string
	field string
}

type planService struct {
	mu     sync.Mutex
	store  *DraftStore
	opts   PlanOptions
	logger *zap.Logger

	draft     *form.Draft
	dirty     bool
	marks     map[markKey]struct{}
	focus     *focusTarget
	lastSaved time.Time

	autosave *debouncer
	notes    *notifier
}

// NewPlanService creates the session. Call Start before serving requests.
func NewPlanService(store *DraftStore, opts PlanOptions, logger *zap.Logger) PlanService {
	if opts.now == nil {
		opts.now = time.Now
	}
	s := &planService{
		store:  store,
		opts:   opts,
		logger: logger,
		draft:  form.NewDraft(),
		marks:  make(map[markKey]struct{}),
		notes:  newNotifier(opts.NotificationTTL, opts.now),
	}
	s.autosave = newDebouncer(opts.AutosaveDelay, opts.after, s.autosaveNow)
	return s
}

// ────────────────────── Lifecycle ──────────────────────

func (s *planService) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(ctx)
	return nil
}

func (s *planService) Close(ctx context.Context) error {
	if !s.autosave.Cancel() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

// loadLocked replaces the session state with the stored draft. A missing
// draft seeds a fresh plan; an unreadable one is reported and also seeds.
func (s *planService) loadLocked(ctx context.Context) {
	s.autosave.Cancel()
	s.marks = make(map[markKey]struct{})
	s.focus = nil
	s.dirty = false

	d, err := s.store.Load(ctx)
	switch {
	case err == nil:
		s.draft = d
		s.notes.Push(LevelSuccess, MsgDraftRecovered)
		s.logger.Info("rascunho recuperado",
			zap.Int("modules", len(d.Modules)),
			zap.Int("evaluations", len(d.Evaluations)),
		)
	case errors.Is(err, ErrDraftNotFound):
		s.draft = form.NewDefaultDraft()
	default:
		s.draft = form.NewDefaultDraft()
		s.notes.Push(LevelError, MsgDraftLoadFailed)
		s.logger.Warn("rascunho descartado", zap.Error(err))
	}
	assignHandles(s.draft)
}

func assignHandles(d *form.Draft) {
	for i := range d.Modules {
		m := &d.Modules[i]
		if m.Handle == "" {
			m.Handle = uuid.NewString()
		}
		for j := range m.Resources {
			if m.Resources[j].Handle == "" {
				m.Resources[j].Handle = uuid.NewString()
			}
		}
	}
	for i := range d.Evaluations {
		if d.Evaluations[i].Handle == "" {
			d.Evaluations[i].Handle = uuid.NewString()
		}
	}
	for i := range d.Frequency {
		if d.Frequency[i].Handle == "" {
			d.Frequency[i].Handle = uuid.NewString()
		}
	}
}

// ────────────────────── Persistence ──────────────────────

func (s *planService) autosaveNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return
	}
	_ = s.persistLocked(context.Background())
}

// persistLocked writes the draft. Failures become a notification and leave
// the form untouched.
func (s *planService) persistLocked(ctx context.Context) error {
	if err := s.store.Persist(ctx, s.draft); err != nil {
		s.notes.Push(LevelError, MsgDraftSaveFailed)
		s.logger.Warn("autosave falhou", zap.Error(err))
		return err
	}
	s.lastSaved = s.opts.now()
	s.dirty = false
	return nil
}

// edited is called after every mutation.
func (s *planService) edited() {
	s.dirty = true
	s.autosave.Trigger()
}

func (s *planService) Save(ctx context.Context) (*dto.StatusView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autosave.Cancel()
	err := s.persistLocked(ctx)
	return s.statusLocked(), err
}

func (s *planService) Reload(ctx context.Context) (*dto.PlanView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(ctx)
	return s.viewLocked(), nil
}

func (s *planService) Clear(ctx context.Context, confirm bool) (bool, error) {
	if !confirm {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autosave.Cancel()
	if err := s.store.Clear(ctx); err != nil {
		s.notes.Push(LevelError, MsgDraftClearFailed)
		return false, err
	}

	s.notes.Reset()
	s.draft = form.NewDefaultDraft()
	assignHandles(s.draft)
	s.marks = make(map[markKey]struct{})
	s.focus = nil
	s.dirty = false
	s.lastSaved = time.Time{}
	s.logger.Info("rascunho apagado")
	return true, nil
}

// ────────────────────── Reads ──────────────────────

func (s *planService) View() *dto.PlanView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *planService) Draft() *form.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *planService) StoredDraft() (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := form.EncodeDraft(s.draft)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

func (s *planService) Status() *dto.StatusView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *planService) TotalHours() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return form.TotalHours(s.draft.Frequency)
}

// statusLocked derives the save indicator: "Editando..." while a save is
// pending, the save time for StatusClearDelay after a save, then empty.
func (s *planService) statusLocked() *dto.StatusView {
	st := &dto.StatusView{Notifications: []dto.NotificationView{}}
	now := s.opts.now()

	switch {
	case s.autosave.Pending():
		st.Pending = true
		st.Text = "Editando..."
	case !s.lastSaved.IsZero() && now.Sub(s.lastSaved) < s.opts.StatusClearDelay:
		st.Text = "Rascunho salvo " + s.lastSaved.Format("15:04:05")
	}
	if !s.lastSaved.IsZero() {
		saved := s.lastSaved
		st.LastSavedAt = &saved
	}
	for _, n := range s.notes.Active() {
		st.Notifications = append(st.Notifications, dto.NotificationView{
			ID:        n.id,
			Level:     n.level,
			Message:   n.message,
			ExpiresAt: n.expiresAt,
		})
	}
	return st
}

// ────────────────────── Static fields ──────────────────────

func (s *planService) UpdateStatic(req *dto.UpdateStaticRequest) *dto.PlanView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.focus = nil
	for k, v := range req.Fields {
		key := form.StaticKey(k)
		if s.draft.Static.Set(key, v) {
			s.unmark("", string(key))
		}
	}
	if !s.draft.Static.CustomWebconf() {
		s.unmark("", string(form.KeyWebconfURL))
	}
	s.edited()
	return s.viewLocked()
}

// ────────────────────── Validation ──────────────────────

func (s *planService) Validate() form.ValidationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked()
}

func (s *planService) ValidatedDraft() (*form.Draft, form.ValidationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.validateLocked()
	return s.draft.Clone(), res
}

// validateLocked replaces the marks with the current violations and moves
// focus to the first one.
func (s *planService) validateLocked() form.ValidationResult {
	res := form.Validate(s.draft)

	s.marks = make(map[markKey]struct{}, len(res.Violations))
	for _, v := range res.Violations {
		s.marks[markKey{id: v.Handle, field: v.Field}] = struct{}{}
	}
	s.focus = nil
	if res.FirstInvalid != nil {
		s.focus = &focusTarget{id: res.FirstInvalid.Handle, field: res.FirstInvalid.Field}
		s.notes.Push(LevelError, MsgRequiredMissing)
	}
	return res
}

func (s *planService) unmark(id string, fields ...string) {
	for _, f := range fields {
		delete(s.marks, markKey{id: id, field: f})
	}
}

func (s *planService) unmarkEntity(id string) {
	for k := range s.marks {
		if k.id == id {
			delete(s.marks, k)
		}
	}
}

func (s *planService) marked(id string) []string {
	fields := []string{}
	for k := range s.marks {
		if k.id == id {
			fields = append(fields, k.field)
		}
	}
	sort.Strings(fields)
	return fields
}

// ToValidationResponse converts a validation result for the API.
func ToValidationResponse(res form.ValidationResult) *dto.ValidationResponse {
	out := &dto.ValidationResponse{Valid: res.Valid, Violations: make([]dto.ViolationView, 0, len(res.Violations))}
	for _, v := range res.Violations {
		out.Violations = append(out.Violations, toViolationView(v))
	}
	if res.FirstInvalid != nil {
		first := toViolationView(*res.FirstInvalid)
		out.FirstInvalidField = &first
	}
	return out
}

func toViolationView(v form.Violation) dto.ViolationView {
	return dto.ViolationView{Path: v.Path, ID: v.Handle, Field: v.Field, Reason: string(v.Reason)}
}
