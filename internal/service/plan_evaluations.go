package service

import (
	"github.com/google/uuid"

	"uece-planner/internal/dto"
	"uece-planner/internal/form"
)

// ────────────────────── Evaluations ──────────────────────

// AddEvaluation appends an evaluation. Without an identity it is an NPC.
func (s *planService) AddEvaluation(req *dto.EvaluationRequest) *dto.EvaluationView {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := form.Evaluation{Handle: uuid.NewString(), Identity: form.DefaultIdentity}
	if req != nil {
		(&patch{}).evaluation(&e, req)
	}
	s.draft.Evaluations = append(s.draft.Evaluations, e)
	s.commit(e.Handle, &patch{})

	view := s.evaluationView(&s.draft.Evaluations[len(s.draft.Evaluations)-1])
	return &view
}

// AddDefaultEvaluations seeds the standard evaluations when the list is
// still empty and returns the ones it added.
func (s *planService) AddDefaultEvaluations() []dto.EvaluationView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := []dto.EvaluationView{}
	if len(s.draft.Evaluations) > 0 {
		return views
	}
	for _, id := range form.DefaultEvaluationIdentities {
		s.draft.Evaluations = append(s.draft.Evaluations, form.Evaluation{Handle: uuid.NewString(), Identity: id})
	}
	for i := range s.draft.Evaluations {
		views = append(views, s.evaluationView(&s.draft.Evaluations[i]))
	}
	s.commit("", &patch{})
	return views
}

func (s *planService) UpdateEvaluation(id string, req *dto.EvaluationRequest) (*dto.EvaluationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findEvaluation(id)
	if idx < 0 {
		return nil, ErrEvaluationNotFound
	}
	e := &s.draft.Evaluations[idx]
	p := &patch{}
	p.evaluation(e, req)
	if e.Identity.SelfAssessment() {
		// every other field is exempt now
		s.unmarkEntity(id)
	}
	s.commit(id, p)

	view := s.evaluationView(e)
	return &view, nil
}

func (s *planService) RemoveEvaluation(id string, confirm bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findEvaluation(id)
	if idx < 0 {
		return false, ErrEvaluationNotFound
	}
	if !confirm {
		return false, nil
	}
	s.draft.Evaluations = append(s.draft.Evaluations[:idx], s.draft.Evaluations[idx+1:]...)
	s.unmarkEntity(id)
	s.commit("", &patch{})
	return true, nil
}

func (s *planService) findEvaluation(id string) int {
	for i := range s.draft.Evaluations {
		if s.draft.Evaluations[i].Handle == id {
			return i
		}
	}
	return -1
}
