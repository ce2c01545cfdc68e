package service

import (
	"github.com/google/uuid"

	"uece-planner/internal/dto"
	"uece-planner/internal/form"
)

// ────────────────────── Modules ──────────────────────

func (s *planService) AddModule(req *dto.ModuleRequest) *dto.ModuleView {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := form.Module{Handle: uuid.NewString(), Resources: []form.Resource{}}
	p := &patch{}
	if req != nil {
		p.str(&m.Title, req.Title, form.FieldTitle)
		p.str(&m.Intro, req.Intro, form.FieldIntro)
		for i := range req.Resources {
			r := form.Resource{Handle: uuid.NewString()}
			(&patch{}).resource(&r, &req.Resources[i])
			m.Resources = append(m.Resources, r)
		}
	}
	s.draft.Modules = append(s.draft.Modules, m)
	s.commit(m.Handle, p)

	idx := len(s.draft.Modules) - 1
	view := s.moduleView(idx, &s.draft.Modules[idx])
	return &view
}

func (s *planService) UpdateModule(id string, req *dto.ModuleRequest) (*dto.ModuleView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findModule(id)
	if idx < 0 {
		return nil, ErrModuleNotFound
	}
	m := &s.draft.Modules[idx]
	p := &patch{}
	p.str(&m.Title, req.Title, form.FieldTitle)
	p.str(&m.Intro, req.Intro, form.FieldIntro)
	s.commit(id, p)

	view := s.moduleView(idx, m)
	return &view, nil
}

// RemoveModule drops the module with all its resources. Without
// confirmation nothing happens.
func (s *planService) RemoveModule(id string, confirm bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findModule(id)
	if idx < 0 {
		return false, ErrModuleNotFound
	}
	if !confirm {
		return false, nil
	}

	m := s.draft.Modules[idx]
	for _, r := range m.Resources {
		s.unmarkEntity(r.Handle)
	}
	s.unmarkEntity(m.Handle)
	s.draft.Modules = append(s.draft.Modules[:idx], s.draft.Modules[idx+1:]...)
	s.commit("", &patch{})
	return true, nil
}

// ────────────────────── Resources ──────────────────────

func (s *planService) AddResource(moduleID string, req *dto.ResourceRequest) (*dto.ResourceView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findModule(moduleID)
	if idx < 0 {
		return nil, ErrModuleNotFound
	}
	r := form.Resource{Handle: uuid.NewString()}
	if req != nil {
		(&patch{}).resource(&r, req)
	}
	m := &s.draft.Modules[idx]
	m.Resources = append(m.Resources, r)
	s.commit(r.Handle, &patch{})

	view := s.resourceView(&m.Resources[len(m.Resources)-1])
	return &view, nil
}

func (s *planService) UpdateResource(id string, req *dto.ResourceRequest) (*dto.ResourceView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mi, ri := s.findResource(id)
	if mi < 0 {
		return nil, ErrResourceNotFound
	}
	r := &s.draft.Modules[mi].Resources[ri]
	p := &patch{}
	p.resource(r, req)
	s.commit(id, p)

	view := s.resourceView(r)
	return &view, nil
}

// RemoveResource removes without confirmation.
func (s *planService) RemoveResource(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mi, ri := s.findResource(id)
	if mi < 0 {
		return ErrResourceNotFound
	}
	m := &s.draft.Modules[mi]
	m.Resources = append(m.Resources[:ri], m.Resources[ri+1:]...)
	s.unmarkEntity(id)
	s.commit("", &patch{})
	return nil
}

func (s *planService) findModule(id string) int {
	for i := range s.draft.Modules {
		if s.draft.Modules[i].Handle == id {
			return i
		}
	}
	return -1
}

func (s *planService) findResource(id string) (int, int) {
	for i := range s.draft.Modules {
		for j := range s.draft.Modules[i].Resources {
			if s.draft.Modules[i].Resources[j].Handle == id {
				return i, j
			}
		}
	}
	return -1, -1
}
