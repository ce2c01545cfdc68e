package service

import (
	"github.com/google/uuid"

	"uece-planner/internal/dto"
	"uece-planner/internal/form"
)

// ────────────────────── Attendance ──────────────────────

func (s *planService) AddAttendanceRow(req *dto.AttendanceRowRequest) *dto.AttendanceView {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := form.AttendanceRow{Handle: uuid.NewString()}
	if req != nil {
		(&patch{}).attendance(&row, req)
	}
	s.draft.Frequency = append(s.draft.Frequency, row)
	s.commit(row.Handle, &patch{})

	view := s.attendanceView(&s.draft.Frequency[len(s.draft.Frequency)-1])
	return &view
}

func (s *planService) UpdateAttendanceRow(id string, req *dto.AttendanceRowRequest) (*dto.AttendanceView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findAttendanceRow(id)
	if idx < 0 {
		return nil, ErrAttendanceRowNotFound
	}
	row := &s.draft.Frequency[idx]
	p := &patch{}
	p.attendance(row, req)
	s.commit(id, p)

	view := s.attendanceView(row)
	return &view, nil
}

func (s *planService) RemoveAttendanceRow(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findAttendanceRow(id)
	if idx < 0 {
		return ErrAttendanceRowNotFound
	}
	s.draft.Frequency = append(s.draft.Frequency[:idx], s.draft.Frequency[idx+1:]...)
	s.unmarkEntity(id)
	s.commit("", &patch{})
	return nil
}

func (s *planService) findAttendanceRow(id string) int {
	for i := range s.draft.Frequency {
		if s.draft.Frequency[i].Handle == id {
			return i
		}
	}
	return -1
}
