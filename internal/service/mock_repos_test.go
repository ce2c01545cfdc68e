package service

import (
	"context"
	"sync"
	"time"

	"uece-planner/internal/form"
	pkgerrors "uece-planner/pkg/errors"
)

// ── Mock DraftRepository ──

type mockDraftRepo struct {
	mu     sync.Mutex
	data   map[string][]byte
	puts   int
	putErr error
	getErr error
	delErr error
}

func newMockDraftRepo() *mockDraftRepo {
	return &mockDraftRepo{data: make(map[string][]byte)}
}

func (m *mockDraftRepo) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.data[key]
	if !ok {
		return nil, pkgerrors.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *mockDraftRepo) Put(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data[key] = append([]byte(nil), payload...)
	return nil
}

func (m *mockDraftRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	return nil
}

func (m *mockDraftRepo) stored() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[form.StorageKey]
	return b, ok
}

func (m *mockDraftRepo) putCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

// ── Fake timers and clock ──

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) after(_ time.Duration, f func()) stopper {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	return t
}

// live counts timers that were neither stopped nor fired.
func (s *fakeScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// fireAll runs every live timer, as if the delay elapsed.
func (s *fakeScheduler) fireAll() {
	s.mu.Lock()
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped {
			t.stopped = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	for _, t := range due {
		t.f()
	}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
