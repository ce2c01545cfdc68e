package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"uece-planner/config"
	"uece-planner/internal/api/handler"
	"uece-planner/internal/service"
	pkgerrors "uece-planner/pkg/errors"
)

type memDraftRepo struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memDraftRepo) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, pkgerrors.ErrNotFound
	}
	return b, nil
}

func (m *memDraftRepo) Put(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = payload
	return nil
}

func (m *memDraftRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// newTestEngine wires the real services exactly as cmd/server does.
func newTestEngine(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Server:  config.ServerConfig{Port: 8080, BodyLimit: 1 << 20},
		Storage: config.StorageConfig{Driver: config.DriverSQLite, Key: "uece_planning_draft_v1", MaxBytes: 1 << 20},
		Session: config.SessionConfig{
			AutosaveDelay:    time.Hour,
			StatusClearDelay: 3 * time.Second,
			NotificationTTL:  4 * time.Second,
		},
		Export: config.ExportConfig{SupportEmail: "suporte@exemplo.br", Timezone: "UTC"},
	}

	store := service.NewDraftStore(&memDraftRepo{data: map[string][]byte{}}, cfg.Storage.Key, cfg.Storage.MaxBytes, zap.NewNop())
	svc := service.NewService(cfg, store, nil, zap.NewNop())
	if err := svc.Plan.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = svc.Plan.Close(context.Background()) })

	engine, err := Setup(cfg, handler.NewHandler(svc), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return engine
}

func TestSetup_EditingEndpointsBindCustomTags(t *testing.T) {
	engine := newTestEngine(t)

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPut, "/api/v1/plan/static", `{"fields":{"id_turma":"A"}}`, http.StatusOK},
		{http.MethodPut, "/api/v1/plan/static", `{"fields":{"desconhecido":"A"}}`, http.StatusBadRequest},
		{http.MethodPost, "/api/v1/plan/attendance", `{"date":"2025-03-10","hours":"4"}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/plan/attendance", `{"date":"10/03/2025"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/v1/plan/evaluations", `{"identity":"NEF"}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/plan/evaluations", `{"identity":"NPX"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/v1/plan/modules",
			`{"title":"Módulo","resources":[{"type":"Tarefa","start":{"enabled":"Sim","date":"2025-03-10","time":"08:00"},"evaluation":{"method":"Pontuação"}}]}`,
			http.StatusCreated},
		{http.MethodPost, "/api/v1/plan/modules", `{"resources":[{"start":{"time":"8h"}}]}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s %s %s: esperado %d, obtido %d: %s", tc.method, tc.path, tc.body, tc.want, w.Code, w.Body.String())
		}
	}
}

func TestSetup_HealthAndFormats(t *testing.T) {
	engine := newTestEngine(t)

	for _, path := range []string{"/health", "/api/v1/export/formats"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: esperado 200, obtido %d", path, w.Code)
		}
	}
}
