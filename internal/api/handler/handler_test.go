package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uece-planner/internal/dto"
	"uece-planner/internal/form"
	"uece-planner/internal/render"
	"uece-planner/internal/service"
	pkgerrors "uece-planner/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test doubles
// ═══════════════════════════════════════════════════════════

// ── In-memory DraftRepository ──

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

// ── Mock ExportService ──

type mockExportService struct {
	exportResult  *service.Export
	exportErr     error
	previewResult *form.Document
	previewErr    error
}

func (m *mockExportService) Export(_ context.Context, _ render.Format) (*service.Export, error) {
	return m.exportResult, m.exportErr
}
func (m *mockExportService) Preview(_ context.Context) (*form.Document, error) {
	return m.previewResult, m.previewErr
}
func (m *mockExportService) Formats() []render.Format {
	return []render.Format{render.FormatDOCX, render.FormatPDF}
}

// ═══════════════════════════════════════════════════════════
// Helpers
// ═══════════════════════════════════════════════════════════

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newPlanService(t *testing.T) service.PlanService {
	t.Helper()
	repo := &memDraftRepo{data: make(map[string][]byte)}
	store := service.NewDraftStore(repo, form.StorageKey, 0, zap.NewNop())
	svc := service.NewPlanService(store, service.PlanOptions{
		AutosaveDelay:    time.Hour,
		StatusClearDelay: 3 * time.Second,
		NotificationTTL:  4 * time.Second,
	}, zap.NewNop())
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = svc.Close(context.Background()) })
	return svc
}

func planRouter(h *PlanHandler) *gin.Engine {
	r := gin.New()
	r.GET("/plan", h.GetPlan)
	r.GET("/plan/draft", h.GetDraft)
	r.PUT("/plan/static", h.UpdateStatic)
	r.POST("/plan/modules", h.AddModule)
	r.PATCH("/plan/modules/:id", h.UpdateModule)
	r.DELETE("/plan/modules/:id", h.RemoveModule)
	r.POST("/plan/modules/:id/resources", h.AddResource)
	r.PATCH("/plan/resources/:id", h.UpdateResource)
	r.POST("/plan/evaluations", h.AddEvaluation)
	r.POST("/plan/attendance", h.AddAttendanceRow)
	r.POST("/plan/validate", h.Validate)
	r.DELETE("/plan/draft", h.Clear)
	r.GET("/plan/status", h.Status)
	return r
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func do(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("resposta inválida: %v (%s)", err, w.Body.String())
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("data inválido: %v", err)
		}
	}
	return env
}

// ═══════════════════════════════════════════════════════════
// PlanHandler
// ═══════════════════════════════════════════════════════════

func TestPlanHandler_GetPlan(t *testing.T) {
	r := planRouter(NewPlanHandler(newPlanService(t)))
	w := do(r, http.MethodGet, "/plan", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("esperado 200, obtido %d", w.Code)
	}
	var view dto.PlanView
	env := parseEnvelope(t, w, &view)
	if env.Code != 0 {
		t.Errorf("esperado code 0, obtido %d", env.Code)
	}
	if len(view.Modules) != 2 || len(view.Evaluations) != 4 {
		t.Errorf("plano inicial inesperado: %d módulos, %d avaliações", len(view.Modules), len(view.Evaluations))
	}
}

func TestPlanHandler_UpdateStatic(t *testing.T) {
	r := planRouter(NewPlanHandler(newPlanService(t)))

	w := do(r, http.MethodPut, "/plan/static", jsonBody(dto.UpdateStaticRequest{Fields: map[string]string{"id_turma": "T01"}}))
	if w.Code != http.StatusOK {
		t.Fatalf("esperado 200, obtido %d: %s", w.Code, w.Body.String())
	}
	var view dto.PlanView
	parseEnvelope(t, w, &view)
	if view.Static[0].Value != "T01" || !view.Status.Pending {
		t.Errorf("campo não atualizado ou gravação não agendada: %+v / %+v", view.Static[0], view.Status)
	}

	w = do(r, http.MethodPut, "/plan/static", jsonBody(dto.UpdateStaticRequest{Fields: map[string]string{"desconhecido": "x"}}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("chave desconhecida: esperado 400, obtido %d", w.Code)
	}
}

func TestPlanHandler_BodyTooLarge(t *testing.T) {
	h := NewPlanHandler(newPlanService(t))
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 16)
		c.Next()
	})
	r.PUT("/plan/static", h.UpdateStatic)

	body := jsonBody(dto.UpdateStaticRequest{Fields: map[string]string{"id_disciplina": strings.Repeat("x", 64)}})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/plan/static", body)
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	r.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("esperado 413, obtido %d", w.Code)
	}
	if env := parseEnvelope(t, w, nil); env.Code != 10005 {
		t.Errorf("esperado code 10005, obtido %d", env.Code)
	}
}

func TestPlanHandler_ModuleLifecycle(t *testing.T) {
	r := planRouter(NewPlanHandler(newPlanService(t)))

	w := do(r, http.MethodPost, "/plan/modules", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("esperado 201, obtido %d: %s", w.Code, w.Body.String())
	}
	var mod dto.ModuleView
	parseEnvelope(t, w, &mod)
	if mod.Index != 3 || mod.Label != "Módulo 3" {
		t.Errorf("módulo criado inesperado: %+v", mod)
	}

	w = do(r, http.MethodPatch, "/plan/modules/"+mod.ID, jsonBody(dto.ModuleRequest{Title: strPtr("Grafos")}))
	parseEnvelope(t, w, &mod)
	if mod.Label != "Módulo 3 – Grafos" {
		t.Errorf("rótulo após editar: obtido %q", mod.Label)
	}

	var removed dto.RemovedResponse
	parseEnvelope(t, do(r, http.MethodDelete, "/plan/modules/"+mod.ID, nil), &removed)
	if removed.Removed {
		t.Error("sem confirmação nada deveria ser removido")
	}
	parseEnvelope(t, do(r, http.MethodDelete, "/plan/modules/"+mod.ID+"?confirm=true", nil), &removed)
	if !removed.Removed {
		t.Error("remoção confirmada deveria acontecer")
	}

	if w := do(r, http.MethodDelete, "/plan/modules/"+mod.ID+"?confirm=talvez", nil); w.Code != http.StatusBadRequest {
		t.Errorf("confirm inválido: esperado 400, obtido %d", w.Code)
	}
}

func TestPlanHandler_NotFound(t *testing.T) {
	r := planRouter(NewPlanHandler(newPlanService(t)))

	cases := []struct {
		method, path string
		body         io.Reader
		code         int
	}{
		{http.MethodPatch, "/plan/modules/x", jsonBody(dto.ModuleRequest{}), 20001},
		{http.MethodPost, "/plan/modules/x/resources", nil, 20001},
		{http.MethodPatch, "/plan/resources/x", jsonBody(dto.ResourceRequest{}), 20002},
	}
	for _, tc := range cases {
		w := do(r, tc.method, tc.path, tc.body)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s %s: esperado 404, obtido %d", tc.method, tc.path, w.Code)
			continue
		}
		if env := parseEnvelope(t, w, nil); env.Code != tc.code {
			t.Errorf("%s %s: esperado code %d, obtido %d", tc.method, tc.path, tc.code, env.Code)
		}
	}
}

func TestPlanHandler_RejectsUnknownEnums(t *testing.T) {
	svc := newPlanService(t)
	r := planRouter(NewPlanHandler(svc))
	modID := svc.View().Modules[0].ID

	w := do(r, http.MethodPost, "/plan/modules/"+modID+"/resources", jsonBody(map[string]any{
		"start": map[string]string{"enabled": "Talvez"},
	}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("toggle inválido: esperado 400, obtido %d", w.Code)
	}

	w = do(r, http.MethodPost, "/plan/attendance", jsonBody(map[string]string{"date": "10/03/2025"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("data fora do formato ISO: esperado 400, obtido %d", w.Code)
	}

	w = do(r, http.MethodPost, "/plan/evaluations", jsonBody(map[string]string{"identity": "NEF"}))
	if w.Code != http.StatusCreated {
		t.Errorf("identidade válida: esperado 201, obtido %d", w.Code)
	}
}

func TestPlanHandler_ValidateAndClear(t *testing.T) {
	r := planRouter(NewPlanHandler(newPlanService(t)))

	var res dto.ValidationResponse
	parseEnvelope(t, do(r, http.MethodPost, "/plan/validate", nil), &res)
	if res.Valid || res.FirstInvalidField == nil || res.FirstInvalidField.Path != "static.id_turma" {
		t.Errorf("validação inesperada: %+v", res.FirstInvalidField)
	}

	var cleared dto.ClearedResponse
	parseEnvelope(t, do(r, http.MethodDelete, "/plan/draft?confirm=1", nil), &cleared)
	if !cleared.Cleared {
		t.Error("limpeza confirmada deveria acontecer")
	}

	var status dto.StatusView
	parseEnvelope(t, do(r, http.MethodGet, "/plan/status", nil), &status)
	if status.Pending || len(status.Notifications) != 0 {
		t.Errorf("status após limpar: %+v", status)
	}
}

func TestPlanHandler_GetDraft(t *testing.T) {
	r := planRouter(NewPlanHandler(newPlanService(t)))
	var stored map[string]json.RawMessage
	parseEnvelope(t, do(r, http.MethodGet, "/plan/draft", nil), &stored)
	for _, key := range []string{"static", "modules", "evaluations", "frequency"} {
		if _, ok := stored[key]; !ok {
			t.Errorf("chave ausente no rascunho: %s", key)
		}
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler
// ═══════════════════════════════════════════════════════════

func exportRouter(h *ExportHandler) *gin.Engine {
	r := gin.New()
	r.GET("/export/formats", h.Formats)
	r.POST("/export/preview", h.Preview)
	r.GET("/export/:format", h.Export)
	return r
}

func TestExportHandler_Export_Success(t *testing.T) {
	mock := &mockExportService{exportResult: &service.Export{
		Buffer:      bytes.NewBufferString("PK"),
		Filename:    "Planejamento_Álgebra Linear.docx",
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}}
	w := do(exportRouter(NewExportHandler(mock)), http.MethodGet, "/export/docx", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("esperado 200, obtido %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if strings.Contains(cd, "+") {
		t.Errorf("espaço não pode virar '+': %q", cd)
	}
	disposition, params, err := mime.ParseMediaType(cd)
	if err != nil || disposition != "attachment" {
		t.Fatalf("Content-Disposition inválido %q: %v", cd, err)
	}
	if params["filename"] != "Planejamento_Álgebra Linear.docx" {
		t.Errorf("nome decodificado inesperado: %q (%q)", params["filename"], cd)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "application/vnd.openxmlformats") {
		t.Errorf("Content-Type inesperado: %q", w.Header().Get("Content-Type"))
	}
	if w.Body.String() != "PK" {
		t.Errorf("corpo inesperado: %q", w.Body.String())
	}
}

func TestExportHandler_Export_ValidationFailure(t *testing.T) {
	res := form.Validate(form.NewDefaultDraft())
	mock := &mockExportService{exportErr: &service.ValidationFailure{Result: res}}
	w := do(exportRouter(NewExportHandler(mock)), http.MethodGet, "/export/pdf", nil)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("esperado 422, obtido %d", w.Code)
	}
	var vr dto.ValidationResponse
	env := parseEnvelope(t, w, &vr)
	if env.Code != 21001 || env.Message != service.MsgRequiredMissing {
		t.Errorf("envelope inesperado: %+v", env)
	}
	if len(vr.Violations) != len(res.Violations) || vr.FirstInvalidField == nil {
		t.Errorf("violações ausentes: %+v", vr)
	}
}

func TestExportHandler_Export_Errors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   int
	}{
		{service.ErrUnsupportedFormat, http.StatusBadRequest, 22002},
		{service.ErrExportUnavailable, http.StatusServiceUnavailable, 22001},
		{service.ErrExportGenerateFail, http.StatusInternalServerError, 50000},
	}
	for _, tc := range cases {
		w := do(exportRouter(NewExportHandler(&mockExportService{exportErr: tc.err})), http.MethodGet, "/export/odt", nil)
		if w.Code != tc.status {
			t.Errorf("%v: esperado %d, obtido %d", tc.err, tc.status, w.Code)
		}
		if env := parseEnvelope(t, w, nil); env.Code != tc.code {
			t.Errorf("%v: esperado code %d, obtido %d", tc.err, tc.code, env.Code)
		}
	}
}

func TestExportHandler_PreviewAndFormats(t *testing.T) {
	doc := &form.Document{Static: form.StaticFields{form.KeyDisciplina: "Algoritmos"}, TotalCH: 6}
	r := exportRouter(NewExportHandler(&mockExportService{previewResult: doc}))

	var got form.Document
	parseEnvelope(t, do(r, http.MethodPost, "/export/preview", nil), &got)
	if got.TotalCH != 6 || got.Disciplina() != "Algoritmos" {
		t.Errorf("pré-visualização inesperada: %+v", got)
	}

	var formats struct {
		List []string `json:"list"`
	}
	parseEnvelope(t, do(r, http.MethodGet, "/export/formats", nil), &formats)
	if len(formats.List) != 2 {
		t.Errorf("formatos: obtido %v", formats.List)
	}
}

func strPtr(s string) *string { return &s }
