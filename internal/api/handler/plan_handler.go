package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"uece-planner/internal/dto"
	"uece-planner/internal/service"
	"uece-planner/pkg/response"
)

// PlanHandler exposes the form session.
type PlanHandler struct {
	planSvc service.PlanService
}

// NewPlanHandler creates a PlanHandler.
func NewPlanHandler(planSvc service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// ── Plan ──

// GetPlan returns the form projection.
// @Summary Estado atual do formulário
// @Tags Plano
// @Produce json
// @Success 200 {object} dto.PlanView
// @Router /plan [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	response.OK(c, h.planSvc.View())
}

// GetDraft returns the draft in its stored format.
// @Summary Rascunho no formato de armazenamento
// @Tags Plano
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /plan/draft [get]
func (h *PlanHandler) GetDraft(c *gin.Context) {
	raw, err := h.planSvc.StoredDraft()
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, raw)
}

// UpdateStatic patches top-level fields.
// @Summary Atualiza campos fixos
// @Tags Plano
// @Accept json
// @Produce json
// @Param body body dto.UpdateStaticRequest true "Campos por chave"
// @Success 200 {object} dto.PlanView
// @Failure 400 {object} response.Response
// @Router /plan/static [put]
func (h *PlanHandler) UpdateStatic(c *gin.Context) {
	var req dto.UpdateStaticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	response.OK(c, h.planSvc.UpdateStatic(&req))
}

// ── Modules ──

// AddModule appends a module.
// @Summary Adiciona módulo
// @Tags Módulos
// @Accept json
// @Produce json
// @Param body body dto.ModuleRequest false "Valores iniciais"
// @Success 201 {object} dto.ModuleView
// @Router /plan/modules [post]
func (h *PlanHandler) AddModule(c *gin.Context) {
	var req dto.ModuleRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	response.Created(c, h.planSvc.AddModule(&req))
}

// UpdateModule edits a module.
// @Summary Edita módulo
// @Tags Módulos
// @Accept json
// @Produce json
// @Param id path string true "ID do módulo"
// @Param body body dto.ModuleRequest true "Campos alterados"
// @Success 200 {object} dto.ModuleView
// @Failure 404 {object} response.Response
// @Router /plan/modules/{id} [patch]
func (h *PlanHandler) UpdateModule(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}
	var req dto.ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	view, err := h.planSvc.UpdateModule(id, &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, view)
}

// RemoveModule removes a module and its resources.
// @Summary Remove módulo
// @Description Sem confirm=true nada é removido.
// @Tags Módulos
// @Produce json
// @Param id path string true "ID do módulo"
// @Param confirm query bool false "Confirma a remoção"
// @Success 200 {object} dto.RemovedResponse
// @Failure 404 {object} response.Response
// @Router /plan/modules/{id} [delete]
func (h *PlanHandler) RemoveModule(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}
	confirm, ok := MustGetConfirm(c)
	if !ok {
		return
	}
	removed, err := h.planSvc.RemoveModule(id, confirm)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, dto.RemovedResponse{Removed: removed})
}

// ── Resources ──

// AddResource appends a resource to a module.
// @Summary Adiciona recurso
// @Tags Módulos
// @Accept json
// @Produce json
// @Param id path string true "ID do módulo"
// @Param body body dto.ResourceRequest false "Valores iniciais"
// @Success 201 {object} dto.ResourceView
// @Failure 404 {object} response.Response
// @Router /plan/modules/{id}/resources [post]
func (h *PlanHandler) AddResource(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}
	var req dto.ResourceRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	view, err := h.planSvc.AddResource(id, &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.Created(c, view)
}

// UpdateResource edits a resource.
// @Summary Edita recurso
// @Tags Módulos
// @Accept json
// @Produce json
// @Param id path string true "ID do recurso"
// @Param body body dto.ResourceRequest true "Campos alterados"
// @Success 200 {object} dto.ResourceView
// @Failure 404 {object} response.Response
// @Router /plan/resources/{id} [patch]
func (h *PlanHandler) UpdateResource(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}
	var req dto.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	view, err := h.planSvc.UpdateResource(id, &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, view)
}

// RemoveResource removes a resource immediately.
// @Summary Remove recurso
// @Tags Módulos
// @Produce json
// @Param id path string true "ID do recurso"
// @Success 200 {object} dto.RemovedResponse
// @Failure 404 {object} response.Response
// @Router /plan/resources/{id} [delete]
func (h *PlanHandler) RemoveResource(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}
	if err := h.planSvc.RemoveResource(id); err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, dto.RemovedResponse{Removed: true})
}

// ── Evaluations ──

// AddEvaluation appends an evaluation.
// @Summary Adiciona avaliação
// @Tags Avaliações
// @Accept json
// @Produce json
// @Param body body dto.EvaluationRequest false "Valores iniciais"
// @Success 201 {object} dto.EvaluationView
// @Router /plan/evaluations [post]
func (h *PlanHandler) AddEvaluation(c *gin.Context) {
	var req dto.EvaluationRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	response.Created(c, h.planSvc.AddEvaluation(&req))
}

// AddDefaultEvaluations seeds the standard evaluations into an empty list.
// @Summary Adiciona avaliações padrão
// @Tags Avaliações
// @Produce json
// @Success 200 {array} dto.EvaluationView
// @Router /plan/evaluations/defaults [post]
func (h *PlanHandler) AddDefaultEvaluations(c *gin.Context) {
	response.OK(c, h.planSvc.AddDefaultEvaluations())
}

// UpdateEvaluation edits an evaluation.
// @Summary Edita avaliação
// @Tags Avaliações
// @Accept json
// @Produce json
// @Param id path string true "ID da avaliação"
// @Param body body dto.EvaluationRequest true "Campos alterados"
// @Success 200 {object} dto.EvaluationView
// @Failure 404 {object} response.Response
// @Router /plan/evaluations/{id} [patch]
func (h *PlanHandler) UpdateEvaluation(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}
	var req dto.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	view, err := h.planSvc.UpdateEvaluation(id, &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, view)
}

// RemoveEvaluation removes an evaluation after confirmation.
// @Summary Remove avaliação
// @Tags Avaliações
// @Produce json
// @Param id path string true "ID da avaliação"
// @Param confirm query bool false "Confirma a remoção"
// @Success 200 {object} dto.RemovedResponse
// @Failure 404 {object} response.Response
// @Router /plan/evaluations/{id} [delete]
func (h *PlanHandler) RemoveEvaluation(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}
	confirm, ok := MustGetConfirm(c)
	if !ok {
		return
	}
	removed, err := h.planSvc.RemoveEvaluation(id, confirm)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, dto.RemovedResponse{Removed: removed})
}

// ── Attendance ──

// AddAttendanceRow appends an attendance row.
// @Summary Adiciona linha de frequência
// @Tags Frequência
// @Accept json
// @Produce json
// @Param body body dto.AttendanceRowRequest false "Valores iniciais"
// @Success 201 {object} dto.AttendanceView
// @Router /plan/attendance [post]
func (h *PlanHandler) AddAttendanceRow(c *gin.Context) {
	var req dto.AttendanceRowRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	response.Created(c, h.planSvc.AddAttendanceRow(&req))
}

// UpdateAttendanceRow edits an attendance row.
// @Summary Edita linha de frequência
// @Tags Frequência
// @Accept json
// @Produce json
// @Param id path string true "ID da linha"
// @Param body body dto.AttendanceRowRequest true "Campos alterados"
// @Success 200 {object} dto.AttendanceView
// @Failure 404 {object} response.Response
// @Router /plan/attendance/{id} [patch]
func (h *PlanHandler) UpdateAttendanceRow(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}
	var req dto.AttendanceRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	view, err := h.planSvc.UpdateAttendanceRow(id, &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, view)
}

// RemoveAttendanceRow removes an attendance row immediately.
// @Summary Remove linha de frequência
// @Tags Frequência
// @Produce json
// @Param id path string true "ID da linha"
// @Success 200 {object} dto.RemovedResponse
// @Failure 404 {object} response.Response
// @Router /plan/attendance/{id} [delete]
func (h *PlanHandler) RemoveAttendanceRow(c *gin.Context) {
	id, ok := MustGetID(c)
	if !ok {
		return
	}
	if err := h.planSvc.RemoveAttendanceRow(id); err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, dto.RemovedResponse{Removed: true})
}

// ── Validation and persistence ──

// Validate checks the whole plan and marks the offending fields.
// @Summary Valida o plano
// @Tags Plano
// @Produce json
// @Success 200 {object} dto.ValidationResponse
// @Router /plan/validate [post]
func (h *PlanHandler) Validate(c *gin.Context) {
	response.OK(c, service.ToValidationResponse(h.planSvc.Validate()))
}

// Save flushes the pending autosave.
// @Summary Grava o rascunho agora
// @Tags Rascunho
// @Produce json
// @Success 200 {object} dto.StatusView
// @Failure 503 {object} response.Response
// @Failure 507 {object} response.Response
// @Router /plan/save [post]
func (h *PlanHandler) Save(c *gin.Context) {
	status, err := h.planSvc.Save(c.Request.Context())
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, status)
}

// Reload replaces the form with the stored draft.
// @Summary Recarrega o rascunho salvo
// @Tags Rascunho
// @Produce json
// @Success 200 {object} dto.PlanView
// @Router /plan/reload [post]
func (h *PlanHandler) Reload(c *gin.Context) {
	view, err := h.planSvc.Reload(c.Request.Context())
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, view)
}

// Clear deletes the stored draft and resets the form.
// @Summary Apaga o rascunho
// @Description Sem confirm=true nada é apagado.
// @Tags Rascunho
// @Produce json
// @Param confirm query bool false "Confirma a limpeza"
// @Success 200 {object} dto.ClearedResponse
// @Failure 503 {object} response.Response
// @Router /plan/draft [delete]
func (h *PlanHandler) Clear(c *gin.Context) {
	confirm, ok := MustGetConfirm(c)
	if !ok {
		return
	}
	cleared, err := h.planSvc.Clear(c.Request.Context(), confirm)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	response.OK(c, dto.ClearedResponse{Cleared: cleared})
}

// Status returns the save indicator and live notifications.
// @Summary Status de gravação e notificações
// @Tags Rascunho
// @Produce json
// @Success 200 {object} dto.StatusView
// @Router /plan/status [get]
func (h *PlanHandler) Status(c *gin.Context) {
	response.OK(c, h.planSvc.Status())
}

// bindOptionalJSON binds the body when there is one. Add endpoints accept an
// empty body.
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		bindFailed(c, err)
		return false
	}
	return true
}

func (h *PlanHandler) handlePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrModuleNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, service.ErrResourceNotFound):
		response.NotFound(c, 20002, err.Error())
	case errors.Is(err, service.ErrEvaluationNotFound):
		response.NotFound(c, 20003, err.Error())
	case errors.Is(err, service.ErrAttendanceRowNotFound):
		response.NotFound(c, 20004, err.Error())
	case errors.Is(err, service.ErrQuotaExceeded):
		response.Error(c, http.StatusInsufficientStorage, 23002, service.MsgDraftSaveFailed)
	case errors.Is(err, service.ErrStorageFailure):
		response.ServiceUnavailable(c, 23001, err.Error())
	default:
		response.InternalError(c)
	}
}
