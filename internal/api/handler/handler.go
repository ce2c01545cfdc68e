package handler

import "uece-planner/internal/service"

// Handler aggregates every handler.
type Handler struct {
	Plan   *PlanHandler
	Export *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Plan:   NewPlanHandler(svc.Plan),
		Export: NewExportHandler(svc.Export),
	}
}
