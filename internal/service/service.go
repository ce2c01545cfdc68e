package service

import (
	"go.uber.org/zap"

	"uece-planner/config"
	"uece-planner/internal/form"
	"uece-planner/internal/render"
)

// Service aggregates every service.
type Service struct {
	Plan   PlanService
	Export ExportService
}

// NewService wires the form session and the exporter on top of the store.
func NewService(cfg *config.Config, store *DraftStore, converter render.Converter, logger *zap.Logger) *Service {
	plan := NewPlanService(store, PlanOptions{
		AutosaveDelay:    cfg.Session.AutosaveDelay,
		StatusClearDelay: cfg.Session.StatusClearDelay,
		NotificationTTL:  cfg.Session.NotificationTTL,
	}, logger.Named("plan"))

	renderers := render.NewRegistry(render.Options{
		SupportEmail: cfg.Export.SupportEmail,
		Location:     cfg.Export.Location(),
		Converter:    converter,
	})
	export := NewExportService(plan, form.NewDocumentBuilder(cfg.Export.DropHiddenValues), renderers, logger.Named("export"))

	return &Service{Plan: plan, Export: export}
}
