package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"uece-planner/config"
	_ "uece-planner/docs"
	"uece-planner/internal/api/handler"
	"uece-planner/internal/api/middleware"
	"uece-planner/internal/dto"
)

// Setup builds the gin engine. limiter may be nil, which disables the
// export rate limit.
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := dto.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("falha ao registrar validações: %w", err)
	}

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── Health ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		plan := v1.Group("/plan")
		{
			plan.GET("", h.Plan.GetPlan)
			plan.GET("/draft", h.Plan.GetDraft)
			plan.DELETE("/draft", h.Plan.Clear)
			plan.PUT("/static", h.Plan.UpdateStatic)
			plan.GET("/status", h.Plan.Status)
			plan.POST("/validate", h.Plan.Validate)
			plan.POST("/save", h.Plan.Save)
			plan.POST("/reload", h.Plan.Reload)

			plan.POST("/modules", h.Plan.AddModule)
			plan.PATCH("/modules/:id", h.Plan.UpdateModule)
			plan.DELETE("/modules/:id", h.Plan.RemoveModule)
			plan.POST("/modules/:id/resources", h.Plan.AddResource)
			plan.PATCH("/resources/:id", h.Plan.UpdateResource)
			plan.DELETE("/resources/:id", h.Plan.RemoveResource)

			plan.POST("/evaluations", h.Plan.AddEvaluation)
			plan.POST("/evaluations/defaults", h.Plan.AddDefaultEvaluations)
			plan.PATCH("/evaluations/:id", h.Plan.UpdateEvaluation)
			plan.DELETE("/evaluations/:id", h.Plan.RemoveEvaluation)

			plan.POST("/attendance", h.Plan.AddAttendanceRow)
			plan.PATCH("/attendance/:id", h.Plan.UpdateAttendanceRow)
			plan.DELETE("/attendance/:id", h.Plan.RemoveAttendanceRow)
		}

		export := v1.Group("/export")
		{
			export.GET("/formats", h.Export.Formats)
			export.POST("/preview", h.Export.Preview)
			export.GET("/:format",
				middleware.RateLimit(limiter, cfg.Export.RateLimit.Requests, cfg.Export.RateLimit.Window, logger),
				h.Export.Export,
			)
		}
	}

	return r, nil
}
