package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uece-planner/config"
	"uece-planner/internal/api/handler"
	"uece-planner/internal/api/middleware"
	"uece-planner/internal/api/router"
	"uece-planner/internal/model"
	"uece-planner/internal/render"
	"uece-planner/internal/repository"
	"uece-planner/internal/service"
	"uece-planner/pkg/database"
	applogger "uece-planner/pkg/logger"
	"uece-planner/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "caminho do arquivo de configuração")
	flag.Parse()

	// 1. Configuração
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	// 2. Log
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao iniciar log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("iniciando aplicação",
		zap.Int("port", cfg.Server.Port),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Redis (obrigatório só para storage.driver=redis)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			if cfg.Storage.Driver == config.DriverRedis {
				logger.Fatal("falha ao conectar ao Redis", zap.Error(err))
			}
			logger.Warn("Redis indisponível, limite de exportação desativado", zap.Error(err))
			rdb = nil
		}
	}

	// 4. Armazenamento do rascunho
	var (
		db   *gorm.DB
		repo *repository.Repository
	)
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		repo = repository.NewRedisRepository(rdb)
	default:
		db, err = database.NewDB(cfg.Storage.Driver, &cfg.Database, logger)
		if err != nil {
			logger.Fatal("falha ao conectar ao banco", zap.Error(err))
		}
		if err := database.Migrate(db, cfg.Storage.Driver, logger, &model.PlanningDraft{}); err != nil {
			logger.Fatal("falha na migração", zap.Error(err))
		}
		repo = repository.NewRepository(db)
	}
	store := service.NewDraftStore(repo.Draft, cfg.Storage.Key, cfg.Storage.MaxBytes, logger)

	// 5. Conversor de PDF (opcional)
	var converter render.Converter
	if wk, err := render.NewWkhtmltopdfConverter(cfg.Export.PDF.WkhtmltopdfPath, cfg.Export.PDF.DPI); err != nil {
		logger.Warn("wkhtmltopdf não encontrado, exportação PDF indisponível", zap.Error(err))
	} else {
		converter = wk
	}

	// 6. Service → Handler → Router
	svc := service.NewService(cfg, store, converter, logger)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svc.Plan.Start(startCtx); err != nil {
		cancelStart()
		logger.Fatal("falha ao iniciar sessão do formulário", zap.Error(err))
	}
	cancelStart()

	var limiter middleware.RateLimiter
	if rdb != nil {
		limiter = rdb
	}

	h := handler.NewHandler(svc)
	engine, err := router.Setup(cfg, h, limiter, logger)
	if err != nil {
		logger.Fatal("falha ao montar rotas", zap.Error(err))
	}

	// 7. HTTP com desligamento gracioso
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("servidor HTTP iniciado", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("erro no servidor HTTP", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("sinal recebido, encerrando", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("falha ao encerrar servidor", zap.Error(err))
	}

	// grava alterações pendentes antes de fechar o armazenamento
	if err := svc.Plan.Close(ctx); err != nil {
		logger.Error("falha ao gravar rascunho pendente", zap.Error(err))
	}

	if db != nil {
		if sqlDB, _ := db.DB(); sqlDB != nil {
			sqlDB.Close()
		}
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("servidor encerrado")
}
