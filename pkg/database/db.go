package database

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"uece-planner/config"
)

// AppName names the per-user data folder.
const AppName = "uece-planner"

// NewDB opens the SQL backend selected by driver. sqlite stores the file
// under cfg.Path, or DefaultDataDir when the path is empty.
func NewDB(driver string, cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN())
	case config.DriverSQLite:
		path := cfg.Path
		if path == "" {
			dir, err := DefaultDataDir(AppName)
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "planner.db")
		}
		dialector = sqlite.Open(path)
		logger = logger.With(zap.String("path", path))
	default:
		return nil, fmt.Errorf("driver de banco desconhecido %q", driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("falha ao obter sql.DB: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 5
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 2
	}
	if driver == config.DriverSQLite {
		// sqlite: one connection, one writer
		maxOpen, maxIdle = 1, 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping ao banco falhou: %w", err)
	}

	logger.Info("banco de dados conectado", zap.String("driver", driver))

	return db, nil
}

// Migrate brings the schema up to date: embedded SQL migrations on
// postgres, AutoMigrate of models on sqlite.
func Migrate(db *gorm.DB, driver string, logger *zap.Logger, models ...interface{}) error {
	if driver == config.DriverPostgres {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("falha ao obter sql.DB: %w", err)
		}
		return RunMigrations(sqlDB, logger)
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("falha ao migrar estruturas: %w", err)
	}
	logger.Info("esquema sqlite atualizado")
	return nil
}

// DefaultDataDir returns (and creates) the per-user application data
// folder: %AppData% on Windows, Application Support on macOS and
// $XDG_DATA_HOME (or ~/.local/share) elsewhere.
func DefaultDataDir(appName string) (string, error) {
	var base string

	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support")
	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			base = filepath.Join(os.Getenv("HOME"), ".local", "share")
		}
	}

	dir := filepath.Join(base, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("falha ao criar diretório de dados: %w", err)
	}
	return dir, nil
}
