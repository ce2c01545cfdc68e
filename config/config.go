package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // export.timezone must resolve on hosts without zoneinfo

	"github.com/spf13/viper"
)

// Config is the whole application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Session  SessionConfig  `mapstructure:"session"`
	Export   ExportConfig   `mapstructure:"export"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	BaseURL   string     `mapstructure:"base_url"`
	BodyLimit int64      `mapstructure:"body_limit"` // bytes
	CORS      CORSConfig `mapstructure:"cors"`
}

// CORSConfig cross-origin settings.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// StorageConfig selects where the draft lives.
type StorageConfig struct {
	Driver   string `mapstructure:"driver"`
	Key      string `mapstructure:"key"`
	MaxBytes int    `mapstructure:"max_bytes"`
}

// DatabaseConfig covers both SQL backends. Path is used by sqlite; the
// remaining connection fields by postgres.
type DatabaseConfig struct {
	Path            string `mapstructure:"path"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the postgres connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig redis connection. Addr empty disables redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig logging settings.
type LogConfig struct {
	Level  string   `mapstructure:"level"`
	Format string   `mapstructure:"format"`
	Output []string `mapstructure:"output"`
}

// SessionConfig timing of the form session.
type SessionConfig struct {
	AutosaveDelay    time.Duration `mapstructure:"autosave_delay"`
	StatusClearDelay time.Duration `mapstructure:"status_clear_delay"`
	NotificationTTL  time.Duration `mapstructure:"notification_ttl"`
}

// ExportConfig document export settings.
type ExportConfig struct {
	SupportEmail     string          `mapstructure:"support_email"`
	DropHiddenValues bool            `mapstructure:"drop_hidden_values"`
	Timezone         string          `mapstructure:"timezone"`
	PDF              PDFConfig       `mapstructure:"pdf"`
	RateLimit        RateLimitConfig `mapstructure:"rate_limit"`
}

// Location resolves Timezone, falling back to UTC.
func (c ExportConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		return loc
	}
	return time.UTC
}

// PDFConfig the HTML to PDF converter.
type PDFConfig struct {
	WkhtmltopdfPath string `mapstructure:"wkhtmltopdf_path"`
	DPI             uint   `mapstructure:"dpi"`
}

// RateLimitConfig sliding window applied to export downloads.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// Load reads configuration with precedence env > file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── Defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.body_limit", 2<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.key", "uece_planning_draft_v1")
	v.SetDefault("storage.max_bytes", 5<<20)

	v.SetDefault("db.path", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "uece_planner")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "America/Fortaleza")
	v.SetDefault("db.max_open_conns", 5)
	v.SetDefault("db.max_idle_conns", 2)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", []string{"stderr"})

	v.SetDefault("session.autosave_delay", "1s")
	v.SetDefault("session.status_clear_delay", "3s")
	v.SetDefault("session.notification_ttl", "4s")

	v.SetDefault("export.support_email", "atendimentosate@uece.br")
	v.SetDefault("export.drop_hidden_values", false)
	v.SetDefault("export.timezone", "America/Fortaleza")
	v.SetDefault("export.pdf.wkhtmltopdf_path", "")
	v.SetDefault("export.pdf.dpi", 96)
	v.SetDefault("export.rate_limit.requests", 20)
	v.SetDefault("export.rate_limit.window", "1m")

	// ── Config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── Environment ──
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("falha ao ler o arquivo de configuração: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("falha ao interpretar a configuração: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("configuração inválida: server.port deve estar entre 1 e 65535")
	}
	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres:
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("configuração inválida: storage.driver=redis exige redis.addr")
		}
	default:
		return fmt.Errorf("configuração inválida: storage.driver %q desconhecido", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("configuração inválida: storage.key não pode ser vazio")
	}
	if c.Storage.MaxBytes <= 0 {
		return fmt.Errorf("configuração inválida: storage.max_bytes deve ser positivo")
	}
	if c.Session.AutosaveDelay <= 0 || c.Session.NotificationTTL <= 0 {
		return fmt.Errorf("configuração inválida: session.autosave_delay e session.notification_ttl devem ser positivos")
	}
	if _, err := time.LoadLocation(c.Export.Timezone); err != nil {
		return fmt.Errorf("configuração inválida: export.timezone %q: %w", c.Export.Timezone, err)
	}
	return nil
}
