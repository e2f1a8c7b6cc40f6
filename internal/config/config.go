package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to an env var.
type Config struct {
	// Console
	Port     int    `mapstructure:"PORT"`
	Env      string `mapstructure:"APP_ENV"` // development | production
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Permission a role needs for user, role, invite and company admin.
	// Empty leaves those routes to any signed-in user.
	AdminPermission string `mapstructure:"ADMIN_PERMISSION"`

	// Remote API
	APIBaseURL              string `mapstructure:"API_BASE_URL"`
	GatewayTimeoutSeconds   int    `mapstructure:"GATEWAY_TIMEOUT"` // 0 = no timeout
	GatewayCoalesce         bool   `mapstructure:"GATEWAY_COALESCE"`
	GatewayBreakerThreshold int    `mapstructure:"GATEWAY_BREAKER_THRESHOLD"` // 0 = disabled
	GatewayBreakerOpenSecs  int    `mapstructure:"GATEWAY_BREAKER_OPEN_SECONDS"`

	// Session persistence
	SessionStore string `mapstructure:"SESSION_STORE"` // file | redis | database | memory
	SessionKey   string `mapstructure:"SESSION_KEY"`
	SessionDir   string `mapstructure:"SESSION_DIR"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Database (session_records table only)
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Invoice e-mailing
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`
	SMTPHost       string `mapstructure:"SMTP_HOST"`
	SMTPPort       int    `mapstructure:"SMTP_PORT"`
	SMTPUser       string `mapstructure:"SMTP_USER"`
	SMTPPassword   string `mapstructure:"SMTP_PASSWORD"`

	// Documents
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
	CompanyName    string `mapstructure:"COMPANY_NAME"`
}

// GatewayTimeout returns the per-request timeout; zero means wait forever.
func (c *Config) GatewayTimeout() time.Duration {
	return time.Duration(c.GatewayTimeoutSeconds) * time.Second
}

// BreakerOpenTimeout is how long a tripped breaker stays open before probing.
func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.GatewayBreakerOpenSecs) * time.Second
}

// InvoiceEmailEnabled reports whether invoices can be e-mailed: SMTP must be
// set and at least one worker must drain the queue.
func (c *Config) InvoiceEmailEnabled() bool {
	return c.SMTPHost != "" && c.WorkerPoolSize > 0
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	// Optional .env file for local development; a missing file is fine
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key; viper's Unmarshal only sees env vars for
// keys it already knows about.
func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ADMIN_PERMISSION", "")

	v.SetDefault("API_BASE_URL", "http://localhost:5000/api")
	v.SetDefault("GATEWAY_TIMEOUT", 0)
	v.SetDefault("GATEWAY_COALESCE", true)
	v.SetDefault("GATEWAY_BREAKER_THRESHOLD", 0)
	v.SetDefault("GATEWAY_BREAKER_OPEN_SECONDS", 30)

	v.SetDefault("SESSION_STORE", "file")
	v.SetDefault("SESSION_KEY", "repairs-auth")
	v.SetDefault("SESSION_DIR", defaultSessionDir())

	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("DATABASE_URL", "")

	v.SetDefault("WORKER_POOL_SIZE", 2)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")

	v.SetDefault("PDF_STORAGE_PATH", "/tmp/repairs/pdfs")
	v.SetDefault("COMPANY_NAME", "Repairs")
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".repairs"
	}
	return filepath.Join(home, ".repairs")
}
