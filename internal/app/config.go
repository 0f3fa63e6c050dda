package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/routesettings-backend/internal/data/db"
	httpMW "github.com/yungbote/routesettings-backend/internal/http/middleware"
	"github.com/yungbote/routesettings-backend/internal/platform/envutil"
	"github.com/yungbote/routesettings-backend/internal/platform/gateway"
	"github.com/yungbote/routesettings-backend/internal/platform/logger"
)

const devSessionSecret = "routesettings-dev-session-secret"

type Config struct {
	Port        string
	LogMode     string
	ServiceName string
	Branch      string

	DB      db.Config
	Session httpMW.SessionConfig
	Gateway gateway.Config

	LoginRatePerMinute int
	LoginRateBurst     int
	OffloadWorkers     int
	BcryptCost         int

	CORSOrigins    []string
	MetricsEnabled bool
	TracingEnabled bool
}

// Dev reports whether the API is mounted under /dev.
func (c Config) Dev() bool { return c.Branch == "dev" }

func (c Config) Production() bool {
	m := strings.ToLower(c.LogMode)
	return m == "prod" || m == "production"
}

// LoadEnvFile loads .env when present. Values already in the environment win.
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
}

func LogOptions() logger.Options {
	return logger.Options{
		Mode:       envutil.String("LOG_MODE", "development"),
		FilePath:   envutil.String("LOG_FILE_PATH", ""),
		MaxSizeMB:  envutil.Int("LOG_MAX_SIZE_MB", 100),
		MaxBackups: envutil.Int("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: envutil.Int("LOG_MAX_AGE_DAYS", 28),
		Compress:   envutil.Bool("LOG_COMPRESS", false),
	}
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		LogMode:     envutil.String("LOG_MODE", "development"),
		ServiceName: envutil.String("SERVICE_NAME", "routesettings"),
		Branch:      CurrentBranch("."),
		DB: db.Config{
			Driver:           strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres)),
			DSN:              envutil.String("DB_DSN", ""),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "routesettings"),
			SQLitePath:       envutil.String("SQLITE_PATH", "routesettings.db"),
			MaxOpenConns:     envutil.Int("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:     envutil.Int("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime:  envutil.Seconds("DB_CONN_MAX_LIFETIME_SECONDS", 30*time.Minute),
			SlowThreshold:    envutil.Seconds("DB_SLOW_THRESHOLD_SECONDS", time.Second),
		},
		Session: httpMW.SessionConfig{
			Secret:     envutil.String("SESSION_SECRET", ""),
			CookieName: envutil.String("SESSION_COOKIE_NAME", "sessionid"),
			Secure:     envutil.Bool("SESSION_COOKIE_SECURE", false),
			MaxAge:     envutil.Int("SESSION_MAX_AGE_SECONDS", 14*24*60*60),
		},
		Gateway:            gateway.ConfigFromEnv(),
		LoginRatePerMinute: envutil.Int("LOGIN_RATE_PER_MINUTE", 10),
		LoginRateBurst:     envutil.Int("LOGIN_RATE_BURST", 5),
		OffloadWorkers:     envutil.Int("OFFLOAD_WORKERS", 8),
		BcryptCost:         envutil.Int("BCRYPT_COST", 12),
		CORSOrigins:        envutil.List("CORS_ALLOW_ORIGINS", nil),
		MetricsEnabled:     envutil.Bool("METRICS_ENABLED", true),
		TracingEnabled:     envutil.Bool("OTEL_ENABLED", false),
	}

	if cfg.Session.Secret == "" && !cfg.Production() {
		if log != nil {
			log.Warn("SESSION_SECRET not set, using development secret")
		}
		cfg.Session.Secret = devSessionSecret
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DB.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DB.Driver)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if len(c.Session.Secret) < 16 {
		return fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}
	if c.OffloadWorkers < 1 {
		return fmt.Errorf("OFFLOAD_WORKERS must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if err := c.Gateway.Validate(); err != nil {
		return fmt.Errorf("gateway config: %w", err)
	}
	return nil
}
