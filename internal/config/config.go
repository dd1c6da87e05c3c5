package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	AppMode        string `env:"APP_MODE" envDefault:"dev"`
	Port           string `env:"PORT" envDefault:"3000"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
	SeedDemoData   bool   `env:"SEED_DEMO_DATA"`
	JWT            JWTConfig
	Database       DatabaseConfig
}

// DatabaseConfig holds database configuration.
// Keys are read with the DEV_ or PROD_ prefix matching APP_MODE.
type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER" envDefault:"mysql"`
	Host         string `env:"DB_HOST" envDefault:"localhost"`
	Port         string `env:"DB_PORT"`
	User         string `env:"DB_USER" envDefault:"root"`
	Password     string `env:"DB_PASS"`
	DBName       string `env:"DB_NAME" envDefault:"rf_loans"`
	SSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"100"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
}

// JWTConfig holds the secret used to verify bearer tokens
type JWTConfig struct {
	Secret string `env:"JWT_SECRET" envDefault:"default_secret"`
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables")
	}

	cfg, err := Parse(nil)
	if err != nil {
		return nil, err
	}

	slog.Info("configuration loaded", "mode", cfg.AppMode, "db_driver", cfg.Database.Driver)
	return cfg, nil
}

// Parse builds the configuration from environ, or from the process environment when environ is nil
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Trim spaces for Windows compatibility
	cfg.AppMode = strings.TrimSpace(cfg.AppMode)
	if cfg.AppMode != "dev" && cfg.AppMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", cfg.AppMode)
	}

	prefix := "DEV_"
	if cfg.IsProd() {
		prefix = "PROD_"
	}
	cfg.Database = DatabaseConfig{}
	if err := env.ParseWithOptions(&cfg.Database, env.Options{Environment: environ, Prefix: prefix}); err != nil {
		return nil, fmt.Errorf("parse %sDB env: %w", prefix, err)
	}

	switch cfg.Database.Driver {
	case DriverMySQL:
		if cfg.Database.Port == "" {
			cfg.Database.Port = "3306"
		}
	case DriverPostgres:
		if cfg.Database.Port == "" {
			cfg.Database.Port = "5432"
		}
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("invalid %sDB_DRIVER: '%s' (must be mysql, postgres or sqlite)", prefix, cfg.Database.Driver)
	}

	return cfg, nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins != "" {
		return c.AllowedOrigins
	}
	if c.IsDev() {
		return "*"
	}
	return ""
}
