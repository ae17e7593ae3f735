package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Database types accepted by DATABASE_TYPE / -t
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port              int           `env:"PORT" envDefault:"3318"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	DatabaseType      string        `env:"DATABASE_TYPE" envDefault:"sqlite"`
	ViewerTokenSecret string        `env:"VIEWER_TOKEN_SECRET"`
	DefaultPageSize   int           `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`
	TrendingWindow    time.Duration `env:"TRENDING_WINDOW" envDefault:"168h"`
	CORSOrigin        string        `env:"CORS_ORIGIN"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
}

// ParseFlags loads .env, reads the environment and lets CLI flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("ideafork-api", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.ViewerTokenSecret, "token-secret", cfg.ViewerTokenSecret, "Viewer token HMAC secret (prefer env)")

	// Tuning
	fs.IntVar(&cfg.DefaultPageSize, "page-size", cfg.DefaultPageSize, "Default list page size")
	fs.DurationVar(&cfg.TrendingWindow, "trending-window", cfg.TrendingWindow, "Window for trending tags")
	fs.StringVar(&cfg.CORSOrigin, "cors-origin", cfg.CORSOrigin, "Allowed CORS origin (empty reflects the request Origin)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks required settings and value ranges
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if c.DatabaseType != DatabaseSQLite && c.DatabaseType != DatabasePostgres {
		return fmt.Errorf("unsupported database type %q (use sqlite or postgres)", c.DatabaseType)
	}
	if c.ViewerTokenSecret == "" {
		return errors.New("VIEWER_TOKEN_SECRET required")
	}
	if c.DefaultPageSize <= 0 {
		return errors.New("default page size must be positive")
	}
	if c.TrendingWindow <= 0 {
		return errors.New("trending window must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts LogLevel into a slog.Level
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}
