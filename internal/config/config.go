package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Leave    LeaveConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int      `env:"APP_PORT, default=8080"`
	Env         string   `env:"APP_ENV, default=development"`
	LogLevel    string   `env:"LOG_LEVEL, default=info"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:3000"`
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST, default=localhost"`
	Port     int    `env:"DB_PORT, default=5432"`
	User     string `env:"DB_USER, default=postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME, default=hr_portal"`
	SSLMode  string `env:"DB_SSL_MODE, default=disable"`
	MaxConns int32  `env:"DB_MAX_CONNS, default=25"`
	MinConns int32  `env:"DB_MIN_CONNS, default=5"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string        `env:"JWT_SECRET_KEY"`
	AccessExpiration time.Duration `env:"JWT_ACCESS_EXPIRATION_TIME, default=1h"`
	SSEExpiration    time.Duration `env:"JWT_SSE_EXPIRATION_TIME, default=5m"`
}

// RedisConfig configures the department cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB, default=0"`
	TTL      time.Duration `env:"REDIS_DEPARTMENT_TTL, default=10m"`
}

type StorageConfig struct {
	Driver    string   `env:"STORAGE_DRIVER, default=postgres"`
	// SeedUsers are upserted into the user directory on start, as id:name:role:department
	SeedUsers []string `env:"SEED_USERS"`
}

type LeaveConfig struct {
	DefaultTotalDays int `env:"LEAVE_DEFAULT_TOTAL_DAYS, default=25"`
}

// Load reads .env when present, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom decodes and validates the configuration from lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var config Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &config,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 {
		return errors.New("JWT_ACCESS_EXPIRATION_TIME must be positive")
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Password == "" {
			return errors.New("DB_PASSWORD is required")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageDriverPostgres, StorageDriverMemory)
	}
	if c.Leave.DefaultTotalDays < 1 {
		return errors.New("LEAVE_DEFAULT_TOTAL_DAYS must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		Path:     c.Database.Name,
		RawQuery: url.Values{"sslmode": []string{c.Database.SSLMode}}.Encode(),
	}
	return u.String()
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
