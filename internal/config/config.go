package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DriverLibSQL = "libsql"
	DriverMongo  = "mongo"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080" validate:"required"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR"`

	StoreDriver   string `env:"STORE_DRIVER" envDefault:"libsql" validate:"oneof=libsql mongo"`
	DBPath        string `env:"DB_PATH" envDefault:"data/hunt.db" validate:"required_if=StoreDriver libsql"`
	MongoURI      string `env:"MONGODB_URI" validate:"required_if=StoreDriver mongo"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"scavenger-hunt"`

	// Empty RedisURL keeps clue sessions in process memory.
	RedisURL   string        `env:"REDIS_URL"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h" validate:"gt=0"`

	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin" validate:"required"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH" validate:"required_without=AdminPassword"`

	// GateBaseURL switches the access gate to HTTP lookups against a
	// running instance of this API instead of the local store.
	GateBaseURL string        `env:"GATE_BASE_URL" validate:"omitempty,url"`
	GateTimeout time.Duration `env:"GATE_TIMEOUT" envDefault:"5s" validate:"gt=0"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	CookieSecure       bool     `env:"COOKIE_SECURE" envDefault:"false"`
}

// Load reads an optional .env file, then parses and validates the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}
