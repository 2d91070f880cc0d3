// Package config reads service settings from the environment (optionally
// seeded from a .env file) and validates them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoreDynamoDB = "dynamodb"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port      string `validate:"required,numeric"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=console json"`

	Store       string `validate:"oneof=dynamodb sqlite postgres memory"`
	SQLitePath  string `validate:"required_if=Store sqlite"`
	DatabaseURL string `validate:"required_if=Store postgres"`

	RedisAddress  string
	RedisPassword string
	GuardTTL      time.Duration `validate:"gt=0"`

	DefaultTechnician string `validate:"required"`

	DocumentFetchTimeout  time.Duration `validate:"gt=0"`
	DocumentFetchMaxBytes int64         `validate:"gt=0"`
	DocumentFetchMock     bool
	S3Region              string
	S3Endpoint            string `validate:"omitempty,url"`
}

// LoadDotEnv reads files (".env" when none are given) into the process
// environment. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	cfg := Config{
		Port:                  getenvDefault("PORT", "8080"),
		LogLevel:              strings.ToLower(getenvDefault("LOG_LEVEL", "info")),
		LogFormat:             strings.ToLower(getenvDefault("LOG_FORMAT", "console")),
		Store:                 strings.ToLower(getenvDefault("WORKORDER_STORE", StoreDynamoDB)),
		SQLitePath:            getenvDefault("SQLITE_PATH", "data/workorders.db"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisAddress:          os.Getenv("REDIS_ADDRESS"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		DefaultTechnician:     getenvDefault("DEFAULT_TECHNICIAN", "Dispatch"),
		DocumentFetchMaxBytes: 5 << 20,
		S3Region:              os.Getenv("S3_REGION"),
		S3Endpoint:            os.Getenv("S3_ENDPOINT"),
	}

	var err error
	if cfg.GuardTTL, err = durationEnv("GUARD_TTL", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.DocumentFetchTimeout, err = durationEnv("DOCUMENT_FETCH_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("DOCUMENT_FETCH_MAX_BYTES"); v != "" {
		if cfg.DocumentFetchMaxBytes, err = strconv.ParseInt(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("DOCUMENT_FETCH_MAX_BYTES: %w", err)
		}
	}
	if v := os.Getenv("DOCUMENT_FETCH_MOCK"); v != "" {
		if cfg.DocumentFetchMock, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("DOCUMENT_FETCH_MOCK: %w", err)
		}
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks cfg against its struct tags.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
