package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Ollama    OllamaConfig
	Retry     RetryConfig
	Logging   LogConfig
	RateLimit RateLimitConfig

	// DepartmentsFile optionally overrides the built-in department roster.
	DepartmentsFile string `envconfig:"DEPARTMENTS_FILE" default:""`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"5000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// DatabaseConfig holds Postgres connection configuration.
type DatabaseConfig struct {
	URL          string `envconfig:"DATABASE_URL" default:"postgres://localhost:5432/patientcall?sslmode=disable"`
	MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
}

// OllamaConfig holds the local model service configuration. The decoding
// options are tunable knobs, not contracts; this is the single place they
// are set.
type OllamaConfig struct {
	Host          string        `envconfig:"OLLAMA_HOST" default:"http://localhost:11434"`
	Model         string        `envconfig:"OLLAMA_MODEL" default:"nemotron-mini"`
	ProbeTimeout  time.Duration `envconfig:"OLLAMA_PROBE_TIMEOUT" default:"5s"`
	Temperature   float64       `envconfig:"OLLAMA_TEMPERATURE" default:"0.7"`
	TopK          int           `envconfig:"OLLAMA_TOP_K" default:"40"`
	TopP          float64       `envconfig:"OLLAMA_TOP_P" default:"0.9"`
	NumCtx        int           `envconfig:"OLLAMA_NUM_CTX" default:"512"`
	RepeatPenalty float64       `envconfig:"OLLAMA_REPEAT_PENALTY" default:"1.1"`
	// SpawnCommand is the executable launched as a best-effort recovery
	// when the service is unreachable. Empty disables recovery.
	SpawnCommand string `envconfig:"OLLAMA_SPAWN_COMMAND" default:""`
}

// RetryConfig holds backoff settings for model service calls.
type RetryConfig struct {
	MaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
	BaseDelay   time.Duration `envconfig:"RETRY_BASE_DELAY" default:"1s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5000",
			Host: "0.0.0.0",
		},
		Database: DatabaseConfig{
			URL:          "postgres://localhost:5432/patientcall?sslmode=disable",
			MaxOpenConns: 10,
		},
		Ollama: OllamaConfig{
			Host:          "http://localhost:11434",
			Model:         "nemotron-mini",
			ProbeTimeout:  5 * time.Second,
			Temperature:   0.7,
			TopK:          40,
			TopP:          0.9,
			NumCtx:        512,
			RepeatPenalty: 1.1,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
