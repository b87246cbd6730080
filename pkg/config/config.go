package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// AI provider identifiers accepted in AIConfig.Provider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all configuration for the careplanner engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values. Secrets (passwords, API
// keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// DefaultLanguage is the output language used when a request does not
	// specify one. Analysis always reasons in English regardless.
	DefaultLanguage string `yaml:"default_language" env:"DEFAULT_LANGUAGE" env-default:"English"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// AI generative transport configuration
	AI AIConfig `yaml:"ai"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"careplanner"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"careplanner"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// URL returns the connection string for the configured database.
func (d *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Database, d.SSLMode)
}

// AIConfig holds the generative transport endpoint settings. The engine runs
// against any OpenAI-compatible endpoint (including a local Ollama server) or
// the Anthropic API, selected by Provider.
type AIConfig struct {
	Provider string `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	BaseURL  string `yaml:"base_url" env:"AI_BASE_URL" env-default:"http://localhost:11434/v1"`
	Model    string `yaml:"model" env:"AI_MODEL" env-default:"gemma3:4b"`
	APIKey   string `yaml:"-" env:"AI_API_KEY"` // Secret - not in YAML

	// Circuit breaker tuning for the generative path.
	BreakerThreshold    int `yaml:"breaker_threshold" env:"AI_BREAKER_THRESHOLD" env-default:"5"`
	BreakerResetSeconds int `yaml:"breaker_reset_seconds" env:"AI_BREAKER_RESET_SECONDS" env-default:"30"`
}

// Load reads configuration from config.yaml (if present) and the environment.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AI.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("invalid ai provider %q (must be %q or %q)",
			c.AI.Provider, ProviderOpenAI, ProviderAnthropic)
	}
	if c.AI.Model == "" {
		return fmt.Errorf("ai model is required")
	}
	return nil
}
