package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds the settings for both the agent and the record store server.
type Config struct {
	Env     string        `yaml:"env" env:"JINJI_ENV" env-default:"local"`
	Log     LogConfig     `yaml:"log"`
	Backend BackendConfig `yaml:"backend"`
	Retry   RetryConfig   `yaml:"retry"`
	Auth    AuthConfig    `yaml:"auth"`
	Server  ServerConfig  `yaml:"server"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"JINJI_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"JINJI_LOG_FORMAT" env-default:"console"`
}

// BackendConfig describes how the agent reaches the record store.
type BackendConfig struct {
	BaseURL string `yaml:"base_url" env:"JINJI_BACKEND_URL" env-default:"http://localhost:8080"`
	Timeout int    `yaml:"timeout" env:"JINJI_BACKEND_TIMEOUT" env-default:"10"` // seconds
	// UnavailableMarker is matched against error bodies from servers that do
	// not send a structured error code.
	UnavailableMarker string `yaml:"unavailable_marker" env:"JINJI_UNAVAILABLE_MARKER" env-default:"STORE_UNAVAILABLE"`
}

type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts" env:"JINJI_RETRY_MAX_ATTEMPTS" env-default:"3"`
	BaseDelay   int `yaml:"base_delay" env:"JINJI_RETRY_BASE_DELAY" env-default:"1000"` // milliseconds
}

// AuthConfig holds the agent's login credentials.
type AuthConfig struct {
	EmployeeID int    `yaml:"employee_id" env:"JINJI_EMPLOYEE_ID"`
	Password   string `yaml:"password" env:"JINJI_PASSWORD"`
}

type ServerConfig struct {
	Port        int    `yaml:"port" env:"JINJI_SERVER_PORT" env-default:"8080"`
	StoragePath string `yaml:"storage_path" env:"JINJI_STORAGE_PATH" env-default:"jinji.db"`
	JWTSecret   string `yaml:"jwt_secret" env:"JINJI_JWT_SECRET"`
	TokenTTL    int    `yaml:"token_ttl" env:"JINJI_TOKEN_TTL" env-default:"28800"` // seconds
}

// LoadConfig reads an optional .env file, then the YAML file at path with
// environment overrides. A missing YAML file falls back to environment only.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.BaseDelay < 0 {
		return fmt.Errorf("retry.base_delay must not be negative, got %d", c.Retry.BaseDelay)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive, got %d", c.Backend.Timeout)
	}
	return nil
}
