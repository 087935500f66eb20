package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the dashboard server
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host         string   `yaml:"host"`
	Port         int      `yaml:"port"`
	MaxUploadMB  int      `yaml:"max_upload_mb"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error, off
}

// DashboardConfig holds the sniffing and filtering tunables
type DashboardConfig struct {
	DefaultLanguage       string        `yaml:"default_language"` // "en" or "id"
	PreviewRows           int           `yaml:"preview_rows"`
	CategoricalThreshold  int           `yaml:"categorical_threshold"`
	MaxCategoricalFilters int           `yaml:"max_categorical_filters"`
	SessionTTL            time.Duration `yaml:"session_ttl"` // idle time before a session is dropped
}

// Addr returns the listen address.
func (cfg *Config) Addr() string {
	return fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadMB == 0 {
		cfg.Server.MaxUploadMB = 10
	}
	if len(cfg.Server.AllowOrigins) == 0 {
		cfg.Server.AllowOrigins = []string{"*"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Dashboard.DefaultLanguage == "" {
		cfg.Dashboard.DefaultLanguage = "en"
	}
	if cfg.Dashboard.PreviewRows == 0 {
		cfg.Dashboard.PreviewRows = 100
	}
	if cfg.Dashboard.CategoricalThreshold == 0 {
		cfg.Dashboard.CategoricalThreshold = 20
	}
	if cfg.Dashboard.MaxCategoricalFilters == 0 {
		cfg.Dashboard.MaxCategoricalFilters = 5
	}
	if cfg.Dashboard.SessionTTL == 0 {
		cfg.Dashboard.SessionTTL = 30 * time.Minute
	}
}

// Validate rejects values the server cannot run with. Zero means "use the
// default" and is filled in before validation.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Server.Port < 1 || cfg.Server.Port > 65535:
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	case cfg.Server.MaxUploadMB < 1:
		return fmt.Errorf("server.max_upload_mb must be at least 1, got %d", cfg.Server.MaxUploadMB)
	case cfg.Dashboard.PreviewRows < 1:
		return fmt.Errorf("dashboard.preview_rows must be at least 1, got %d", cfg.Dashboard.PreviewRows)
	case cfg.Dashboard.CategoricalThreshold < 1:
		return fmt.Errorf("dashboard.categorical_threshold must be at least 1, got %d", cfg.Dashboard.CategoricalThreshold)
	case cfg.Dashboard.MaxCategoricalFilters < 1:
		return fmt.Errorf("dashboard.max_categorical_filters must be at least 1, got %d", cfg.Dashboard.MaxCategoricalFilters)
	case cfg.Dashboard.SessionTTL < time.Minute:
		return fmt.Errorf("dashboard.session_ttl must be at least 1m, got %s", cfg.Dashboard.SessionTTL)
	}
	return nil
}

// LoadFromEnv loads the YAML file when it exists, then applies .env and
// environment overrides. A missing file is not an error.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if host := os.Getenv("DASHBOARD_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("DASHBOARD_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("DASHBOARD_PORT: %w", err)
		}
		cfg.Server.Port = p
	}
	if mb := os.Getenv("DASHBOARD_MAX_UPLOAD_MB"); mb != "" {
		n, err := strconv.Atoi(mb)
		if err != nil {
			return nil, fmt.Errorf("DASHBOARD_MAX_UPLOAD_MB: %w", err)
		}
		cfg.Server.MaxUploadMB = n
	}
	if level := os.Getenv("DASHBOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if lang := os.Getenv("DASHBOARD_DEFAULT_LANG"); lang != "" {
		cfg.Dashboard.DefaultLanguage = lang
	}
	if ttl := os.Getenv("DASHBOARD_SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("DASHBOARD_SESSION_TTL: %w", err)
		}
		cfg.Dashboard.SessionTTL = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
