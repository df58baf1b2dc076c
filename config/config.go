package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	AdminAddr   string        `yaml:"admin_addr"`
	APIAddr     string        `yaml:"api_addr"`
	APIBaseURL  string        `yaml:"api_base_url"`
	APITimeout  time.Duration `yaml:"api_timeout"`
	DatabaseURL string        `yaml:"database_url"`
	SQLitePath  string        `yaml:"sqlite_path"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
}

func Default() *Config {
	return &Config{
		AdminAddr:  ":8080",
		APIAddr:    ":8081",
		APIBaseURL: "http://localhost:8081/",
		SQLitePath: "file:categories.db",
		LogLevel:   "info",
		LogFormat:  "json",
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// and the environment, in that order. A .env file in the working directory
// is loaded first when present.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"ADMIN_ADDR":   &c.AdminAddr,
		"API_ADDR":     &c.APIAddr,
		"API_BASE_URL": &c.APIBaseURL,
		"DATABASE_URL": &c.DatabaseURL,
		"SQLITE_PATH":  &c.SQLitePath,
		"LOG_LEVEL":    &c.LogLevel,
		"LOG_FORMAT":   &c.LogFormat,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("API_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("API_TIMEOUT: %w", err)
		}
		c.APITimeout = d
	}
	return nil
}

// Validate rejects settings the servers cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api base url %q: must be an absolute http(s) url", c.APIBaseURL)
	}
	if c.APITimeout < 0 {
		return fmt.Errorf("api timeout %s: must not be negative", c.APITimeout)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("log format %q: must be json or console", c.LogFormat)
	}
	return nil
}
