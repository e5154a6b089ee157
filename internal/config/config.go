// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"reuse-cost/internal/errors"
	"reuse-cost/internal/logging"
)

// Environment variables that override file settings
const (
	EnvCatalog  = "REUSE_COST_CATALOG"
	EnvAddr     = "REUSE_COST_ADDR"
	EnvLogLevel = "REUSE_COST_LOG_LEVEL"
	EnvFormat   = "REUSE_COST_FORMAT"
	EnvRPS      = "REUSE_COST_RATE_LIMIT"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Catalog contains rate catalog settings
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// CatalogConfig points at an optional HCL file overriding the built-in rates
type CatalogConfig struct {
	// Path is the catalog override file; empty uses built-in rates only
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// ShowRanges prints the display range next to every figure
	ShowRanges bool `json:"show_ranges" yaml:"show_ranges"`

	// Variation is the display range fraction applied around each figure
	Variation float64 `json:"variation" yaml:"variation"`

	// ShowFormulas prints how each line item was derived
	ShowFormulas bool `json:"show_formulas" yaml:"show_formulas"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr"`

	// RateLimit is the sustained requests per second allowed per client
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"`

	// Burst is the request burst allowed per client
	Burst int `json:"burst" yaml:"burst"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowRanges:    true,
			Variation:     0.10,
			ShowFormulas:  false,
		},
		Server: ServerConfig{
			Addr:                   ":8080",
			RateLimit:              5,
			Burst:                  10,
			ShutdownTimeoutSeconds: 10,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the per-user config location
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".reuse-cost.json")
}

// Load loads configuration from a file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config", err)
	}

	config := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Config("failed to parse config "+path, err)
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// YAML encodes the configuration as YAML
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Config("failed to encode config", err)
	}
	return data, nil
}

// ApplyEnv loads envFile when present and applies environment overrides
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return errors.Config("failed to load "+envFile, err)
		}
	}

	if v := os.Getenv(EnvCatalog); v != "" {
		c.Catalog.Path = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvRPS); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Config(EnvRPS+" must be a number", err)
		}
		c.Server.RateLimit = rps
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
