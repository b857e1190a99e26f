// Package config provides configuration loading and validation for the service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the service configuration. Values can come from a JSON
// file, environment variables, or CLI flags; later sources win.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Credentials
	GeminiAPIKey  string `json:"gemini_api_key,omitempty"`  // Google Gemini API key
	JSearchAPIKey string `json:"jsearch_api_key,omitempty"` // RapidAPI key for job search

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	SessionDir  string `json:"session_dir,omitempty"`  // Directory for file-based session storage

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// DefaultPort is used when no port is configured anywhere.
const DefaultPort = 8080

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		JSearchAPIKey: os.Getenv("JSEARCH_API_KEY"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SessionDir:    os.Getenv("SESSION_DIR"),
	}
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	return cfg
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to layer file values under env values under flag values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.JSearchAPIKey == "" {
		result.JSearchAPIKey = defaults.JSearchAPIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SessionDir == "" {
		result.SessionDir = defaults.SessionDir
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' %d is out of range", c.Port)
	}
	if c.DatabaseURL != "" && c.SessionDir != "" {
		return fmt.Errorf("config error: 'database_url' and 'session_dir' are mutually exclusive")
	}
	if c.SessionDir != "" {
		info, err := os.Stat(c.SessionDir)
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: 'session_dir' %s is not a directory", c.SessionDir)
		}
	}
	return nil
}
