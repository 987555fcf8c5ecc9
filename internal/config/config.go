// Package config provides configuration loading and structs for paperscope.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// BackendURLEnv is the environment variable that selects the backend base address.
const BackendURLEnv = "BACKEND_URL"

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Backend BackendConfig `yaml:"backend"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
	Stub    StubConfig    `yaml:"stub"`
}

// BackendConfig holds the inference backend address.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
}

// UIConfig holds the initial form values of the interactive client.
type UIConfig struct {
	DefaultTopK  int    `yaml:"default_top_k"`
	DefaultText  string `yaml:"default_text"`
	DefaultQuery string `yaml:"default_query"`
	BarWidth     int    `yaml:"bar_width"`
}

// LogConfig holds log output settings. An empty File disables logging in the TUI.
type LogConfig struct {
	File string `yaml:"file"`
}

// StubConfig holds settings for the local stub backend.
type StubConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	CatalogPath string `yaml:"catalog_path"`
	Watch       bool   `yaml:"watch"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File, configDir)
	}
	if cfg.Stub.CatalogPath != "" {
		cfg.Stub.CatalogPath = expandPath(cfg.Stub.CatalogPath, configDir)
	}

	return &cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields a default config.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
		ApplyDefaults(cfg)
		return cfg, nil
	}
	return nil, err
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ResolveBaseURL returns the backend address to use for the process lifetime.
// Precedence: flagValue, then BACKEND_URL (a .env file in the working directory is
// honored), then backend.base_url from the config, then DefaultBaseURL.
func (c *Config) ResolveBaseURL(flagValue string) string {
	// godotenv.Load never overrides variables that are already set.
	_ = godotenv.Load()

	candidates := []string{flagValue, os.Getenv(BackendURLEnv), c.Backend.BaseURL}
	for _, v := range candidates {
		if v = strings.TrimSpace(v); v != "" {
			return strings.TrimRight(v, "/")
		}
	}
	return DefaultBaseURL
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
