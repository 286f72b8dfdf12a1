// Package config loads and validates userpeek configuration.
//
// Precedence, lowest to highest: built-in defaults, user config file
// (~/.config/userpeek/config.yaml), environment variables (USERPEEK_*).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete userpeek configuration.
type Config struct {
	Endpoints EndpointsConfig `yaml:"endpoints"`
	Search    SearchConfig    `yaml:"search"`
	Avatar    AvatarConfig    `yaml:"avatar"`
	LogLevel  string          `yaml:"log_level"`
}

// EndpointsConfig configures the external services the widget talks to.
type EndpointsConfig struct {
	// BaseURL is the host serving the user-search API.
	BaseURL string `yaml:"base_url"`
	// ThumbnailURL is the host serving avatar headshots.
	ThumbnailURL string `yaml:"thumbnail_url"`
	// ProfileURL is the host used to build outbound profile links.
	ProfileURL string `yaml:"profile_url"`
}

// SearchConfig configures the debounced search cycle.
type SearchConfig struct {
	// DebounceWindow is the quiet period after the last keystroke
	// before a search is dispatched.
	DebounceWindow time.Duration `yaml:"debounce_window"`
	// MinQueryLength is the minimum trimmed query length that triggers
	// a network search. Shorter queries clear results without a request.
	MinQueryLength int `yaml:"min_query_length"`
	// Limit is the fixed result limit sent with every search request.
	Limit int `yaml:"limit"`
}

// AvatarConfig configures thumbnail resolution.
type AvatarConfig struct {
	// Size is the requested headshot size, e.g. "150x150".
	Size string `yaml:"size"`
	// Format is the requested image format, e.g. "Png".
	Format string `yaml:"format"`
	// PlaceholderURL is shown for any user id not yet resolved.
	PlaceholderURL string `yaml:"placeholder_url"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Endpoints: EndpointsConfig{
			BaseURL:      "https://users.roblox.com",
			ThumbnailURL: "https://thumbnails.roblox.com",
			ProfileURL:   "https://www.roblox.com",
		},
		Search: SearchConfig{
			DebounceWindow: 300 * time.Millisecond,
			MinQueryLength: 2,
			Limit:          10,
		},
		Avatar: AvatarConfig{
			Size:           "150x150",
			Format:         "Png",
			PlaceholderURL: "https://www.roblox.com/images/default-avatar.png",
		},
		LogLevel: "info",
	}
}

// UserConfigPath returns the path of the user config file.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "userpeek", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "userpeek", "config.yaml")
	}
	return filepath.Join(home, ".config", "userpeek", "config.yaml")
}

// Load builds the effective configuration: defaults, then the user
// config file if present, then environment overrides, then validation.
func Load() (*Config, error) {
	return loadFrom(UserConfigPath())
}

// loadFrom is Load with an explicit config path, for tests.
func loadFrom(path string) (*Config, error) {
	cfg := NewConfig()

	if _, err := os.Stat(path); err == nil {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadYAML loads and merges configuration from a YAML file.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Endpoints.BaseURL != "" {
		c.Endpoints.BaseURL = other.Endpoints.BaseURL
	}
	if other.Endpoints.ThumbnailURL != "" {
		c.Endpoints.ThumbnailURL = other.Endpoints.ThumbnailURL
	}
	if other.Endpoints.ProfileURL != "" {
		c.Endpoints.ProfileURL = other.Endpoints.ProfileURL
	}
	if other.Search.DebounceWindow != 0 {
		c.Search.DebounceWindow = other.Search.DebounceWindow
	}
	if other.Search.MinQueryLength != 0 {
		c.Search.MinQueryLength = other.Search.MinQueryLength
	}
	if other.Search.Limit != 0 {
		c.Search.Limit = other.Search.Limit
	}
	if other.Avatar.Size != "" {
		c.Avatar.Size = other.Avatar.Size
	}
	if other.Avatar.Format != "" {
		c.Avatar.Format = other.Avatar.Format
	}
	if other.Avatar.PlaceholderURL != "" {
		c.Avatar.PlaceholderURL = other.Avatar.PlaceholderURL
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// applyEnvOverrides applies USERPEEK_* environment variables.
// Env vars have the highest precedence.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("USERPEEK_BASE_URL"); v != "" {
		c.Endpoints.BaseURL = v
	}
	if v := os.Getenv("USERPEEK_THUMBNAIL_URL"); v != "" {
		c.Endpoints.ThumbnailURL = v
	}
	if v := os.Getenv("USERPEEK_PROFILE_URL"); v != "" {
		c.Endpoints.ProfileURL = v
	}
	if v := os.Getenv("USERPEEK_DEBOUNCE_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Search.DebounceWindow = d
		}
	}
	if v := os.Getenv("USERPEEK_MIN_QUERY_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.MinQueryLength = n
		}
	}
	if v := os.Getenv("USERPEEK_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.Limit = n
		}
	}
	if v := os.Getenv("USERPEEK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks the final configuration for consistency.
func (c *Config) Validate() error {
	for name, u := range map[string]string{
		"endpoints.base_url":      c.Endpoints.BaseURL,
		"endpoints.thumbnail_url": c.Endpoints.ThumbnailURL,
		"endpoints.profile_url":   c.Endpoints.ProfileURL,
	} {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, u)
		}
	}

	if c.Search.DebounceWindow < 0 {
		return fmt.Errorf("search.debounce_window must be non-negative, got %s", c.Search.DebounceWindow)
	}
	if c.Search.MinQueryLength < 1 {
		return fmt.Errorf("search.min_query_length must be at least 1, got %d", c.Search.MinQueryLength)
	}
	if c.Search.Limit < 1 {
		return fmt.Errorf("search.limit must be at least 1, got %d", c.Search.Limit)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.LogLevel)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file, creating parent
// directories as needed.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
