// Package config loads panel settings from ~/.panel/config.json with
// environment overrides. Precedence: flags > env > file > defaults; the flag
// layer is applied by the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// BaseURL of the remote data source.
	BaseURL string `json:"baseUrl,omitempty"`

	// TimeoutSeconds bounds each remote request.
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`

	Cache *CacheConfig `json:"cache,omitempty"`

	// TUI holds optional user preferences for the interactive panel.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type CacheConfig struct {
	Enabled    bool   `json:"enabled,omitempty"`
	TTLMinutes int    `json:"ttlMinutes,omitempty"`
	Path       string `json:"path,omitempty"`
}

type TUIConfig struct {
	// Profile is the appearance profile id (e.g. "default", "mono").
	Profile string `json:"profile,omitempty"`
}

const (
	defaultTimeoutSeconds = 15
	defaultCacheTTLMin    = 10
)

func Default() Config {
	return Config{
		BaseURL:        "https://jsonplaceholder.typicode.com",
		TimeoutSeconds: defaultTimeoutSeconds,
	}
}

// Dir is the per-user config/cache directory (~/.panel).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".panel"), nil
}

// Load reads ~/.panel/config.json and applies env overrides. A missing file
// yields defaults; a malformed file is an error.
func Load() (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(filepath.Join(dir, "config.json"))
}

func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults.
	case err != nil:
		return cfg, err
	default:
		var fileCfg Config
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.merge(fileCfg)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if strings.TrimSpace(o.BaseURL) != "" {
		c.BaseURL = o.BaseURL
	}
	if o.TimeoutSeconds > 0 {
		c.TimeoutSeconds = o.TimeoutSeconds
	}
	if o.Cache != nil {
		c.Cache = o.Cache
	}
	if o.TUI != nil {
		c.TUI = o.TUI
	}
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("PANEL_BASE_URL")); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("PANEL_TIMEOUT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutSeconds = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("PANEL_CACHE")); v != "" {
		enabled := v == "1" || strings.EqualFold(v, "true")
		if c.Cache == nil {
			c.Cache = &CacheConfig{}
		}
		c.Cache.Enabled = enabled
	}
}

// Timeout returns the per-request timeout as a duration.
func (c Config) Timeout() time.Duration {
	s := c.TimeoutSeconds
	if s <= 0 {
		s = defaultTimeoutSeconds
	}
	return time.Duration(s) * time.Second
}

// CacheTTL returns the cache freshness window.
func (c Config) CacheTTL() time.Duration {
	m := 0
	if c.Cache != nil {
		m = c.Cache.TTLMinutes
	}
	if m <= 0 {
		m = defaultCacheTTLMin
	}
	return time.Duration(m) * time.Minute
}

// CachePath returns the cache file location, defaulting under Dir().
func (c Config) CachePath() (string, error) {
	if c.Cache != nil && strings.TrimSpace(c.Cache.Path) != "" {
		return c.Cache.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache.sqlite"), nil
}

// CacheEnabled reports whether the response cache should be used.
func (c Config) CacheEnabled() bool {
	return c.Cache != nil && c.Cache.Enabled
}
