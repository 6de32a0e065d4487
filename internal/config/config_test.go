package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.BaseURL != "https://jsonplaceholder.typicode.com" {
		t.Fatalf("default base url = %q", cfg.BaseURL)
	}
	if cfg.Timeout() != 15*time.Second {
		t.Fatalf("default timeout = %v", cfg.Timeout())
	}
	if cfg.CacheEnabled() {
		t.Fatalf("cache must be off by default")
	}
}

func TestLoadFromFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"baseUrl":"http://file.example","timeoutSeconds":3,"cache":{"enabled":true,"ttlMinutes":2}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://file.example" || cfg.Timeout() != 3*time.Second {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if !cfg.CacheEnabled() || cfg.CacheTTL() != 2*time.Minute {
		t.Fatalf("cache config not applied: %+v", cfg.Cache)
	}

	// Env overrides file.
	t.Setenv("PANEL_BASE_URL", "http://env.example")
	t.Setenv("PANEL_TIMEOUT", "7")
	t.Setenv("PANEL_CACHE", "0")
	cfg, err = LoadFrom(path)
	if err != nil {
		t.Fatalf("load with env: %v", err)
	}
	if cfg.BaseURL != "http://env.example" || cfg.Timeout() != 7*time.Second {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.CacheEnabled() {
		t.Fatalf("PANEL_CACHE=0 must disable the cache")
	}
}

func TestLoadFromMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatalf("malformed config must error")
	}
}
