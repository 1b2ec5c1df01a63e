package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Kalshi.BaseURL != "https://api.elections.kalshi.com/trade-api/v2" {
		t.Errorf("BaseURL = %q, want the public API default", cfg.Kalshi.BaseURL)
	}
	if cfg.Cache.LeagueTTL.Duration != 5*time.Minute {
		t.Errorf("LeagueTTL = %v, want 5m", cfg.Cache.LeagueTTL.Duration)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Server.Port)
	}
}

func TestLoad_TOMLMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
log_level = "debug"

[kalshi]
api_key_id = "key-123"

[cache]
league_ttl = "90s"

[server]
port = 9001
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Kalshi.ApiKeyID != "key-123" {
		t.Errorf("ApiKeyID = %q", cfg.Kalshi.ApiKeyID)
	}
	if cfg.Cache.LeagueTTL.Duration != 90*time.Second {
		t.Errorf("LeagueTTL = %v, want 90s", cfg.Cache.LeagueTTL.Duration)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("Port = %d, want 9001", cfg.Server.Port)
	}
	// Untouched sections keep their defaults.
	if cfg.Kalshi.BaseURL == "" {
		t.Error("BaseURL default was lost in the merge")
	}
}

func TestLoad_EnvOverridesWin(t *testing.T) {
	t.Setenv("KALSHME_KALSHI_API_KEY_ID", "env-key")
	t.Setenv("KALSHME_SERVER_PORT", "7777")
	t.Setenv("KALSHME_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("KALSHME_CACHE_LEAGUE_TTL", "2m")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Kalshi.ApiKeyID != "env-key" {
		t.Errorf("ApiKeyID = %q, want env override", cfg.Kalshi.ApiKeyID)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Port = %d, want 7777", cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Cache.LeagueTTL.Duration != 2*time.Minute {
		t.Errorf("LeagueTTL = %v, want 2m", cfg.Cache.LeagueTTL.Duration)
	}
}

func TestValidate_MissingCredentialsIsNotAnError(t *testing.T) {
	cfg := Defaults()
	// No api_key_id, no private key path: the config is still valid; signing
	// fails at the first authenticated request instead.
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "loud"
	cfg.Server.Port = -1
	cfg.Kalshi.BaseURL = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation failure")
	}
	for _, want := range []string{"log_level", "port", "base_url"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err.Error(), want)
		}
	}
}
