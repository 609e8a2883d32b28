package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"internhunt-go/internal/config"
)

// ── defaults ───────────────────────────────────────────────────────────────

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got: %v", err)
	}
	if cfg.Pipeline.Workers != 6 {
		t.Errorf("default workers = %d, want 6", cfg.Pipeline.Workers)
	}
	if cfg.Criteria.ResultCap != 100 {
		t.Errorf("default result cap = %d, want 100", cfg.Criteria.ResultCap)
	}
	if cfg.Archive.Enabled {
		t.Error("archiving must be off by default")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadConfig on a missing file should fall back to defaults, got: %v", err)
	}
	if cfg.Pipeline.RequestTimeout != 15*time.Second {
		t.Errorf("request timeout = %v, want the 15s default", cfg.Pipeline.RequestTimeout)
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := config.DefaultConfig()
	cfg.Criteria.WantedKeywords = []string{"golang", "backend"}
	cfg.Criteria.MinStipend = 12000
	cfg.Pipeline.Workers = 3
	cfg.Sources.Unstop.Enabled = false

	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Criteria.MinStipend != 12000 {
		t.Errorf("min stipend = %d, want 12000", loaded.Criteria.MinStipend)
	}
	if loaded.Pipeline.Workers != 3 {
		t.Errorf("workers = %d, want 3", loaded.Pipeline.Workers)
	}
	if loaded.Sources.Unstop.Enabled {
		t.Error("unstop enablement did not round-trip")
	}
}

// ── validation ─────────────────────────────────────────────────────────────

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero workers", func(c *config.Config) { c.Pipeline.Workers = 0 }},
		{"negative retries", func(c *config.Config) { c.Pipeline.MaxRetries = -1 }},
		{"zero request timeout", func(c *config.Config) { c.Pipeline.RequestTimeout = 0 }},
		{"zero result cap", func(c *config.Config) { c.Criteria.ResultCap = 0 }},
		{"bad remote preference", func(c *config.Config) { c.Criteria.RemotePreference = "perhaps" }},
		{"no sources enabled", func(c *config.Config) {
			c.Sources.Internshala.Enabled = false
			c.Sources.Unstop.Enabled = false
			c.Sources.RemoteFeeds.Enabled = false
		}},
		{"feeds enabled without urls", func(c *config.Config) {
			c.Sources.RemoteFeeds.Enabled = true
			c.Sources.RemoteFeeds.URLs = nil
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate should fail")
			}
		})
	}
}

func TestCriteriaConfig_ToCriteria(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Criteria.WantedKeywords = []string{" Python ", "python", "ML"}
	cfg.Criteria.RemotePreference = "YES"

	criteria, err := cfg.Criteria.ToCriteria()
	if err != nil {
		t.Fatalf("ToCriteria failed: %v", err)
	}
	if len(criteria.WantedKeywords) != 2 {
		t.Errorf("WantedKeywords = %v, want normalized pair", criteria.WantedKeywords)
	}
	if criteria.RemotePreference != "yes" {
		t.Errorf("RemotePreference = %q, want %q", criteria.RemotePreference, "yes")
	}
}
