package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manoscerca.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	if err := NewConfig().Validate(); err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		path := writeConfigFile(t, `
port: 8080
env: production
storage: memory
seed_sample_data: false
public_base_url: https://manoscerca.example/
map:
  center:
    lat: -33.4489
    lng: -70.6693
  zoom: 11
cluster_level: 12
`)
		cfg, err := LoadConfigFromFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFromFile failed: %v", err)
		}

		want := NewConfig()
		want.Port = 8080
		want.Env = "production"
		want.Storage = StorageMemory
		want.SeedSampleData = false
		want.PublicBaseURL = "https://manoscerca.example/"
		want.Map.Center.Lat = -33.4489
		want.Map.Center.Lng = -70.6693
		want.Map.Zoom = 11
		want.ClusterLevel = 12

		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("PartialConfigKeepsDefaults", func(t *testing.T) {
		cfg, err := LoadConfigFromFile(writeConfigFile(t, "port: 5000\n"))
		if err != nil {
			t.Fatalf("LoadConfigFromFile failed: %v", err)
		}
		if cfg.Port != 5000 || cfg.DBPath != "data/manoscerca.db" || !cfg.SeedSampleData {
			t.Errorf("Expected defaults with port override, got %+v", cfg)
		}
	})

	t.Run("UnknownKey", func(t *testing.T) {
		if _, err := LoadConfigFromFile(writeConfigFile(t, "prot: 5000\n")); err == nil {
			t.Error("Expected error for unknown key")
		}
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		if _, err := LoadConfigFromFile(writeConfigFile(t, "port: [not a number\n")); err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("Expected error for missing file")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDBPath:        "/var/lib/manoscerca/providers.db",
		EnvPublicBaseURL: "https://manoscerca.example/",
		EnvSentryDSN:     "https://public@sentry.example.com/1",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := NewConfig()
	cfg.ApplyEnv(lookup)

	if cfg.DBPath != env[EnvDBPath] {
		t.Errorf("Expected db path %q, got %q", env[EnvDBPath], cfg.DBPath)
	}
	if cfg.PublicBaseURL != env[EnvPublicBaseURL] {
		t.Errorf("Expected base url %q, got %q", env[EnvPublicBaseURL], cfg.PublicBaseURL)
	}
	if cfg.SentryDSN != env[EnvSentryDSN] {
		t.Errorf("Expected sentry dsn %q, got %q", env[EnvSentryDSN], cfg.SentryDSN)
	}

	empty := NewConfig()
	empty.ApplyEnv(func(string) (string, bool) { return "", false })
	if diff := cmp.Diff(NewConfig(), empty); diff != "" {
		t.Errorf("Expected no changes without environment (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown storage", func(c *Config) { c.Storage = "postgres" }},
		{"sqlite without path", func(c *Config) { c.DBPath = "" }},
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"port too high", func(c *Config) { c.Port = 70000 }},
		{"placeholder center", func(c *Config) { c.Map.Center.Lat, c.Map.Center.Lng = 0, 0 }},
		{"center out of range", func(c *Config) { c.Map.Center.Lat = 95 }},
		{"zoom out of range", func(c *Config) { c.Map.Zoom = 30 }},
		{"cluster level too deep", func(c *Config) { c.ClusterLevel = 31 }},
		{"negative cluster level", func(c *Config) { c.ClusterLevel = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected validation error")
			}
		})
	}

	memory := NewConfig()
	memory.Storage = StorageMemory
	memory.DBPath = ""
	if err := memory.Validate(); err != nil {
		t.Errorf("Expected memory storage without a path to be valid, got %v", err)
	}
}
