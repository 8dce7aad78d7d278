package main

import (
	"os"
	"path/filepath"
	"testing"

	"manoscerca.app/internal/config"
)

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestParseConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: 8080\nenv: staging\ndb_path: from-file.db\npublic_base_url: https://file.example/\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		wantDB  string
		wantEnv string
		port    int
		seed    bool
	}{
		{
			name:    "defaults",
			args:    nil,
			wantDB:  "data/manoscerca.db",
			wantEnv: "development",
			port:    4000,
			seed:    true,
		},
		{
			name:    "file",
			args:    []string{"-config-file", path},
			wantDB:  "from-file.db",
			wantEnv: "staging",
			port:    8080,
			seed:    true,
		},
		{
			name:    "environment over file",
			args:    []string{"-config-file", path},
			env:     map[string]string{config.EnvDBPath: "from-env.db"},
			wantDB:  "from-env.db",
			wantEnv: "staging",
			port:    8080,
			seed:    true,
		},
		{
			name:    "flags over environment",
			args:    []string{"-config-file", path, "-db", "from-flag.db", "-port", "9090", "-no-seed"},
			env:     map[string]string{config.EnvDBPath: "from-env.db"},
			wantDB:  "from-flag.db",
			wantEnv: "staging",
			port:    9090,
			seed:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseConfig(tt.args, envFrom(tt.env))
			if err != nil {
				t.Fatalf("parseConfig failed: %v", err)
			}
			if cfg.DBPath != tt.wantDB {
				t.Errorf("Expected db path %q, got %q", tt.wantDB, cfg.DBPath)
			}
			if cfg.Env != tt.wantEnv {
				t.Errorf("Expected env %q, got %q", tt.wantEnv, cfg.Env)
			}
			if cfg.Port != tt.port {
				t.Errorf("Expected port %d, got %d", tt.port, cfg.Port)
			}
			if cfg.SeedSampleData != tt.seed {
				t.Errorf("Expected seed %v, got %v", tt.seed, cfg.SeedSampleData)
			}
		})
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := [][]string{
		{"-storage", "postgres"},
		{"-port", "0"},
		{"-config-file", filepath.Join(t.TempDir(), "missing.yaml")},
		{"extra"},
	}

	for _, args := range tests {
		if _, err := parseConfig(args, envFrom(nil)); err == nil {
			t.Errorf("Expected error for args %v", args)
		}
	}
}
