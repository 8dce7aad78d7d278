//go:build integration

package integration

import (
	"path/filepath"
	"testing"

	"manoscerca.app/internal/config"
)

// loadIntegrationConfig returns the configuration for a test run: the file
// given with -integration-config, or the defaults. The database always
// lives in a fresh temporary directory.
func loadIntegrationConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.NewConfig()
	if integrationConfig != "" {
		loaded, err := config.LoadConfigFromFile(integrationConfig)
		if err != nil {
			t.Fatalf("failed to load integration config: %v", err)
		}
		cfg = loaded
	}

	cfg.Env = "integration"
	cfg.Storage = config.StorageSQLite
	cfg.DBPath = filepath.Join(t.TempDir(), "data", "manoscerca.db")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid integration config: %v", err)
	}
	return cfg
}
