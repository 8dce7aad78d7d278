package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/getsentry/sentry-go"
	"gopkg.in/yaml.v3"

	"manoscerca.app/internal/report"
	"manoscerca.app/internal/utils"
)

// Environment variables that override file settings.
const (
	EnvDBPath        = "MANOSCERCA_DB_PATH"
	EnvPublicBaseURL = "MANOSCERCA_PUBLIC_BASE_URL"
	EnvSentryDSN     = "SENTRY_DSN"
)

// LoadConfigFromFile reads a YAML configuration file on top of the defaults.
// Keys missing from the file keep their default values.
//
// On error, it reports the issue to Sentry and returns a descriptive error.
func LoadConfigFromFile(filePath string) (*Config, error) {
	cfg := NewConfig()
	if err := loadConfigFromFile(filePath, cfg); err != nil {
		err := fmt.Errorf("failed to load config from file %s: %w", filePath, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return nil, err
	}
	return cfg, nil
}

func loadConfigFromFile(filePath string, cfg *Config) error {
	// #nosec G304 -- the path comes from the operator's command line.
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables. lookup is
// usually os.LookupEnv.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvDBPath); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := lookup(EnvPublicBaseURL); ok && v != "" {
		cfg.PublicBaseURL = v
	}
	if v, ok := lookup(EnvSentryDSN); ok {
		cfg.SentryDSN = v
	}
}
