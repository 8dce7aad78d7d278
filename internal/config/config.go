package config

import (
	"fmt"

	"manoscerca.app/internal/geo"
)

// Storage engine names.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// MapConfig is the initial map view handed to the presentation layer.
type MapConfig struct {
	Center geo.Point `yaml:"center" json:"center"`
	Zoom   int       `yaml:"zoom" json:"zoom"`
}

// Config holds all the configuration settings for our application.
type Config struct {
	Port           int       `yaml:"port"`
	Env            string    `yaml:"env"`
	Storage        string    `yaml:"storage"`
	DBPath         string    `yaml:"db_path"`
	SeedSampleData bool      `yaml:"seed_sample_data"`
	PublicBaseURL  string    `yaml:"public_base_url"`
	Map            MapConfig `yaml:"map"`
	ClusterLevel   int       `yaml:"cluster_level"`
	SentryDSN      string    `yaml:"-"`
}

// NewConfig returns a Config populated with the defaults used when neither
// a file nor the environment says otherwise.
func NewConfig() *Config {
	return &Config{
		Port:           4000,
		Env:            "development",
		Storage:        StorageSQLite,
		DBPath:         "data/manoscerca.db",
		SeedSampleData: true,
		PublicBaseURL:  "http://localhost:4000/",
		Map: MapConfig{
			Center: geo.Point{Lat: 40.4168, Lng: -3.7038},
			Zoom:   12,
		},
		ClusterLevel: geo.DefaultClusterLevel,
	}
}

// Validate reports the first setting that cannot be used.
func (cfg *Config) Validate() error {
	switch cfg.Storage {
	case StorageSQLite:
		if cfg.DBPath == "" {
			return fmt.Errorf("db_path is required for %q storage", StorageSQLite)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage engine %q (expected %q or %q)", cfg.Storage, StorageSQLite, StorageMemory)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	if !geo.IsValidLatLon(cfg.Map.Center.Lat, cfg.Map.Center.Lng) {
		return fmt.Errorf("invalid map center %v,%v", cfg.Map.Center.Lat, cfg.Map.Center.Lng)
	}
	if cfg.Map.Zoom < 0 || cfg.Map.Zoom > 22 {
		return fmt.Errorf("invalid map zoom %d", cfg.Map.Zoom)
	}
	if cfg.ClusterLevel < 0 || cfg.ClusterLevel > 30 {
		return fmt.Errorf("cluster_level must be between 0 and 30, got %d", cfg.ClusterLevel)
	}
	return nil
}
