package app

import (
	"log/slog"

	"manoscerca.app/internal/config"
	"manoscerca.app/internal/directory"
	"manoscerca.app/internal/metrics"
	"manoscerca.app/internal/store"
)

// Application wires the directory service, metrics and configuration
// together and exposes them over HTTP.
type Application struct {
	Config         *config.Config
	Directory      *directory.Directory
	MetricsService *metrics.MetricsService
	Logger         *slog.Logger
	Version        string
}

// New creates and wires all dependencies for the Application on top of an
// opened store. The directory still has to be loaded before serving.
func New(cfg *config.Config, st store.Store, logger *slog.Logger, version string) *Application {
	metricsService := metrics.NewMetricsService(logger, cfg.ClusterLevel)

	dir := directory.New(store.Instrument(st, metricsService), logger, directory.Options{
		BaseURL:      cfg.PublicBaseURL,
		MapCenter:    cfg.Map.Center,
		MapZoom:      cfg.Map.Zoom,
		ClusterLevel: cfg.ClusterLevel,
		Recorder:     metricsService,
	})

	return &Application{
		Config:         cfg,
		Directory:      dir,
		MetricsService: metricsService,
		Logger:         logger,
		Version:        version,
	}
}
