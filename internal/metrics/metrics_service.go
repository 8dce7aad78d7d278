package metrics

import (
	"log/slog"
	"time"

	"manoscerca.app/internal/models"
)

// MetricsService records directory activity in the Prometheus collectors
// declared in this package. It implements store.Observer.
type MetricsService struct {
	Logger       *slog.Logger
	ClusterLevel int
}

func NewMetricsService(logger *slog.Logger, clusterLevel int) *MetricsService {
	return &MetricsService{
		Logger:       logger,
		ClusterLevel: clusterLevel,
	}
}

func (ms *MetricsService) ObserveStoreOperation(operation, status string, duration time.Duration) {
	StoreOperationDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func (ms *MetricsService) RecordImport(source, result string) {
	ImportsTotal.WithLabelValues(source, result).Inc()
}

func (ms *MetricsService) RecordRegistration(result string) {
	RegistrationsTotal.WithLabelValues(result).Inc()
}

func (ms *MetricsService) RecordFilterResult(count int) {
	FilterLastResultCount.Set(float64(count))
}

// RecordProviders refreshes the per-category and per-cluster gauges from
// the full provider list.
func (ms *MetricsService) RecordProviders(providers []models.Provider) {
	reportProviderCounts(providers)
	reportProviderClusters(providers, ms.ClusterLevel)
	ms.Logger.Debug("provider gauges refreshed", "providers", len(providers))
}
