package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProvidersByCategory Number of providers in the directory per category code
	ProvidersByCategory = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "manoscerca_providers",
			Help: "Number of providers in the directory, by category",
		},
		[]string{"category"},
	)

	ProviderClusterSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "manoscerca_provider_cluster_size",
		Help: "Number of providers inside each S2 map cluster",
	}, []string{"cluster_id"})
)

var (
	ImportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "manoscerca_imports_total",
		Help: "Provider imports by source (link, file) and result (ok, invalid, decode_error, store_error)",
	}, []string{"source", "result"})

	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "manoscerca_registrations_total",
		Help: "Provider registrations by result",
	}, []string{"result"})
)

var (
	StoreOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "manoscerca_store_operation_duration_seconds",
		Help:    "Latency of provider store operations",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"operation", "status"})

	FilterLastResultCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "manoscerca_filter_last_result_count",
		Help: "Number of providers returned by the most recent filter request",
	})
)
