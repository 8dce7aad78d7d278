package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// getMetricValue retrieves the current float64 value of a Prometheus GaugeVec metric
// for the given set of labels. Returns an error if the metric cannot be parsed.
func getMetricValue(metric *prometheus.GaugeVec, labels map[string]string) (float64, error) {
	return readValue(metric.With(labels))
}

// getCounterValue is getMetricValue for counters.
func getCounterValue(metric *prometheus.CounterVec, labels map[string]string) (float64, error) {
	return readValue(metric.With(labels))
}

// getHistogramCount returns how many observations a histogram series holds.
func getHistogramCount(metric *prometheus.HistogramVec, labels map[string]string) (uint64, error) {
	observer := metric.With(labels)
	collector, ok := observer.(prometheus.Metric)
	if !ok {
		return 0, nil
	}
	pb := &dto.Metric{}
	if err := collector.Write(pb); err != nil {
		return 0, err
	}
	return pb.GetHistogram().GetSampleCount(), nil
}

func readValue(m prometheus.Metric) (float64, error) {
	pb := &dto.Metric{}
	if err := m.Write(pb); err != nil {
		return 0, err
	}

	switch {
	case pb.Gauge != nil:
		return pb.Gauge.GetValue(), nil
	case pb.Counter != nil:
		return pb.Counter.GetValue(), nil
	}
	return 0, nil
}
