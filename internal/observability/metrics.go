package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "station_ingest"

// Skip reasons used as the "reason" label of RecordsSkipped.
const (
	ReasonMissingField         = "missing_field"
	ReasonMalformedTimestamp   = "malformed_timestamp"
	ReasonMalformedEventCode   = "malformed_event_code"
	ReasonMalformedFieldValue  = "malformed_field_value"
	ReasonFieldOutOfRange      = "field_out_of_range"
	ReasonRequiredFieldMissing = "required_field_missing"
	ReasonPersistenceFailure   = "persistence_failure"
	ReasonOther                = "other"
)

// Metrics holds the Prometheus counters, histograms, and gauges for an ingest run.
type Metrics struct {
	RecordsRead      prometheus.Counter
	RecordsPersisted prometheus.Counter
	RecordsSkipped   *prometheus.CounterVec // labels: reason
	BytesWritten     prometheus.Counter
	IngestRunning    prometheus.Gauge

	RecordDuration prometheus.Histogram
}

// NewMetrics creates and registers all ingest metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RecordsRead,
		m.RecordsPersisted,
		m.RecordsSkipped,
		m.BytesWritten,
		m.IngestRunning,
		m.RecordDuration,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_read_total",
			Help:      "Total record elements read from the input.",
		}),
		RecordsPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_persisted_total",
			Help:      "Total measurements written to the data directory.",
		}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Records skipped because they failed to parse, encode, or persist.",
		}, []string{"reason"}),
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written_total",
			Help:      "Total encoded bytes written to measurement files.",
		}),
		IngestRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ingest_running",
			Help:      "1 while an ingest run is in progress, 0 otherwise.",
		}),
		RecordDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "record_duration_seconds",
			Help:      "Time to parse, encode and persist one record.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
	}
}

// WriteTextfile dumps the default registry in the text exposition format,
// for pickup by node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
