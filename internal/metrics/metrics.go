// Package metrics collects per-run pipeline counters and renders them in the
// Prometheus text exposition format, suitable for a node_exporter textfile
// collector.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Namespace prefixes every metric name
const Namespace = "mifregion"

// Metrics holds the counters of one pipeline run on a private registry
type Metrics struct {
	registry *prometheus.Registry

	RecordsTotal    *prometheus.CounterVec // by object kind
	EncodedTotal    prometheus.Counter
	FilteredTotal   prometheus.Counter
	RowsTotal       prometheus.Counter
	FilesTotal      prometheus.Counter
	SkippedTotal    prometheus.Counter
	ErrorsTotal     prometheus.Counter
	BytesTotal      prometheus.Counter
	DurationSeconds prometheus.Gauge
	LastRunSeconds  prometheus.Gauge
}

// New creates the run metrics and registers them.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "records_total",
			Help:      "Source objects read, by MIF object kind",
		}, []string{"kind"}),
		EncodedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "encoded_records_total",
			Help:      "Source objects with a Region encoding",
		}),
		FilteredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "filtered_records_total",
			Help:      "Source objects dropped by the bounding-box filter",
		}),
		RowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rows_total",
			Help:      "Output table rows",
		}),
		FilesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "files_written_total",
			Help:      "MIF files written",
		}),
		SkippedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rows_skipped_total",
			Help:      "Output rows without encodable geometry",
		}),
		ErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "row_errors_total",
			Help:      "Records or rows that failed and were skipped",
		}),
		BytesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "written_bytes_total",
			Help:      "Bytes handed to the output sink",
		}),
		DurationSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the run",
		}),
		LastRunSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the run finished",
		}),
	}

	m.registry.MustRegister(
		m.RecordsTotal,
		m.EncodedTotal,
		m.FilteredTotal,
		m.RowsTotal,
		m.FilesTotal,
		m.SkippedTotal,
		m.ErrorsTotal,
		m.BytesTotal,
		m.DurationSeconds,
		m.LastRunSeconds,
	)
	return m
}

// Finish records the run duration and completion time.
func (m *Metrics) Finish(start, end time.Time) {
	m.DurationSeconds.Set(end.Sub(start).Seconds())
	m.LastRunSeconds.Set(float64(end.Unix()))
}

// Registry returns the registry holding the run metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteText writes every metric in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
