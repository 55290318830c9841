package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "benchscope"

// Metrics collects counters for one analysis run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	FilesScanned       prometheus.Counter
	FilesRejected      *prometheus.CounterVec
	ObservationsParsed prometheus.Counter
	SeriesDerived      *prometheus.CounterVec
	AnalysisDuration   prometheus.Histogram
}

// NewMetrics creates and registers all analysis metrics.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.FilesScanned = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "files_scanned_total",
		Help:      "Measurement files examined during discovery",
	})
	m.FilesRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "files_rejected_total",
		Help:      "Measurement files that failed to load, by error kind",
	}, []string{"kind"})
	m.ObservationsParsed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "observations_parsed_total",
		Help:      "Size/time observations parsed from accepted files",
	})
	m.SeriesDerived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "series_derived_total",
		Help:      "Series whose restricted maximum was computed, by outcome",
	}, []string{"outcome"})
	m.AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Wall time of discovery plus derivation",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	m.registry.MustRegister(
		m.FilesScanned,
		m.FilesRejected,
		m.ObservationsParsed,
		m.SeriesDerived,
		m.AnalysisDuration,
	)
	return m
}

// TrackFile records the outcome of loading one file.
func (m *Metrics) TrackFile(observations int, errKind string) {
	m.FilesScanned.Inc()
	if errKind != "" {
		m.FilesRejected.WithLabelValues(errKind).Inc()
		return
	}
	m.ObservationsParsed.Add(float64(observations))
}

// TrackDerivation records whether a restricted maximum could be computed.
func (m *Metrics) TrackDerivation(ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "empty_range"
	}
	m.SeriesDerived.WithLabelValues(outcome).Inc()
}

// ObserveDuration records the elapsed time since start.
func (m *Metrics) ObserveDuration(start time.Time) {
	m.AnalysisDuration.Observe(time.Since(start).Seconds())
}

// WriteFile writes the metrics in the text exposition format, suitable
// for a node_exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
