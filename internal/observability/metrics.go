package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// incident map service.
type Metrics struct {
	DatasetLoads        *prometheus.CounterVec // labels: source={local-json,local-csv,sheets-csv}, outcome={success,error,fallback}
	DatasetLoadDuration prometheus.Histogram
	IncidentsLoaded     prometheus.Gauge
	IncidentsNormalized prometheus.Counter
	UnplottableRecords  prometheus.Counter
	FilterApplications  prometheus.Counter
	LayerRebuilds       prometheus.Counter
	LanguageSwitches    *prometheus.CounterVec // label: lang
	DatasetReady        prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetLoads,
		m.DatasetLoadDuration,
		m.IncidentsLoaded,
		m.IncidentsNormalized,
		m.UnplottableRecords,
		m.FilterApplications,
		m.LayerRebuilds,
		m.LanguageSwitches,
		m.DatasetReady,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_map",
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "incident_map",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of a complete fetch-parse-normalize cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		IncidentsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "incident_map",
			Name:      "incidents_loaded",
			Help:      "Incidents in the currently loaded dataset.",
		}),
		IncidentsNormalized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_map",
			Name:      "incidents_normalized_total",
			Help:      "Total raw rows passed through the normalizer.",
		}),
		UnplottableRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_map",
			Name:      "unplottable_records_total",
			Help:      "Normalized records lacking a complete coordinate pair.",
		}),
		FilterApplications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_map",
			Name:      "filter_applications_total",
			Help:      "Filter state transitions applied by the controller.",
		}),
		LayerRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_map",
			Name:      "layer_rebuilds_total",
			Help:      "Marker/heat layer rebuilds performed by the renderer.",
		}),
		LanguageSwitches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_map",
			Name:      "language_switches_total",
			Help:      "Language switch broadcasts by target language.",
		}, []string{"lang"}),
		DatasetReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "incident_map",
			Name:      "dataset_ready",
			Help:      "1 once a dataset load has completed successfully.",
		}),
	}
}
