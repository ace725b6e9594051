package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Global metrics instance for singleton pattern
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the engine
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// Chart pipeline metrics
	ChartsComputed  *prometheus.CounterVec
	ComputeDuration *prometheus.HistogramVec

	// External precision calculator metrics
	PreciseFailures  prometheus.Counter
	PreciseFallbacks prometheus.Counter

	// Harmonic correlation metrics
	CorrelationsScored  prometheus.Counter
	CorrelationDuration prometheus.Histogram
	ResonanceScore      prometheus.Histogram
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	// Use singleton pattern to avoid duplicate registration in tests
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	// Return existing collector if already created
	if globalCollector != nil {
		return globalCollector
	}

	// Create a new registry for this collector
	registry := prometheus.NewRegistry()

	chartsComputed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charts_computed_total",
			Help:      "Total number of charts computed, by source path",
		},
		[]string{"source"},
	)

	computeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chart_compute_duration_seconds",
			Help:      "Chart computation duration in seconds, by source path",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	preciseFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "precise_failures_total",
			Help:      "Total number of external precision calculator failures",
		},
	)

	preciseFallbacks := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "precise_fallbacks_total",
			Help:      "Total number of computations recovered by the in-process fallback",
		},
	)

	correlationsScored := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "correlations_scored_total",
			Help:      "Total number of harmonic correlation runs",
		},
	)

	correlationDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "correlation_duration_seconds",
			Help:      "Harmonic correlation run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	resonanceScore := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resonance_score",
			Help:      "Distribution of aggregate resonance scores",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	// Register all metrics with the registry
	registry.MustRegister(
		chartsComputed,
		computeDuration,
		preciseFailures,
		preciseFallbacks,
		correlationsScored,
		correlationDuration,
		resonanceScore,
	)

	// Create and store the collector
	globalCollector = &Collector{
		registry:            registry,
		ChartsComputed:      chartsComputed,
		ComputeDuration:     computeDuration,
		PreciseFailures:     preciseFailures,
		PreciseFallbacks:    preciseFallbacks,
		CorrelationsScored:  correlationsScored,
		CorrelationDuration: correlationDuration,
		ResonanceScore:      resonanceScore,
	}

	return globalCollector
}

// ResetForTesting resets the global collector for testing purposes
func ResetForTesting() {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()
	globalCollector = nil
}

// Registry exposes the collector's registry for scraping or test
// inspection
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveChart records a completed chart computation
func (c *Collector) ObserveChart(source string, duration time.Duration) {
	c.ChartsComputed.WithLabelValues(source).Inc()
	c.ComputeDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// ObserveCorrelation records a completed harmonic correlation run
func (c *Collector) ObserveCorrelation(score float64, duration time.Duration) {
	c.CorrelationsScored.Inc()
	c.CorrelationDuration.Observe(duration.Seconds())
	c.ResonanceScore.Observe(score)
}
