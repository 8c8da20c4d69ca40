// Package metrics exposes Prometheus collectors for the reconstruction
// pipeline.
//
// Collectors are registered on a private registry so tests and multiple
// pipelines in one process never collide on the default registerer.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"matchmill/internal/game"
	"matchmill/internal/textutil"
)

const namespace = "matchmill"

// Collector records pipeline activity.
type Collector struct {
	registry *prometheus.Registry

	samplesTotal    prometheus.Counter
	matchesTotal    *prometheus.CounterVec
	windowsRejected prometheus.Counter
	windowsFailed   *prometheus.CounterVec
	warningsTotal   prometheus.Counter
	matchInProgress prometheus.Gauge
	matchRounds     prometheus.Histogram
	matchDuration   prometheus.Histogram
	sinkFailures    *prometheus.CounterVec
}

// New builds a Collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		samplesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_total",
			Help:      "Total number of samples consumed",
		}),
		matchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Total number of matches emitted",
		}, []string{"shutdown"}),
		windowsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_rejected_total",
			Help:      "Match windows dropped for having too few samples",
		}),
		windowsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_failed_total",
			Help:      "Match windows that failed to resolve, by reason",
		}, []string{"reason"}),
		warningsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_warnings_total",
			Help:      "Soft warnings recorded on emitted matches",
		}),
		matchInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "match_in_progress",
			Help:      "1 while a match window is open",
		}),
		matchRounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_rounds",
			Help:      "Rounds per emitted match",
			Buckets:   prometheus.LinearBuckets(4, 4, 8),
		}),
		matchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "Duration of emitted matches",
			Buckets:   prometheus.ExponentialBuckets(60, 2, 7),
		}),
		sinkFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_failures_total",
			Help:      "Failed deliveries of emitted matches, by sink",
		}, []string{"sink"}),
	}

	c.registry.MustRegister(
		c.samplesTotal,
		c.matchesTotal,
		c.windowsRejected,
		c.windowsFailed,
		c.warningsTotal,
		c.matchInProgress,
		c.matchRounds,
		c.matchDuration,
		c.sinkFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) SampleConsumed() {
	c.samplesTotal.Inc()
}

func (c *Collector) MatchStarted() {
	c.matchInProgress.Set(1)
}

// MatchEmitted records a completed match.
func (c *Collector) MatchEmitted(m *game.Match, shutdown bool) {
	c.matchInProgress.Set(0)
	c.matchesTotal.WithLabelValues(strconv.FormatBool(shutdown)).Inc()
	c.matchRounds.Observe(float64(len(m.Rounds)))
	c.matchDuration.Observe(m.Duration)
	c.warningsTotal.Add(float64(len(m.Warnings)))
}

func (c *Collector) WindowRejected() {
	c.matchInProgress.Set(0)
	c.windowsRejected.Inc()
}

// WindowFailed records a window that failed to resolve.
func (c *Collector) WindowFailed(reason string) {
	c.matchInProgress.Set(0)
	c.windowsFailed.WithLabelValues(textutil.SanitizeLabel(reason)).Inc()
}

// SinkFailed records a failed store, publish or notification delivery.
func (c *Collector) SinkFailed(sink string) {
	c.sinkFailures.WithLabelValues(textutil.SanitizeLabel(sink)).Inc()
}
