// Package metrics records pipeline, cache and HTTP metrics in a Prometheus
// registry. A *Metrics implements the observability hook interfaces and may
// be nil, in which case every method is a no-op.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/netdraw/pkg/observability"
)

const namespace = "netdraw"

// Metrics exposes application metrics that are safe to scrape via Prometheus.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	stageDuration       *prometheus.HistogramVec
	stageErrors         *prometheus.CounterVec
	nodes               prometheus.Histogram
	frameRounds         prometheus.Histogram
	frameUnconverged    prometheus.Counter
	cacheEvents         *prometheus.CounterVec
	cacheBytes          prometheus.Counter
}

// New creates a fresh registry with every metric registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests processed by the render service",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests served by the render service",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"stage"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_errors_total",
			Help:      "Count of failed pipeline stages",
		}, []string{"stage"}),
		nodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_nodes",
			Help:      "Number of nodes per laid out diagram",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		frameRounds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_resolution_rounds",
			Help:      "Rounds of frame collision resolution per diagram",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		}),
		frameUnconverged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frame_resolution_unconverged_total",
			Help:      "Diagrams whose frames still overlapped after the round limit",
		}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache hits, misses and writes",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache",
		}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpRequestDuration,
		m.stageDuration,
		m.stageErrors,
		m.nodes,
		m.frameRounds,
		m.frameUnconverged,
		m.cacheEvents,
		m.cacheBytes,
	)
	return m
}

// ObserveHTTPRequest records a single HTTP request/response cycle.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	m.httpRequests.With(labels).Inc()
	m.httpRequestDuration.With(labels).Observe(duration.Seconds())
}

func (m *Metrics) observeStage(stage string, d time.Duration, err error) {
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		m.stageErrors.WithLabelValues(stage).Inc()
	}
}

// OnLoadComplete records a source read.
func (m *Metrics) OnLoadComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.observeStage("load", d, err)
}

// OnLayoutStart records the diagram size.
func (m *Metrics) OnLayoutStart(_ context.Context, nodeCount int) {
	if m == nil {
		return
	}
	m.nodes.Observe(float64(nodeCount))
}

// OnLayoutComplete records layout duration.
func (m *Metrics) OnLayoutComplete(_ context.Context, _ int, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.observeStage("layout", d, err)
}

// OnFramesResolved records how many rounds frame resolution took.
func (m *Metrics) OnFramesResolved(_ context.Context, _ int, rounds int, converged bool) {
	if m == nil {
		return
	}
	m.frameRounds.Observe(float64(rounds))
	if !converged {
		m.frameUnconverged.Inc()
	}
}

// OnRenderStart does nothing; durations are recorded on completion.
func (m *Metrics) OnRenderStart(context.Context, []string) {}

// OnRenderComplete records render duration.
func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.observeStage("render", d, err)
}

// OnCacheHit records a cache hit.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss records a cache miss.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet records a cache write.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

// Register installs m as the global pipeline and cache hooks.
func (m *Metrics) Register() {
	if m == nil {
		return
	}
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
}

// Handler exposes the Prometheus registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("metrics unavailable"))
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
)
