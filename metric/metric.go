package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/refget"
)

// Namespace prefixes every metric name.
const Namespace = "refget"

var _ refget.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector records service and HTTP metrics in its own
// Prometheus registry.
type PrometheusCollector struct {
	registry *prometheus.Registry

	opLatency     *prometheus.HistogramVec
	opErrors      *prometheus.CounterVec
	basesServed   *prometheus.CounterVec
	loadedFiles   prometheus.Counter
	loadedRecords prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
}

// NewPrometheusCollector creates a collector with Go runtime and process
// collectors already registered.
func NewPrometheusCollector() *PrometheusCollector {
	p := &PrometheusCollector{
		registry: prometheus.NewRegistry(),
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of service operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "representation"}),
		opErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operation_errors_total",
			Help:      "Failed service operations by HTTP status",
		}, []string{"operation", "status"}),
		basesServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "bases_read_total",
			Help:      "Bases read from storage",
		}, []string{"representation"}),
		loadedFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "loaded_files_total",
			Help:      "Sequence files registered",
		}),
		loadedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "loaded_sequences_total",
			Help:      "Sequences registered",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	p.registry.MustRegister(
		p.opLatency,
		p.opErrors,
		p.basesServed,
		p.loadedFiles,
		p.loadedRecords,
		p.httpRequests,
		p.httpLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// Registry returns the underlying registry.
func (p *PrometheusCollector) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (p *PrometheusCollector) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// RecordSequence implements refget.MetricsCollector.
func (p *PrometheusCollector) RecordSequence(representation string, bases int64, duration time.Duration, err error) {
	if err != nil {
		p.opErrors.WithLabelValues("sequence", strconv.Itoa(refget.StatusCode(err))).Inc()
		return
	}
	p.opLatency.WithLabelValues("sequence", representation).Observe(duration.Seconds())
	p.basesServed.WithLabelValues(representation).Add(float64(bases))
}

// RecordMetadata implements refget.MetricsCollector.
func (p *PrometheusCollector) RecordMetadata(duration time.Duration, err error) {
	if err != nil {
		p.opErrors.WithLabelValues("metadata", strconv.Itoa(refget.StatusCode(err))).Inc()
		return
	}
	p.opLatency.WithLabelValues("metadata", "metadata").Observe(duration.Seconds())
}

// RecordLoad implements refget.MetricsCollector.
func (p *PrometheusCollector) RecordLoad(sequences int, _ time.Duration, err error) {
	if err != nil {
		p.opErrors.WithLabelValues("load", strconv.Itoa(refget.StatusCode(err))).Inc()
		return
	}
	p.loadedFiles.Inc()
	p.loadedRecords.Add(float64(sequences))
}

// ObserveHTTP records one HTTP request.
func (p *PrometheusCollector) ObserveHTTP(route string, status int, duration time.Duration) {
	p.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	p.httpLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// WatchService exports gauges read from svc at scrape time.
func (p *PrometheusCollector) WatchService(svc *refget.Service) {
	gauge := func(name, help string, fn func(refget.Stats) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      name,
			Help:      help,
		}, func() float64 { return fn(svc.Stats()) })
	}

	p.registry.MustRegister(
		gauge("sequences", "Sequences in the checksum index", func(s refget.Stats) float64 { return float64(s.Sequences) }),
		gauge("open_files", "Sequence files held open", func(s refget.Stats) float64 { return float64(s.OpenFiles) }),
		gauge("block_cache_hits", "Block cache hits", func(s refget.Stats) float64 { return float64(s.CacheHits) }),
		gauge("block_cache_misses", "Block cache misses", func(s refget.Stats) float64 { return float64(s.CacheMisses) }),
	)
}
