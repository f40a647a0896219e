// Package metrics exposes Prometheus collectors for dataset loads and HTTP
// traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soaringjerry/panelstats/internal/db"
)

const namespace = "panelstats"

type Metrics struct {
	registry *prometheus.Registry

	records      *prometheus.GaugeVec
	dangling     prometheus.Gauge
	loadSeconds  prometheus.Gauge
	loadFailures prometheus.Counter

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers every collector on a private registry, so tests can build as
// many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Records in the published dataset, by dataset.",
		}, []string{"dataset"}),
		dangling: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_dangling_participations",
			Help:      "Participations referencing a member or survey id that is not loaded.",
		}),
		loadSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_load_seconds",
			Help:      "Duration of the last dataset load.",
		}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_load_failures_total",
			Help:      "Dataset loads that failed.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.records, m.dangling, m.loadSeconds, m.loadFailures,
		m.requests, m.duration,
	)
	return m
}

// RecordLoad implements db.LoadRecorder.
func (m *Metrics) RecordLoad(stats db.LoadStats, err error) {
	m.loadSeconds.Set(stats.Elapsed.Seconds())
	if err != nil {
		m.loadFailures.Inc()
		return
	}
	m.records.WithLabelValues("members").Set(float64(stats.Members))
	m.records.WithLabelValues("surveys").Set(float64(stats.Surveys))
	m.records.WithLabelValues("statuses").Set(float64(stats.Statuses))
	m.records.WithLabelValues("participations").Set(float64(stats.Participations))
	m.dangling.Set(float64(stats.Dangling))
}

func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

var _ db.LoadRecorder = (*Metrics)(nil)
