package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private Prometheus registry with the HTTP and attendance collectors.
type Metrics struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	classifications  *prometheus.CounterVec
	classifyDuration prometheus.Histogram
	jobRuns          *prometheus.CounterVec
	jobDuration      *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	classifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_classifications_total",
		Help: "Employees classified by attendance status",
	}, []string{"status"})

	classifyDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "attendance_classify_duration_seconds",
		Help:    "Duration of one company attendance classification",
		Buckets: prometheus.DefBuckets,
	})

	jobRuns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cron_job_runs_total",
		Help: "Background job runs by outcome",
	}, []string{"job", "result"})

	jobDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cron_job_duration_seconds",
		Help:    "Duration of background job runs",
		Buckets: []float64{.01, .05, .1, .5, 1, 5, 15, 60, 300},
	}, []string{"job"})

	registry.MustRegister(
		requestDuration,
		requestTotal,
		classifications,
		classifyDuration,
		jobRuns,
		jobDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		classifications:  classifications,
		classifyDuration: classifyDuration,
		jobRuns:          jobRuns,
		jobDuration:      jobDuration,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// SubscriberSource reports the number of open live streams.
type SubscriberSource interface {
	TotalSubscribers() int
}

// TrackStreams exposes the open alert stream count of src as a gauge read at scrape time.
func (m *Metrics) TrackStreams(src SubscriberSource) error {
	if m == nil {
		return nil
	}
	return m.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "alert_stream_subscribers",
		Help: "Open attendance alert streams",
	}, func() float64 {
		return float64(src.TotalSubscribers())
	}))
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request duration and count labelled by the chi route pattern,
// so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		labels := prometheus.Labels{"method": r.Method, "route": route, "status": strconv.Itoa(status)}
		m.requestDuration.With(labels).Observe(time.Since(start).Seconds())
		m.requestTotal.With(labels).Inc()
	})
}

// ObserveClassification records one classification run.
func (m *Metrics) ObserveClassification(counts map[string]int, elapsed time.Duration) {
	if m == nil {
		return
	}
	for status, n := range counts {
		m.classifications.WithLabelValues(status).Add(float64(n))
	}
	m.classifyDuration.Observe(elapsed.Seconds())
}

// ObserveJob records one background job run.
func (m *Metrics) ObserveJob(name string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.jobRuns.WithLabelValues(name, result).Inc()
	m.jobDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}
