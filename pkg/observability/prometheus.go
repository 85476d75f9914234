package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks implements SolveHooks, CacheHooks and HTTPHooks by
// recording Prometheus metrics.
type PrometheusHooks struct {
	solves       *prometheus.CounterVec
	solveSeconds prometheus.Histogram
	colorsUsed   prometheus.Histogram
	decodeErrors prometheus.Counter
	modelSize    *prometheus.GaugeVec
	cacheEvents  *prometheus.CounterVec
	requests     *prometheus.CounterVec
	reqSeconds   *prometheus.HistogramVec
}

// NewPrometheusHooks creates the chromatic metrics and registers them with
// reg. It panics if a metric is already registered, like
// prometheus.MustRegister.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chromatic_solves_total",
				Help: "Total number of optimize calls by solver status",
			},
			[]string{"status"},
		),
		solveSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chromatic_solve_duration_seconds",
			Help:    "Duration of optimize calls",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		colorsUsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "chromatic_colors_used",
			Help:    "Distinct colors in decoded solutions",
			Buckets: prometheus.LinearBuckets(1, 1, 12),
		}),
		decodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chromatic_decode_errors_total",
			Help: "Total number of solutions that failed to decode",
		}),
		modelSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chromatic_last_model_size",
				Help: "Size of the most recently encoded model",
			},
			[]string{"dimension"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chromatic_cache_events_total",
				Help: "Cache hits, misses and writes",
			},
			[]string{"event", "key_type"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chromatic_http_requests_total",
				Help: "HTTP requests served by route and status code",
			},
			[]string{"method", "route", "code"},
		),
		reqSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "chromatic_http_request_duration_seconds",
				Help: "Duration of HTTP requests",
			},
			[]string{"route"},
		),
	}
	reg.MustRegister(h.solves, h.solveSeconds, h.colorsUsed, h.decodeErrors,
		h.modelSize, h.cacheEvents, h.requests, h.reqSeconds)
	return h
}

func (h *PrometheusHooks) OnEncode(_ context.Context, vertices, edges, variables, constraints int) {
	h.modelSize.WithLabelValues("vertices").Set(float64(vertices))
	h.modelSize.WithLabelValues("edges").Set(float64(edges))
	h.modelSize.WithLabelValues("variables").Set(float64(variables))
	h.modelSize.WithLabelValues("constraints").Set(float64(constraints))
}

func (h *PrometheusHooks) OnSolveStart(context.Context, int) {}

func (h *PrometheusHooks) OnSolveComplete(_ context.Context, status string, d time.Duration) {
	h.solves.WithLabelValues(status).Inc()
	h.solveSeconds.Observe(d.Seconds())
}

func (h *PrometheusHooks) OnDecode(_ context.Context, colorsUsed int, err error) {
	if err != nil {
		h.decodeErrors.Inc()
		return
	}
	h.colorsUsed.Observe(float64(colorsUsed))
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues("hit", keyType).Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues("miss", keyType).Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.cacheEvents.WithLabelValues("set", keyType).Inc()
}

func (h *PrometheusHooks) OnRequest(_ context.Context, method, route string, code int, d time.Duration) {
	h.requests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.reqSeconds.WithLabelValues(route).Observe(d.Seconds())
}
