// Package metrics exposes Prometheus counters for the license API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "devicelicense"

// Metrics 서버 메트릭 모음. nil 이어도 모든 Observe 메서드는 안전하게 무시됩니다.
type Metrics struct {
	registry *prometheus.Registry

	activations *prometheus.CounterVec
	validations *prometheus.CounterVec
	rateLimited *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

// New 전용 레지스트리에 메트릭을 등록합니다.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		activations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activations_total",
			Help:      "Activation attempts by result.",
		}, []string{"result"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Validation calls by result.",
		}, []string{"result"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"route"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}

	m.registry.MustRegister(
		m.activations,
		m.validations,
		m.rateLimited,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler /metrics 엔드포인트
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveActivation(result string) {
	if m == nil {
		return
	}
	m.activations.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveValidation(result string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}

func (m *Metrics) ObserveRequest(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
