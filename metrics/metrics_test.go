package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.ObserveActivation("created")
	m.ObserveActivation("created")
	m.ObserveActivation("quota_exceeded")
	m.ObserveValidation("valid")
	m.ObserveRateLimited("activate")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.activations.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.activations.WithLabelValues("quota_exceeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validations.WithLabelValues("valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited.WithLabelValues("activate")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveActivation("created")
	m.ObserveRequest(http.MethodPost, http.StatusCreated, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `devicelicense_activations_total{result="created"} 1`)
	assert.Contains(t, body, "devicelicense_http_request_duration_seconds_count")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveActivation("created")
		m.ObserveValidation("valid")
		m.ObserveRateLimited("validate")
		m.ObserveRequest(http.MethodGet, 200, time.Millisecond)
	})
}
