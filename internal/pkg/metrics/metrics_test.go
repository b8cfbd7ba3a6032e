package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue finds a counter sample in the registry by name and label set.
func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if matches(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matches(metric *dto.Metric, labels map[string]string) bool {
	found := 0
	for _, lp := range metric.GetLabel() {
		if v, ok := labels[lp.GetName()]; ok {
			if v != lp.GetValue() {
				return false
			}
			found++
		}
	}
	return found == len(labels)
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/employees/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/employees/a", "/employees/b", "/ok"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, counterValue(t, m, "http_requests_total",
		map[string]string{"method": "GET", "route": "/employees/{id}", "status": "404"}))
	assert.Equal(t, 1.0, counterValue(t, m, "http_requests_total",
		map[string]string{"method": "GET", "route": "/ok", "status": "200"}))
}

func TestObserveJobAndClassification(t *testing.T) {
	m := New()
	m.ObserveJob("dispatch_attendance_alerts", nil, 10*time.Millisecond)
	m.ObserveJob("dispatch_attendance_alerts", errors.New("broker down"), time.Second)
	m.ObserveJob("dispatch_attendance_alerts", nil, time.Millisecond)
	m.ObserveClassification(map[string]int{"PRESENT": 3, "ABSENT": 1}, 5*time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, m, "cron_job_runs_total",
		map[string]string{"job": "dispatch_attendance_alerts", "result": "success"}))
	assert.Equal(t, 1.0, counterValue(t, m, "cron_job_runs_total",
		map[string]string{"job": "dispatch_attendance_alerts", "result": "error"}))
	assert.Equal(t, 3.0, counterValue(t, m, "attendance_classifications_total",
		map[string]string{"status": "PRESENT"}))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveJob("x", nil, time.Second)
		m.ObserveClassification(map[string]int{"ABSENT": 1}, time.Second)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.ObserveJob("generate_recurring_holidays", nil, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cron_job_runs_total{job="generate_recurring_holidays",result="success"} 1`)
}

type fixedSubscribers int

func (f fixedSubscribers) TotalSubscribers() int { return int(f) }

func TestTrackStreams(t *testing.T) {
	m := New()
	require.NoError(t, m.TrackStreams(fixedSubscribers(3)))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var value float64
	for _, mf := range families {
		if mf.GetName() == "alert_stream_subscribers" {
			value = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, float64(3), value)

	assert.Error(t, m.TrackStreams(fixedSubscribers(1)), "second registration is rejected")

	var nilMetrics *Metrics
	assert.NoError(t, nilMetrics.TrackStreams(fixedSubscribers(1)))
}
