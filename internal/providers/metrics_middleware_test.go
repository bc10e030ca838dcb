package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration) { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                    {}
func (m *mockMetrics) IncCacheMisses()                                  {}
func (m *mockMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (m *mockMetrics) SetRecordsTotal(_ string, _ int)                  {}
func (m *mockMetrics) IncNotificationsTotal(_ string)                   {}
func (m *mockMetrics) ObserveScanDuration(_ time.Duration)              {}
func (m *mockMetrics) SetPendingReminders(_ int)                        {}

type accessLogger struct {
	cacheTestLogger
	types []TypeEnum
}

func (l *accessLogger) Debugf(t TypeEnum, _ string, _ ...interface{}) {
	l.types = append(l.types, t)
}

func TestRequestMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &mockMetrics{}
	logger := &accessLogger{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	mw := RequestMiddleware(metrics, logger, handler)

	req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "/sessions", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
	assert.Equal(t, []TypeEnum{TypePost}, logger.types)
}

func TestRequestMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &mockMetrics{}
	logger := &accessLogger{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := RequestMiddleware(metrics, logger, handler)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
	assert.Equal(t, []TypeEnum{TypeGet}, logger.types)
}

func TestStatusWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, rr, sw.Unwrap())
}
