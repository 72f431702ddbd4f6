package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bp-advisor/internal/config"
	"bp-advisor/internal/logs"
	"bp-advisor/internal/metrics"
	"bp-advisor/internal/observability"
)

func newTestHandler() *Handler {
	return NewHandler(
		metrics.NewRegistry(),
		observability.NewMetrics(),
		logs.NewLogger(10, logs.DEBUG, nil),
		config.DefaultConfig().Export,
	)
}

func TestRecoveryMiddleware(t *testing.T) {
	h := newTestHandler()

	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom!")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	h.RecoveryMiddleware(panicHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "internal server error")
	assert.Equal(t, int64(1), h.metrics.Snapshot()[string(metrics.PanicsRecoveredTotal)])

	entries := h.logger.GetLast(1)
	require.Len(t, entries, 1)
	assert.Equal(t, logs.ERROR, entries[0].Level)
	assert.Equal(t, "boom!", entries[0].Fields["panic"])

	// a recovered panic makes the service critical
	assert.Equal(t, "CRITICAL", string(h.analyzer.Analyze().OverallStatus))
}

func TestRegisterRoutes_PanicThroughFullChain(t *testing.T) {
	h := newTestHandler()

	r := mux.NewRouter()
	r.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom!")
	}).Methods(http.MethodGet)
	chain := RegisterRoutes(r, h)

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, "internal server error\n", string(body))

	entries := h.logger.GetLast(2)
	require.Len(t, entries, 2)
	assert.Equal(t, "panic recovered", entries[0].Message)
	assert.Equal(t, "http request", entries[1].Message)
	assert.Equal(t, int64(http.StatusInternalServerError), entries[1].Fields["status"])

	scrape := httptest.NewRecorder()
	h.prom.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics/prometheus", nil))
	assert.Contains(t, scrape.Body.String(), `http_requests_total{route="/boom",status="500"} 1`)
}

func TestLoggingMiddleware(t *testing.T) {
	h := newTestHandler()

	teapot := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/brew", nil)
	Chain(teapot, RequestIDMiddleware, h.LoggingMiddleware).ServeHTTP(httptest.NewRecorder(), req)

	entries := h.logger.GetLast(1)
	require.Len(t, entries, 1)
	assert.Equal(t, "http request", entries[0].Message)
	assert.Equal(t, "/brew", entries[0].Fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), entries[0].Fields["status"])
	assert.NotEmpty(t, entries[0].Fields["request_id"])
}

func TestChain(t *testing.T) {
	finalHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	chained := Chain(finalHandler, mw("outer"), mw("inner"))
	rr := httptest.NewRecorder()
	chained.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestID_EmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", RequestID(req.Context()))
}
