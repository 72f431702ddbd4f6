package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func RegisterRoutes(r *mux.Router, h *Handler) http.Handler {
	// Advisory APIs
	r.HandleFunc("/v1/classify", h.Classify).Methods(http.MethodPost)
	r.HandleFunc("/v1/weekly", h.Weekly).Methods(http.MethodPost)
	r.HandleFunc("/v1/export", h.Export).Methods(http.MethodPost)

	// Observability APIs
	r.HandleFunc("/health", h.GetHealth).Methods(http.MethodGet)
	r.HandleFunc("/metrics", h.GetMetrics).Methods(http.MethodGet)
	r.Handle("/metrics/prometheus", h.prom.Handler()).Methods(http.MethodGet)

	// Admin APIs
	r.HandleFunc("/admin/logs", h.GetLogs).Methods(http.MethodGet)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})
	// Recovery sits innermost so a panic still produces a 500 that is
	// counted, logged and compressed like any other response.
	r.Use(h.metricsMiddleware, h.RecoveryMiddleware)

	// Middlewares
	return Chain(
		r,
		RequestIDMiddleware,
		h.LoggingMiddleware,
		handlers.CompressHandler,
	)
}
