package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"bp-advisor/internal/api"
	"bp-advisor/internal/config"
	"bp-advisor/internal/logs"
	"bp-advisor/internal/metrics"
	"bp-advisor/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Logger
	level := logs.ParseLevel(cfg.Log.Level)
	sink, err := logs.NewZap(level, cfg.Log.Format, cfg.Log.ServiceName)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	logger := logs.NewLogger(cfg.Log.BufferSize, level, sink)
	defer func() { _ = logger.Sync() }()

	// Metrics
	metricsRegistry := metrics.NewRegistry()
	promMetrics := observability.NewMetrics()

	// API
	handler := api.NewHandler(
		metricsRegistry,
		promMetrics,
		logger,
		cfg.Export,
	)
	httpHandler := api.RegisterRoutes(mux.NewRouter(), handler)

	server := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server started", zap.String("addr", cfg.Server.Listen))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
