// Package server serves the health and metrics endpoints of termwatch.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "go.uber.org/zap"

	"github.com/yanet-platform/termwatch/internal/monitoring/metrics"
	"github.com/yanet-platform/termwatch/internal/utils/runtimemetrics"
)

const stopTimeout = 5 * time.Second

// Readiness reports whether the process is about to shut down.
type Readiness interface {
	ShouldShutdown() bool
}

// Server exposes:
//
//   - /healthz: 200 while serving, 503 once shutdown is requested;
//   - /metrics: metrics collected by the gatherer;
//   - /metrics/runtime: Go runtime and process metrics.
type Server struct {
	config     *Config
	readiness  Readiness
	httpServer *http.Server
	logger     *log.Logger
}

// New creates a Server. A nil readiness reports the process healthy until it
// exits.
func New(config *Config, readiness Readiness, gatherer metrics.Gatherer, logger *log.Logger) *Server {
	m := &Server{
		config:    config,
		readiness: readiness,
		logger:    logger.With(log.String("component", "server")),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", m.handleHealth)
	mux.Handle("/metrics", gatherer.GetHTTPHandler())
	mux.Handle("/metrics/runtime", runtimemetrics.NewHandler())

	m.httpServer = &http.Server{
		Addr:              config.HTTPAddr,
		Handler:           requestIDMiddleware(m.logger)(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return m
}

// Handler returns the HTTP handler of the server.
func (m *Server) Handler() http.Handler {
	return m.httpServer.Handler
}

// Run serves HTTP until Stop is called.
func (m *Server) Run(ctx context.Context) error {
	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", m.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	m.logger.Info("serving HTTP", log.String("addr", listener.Addr().String()))
	if err := m.httpServer.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server, waiting for active requests.
func (m *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if err := m.httpServer.Shutdown(ctx); err != nil {
		m.logger.Warn("failed to stop HTTP server gracefully", log.Error(err))
	}
}

func (m *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	if m.readiness != nil && m.readiness.ShouldShutdown() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
