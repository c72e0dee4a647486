// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package observability serves the metrics endpoint and health probes on a
// side port, away from the player-facing listener.
package observability

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/oops"

	"github.com/emberpath/ember/internal/command"
)

// ReadyFunc reports whether the game server is accepting connections.
type ReadyFunc func() bool

// Connections gauges live telnet links, authenticated or not.
var Connections = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "ember_connections",
	Help: "Number of live telnet connections",
})

// Server hosts /metrics and the health probes.
type Server struct {
	addr     string
	registry *prometheus.Registry
	ready    ReadyFunc

	listener net.Listener
	httpSrv  *http.Server
}

// NewServer builds the server and its private metrics registry, with the Go
// runtime collectors and all game metrics registered.
func NewServer(addr string, ready ReadyFunc) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(Connections)
	command.RegisterMetrics(registry)

	return &Server{addr: addr, registry: registry, ready: ready}
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Start begins serving. The returned channel reports a serve failure and is
// closed on clean shutdown.
func (s *Server) Start() (<-chan error, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, oops.Code("LISTEN_FAILED").With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/healthz/liveness", s.handleLiveness)
	mux.HandleFunc("/healthz/readiness", s.handleReadiness)

	s.httpSrv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		if err := s.httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server error", "error", err)
			errCh <- err
		}
	}()

	slog.Info("observability server started", "addr", listener.Addr())
	return errCh, nil
}

// Stop shuts the server down, waiting for in-flight scrapes up to ctx.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return oops.Code("SHUTDOWN_FAILED").Wrap(err)
	}
	return nil
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n")) //nolint:errcheck
}

func (s *Server) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if s.ready == nil || s.ready() {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n")) //nolint:errcheck
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte("not ready\n")) //nolint:errcheck
}
