// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

// Package logging configures structured logging with trace correlation.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// Options controls logger construction.
type Options struct {
	// Format is "json" or "text"; empty means json.
	Format string
	// Level is the minimum level emitted; zero value is Info.
	Level slog.Leveler
	// Writer receives log output; nil means os.Stderr.
	Writer io.Writer
}

// correlated wraps a handler and stamps each record with the active trace
// and span ids so log lines can be joined to traces.
type correlated struct {
	inner slog.Handler
}

func (h *correlated) Handle(ctx context.Context, r slog.Record) error {
	sc := trace.SpanContextFromContext(ctx)
	if sc.HasTraceID() {
		r.AddAttrs(slog.String("trace_id", sc.TraceID().String()))
	}
	if sc.HasSpanID() {
		r.AddAttrs(slog.String("span_id", sc.SpanID().String()))
	}
	return h.inner.Handle(ctx, r)
}

func (h *correlated) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *correlated) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &correlated{inner: h.inner.WithAttrs(attrs)}
}

func (h *correlated) WithGroup(name string) slog.Handler {
	return &correlated{inner: h.inner.WithGroup(name)}
}

// New creates a logger carrying the service name and version on every record.
func New(service, version string, opts Options) *slog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	ho := &slog.HandlerOptions{Level: level}
	var base slog.Handler
	if opts.Format == "text" {
		base = slog.NewTextHandler(w, ho)
	} else {
		base = slog.NewJSONHandler(w, ho)
	}

	return slog.New(&correlated{inner: base}).With(
		"service", service,
		"version", version,
	)
}

// SetDefault installs a logger built from opts as the process default.
func SetDefault(service, version string, opts Options) {
	slog.SetDefault(New(service, version, opts))
}
