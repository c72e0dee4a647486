// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package command

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/emberpath/ember/internal/auth"
)

var tracer = otel.Tracer("ember/command")

// Dispatcher matches input lines against the registry and executes the
// selected handler behind the permission gate.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch matches line and runs the handler. handled is false when no
// registered command matched, in which case the caller falls through to
// movement. The permission check runs before any handler logic.
func (d *Dispatcher) Dispatch(ctx context.Context, line string, exec *Execution) (handled bool, err error) {
	entry, args, ok := d.registry.Match(line)
	if !ok {
		return false, nil
	}

	ctx, span := tracer.Start(ctx, "command.execute",
		trace.WithAttributes(
			attribute.String("command.name", entry.Name),
			attribute.Int64("character.id", exec.Actor.ID),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	level, err := auth.LevelOf(exec.Actor, exec.BootstrapID)
	if err != nil {
		return true, err
	}
	if level < entry.MinLevel {
		RecordCommandExecution(entry.Name, StatusPermissionDenied)
		return true, ErrPermissionDenied(entry.Name)
	}

	exec.Args = args

	start := time.Now()
	err = entry.Handler(ctx, exec)
	RecordCommandDuration(entry.Name, time.Since(start))
	if err != nil {
		RecordCommandExecution(entry.Name, StatusError)
		slog.WarnContext(ctx, "command execution failed",
			"command", entry.Name,
			"character_id", exec.Actor.ID,
			"error", err,
		)
		return true, err
	}
	RecordCommandExecution(entry.Name, StatusSuccess)
	return true, nil
}
