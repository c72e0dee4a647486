// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ember Contributors

package command

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status constants for command execution and login metrics.
const (
	StatusSuccess          = "success"
	StatusError            = "error"
	StatusFailure          = "failure"
	StatusPermissionDenied = "permission_denied"
	StatusUnmatched        = "unmatched"
)

// UnknownCommand is the command label recorded for lines that matched
// nothing.
const UnknownCommand = "unknown"

// CommandExecutions counts dispatched commands by name and outcome.
var CommandExecutions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ember_command_executions_total",
		Help: "Total number of command executions",
	},
	[]string{"command", "status"},
)

// CommandDuration observes how long handlers run.
var CommandDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ember_command_duration_seconds",
		Help:    "Command execution duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"command"},
)

// Logins counts login attempts by outcome.
var Logins = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ember_logins_total",
		Help: "Total number of login attempts",
	},
	[]string{"status"},
)

// RegisterMetrics registers command metrics with reg. Call once at startup;
// panics on duplicate registration, following prometheus convention.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(CommandExecutions)
	reg.MustRegister(CommandDuration)
	reg.MustRegister(Logins)
}

// RecordCommandExecution increments the execution counter.
func RecordCommandExecution(command, status string) {
	CommandExecutions.WithLabelValues(command, status).Inc()
}

// RecordCommandDuration observes one handler run.
func RecordCommandDuration(command string, d time.Duration) {
	CommandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// RecordLogin increments the login counter.
func RecordLogin(status string) {
	Logins.WithLabelValues(status).Inc()
}
