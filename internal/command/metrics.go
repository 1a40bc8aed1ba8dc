// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Status constants for command build metrics.
const (
	StatusSuccess        = "success"
	StatusParseError     = "parse_error"
	StatusUnknownCommand = "unknown_command"
)

// CommandBuilds is the counter for factory build attempts.
// Use RegisterMetrics to register this with a Prometheus registry.
var CommandBuilds = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quill_command_builds_total",
		Help: "Total number of command-line build attempts",
	},
	[]string{"mode", "status"},
)

// AliasExpansions is the counter for alias expansions.
// Use RegisterMetrics to register this with a Prometheus registry.
var AliasExpansions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quill_alias_expansions_total",
		Help: "Total number of alias expansions",
	},
	[]string{"alias"},
)

// RegisterMetrics registers command package metrics with the given
// Prometheus registry. Panics if registration fails (following prometheus
// convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(CommandBuilds)
	reg.MustRegister(AliasExpansions)
}

// RecordBuild increments the build counter for one factory invocation.
func RecordBuild(mode Mode, status string) {
	CommandBuilds.WithLabelValues(string(mode), status).Inc()
}

// RecordAliasExpansion increments the alias expansion counter.
func RecordAliasExpansion(alias string) {
	AliasExpansions.WithLabelValues(alias).Inc()
}
