// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics owns the Prometheus collectors exported on /metrics.

Collectors are registered on an explicit [prometheus.Registry] created at
startup rather than on the global default registry, so tests can build as
many independent instances as they need.

Families:

  - HTTP: request counter and latency histogram keyed by chi route pattern.
  - Domain: habits created and completions recorded/deleted.
  - Auth: login attempts by outcome.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "habitrack"

// Metrics is the set of application collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	habitsCreated       prometheus.Counter
	completionsRecorded prometheus.Counter
	completionsDeleted  prometheus.Counter
	loginAttempts       *prometheus.CounterVec
}

// New creates and registers every collector, plus the Go runtime and process
// collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),

		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		habitsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "habits_created_total",
			Help:      "Habits created.",
		}),

		completionsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_recorded_total",
			Help:      "Completion records requested (idempotent repeats included).",
		}),

		completionsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completions_deleted_total",
			Help:      "Completion rows removed by day-range deletes.",
		}),

		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "login_attempts_total",
			Help:      "Login attempts by result (success, failure).",
		}, []string{"result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.habitsCreated,
		m.completionsRecorded,
		m.completionsDeleted,
		m.loginAttempts,
	)

	return m
}

// Handler serves the Prometheus exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry (used by tests to gather values).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// # Recorders
//
// Every recorder is safe to call on a nil *Metrics, which disables collection.

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// HabitCreated counts a newly created habit.
func (m *Metrics) HabitCreated() {
	if m == nil {
		return
	}
	m.habitsCreated.Inc()
}

// CompletionRecorded counts a record request.
func (m *Metrics) CompletionRecorded() {
	if m == nil {
		return
	}
	m.completionsRecorded.Inc()
}

// CompletionsDeleted counts removed completion rows.
func (m *Metrics) CompletionsDeleted(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.completionsDeleted.Add(float64(n))
}

// LoginAttempt counts a login by outcome.
func (m *Metrics) LoginAttempt(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.loginAttempts.WithLabelValues(result).Inc()
}
