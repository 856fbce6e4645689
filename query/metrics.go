// Copyright (c) 2025 pk910
// SPDX-License-Identifier: Apache-2.0
// This file is part of the mvx-abi library.

package query

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects query statistics.
type Metrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	cacheHits *prometheus.CounterVec
}

// NewMetrics creates the query metrics and registers them with reg.
// A nil registerer keeps the metrics unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mvxabi",
				Subsystem: "query",
				Name:      "requests_total",
				Help:      "Total number of contract queries",
			},
			[]string{"function", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mvxabi",
				Subsystem: "query",
				Name:      "duration_seconds",
				Help:      "Contract query duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"function"},
		),
		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mvxabi",
				Subsystem: "query",
				Name:      "cache_hits_total",
				Help:      "Number of contract queries served from cache",
			},
			[]string{"function"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.requests, m.duration, m.cacheHits)
	}

	return m
}

func (m *Metrics) observe(function string, result string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(function, result).Inc()
	m.duration.WithLabelValues(function).Observe(seconds)
}

func (m *Metrics) cacheHit(function string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(function).Inc()
}
