// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Liquid2 Contributors

// Package metrics records Prometheus metrics for liquid2 parse
// invocations: a latency histogram plus an outcome counter vector.
package metrics

import (
	"time"

	"github.com/liquid2/liquid2/errkind"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	parseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "liquid2_parse_duration_seconds",
		Help:    "Histogram of template parse latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	parseOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "liquid2_parse_total",
		Help: "Total number of template parse attempts by outcome",
	}, []string{"outcome", "kind"})
)

// RecordParse records a completed Parse call. kind is the empty string
// on success; on failure it is the errkind.Kind name extracted from err.
func RecordParse(duration time.Duration, err error) {
	parseDuration.Observe(duration.Seconds())
	if err == nil {
		parseOutcomes.WithLabelValues("success", "").Inc()
		return
	}
	kind := "unknown"
	if k, ok := errkind.KindOf(err); ok {
		kind = string(k)
	}
	parseOutcomes.WithLabelValues("failure", kind).Inc()
}
