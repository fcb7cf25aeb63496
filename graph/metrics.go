// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graph

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level meter for graph operations.
var meter = otel.Meter("b9s.graph")

// Metrics for algorithm invocations.
var (
	algorithmLatency metric.Float64Histogram
	algorithmTotal   metric.Int64Counter
	resultSizes      metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		algorithmLatency, err = meter.Float64Histogram(
			"graph_algorithm_duration_seconds",
			metric.WithDescription("Duration of graph algorithm invocations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		algorithmTotal, err = meter.Int64Counter(
			"graph_algorithm_total",
			metric.WithDescription("Total number of graph algorithm invocations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		resultSizes, err = meter.Int64Histogram(
			"graph_algorithm_result_size",
			metric.WithDescription("Number of result entries per algorithm invocation"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// ensureContext guards against nil contexts from host bindings.
func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// recordAlgorithmMetrics records one algorithm invocation.
func recordAlgorithmMetrics(ctx context.Context, algorithm string, duration time.Duration, resultCount int) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("algorithm", algorithm))

	algorithmLatency.Record(ctx, duration.Seconds(), attrs)
	algorithmTotal.Add(ctx, 1, attrs)
	resultSizes.Record(ctx, int64(resultCount), attrs)
}
