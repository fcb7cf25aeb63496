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
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vanderheijden86/b9s/telemetry"
)

// =============================================================================
// HITS (Hyperlink-Induced Topic Search)
// =============================================================================

var hitsTracer = otel.Tracer("graph.hits")

// HITS configuration constants.
const (
	// DefaultHITSMaxIterations is the maximum iterations before stopping.
	DefaultHITSMaxIterations = 100

	// DefaultHITSTolerance is the convergence threshold for both vectors.
	DefaultHITSTolerance = 1e-6
)

// HITSOptions configures the HITS algorithm.
type HITSOptions struct {
	// MaxIterations is the maximum iterations before stopping.
	// Must be > 0. Default: 100
	MaxIterations int

	// Tolerance stops iteration when the max change in both the hub and
	// authority vectors falls below it. Must be > 0. Default: 1e-6
	Tolerance float64
}

// Validate checks options and applies defaults for invalid values.
func (o *HITSOptions) Validate() {
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultHITSMaxIterations
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultHITSTolerance
	}
}

// DefaultHITSOptions returns sensible defaults.
func DefaultHITSOptions() *HITSOptions {
	return &HITSOptions{
		MaxIterations: DefaultHITSMaxIterations,
		Tolerance:     DefaultHITSTolerance,
	}
}

// HITSResult contains the output of the HITS computation.
type HITSResult struct {
	// Hubs holds one hub score per node in index order. A good hub points
	// to many good authorities.
	Hubs []float64

	// Authorities holds one authority score per node in index order. A good
	// authority is pointed to by many good hubs.
	Authorities []float64

	// Iterations is the actual number of iterations performed.
	Iterations int
}

// HITS computes hub and authority scores for all nodes.
//
// Description:
//
//	Mutual iterative refinement: each node's authority score is the sum of
//	the hub scores of its predecessors, and its hub score is the sum of
//	the authority scores of its successors. Both vectors are renormalized
//	to unit Euclidean length every iteration. Iteration stops when the max
//	change in both vectors falls below the tolerance or MaxIterations is
//	reached.
//
// Outputs:
//
//   - *HITSResult: Hub and authority vectors in index order plus the
//     iteration count actually used. Empty vectors for an empty graph.
//     Never nil.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(k × E) for k iterations.
func (a *Analytics) HITS(ctx context.Context, opts *HITSOptions) *HITSResult {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	ctx, span := hitsTracer.Start(ctx, "Analytics.HITS",
		trace.WithAttributes(
			attribute.Int("node_count", n),
			attribute.Int("edge_count", a.g.EdgeCount()),
		),
	)
	defer span.End()

	if n == 0 {
		return &HITSResult{Hubs: []float64{}, Authorities: []float64{}}
	}

	if opts == nil {
		opts = DefaultHITSOptions()
	} else {
		opts.Validate()
	}

	hubs := make([]float64, n)
	auths := make([]float64, n)
	newHubs := make([]float64, n)
	newAuths := make([]float64, n)
	for v := 0; v < n; v++ {
		hubs[v] = 1.0
		auths[v] = 1.0
	}

	var iterations int
	for iter := 0; iter < opts.MaxIterations; iter++ {
		// Authority update: sum of predecessor hub scores.
		for v := 0; v < n; v++ {
			sum := 0.0
			for _, u := range a.g.Predecessors(v) {
				sum += hubs[u]
			}
			newAuths[v] = sum
		}
		normalizeL2(newAuths)

		// Hub update: sum of successor authority scores.
		for v := 0; v < n; v++ {
			sum := 0.0
			for _, w := range a.g.Successors(v) {
				sum += newAuths[w]
			}
			newHubs[v] = sum
		}
		normalizeL2(newHubs)

		maxDiff := 0.0
		for v := 0; v < n; v++ {
			if d := math.Abs(newHubs[v] - hubs[v]); d > maxDiff {
				maxDiff = d
			}
			if d := math.Abs(newAuths[v] - auths[v]); d > maxDiff {
				maxDiff = d
			}
		}

		hubs, newHubs = newHubs, hubs
		auths, newAuths = newAuths, auths
		iterations = iter + 1

		if maxDiff < opts.Tolerance {
			break
		}
	}

	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("hits: completed",
		slog.Int("node_count", n),
		slog.Int("iterations", iterations),
	)
	span.SetAttributes(attribute.Int("iterations", iterations))
	recordAlgorithmMetrics(ctx, "hits", time.Since(start), n)

	return &HITSResult{
		Hubs:        hubs,
		Authorities: auths,
		Iterations:  iterations,
	}
}

// normalizeL2 scales v in place to unit Euclidean length. A zero vector is
// left unchanged.
func normalizeL2(v []float64) {
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return
	}
	for i := range v {
		v[i] /= norm
	}
}
