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
// Eigenvector Centrality
// =============================================================================

var eigenvectorTracer = otel.Tracer("graph.eigenvector")

// DefaultEigenvectorIterations is the fixed power-iteration count for
// eigenvector centrality.
const DefaultEigenvectorIterations = 50

// EigenvectorCentrality computes eigenvector centrality scores via power
// iteration on the successor adjacency.
//
// Description:
//
//	A node is important if its neighbors are important. Each iteration
//	accumulates every node's score into its successors, then the vector is
//	normalized to unit Euclidean length to keep values bounded.
//
//	iterations <= 0 uses DefaultEigenvectorIterations. Nodes unreachable
//	from any cycle or strongly connected core may converge to zero; that
//	is the expected fixed point for the adjacency spectrum.
//
// Outputs:
//
//   - []float64: One score per node in index order, unit L2 norm (unless
//     the graph has no edges, in which case all scores are zero after
//     the first iteration). Empty slice for an empty graph.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(k × E) for k iterations.
func (a *Analytics) EigenvectorCentrality(ctx context.Context, iterations int) []float64 {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	ctx, span := eigenvectorTracer.Start(ctx, "Analytics.EigenvectorCentrality",
		trace.WithAttributes(
			attribute.Int("node_count", n),
			attribute.Int("iterations", iterations),
		),
	)
	defer span.End()

	if n == 0 {
		return []float64{}
	}
	if iterations <= 0 {
		iterations = DefaultEigenvectorIterations
	}

	scores := make([]float64, n)
	next := make([]float64, n)
	for v := range scores {
		scores[v] = 1.0
	}

	for iter := 0; iter < iterations; iter++ {
		for v := range next {
			next[v] = 0
		}
		for v := 0; v < n; v++ {
			for _, w := range a.g.Successors(v) {
				next[w] += scores[v]
			}
		}

		norm := 0.0
		for _, s := range next {
			norm += s * s
		}
		norm = math.Sqrt(norm)
		if norm > 0 {
			for v := range next {
				next[v] /= norm
			}
		}

		scores, next = next, scores
	}

	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("eigenvector: completed",
		slog.Int("node_count", n),
		slog.Int("iterations", iterations),
	)
	recordAlgorithmMetrics(ctx, "eigenvector_centrality", time.Since(start), n)

	return scores
}
