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
	"math/rand"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vanderheijden86/b9s/telemetry"
)

// =============================================================================
// Betweenness Centrality (Brandes)
// =============================================================================

var betweennessTracer = otel.Tracer("graph.betweenness")

// BetweennessOptions configures sampled betweenness centrality.
type BetweennessOptions struct {
	// SampleSize is the number of pivot sources to run Brandes from.
	// Values <= 0 or >= node count run the exact algorithm over all
	// sources.
	SampleSize int

	// Seed seeds pivot selection for reproducible sampling.
	Seed int64
}

// Betweenness computes exact betweenness centrality for all nodes.
//
// Description:
//
//	Brandes' algorithm: one BFS shortest-path pass plus one dependency
//	accumulation pass per source node. Scores count, for each node, the
//	fraction of all-pairs shortest paths passing through it. Edges are
//	unweighted; paths follow successor edges.
//
// Outputs:
//
//   - []float64: One score per node in index order. Empty slice for an
//     empty graph.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(V × E).
func (a *Analytics) Betweenness(ctx context.Context) []float64 {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	ctx, span := betweennessTracer.Start(ctx, "Analytics.Betweenness",
		trace.WithAttributes(
			attribute.Int("node_count", n),
			attribute.Int("edge_count", a.g.EdgeCount()),
		),
	)
	defer span.End()

	sources := make([]int, n)
	for v := range sources {
		sources[v] = v
	}
	bc := a.brandesFromSources(sources, 1.0)

	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("betweenness: exact completed",
		slog.Int("node_count", n),
	)
	recordAlgorithmMetrics(ctx, "betweenness_exact", time.Since(start), n)
	return bc
}

// BetweennessApprox computes sampled betweenness centrality.
//
// Description:
//
//	Runs Brandes' single-source pass from k uniformly sampled pivot
//	sources instead of all n sources, then scales accumulated scores by
//	n/k to estimate the exact values. Expected relative error shrinks as
//	O(1/sqrt(k)). A sample size of zero, negative, or >= node count falls
//	back to the exact computation (scale 1), so a full sample agrees with
//	Betweenness exactly.
//
// Outputs:
//
//   - []float64: One estimated score per node in index order. Empty slice
//     for an empty graph.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(k × E) for sample size k.
func (a *Analytics) BetweennessApprox(ctx context.Context, opts *BetweennessOptions) []float64 {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	if opts == nil {
		opts = &BetweennessOptions{}
	}
	k := opts.SampleSize

	ctx, span := betweennessTracer.Start(ctx, "Analytics.BetweennessApprox",
		trace.WithAttributes(
			attribute.Int("node_count", n),
			attribute.Int("sample_size", k),
		),
	)
	defer span.End()

	if k <= 0 || k >= n {
		span.AddEvent("full_sample_fallback")
		sources := make([]int, n)
		for v := range sources {
			sources[v] = v
		}
		bc := a.brandesFromSources(sources, 1.0)
		recordAlgorithmMetrics(ctx, "betweenness_approx", time.Since(start), n)
		return bc
	}

	pivots := samplePivots(n, k, opts.Seed)
	scale := float64(n) / float64(k)
	bc := a.brandesFromSources(pivots, scale)

	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("betweenness: sampled completed",
		slog.Int("node_count", n),
		slog.Int("sample_size", k),
		slog.Float64("scale", scale),
	)
	recordAlgorithmMetrics(ctx, "betweenness_approx", time.Since(start), n)
	return bc
}

// RecommendSampleSize suggests a pivot count for a target relative error.
//
// The heuristic k = (1/epsilon)^2 follows from the O(1/sqrt(k)) error
// decay, clamped to [10, nodeCount]. epsilon <= 0 defaults to 0.1.
func RecommendSampleSize(nodeCount int, epsilon float64) int {
	if epsilon <= 0 {
		epsilon = 0.1
	}
	k := int(1.0 / (epsilon * epsilon))
	if k < 10 {
		k = 10
	}
	if k > nodeCount {
		k = nodeCount
	}
	return k
}

// brandesFromSources runs the Brandes single-source dependency accumulation
// from each source, scaling each contribution by scale.
func (a *Analytics) brandesFromSources(sources []int, scale float64) []float64 {
	n := a.g.NodeCount()
	bc := make([]float64, n)
	if n == 0 {
		return []float64{}
	}

	// Reused per-source scratch state.
	sigma := make([]float64, n)
	dist := make([]int, n)
	delta := make([]float64, n)
	pred := make([][]int, n)
	stack := make([]int, 0, n)
	queue := make([]int, 0, n)

	for _, s := range sources {
		for v := 0; v < n; v++ {
			sigma[v] = 0
			dist[v] = -1
			delta[v] = 0
			pred[v] = pred[v][:0]
		}
		stack = stack[:0]
		queue = queue[:0]

		sigma[s] = 1
		dist[s] = 0
		queue = append(queue, s)

		// BFS shortest-path counting.
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)

			for _, w := range a.g.Successors(v) {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		// Dependency accumulation in reverse BFS order.
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
			}
			if w != s {
				bc[w] += scale * delta[w]
			}
		}
	}

	return bc
}

// samplePivots selects k distinct node indices uniformly at random via a
// partial Fisher-Yates shuffle.
func samplePivots(n, k int, seed int64) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:k]
}
