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
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vanderheijden86/b9s/telemetry"
)

// =============================================================================
// PageRank Algorithm
// =============================================================================

var pageRankTracer = otel.Tracer("graph.pagerank")

// PageRank configuration constants.
const (
	// DefaultDampingFactor is the probability of following a link (vs random
	// jump). Standard value from the original PageRank paper.
	DefaultDampingFactor = 0.85

	// DefaultMaxIterations is the maximum iterations before stopping.
	DefaultMaxIterations = 100

	// DefaultConvergence is the threshold for convergence detection.
	// Power iteration stops when max score change < this value.
	DefaultConvergence = 1e-6
)

// PageRankOptions configures the PageRank algorithm.
type PageRankOptions struct {
	// DampingFactor is the probability of following a link (vs random jump).
	// Must be in [0, 1]. Default: 0.85
	DampingFactor float64

	// MaxIterations is the maximum iterations before stopping.
	// Must be > 0. Default: 100
	MaxIterations int

	// Convergence is the threshold for convergence detection.
	// Must be > 0. Default: 1e-6
	Convergence float64
}

// Validate checks options and applies defaults for invalid values.
func (o *PageRankOptions) Validate() {
	if o.DampingFactor < 0 || o.DampingFactor > 1 {
		o.DampingFactor = DefaultDampingFactor
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Convergence <= 0 {
		o.Convergence = DefaultConvergence
	}
}

// DefaultPageRankOptions returns sensible defaults.
func DefaultPageRankOptions() *PageRankOptions {
	return &PageRankOptions{
		DampingFactor: DefaultDampingFactor,
		MaxIterations: DefaultMaxIterations,
		Convergence:   DefaultConvergence,
	}
}

// PageRankResult contains the output of PageRank computation.
type PageRankResult struct {
	// Scores holds one PageRank score per node in index order.
	// Scores sum to approximately 1.0.
	Scores []float64

	// Iterations is the actual number of iterations performed.
	Iterations int

	// Converged indicates whether the algorithm converged before MaxIterations.
	Converged bool

	// MaxDiff is the final maximum score difference (useful for debugging).
	MaxDiff float64
}

// PageRankNode represents a node with its PageRank score and rank.
type PageRankNode struct {
	// Node is the node index.
	Node int

	// Score is the PageRank score.
	Score float64

	// Rank is the position in the ranking (1-indexed).
	Rank int
}

// PageRank computes PageRank scores for all nodes in the graph.
//
// Description:
//
//	Uses power iteration to compute the PageRank score of each node, which
//	represents its importance based on the importance of nodes linking to
//	it (transitive importance).
//
//	Dangling nodes (no outgoing edges) redistribute their PageRank evenly
//	across all nodes each iteration, preventing rank "leakage" from the
//	graph; scores therefore sum to 1.0 at every iteration. Scores are
//	invariant under node-key renaming since only structure is consulted.
//
// Inputs:
//
//   - ctx: Context for trace propagation. May be nil.
//   - opts: Configuration options. If nil, defaults are used.
//
// Outputs:
//
//   - *PageRankResult: Scores in index order, iteration count, convergence
//     status. Empty scores for an empty graph. Never nil.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(k × E) where k = iterations to converge.
func (a *Analytics) PageRank(ctx context.Context, opts *PageRankOptions) *PageRankResult {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	ctx, span := pageRankTracer.Start(ctx, "Analytics.PageRank",
		trace.WithAttributes(
			attribute.Int("node_count", n),
			attribute.Int("edge_count", a.g.EdgeCount()),
		),
	)
	defer span.End()

	if n == 0 {
		span.AddEvent("empty_graph")
		return &PageRankResult{Scores: []float64{}, Converged: true}
	}

	if opts == nil {
		opts = DefaultPageRankOptions()
	} else {
		opts.Validate()
	}

	span.SetAttributes(
		attribute.Float64("damping_factor", opts.DampingFactor),
		attribute.Int("max_iterations", opts.MaxIterations),
		attribute.Float64("convergence_threshold", opts.Convergence),
	)

	N := float64(n)
	d := opts.DampingFactor

	// Pre-allocate two vectors and swap instead of reallocating.
	scores := make([]float64, n)
	newScores := make([]float64, n)

	initial := 1.0 / N
	for v := range scores {
		scores[v] = initial
	}

	// Identify dangling nodes (no outgoing edges) for mass redistribution.
	danglingNodes := make([]int, 0)
	outDegree := a.g.OutDegrees()
	for v, deg := range outDegree {
		if deg == 0 {
			danglingNodes = append(danglingNodes, v)
		}
	}
	span.SetAttributes(attribute.Int("dangling_node_count", len(danglingNodes)))

	var iterations int
	var converged bool
	var maxDiff float64

	for iter := 0; iter < opts.MaxIterations; iter++ {
		maxDiff = 0.0

		// Dangling mass, redistributed evenly.
		danglingContribution := 0.0
		for _, v := range danglingNodes {
			danglingContribution += scores[v]
		}
		danglingContribution = d * danglingContribution / N

		for v := 0; v < n; v++ {
			// Base score (random jump) + dangling redistribution.
			newScore := (1-d)/N + danglingContribution

			// Contribution from incoming edges.
			for _, u := range a.g.Predecessors(v) {
				if outDegree[u] > 0 {
					newScore += d * scores[u] / float64(outDegree[u])
				}
			}

			newScores[v] = newScore

			diff := math.Abs(newScore - scores[v])
			if diff > maxDiff {
				maxDiff = diff
			}
		}

		scores, newScores = newScores, scores
		iterations = iter + 1

		if maxDiff < opts.Convergence {
			converged = true
			break
		}
	}

	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("pagerank: completed",
		slog.Int("iterations", iterations),
		slog.Bool("converged", converged),
		slog.Float64("max_diff", maxDiff),
		slog.Int("node_count", n),
	)
	span.SetAttributes(
		attribute.Int("iterations", iterations),
		attribute.Bool("converged", converged),
		attribute.Float64("max_diff", maxDiff),
	)
	recordAlgorithmMetrics(ctx, "pagerank", time.Since(start), n)

	return &PageRankResult{
		Scores:     scores,
		Iterations: iterations,
		Converged:  converged,
		MaxDiff:    maxDiff,
	}
}

// PageRankTop returns the top-k nodes by PageRank score.
//
// Scores sort descending with ties broken by ascending node index for
// stable output. k larger than the node count returns every node.
func (a *Analytics) PageRankTop(ctx context.Context, k int, opts *PageRankOptions) []PageRankNode {
	if k <= 0 {
		return []PageRankNode{}
	}

	result := a.PageRank(ctx, opts)

	ranked := make([]PageRankNode, 0, len(result.Scores))
	for v, score := range result.Scores {
		ranked = append(ranked, PageRankNode{Node: v, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Node < ranked[j].Node
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	ranked = ranked[:k]
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
