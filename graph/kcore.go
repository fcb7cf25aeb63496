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
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vanderheijden86/b9s/telemetry"
)

// =============================================================================
// K-Core Decomposition
// =============================================================================

var kcoreTracer = otel.Tracer("graph.kcore")

// CoreNumbers computes the core number of every node on the undirected
// simple view.
//
// Description:
//
//	Iterative peeling: repeatedly remove a minimum-remaining-degree
//	vertex, assigning it a core number equal to the maximum degree
//	threshold survived so far. A node's core number k means it belongs to
//	the maximal subgraph in which every node has undirected degree >= k.
//	Edge direction and self-loops are ignored.
//
// Outputs:
//
//   - []int: One core number per node in index order. Empty slice for an
//     empty graph.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(V + E) with bucketed peeling.
func (a *Analytics) CoreNumbers(ctx context.Context) []int {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	ctx, span := kcoreTracer.Start(ctx, "Analytics.CoreNumbers",
		trace.WithAttributes(
			attribute.Int("node_count", n),
			attribute.Int("edge_count", a.g.EdgeCount()),
		),
	)
	defer span.End()

	if n == 0 {
		return []int{}
	}

	adj := a.buildUndirectedAdjacency()

	degree := make([]int, n)
	maxDegree := 0
	for v := range adj {
		degree[v] = len(adj[v])
		if degree[v] > maxDegree {
			maxDegree = degree[v]
		}
	}

	// Bucket nodes by current degree for O(V+E) peeling.
	buckets := make([][]int, maxDegree+1)
	for v := 0; v < n; v++ {
		buckets[degree[v]] = append(buckets[degree[v]], v)
	}

	core := make([]int, n)
	removed := make([]bool, n)
	threshold := 0
	remaining := n

	for remaining > 0 {
		// Find the lowest non-empty bucket at or below the current scan
		// point. Degrees only decrease, so buckets below threshold can
		// refill and must be rechecked.
		d := 0
		for d <= maxDegree && len(buckets[d]) == 0 {
			d++
		}
		bucket := buckets[d]
		v := bucket[len(bucket)-1]
		buckets[d] = bucket[:len(bucket)-1]

		if removed[v] || degree[v] != d {
			// Stale bucket entry from an earlier degree decrement.
			continue
		}

		if d > threshold {
			threshold = d
		}
		core[v] = threshold
		removed[v] = true
		remaining--

		for _, w := range adj[v] {
			if removed[w] {
				continue
			}
			degree[w]--
			buckets[degree[w]] = append(buckets[degree[w]], w)
		}
	}

	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("kcore: completed",
		slog.Int("node_count", n),
		slog.Int("degeneracy", threshold),
	)
	span.SetAttributes(attribute.Int("degeneracy", threshold))
	recordAlgorithmMetrics(ctx, "core_numbers", time.Since(start), n)
	return core
}

// Degeneracy returns the maximum core number over all nodes, i.e. the
// smallest d such that every subgraph has a node of undirected degree <= d.
// Returns 0 for an empty graph.
func (a *Analytics) Degeneracy(ctx context.Context) int {
	maxCore := 0
	for _, c := range a.CoreNumbers(ctx) {
		if c > maxCore {
			maxCore = c
		}
	}
	return maxCore
}
