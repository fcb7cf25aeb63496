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
// Critical Path / Scheduling Analysis
// =============================================================================

var critPathTracer = otel.Tracer("graph.critpath")

// CriticalPathHeights computes, for each node, the edge count of the longest
// path ending at that node.
//
// Description:
//
//	Single pass over topological order accumulating max(predecessor
//	height) + 1. Sources have height 0. Defined only for acyclic graphs;
//	a cyclic graph yields an all-zero vector rather than an error so
//	callers can probe IsDAG first and treat zeros as the sentinel.
//
// Outputs:
//
//   - []int: One height per node in index order. Empty slice for an empty
//     graph, all zeros for a cyclic graph.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(V + E).
func (a *Analytics) CriticalPathHeights(ctx context.Context) []int {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	ctx, span := critPathTracer.Start(ctx, "Analytics.CriticalPathHeights",
		trace.WithAttributes(attribute.Int("node_count", n)),
	)
	defer span.End()

	heights := make([]int, n)
	order, ok := a.TopoSort(ctx)
	if !ok {
		span.AddEvent("cyclic_graph")
		recordAlgorithmMetrics(ctx, "critical_path_heights", time.Since(start), n)
		return heights
	}

	for _, v := range order {
		for _, u := range a.g.Predecessors(v) {
			if heights[u]+1 > heights[v] {
				heights[v] = heights[u] + 1
			}
		}
	}

	recordAlgorithmMetrics(ctx, "critical_path_heights", time.Since(start), n)
	return heights
}

// CriticalPathLength returns the maximum critical-path height over all
// nodes, i.e. the edge count of the longest path in the DAG. Returns 0 for
// empty or cyclic graphs.
func (a *Analytics) CriticalPathLength(ctx context.Context) int {
	maxHeight := 0
	for _, h := range a.CriticalPathHeights(ctx) {
		if h > maxHeight {
			maxHeight = h
		}
	}
	return maxHeight
}

// Slack computes per-node slack (scheduling float).
//
// Description:
//
//	Slack of a node = critical-path length minus the longest path through
//	that node (longest path ending at it plus longest path starting at
//	it). Zero slack marks critical-path membership. A cyclic graph yields
//	an all-zero vector.
//
// Outputs:
//
//   - []int: One slack value per node in index order.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(V + E).
func (a *Analytics) Slack(ctx context.Context) []int {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	ctx, span := critPathTracer.Start(ctx, "Analytics.Slack",
		trace.WithAttributes(attribute.Int("node_count", n)),
	)
	defer span.End()

	slack := make([]int, n)
	order, ok := a.TopoSort(ctx)
	if !ok {
		span.AddEvent("cyclic_graph")
		recordAlgorithmMetrics(ctx, "slack", time.Since(start), n)
		return slack
	}

	// Longest path ending at each node (forward sweep).
	heights := make([]int, n)
	for _, v := range order {
		for _, u := range a.g.Predecessors(v) {
			if heights[u]+1 > heights[v] {
				heights[v] = heights[u] + 1
			}
		}
	}

	// Longest path starting at each node (reverse sweep).
	depths := make([]int, n)
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		for _, w := range a.g.Successors(v) {
			if depths[w]+1 > depths[v] {
				depths[v] = depths[w] + 1
			}
		}
	}

	length := 0
	for _, h := range heights {
		if h > length {
			length = h
		}
	}

	for v := 0; v < n; v++ {
		slack[v] = length - (heights[v] + depths[v])
	}

	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("critpath: slack computed",
		slog.Int("node_count", n),
		slog.Int("critical_path_length", length),
	)
	recordAlgorithmMetrics(ctx, "slack", time.Since(start), n)
	return slack
}

// TotalFloat returns the maximum slack over all nodes. Returns 0 for empty
// or cyclic graphs.
func (a *Analytics) TotalFloat(ctx context.Context) int {
	maxSlack := 0
	for _, s := range a.Slack(ctx) {
		if s > maxSlack {
			maxSlack = s
		}
	}
	return maxSlack
}

// CriticalPathNodes returns the indices of all zero-slack nodes, in
// ascending index order. These are exactly the nodes lying on some longest
// path through the DAG. A cyclic graph reports every node (all slack zero
// by the cyclic sentinel convention).
func (a *Analytics) CriticalPathNodes(ctx context.Context) []int {
	slack := a.Slack(ctx)
	nodes := make([]int, 0)
	for v, s := range slack {
		if s == 0 {
			nodes = append(nodes, v)
		}
	}
	return nodes
}
