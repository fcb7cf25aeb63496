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
// Subgraph Extraction & Reachability
// =============================================================================

var subgraphTracer = otel.Tracer("graph.subgraph")

// Subgraph extracts the induced subgraph over the given node indices.
//
// Description:
//
//	Input indices are deduplicated and out-of-range entries silently
//	dropped. Surviving nodes are renumbered densely from zero in the
//	order given, keeping their original string keys. Only edges with both
//	endpoints in the set are carried over. The result is an independently
//	owned graph; mutating it never affects the source.
//
// Outputs:
//
//   - *Graph: The induced subgraph. Never nil; empty input yields an
//     empty graph.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(V' + E) where V' is the selected node count.
func (a *Analytics) Subgraph(ctx context.Context, indices []int) *Graph {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	ctx, span := subgraphTracer.Start(ctx, "Analytics.Subgraph",
		trace.WithAttributes(
			attribute.Int("node_count", n),
			attribute.Int("requested", len(indices)),
		),
	)
	defer span.End()

	sub := NewWithCapacity(len(indices), 0)

	// Maps original index to new index; -1 marks "not selected".
	indexMap := make([]int, n)
	for i := range indexMap {
		indexMap[i] = -1
	}

	for _, idx := range indices {
		if idx < 0 || idx >= n || indexMap[idx] >= 0 {
			continue
		}
		id, _ := a.g.NodeID(idx)
		indexMap[idx] = sub.AddNode(id)
	}

	for _, idx := range indices {
		if idx < 0 || idx >= n {
			continue
		}
		from := indexMap[idx]
		for _, w := range a.g.Successors(idx) {
			if to := indexMap[w]; to >= 0 {
				sub.AddEdge(from, to)
			}
		}
	}

	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("subgraph: extracted",
		slog.Int("nodes", sub.NodeCount()),
		slog.Int("edges", sub.EdgeCount()),
	)
	recordAlgorithmMetrics(ctx, "subgraph", time.Since(start), sub.NodeCount())
	return sub
}

// SubgraphByKeys resolves keys to indices (unresolvable keys dropped) and
// extracts the induced subgraph over them.
func (a *Analytics) SubgraphByKeys(ctx context.Context, keys []string) *Graph {
	indices := make([]int, 0, len(keys))
	for _, key := range keys {
		if idx, ok := a.g.NodeIndex(key); ok {
			indices = append(indices, idx)
		}
	}
	return a.Subgraph(ctx, indices)
}

// ReachableFrom returns every node reachable from source by following
// successor edges, including source itself, in BFS discovery order. An
// out-of-range source yields an empty result.
func (a *Analytics) ReachableFrom(ctx context.Context, source int) []int {
	return a.reachable(ctx, source, "reachable_from", a.g.Successors)
}

// ReachableTo returns every node that can reach source by following
// successor edges (i.e. BFS over predecessor edges), including source
// itself, in BFS discovery order. An out-of-range source yields an empty
// result.
func (a *Analytics) ReachableTo(ctx context.Context, source int) []int {
	return a.reachable(ctx, source, "reachable_to", a.g.Predecessors)
}

func (a *Analytics) reachable(ctx context.Context, source int, algorithm string, neighbors func(int) []int) []int {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	ctx, span := subgraphTracer.Start(ctx, "Analytics.Reachable",
		trace.WithAttributes(
			attribute.Int("source", source),
			attribute.String("direction", algorithm),
		),
	)
	defer span.End()

	if source < 0 || source >= n {
		span.AddEvent("source_out_of_range")
		return []int{}
	}

	visited := make([]bool, n)
	visited[source] = true
	order := []int{source}
	queue := []int{source}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range neighbors(v) {
			if !visited[w] {
				visited[w] = true
				order = append(order, w)
				queue = append(queue, w)
			}
		}
	}

	recordAlgorithmMetrics(ctx, algorithm, time.Since(start), len(order))
	return order
}

// DependencyCone returns the union of the backward-reachable and
// forward-reachable sets of a node: its ancestors, the node itself, and its
// descendants, deduplicated. Ancestors come first, then the node, then
// descendants in BFS order.
func (a *Analytics) DependencyCone(ctx context.Context, node int) []int {
	ancestors := a.ReachableTo(ctx, node)
	descendants := a.ReachableFrom(ctx, node)

	seen := make(map[int]bool, len(ancestors)+len(descendants))
	cone := make([]int, 0, len(ancestors)+len(descendants))

	// ReachableTo lists node first; reorder so ancestors precede it.
	for _, v := range ancestors {
		if v != node && !seen[v] {
			seen[v] = true
			cone = append(cone, v)
		}
	}
	for _, v := range descendants {
		if !seen[v] {
			seen[v] = true
			cone = append(cone, v)
		}
	}
	return cone
}

// ReachableSubgraph extracts the induced subgraph over everything reachable
// from source, source included.
func (a *Analytics) ReachableSubgraph(ctx context.Context, source int) *Graph {
	return a.Subgraph(ctx, a.ReachableFrom(ctx, source))
}
