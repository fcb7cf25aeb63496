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
	"time"
)

// =============================================================================
// Topological Sort (Kahn's Algorithm)
// =============================================================================

// TopoSort returns the node indices in topological order.
//
// Description:
//
//	Kahn's algorithm: repeatedly removes zero-in-degree nodes, decrementing
//	the in-degree of their successors. The ready queue is seeded in index
//	order and processed FIFO, so the returned order is deterministic for a
//	given graph.
//
//	The boolean is false when the graph contains a cycle; in that case no
//	partial order is returned (order is nil). Callers probing acyclicity
//	should prefer IsDAG.
func (a *Analytics) TopoSort(ctx context.Context) ([]int, bool) {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	inDegree := a.g.InDegrees()

	queue := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if inDegree[v] == 0 {
			queue = append(queue, v)
		}
	}

	order := make([]int, 0, n)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)

		for _, w := range a.g.Successors(v) {
			inDegree[w]--
			if inDegree[w] == 0 {
				queue = append(queue, w)
			}
		}
	}

	recordAlgorithmMetrics(ctx, "topo_sort", time.Since(start), len(order))

	if len(order) != n {
		// Some node never reached in-degree zero: a cycle exists.
		return nil, false
	}
	return order, true
}

// IsDAG reports whether the graph is a directed acyclic graph.
func (a *Analytics) IsDAG(ctx context.Context) bool {
	_, ok := a.TopoSort(ctx)
	return ok
}
