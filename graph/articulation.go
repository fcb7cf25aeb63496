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
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vanderheijden86/b9s/telemetry"
)

// =============================================================================
// Articulation Points / Bridges (Tarjan, undirected view)
// =============================================================================

var articulationTracer = otel.Tracer("graph.articulation")

// ArticulationResult contains the cut-vertex and cut-edge analysis.
type ArticulationResult struct {
	// Points contains node indices that are articulation points, ascending.
	// An articulation point is a node whose removal increases the number
	// of connected components of the undirected view.
	Points []int

	// Bridges contains edges whose removal disconnects the undirected view.
	// Each bridge is reported with endpoints in (min, max) index order,
	// independent of traversal direction, sorted lexicographically.
	Bridges [][2]int

	// Components is the number of connected components in the undirected view.
	Components int

	// NodeCount is the total nodes analyzed.
	NodeCount int

	// EdgeCount is the undirected simple-view edge count analyzed.
	EdgeCount int
}

// Phase constants for iterative DFS in Tarjan's algorithm.
const (
	phaseInit         = 0 // Initialize node: set discovery/low-link times, mark visited
	phaseProcessEdges = 1 // Iterate through neighbors, push unvisited to stack
	phasePostChild    = 2 // Return from child: update low-link, check articulation condition
	phaseFinalize     = 3 // Complete node processing: check root articulation, pop frame
)

// noParent marks DFS tree roots in the parent field.
const noParent = -1

// articulationFrame is a stack frame for iterative DFS.
// Using iterative DFS avoids stack overflow on deep graphs. The phase field
// controls which step of the algorithm executes next.
type articulationFrame struct {
	node       int
	parent     int
	edgeIndex  int // Current index into neighbors
	phase      int // One of phaseInit, phaseProcessEdges, phasePostChild, phaseFinalize
	child      int // Node we just returned from
	childCount int // Number of DFS tree children (for root check)
}

// Articulation finds cut vertices and bridges using Tarjan's algorithm.
//
// Description:
//
//	Runs iterative DFS (to avoid stack overflow on deep graphs) over the
//	undirected simple view of the graph: (u,v) and (v,u) collapse to one
//	edge and self-loops are dropped. One DFS tree is grown per connected
//	component, so disconnected graphs are fully covered.
//
//	A vertex v is an articulation point iff it is a DFS-tree root with more
//	than one child, or it is a non-root with a child u whose low-link is
//	>= disc(v), meaning u's subtree cannot reach any strict ancestor of v.
//	The parent edge is excluded from back-edge low-link updates. An edge
//	(v,u) is a bridge iff low(u) > disc(v).
//
// Outputs:
//
//   - *ArticulationResult: Points, bridges, and component count. Never nil.
//
// Thread Safety: Safe for concurrent use (read-only on graph).
//
// Complexity: O(V + E) time, O(V) space.
func (a *Analytics) Articulation(ctx context.Context) *ArticulationResult {
	ctx = ensureContext(ctx)
	start := time.Now()

	result := &ArticulationResult{
		Points:  make([]int, 0),
		Bridges: make([][2]int, 0),
	}

	n := a.g.NodeCount()
	ctx, span := articulationTracer.Start(ctx, "Analytics.Articulation",
		trace.WithAttributes(
			attribute.Int("node_count", n),
			attribute.Int("edge_count", a.g.EdgeCount()),
		),
	)
	defer span.End()

	if n == 0 {
		span.AddEvent("empty_graph")
		return result
	}

	neighbors := a.buildUndirectedAdjacency()

	result.NodeCount = n
	result.EdgeCount = undirectedEdgeCount(neighbors)

	discovery := make([]int, n)
	lowLink := make([]int, n)
	visited := make([]bool, n)
	isArticulation := make([]bool, n)

	timer := 0
	components := 0

	for startNode := 0; startNode < n; startNode++ {
		if visited[startNode] {
			continue
		}
		a.tarjanIterative(startNode, neighbors, discovery, lowLink, visited, isArticulation, &timer, result)
		components++
	}

	for v := 0; v < n; v++ {
		if isArticulation[v] {
			result.Points = append(result.Points, v)
		}
	}
	sort.Slice(result.Bridges, func(i, j int) bool {
		if result.Bridges[i][0] != result.Bridges[j][0] {
			return result.Bridges[i][0] < result.Bridges[j][0]
		}
		return result.Bridges[i][1] < result.Bridges[j][1]
	})

	result.Components = components

	span.AddEvent("algorithm_complete", trace.WithAttributes(
		attribute.Int("articulation_points", len(result.Points)),
		attribute.Int("bridges", len(result.Bridges)),
		attribute.Int("components", components),
	))
	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("articulation: analysis complete",
		slog.Int("points", len(result.Points)),
		slog.Int("bridges", len(result.Bridges)),
		slog.Int("components", components),
	)
	recordAlgorithmMetrics(ctx, "articulation", time.Since(start), len(result.Points))

	return result
}

// ArticulationPoints returns just the cut-vertex indices, ascending.
func (a *Analytics) ArticulationPoints(ctx context.Context) []int {
	return a.Articulation(ctx).Points
}

// Bridges returns just the cut edges in canonical (min, max) order.
func (a *Analytics) Bridges(ctx context.Context) [][2]int {
	return a.Articulation(ctx).Bridges
}

// tarjanIterative runs Tarjan's articulation/bridge DFS with an explicit stack.
//
// The phase-based state machine per stack frame simulates recursive
// call/return semantics without growing the call stack. State slices are
// shared across components and accumulated in place; the function processes
// the connected component containing startNode.
func (a *Analytics) tarjanIterative(
	startNode int,
	neighbors [][]int,
	discovery []int,
	lowLink []int,
	visited []bool,
	isArticulation []bool,
	timer *int,
	result *ArticulationResult,
) {
	stack := make([]articulationFrame, 0, 64)
	stack = append(stack, articulationFrame{
		node:   startNode,
		parent: noParent,
		phase:  phaseInit,
	})

	for len(stack) > 0 {
		frame := &stack[len(stack)-1]

		switch frame.phase {
		case phaseInit:
			visited[frame.node] = true
			discovery[frame.node] = *timer
			lowLink[frame.node] = *timer
			*timer++
			frame.childCount = 0
			frame.edgeIndex = 0
			frame.phase = phaseProcessEdges

		case phaseProcessEdges:
			nodeNeighbors := neighbors[frame.node]
			pushed := false
			for frame.edgeIndex < len(nodeNeighbors) {
				neighbor := nodeNeighbors[frame.edgeIndex]
				frame.edgeIndex++

				// Skip the parent edge (avoid going back).
				if neighbor == frame.parent {
					continue
				}

				if !visited[neighbor] {
					// Tree edge - descend.
					frame.phase = phasePostChild
					frame.child = neighbor
					frame.childCount++
					stack = append(stack, articulationFrame{
						node:   neighbor,
						parent: frame.node,
						phase:  phaseInit,
					})
					pushed = true
					break
				}
				// Back edge - update low-link.
				if discovery[neighbor] < lowLink[frame.node] {
					lowLink[frame.node] = discovery[neighbor]
				}
			}
			if !pushed {
				frame.phase = phaseFinalize
			}

		case phasePostChild:
			// Returned from child: pull up its low-link.
			if lowLink[frame.child] < lowLink[frame.node] {
				lowLink[frame.node] = lowLink[frame.child]
			}

			// Non-root articulation condition.
			if frame.parent != noParent && lowLink[frame.child] >= discovery[frame.node] {
				isArticulation[frame.node] = true
			}

			// Bridge condition.
			if lowLink[frame.child] > discovery[frame.node] {
				lo, hi := frame.node, frame.child
				if hi < lo {
					lo, hi = hi, lo
				}
				result.Bridges = append(result.Bridges, [2]int{lo, hi})
			}

			frame.phase = phaseProcessEdges

		case phaseFinalize:
			// Root is an articulation point iff it has 2+ DFS children.
			if frame.parent == noParent && frame.childCount >= 2 {
				isArticulation[frame.node] = true
			}
			stack = stack[:len(stack)-1]
		}
	}
}
