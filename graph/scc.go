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
// Strongly Connected Components (Tarjan)
// =============================================================================

var sccTracer = otel.Tracer("graph.scc")

// SCCResult contains the strongly-connected-component decomposition.
type SCCResult struct {
	// Components partitions all node indices into strongly connected
	// components, in order of completion by the DFS.
	Components [][]int

	// HasCycles is true iff any component has size > 1 or any node
	// carries a self-loop.
	HasCycles bool

	// CycleCount is the number of cyclic components: components of size
	// > 1 plus singletons with a self-loop.
	CycleCount int
}

// sccFrame is an explicit stack frame for iterative Tarjan DFS.
// The neighbor cursor ni replaces the implicit loop position a recursive
// implementation keeps on the call stack.
type sccFrame struct {
	v  int
	ni int
}

// SCC computes strongly connected components using Tarjan's algorithm.
//
// Description:
//
//	Single DFS pass with explicit low-link and on-stack tracking. The DFS
//	uses an explicit frame stack instead of recursion so call-stack depth
//	stays constant regardless of graph depth.
//
// Outputs:
//
//   - *SCCResult: The component partition plus cycle summary. Never nil.
//
// Thread Safety: Safe for concurrent use (read-only on graph).
//
// Complexity: O(V + E) time, O(V) space.
func (a *Analytics) SCC(ctx context.Context) *SCCResult {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	ctx, span := sccTracer.Start(ctx, "Analytics.SCC",
		trace.WithAttributes(
			attribute.Int("node_count", n),
			attribute.Int("edge_count", a.g.EdgeCount()),
		),
	)
	defer span.End()

	result := &SCCResult{Components: make([][]int, 0)}

	disc := make([]int, n)
	low := make([]int, n)
	onStack := make([]bool, n)
	for v := 0; v < n; v++ {
		disc[v] = -1
	}

	timer := 0
	tarjanStack := make([]int, 0, n)

	for startNode := 0; startNode < n; startNode++ {
		if disc[startNode] != -1 {
			continue
		}

		frames := make([]sccFrame, 0, 64)
		frames = append(frames, sccFrame{v: startNode})

		for len(frames) > 0 {
			frame := &frames[len(frames)-1]
			v := frame.v

			if frame.ni == 0 {
				disc[v] = timer
				low[v] = timer
				timer++
				tarjanStack = append(tarjanStack, v)
				onStack[v] = true
			}

			advanced := false
			succs := a.g.Successors(v)
			for frame.ni < len(succs) {
				w := succs[frame.ni]
				frame.ni++
				if disc[w] == -1 {
					frames = append(frames, sccFrame{v: w})
					advanced = true
					break
				}
				if onStack[w] && disc[w] < low[v] {
					low[v] = disc[w]
				}
			}
			if advanced {
				continue
			}

			// All successors explored: close out v.
			if low[v] == disc[v] {
				component := make([]int, 0, 4)
				for {
					w := tarjanStack[len(tarjanStack)-1]
					tarjanStack = tarjanStack[:len(tarjanStack)-1]
					onStack[w] = false
					component = append(component, w)
					if w == v {
						break
					}
				}
				result.Components = append(result.Components, component)
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := &frames[len(frames)-1]
				if low[v] < low[parent.v] {
					low[parent.v] = low[v]
				}
			}
		}
	}

	for _, component := range result.Components {
		if len(component) > 1 || hasSelfLoop(a.g, component[0]) {
			result.CycleCount++
		}
	}
	result.HasCycles = result.CycleCount > 0

	span.SetAttributes(
		attribute.Int("components", len(result.Components)),
		attribute.Int("cycle_count", result.CycleCount),
	)
	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("scc: decomposition complete",
		slog.Int("components", len(result.Components)),
		slog.Int("cycle_count", result.CycleCount),
	)
	recordAlgorithmMetrics(ctx, "scc", time.Since(start), len(result.Components))

	return result
}

// HasCycles reports whether the graph contains any directed cycle.
func (a *Analytics) HasCycles(ctx context.Context) bool {
	return a.SCC(ctx).HasCycles
}

// hasSelfLoop reports whether v has an edge to itself.
func hasSelfLoop(g *Graph, v int) bool {
	for _, w := range g.Successors(v) {
		if w == v {
			return true
		}
	}
	return false
}
