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
// Greedy Vertex Cover (Coverage Set)
// =============================================================================

var coverageTracer = otel.Tracer("graph.coverage")

// DefaultCoverageLimit is the default maximum number of nodes selected for
// a coverage set.
const DefaultCoverageLimit = 10

// CoverageItem is a single selection step in a coverage set.
type CoverageItem struct {
	// Node is the selected node index.
	Node int

	// EdgesAdded is the number of previously uncovered edges this
	// selection covered.
	EdgesAdded int
}

// CoverageResult contains the output of the greedy vertex cover.
type CoverageResult struct {
	// Items lists the selected nodes in selection order with their
	// per-step contribution.
	Items []CoverageItem

	// EdgesCovered is the total number of edges covered by the selection.
	EdgesCovered int

	// TotalEdges is the edge count of the graph.
	TotalEdges int

	// CoverageRatio is EdgesCovered / TotalEdges, or 1.0 when the graph
	// has no edges (nothing needs covering).
	CoverageRatio float64
}

// CoverageSet computes a greedy 2-approximation vertex cover.
//
// Description:
//
//	Repeatedly selects the node touching the most currently uncovered
//	edges (outgoing plus incoming), marks those edges covered, and stops
//	when the limit is reached or every edge is covered. Ties break toward
//	the lowest node index. limit <= 0 uses DefaultCoverageLimit.
//
// Outputs:
//
//   - *CoverageResult: Selection steps plus aggregate coverage stats.
//     Never nil.
//
// Thread Safety: Safe for concurrent use.
//
// Complexity: O(limit × (V + E)).
func (a *Analytics) CoverageSet(ctx context.Context, limit int) *CoverageResult {
	ctx = ensureContext(ctx)
	start := time.Now()

	n := a.g.NodeCount()
	totalEdges := a.g.EdgeCount()
	ctx, span := coverageTracer.Start(ctx, "Analytics.CoverageSet",
		trace.WithAttributes(
			attribute.Int("node_count", n),
			attribute.Int("edge_count", totalEdges),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	if limit <= 0 {
		limit = DefaultCoverageLimit
	}

	if n == 0 || totalEdges == 0 {
		return &CoverageResult{
			Items:         []CoverageItem{},
			TotalEdges:    totalEdges,
			CoverageRatio: 1.0,
		}
	}

	covered := make(map[[2]int]bool, totalEdges)
	items := make([]CoverageItem, 0, min(limit, n))
	edgesCovered := 0

	for step := 0; step < limit; step++ {
		bestNode := -1
		bestCount := 0

		for v := 0; v < n; v++ {
			count := 0
			for _, w := range a.g.Successors(v) {
				if !covered[[2]int{v, w}] {
					count++
				}
			}
			for _, u := range a.g.Predecessors(v) {
				if !covered[[2]int{u, v}] {
					count++
				}
			}
			if count > bestCount {
				bestCount = count
				bestNode = v
			}
		}

		if bestNode < 0 || bestCount == 0 {
			break
		}

		for _, w := range a.g.Successors(bestNode) {
			covered[[2]int{bestNode, w}] = true
		}
		for _, u := range a.g.Predecessors(bestNode) {
			covered[[2]int{u, bestNode}] = true
		}

		items = append(items, CoverageItem{Node: bestNode, EdgesAdded: bestCount})
		edgesCovered += bestCount
	}

	ratio := 1.0
	if totalEdges > 0 {
		ratio = float64(edgesCovered) / float64(totalEdges)
	}

	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("coverage: completed",
		slog.Int("selected", len(items)),
		slog.Int("edges_covered", edgesCovered),
		slog.Int("total_edges", totalEdges),
	)
	span.SetAttributes(
		attribute.Int("selected", len(items)),
		attribute.Float64("coverage_ratio", ratio),
	)
	recordAlgorithmMetrics(ctx, "coverage_set", time.Since(start), len(items))

	return &CoverageResult{
		Items:         items,
		EdgesCovered:  edgesCovered,
		TotalEdges:    totalEdges,
		CoverageRatio: ratio,
	}
}

// CoverageNodes returns only the selected node indices from a coverage set
// computation, in selection order.
func (a *Analytics) CoverageNodes(ctx context.Context, limit int) []int {
	result := a.CoverageSet(ctx, limit)
	nodes := make([]int, 0, len(result.Items))
	for _, item := range result.Items {
		nodes = append(nodes, item.Node)
	}
	return nodes
}
