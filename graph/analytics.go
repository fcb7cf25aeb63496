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
	"sort"
)

// =============================================================================
// Analytics Facade
// =============================================================================

// Analytics provides analytical queries over a dependency graph.
//
// Description:
//
//	Analytics borrows a *Graph read-only and exposes every algorithm in
//	this package as a method: structural decomposition (topological sort,
//	SCC, articulation points, bridges, cycle enumeration), centrality
//	ranking (PageRank, eigenvector, HITS, betweenness), scheduling metrics
//	(critical path, slack), approximation (vertex cover, k-core), and
//	subgraph extraction.
//
//	Methods accept a context.Context used solely for trace-span propagation
//	and log correlation. Every operation runs synchronously to completion
//	on the caller's goroutine; the only safety valves against unbounded
//	work are the bounded iteration counts and cycle caps in the per-method
//	option structs.
//
// Thread Safety:
//
//	Safe for concurrent use once the underlying graph is no longer being
//	mutated. No method mutates the graph.
type Analytics struct {
	g *Graph
}

// NewAnalytics creates an analytics instance for the given graph.
// Returns nil if graph is nil.
func NewAnalytics(g *Graph) *Analytics {
	if g == nil {
		return nil
	}
	return &Analytics{g: g}
}

// Graph returns the underlying graph.
func (a *Analytics) Graph() *Graph {
	return a.g
}

// buildUndirectedAdjacency creates neighbor lists treating edges as
// undirected. The pair (u,v)/(v,u) collapses to one edge and self-loops are
// dropped, giving the simple-graph view required by articulation points,
// bridges, and k-core.
//
// Neighbor lists are sorted ascending so DFS traversal order, and with it
// every reported result, is deterministic.
func (a *Analytics) buildUndirectedAdjacency() [][]int {
	n := a.g.NodeCount()
	sets := make([]map[int]struct{}, n)
	for u := 0; u < n; u++ {
		sets[u] = make(map[int]struct{})
	}
	for u := 0; u < n; u++ {
		for _, v := range a.g.Successors(u) {
			if u == v {
				continue
			}
			sets[u][v] = struct{}{}
			sets[v][u] = struct{}{}
		}
	}
	neighbors := make([][]int, n)
	for u, set := range sets {
		list := make([]int, 0, len(set))
		for v := range set {
			list = append(list, v)
		}
		sort.Ints(list)
		neighbors[u] = list
	}
	return neighbors
}

// undirectedEdgeCount returns the edge count of the undirected simple view.
func undirectedEdgeCount(neighbors [][]int) int {
	total := 0
	for _, list := range neighbors {
		total += len(list)
	}
	return total / 2
}

// =============================================================================
// Hotspot Detection
// =============================================================================

// HotspotNode is a node with its connectivity score.
type HotspotNode struct {
	// Node is the node index.
	Node int

	// Score is the connectivity score (higher = more connected).
	// Computed as: inDegree*2 + outDegree.
	Score int

	// InDegree is the number of incoming edges.
	InDegree int

	// OutDegree is the number of outgoing edges.
	OutDegree int
}

// HotSpots returns the top N most-connected nodes.
//
// Incoming edges are weighted double because many dependents indicate a
// node whose completion unblocks the most downstream work. Ties break by
// ascending index for stable output.
func (a *Analytics) HotSpots(top int) []HotspotNode {
	if top <= 0 {
		return []HotspotNode{}
	}

	n := a.g.NodeCount()
	hotspots := make([]HotspotNode, 0, n)
	for v := 0; v < n; v++ {
		hs := HotspotNode{
			Node:      v,
			InDegree:  a.g.InDegree(v),
			OutDegree: a.g.OutDegree(v),
		}
		hs.Score = hs.InDegree*2 + hs.OutDegree
		hotspots = append(hotspots, hs)
	}

	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].Score != hotspots[j].Score {
			return hotspots[i].Score > hotspots[j].Score
		}
		return hotspots[i].Node < hotspots[j].Node
	})

	if top > len(hotspots) {
		top = len(hotspots)
	}
	return hotspots[:top]
}
