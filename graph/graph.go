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

// =============================================================================
// Directed Graph Model
// =============================================================================

// Graph is a directed graph optimized for the analytics in this package.
//
// Description:
//
//	Stores adjacency lists for O(1) successor/predecessor access. Node keys
//	map to dense zero-based indices assigned at first insertion; the
//	index-key mapping is bijective and stable for the lifetime of the
//	instance (indices are never reused or renumbered).
//
// Thread Safety: Not safe for concurrent mutation. See the package doc.
type Graph struct {
	// nodes holds node keys in index order.
	nodes []string

	// index is the reverse lookup: key -> index.
	index map[string]int

	// adj is the forward adjacency: adj[u] lists nodes u points to.
	adj [][]int

	// radj is the reverse adjacency: radj[v] lists nodes pointing to v.
	radj [][]int

	// edgeCount is tracked incrementally, never recomputed.
	edgeCount int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
	}
}

// NewWithCapacity creates a graph with pre-allocated node capacity.
// The edge hint documents expected size; adjacency lists grow on demand.
func NewWithCapacity(nodeHint, edgeHint int) *Graph {
	_ = edgeHint
	if nodeHint < 0 {
		nodeHint = 0
	}
	return &Graph{
		nodes: make([]string, 0, nodeHint),
		index: make(map[string]int, nodeHint),
		adj:   make([][]int, 0, nodeHint),
		radj:  make([][]int, 0, nodeHint),
	}
}

// AddNode inserts a node and returns its index.
//
// Idempotent: inserting an existing key returns the existing index and
// leaves the graph unchanged.
func (g *Graph) AddNode(key string) int {
	if idx, ok := g.index[key]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, key)
	g.index[key] = idx
	g.adj = append(g.adj, nil)
	g.radj = append(g.radj, nil)
	return idx
}

// AddEdge inserts the directed edge from -> to.
//
// Idempotent and permissive: duplicate pairs are no-ops, and out-of-range
// endpoints are silently ignored rather than reported. The permissive
// contract keeps snapshot replay and host-supplied index lists total.
func (g *Graph) AddEdge(from, to int) {
	if from < 0 || to < 0 || from >= len(g.nodes) || to >= len(g.nodes) {
		return
	}
	// Linear dedup scan is fine for the degrees seen in dependency graphs.
	for _, w := range g.adj[from] {
		if w == to {
			return
		}
	}
	g.adj[from] = append(g.adj[from], to)
	g.radj[to] = append(g.radj[to], from)
	g.edgeCount++
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Density returns edges / (n*(n-1)) for n > 1, else 0.
func (g *Graph) Density() float64 {
	n := float64(len(g.nodes))
	if n <= 1 {
		return 0
	}
	return float64(g.edgeCount) / (n * (n - 1))
}

// NodeID returns the key at the given index.
func (g *Graph) NodeID(idx int) (string, bool) {
	if idx < 0 || idx >= len(g.nodes) {
		return "", false
	}
	return g.nodes[idx], true
}

// NodeIndex returns the index for the given key.
func (g *Graph) NodeIndex(key string) (int, bool) {
	idx, ok := g.index[key]
	return idx, ok
}

// NodeIDs returns all node keys in index order. The slice is a copy.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodes))
	copy(ids, g.nodes)
	return ids
}

// OutDegree returns the number of successors of a node, 0 if out of range.
func (g *Graph) OutDegree(idx int) int {
	if idx < 0 || idx >= len(g.adj) {
		return 0
	}
	return len(g.adj[idx])
}

// InDegree returns the number of predecessors of a node, 0 if out of range.
func (g *Graph) InDegree(idx int) int {
	if idx < 0 || idx >= len(g.radj) {
		return 0
	}
	return len(g.radj[idx])
}

// OutDegrees returns the out-degree of every node in index order.
func (g *Graph) OutDegrees() []int {
	degrees := make([]int, len(g.adj))
	for i, succs := range g.adj {
		degrees[i] = len(succs)
	}
	return degrees
}

// InDegrees returns the in-degree of every node in index order.
func (g *Graph) InDegrees() []int {
	degrees := make([]int, len(g.radj))
	for i, preds := range g.radj {
		degrees[i] = len(preds)
	}
	return degrees
}

// Successors returns the successor list of a node as a read-only view.
// Callers must not modify the returned slice. Out-of-range indices yield nil.
func (g *Graph) Successors(idx int) []int {
	if idx < 0 || idx >= len(g.adj) {
		return nil
	}
	return g.adj[idx]
}

// Predecessors returns the predecessor list of a node as a read-only view.
// Callers must not modify the returned slice. Out-of-range indices yield nil.
func (g *Graph) Predecessors(idx int) []int {
	if idx < 0 || idx >= len(g.radj) {
		return nil
	}
	return g.radj[idx]
}

// Edges returns every directed edge as (from, to) pairs in from-major order.
// The slice is freshly allocated.
func (g *Graph) Edges() [][2]int {
	edges := make([][2]int, 0, g.edgeCount)
	for from, succs := range g.adj {
		for _, to := range succs {
			edges = append(edges, [2]int{from, to})
		}
	}
	return edges
}
