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
	"encoding/json"
	"fmt"
)

// =============================================================================
// Snapshot Export / Import
// =============================================================================

// Snapshot is the flat serialized form of a graph: an ordered node key list
// plus an edge-pair list. Importing a snapshot replays node and edge
// insertion in snapshot order, so indices are deterministic from snapshot
// content alone and round-trips preserve them exactly.
type Snapshot struct {
	Nodes []string `json:"nodes"`
	Edges [][2]int `json:"edges"`
}

// Snapshot exports the graph structure. The result owns its storage.
func (g *Graph) Snapshot() *Snapshot {
	return &Snapshot{
		Nodes: g.NodeIDs(),
		Edges: g.Edges(),
	}
}

// ToJSON serializes the graph snapshot.
func (g *Graph) ToJSON() ([]byte, error) {
	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// FromSnapshot reconstructs a graph from a snapshot.
//
// Edge pairs referencing indices outside the node list fall under the
// permissive AddEdge contract and are dropped silently.
func FromSnapshot(s *Snapshot) *Graph {
	if s == nil {
		return New()
	}
	g := NewWithCapacity(len(s.Nodes), len(s.Edges))
	for _, key := range s.Nodes {
		g.AddNode(key)
	}
	for _, e := range s.Edges {
		g.AddEdge(e[0], e[1])
	}
	return g
}

// FromJSON reconstructs a graph from snapshot bytes.
//
// Returns ErrMalformedSnapshot (wrapping the decode error) if the bytes are
// not a structurally valid snapshot. Never panics on malformed input.
func FromJSON(data []byte) (*Graph, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return FromSnapshot(&s), nil
}
