// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package graph provides a directed dependency graph and the analytics
// algorithms that operate on it.
//
// Nodes are work items identified by string keys (issue IDs such as "bv-123")
// and are assigned dense zero-based indices in insertion order. Edges are
// directed, unweighted, and deduplicated. All algorithms read the graph
// through the Analytics facade and return independently owned results.
//
// # Ownership Model
//
// The graph owns all node and edge storage:
//   - Successors()/Predecessors() return internal adjacency slices as
//     read-only views; callers MUST NOT modify them
//   - Every algorithm result (score vectors, component lists, subgraphs)
//     is freshly allocated and never aliases graph internals
//
// # Thread Safety
//
// Graph is NOT safe for concurrent mutation. The intended lifecycle is:
//  1. Build with AddNode() and AddEdge() calls (single writer)
//  2. Analyze through Analytics (read-only; safe to share once building stops)
//
// No internal locking is provided; a host embedding this package must
// serialize access if it mutates and analyzes from multiple goroutines.
//
// # Error Handling
//
// Malformed indices are silently ignored on insertion (a deliberate
// permissive contract inherited from the snapshot replay path), malformed
// snapshots fail with ErrMalformedSnapshot, and analyses that are undefined
// for an input (scheduling on a cyclic graph, topological sort of a cycle)
// report a sentinel empty/zero result instead of an error.
package graph

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrMalformedSnapshot is returned when snapshot bytes cannot be decoded
	// into a node list plus edge-pair list.
	ErrMalformedSnapshot = errors.New("malformed graph snapshot")
)
