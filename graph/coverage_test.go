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
	"math"
	"testing"
)

func TestCoverageSet_EmptyGraph(t *testing.T) {
	a := NewAnalytics(New())

	result := a.CoverageSet(context.Background(), 5)

	if len(result.Items) != 0 {
		t.Errorf("expected no selections, got %v", result.Items)
	}
	if result.CoverageRatio != 1.0 {
		t.Errorf("zero edges should report ratio 1.0, got %v", result.CoverageRatio)
	}
}

func TestCoverageSet_NoEdges(t *testing.T) {
	a := NewAnalytics(buildTestGraph(3, nil))

	result := a.CoverageSet(context.Background(), 5)

	if len(result.Items) != 0 || result.CoverageRatio != 1.0 {
		t.Errorf("nothing to cover: %+v", result)
	}
}

func TestCoverageSet_SingleEdge(t *testing.T) {
	a := NewAnalytics(buildTestGraph(2, [][2]int{{0, 1}}))

	result := a.CoverageSet(context.Background(), 5)

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(result.Items))
	}
	if result.EdgesCovered != 1 || result.CoverageRatio != 1.0 {
		t.Errorf("expected full coverage, got %+v", result)
	}
}

func TestCoverageSet_StarHubFirst(t *testing.T) {
	// Hub 0 with 4 leaves: the hub covers everything in one pick.
	a := NewAnalytics(buildTestGraph(5, [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}}))

	result := a.CoverageSet(context.Background(), 5)

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(result.Items))
	}
	if result.Items[0].Node != 0 {
		t.Errorf("expected hub selected first, got node %d", result.Items[0].Node)
	}
	if result.Items[0].EdgesAdded != 4 {
		t.Errorf("expected hub to cover 4 edges, got %d", result.Items[0].EdgesAdded)
	}
	if result.CoverageRatio != 1.0 {
		t.Errorf("expected full coverage, got %v", result.CoverageRatio)
	}
}

func TestCoverageSet_LimitRespected(t *testing.T) {
	// Three disconnected edges: each pick covers one.
	a := NewAnalytics(buildTestGraph(6, [][2]int{{0, 1}, {2, 3}, {4, 5}}))

	result := a.CoverageSet(context.Background(), 1)

	if len(result.Items) != 1 {
		t.Fatalf("expected limit of 1 selection, got %d", len(result.Items))
	}
	if result.EdgesCovered != 1 {
		t.Errorf("EdgesCovered = %d, want 1", result.EdgesCovered)
	}
	if math.Abs(result.CoverageRatio-1.0/3.0) > 1e-9 {
		t.Errorf("CoverageRatio = %v, want 1/3", result.CoverageRatio)
	}
}

func TestCoverageSet_EdgesCoveredNeverExceedsTotal(t *testing.T) {
	a := NewAnalytics(buildTestGraph(4, [][2]int{
		{0, 1}, {1, 0}, {1, 2}, {2, 3}, {3, 1},
	}))

	result := a.CoverageSet(context.Background(), 10)

	if result.EdgesCovered > result.TotalEdges {
		t.Errorf("EdgesCovered %d > TotalEdges %d", result.EdgesCovered, result.TotalEdges)
	}
	if result.CoverageRatio > 1.0 {
		t.Errorf("CoverageRatio = %v, want <= 1.0", result.CoverageRatio)
	}
}

func TestCoverageSet_BidirectionalPairSinglePick(t *testing.T) {
	a := NewAnalytics(buildTestGraph(2, [][2]int{{0, 1}, {1, 0}}))

	result := a.CoverageSet(context.Background(), 5)

	if len(result.Items) != 1 {
		t.Fatalf("one node covers both directions, got %d selections", len(result.Items))
	}
	if result.EdgesCovered != 2 {
		t.Errorf("EdgesCovered = %d, want 2", result.EdgesCovered)
	}
}

func TestCoverageSet_DefaultLimit(t *testing.T) {
	// 15 disconnected edges: the default limit stops at 10 picks.
	edges := make([][2]int, 0, 15)
	for i := 0; i < 15; i++ {
		edges = append(edges, [2]int{2 * i, 2*i + 1})
	}
	a := NewAnalytics(buildTestGraph(30, edges))

	result := a.CoverageSet(context.Background(), 0)

	if len(result.Items) != DefaultCoverageLimit {
		t.Errorf("expected default limit of %d selections, got %d",
			DefaultCoverageLimit, len(result.Items))
	}
}

func TestCoverageNodes(t *testing.T) {
	a := NewAnalytics(buildTestGraph(4, [][2]int{{0, 1}, {0, 2}, {0, 3}}))

	nodes := a.CoverageNodes(context.Background(), 5)

	if len(nodes) != 1 || nodes[0] != 0 {
		t.Errorf("CoverageNodes = %v, want [0]", nodes)
	}
}
