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

func TestBetweenness_Path(t *testing.T) {
	// 0 -> 1 -> 2: only node 1 lies between another pair.
	a := NewAnalytics(buildTestGraph(3, [][2]int{{0, 1}, {1, 2}}))

	bc := a.Betweenness(context.Background())

	want := []float64{0, 1, 0}
	for v := range want {
		if math.Abs(bc[v]-want[v]) > 1e-12 {
			t.Errorf("bc[%d] = %v, want %v", v, bc[v], want[v])
		}
	}
}

func TestBetweenness_LongerChain(t *testing.T) {
	// 0 -> 1 -> 2 -> 3: node 1 sits on paths 0->2, 0->3; node 2 on 0->3, 1->3.
	a := NewAnalytics(buildTestGraph(4, [][2]int{{0, 1}, {1, 2}, {2, 3}}))

	bc := a.Betweenness(context.Background())

	want := []float64{0, 2, 2, 0}
	for v := range want {
		if math.Abs(bc[v]-want[v]) > 1e-12 {
			t.Errorf("bc[%d] = %v, want %v", v, bc[v], want[v])
		}
	}
}

func TestBetweenness_SplitPaths(t *testing.T) {
	// Diamond 0 -> {1,2} -> 3: the pair (0,3) has two shortest paths, so
	// each middle node accumulates half a path.
	a := NewAnalytics(buildTestGraph(4, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}))

	bc := a.Betweenness(context.Background())

	if math.Abs(bc[1]-0.5) > 1e-12 || math.Abs(bc[2]-0.5) > 1e-12 {
		t.Errorf("expected 0.5 for both middle nodes, got %v", bc)
	}
	if bc[0] != 0 || bc[3] != 0 {
		t.Errorf("endpoints should have zero betweenness, got %v", bc)
	}
}

func TestBetweenness_EmptyGraph(t *testing.T) {
	a := NewAnalytics(New())

	if bc := a.Betweenness(context.Background()); len(bc) != 0 {
		t.Errorf("expected empty result, got %v", bc)
	}
}

func TestBetweennessApprox_FullSampleMatchesExact(t *testing.T) {
	a := NewAnalytics(buildTestGraph(6, [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {0, 3}, {1, 4},
	}))

	exact := a.Betweenness(context.Background())
	full := a.BetweennessApprox(context.Background(), &BetweennessOptions{SampleSize: 6})

	for v := range exact {
		if exact[v] != full[v] {
			t.Errorf("full sample must agree exactly at node %d: %v vs %v",
				v, exact[v], full[v])
		}
	}
}

func TestBetweennessApprox_ZeroSampleFallsBackToExact(t *testing.T) {
	a := NewAnalytics(buildTestGraph(4, [][2]int{{0, 1}, {1, 2}, {2, 3}}))

	exact := a.Betweenness(context.Background())
	approx := a.BetweennessApprox(context.Background(), nil)

	for v := range exact {
		if exact[v] != approx[v] {
			t.Errorf("nil options should run exact, node %d: %v vs %v",
				v, exact[v], approx[v])
		}
	}
}

func TestBetweennessApprox_Deterministic(t *testing.T) {
	a := NewAnalytics(buildTestGraph(8, [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 5}, {5, 6}, {6, 7}, {0, 4},
	}))
	opts := &BetweennessOptions{SampleSize: 3, Seed: 42}

	first := a.BetweennessApprox(context.Background(), opts)
	second := a.BetweennessApprox(context.Background(), opts)

	for v := range first {
		if first[v] != second[v] {
			t.Errorf("same seed must reproduce scores, node %d: %v vs %v",
				v, first[v], second[v])
		}
	}
}

func TestBetweennessApprox_ErrorShrinksWithSampleSize(t *testing.T) {
	// Layered synthetic graph large enough for sampling to matter.
	edges := make([][2]int, 0)
	n := 120
	for i := 0; i < n-1; i++ {
		edges = append(edges, [2]int{i, i + 1})
		if i+10 < n {
			edges = append(edges, [2]int{i, i + 10})
		}
	}
	a := NewAnalytics(buildTestGraph(n, edges))

	exact := a.Betweenness(context.Background())

	// Average over several seeds so the comparison reflects expected error
	// rather than one draw.
	avgError := func(k int) float64 {
		total := 0.0
		seeds := []int64{1, 2, 3, 4, 5, 6, 7}
		for _, seed := range seeds {
			approx := a.BetweennessApprox(context.Background(), &BetweennessOptions{
				SampleSize: k,
				Seed:       seed,
			})
			for v := range exact {
				total += math.Abs(approx[v] - exact[v])
			}
		}
		return total / float64(len(exact)*len(seeds))
	}

	err10 := avgError(10)
	err50 := avgError(50)
	err100 := avgError(100)

	if err50 > err10 {
		t.Errorf("expected error at k=50 (%v) <= error at k=10 (%v)", err50, err10)
	}
	if err100 > err50 {
		t.Errorf("expected error at k=100 (%v) <= error at k=50 (%v)", err100, err50)
	}
}

func TestRecommendSampleSize(t *testing.T) {
	tests := []struct {
		name      string
		nodeCount int
		epsilon   float64
		want      int
	}{
		{name: "default epsilon", nodeCount: 1000, epsilon: 0, want: 100},
		{name: "tight epsilon clamped to node count", nodeCount: 50, epsilon: 0.01, want: 50},
		{name: "loose epsilon floored at 10", nodeCount: 1000, epsilon: 0.9, want: 10},
		{name: "explicit epsilon", nodeCount: 10000, epsilon: 0.05, want: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecommendSampleSize(tt.nodeCount, tt.epsilon); got != tt.want {
				t.Errorf("RecommendSampleSize(%d, %v) = %d, want %d",
					tt.nodeCount, tt.epsilon, got, tt.want)
			}
		})
	}
}
