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

func TestHITSOptions_Validate(t *testing.T) {
	opts := HITSOptions{MaxIterations: -1, Tolerance: 0}
	opts.Validate()

	if opts.MaxIterations != DefaultHITSMaxIterations {
		t.Errorf("MaxIterations = %d, want %d", opts.MaxIterations, DefaultHITSMaxIterations)
	}
	if opts.Tolerance != DefaultHITSTolerance {
		t.Errorf("Tolerance = %v, want %v", opts.Tolerance, DefaultHITSTolerance)
	}
}

func TestHITS_EmptyGraph(t *testing.T) {
	a := NewAnalytics(New())

	result := a.HITS(context.Background(), nil)

	if result == nil {
		t.Fatal("expected non-nil result")
	}
	if len(result.Hubs) != 0 || len(result.Authorities) != 0 {
		t.Errorf("expected empty vectors, got %+v", result)
	}
}

func TestHITS_StarHubAndAuthorities(t *testing.T) {
	// 0 points at 1..3: node 0 is the hub, the leaves are authorities.
	a := NewAnalytics(buildTestGraph(4, [][2]int{{0, 1}, {0, 2}, {0, 3}}))

	result := a.HITS(context.Background(), nil)

	if result.Hubs[0] <= result.Hubs[1] {
		t.Errorf("expected node 0 to be the dominant hub: %v", result.Hubs)
	}
	if result.Authorities[0] != 0 {
		t.Errorf("node 0 has no predecessors, authority should be 0, got %v",
			result.Authorities[0])
	}
	for v := 2; v <= 3; v++ {
		if math.Abs(result.Authorities[v]-result.Authorities[1]) > 1e-9 {
			t.Errorf("expected equal leaf authorities, got %v", result.Authorities)
		}
	}
}

func TestHITS_ReversedStar(t *testing.T) {
	// 1..3 point at 0: node 0 is the authority, leaves are hubs.
	a := NewAnalytics(buildTestGraph(4, [][2]int{{1, 0}, {2, 0}, {3, 0}}))

	result := a.HITS(context.Background(), nil)

	if result.Authorities[0] <= result.Authorities[1] {
		t.Errorf("expected node 0 to be the dominant authority: %v", result.Authorities)
	}
	if result.Hubs[0] != 0 {
		t.Errorf("node 0 has no successors, hub should be 0, got %v", result.Hubs[0])
	}
}

func TestHITS_UnitNorms(t *testing.T) {
	a := NewAnalytics(buildTestGraph(4, [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {0, 3},
	}))

	result := a.HITS(context.Background(), nil)

	for name, vec := range map[string][]float64{
		"hubs":        result.Hubs,
		"authorities": result.Authorities,
	} {
		norm := 0.0
		for _, s := range vec {
			norm += s * s
		}
		if math.Abs(math.Sqrt(norm)-1.0) > 1e-9 {
			t.Errorf("%s norm = %v, want 1.0", name, math.Sqrt(norm))
		}
	}
}

func TestHITS_ReportsIterations(t *testing.T) {
	a := NewAnalytics(buildTestGraph(3, [][2]int{{0, 1}, {1, 2}}))

	result := a.HITS(context.Background(), &HITSOptions{MaxIterations: 5, Tolerance: 1e-15})

	if result.Iterations < 1 || result.Iterations > 5 {
		t.Errorf("Iterations = %d, want within [1, 5]", result.Iterations)
	}
}
