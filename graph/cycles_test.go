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
	"reflect"
	"testing"
)

func TestEnumerateCycles_DAG(t *testing.T) {
	a := NewAnalytics(buildTestGraph(3, [][2]int{{0, 1}, {1, 2}}))

	result := a.EnumerateCycles(context.Background(), nil)

	if result.Count != 0 || len(result.Cycles) != 0 {
		t.Errorf("DAG should have no cycles, got %+v", result)
	}
	if result.Truncated {
		t.Error("DAG enumeration should not be truncated")
	}
}

func TestEnumerateCycles_Triangle(t *testing.T) {
	a := NewAnalytics(buildTestGraph(3, [][2]int{{0, 1}, {1, 2}, {2, 0}}))

	result := a.EnumerateCycles(context.Background(), nil)

	if result.Count != 1 {
		t.Fatalf("expected 1 cycle, got %d: %v", result.Count, result.Cycles)
	}
	if !reflect.DeepEqual(result.Cycles[0], []int{0, 1, 2}) {
		t.Errorf("Cycles[0] = %v, want [0 1 2]", result.Cycles[0])
	}
}

func TestEnumerateCycles_SelfLoop(t *testing.T) {
	a := NewAnalytics(buildTestGraph(2, [][2]int{{0, 0}, {0, 1}}))

	result := a.EnumerateCycles(context.Background(), nil)

	if result.Count != 1 {
		t.Fatalf("expected 1 cycle, got %d: %v", result.Count, result.Cycles)
	}
	if !reflect.DeepEqual(result.Cycles[0], []int{0}) {
		t.Errorf("self-loop cycle = %v, want [0]", result.Cycles[0])
	}
}

func TestEnumerateCycles_TwoCycle(t *testing.T) {
	a := NewAnalytics(buildTestGraph(2, [][2]int{{0, 1}, {1, 0}}))

	result := a.EnumerateCycles(context.Background(), nil)

	if result.Count != 1 {
		t.Fatalf("expected 1 cycle, got %d: %v", result.Count, result.Cycles)
	}
	if !reflect.DeepEqual(result.Cycles[0], []int{0, 1}) {
		t.Errorf("Cycles[0] = %v, want [0 1]", result.Cycles[0])
	}
}

func TestEnumerateCycles_NestedCycles(t *testing.T) {
	// Complete digraph on {0,1,2}: cycles are the three 2-cycles plus
	// two triangle orientations.
	a := NewAnalytics(buildTestGraph(3, [][2]int{
		{0, 1}, {1, 0},
		{1, 2}, {2, 1},
		{0, 2}, {2, 0},
	}))

	result := a.EnumerateCycles(context.Background(), nil)

	if result.Count != 5 {
		t.Errorf("expected 5 elementary cycles, got %d: %v", result.Count, result.Cycles)
	}
	if result.Truncated {
		t.Error("enumeration should not be truncated below the cap")
	}
}

func TestEnumerateCycles_SharedNodeCycles(t *testing.T) {
	// Two directed triangles sharing node 0.
	a := NewAnalytics(buildTestGraph(5, [][2]int{
		{0, 1}, {1, 2}, {2, 0},
		{0, 3}, {3, 4}, {4, 0},
	}))

	result := a.EnumerateCycles(context.Background(), nil)

	if result.Count != 2 {
		t.Errorf("expected 2 cycles, got %d: %v", result.Count, result.Cycles)
	}
}

func TestEnumerateCycles_Truncation(t *testing.T) {
	a := NewAnalytics(buildTestGraph(3, [][2]int{
		{0, 1}, {1, 0},
		{1, 2}, {2, 1},
		{0, 2}, {2, 0},
	}))

	result := a.EnumerateCycles(context.Background(), &CycleEnumerationOptions{MaxCycles: 2})

	if result.Count != 2 {
		t.Errorf("expected exactly 2 cycles at the cap, got %d", result.Count)
	}
	if !result.Truncated {
		t.Error("expected truncation flag when more cycles exist than the cap")
	}
}

func TestEnumerateCycles_DefaultOptions(t *testing.T) {
	opts := DefaultCycleEnumerationOptions()
	if opts.MaxCycles != DefaultMaxCycles {
		t.Errorf("MaxCycles = %d, want %d", opts.MaxCycles, DefaultMaxCycles)
	}

	bad := &CycleEnumerationOptions{MaxCycles: -1}
	bad.Validate()
	if bad.MaxCycles != DefaultMaxCycles {
		t.Errorf("Validate left MaxCycles = %d, want %d", bad.MaxCycles, DefaultMaxCycles)
	}
}

func TestEnumerateCycles_EmptyGraph(t *testing.T) {
	a := NewAnalytics(New())

	result := a.EnumerateCycles(context.Background(), nil)

	if result.Count != 0 || result.Truncated {
		t.Errorf("unexpected result for empty graph: %+v", result)
	}
}
