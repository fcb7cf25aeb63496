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
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vanderheijden86/b9s/telemetry"
)

// =============================================================================
// Elementary Cycle Enumeration (Johnson)
// =============================================================================

var cyclesTracer = otel.Tracer("graph.cycles")

// DefaultMaxCycles caps enumeration output. Dense strongly connected regions
// can hold exponentially many elementary cycles, so a hard cap is the only
// thing standing between this call and unbounded work.
const DefaultMaxCycles = 1000

// CycleEnumerationOptions configures cycle enumeration.
type CycleEnumerationOptions struct {
	// MaxCycles is the hard cap on cycles returned. Must be > 0.
	// Default: 1000.
	MaxCycles int
}

// Validate checks options and applies defaults for invalid values.
func (o *CycleEnumerationOptions) Validate() {
	if o.MaxCycles <= 0 {
		o.MaxCycles = DefaultMaxCycles
	}
}

// DefaultCycleEnumerationOptions returns sensible defaults.
func DefaultCycleEnumerationOptions() *CycleEnumerationOptions {
	return &CycleEnumerationOptions{MaxCycles: DefaultMaxCycles}
}

// CycleEnumeration contains the enumerated elementary cycles.
type CycleEnumeration struct {
	// Cycles lists each elementary cycle as node indices in path order,
	// starting from the cycle's minimal index. A self-loop is a
	// single-element cycle.
	Cycles [][]int

	// Truncated is true when enumeration stopped at the cap before
	// exhausting the graph's cycles.
	Truncated bool

	// Count is the number of cycles found so far (len(Cycles)).
	Count int
}

// circuitFrame is an explicit stack frame for Johnson's circuit search.
type circuitFrame struct {
	v     int
	ni    int
	found bool
}

// EnumerateCycles enumerates every elementary directed cycle.
//
// Description:
//
//	Johnson's algorithm. Search is restricted to one strongly connected
//	component at a time (from SCC; cycles never cross components), and
//	within a component each cycle is discovered exactly once from its
//	minimal vertex. The blocking set keeps a vertex already on the current
//	path from being revisited until backtracking clears its block list.
//	Both the circuit search and the unblock cascade run on explicit stacks,
//	so call-stack depth stays constant on pathologically deep inputs.
//
//	Self-loops are elementary cycles of length one and are reported first.
//
// Outputs:
//
//   - *CycleEnumeration: Cycles found, with Truncated set when the cap cut
//     enumeration short. Partial results are always returned. Never nil.
//
// Thread Safety: Safe for concurrent use (read-only on graph).
func (a *Analytics) EnumerateCycles(ctx context.Context, opts *CycleEnumerationOptions) *CycleEnumeration {
	ctx = ensureContext(ctx)
	start := time.Now()

	if opts == nil {
		opts = DefaultCycleEnumerationOptions()
	} else {
		opts.Validate()
	}

	n := a.g.NodeCount()
	ctx, span := cyclesTracer.Start(ctx, "Analytics.EnumerateCycles",
		trace.WithAttributes(
			attribute.Int("node_count", n),
			attribute.Int("edge_count", a.g.EdgeCount()),
			attribute.Int("max_cycles", opts.MaxCycles),
		),
	)
	defer span.End()

	result := &CycleEnumeration{Cycles: make([][]int, 0)}

	// Self-loops first: they are trivial elementary cycles and Johnson's
	// path search below skips them.
	for v := 0; v < n && !result.Truncated; v++ {
		if hasSelfLoop(a.g, v) {
			a.recordCycle(result, []int{v}, opts.MaxCycles)
		}
	}

	if !result.Truncated {
		scc := a.SCC(ctx)
		for _, component := range scc.Components {
			if len(component) < 2 {
				continue
			}
			members := append([]int(nil), component...)
			sort.Ints(members)

			inComponent := make([]bool, n)
			for _, v := range members {
				inComponent[v] = true
			}

			blocked := make([]bool, n)
			blockList := make([][]int, n)

			for _, s := range members {
				// Reset blocking state for this root; search only
				// touches vertices >= s inside the component.
				for _, v := range members {
					blocked[v] = false
					blockList[v] = blockList[v][:0]
				}
				a.circuit(s, inComponent, blocked, blockList, result, opts.MaxCycles)
				if result.Truncated {
					break
				}
			}
			if result.Truncated {
				break
			}
		}
	}

	result.Count = len(result.Cycles)

	span.SetAttributes(
		attribute.Int("cycles_found", result.Count),
		attribute.Bool("truncated", result.Truncated),
	)
	telemetry.LoggerWithTrace(ctx, slog.Default()).Debug("cycles: enumeration complete",
		slog.Int("cycles", result.Count),
		slog.Bool("truncated", result.Truncated),
	)
	recordAlgorithmMetrics(ctx, "enumerate_cycles", time.Since(start), result.Count)

	return result
}

// recordCycle appends a cycle unless the cap is already full, in which case
// the result is flagged truncated. The path is copied; callers may reuse it.
func (a *Analytics) recordCycle(result *CycleEnumeration, path []int, maxCycles int) {
	if len(result.Cycles) >= maxCycles {
		result.Truncated = true
		return
	}
	cycle := make([]int, len(path))
	copy(cycle, path)
	result.Cycles = append(result.Cycles, cycle)
}

// circuit runs Johnson's CIRCUIT(s) on an explicit stack, restricted to
// component vertices with index >= s. Cycles found are recorded on result;
// on truncation the search unwinds immediately.
func (a *Analytics) circuit(
	s int,
	inComponent []bool,
	blocked []bool,
	blockList [][]int,
	result *CycleEnumeration,
	maxCycles int,
) {
	frames := make([]circuitFrame, 0, 64)
	frames = append(frames, circuitFrame{v: s})
	path := make([]int, 0, 64)

	for len(frames) > 0 {
		frame := &frames[len(frames)-1]
		v := frame.v

		if frame.ni == 0 {
			path = append(path, v)
			blocked[v] = true
		}

		descended := false
		succs := a.g.Successors(v)
		for frame.ni < len(succs) {
			w := succs[frame.ni]
			frame.ni++

			// Stay inside the component, above the root, off self-loops.
			if w != s && (!inComponent[w] || w < s || w == v) {
				continue
			}

			if w == s {
				if w == v {
					continue // self-loop at the root, already reported
				}
				a.recordCycle(result, path, maxCycles)
				if result.Truncated {
					return
				}
				frame.found = true
				continue
			}

			if !blocked[w] {
				frames = append(frames, circuitFrame{v: w})
				descended = true
				break
			}
		}
		if descended {
			continue
		}

		// Backtrack from v.
		if frame.found {
			unblock(v, blocked, blockList)
		} else {
			for _, w := range succs {
				if w == s || w == v || !inComponent[w] || w < s {
					continue
				}
				if !containsInt(blockList[w], v) {
					blockList[w] = append(blockList[w], v)
				}
			}
		}

		path = path[:len(path)-1]
		found := frame.found
		frames = frames[:len(frames)-1]
		if found && len(frames) > 0 {
			frames[len(frames)-1].found = true
		}
	}
}

// unblock clears v's block and cascades through its block list iteratively.
func unblock(v int, blocked []bool, blockList [][]int) {
	stack := []int{v}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		blocked[u] = false
		for _, w := range blockList[u] {
			if blocked[w] {
				stack = append(stack, w)
			}
		}
		blockList[u] = blockList[u][:0]
	}
}

func containsInt(list []int, x int) bool {
	for _, v := range list {
		if v == x {
			return true
		}
	}
	return false
}
