// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stategraph implements the graph
// of ancestral range states
// used as the support of a transport problem.
//
// A state is a bitmask over the regions of an analysis:
// the bit k is set if the region k is part of the range.
// Two states are connected if they differ in exactly one region.
// The empty range (state 0) can receive mass,
// but it is never the source of an edge.
package stategraph

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// MaxRegions is the maximum number of regions
// accepted for a state graph.
const MaxRegions = 20

// ErrInvalidRegions is returned when the number of regions
// is negative or too large.
var ErrInvalidRegions = errors.New("stategraph: invalid number of regions")

// An Edge is a directed edge between two states
// that differ in a single region.
type Edge struct {
	From, To int
}

// A Graph is the directed graph of range states
// for a fixed number of regions.
//
// A Graph is immutable,
// and can be shared between goroutines.
type Graph struct {
	regions int
	edges   []Edge
	out     [][]int // edge indexes of each source state

	once    sync.Once
	balance *mat.Dense
}

// Build builds the state graph for the indicated number of regions.
func Build(regions int) (*Graph, error) {
	if regions < 0 || regions > MaxRegions {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRegions, regions)
	}

	states := 1 << regions
	g := &Graph{
		regions: regions,
		edges:   make([]Edge, 0, regions*(states-1)),
		out:     make([][]int, states),
	}

	nb := make([]int, 0, regions)
	for i := 1; i < states; i++ {
		nb = nb[:0]
		for k := range regions {
			nb = append(nb, i^(1<<k))
		}
		slices.Sort(nb)
		for _, j := range nb {
			g.out[i] = append(g.out[i], len(g.edges))
			g.edges = append(g.edges, Edge{From: i, To: j})
		}
	}
	return g, nil
}

// Regions returns the number of regions of the graph.
func (g *Graph) Regions() int {
	return g.regions
}

// States returns the number of states of the graph.
func (g *Graph) States() int {
	return 1 << g.regions
}

// Redundant returns the state
// whose balance equation is dropped
// from the flow conservation constraints.
func (g *Graph) Redundant() int {
	return g.States() - 1
}

// Edges returns the edges of the graph,
// sorted by source state
// and then by destination state.
//
// The returned slice must not be modified.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Out returns the edges that start at the given state.
func (g *Graph) Out(state int) []Edge {
	if state < 0 || state >= len(g.out) {
		return nil
	}
	out := make([]Edge, 0, len(g.out[state]))
	for _, e := range g.out[state] {
		out = append(out, g.edges[e])
	}
	return out
}

// Adjacent returns true if a and b differ in exactly one region.
func Adjacent(a, b int) bool {
	return bits.OnesCount(uint(a^b)) == 1
}

// Balance returns the flow conservation matrix of the graph.
//
// Each row is a state,
// and each column an edge:
// the value is 1 if the edge leaves the state,
// -1 if the edge enters the state,
// and 0 otherwise.
// The row of the redundant state is not included,
// as it is a linear combination of the other rows.
//
// The matrix is built on the first call
// and must not be modified.
func (g *Graph) Balance() mat.Matrix {
	g.once.Do(func() {
		rows := g.States() - 1
		if rows == 0 || len(g.edges) == 0 {
			return
		}
		m := mat.NewDense(rows, len(g.edges), nil)
		for j, e := range g.edges {
			if e.From < rows {
				m.Set(e.From, j, 1)
			}
			if e.To < rows {
				m.Set(e.To, j, -1)
			}
		}
		g.balance = m
	})
	if g.balance == nil {
		return nil
	}
	return g.balance
}
