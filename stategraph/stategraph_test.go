// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package stategraph_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/js-arias/lagtest/stategraph"
)

func TestBuild(t *testing.T) {
	tests := map[string]struct {
		regions int
		edges   []stategraph.Edge
	}{
		"no regions": {
			regions: 0,
		},
		"one region": {
			regions: 1,
			edges: []stategraph.Edge{
				{From: 1, To: 0},
			},
		},
		"two regions": {
			regions: 2,
			edges: []stategraph.Edge{
				{From: 1, To: 0},
				{From: 1, To: 3},
				{From: 2, To: 0},
				{From: 2, To: 3},
				{From: 3, To: 1},
				{From: 3, To: 2},
			},
		},
	}

	for name, test := range tests {
		g, err := stategraph.Build(test.regions)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if g.States() != 1<<test.regions {
			t.Errorf("%s: states: got %d, want %d", name, g.States(), 1<<test.regions)
		}
		if len(g.Edges()) != len(test.edges) {
			t.Errorf("%s: edges: got %d, want %d", name, len(g.Edges()), len(test.edges))
		}
		if len(test.edges) > 0 && !reflect.DeepEqual(g.Edges(), test.edges) {
			t.Errorf("%s: edges: got %v, want %v", name, g.Edges(), test.edges)
		}
	}
}

func TestEdgeRules(t *testing.T) {
	g, err := stategraph.Build(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out := g.Out(0); len(out) != 0 {
		t.Errorf("empty range: got %d outgoing edges, want 0", len(out))
	}
	for s := 1; s < g.States(); s++ {
		if out := g.Out(s); len(out) != g.Regions() {
			t.Errorf("state %d: got %d outgoing edges, want %d", s, len(out), g.Regions())
		}
	}

	// regions*2^regions ordered pairs minus the edges from the empty range
	if want := 4*16 - 4; len(g.Edges()) != want {
		t.Errorf("edges: got %d, want %d", len(g.Edges()), want)
	}
	for _, e := range g.Edges() {
		if !stategraph.Adjacent(e.From, e.To) {
			t.Errorf("edge %d->%d: states are not adjacent", e.From, e.To)
		}
		if e.From == 0 {
			t.Errorf("edge %d->%d: edge from the empty range", e.From, e.To)
		}
	}
}

func TestBalance(t *testing.T) {
	g, err := stategraph.Build(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := g.Balance()
	r, c := m.Dims()
	if r != g.States()-1 {
		t.Errorf("rows: got %d, want %d", r, g.States()-1)
	}
	if c != len(g.Edges()) {
		t.Errorf("columns: got %d, want %d", c, len(g.Edges()))
	}
	if g.Redundant() != 3 {
		t.Errorf("redundant state: got %d, want %d", g.Redundant(), 3)
	}

	for j, e := range g.Edges() {
		for s := range r {
			want := 0.0
			if e.From == s {
				want = 1
			}
			if e.To == s {
				want = -1
			}
			if v := m.At(s, j); v != want {
				t.Errorf("edge %d->%d, state %d: got %.1f, want %.1f", e.From, e.To, s, v, want)
			}
		}
	}

	empty, err := stategraph.Build(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m := empty.Balance(); m != nil {
		t.Errorf("no regions: got a balance matrix, want nil")
	}
}

func TestInvalidRegions(t *testing.T) {
	for _, r := range []int{-1, stategraph.MaxRegions + 1} {
		_, err := stategraph.Build(r)
		if !errors.Is(err, stategraph.ErrInvalidRegions) {
			t.Errorf("regions %d: got error %v, want %v", r, err, stategraph.ErrInvalidRegions)
		}
	}
}

func TestCache(t *testing.T) {
	c := stategraph.NewCache()

	g1, err := c.Graph(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g2, err := c.Graph(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g1 != g2 {
		t.Errorf("cache: got a new graph for the same number of regions")
	}

	if _, err := c.Graph(-2); !errors.Is(err, stategraph.ErrInvalidRegions) {
		t.Errorf("cache: got error %v, want %v", err, stategraph.ErrInvalidRegions)
	}
}
