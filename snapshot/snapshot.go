// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package snapshot implements the probability distributions
// of ancestral range states
// at the nodes of a tree.
package snapshot

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/js-arias/lagtest/stategraph"
)

// ErrMalformed is returned when a node record is invalid.
var ErrMalformed = errors.New("snapshot: malformed record")

// A Record is the reported probability
// of a range state at a node.
type Record struct {
	State int
	Ratio float64
}

// A Snapshot is the probability distribution
// of the range states at a node.
// Only the reported states are stored.
type Snapshot struct {
	node    int
	regions int
	mass    map[int]float64
}

// New creates a new snapshot for a node
// from a set of state records.
// If a state is repeated,
// the last record is used.
func New(node, regions int, recs []Record) (*Snapshot, error) {
	if regions <= 0 {
		return nil, fmt.Errorf("%w: node %d: invalid number of regions %d", ErrMalformed, node, regions)
	}
	if regions > stategraph.MaxRegions {
		return nil, fmt.Errorf("%w: node %d: too many regions %d", ErrMalformed, node, regions)
	}

	states := 1 << regions
	s := &Snapshot{
		node:    node,
		regions: regions,
		mass:    make(map[int]float64, len(recs)),
	}
	for _, r := range recs {
		if r.State < 0 || r.State >= states {
			return nil, fmt.Errorf("%w: node %d: state %d out of range [0, %d)", ErrMalformed, node, r.State, states)
		}
		if math.IsNaN(r.Ratio) || r.Ratio < 0 {
			return nil, fmt.Errorf("%w: node %d: state %d: invalid ratio %v", ErrMalformed, node, r.State, r.Ratio)
		}
		s.mass[r.State] = r.Ratio
	}
	return s, nil
}

// Node returns the ID of the node of the snapshot.
func (s *Snapshot) Node() int {
	return s.node
}

// Regions returns the number of regions
// used to define the states.
func (s *Snapshot) Regions() int {
	return s.regions
}

// Mass returns the probability of a state.
func (s *Snapshot) Mass(state int) float64 {
	return s.mass[state]
}

// States returns the reported states,
// in increasing order.
func (s *Snapshot) States() []int {
	st := make([]int, 0, len(s.mass))
	for v := range s.mass {
		st = append(st, v)
	}
	slices.Sort(st)
	return st
}

// Vector returns the probabilities of all states
// as a dense vector of length 2^regions.
func (s *Snapshot) Vector() []float64 {
	v := make([]float64, 1<<s.regions)
	for st, p := range s.mass {
		v[st] = p
	}
	return v
}
