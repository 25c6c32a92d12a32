// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package snapshot

import (
	"fmt"
	"iter"
	"slices"
)

// An Index is a collection of snapshots
// indexed by node ID.
// An Index is immutable.
type Index struct {
	regions int
	nodes   map[int]*Snapshot
}

// NewIndex creates a new index from a set of snapshots.
// All snapshots must use the indicated number of regions,
// and node IDs must be unique.
func NewIndex(regions int, snaps []*Snapshot) (*Index, error) {
	ix := &Index{
		regions: regions,
		nodes:   make(map[int]*Snapshot, len(snaps)),
	}
	for _, s := range snaps {
		if s.regions != regions {
			return nil, fmt.Errorf("%w: node %d: got %d regions, want %d", ErrMalformed, s.node, s.regions, regions)
		}
		if _, dup := ix.nodes[s.node]; dup {
			return nil, fmt.Errorf("%w: node %d: repeated node", ErrMalformed, s.node)
		}
		ix.nodes[s.node] = s
	}
	return ix, nil
}

// Len returns the number of snapshots in the index.
func (ix *Index) Len() int {
	return len(ix.nodes)
}

// Nodes returns the node IDs in the index,
// in increasing order.
func (ix *Index) Nodes() []int {
	ids := make([]int, 0, len(ix.nodes))
	for id := range ix.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Regions returns the number of regions
// of the snapshots in the index.
func (ix *Index) Regions() int {
	return ix.regions
}

// Snapshot returns the snapshot of a node.
// It returns nil if the node is not in the index.
func (ix *Index) Snapshot(node int) *Snapshot {
	return ix.nodes[node]
}

// Common returns the node IDs
// present in both indexes,
// in increasing order.
func Common(a, b *Index) []int {
	var ids []int
	for id := range a.nodes {
		if _, ok := b.nodes[id]; ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// A Pair is a pair of snapshots
// of the same node.
type Pair struct {
	Node int
	A, B *Snapshot
}

// Pairs returns a sequence with the snapshots of each node
// present in both indexes,
// in increasing order of node ID.
// Nodes present in only one index are ignored.
func Pairs(a, b *Index) iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for _, id := range Common(a, b) {
			p := Pair{
				Node: id,
				A:    a.nodes[id],
				B:    b.nodes[id],
			}
			if !yield(p) {
				return
			}
		}
	}
}
