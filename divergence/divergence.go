// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package divergence implements a divergence metric
// between the node distributions of two biogeographic analyses.
//
// For each node present in both analyses,
// the transport distance between the distributions of the node
// is normalized by the number of regions.
// The metric is the sum of these normalized distances
// divided by the number of taxa minus one.
package divergence

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/js-arias/lagtest/snapshot"
	"github.com/js-arias/lagtest/stategraph"
	"github.com/js-arias/lagtest/transport"
	"golang.org/x/sync/errgroup"
)

// Errors returned by a comparison.
var (
	// ErrRegionMismatch is returned when the analyses
	// have a different number of regions.
	ErrRegionMismatch = errors.New("divergence: region count mismatch")

	// ErrTaxaMismatch is returned when the analyses
	// have a different number of taxa.
	ErrTaxaMismatch = errors.New("divergence: taxa count mismatch")

	// ErrInvalidTaxa is returned when the number of taxa
	// can not be used for normalization.
	ErrInvalidTaxa = errors.New("divergence: invalid number of taxa")
)

// A Log is the result of a biogeographic analysis.
type Log interface {
	// Regions returns the number of regions.
	Regions() int

	// Taxa returns the number of taxa.
	Taxa() int

	// Index returns the node distributions.
	Index() *snapshot.Index
}

// Config is the configuration of a comparison.
type Config struct {
	// Solver is the configuration
	// of the transport distance solver.
	Solver transport.Config

	// CPU is the number of goroutines
	// used to calculate the node distances.
	// If zero, it will use all available CPUs.
	CPU int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Solver: transport.DefaultConfig(),
	}
}

// NodeDistance is the transport distance
// between the distributions of a node.
type NodeDistance struct {
	Node       int
	Distance   float64
	Normalized float64
}

// Result is the result of a comparison.
type Result struct {
	Regions int
	Taxa    int

	// Nodes are the distances of the nodes
	// present in both analyses,
	// in increasing order of node ID.
	Nodes []NodeDistance

	// Sum is the sum of the normalized node distances.
	Sum float64

	// Metric is the normalized divergence metric.
	Metric float64
}

// Matched returns the number of compared nodes.
func (r *Result) Matched() int {
	return len(r.Nodes)
}

// NoOverlap returns true if the analyses
// do not share any node.
func (r *Result) NoOverlap() bool {
	return len(r.Nodes) == 0
}

// Metric returns the normalized divergence metric
// between two analyses
// using the default configuration.
func Metric(a, b Log) (float64, error) {
	r, err := Compare(a, b, DefaultConfig())
	if err != nil {
		return 0, err
	}
	return r.Metric, nil
}

// Compare compares the node distributions of two analyses.
//
// Only nodes present in both analyses are compared.
// Any error in a node aborts the comparison.
func Compare(a, b Log, cfg Config) (*Result, error) {
	if a.Regions() != b.Regions() {
		return nil, fmt.Errorf("%w: %d and %d regions", ErrRegionMismatch, a.Regions(), b.Regions())
	}
	if a.Taxa() != b.Taxa() {
		return nil, fmt.Errorf("%w: %d and %d taxa", ErrTaxaMismatch, a.Taxa(), b.Taxa())
	}
	if a.Taxa() <= 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTaxa, a.Taxa())
	}

	regions := a.Regions()
	if regions <= 0 {
		return nil, fmt.Errorf("%w: %d", stategraph.ErrInvalidRegions, regions)
	}
	pairs := slices.Collect(snapshot.Pairs(a.Index(), b.Index()))
	nodes := make([]NodeDistance, len(pairs))

	cpu := cfg.CPU
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}
	s := transport.New(cfg.Solver)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cpu)
	for i, p := range pairs {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			d, err := s.Distance(p.A.Vector(), p.B.Vector(), regions)
			if err != nil {
				return fmt.Errorf("node %d: %w", p.Node, err)
			}
			nodes[i] = NodeDistance{
				Node:       p.Node,
				Distance:   d,
				Normalized: d / float64(regions),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// sum in node order
	// so the result is reproducible
	var sum float64
	for _, n := range nodes {
		sum += n.Normalized
	}

	return &Result{
		Regions: regions,
		Taxa:    a.Taxa(),
		Nodes:   nodes,
		Sum:     sum,
		Metric:  sum / float64(a.Taxa()-1),
	}, nil
}
