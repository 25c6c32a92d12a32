// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package transport implements an optimal transport distance
// (an earth mover distance)
// between two distributions of ancestral range states.
//
// The distance is the minimum amount of mass
// times the number of single-region changes
// required to transform one distribution into the other,
// moving the mass along the edges of a state graph.
// It is found by solving a linear program
// with one flow variable for each edge.
package transport

import (
	"errors"
	"fmt"
	"math"

	"github.com/js-arias/lagtest/stategraph"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// Errors returned by the solver.
var (
	// ErrDimension is returned when the mass vectors
	// have different lengths,
	// or a length different from the number of states.
	ErrDimension = errors.New("transport: dimension mismatch")

	// ErrInfeasible is returned when the linear program
	// has no feasible solution.
	ErrInfeasible = errors.New("transport: infeasible problem")

	// ErrNumerical is returned when the solver fails
	// to find an optimal solution.
	ErrNumerical = errors.New("transport: numerical failure")
)

// Config is the configuration of a solver.
type Config struct {
	// Tolerance is the tolerance of the simplex algorithm
	// (the maximal reduced cost at the optimum).
	Tolerance float64

	// Epsilon is the largest mass difference
	// that is considered as zero.
	// If all the differences between two distributions
	// are below epsilon,
	// the distance is zero.
	Epsilon float64
}

// DefaultConfig returns the default solver configuration.
func DefaultConfig() Config {
	return Config{
		Tolerance: 1e-10,
		Epsilon:   1e-12,
	}
}

// A Solver calculates transport distances.
// It is safe for concurrent use.
type Solver struct {
	cfg    Config
	graphs *stategraph.Cache
}

// New creates a new solver with the given configuration.
func New(cfg Config) *Solver {
	def := DefaultConfig()
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = def.Tolerance
	}
	if cfg.Epsilon < 0 {
		cfg.Epsilon = def.Epsilon
	}
	return &Solver{
		cfg:    cfg,
		graphs: stategraph.NewCache(),
	}
}

// Config returns the configuration of the solver.
func (s *Solver) Config() Config {
	return s.cfg
}

// Distance returns the transport distance
// between two mass vectors
// defined over the states of the indicated number of regions.
// Both vectors must have a length of 2^regions.
func Distance(a, b []float64, regions int) (float64, error) {
	return New(DefaultConfig()).Distance(a, b, regions)
}

// Distance returns the transport distance
// between two mass vectors
// defined over the states of the indicated number of regions.
// Both vectors must have a length of 2^regions.
func (s *Solver) Distance(a, b []float64, regions int) (float64, error) {
	g, err := s.graphs.Graph(regions)
	if err != nil {
		return 0, err
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: vectors of length %d and %d", ErrDimension, len(a), len(b))
	}
	if len(a) != g.States() {
		return 0, fmt.Errorf("%w: vector of length %d, want %d states", ErrDimension, len(a), g.States())
	}

	// with a single state
	// there is nothing to move
	if regions == 0 {
		return 0, nil
	}

	d := make([]float64, len(a))
	floats.SubTo(d, a, b)
	if floats.Norm(d, math.Inf(1)) <= s.cfg.Epsilon {
		return 0, nil
	}
	orient(d)

	c := make([]float64, len(g.Edges()))
	for i := range c {
		c[i] = 1
	}
	rows := d[:g.Redundant()]

	opt, _, err := lp.Simplex(c, g.Balance(), rows, s.cfg.Tolerance, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return 0, fmt.Errorf("%w: %v", ErrInfeasible, err)
		}
		return 0, fmt.Errorf("%w: %v", ErrNumerical, err)
	}
	if math.IsNaN(opt) || math.IsInf(opt, 0) {
		return 0, fmt.Errorf("%w: optimum value %v", ErrNumerical, opt)
	}

	// flows are non-negative,
	// so a negative optimum is a rounding artifact
	if opt < 0 {
		opt = 0
	}
	return opt, nil
}

// Normalized returns the transport distance
// divided by the number of regions.
func (s *Solver) Normalized(a, b []float64, regions int) (float64, error) {
	d, err := s.Distance(a, b, regions)
	if err != nil {
		return 0, err
	}
	if regions == 0 {
		return 0, nil
	}
	return d / float64(regions), nil
}

// orient sets the sign of a difference vector
// so the empty range (state 0) is a sink.
//
// The balance of a state is its outflow minus its inflow,
// and the empty range has no outgoing edges,
// so its balance must be non-positive.
// The sign is reversed when the empty range has a surplus
// or no difference at all.
func orient(d []float64) {
	if d[0] < 0 {
		return
	}
	floats.Scale(-1, d)
}
