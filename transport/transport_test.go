// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package transport_test

import (
	"errors"
	"math"
	"testing"

	"github.com/js-arias/lagtest/stategraph"
	"github.com/js-arias/lagtest/transport"
)

const tolerance = 1e-9

func TestDistance(t *testing.T) {
	tests := map[string]struct {
		regions    int
		a, b       []float64
		dist, norm float64
	}{
		"single state": {
			regions: 0,
			a:       []float64{1},
			b:       []float64{1},
		},
		"one hop": {
			regions: 1,
			a:       []float64{1, 0},
			b:       []float64{0, 1},
			dist:    1,
			norm:    1,
		},
		"two hops to the empty range": {
			regions: 2,
			a:       []float64{0.5, 0, 0, 0.5},
			b:       []float64{1, 0, 0, 0},
			dist:    1,
			norm:    0.5,
		},
		"widespread to single area": {
			regions: 3,
			a:       []float64{0, 1, 0, 0, 0, 0, 0, 0},
			b:       []float64{0, 0, 0, 0, 0, 0, 0, 1},
			dist:    2,
			norm:    2.0 / 3,
		},
		"split mass": {
			regions: 2,
			a:       []float64{0, 0.5, 0.5, 0},
			b:       []float64{0, 0, 0, 1},
			dist:    1,
			norm:    0.5,
		},
		"partial overlap": {
			regions: 3,
			a:       []float64{0, 0.2, 0.3, 0.5, 0, 0, 0, 0},
			b:       []float64{0, 0.2, 0.3, 0, 0, 0, 0, 0.5},
			dist:    0.5,
			norm:    0.5 / 3,
		},
	}

	s := transport.New(transport.DefaultConfig())
	for name, test := range tests {
		d, err := s.Distance(test.a, test.b, test.regions)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if math.Abs(d-test.dist) > tolerance {
			t.Errorf("%s: distance: got %.6f, want %.6f", name, d, test.dist)
		}

		n, err := s.Normalized(test.a, test.b, test.regions)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if math.Abs(n-test.norm) > tolerance {
			t.Errorf("%s: normalized distance: got %.6f, want %.6f", name, n, test.norm)
		}
	}
}

var distributions = [][]float64{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 1},
	{0, 0.25, 0.25, 0, 0.5, 0, 0, 0},
	{0, 0.1, 0.2, 0.3, 0.1, 0.1, 0.1, 0.1},
	{0, 0, 0.6, 0, 0, 0.4, 0, 0},
	{0, 0.3, 0, 0.3, 0, 0, 0.4, 0},
}

func TestIdentity(t *testing.T) {
	s := transport.New(transport.DefaultConfig())
	for i, a := range distributions {
		d, err := s.Distance(a, a, 3)
		if err != nil {
			t.Fatalf("distribution %d: unexpected error: %v", i, err)
		}
		if d != 0 {
			t.Errorf("distribution %d: distance to itself: got %.6f, want 0", i, d)
		}
	}
}

func TestSymmetry(t *testing.T) {
	s := transport.New(transport.DefaultConfig())
	for i, a := range distributions {
		for j, b := range distributions {
			ab, err := s.Distance(a, b, 3)
			if err != nil {
				t.Fatalf("%d-%d: unexpected error: %v", i, j, err)
			}
			ba, err := s.Distance(b, a, 3)
			if err != nil {
				t.Fatalf("%d-%d: unexpected error: %v", j, i, err)
			}
			if math.Abs(ab-ba) > tolerance {
				t.Errorf("%d-%d: got %.6f and %.6f", i, j, ab, ba)
			}
		}
	}

	// mass at the empty range
	a := []float64{1, 0}
	b := []float64{0, 1}
	ab, err := s.Distance(a, b, 1)
	if err != nil {
		t.Fatalf("empty range: unexpected error: %v", err)
	}
	ba, err := s.Distance(b, a, 1)
	if err != nil {
		t.Fatalf("empty range: unexpected error: %v", err)
	}
	if math.Abs(ab-ba) > tolerance {
		t.Errorf("empty range: got %.6f and %.6f", ab, ba)
	}
}

func TestTriangle(t *testing.T) {
	s := transport.New(transport.DefaultConfig())
	dist := make([][]float64, len(distributions))
	for i, a := range distributions {
		dist[i] = make([]float64, len(distributions))
		for j, b := range distributions {
			d, err := s.Distance(a, b, 3)
			if err != nil {
				t.Fatalf("%d-%d: unexpected error: %v", i, j, err)
			}
			dist[i][j] = d
		}
	}

	for i := range dist {
		for j := range dist {
			for k := range dist {
				if dist[i][k] > dist[i][j]+dist[j][k]+tolerance {
					t.Errorf("%d-%d-%d: %.6f > %.6f + %.6f", i, j, k, dist[i][k], dist[i][j], dist[j][k])
				}
			}
		}
	}
}

func TestErrors(t *testing.T) {
	s := transport.New(transport.DefaultConfig())

	if _, err := s.Distance([]float64{1, 0}, []float64{1, 0, 0, 0}, 1); !errors.Is(err, transport.ErrDimension) {
		t.Errorf("different lengths: got error %v, want %v", err, transport.ErrDimension)
	}
	if _, err := s.Distance([]float64{1, 0}, []float64{0, 1}, 2); !errors.Is(err, transport.ErrDimension) {
		t.Errorf("wrong number of states: got error %v, want %v", err, transport.ErrDimension)
	}
	if _, err := s.Distance([]float64{1}, []float64{1}, -1); !errors.Is(err, stategraph.ErrInvalidRegions) {
		t.Errorf("negative regions: got error %v, want %v", err, stategraph.ErrInvalidRegions)
	}
}

func TestPackageDistance(t *testing.T) {
	d, err := transport.Distance([]float64{1, 0}, []float64{0, 1}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d-1) > tolerance {
		t.Errorf("distance: got %.6f, want %.6f", d, 1.0)
	}
}
