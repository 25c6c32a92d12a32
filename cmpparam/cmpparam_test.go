// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cmpparam_test

import (
	"os"
	"testing"

	"github.com/js-arias/lagtest/cmpparam"
	"github.com/js-arias/lagtest/transport"
)

func TestParam(t *testing.T) {
	name := "tmp-comparison-parameters-for-test.tab"
	p := cmpparam.New(name)
	testParam(t, p, nil, name)

	p.SetCPU(3)
	p.SetEpsilon(1e-9)
	p.SetThreshold(0.01)
	p.SetTolerance(1e-8)

	defer os.Remove(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := cmpparam.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testParam(t, np, p, name)

	cfg := np.Config()
	if cfg.CPU != 3 {
		t.Errorf("config cpu: got %d, want %d", cfg.CPU, 3)
	}
	want := transport.Config{Tolerance: 1e-8, Epsilon: 1e-9}
	if cfg.Solver != want {
		t.Errorf("config solver: got %v, want %v", cfg.Solver, want)
	}
}

func TestInvalidValues(t *testing.T) {
	p := cmpparam.New("")
	if err := p.SetCPU(-1); err == nil {
		t.Errorf("cpu: expecting error")
	}
	if err := p.SetEpsilon(-1); err == nil {
		t.Errorf("epsilon: expecting error")
	}
	if err := p.SetThreshold(-0.5); err == nil {
		t.Errorf("threshold: expecting error")
	}
	if err := p.SetTolerance(0); err == nil {
		t.Errorf("tolerance: expecting error")
	}
	testParam(t, p, nil, "")
}

func testParam(t testing.TB, p, want *cmpparam.P, name string) {
	t.Helper()

	if want == nil {
		want = cmpparam.New(name)
	}

	if p.Name() != want.Name() {
		t.Errorf("name: got %q, want %q", p.Name(), want.Name())
	}
	if p.CPU() != want.CPU() {
		t.Errorf("cpu: got %d, want %d", p.CPU(), want.CPU())
	}
	if p.Epsilon() != want.Epsilon() {
		t.Errorf("epsilon: got %g, want %g", p.Epsilon(), want.Epsilon())
	}
	if p.Threshold() != want.Threshold() {
		t.Errorf("threshold: got %g, want %g", p.Threshold(), want.Threshold())
	}
	if p.Tolerance() != want.Tolerance() {
		t.Errorf("tolerance: got %g, want %g", p.Tolerance(), want.Tolerance())
	}
}
