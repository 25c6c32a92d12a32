// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package lagrange_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/lagtest/lagrange"
	"github.com/js-arias/lagtest/snapshot"
)

const resultsBlob = `{
  "attributes": {"regions": 2, "taxa": 3},
  "params": {"dispersion": 0.125, "extinction": 0.5},
  "node-results": [
    {
      "number": 4,
      "states": [
        {"distribution": 1, "ratio": 0.75},
        {"distribution": 3, "ratio": 0.25}
      ]
    },
    {
      "number": 3,
      "states": [
        {"distribution": 2, "ratio": 1.0}
      ]
    }
  ]
}`

func TestReadResults(t *testing.T) {
	res, err := lagrange.ReadResults(strings.NewReader(resultsBlob))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Regions() != 2 {
		t.Errorf("regions: got %d, want %d", res.Regions(), 2)
	}
	if res.Taxa() != 3 {
		t.Errorf("taxa: got %d, want %d", res.Taxa(), 3)
	}
	want := lagrange.Params{Dispersion: 0.125, Extinction: 0.5}
	if p := res.Params(); p != want {
		t.Errorf("params: got %v, want %v", p, want)
	}
	if res.Kind() != lagrange.ResultsJSON {
		t.Errorf("kind: got %s, want %s", res.Kind(), lagrange.ResultsJSON)
	}

	ix := res.Index()
	if n := ix.Nodes(); !reflect.DeepEqual(n, []int{3, 4}) {
		t.Errorf("nodes: got %v, want %v", n, []int{3, 4})
	}
	v := ix.Snapshot(4).Vector()
	if w := []float64{0, 0.75, 0, 0.25}; !reflect.DeepEqual(v, w) {
		t.Errorf("node 4: got %v, want %v", v, w)
	}
}

func TestMalformedResults(t *testing.T) {
	tests := map[string]string{
		"no attributes": `{"node-results": []}`,
		"no regions":    `{"attributes": {"taxa": 3}, "node-results": []}`,
		"no taxa":       `{"attributes": {"regions": 2}, "node-results": []}`,
		"zero regions":  `{"attributes": {"regions": 0, "taxa": 3}, "node-results": []}`,
		"no nodes":      `{"attributes": {"regions": 2, "taxa": 3}}`,
		"no number":     `{"attributes": {"regions": 2, "taxa": 3}, "node-results": [{"states": []}]}`,
		"no ratio": `{"attributes": {"regions": 2, "taxa": 3}, "node-results": [
			{"number": 1, "states": [{"distribution": 1}]}]}`,
		"state out of range": `{"attributes": {"regions": 2, "taxa": 3}, "node-results": [
			{"number": 1, "states": [{"distribution": 4, "ratio": 1}]}]}`,
		"repeated node": `{"attributes": {"regions": 2, "taxa": 3}, "node-results": [
			{"number": 1, "states": []}, {"number": 1, "states": []}]}`,
	}

	for name, blob := range tests {
		_, err := lagrange.ReadResults(strings.NewReader(blob))
		if !errors.Is(err, snapshot.ErrMalformed) {
			t.Errorf("%s: got error %v, want %v", name, err, snapshot.ErrMalformed)
		}
	}

	if _, err := lagrange.ReadResults(strings.NewReader("{")); err == nil {
		t.Errorf("invalid JSON: expecting error")
	}
}

func TestClassify(t *testing.T) {
	tests := map[string]lagrange.Kind{
		"lagrange.log":            lagrange.Console,
		"run.bgkey.tre":           lagrange.BGKey,
		"run.bgstates.tre":        lagrange.BGStates,
		"results.json":            lagrange.ResultsJSON,
		"run.conf":                lagrange.Config,
		"data/range.phy":          lagrange.Phylip,
		"tree.nwk":                lagrange.Newick,
		"other.tre":               lagrange.Unknown,
		"notes.txt":               lagrange.Unknown,
		"/tmp/x/Run.BGSTATES.tre": lagrange.BGStates,
	}
	for name, want := range tests {
		if k := lagrange.Classify(name); k != want {
			t.Errorf("%s: got %s, want %s", name, k, want)
		}
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	resName := filepath.Join(dir, "results.json")
	if err := os.WriteFile(resName, []byte(resultsBlob), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}
	logA := filepath.Join(dir, "a.log")
	logB := filepath.Join(dir, "b.log")
	logC := filepath.Join(dir, "c.log")
	for name, data := range map[string]string{
		logA: "lagrange run\nlnL = -12.5\n",
		logB: "lagrange run\nlnL = -12.5\n",
		logC: "lagrange run\nlnL = -13.0\n",
	} {
		if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
			t.Fatalf("unable to write file: %v", err)
		}
	}

	res, err := lagrange.Open(resName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := res.(*lagrange.Results); !ok {
		t.Errorf("results: got %T, want *lagrange.Results", res)
	}
	if res.Name() != resName {
		t.Errorf("results: name: got %q, want %q", res.Name(), resName)
	}

	a, err := lagrange.Open(logA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := a.(*lagrange.Execution); !ok {
		t.Errorf("console: got %T, want *lagrange.Execution", a)
	}
	b, err := lagrange.Open(logB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := lagrange.Open(logC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !lagrange.Equal(a, b) {
		t.Errorf("equal logs: got different logs")
	}
	if lagrange.Equal(a, c) {
		t.Errorf("different logs: got equal logs")
	}
	if lagrange.Equal(a, res) {
		t.Errorf("different kinds: got equal logs")
	}

	if _, err := lagrange.Open(filepath.Join(dir, "tree.nwk")); err == nil {
		t.Errorf("newick file: expecting error")
	}
}

func TestParamsDiff(t *testing.T) {
	a, err := lagrange.ReadResults(strings.NewReader(resultsBlob))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blob := strings.Replace(resultsBlob, `"dispersion": 0.125`, `"dispersion": 0.25`, 1)
	b, err := lagrange.ReadResults(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d := lagrange.ParamsDiff(a, b)
	if math.Abs(d.Dispersion-0.125) > 1e-12 {
		t.Errorf("dispersion: got %.6f, want %.6f", d.Dispersion, 0.125)
	}
	if d.Extinction != 0 {
		t.Errorf("extinction: got %.6f, want 0", d.Extinction)
	}
}
