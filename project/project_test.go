// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/js-arias/lagtest/cmpparam"
	"github.com/js-arias/lagtest/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Expected, "expected/run.results.json"},
		{project.Experiment, "experiment/run.results.json"},
		{project.Params, "params.tab"},
		{project.Trees, "trees.tab"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := "tmp-project-for-test.tab"
	defer os.Remove(name)

	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)

	// removing a dataset
	if prev := np.Add(project.Trees, ""); prev != "trees.tab" {
		t.Errorf("add: got previous path %q, want %q", prev, "trees.tab")
	}
	testProject(t, np, sets[:3])
}

func TestUnknownDataset(t *testing.T) {
	name := filepath.Join(t.TempDir(), "project.tab")
	data := "# lagtest project files\ndataset\tpath\nlandscape\tlandscape.tab\n"
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}
	if _, err := project.Read(name); err == nil {
		t.Errorf("read: expecting error on unknown dataset")
	}
}

const resultsBlob = `{
  "attributes": {"regions": 2, "taxa": 3},
  "node-results": [
    {"number": 1, "states": [{"distribution": 1, "ratio": 1.0}]}
  ]
}`

func TestReaders(t *testing.T) {
	dir := t.TempDir()
	res := filepath.Join(dir, "run.results.json")
	if err := os.WriteFile(res, []byte(resultsBlob), 0o644); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}

	p := project.New()
	p.Add(project.Expected, res)

	r, err := p.Results(project.Expected)
	if err != nil {
		t.Fatalf("results: unexpected error: %v", err)
	}
	if r.Regions() != 2 || r.Taxa() != 3 {
		t.Errorf("results: got %d regions and %d taxa, want 2 and 3", r.Regions(), r.Taxa())
	}

	if _, err := p.Results(project.Experiment); err == nil {
		t.Errorf("results: expecting error on undefined experiment")
	}
	if _, err := p.Results(project.Trees); err == nil {
		t.Errorf("results: expecting error on trees dataset")
	}
	if _, err := p.Trees(); err == nil {
		t.Errorf("trees: expecting error on undefined trees")
	}

	// default parameters
	pm, err := p.Param()
	if err != nil {
		t.Fatalf("param: unexpected error: %v", err)
	}
	if pm.Threshold() != cmpparam.DefaultThreshold {
		t.Errorf("param: got threshold %g, want %g", pm.Threshold(), cmpparam.DefaultThreshold)
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}
	slices.Sort(datasets)

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}
