// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package trial implements regression trials
// of Lagrange runs.
//
// A trial is a directory with two subdirectories:
// "expected",
// with the output of a reference run,
// and "experiment",
// with the output of the run under test.
package trial

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/js-arias/lagtest/divergence"
	"github.com/js-arias/lagtest/lagrange"
)

// Names of the trial subdirectories.
const (
	ExpectedDir   = "expected"
	ExperimentDir = "experiment"
)

// ErrMissing is returned when a trial directory
// does not have a required file.
var ErrMissing = errors.New("trial: missing file")

// A Dir is a directory with the files
// of a Lagrange run.
type Dir struct {
	path  string
	files map[lagrange.Kind]string
}

// ReadDir reads the files of a Lagrange run
// in a directory.
// Files of unknown kind are ignored.
// Subdirectories are not read.
func ReadDir(path string) (*Dir, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	d := &Dir{
		path:  path,
		files: make(map[lagrange.Kind]string),
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		k := lagrange.Classify(e.Name())
		if k == lagrange.Unknown {
			continue
		}
		d.files[k] = filepath.Join(path, e.Name())
	}
	return d, nil
}

// Path returns the path of the directory.
func (d *Dir) Path() string {
	return d.path
}

// File returns the file of the given kind,
// or an empty string if there is no such file.
func (d *Dir) File(k lagrange.Kind) string {
	return d.files[k]
}

// Kinds returns the kinds of the files
// in the directory.
func (d *Dir) Kinds() []lagrange.Kind {
	kinds := make([]lagrange.Kind, 0, len(d.files))
	for k := range d.files {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Results reads the node results of the run.
func (d *Dir) Results() (*lagrange.Results, error) {
	name := d.files[lagrange.ResultsJSON]
	if name == "" {
		return nil, fmt.Errorf("%w: results not found in %q", ErrMissing, d.path)
	}
	return lagrange.ReadResultsFile(name)
}

// A Trial is a pair of Lagrange runs.
type Trial struct {
	Path       string
	Expected   *Dir
	Experiment *Dir
}

// Open reads a trial directory.
func Open(path string) (*Trial, error) {
	exp, err := ReadDir(filepath.Join(path, ExpectedDir))
	if err != nil {
		return nil, err
	}
	run, err := ReadDir(filepath.Join(path, ExperimentDir))
	if err != nil {
		return nil, err
	}
	return &Trial{
		Path:       path,
		Expected:   exp,
		Experiment: run,
	}, nil
}

// Find returns the trials found under a directory,
// sorted by path.
func Find(root string) ([]*Trial, error) {
	var trials []*Trial
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if !isTrial(path) {
			return nil
		}
		t, err := Open(path)
		if err != nil {
			return err
		}
		trials = append(trials, t)
		return fs.SkipDir
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(trials, func(a, b *Trial) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return trials, nil
}

func isTrial(path string) bool {
	for _, sub := range []string{ExpectedDir, ExperimentDir} {
		fi, err := os.Stat(filepath.Join(path, sub))
		if err != nil || !fi.IsDir() {
			return false
		}
	}
	return true
}

// Compare compares the node results
// of the expected and the experiment runs.
func (t *Trial) Compare(cfg divergence.Config) (*divergence.Result, error) {
	exp, err := t.Expected.Results()
	if err != nil {
		return nil, err
	}
	run, err := t.Experiment.Results()
	if err != nil {
		return nil, err
	}
	return divergence.Compare(exp, run, cfg)
}

// Equal returns true if each Lagrange output
// of the expected run
// has an identical file in the experiment run.
func (t *Trial) Equal() (bool, error) {
	kinds := []lagrange.Kind{
		lagrange.ResultsJSON,
		lagrange.Console,
		lagrange.BGKey,
		lagrange.BGStates,
	}
	for _, k := range kinds {
		name := t.Expected.File(k)
		if name == "" {
			continue
		}
		other := t.Experiment.File(k)
		if other == "" {
			return false, nil
		}

		a, err := lagrange.Open(name)
		if err != nil {
			return false, err
		}
		b, err := lagrange.Open(other)
		if err != nil {
			return false, err
		}
		if !lagrange.Equal(a, b) {
			return false, nil
		}
	}
	return true, nil
}
