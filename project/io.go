// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/lagtest/cmpparam"
	"github.com/js-arias/lagtest/lagrange"
	"github.com/js-arias/timetree"
)

// Param reads the comparison parameters
// as defined in a project.
// If no parameter file is defined,
// it returns the default parameters.
func (p *Project) Param() (*cmpparam.P, error) {
	name := p.Path(Params)
	if name == "" {
		return cmpparam.New(""), nil
	}
	return cmpparam.Read(name)
}

// Results reads the node results of a Lagrange run
// as defined in a project.
// The dataset must be either Expected or Experiment.
func (p *Project) Results(set Dataset) (*lagrange.Results, error) {
	if set != Expected && set != Experiment {
		return nil, fmt.Errorf("dataset %q is not a Lagrange run", set)
	}
	name := p.Path(set)
	if name == "" {
		return nil, fmt.Errorf("%s results not defined in project %q", set, p.name)
	}
	return lagrange.ReadResultsFile(name)
}

// Trees reads a tree collection file
// as defined in a project.
func (p *Project) Trees() (*timetree.Collection, error) {
	name := p.Path(Trees)
	if name == "" {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}
