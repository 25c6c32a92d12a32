// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package compare implements a command to compare
// the node results of two Lagrange runs.
package compare

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/lagtest/divergence"
	"github.com/js-arias/lagtest/project"
)

var Command = &command.Command{
	Usage: `compare [--threshold <value>] [--cpu <number>]
	[--tree <name>] <project-file>`,
	Short: "compare two Lagrange runs",
	Long: `
Command compare reads the expected and experiment results of a lagtest
project, and calculates the divergence metric between the two runs.

For each node present in both runs, the transport distance between the range
distributions of the node is calculated, and normalized by the number of
regions. The metric is the sum of the normalized distances, divided by the
number of taxa minus one.

The argument of the command is the name of the project file.

If the metric is above the threshold, the command will fail. By default, the
threshold defined in the project parameters is used (or 0.0001 if the project
does not define a parameter file). Use the flag --threshold to set a
different threshold.

By default, the nodes are compared using the CPUs defined in the project
parameters. Use the flag --cpu to set a different number of CPUs.

If the flag --tree is defined, the number of terminals of the indicated tree
in the project tree file will be checked against the number of taxa of the
runs.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var threshold float64
var numCPU int
var treeName string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&threshold, "threshold", -1, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&treeName, "tree", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	pm, err := p.Param()
	if err != nil {
		return err
	}
	if threshold >= 0 {
		if err := pm.SetThreshold(threshold); err != nil {
			return err
		}
	}
	if numCPU > 0 {
		if err := pm.SetCPU(numCPU); err != nil {
			return err
		}
	}

	exp, err := p.Results(project.Expected)
	if err != nil {
		return err
	}
	obs, err := p.Results(project.Experiment)
	if err != nil {
		return err
	}

	if treeName != "" {
		if err := checkTree(p, treeName, exp.Taxa()); err != nil {
			return err
		}
	}

	r, err := divergence.Compare(exp, obs, pm.Config())
	if err != nil {
		return err
	}

	w := c.Stdout()
	fmt.Fprintf(w, "expected:   %s\n", exp.Name())
	fmt.Fprintf(w, "experiment: %s\n", obs.Name())
	fmt.Fprintf(w, "regions:    %d\n", r.Regions)
	fmt.Fprintf(w, "taxa:       %d\n", r.Taxa)
	fmt.Fprintf(w, "nodes:      %d\n", r.Matched())
	fmt.Fprintf(w, "metric:     %.6g\n", r.Metric)
	if r.NoOverlap() {
		fmt.Fprintf(c.Stderr(), "WARNING: runs do not share any node\n")
	}

	if r.Metric > pm.Threshold() {
		return fmt.Errorf("metric %.6g above threshold %g", r.Metric, pm.Threshold())
	}
	return nil
}

func checkTree(p *project.Project, name string, taxa int) error {
	tc, err := p.Trees()
	if err != nil {
		return err
	}
	t := tc.Tree(name)
	if t == nil {
		return fmt.Errorf("tree %q not found in project", name)
	}
	if n := len(t.Terms()); n != taxa {
		return fmt.Errorf("tree %q: %d terminals, but runs have %d taxa", name, n, taxa)
	}
	return nil
}
