// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/lagtest/cmpparam"
	"github.com/js-arias/lagtest/lagrange"
	"github.com/js-arias/lagtest/project"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: "prj <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a lagtest project and prints the information of the
different project elements into the standard output.

If the project has a tree file, the number of terminals of each tree will be
checked against the number of taxa of the Lagrange runs.

The argument of the command is the name of the project file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	taxa := make(map[int]bool)
	for _, set := range []project.Dataset{project.Expected, project.Experiment} {
		name := p.Path(set)
		if name == "" {
			continue
		}
		res, err := lagrange.ReadResultsFile(name)
		if err != nil {
			return err
		}
		printResults(c.Stdout(), set, res)
		taxa[res.Taxa()] = true
	}
	if len(taxa) > 1 {
		fmt.Fprintf(c.Stderr(), "WARNING: runs have a different number of taxa\n")
	}

	if name := p.Path(project.Params); name != "" {
		pm, err := cmpparam.Read(name)
		if err != nil {
			return err
		}
		printParams(c.Stdout(), pm)
	}

	if name := p.Path(project.Trees); name != "" {
		if err := readTrees(c.Stdout(), c.Stderr(), name, taxa); err != nil {
			return err
		}
	}
	return nil
}

func printResults(w io.Writer, set project.Dataset, res *lagrange.Results) {
	fmt.Fprintf(w, "Lagrange %s run:\n", set)
	fmt.Fprintf(w, "\tfile: %s\n", res.Name())
	fmt.Fprintf(w, "\tregions: %d\n", res.Regions())
	fmt.Fprintf(w, "\ttaxa: %d\n", res.Taxa())
	fmt.Fprintf(w, "\tnodes: %d\n", res.Index().Len())
	pm := res.Params()
	fmt.Fprintf(w, "\tdispersion: %.6f\n", pm.Dispersion)
	fmt.Fprintf(w, "\textinction: %.6f\n", pm.Extinction)
	fmt.Fprintf(w, "\n")
}

func printParams(w io.Writer, pm *cmpparam.P) {
	fmt.Fprintf(w, "Comparison parameters:\n")
	fmt.Fprintf(w, "\tfile: %s\n", pm.Name())
	fmt.Fprintf(w, "\ttolerance: %g\n", pm.Tolerance())
	fmt.Fprintf(w, "\tepsilon: %g\n", pm.Epsilon())
	fmt.Fprintf(w, "\tthreshold: %g\n", pm.Threshold())
	if cpu := pm.CPU(); cpu > 0 {
		fmt.Fprintf(w, "\tcpu: %d\n", cpu)
	}
	fmt.Fprintf(w, "\n")
}

func readTrees(w, warn io.Writer, name string, taxa map[int]bool) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return fmt.Errorf("while reading file %q: %v", name, err)
	}

	fmt.Fprintf(w, "Trees:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\ttrees: %d\n", len(c.Names()))
	for _, tn := range c.Names() {
		t := c.Tree(tn)
		if t == nil {
			continue
		}
		n := len(t.Terms())
		fmt.Fprintf(w, "\t\t%s: %d terminals\n", tn, n)
		if len(taxa) > 0 && !taxa[n] {
			fmt.Fprintf(warn, "WARNING: tree %q: %d terminals do not match the taxa of the runs\n", tn, n)
		}
	}
	fmt.Fprintf(w, "\n")
	return nil
}
