// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dist implements a command to print
// the transport distance of each node
// of two Lagrange runs.
package dist

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/lagtest/divergence"
	"github.com/js-arias/lagtest/project"
)

var Command = &command.Command{
	Usage: `dist [--cpu <number>] [-o|--output <file>] <project-file>`,
	Short: "print node distances of two Lagrange runs",
	Long: `
Command dist reads the expected and experiment results of a lagtest project,
and writes the transport distance between the range distributions of each
node present in both runs.

The argument of the command is the name of the project file.

The output is a tab-delimited file with the following fields:

	- node        the ID of the node
	- distance    the transport distance
	- normalized  the distance divided by the number of regions

By default, the output will be printed in the standard output. Use the flag
--output, or -o, to define an output file. A summary of the normalized
distances (mean, standard deviation, and maximum) will be printed in the
standard error, or in the standard output if an output file is defined.

By default, the nodes are compared using the CPUs defined in the project
parameters. Use the flag --cpu to set a different number of CPUs.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var numCPU int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
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

	r, err := divergence.Compare(exp, obs, pm.Config())
	if err != nil {
		return err
	}

	if output == "" {
		if err := r.WriteTSV(c.Stdout()); err != nil {
			return err
		}
		printSummary(c.Stderr(), r)
		return nil
	}

	if err := writeDist(output, r); err != nil {
		return err
	}
	printSummary(c.Stdout(), r)
	return nil
}

func writeDist(name string, r *divergence.Result) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := r.WriteTSV(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

func printSummary(w io.Writer, r *divergence.Result) {
	if r.NoOverlap() {
		fmt.Fprintf(w, "no shared nodes\n")
		return
	}
	s := r.Summary()
	fmt.Fprintf(w, "nodes:   %d\n", r.Matched())
	fmt.Fprintf(w, "mean:    %.6f\n", s.Mean)
	fmt.Fprintf(w, "std-dev: %.6f\n", s.StdDev)
	fmt.Fprintf(w, "max:     %.6f [node %d]\n", s.Max, s.MaxID)
	fmt.Fprintf(w, "metric:  %.6g\n", r.Metric)
}
