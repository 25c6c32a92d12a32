// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package params implements a command to compare
// the estimated rates of two Lagrange runs.
package params

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/lagtest/lagrange"
	"github.com/js-arias/lagtest/project"
)

var Command = &command.Command{
	Usage: "params <project-file>",
	Short: "compare the rates of two Lagrange runs",
	Long: `
Command params reads the expected and experiment results of a lagtest
project, and prints the estimated dispersion and extinction rates of each
run, as well as the absolute difference between them.

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

	exp, err := p.Results(project.Expected)
	if err != nil {
		return err
	}
	obs, err := p.Results(project.Experiment)
	if err != nil {
		return err
	}

	ep := exp.Params()
	rp := obs.Params()
	d := lagrange.ParamsDiff(exp, obs)

	w := c.Stdout()
	fmt.Fprintf(w, "rate\texpected\texperiment\tdifference\n")
	fmt.Fprintf(w, "dispersion\t%.6g\t%.6g\t%.6g\n", ep.Dispersion, rp.Dispersion, d.Dispersion)
	fmt.Fprintf(w, "extinction\t%.6g\t%.6g\t%.6g\n", ep.Extinction, rp.Extinction, d.Extinction)
	return nil
}
