// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package solver implements a command to manage
// the comparison parameters of a project.
package solver

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/lagtest/cmpparam"
	"github.com/js-arias/lagtest/project"
)

var Command = &command.Command{
	Usage: `solver [--add <param-file>] [--file <file-name>]
	[--tol <value>] [--eps <value>]
	[--threshold <value>] [--cpu <number>]
	<project-file>`,
	Short: "manage comparison parameters",
	Long: `
Command solver manages the parameters used to compare the Lagrange runs of a
lagtest project. These parameters define how the transport distance is
solved, and the threshold used to accept the divergence between two runs.

The argument of the command is the name of the project file.

By default, the command will print the currently defined parameters.

If the flag --add is defined, it will use the indicated file for the
comparison parameters.

By default, any change on the parameters will be stored in the current
parameters file. If the project does not have a parameters file, a new one
will be created with the name 'params.tab'. Use the flag --file to define a
new parameters file.

The flag --tol sets the tolerance of the simplex algorithm. The default value
is 1e-10. The flag --eps sets the largest difference between two distributions
that is considered as zero. The default value is 1e-12.

The flag --threshold sets the largest divergence metric accepted for two runs.
The default value is 0.0001.

The flag --cpu sets the number of goroutines used to compare the nodes. If
set to 0, the default, all available CPUs will be used.
	`,
	SetFlags: setFlags,
	Run:      run,
}

const defParamFile = "params.tab"

var addFile string
var paramFile string
var tolerance float64
var epsilon float64
var threshold float64
var numCPU int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&addFile, "add", "", "")
	c.Flags().StringVar(&paramFile, "file", "", "")
	c.Flags().Float64Var(&tolerance, "tol", 0, "")
	c.Flags().Float64Var(&epsilon, "eps", -1, "")
	c.Flags().Float64Var(&threshold, "threshold", -1, "")
	c.Flags().IntVar(&numCPU, "cpu", -1, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if addFile != "" {
		if _, err := cmpparam.Read(addFile); err != nil {
			return err
		}
		p.Add(project.Params, addFile)
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}

	pm, err := p.Param()
	if err != nil {
		return err
	}
	if paramFile != "" {
		pm.SetName(paramFile)
	}

	ed := false
	if tolerance > 0 {
		if err := pm.SetTolerance(tolerance); err != nil {
			return err
		}
		ed = true
	}
	if epsilon >= 0 {
		if err := pm.SetEpsilon(epsilon); err != nil {
			return err
		}
		ed = true
	}
	if threshold >= 0 {
		if err := pm.SetThreshold(threshold); err != nil {
			return err
		}
		ed = true
	}
	if numCPU >= 0 {
		if err := pm.SetCPU(numCPU); err != nil {
			return err
		}
		ed = true
	}

	if !ed && paramFile == "" {
		printParams(c.Stdout(), pm)
		return nil
	}

	if pm.Name() == "" {
		pm.SetName(defParamFile)
	}
	if err := pm.Write(); err != nil {
		return err
	}
	if p.Path(project.Params) != pm.Name() {
		p.Add(project.Params, pm.Name())
		if err := p.Write(); err != nil {
			return err
		}
	}
	return nil
}

func printParams(w io.Writer, pm *cmpparam.P) {
	name := pm.Name()
	if name == "" {
		name = "(default)"
	}
	fmt.Fprintf(w, "file:      %s\n", name)
	fmt.Fprintf(w, "tolerance: %g\n", pm.Tolerance())
	fmt.Fprintf(w, "epsilon:   %g\n", pm.Epsilon())
	fmt.Fprintf(w, "threshold: %g\n", pm.Threshold())
	cpu := "all"
	if pm.CPU() > 0 {
		cpu = fmt.Sprintf("%d", pm.CPU())
	}
	fmt.Fprintf(w, "cpu:       %s\n", cpu)
}
