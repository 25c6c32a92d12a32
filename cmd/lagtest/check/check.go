// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package check implements a command to check
// a set of regression trials.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/lagtest/cmpparam"
	"github.com/js-arias/lagtest/trial"
)

var Command = &command.Command{
	Usage: `check [--params <param-file>] [--threshold <value>]
	[--cpu <number>] [-o|--output <file>] <directory>`,
	Short: "check a set of regression trials",
	Long: `
Command check searches a directory for regression trials, and compares the
results of each trial.

A trial is a directory with two subdirectories: "expected", with the output
of a reference Lagrange run, and "experiment", with the output of the run
under test. Each subdirectory must contain the results file of the run
(a file with the ".json" extension). See "lagtest help results-files".

The argument of the command is the directory with the trials.

A trial with a divergence metric above the threshold is a failed run. A trial
that can not be compared (for example, because a results file is missing) is
an error run. The failed and error runs are written as a YAML file. By
default the file will be '<directory>/failed_paths.yaml'. Use the flag
--output, or -o, to define a different file. If there are failed or error
runs, the command will fail.

By default, the comparison uses the default parameters. Use the flag --params
to read the parameters from a file (see "lagtest help param-files"). The flag
--threshold sets the threshold used to accept a trial, and the flag --cpu
sets the number of CPUs used to compare the nodes of a trial.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var paramFile string
var output string
var threshold float64
var numCPU int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&paramFile, "params", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().Float64Var(&threshold, "threshold", -1, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
}

func run(c *command.Command, args []string) (err error) {
	if len(args) < 1 {
		return c.UsageError("expecting trials directory")
	}
	dir := args[0]
	start := time.Now()

	pm := cmpparam.New("")
	if paramFile != "" {
		pm, err = cmpparam.Read(paramFile)
		if err != nil {
			return err
		}
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

	trials, err := trial.Find(dir)
	if err != nil {
		return err
	}
	if len(trials) == 0 {
		return fmt.Errorf("no trials found in %q", dir)
	}

	rep := trial.Check(trials, pm.Config(), pm.Threshold())

	if output == "" {
		output = filepath.Join(dir, trial.ReportFile)
	}
	if err := writeReport(output, rep); err != nil {
		return err
	}

	w := c.Stdout()
	for _, f := range rep.Failed {
		fmt.Fprintf(w, "FAIL\t%s\t%.6g\n", f.Path, f.Distance)
	}
	for _, e := range rep.Errors {
		fmt.Fprintf(w, "ERROR\t%s\t%s\n", e.Path, e.Error)
	}
	fmt.Fprintf(w, "trials: %d, failed: %d, errors: %d [%.3fs]\n", rep.Trials, len(rep.Failed), len(rep.Errors), time.Since(start).Seconds())

	if !rep.Ok() {
		return fmt.Errorf("%d failed and %d error runs, see %q", len(rep.Failed), len(rep.Errors), output)
	}
	fmt.Fprintf(w, "all clear\n")
	return nil
}

func writeReport(name string, rep *trial.Report) (err error) {
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

	if err := rep.Write(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
