// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add files
// to a lagtest project.
package add

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/lagtest/cmpparam"
	"github.com/js-arias/lagtest/lagrange"
	"github.com/js-arias/lagtest/project"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `add [--type <dataset>] <project-file> <file>`,
	Short: "add a file to a lagtest project",
	Long: `
Command add reads a file and adds it to a lagtest project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

The second argument is the file to be added. The file is read before it is
added to the project, so only valid files will be added.

The flag --type defines the dataset of the file. Valid values are:

	expected    node results of the reference Lagrange run
	experiment  node results of the Lagrange run under test
	params      comparison parameters
	trees       time-calibrated trees

By default, the file will be added as the experiment results.

If the dataset is already defined in the project, the previous file will be
replaced.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var typeFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&typeFlag, "type", string(project.Experiment), "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting file to add")
	}

	set := project.Dataset(strings.ToLower(typeFlag))
	if !set.IsValid() {
		return c.UsageError(fmt.Sprintf("unknown dataset %q", typeFlag))
	}

	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	name := args[1]
	if err := validate(set, name); err != nil {
		return err
	}

	if prev := p.Add(set, name); prev != "" && prev != name {
		fmt.Fprintf(c.Stderr(), "%s: replacing file %q\n", set, prev)
	}
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func validate(set project.Dataset, name string) error {
	switch set {
	case project.Expected, project.Experiment:
		_, err := lagrange.ReadResultsFile(name)
		return err
	case project.Params:
		_, err := cmpparam.Read(name)
		return err
	case project.Trees:
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := timetree.ReadTSV(f); err != nil {
			return fmt.Errorf("while reading file %q: %v", name, err)
		}
	}
	return nil
}
