// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Lagtest is a tool for regression testing
// of Lagrange ancestral range reconstructions.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/lagtest/cmd/lagtest/add"
	"github.com/js-arias/lagtest/cmd/lagtest/check"
	"github.com/js-arias/lagtest/cmd/lagtest/compare"
	"github.com/js-arias/lagtest/cmd/lagtest/dist"
	"github.com/js-arias/lagtest/cmd/lagtest/params"
	"github.com/js-arias/lagtest/cmd/lagtest/prj"
	"github.com/js-arias/lagtest/cmd/lagtest/solver"
)

var app = &command.Command{
	Usage: "lagtest <command> [<argument>...]",
	Short: "a tool for regression testing of Lagrange results",
}

func init() {
	app.Add(add.Command)
	app.Add(check.Command)
	app.Add(compare.Command)
	app.Add(dist.Command)
	app.Add(params.Command)
	app.Add(prj.Command)
	app.Add(solver.Command)
}

func main() {
	app.Main()
}
