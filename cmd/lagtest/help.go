// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(paramFilesGuide)
	app.Add(projectsGuide)
	app.Add(resultsFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Lagtest compares the output of two Lagrange runs: an expected run, used as a
reference, and an experiment run, the run under test. To keep track of the
files, a single project file is used to hold the reference of all files
required in the comparison. This guide explains the structure of the file,
but most of the time, the best way to edit or view this file is by using
lagtest commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# lagtest project files
	dataset	path
	expected	expected/run.results.json
	experiment	experiment/run.results.json
	params	params.tab
	trees	trees.tab

The valid file types are:

- Expected results. Defined by the dataset keyword "expected". This file
  contains the node results of the reference Lagrange run. The recommended
  way to add this file is by using the command 'lagtest add'.
- Experiment results. Defined by the dataset keyword "experiment". This file
  contains the node results of the Lagrange run under test. The recommended
  way to add this file is by using the command 'lagtest add'.
- Comparison parameters. Defined by the dataset keyword "params". This file
  contains the parameters of the transport solver and the threshold of the
  divergence metric. The recommended way to edit this file is by using the
  command 'lagtest solver'.
- Time-calibrated trees. Defined by the dataset keyword "trees". This file
  contains one or more trees in the form of a tab-delimited file. It is
  used to check the number of taxa of the compared runs.
	`,
}

var resultsFilesGuide = &command.Command{
	Usage: "results-files",
	Short: "about Lagrange results files",
	Long: `
Lagrange stores the results of a run in a JSON file. Lagtest reads the number
of regions, the number of taxa, the estimated rates, and the distribution of
range states at each node.

Here is an example file:

	{
	  "attributes": {"regions": 2, "taxa": 3},
	  "params": {"dispersion": 0.1, "extinction": 0.01},
	  "node-results": [
	    {
	      "number": 4,
	      "states": [
	        {"distribution": 1, "ratio": 0.75},
	        {"distribution": 3, "ratio": 0.25}
	      ]
	    }
	  ]
	}

A range state is encoded as a bit set of regions: with two regions, the value
1 is the first region, 2 is the second region, and 3 is the range with both
regions. The value 0 is the empty range. Each node result is the probability
mass of each range at the node. States not listed have zero mass.

In a regression trial, the files of each run are stored in the directories
"expected" and "experiment" of the trial directory. Files are identified by
its extension:

	.json          node results
	.log           console output
	.bgkey.tre     tree with node keys
	.bgstates.tre  tree with the most likely states
	.conf          run configuration
	.phy           range data
	.nwk           input tree
	`,
}

var paramFilesGuide = &command.Command{
	Usage: "param-files",
	Short: "about comparison parameter files",
	Long: `
The divergence between two Lagrange runs is calculated as the transport
distance between the range distributions of each node present in both runs.
The distance is calculated with a linear program, and the way the program is
solved is controlled by a set of parameters. Parameters are stored in a
tab-delimited file with the following fields:

	- parameter  the name of the parameter
	- value      the value of the parameter

Here is an example file:

	# lagtest comparison parameters
	parameter	value
	cpu	0
	epsilon	1e-12
	threshold	0.0001
	tolerance	1e-10

The valid parameters are:

	cpu        the number of goroutines used to compare the nodes.
	           If 0, it will use all available CPUs.
	epsilon    the largest difference between two distributions that is
	           considered as zero.
	threshold  the largest divergence metric accepted for two runs.
	tolerance  the tolerance of the simplex algorithm.

In a lagtest project, the file that contains the comparison parameters is
indicated with the "params" keyword. The recommended way to edit this file is
by using the command 'lagtest solver'.
	`,
}
