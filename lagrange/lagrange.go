// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package lagrange implements reading of the output files
// of a Lagrange run.
package lagrange

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind is the kind of a file
// used or produced by a Lagrange run.
type Kind int

// Valid file kinds.
const (
	Unknown Kind = iota

	// BGKey is the tree with the node keys
	// (extension ".bgkey.tre").
	BGKey

	// BGStates is the tree with the most likely states
	// (extension ".bgstates.tre").
	BGStates

	// ResultsJSON is the JSON file with the node results
	// (extension ".json").
	ResultsJSON

	// Console is the console output of the run
	// (extension ".log").
	Console

	// Config is the configuration file of the run
	// (extension ".conf").
	Config

	// Phylip is the alignment of the range data
	// (extension ".phy").
	Phylip

	// Newick is the input tree
	// (extension ".nwk").
	Newick
)

var kindNames = map[Kind]string{
	Unknown:     "unknown",
	BGKey:       "bgkey",
	BGStates:    "bgstates",
	ResultsJSON: "results",
	Console:     "console",
	Config:      "config",
	Phylip:      "phylip",
	Newick:      "newick",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[Unknown]
}

// Classify returns the kind of a file
// based on its name.
func Classify(name string) Kind {
	base := filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(base))
	switch ext {
	case ".log":
		return Console
	case ".tre":
		sub := strings.ToLower(filepath.Ext(strings.TrimSuffix(base, filepath.Ext(base))))
		switch sub {
		case ".bgkey":
			return BGKey
		case ".bgstates":
			return BGStates
		}
	case ".nwk":
		return Newick
	case ".phy":
		return Phylip
	case ".conf":
		return Config
	case ".json":
		return ResultsJSON
	}
	return Unknown
}

// A Log is an output file of a Lagrange run.
type Log interface {
	// Kind returns the kind of the file.
	Kind() Kind

	// Name returns the file name of the log.
	Name() string

	// Bytes returns the raw content of the log.
	Bytes() []byte
}

// Equal returns true if two logs have the same kind
// and the same content.
func Equal(a, b Log) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	return bytes.Equal(a.Bytes(), b.Bytes())
}

// An Execution is a plain text output of a Lagrange run,
// for example the console log,
// or the trees with node keys and states.
type Execution struct {
	name string
	kind Kind
	data []byte
}

// Kind returns the kind of the file.
func (e *Execution) Kind() Kind {
	return e.kind
}

// Name returns the file name.
func (e *Execution) Name() string {
	return e.name
}

// Bytes returns the content of the file.
func (e *Execution) Bytes() []byte {
	return e.data
}

// Open reads a Lagrange output file.
// A file with the results kind is parsed
// and returned as a *Results,
// console and tree files are returned as an *Execution.
func Open(name string) (Log, error) {
	k := Classify(name)
	switch k {
	case ResultsJSON:
		return ReadResultsFile(name)
	case Console, BGKey, BGStates:
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		return &Execution{
			name: name,
			kind: k,
			data: data,
		}, nil
	}
	return nil, fmt.Errorf("on file %q: not a Lagrange output file (kind %s)", name, k)
}
