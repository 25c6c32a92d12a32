// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cmpparam implements reading and writing
// of the parameters used to compare two Lagrange runs.
package cmpparam

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/lagtest/divergence"
	"github.com/js-arias/lagtest/transport"
)

// Param is a keyword to identify
// the type of parameter in a parameter file.
type Param string

// Valid parameters
const (
	// CPU is the number of goroutines
	// used to compare the nodes.
	CPU Param = "cpu"

	// Epsilon is the largest mass difference
	// considered as zero.
	Epsilon Param = "epsilon"

	// Threshold is the largest divergence metric
	// accepted for two runs.
	Threshold Param = "threshold"

	// Tolerance is the tolerance of the simplex algorithm.
	Tolerance Param = "tolerance"
)

// DefaultThreshold is the default value
// for the divergence threshold.
const DefaultThreshold = 1e-4

// P represents a collection of comparison parameters.
type P struct {
	name string // file name

	tol float64
	eps float64
	cpu int

	threshold float64
}

// New creates a new parameter collection
// with the default values.
func New(name string) *P {
	def := transport.DefaultConfig()
	return &P{
		name:      name,
		tol:       def.Tolerance,
		eps:       def.Epsilon,
		threshold: DefaultThreshold,
	}
}

var header = []string{
	"parameter",
	"value",
}

// Read reads a parameter file from a TSV file.
//
// The TSV must contains the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Here is an example file:
//
//	# lagtest comparison parameters
//	parameter	value
//	cpu	4
//	epsilon	1e-12
//	threshold	0.0001
//	tolerance	1e-10
func Read(name string) (*P, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := read(f, name)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return p, nil
}

func read(r io.Reader, name string) (*P, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	p := New(name)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "parameter"
		pm := Param(strings.ToLower(strings.TrimSpace(row[fields[f]])))

		f = "value"
		v := strings.TrimSpace(row[fields[f]])
		switch pm {
		case CPU:
			c, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
			}
			if err := p.SetCPU(c); err != nil {
				return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
			}
		case Epsilon:
			e, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
			}
			if err := p.SetEpsilon(e); err != nil {
				return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
			}
		case Threshold:
			t, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
			}
			if err := p.SetThreshold(t); err != nil {
				return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
			}
		case Tolerance:
			t, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
			}
			if err := p.SetTolerance(t); err != nil {
				return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
			}
		}
	}
	return p, nil
}

// Config returns the comparison configuration
// defined by the parameters.
func (p *P) Config() divergence.Config {
	return divergence.Config{
		Solver: transport.Config{
			Tolerance: p.tol,
			Epsilon:   p.eps,
		},
		CPU: p.cpu,
	}
}

// CPU returns the number of goroutines
// used in a comparison.
// Zero means all available CPUs.
func (p *P) CPU() int {
	return p.cpu
}

// Epsilon returns the largest mass difference
// considered as zero.
func (p *P) Epsilon() float64 {
	return p.eps
}

// Name returns the file name of the parameters.
func (p *P) Name() string {
	return p.name
}

// Threshold returns the largest divergence metric
// accepted when comparing two runs.
func (p *P) Threshold() float64 {
	return p.threshold
}

// Tolerance returns the tolerance of the simplex algorithm.
func (p *P) Tolerance() float64 {
	return p.tol
}

// SetCPU sets the number of goroutines used in a comparison.
func (p *P) SetCPU(c int) error {
	if c < 0 {
		return fmt.Errorf("invalid number of CPU: %d", c)
	}
	p.cpu = c
	return nil
}

// SetEpsilon sets the largest mass difference
// considered as zero.
func (p *P) SetEpsilon(e float64) error {
	if e < 0 {
		return fmt.Errorf("invalid epsilon value: %g", e)
	}
	p.eps = e
	return nil
}

// SetName sets the file name of the parameters.
func (p *P) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	p.name = name
}

// SetThreshold sets the largest divergence metric
// accepted when comparing two runs.
func (p *P) SetThreshold(t float64) error {
	if t < 0 {
		return fmt.Errorf("invalid threshold value: %g", t)
	}
	p.threshold = t
	return nil
}

// SetTolerance sets the tolerance of the simplex algorithm.
func (p *P) SetTolerance(t float64) error {
	if t <= 0 {
		return fmt.Errorf("invalid tolerance value: %g", t)
	}
	p.tol = t
	return nil
}

// Write writes a parameter collection into a file.
func (p *P) Write() (err error) {
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# lagtest comparison parameters\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", p.name, err)
	}

	rows := [][]string{
		{string(CPU), strconv.Itoa(p.cpu)},
		{string(Epsilon), strconv.FormatFloat(p.eps, 'g', -1, 64)},
		{string(Threshold), strconv.FormatFloat(p.threshold, 'g', -1, 64)},
		{string(Tolerance), strconv.FormatFloat(p.tol, 'g', -1, 64)},
	}
	for _, row := range rows {
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", p.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	return nil
}
