// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package trial

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/js-arias/lagtest/divergence"
	"gopkg.in/yaml.v3"
)

// ReportFile is the default name of a report file.
const ReportFile = "failed_paths.yaml"

// Failed is a trial with a divergence metric
// above the threshold.
type Failed struct {
	Path     string  `yaml:"path"`
	Distance float64 `yaml:"distance"`
}

// Errored is a trial that can not be compared.
type Errored struct {
	Path  string `yaml:"path"`
	Error string `yaml:"error"`
}

// A Report is the result of checking a set of trials.
type Report struct {
	Threshold float64   `yaml:"threshold"`
	Trials    int       `yaml:"trials"`
	Failed    []Failed  `yaml:"failed-runs"`
	Errors    []Errored `yaml:"error-runs"`
}

// Check compares each trial
// and reports the trials with a metric
// above the threshold
// and the trials that can not be compared.
//
// Failed trials are sorted by distance,
// and trials with errors by path.
func Check(trials []*Trial, cfg divergence.Config, threshold float64) *Report {
	rep := &Report{
		Threshold: threshold,
		Trials:    len(trials),
		Failed:    []Failed{},
		Errors:    []Errored{},
	}
	for _, t := range trials {
		r, err := t.Compare(cfg)
		if err != nil {
			rep.Errors = append(rep.Errors, Errored{
				Path:  t.Path,
				Error: err.Error(),
			})
			continue
		}
		if r.Metric > threshold {
			rep.Failed = append(rep.Failed, Failed{
				Path:     t.Path,
				Distance: r.Metric,
			})
		}
	}

	slices.SortStableFunc(rep.Failed, func(a, b Failed) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	slices.SortStableFunc(rep.Errors, func(a, b Errored) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return rep
}

// Ok returns true if all trials passed.
func (rep *Report) Ok() bool {
	return len(rep.Failed) == 0 && len(rep.Errors) == 0
}

// Write writes a report as a YAML document.
func (rep *Report) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("while writing report: %v", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("while writing report: %v", err)
	}
	return nil
}

// ReadReport reads a report from a YAML document.
func ReadReport(r io.Reader) (*Report, error) {
	rep := &Report{}
	if err := yaml.NewDecoder(r).Decode(rep); err != nil {
		return nil, fmt.Errorf("while reading report: %v", err)
	}
	return rep, nil
}
