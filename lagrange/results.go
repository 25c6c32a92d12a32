// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package lagrange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/js-arias/lagtest/snapshot"
)

// Params are the estimated rates of a Lagrange run.
type Params struct {
	Dispersion float64
	Extinction float64
}

// ParamsDiff returns the absolute differences
// between the rates of two runs.
func ParamsDiff(a, b *Results) Params {
	return Params{
		Dispersion: math.Abs(a.params.Dispersion - b.params.Dispersion),
		Extinction: math.Abs(a.params.Extinction - b.params.Extinction),
	}
}

// Results contains the node results of a Lagrange run.
type Results struct {
	name string
	data []byte

	regions int
	taxa    int
	params  Params
	index   *snapshot.Index
}

// JSON keys of a results file.
const (
	nodeResultsKey = "node-results"
	attributesKey  = "attributes"
)

type jsonState struct {
	Distribution *int     `json:"distribution"`
	Ratio        *float64 `json:"ratio"`
}

type jsonNode struct {
	Number *int        `json:"number"`
	States []jsonState `json:"states"`
}

type jsonAttributes struct {
	Regions *int `json:"regions"`
	Taxa    *int `json:"taxa"`
}

type jsonParams struct {
	Dispersion *float64 `json:"dispersion"`
	Extinction *float64 `json:"extinction"`
}

type jsonResults struct {
	Attributes *jsonAttributes `json:"attributes"`
	Params     *jsonParams     `json:"params"`
	Nodes      []jsonNode      `json:"node-results"`
}

// ReadResults reads the node results of a Lagrange run
// from a JSON file.
//
// The JSON must be an object with the following fields:
//
//   - attributes, with the number of regions
//     and the number of taxa
//   - params, with the dispersion and extinction rates
//   - node-results, with the state distribution of each node
//
// Here is an example file:
//
//	{
//	  "attributes": {"regions": 2, "taxa": 3},
//	  "params": {"dispersion": 0.1, "extinction": 0.01},
//	  "node-results": [
//	    {
//	      "number": 4,
//	      "states": [
//	        {"distribution": 1, "ratio": 0.75},
//	        {"distribution": 3, "ratio": 0.25}
//	      ]
//	    }
//	  ]
//	}
func ReadResults(r io.Reader) (*Results, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var jr jsonResults
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&jr); err != nil {
		return nil, fmt.Errorf("while decoding results: %v", err)
	}

	if jr.Attributes == nil {
		return nil, fmt.Errorf("%w: expecting field %q", snapshot.ErrMalformed, attributesKey)
	}
	if jr.Attributes.Regions == nil {
		return nil, fmt.Errorf("%w: expecting field %q", snapshot.ErrMalformed, attributesKey+".regions")
	}
	if jr.Attributes.Taxa == nil {
		return nil, fmt.Errorf("%w: expecting field %q", snapshot.ErrMalformed, attributesKey+".taxa")
	}
	regions := *jr.Attributes.Regions
	if regions <= 0 {
		return nil, fmt.Errorf("%w: invalid number of regions %d", snapshot.ErrMalformed, regions)
	}
	if jr.Nodes == nil {
		return nil, fmt.Errorf("%w: expecting field %q", snapshot.ErrMalformed, nodeResultsKey)
	}

	res := &Results{
		data:    data,
		regions: regions,
		taxa:    *jr.Attributes.Taxa,
	}
	if jr.Params != nil {
		if jr.Params.Dispersion != nil {
			res.params.Dispersion = *jr.Params.Dispersion
		}
		if jr.Params.Extinction != nil {
			res.params.Extinction = *jr.Params.Extinction
		}
	}

	snaps := make([]*snapshot.Snapshot, 0, len(jr.Nodes))
	for i, n := range jr.Nodes {
		if n.Number == nil {
			return nil, fmt.Errorf("%w: %s %d: expecting field %q", snapshot.ErrMalformed, nodeResultsKey, i, "number")
		}
		recs := make([]snapshot.Record, 0, len(n.States))
		for j, st := range n.States {
			if st.Distribution == nil || st.Ratio == nil {
				return nil, fmt.Errorf("%w: node %d: state %d: expecting fields %q and %q", snapshot.ErrMalformed, *n.Number, j, "distribution", "ratio")
			}
			recs = append(recs, snapshot.Record{
				State: *st.Distribution,
				Ratio: *st.Ratio,
			})
		}
		s, err := snapshot.New(*n.Number, regions, recs)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}

	ix, err := snapshot.NewIndex(regions, snaps)
	if err != nil {
		return nil, err
	}
	res.index = ix
	return res, nil
}

// ReadResultsFile reads the node results of a Lagrange run
// from a file.
func ReadResultsFile(name string) (*Results, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := ReadResults(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %w", name, err)
	}
	res.name = name
	return res, nil
}

// Kind returns the kind of the file.
func (r *Results) Kind() Kind {
	return ResultsJSON
}

// Name returns the file name of the results.
func (r *Results) Name() string {
	return r.name
}

// Bytes returns the raw content of the results file.
func (r *Results) Bytes() []byte {
	return r.data
}

// Regions returns the number of regions of the run.
func (r *Results) Regions() int {
	return r.regions
}

// Taxa returns the number of taxa of the run.
func (r *Results) Taxa() int {
	return r.taxa
}

// Params returns the estimated rates of the run.
func (r *Results) Params() Params {
	return r.params
}

// Index returns the node distributions of the run.
func (r *Results) Index() *snapshot.Index {
	return r.index
}
