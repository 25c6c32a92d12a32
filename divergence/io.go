// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package divergence

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

var header = []string{
	"node",
	"distance",
	"normalized",
}

// WriteTSV writes the node distances
// as a tab-delimited file.
func (r *Result) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# node transport distances\n")
	fmt.Fprintf(bw, "# regions: %d, taxa: %d, metric: %.6f\n", r.Regions, r.Taxa, r.Metric)
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, n := range r.Nodes {
		row := []string{
			strconv.Itoa(n.Node),
			strconv.FormatFloat(n.Distance, 'f', 6, 64),
			strconv.FormatFloat(n.Normalized, 'f', 6, 64),
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

// ReadTSV reads node distances
// from a tab-delimited file.
//
// The TSV must contain the following fields:
//
//   - node, the ID of the node
//   - distance, the transport distance
//   - normalized, the distance divided by the number of regions
//
// Here is an example file:
//
//	# node transport distances
//	node	distance	normalized
//	4	0.500000	0.250000
//	5	0.000000	0.000000
func ReadTSV(r io.Reader) ([]NodeDistance, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
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

	var nodes []NodeDistance
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "node"
		id, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "distance"
		d, err := strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "normalized"
		n, err := strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		nodes = append(nodes, NodeDistance{
			Node:       id,
			Distance:   d,
			Normalized: n,
		})
	}
	return nodes, nil
}

// Summary is a summary of the normalized node distances.
type Summary struct {
	Mean   float64
	StdDev float64
	Max    float64
	MaxID  int
}

// Summary returns the summary statistics
// of the normalized node distances.
// It returns the zero value if there are no compared nodes.
func (r *Result) Summary() Summary {
	if len(r.Nodes) == 0 {
		return Summary{}
	}

	x := make([]float64, 0, len(r.Nodes))
	s := Summary{MaxID: r.Nodes[0].Node}
	for _, n := range r.Nodes {
		x = append(x, n.Normalized)
		if n.Normalized > s.Max {
			s.Max = n.Normalized
			s.MaxID = n.Node
		}
	}
	if len(x) == 1 {
		s.Mean = x[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	return s
}
