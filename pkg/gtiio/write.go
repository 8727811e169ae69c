// Copyright © 2019 NVIDIA Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gtiio

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/gtikit/pkg/gti"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

// WriteList encodes l so that ReadList gives it back unchanged.
func WriteList(w io.Writer, l gti.List, f Format) error {
	pairs := make([][]string, len(l))
	for i, g := range l {
		pairs[i] = []string{g.Start.String(), g.Stop.String()}
	}
	return writeTable(w, f, "start stop", pairs)
}

// WriteBins encodes sample index ranges, one [start, stop) pair per row.
func WriteBins(w io.Writer, starts, stops []int, f Format) error {
	if len(starts) != len(stops) {
		return errors.Errorf("gtiio: %d start bins and %d stop bins", len(starts), len(stops))
	}
	pairs := make([][]string, len(starts))
	for i := range starts {
		pairs[i] = []string{strconv.Itoa(starts[i]), strconv.Itoa(stops[i])}
	}
	return writeTable(w, f, "start_bin stop_bin", pairs)
}

// WriteSeries encodes s as `time value [halfwidth]` rows.
func WriteSeries(w io.Writer, s *Series, f Format) error {
	if len(s.Values) != len(s.Times) || (s.HalfWidths != nil && len(s.HalfWidths) != len(s.Times)) {
		return errors.Errorf("gtiio: series columns differ in length")
	}
	header := "time value"
	if s.HalfWidths != nil {
		header += " halfwidth"
	}
	rows := make([][]string, s.Len())
	for i, t := range s.Times {
		rows[i] = []string{t.String(), strconv.FormatFloat(s.Values[i], 'g', -1, 64)}
		if s.HalfWidths != nil {
			rows[i] = append(rows[i], s.HalfWidths[i].String())
		}
	}
	return writeTable(w, f, header, rows)
}

// WriteEvents encodes event times, one per row.
func WriteEvents(w io.Writer, times []xprec.Float, f Format) error {
	cells := make([]string, len(times))
	for i, t := range times {
		cells[i] = t.String()
	}

	switch f {
	case JSON:
		return writeJSON(w, rawNumbers(cells))
	case YAML:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range cells {
			seq.Content = append(seq.Content, floatNode(c))
		}
		return writeYAML(w, seq)
	default:
		if _, err := fmt.Fprintln(w, "# time"); err != nil {
			return err
		}
		for _, c := range cells {
			if _, err := fmt.Fprintln(w, c); err != nil {
				return err
			}
		}
		return nil
	}
}

// writeTable writes rows of numeric cells, already formatted.
func writeTable(w io.Writer, f Format, header string, rows [][]string) error {
	switch f {
	case JSON:
		out := make([][]json.RawMessage, len(rows))
		for i, rw := range rows {
			out[i] = rawNumbers(rw)
		}
		return writeJSON(w, out)
	case YAML:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, rw := range rows {
			item := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, c := range rw {
				item.Content = append(item.Content, floatNode(c))
			}
			seq.Content = append(seq.Content, item)
		}
		return writeYAML(w, seq)
	default:
		if _, err := fmt.Fprintf(w, "# %s\n", header); err != nil {
			return err
		}
		for _, rw := range rows {
			if _, err := fmt.Fprintln(w, strings.Join(rw, " ")); err != nil {
				return err
			}
		}
		return nil
	}
}

func rawNumbers(cells []string) []json.RawMessage {
	out := make([]json.RawMessage, len(cells))
	for i, c := range cells {
		out[i] = json.RawMessage(c)
	}
	return out
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	return errors.Wrap(enc.Encode(v), "gtiio: encoding json")
}

// floatNode is left untagged so integral values print without a tag.
func floatNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func writeYAML(w io.Writer, n *yaml.Node) error {
	if len(n.Content) == 0 {
		n.Style = yaml.FlowStyle
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return errors.Wrap(err, "gtiio: encoding yaml")
	}
	return errors.Wrap(enc.Close(), "gtiio: encoding yaml")
}
