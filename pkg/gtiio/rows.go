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
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/gtikit/pkg/xprec"
)

// row is one table record. Named fields of JSON objects and YAML mappings
// are laid out in the order of the fields slice handed to decodeRows and
// stop at the first missing one.
type row []xprec.Float

func decodeRows(r io.Reader, f Format, fields []string) ([]row, error) {
	switch f {
	case JSON:
		return jsonRows(r, fields)
	case YAML:
		return yamlRows(r, fields)
	default:
		return textRows(r)
	}
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

func textRows(r io.Reader) ([]row, error) {
	var (
		rows     []row
		lineno   int
		seenData bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		cells := strings.FieldsFunc(line, isSeparator)
		if len(cells) == 0 {
			continue
		}

		rw := make(row, len(cells))
		var err error
		for i, c := range cells {
			if rw[i], err = xprec.Parse(c); err != nil {
				break
			}
		}
		if err != nil {
			if !seenData {
				logger().Debug("skipping header", zap.Int("line", lineno), zap.String("text", line))
				seenData = true
				continue
			}
			return nil, errors.Wrapf(ErrMalformed, "line %d: %v", lineno, err)
		}
		seenData = true
		rows = append(rows, rw)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "gtiio: reading text table")
	}
	return rows, nil
}

func jsonRows(r io.Reader, fields []string) ([]row, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrapf(ErrMalformed, "json: %v", err)
	}

	rows := make([]row, 0, len(raw))
	for i, msg := range raw {
		msg = bytes.TrimSpace(msg)
		if len(msg) == 0 {
			continue
		}

		var rw row
		switch msg[0] {
		case '[':
			if err := json.Unmarshal(msg, &rw); err != nil {
				return nil, errors.Wrapf(ErrMalformed, "json row %d: %v", i, err)
			}
		case '{':
			var obj map[string]xprec.Float
			if err := json.Unmarshal(msg, &obj); err != nil {
				return nil, errors.Wrapf(ErrMalformed, "json row %d: %v", i, err)
			}
			for _, name := range fields {
				v, ok := obj[name]
				if !ok {
					break
				}
				rw = append(rw, v)
			}
		default:
			var v xprec.Float
			if err := json.Unmarshal(msg, &v); err != nil {
				return nil, errors.Wrapf(ErrMalformed, "json row %d: %v", i, err)
			}
			rw = row{v}
		}
		rows = append(rows, rw)
	}
	return rows, nil
}

func yamlRows(r io.Reader, fields []string) ([]row, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrapf(ErrMalformed, "yaml: %v", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, errors.Wrapf(ErrMalformed, "yaml line %d: expected a sequence", root.Line)
	}

	rows := make([]row, 0, len(root.Content))
	for _, item := range root.Content {
		var rw row
		switch item.Kind {
		case yaml.ScalarNode:
			v, err := yamlScalar(item)
			if err != nil {
				return nil, err
			}
			rw = row{v}
		case yaml.SequenceNode:
			for _, cell := range item.Content {
				v, err := yamlScalar(cell)
				if err != nil {
					return nil, err
				}
				rw = append(rw, v)
			}
		case yaml.MappingNode:
			values := make(map[string]*yaml.Node, len(item.Content)/2)
			for i := 0; i+1 < len(item.Content); i += 2 {
				values[item.Content[i].Value] = item.Content[i+1]
			}
			for _, name := range fields {
				cell, ok := values[name]
				if !ok {
					break
				}
				v, err := yamlScalar(cell)
				if err != nil {
					return nil, err
				}
				rw = append(rw, v)
			}
		default:
			return nil, errors.Wrapf(ErrMalformed, "yaml line %d: unexpected node", item.Line)
		}
		rows = append(rows, rw)
	}
	return rows, nil
}

func yamlScalar(n *yaml.Node) (xprec.Float, error) {
	if n.Kind != yaml.ScalarNode {
		return xprec.Zero, errors.Wrapf(ErrMalformed, "yaml line %d: expected a number", n.Line)
	}
	v, err := xprec.Parse(n.Value)
	if err != nil {
		return xprec.Zero, errors.Wrapf(ErrMalformed, "yaml line %d: %v", n.Line, err)
	}
	return v, nil
}
