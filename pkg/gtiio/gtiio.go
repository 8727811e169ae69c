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


// Package gtiio reads and writes the tables gtikit works on: GTI lists,
// sampled series and event times, as whitespace or comma separated text,
// JSON or YAML. Numbers are parsed as decimals so that digits beyond float64
// precision survive.
package gtiio

import (
	"path"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrMalformed is wrapped by every decoding error.
var ErrMalformed = errors.New("gtiio: malformed table")

type Format int

const (
	Text Format = iota
	JSON
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return "text"
	}
}

// ParseFormat accepts the names printed by String plus "yml" and "txt".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return Text, errors.Errorf("gtiio: unknown format %q", s)
}

// FormatFor picks a format from the extension of a path or URL. Anything
// that is not .json, .yaml or .yml is text.
func FormatFor(url string) Format {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	switch strings.ToLower(path.Ext(url)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	}
	return Text
}

func logger() *zap.Logger {
	return zap.L().Named("gtiio")
}
