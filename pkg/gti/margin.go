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

package gti

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/NVIDIA/gtikit/pkg/xprec"
)

type marginKind int

const (
	noMargin marginKind = iota
	scalarMargin
	pairMargin
)

// SafetyMargin is a contraction applied to interval boundaries before use.
// It is either a single value applied to both ends (Scalar) or separate
// start and end values (Pair). The zero value applies no contraction.
type SafetyMargin struct {
	kind  marginKind
	start xprec.Float
	end   xprec.Float
}

func Scalar(v xprec.Float) SafetyMargin {
	return SafetyMargin{kind: scalarMargin, start: v, end: v}
}

func Pair(start, end xprec.Float) SafetyMargin {
	return SafetyMargin{kind: pairMargin, start: start, end: end}
}

// Bounds resolves the margin to the contraction of interval starts and
// interval stops.
func (m SafetyMargin) Bounds() (start, end xprec.Float) {
	if m.kind == noMargin {
		return xprec.Zero, xprec.Zero
	}
	return m.start, m.end
}

func (m SafetyMargin) String() string {
	switch m.kind {
	case scalarMargin:
		return m.start.String()
	case pairMargin:
		return fmt.Sprintf("%s,%s", m.start, m.end)
	}
	return "0"
}

// ParseSafetyMargin accepts "v" or "start,end".
func ParseSafetyMargin(s string) (SafetyMargin, error) {
	parts := strings.Split(s, ",")
	switch len(parts) {
	case 1:
		v, err := xprec.Parse(parts[0])
		if err != nil {
			return SafetyMargin{}, err
		}
		return Scalar(v), nil
	case 2:
		start, err := xprec.Parse(parts[0])
		if err != nil {
			return SafetyMargin{}, err
		}
		end, err := xprec.Parse(parts[1])
		if err != nil {
			return SafetyMargin{}, err
		}
		return Pair(start, end), nil
	}
	return SafetyMargin{}, errors.Errorf("gti: malformed safety margin %q", s)
}
