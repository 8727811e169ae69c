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
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/NVIDIA/gtikit/pkg/interval"
)

// run is a maximal stretch of true values, [first, last] inclusive.
type run struct {
	first int
	last  int
}

// contiguousRuns finds the runs of true values in condition by looking at
// the edges where the value changes.
func contiguousRuns(condition []bool) []run {
	var runs []run
	prev := false
	for i, c := range condition {
		switch {
		case c && !prev:
			runs = append(runs, run{first: i})
		case !c && prev:
			runs[len(runs)-1].last = i - 1
		}
		prev = c
	}
	if prev {
		runs[len(runs)-1].last = len(condition) - 1
	}
	return runs
}

// FromCondition builds GTIs from the runs of true values in condition. Each
// run covers the bins of its first and last samples, contracted by margin.
// Runs that collapse after contraction are dropped.
//
// Returns an error wrapping ErrLengthMismatch if the axis and condition
// differ in length.
func FromCondition(axis Axis, condition []bool, margin SafetyMargin) (List, error) {
	if axis.Len() != len(condition) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d sample times and %d condition values", axis.Len(), len(condition))
	}

	marginStart, marginEnd := margin.Bounds()

	var gtis List
	for _, r := range contiguousRuns(condition) {
		logger().Debug("condition run", zap.Int("first", r.first), zap.Int("last", r.last))

		g := interval.Interval{
			Start: axis.left(r.first).Add(marginStart),
			Stop:  axis.right(r.last).Sub(marginEnd),
		}
		if !g.Valid() {
			continue
		}
		gtis = append(gtis, g)
	}
	return gtis, nil
}
