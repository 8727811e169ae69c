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
	"sort"

	"github.com/pkg/errors"

	"github.com/NVIDIA/gtikit/pkg/xprec"
)

// Axis is a sorted sequence of sample times, each covering
// [t-halfwidth, t+halfwidth]. The slices passed to NewAxis are referenced,
// not copied, and must not be modified while the Axis is in use.
type Axis struct {
	times      []xprec.Float
	halfWidths []xprec.Float
	halfWidth  xprec.Float
}

// NewAxis builds an axis. When halfWidths is nil every sample gets half the
// spacing of the first two samples (zero if there are fewer than two).
func NewAxis(times []xprec.Float, halfWidths []xprec.Float) (Axis, error) {
	if halfWidths != nil && len(halfWidths) != len(times) {
		return Axis{}, errors.Wrapf(ErrLengthMismatch, "%d sample times and %d half-widths", len(times), len(halfWidths))
	}

	a := Axis{times: times, halfWidths: halfWidths}
	if halfWidths == nil && len(times) > 1 {
		a.halfWidth = times[1].Sub(times[0]).Half()
	}
	return a, nil
}

// UniformAxis returns n samples start, start+step, ... with half-width step/2.
func UniformAxis(start, step xprec.Float, n int) Axis {
	times := make([]xprec.Float, n)
	for i := range times {
		times[i] = start.Add(step.MulInt(i))
	}
	return Axis{times: times, halfWidth: step.Half()}
}

func (a Axis) Len() int {
	return len(a.times)
}

func (a Axis) Time(i int) xprec.Float {
	return a.times[i]
}

func (a Axis) Times() []xprec.Float {
	return a.times
}

func (a Axis) HalfWidth(i int) xprec.Float {
	if a.halfWidths == nil {
		return a.halfWidth
	}
	return a.halfWidths[i]
}

// Step returns the spacing of the first two samples.
func (a Axis) Step() (xprec.Float, bool) {
	if len(a.times) < 2 {
		return xprec.Zero, false
	}
	return a.times[1].Sub(a.times[0]), true
}

func (a Axis) left(i int) xprec.Float {
	return a.times[i].Sub(a.HalfWidth(i))
}

func (a Axis) right(i int) xprec.Float {
	return a.times[i].Add(a.HalfWidth(i))
}

// searchTime returns the first index whose time is >= t.
func (a Axis) searchTime(t xprec.Float) int {
	return sort.Search(len(a.times), func(i int) bool {
		return a.times[i].GreaterEq(t)
	})
}

// nearest returns the index minimizing |edge(i) - t|, preferring the lower
// index on ties. edge must be non-decreasing.
func (a Axis) nearest(edge func(int) xprec.Float, t xprec.Float) int {
	n := len(a.times)
	i := sort.Search(n, func(i int) bool {
		return edge(i).GreaterEq(t)
	})
	if i == n {
		return n - 1
	}
	if i == 0 {
		return 0
	}
	below := t.Sub(edge(i - 1))
	above := edge(i).Sub(t)
	if below.LessEq(above) {
		return i - 1
	}
	return i
}
