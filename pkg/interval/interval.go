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

package interval

import (
	"fmt"

	"github.com/NVIDIA/gtikit/pkg/xprec"
)

// Interval is a closed time range [Start, Stop].
type Interval struct {
	Start xprec.Float
	Stop  xprec.Float
}

func New(start, stop float64) Interval {
	return Interval{xprec.FromFloat64(start), xprec.FromFloat64(stop)}
}

func (i Interval) Len() xprec.Float {
	return i.Stop.Sub(i.Start)
}

// Valid reports whether Stop >= Start.
func (i Interval) Valid() bool {
	return i.Stop.GreaterEq(i.Start)
}

func (i Interval) Contains(t xprec.Float) bool {
	return i.Start.LessEq(t) && t.LessEq(i.Stop)
}

// Encloses reports whether [lo, hi] lies fully inside i.
func (i Interval) Encloses(lo, hi xprec.Float) bool {
	return i.Start.LessEq(lo) && hi.LessEq(i.Stop)
}

// Shrink moves Start forward by startMargin and Stop back by stopMargin.
// The result may be invalid.
func (i Interval) Shrink(startMargin, stopMargin xprec.Float) Interval {
	return Interval{i.Start.Add(startMargin), i.Stop.Sub(stopMargin)}
}

func (i Interval) Equal(j Interval) bool {
	return i.Start.Equal(j.Start) && i.Stop.Equal(j.Stop)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", i.Start, i.Stop)
}

// Intersection returns the overlap of a and b when it has a positive length.
func Intersection(a, b Interval) (*Interval, bool) {
	start := xprec.Max(a.Start, b.Start)
	stop := xprec.Min(a.Stop, b.Stop)
	if start.Less(stop) {
		return &Interval{start, stop}, true
	}
	return nil, false
}

// Overlap reports whether a and b share more than a boundary point.
func Overlap(a, b Interval) bool {
	return a.Start.Less(b.Stop) && b.Start.Less(a.Stop)
}
