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

	"github.com/NVIDIA/gtikit/pkg/interval"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

// Separate reports whether a and b are mutually exclusive as a whole: one
// of them ends before the other begins. Empty lists are separate from
// anything.
func Separate(a, b List) (bool, error) {
	if len(a) == 0 || len(b) == 0 {
		return true, nil
	}
	if err := Check(a); err != nil {
		return false, err
	}
	if err := Check(b); err != nil {
		return false, err
	}
	return separate(a, b), nil
}

func separate(a, b List) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	return a[len(a)-1].Stop.LessEq(b[0].Start) || b[len(b)-1].Stop.LessEq(a[0].Start)
}

// Append concatenates two mutually exclusive lists in time order.
//
// Returns an error wrapping ErrOverlap if they are not separate.
func Append(a, b List) (List, error) {
	if err := Check(a); err != nil {
		return nil, err
	}
	if err := Check(b); err != nil {
		return nil, err
	}
	if !separate(a, b) {
		return nil, errors.Wrap(ErrOverlap, "appending lists that are not mutually exclusive")
	}
	return appendSorted(a, b), nil
}

func appendSorted(a, b List) List {
	if len(a) > 0 && len(b) > 0 && b[len(b)-1].Stop.LessEq(a[0].Start) {
		a, b = b, a
	}
	out := make(List, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// boundary is one end of an interval: starts weigh -1, stops +1.
type boundary struct {
	at     xprec.Float
	weight int
}

// Join returns the union of two GTI lists.
//
// Mutually exclusive lists are simply appended. Otherwise every boundary of
// both lists is laid on a line; the running sum of the weights only returns
// to zero once every open interval has closed, which is where a merged
// interval ends. The boundary that follows opens the next one.
//
// Returns an error wrapping ErrInvalidInterval or ErrOverlap if either list
// is malformed.
func Join(a, b List) (List, error) {
	if err := Check(a); err != nil {
		return nil, err
	}
	if err := Check(b); err != nil {
		return nil, err
	}
	if separate(a, b) {
		return appendSorted(a, b), nil
	}

	bounds := make([]boundary, 0, 2*(len(a)+len(b)))
	for _, l := range []List{a, b} {
		for _, g := range l {
			bounds = append(bounds, boundary{g.Start, -1}, boundary{g.Stop, 1})
		}
	}
	// starts sort before stops at the same time so touching intervals merge
	sort.SliceStable(bounds, func(i, j int) bool {
		if c := bounds[i].at.Cmp(bounds[j].at); c != 0 {
			return c < 0
		}
		return bounds[i].weight < bounds[j].weight
	})

	var (
		joined List
		sum    int
		open   xprec.Float
	)
	for _, bd := range bounds {
		if sum == 0 {
			open = bd.at
		}
		sum += bd.weight
		if sum == 0 {
			joined = append(joined, interval.Interval{Start: open, Stop: bd.at})
		}
	}
	return joined, nil
}
