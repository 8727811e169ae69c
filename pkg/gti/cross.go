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

	"go.uber.org/zap"

	"github.com/NVIDIA/gtikit/pkg/interval"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

// stopEvent is the end of interval idx of series 0 or 1.
type stopEvent struct {
	at     xprec.Float
	series int
	idx    int
}

// latestStartBefore returns the index of the last interval of l starting
// strictly before t, or -1.
func latestStartBefore(l List, t xprec.Float) int {
	return sort.Search(len(l), func(i int) bool {
		return l[i].Start.GreaterEq(t)
	}) - 1
}

// CrossTwo returns the exact intersection of two GTI lists.
//
// All interval stops of both lists are swept in increasing order. At a stop
// e of one series, the candidate intersection starts at the later of the
// latest starts before e in either series. The candidate is kept unless it
// begins inside the previously emitted interval, or one of the two intervals
// it relies on closes before e.
//
// Returns an error wrapping ErrInvalidInterval or ErrOverlap if either list
// is malformed.
func CrossTwo(a, b List) (List, error) {
	if err := Check(a); err != nil {
		return nil, err
	}
	if err := Check(b); err != nil {
		return nil, err
	}

	series := [2]List{a, b}
	events := make([]stopEvent, 0, len(a)+len(b))
	for s, l := range series {
		for i, g := range l {
			events = append(events, stopEvent{g.Stop, s, i})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].at.Less(events[j].at)
	})

	var (
		crossed = List{}
		lastEnd xprec.Float
		emitted bool
	)
	for _, ev := range events {
		this, other := series[ev.series], series[1-ev.series]
		e := ev.at

		stPos := latestStartBefore(this, e)
		soPos := latestStartBefore(other, e)
		if stPos < 0 || soPos < 0 {
			continue
		}
		s := xprec.Max(this[stPos].Start, other[soPos].Start)

		if emitted && (s.Less(lastEnd) || (s.Equal(lastEnd) && e.Equal(lastEnd))) {
			continue
		}
		// both intervals must still be open at e
		if this[stPos].Stop.Less(e) || other[soPos].Stop.Less(e) {
			continue
		}

		crossed = append(crossed, interval.Interval{Start: s, Stop: e})
		lastEnd = e
		emitted = true
	}

	logger().Debug("crossed gtis", zap.Int("a", len(a)), zap.Int("b", len(b)), zap.Int("result", len(crossed)))
	return crossed, nil
}

// Cross intersects any number of GTI lists by reducing them pairwise from
// left to right. A single list is returned unchanged; no lists yield an empty
// result.
func Cross(lists ...List) (List, error) {
	switch len(lists) {
	case 0:
		return List{}, nil
	case 1:
		return lists[0], nil
	}

	crossed := lists[0]
	for _, l := range lists[1:] {
		var err error
		crossed, err = CrossTwo(crossed, l)
		if err != nil {
			return nil, err
		}
	}
	return crossed, nil
}
