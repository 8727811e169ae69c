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

	"github.com/NVIDIA/gtikit/pkg/interval"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

type bounds struct {
	start, stop       xprec.Float
	hasStart, hasStop bool
}

// Bound sets one end of the observation window for BTIs.
type Bound func(*bounds)

func StartAt(t xprec.Float) Bound {
	return func(b *bounds) {
		b.start = t
		b.hasStart = true
	}
}

func StopAt(t xprec.Float) Bound {
	return func(b *bounds) {
		b.stop = t
		b.hasStop = true
	}
}

// BTIs returns the bad time intervals of gtis: the gap between the window
// start and the first GTI, the gaps between consecutive GTIs and the gap
// between the last GTI and the window stop. Zero-length gaps are omitted.
// The window defaults to the span of gtis.
//
// Returns an error wrapping ErrAmbiguousBounds if gtis is empty and the
// window is not fully specified, or a validation error.
func BTIs(gtis List, window ...Bound) (List, error) {
	var b bounds
	for _, fn := range window {
		fn(&b)
	}

	if len(gtis) == 0 {
		if !b.hasStart || !b.hasStop {
			return nil, errors.WithStack(ErrAmbiguousBounds)
		}
		return List{{Start: b.start, Stop: b.stop}}, nil
	}
	if err := Check(gtis); err != nil {
		return nil, err
	}

	if !b.hasStart {
		b.start = gtis[0].Start
	}
	if !b.hasStop {
		b.stop = gtis[len(gtis)-1].Stop
	}

	btis := List{}
	if b.start.Less(gtis[0].Start) {
		btis = append(btis, interval.Interval{Start: b.start, Stop: gtis[0].Start})
	}
	for i := 1; i < len(gtis); i++ {
		if gtis[i-1].Stop.Less(gtis[i].Start) {
			btis = append(btis, interval.Interval{Start: gtis[i-1].Stop, Stop: gtis[i].Start})
		}
	}
	if last := gtis[len(gtis)-1].Stop; b.stop.Greater(last) {
		btis = append(btis, interval.Interval{Start: last, Stop: b.stop})
	}
	return btis, nil
}
