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

	"github.com/NVIDIA/gtikit/pkg/xprec"
)

// BorderBins maps each GTI to the range of axis samples it covers. The start
// bin is the sample whose left edge is nearest the GTI start and the stop bin
// is one past the sample whose right edge is nearest the GTI stop, so
// axis[startBins[i]:stopBins[i]] are the samples of GTI i. GTIs that enclose
// no sample bin are skipped.
//
// Returns an error wrapping ErrNoValidChunks if no GTI encloses a sample, or
// a validation error.
func BorderBins(gtis List, axis Axis) (startBins, stopBins []int, err error) {
	if err := Check(gtis); err != nil {
		return nil, nil, err
	}

	for _, g := range gtis {
		start, stop, ok := borders(axis, g.Start, g.Stop, false)
		if !ok {
			logger().Debug("gti encloses no samples", zap.Stringer("gti", g))
			continue
		}
		startBins = append(startBins, start)
		stopBins = append(stopBins, stop)
	}

	if len(startBins) == 0 {
		return nil, nil, errors.Wrap(ErrNoValidChunks, "no gti encloses a sample")
	}
	return startBins, stopBins, nil
}

// borders locates the border samples of [lo, hi]. ok is false when no sample
// bin lies inside it; strict excludes bins touching lo or hi.
func borders(axis Axis, lo, hi xprec.Float, strict bool) (start, stop int, ok bool) {
	for i := axis.searchTime(lo); i < axis.Len() && axis.Time(i).LessEq(hi); i++ {
		l, r := axis.left(i), axis.right(i)
		if strict {
			ok = l.Greater(lo) && r.Less(hi)
		} else {
			ok = l.GreaterEq(lo) && r.LessEq(hi)
		}
		if ok {
			break
		}
	}
	if !ok {
		return 0, 0, false
	}

	start = axis.nearest(axis.left, lo)
	if axis.Time(start).Less(lo) {
		start++
	}
	stop = axis.nearest(axis.right, hi)
	if !axis.Time(stop).Greater(hi) {
		stop++
	}
	return start, stop, true
}
