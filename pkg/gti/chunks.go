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

// TimeIntervals splits every GTI at least length long into consecutive
// windows [start, start+length] beginning at the GTI start, so that no window
// crosses a gap. Window k of a GTI starts at Start + k*length.
//
// Returns an error wrapping ErrNoValidChunks if no window fits, or a
// validation error.
func TimeIntervals(gtis List, length xprec.Float) (starts, stops []xprec.Float, err error) {
	if length.Sign() <= 0 {
		return nil, nil, errors.Wrapf(ErrNoValidChunks, "chunk length %s is not positive", length)
	}
	if err := Check(gtis); err != nil {
		return nil, nil, err
	}

	for _, g := range gtis {
		if g.Len().Less(length) {
			logger().Debug("gti shorter than chunk", zap.Stringer("gti", g))
			continue
		}
		for k := 0; ; k++ {
			t0 := g.Start.Add(length.MulInt(k))
			t1 := t0.Add(length)
			if t1.Greater(g.Stop) {
				break
			}
			starts = append(starts, t0)
			stops = append(stops, t1)
		}
	}

	if len(starts) == 0 {
		return nil, nil, errors.Wrapf(ErrNoValidChunks, "no gti is at least %s long", length)
	}
	return starts, stops, nil
}

// BinIntervals is TimeIntervals expressed as sample indices of axis. Each
// chunk spans trunc(length/step) samples, where step is the spacing of the
// first two samples; stop bins are exclusive.
//
// Returns an error wrapping ErrNoValidChunks if no chunk fits, or a
// validation error.
func BinIntervals(gtis List, length xprec.Float, axis Axis) (startBins, stopBins []int, err error) {
	if length.Sign() <= 0 {
		return nil, nil, errors.Wrapf(ErrNoValidChunks, "chunk length %s is not positive", length)
	}
	if err := Check(gtis); err != nil {
		return nil, nil, err
	}
	step, ok := axis.Step()
	if !ok {
		return nil, nil, errors.Wrapf(ErrNoValidChunks, "axis has %d samples", axis.Len())
	}
	nbin := int(length.Div(step).Trunc())
	if nbin < 1 {
		return nil, nil, errors.Wrapf(ErrNoValidChunks, "chunk length %s is shorter than the sample spacing %s", length, step)
	}

	for _, g := range gtis {
		if g.Len().Less(length) {
			continue
		}
		start, stop, ok := borders(axis, g.Start, g.Stop, true)
		if !ok {
			continue
		}
		for b := start; b+nbin <= stop; b += nbin {
			startBins = append(startBins, b)
			stopBins = append(stopBins, b+nbin)
		}
	}

	if len(startBins) == 0 {
		return nil, nil, errors.Wrapf(ErrNoValidChunks, "no gti holds %d samples", nbin)
	}
	return startBins, stopBins, nil
}
