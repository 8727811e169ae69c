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
	"go.uber.org/zap"

	"github.com/NVIDIA/gtikit/pkg/xprec"
)

type MaskOptions struct {
	// Margin contracts every interval before samples are tested.
	Margin SafetyMargin
	// MinLength drops intervals shorter than this after contraction.
	MinLength xprec.Float
}

// Mask returns, for every sample of axis, whether its whole bin
// [t-hw, t+hw] lies inside one of the (contracted) intervals of gtis.
func Mask(axis Axis, gtis List, options ...MaskOptions) ([]bool, error) {
	mask, _, err := MaskAndPrune(axis, gtis, options...)
	return mask, err
}

// MaskAndPrune is Mask that also returns the contracted intervals that were
// long enough to contribute.
func MaskAndPrune(axis Axis, gtis List, options ...MaskOptions) ([]bool, List, error) {
	if err := Check(gtis); err != nil {
		return nil, nil, err
	}

	var opts MaskOptions
	if len(options) > 0 {
		opts = options[0]
	}
	marginStart, marginEnd := opts.Margin.Bounds()

	mask := make([]bool, axis.Len())
	kept := make(List, 0, len(gtis))
	for _, g := range gtis {
		lim := g.Shrink(marginStart, marginEnd)
		if lim.Len().Less(opts.MinLength) || !lim.Valid() {
			logger().Debug("dropping short gti", zap.Stringer("gti", g), zap.Stringer("contracted", lim))
			continue
		}
		kept = append(kept, lim)

		// bins have non-negative width, so only samples whose time is
		// inside the interval can qualify
		for i := axis.searchTime(lim.Start); i < axis.Len() && axis.Time(i).LessEq(lim.Stop); i++ {
			if lim.Encloses(axis.left(i), axis.right(i)) {
				mask[i] = true
			}
		}
	}
	return mask, kept, nil
}
