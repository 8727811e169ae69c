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


package gti_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/NVIDIA/gtikit/pkg/gti"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

// unitAxis has n samples at 0.5, 1.5, ... with unit-wide bins.
func unitAxis(n int) gti.Axis {
	return gti.UniformAxis(xprec.FromFloat64(0.5), xprec.One, n)
}

func TestAxis(t *testing.T) {
	a, err := gti.NewAxis(xprec.Floats(1, 3, 5), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 1.0, a.HalfWidth(2).Float64())
	step, ok := a.Step()
	assert.True(t, ok)
	assert.Equal(t, 2.0, step.Float64())

	single, err := gti.NewAxis(xprec.Floats(7), nil)
	require.NoError(t, err)
	assert.True(t, single.HalfWidth(0).IsZero())
	_, ok = single.Step()
	assert.False(t, ok)

	_, err = gti.NewAxis(xprec.Floats(1, 2), xprec.Floats(0.5))
	assert.ErrorIs(t, err, gti.ErrLengthMismatch)

	u := unitAxis(3)
	assert.Equal(t, 2.5, u.Time(2).Float64())
	assert.Equal(t, 0.5, u.HalfWidth(1).Float64())
}

func TestMask(t *testing.T) {
	axis := unitAxis(10)

	mask, err := gti.Mask(axis, list(pairs{{0, 5}, {6.2, 9}}))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, true, true, false, false, true, true, false}, mask)

	mask, err = gti.Mask(axis, list(pairs{{0, 5}}), gti.MaskOptions{Margin: gti.Scalar(xprec.FromFloat64(0.5))})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true, true, false, false, false, false, false, false}, mask)

	mask, err = gti.Mask(axis, list(pairs{{0, 5}}), gti.MaskOptions{Margin: gti.Pair(xprec.Zero, xprec.FromFloat64(2))})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, false, false, false, false, false, false, false}, mask)

	mask, err = gti.Mask(axis, nil)
	require.NoError(t, err)
	assert.Equal(t, make([]bool, 10), mask)
}

func TestMaskAndPrune(t *testing.T) {
	axis := unitAxis(10)
	gtis := list(pairs{{0, 5}, {6, 6.5}, {7, 10}})

	mask, kept, err := gti.MaskAndPrune(axis, gtis, gti.MaskOptions{MinLength: xprec.One})
	require.NoError(t, err)
	assert.True(t, list(pairs{{0, 5}, {7, 10}}).Equal(kept), "got %s", kept)
	assert.Equal(t, []bool{true, true, true, true, true, false, false, true, true, true}, mask)

	// a margin wider than the interval collapses it
	_, kept, err = gti.MaskAndPrune(axis, list(pairs{{0, 5}, {6, 7}}), gti.MaskOptions{Margin: gti.Scalar(xprec.One)})
	require.NoError(t, err)
	assert.True(t, list(pairs{{1, 4}}).Equal(kept), "got %s", kept)

	_, _, err = gti.MaskAndPrune(axis, list(pairs{{0, 5}, {4, 8}}))
	assert.ErrorIs(t, err, gti.ErrOverlap)
}

func TestMaskLogsDroppedIntervals(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	undo := zap.ReplaceGlobals(zap.New(core))
	defer undo()

	_, _, err := gti.MaskAndPrune(unitAxis(10), list(pairs{{0, 5}, {6, 6.5}}), gti.MaskOptions{MinLength: xprec.One})
	require.NoError(t, err)

	dropped := logs.FilterMessage("dropping short gti").All()
	require.Len(t, dropped, 1)
	assert.Equal(t, "gti", dropped[0].LoggerName)
	assert.Equal(t, "[6, 6.5]", dropped[0].ContextMap()["gti"])
}

func TestMaskVaryingHalfWidths(t *testing.T) {
	axis, err := gti.NewAxis(xprec.Floats(1, 2, 4), xprec.Floats(0.5, 0.5, 1.5))
	require.NoError(t, err)

	mask, err := gti.Mask(axis, list(pairs{{0, 5}}))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false}, mask)

	mask, err = gti.Mask(axis, list(pairs{{0, 5.5}}))
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true}, mask)
}

func TestMaskMatchesPrunedList(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	axis := gti.UniformAxis(xprec.Zero, xprec.FromFloat64(0.25), 200)
	for i := 0; i < 100; i++ {
		gtis := randomList(rng, 1+rng.Intn(10))
		opts := gti.MaskOptions{
			Margin:    gti.Scalar(xprec.FromFloat64(0.25 * float64(rng.Intn(3)))),
			MinLength: xprec.FromFloat64(float64(rng.Intn(2))),
		}
		mask, kept, err := gti.MaskAndPrune(axis, gtis, opts)
		require.NoError(t, err)
		require.NoError(t, gti.Check(kept))

		for j, m := range mask {
			tm := axis.Time(j)
			hw := axis.HalfWidth(j)
			enclosed := false
			for _, g := range kept {
				if g.Encloses(tm.Sub(hw), tm.Add(hw)) {
					enclosed = true
				}
			}
			require.Equal(t, enclosed, m, "sample %d of %s", j, gtis)
		}
	}
}

func TestFromCondition(t *testing.T) {
	axis := unitAxis(8)
	cond := []bool{false, true, true, true, false, false, true, true}

	gtis, err := gti.FromCondition(axis, cond, gti.SafetyMargin{})
	require.NoError(t, err)
	assert.True(t, list(pairs{{1, 4}, {6, 8}}).Equal(gtis), "got %s", gtis)

	gtis, err = gti.FromCondition(axis, cond, gti.Scalar(xprec.FromFloat64(0.25)))
	require.NoError(t, err)
	assert.True(t, list(pairs{{1.25, 3.75}, {6.25, 7.75}}).Equal(gtis), "got %s", gtis)

	gtis, err = gti.FromCondition(axis, cond, gti.Scalar(xprec.FromFloat64(1.25)))
	require.NoError(t, err)
	assert.True(t, list(pairs{{2.25, 2.75}}).Equal(gtis), "got %s", gtis)

	gtis, err = gti.FromCondition(axis, make([]bool, 8), gti.SafetyMargin{})
	require.NoError(t, err)
	assert.Empty(t, gtis)

	_, err = gti.FromCondition(axis, cond[:3], gti.SafetyMargin{})
	assert.ErrorIs(t, err, gti.ErrLengthMismatch)
}

func TestFromConditionRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	axis := unitAxis(64)
	for i := 0; i < 100; i++ {
		cond := make([]bool, axis.Len())
		for j := range cond {
			cond[j] = rng.Intn(3) > 0
		}
		gtis, err := gti.FromCondition(axis, cond, gti.SafetyMargin{})
		require.NoError(t, err)
		require.NoError(t, gti.Check(gtis))

		mask, err := gti.Mask(axis, gtis)
		require.NoError(t, err)
		require.Equal(t, cond, mask)
	}
}
