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

package xprec_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/gtikit/pkg/xprec"
)

func TestSubMicrosecondResolution(t *testing.T) {
	// a float64 cannot tell these apart
	a := xprec.MustParse("1000000000.00000001")
	b := xprec.MustParse("1000000000.00000002")
	assert.Equal(t, a.Float64(), b.Float64())
	assert.True(t, a.Less(b))

	d := b.Sub(a)
	assert.InDelta(t, 1e-8, d.Float64(), 1e-20)
}

func TestAddSubRoundTrip(t *testing.T) {
	base := xprec.MustParse("315569460.25")
	step := xprec.MustParse("0.000000001")
	x := base
	for i := 0; i < 1000; i++ {
		x = x.Add(step)
	}
	want := xprec.MustParse("315569460.250001")
	assert.InDelta(t, 0, x.Sub(want).Float64(), 1e-18, "got %s", x)
	for i := 0; i < 1000; i++ {
		x = x.Sub(step)
	}
	assert.InDelta(t, 0, x.Sub(base).Float64(), 1e-18, "got %s", x)
}

func TestMulIntMatchesRepeatedAdd(t *testing.T) {
	step := xprec.MustParse("0.1")
	sum := xprec.Zero
	for i := 0; i < 10; i++ {
		sum = sum.Add(step)
	}
	assert.Equal(t, "1", step.MulInt(10).String())
	assert.InDelta(t, 0, sum.Sub(xprec.One).Float64(), 1e-30)
}

func TestDiv(t *testing.T) {
	q := xprec.FromFloat64(10).Div(xprec.FromFloat64(4))
	assert.True(t, q.Equal(xprec.FromFloat64(2.5)))

	third := xprec.One.Div(xprec.FromFloat64(3))
	back := third.MulInt(3)
	assert.InDelta(t, 0, back.Sub(xprec.One).Float64(), 1e-30)
}

func TestTrunc(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"2.9", 2},
		{"-2.9", -2},
		{"5", 5},
		{"4.99999999999999999999", 4},
		{"-4.99999999999999999999", -4},
		{"9007199254740993", 9007199254740993},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, xprec.MustParse(c.in).Trunc(), c.in)
	}
}

func TestCmpAndOrdering(t *testing.T) {
	a := xprec.FromFloat64(1)
	b := xprec.MustParse("1.00000000000000000001")
	assert.Equal(t, -1, a.Cmp(b))
	assert.Equal(t, 1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(xprec.One))
	assert.True(t, xprec.Max(a, b).Equal(b))
	assert.True(t, xprec.Min(a, b).Equal(a))
	assert.Equal(t, -1, b.Neg().Sign())
	assert.True(t, b.Neg().Abs().Equal(b))
}

func TestParseErrors(t *testing.T) {
	_, err := xprec.Parse("12:00")
	assert.Error(t, err)
	assert.Panics(t, func() { xprec.MustParse("nope") })
}

func TestString(t *testing.T) {
	cases := map[string]string{
		"0":                   "0",
		"0.5":                 "0.5",
		"-12.25":              "-12.25",
		"0.1":                 "0.1",
		"1000000000.0000001":  "1000000000.0000001",
		"123456789.123456789": "123456789.123456789",
	}
	for in, want := range cases {
		assert.Equal(t, want, xprec.MustParse(in).String(), in)
	}
}

func TestJSON(t *testing.T) {
	var pair [2]xprec.Float
	require.NoError(t, json.Unmarshal([]byte(`[1.5, "1000000000.0000001"]`), &pair))
	assert.Equal(t, "1.5", pair[0].String())
	assert.Equal(t, "1000000000.0000001", pair[1].String())

	b, err := json.Marshal(pair)
	require.NoError(t, err)
	assert.Equal(t, `[1.5,1000000000.0000001]`, string(b))

	var bad xprec.Float
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
}

func TestFromInt64(t *testing.T) {
	x := xprec.FromInt64(9007199254740993)
	assert.Equal(t, "9007199254740993", x.String())
	assert.Equal(t, int64(9007199254740993), x.Trunc())
}
