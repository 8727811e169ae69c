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

// Package xprec implements an extended precision floating point value
// used for mission time stamps.
//
// A Float is the unevaluated sum of two float64 values (a "double-double"),
// normalized so that |lo| <= ulp(hi)/2. That gives roughly 106 bits of
// mantissa: a time stamp of 1e9 seconds keeps resolution well below a
// nanosecond.
package xprec

import (
	"math"
)

type Float struct {
	hi float64
	lo float64
}

var (
	Zero = Float{}
	One  = Float{hi: 1}
)

func FromFloat64(v float64) Float {
	return Float{hi: v}
}

// Floats converts a list of float64 values.
func Floats(vals ...float64) []Float {
	out := make([]Float, len(vals))
	for i, v := range vals {
		out[i] = Float{hi: v}
	}
	return out
}

func FromInt64(v int64) Float {
	hi := float64(v)
	// int64 values above 2^53 do not fit in a single float64
	lo := float64(v - int64(hi))
	return normalize(hi, lo)
}

// Float64 returns the nearest float64.
func (x Float) Float64() float64 {
	return x.hi + x.lo
}

// Parts returns the high and low components.
func (x Float) Parts() (hi, lo float64) {
	return x.hi, x.lo
}

func (x Float) IsZero() bool {
	return x.hi == 0 && x.lo == 0
}

func (x Float) Sign() int {
	switch {
	case x.hi > 0:
		return 1
	case x.hi < 0:
		return -1
	case x.lo > 0:
		return 1
	case x.lo < 0:
		return -1
	}
	return 0
}

func (x Float) Neg() Float {
	return Float{hi: -x.hi, lo: -x.lo}
}

func (x Float) Abs() Float {
	if x.Sign() < 0 {
		return x.Neg()
	}
	return x
}

func (x Float) Add(y Float) Float {
	s, e := twoSum(x.hi, y.hi)
	t, f := twoSum(x.lo, y.lo)
	e += t
	s, e = quickTwoSum(s, e)
	e += f
	return normalize(s, e)
}

func (x Float) Sub(y Float) Float {
	return x.Add(y.Neg())
}

func (x Float) Mul(y Float) Float {
	p, e := twoProd(x.hi, y.hi)
	e += x.hi*y.lo + x.lo*y.hi
	return normalize(p, e)
}

// MulInt multiplies by an integer without accumulating rounding error
// across repeated additions.
func (x Float) MulInt(n int) Float {
	return x.Mul(FromInt64(int64(n)))
}

func (x Float) Div(y Float) Float {
	q1 := x.hi / y.hi
	r := x.Sub(y.mulFloat64(q1))
	q2 := r.hi / y.hi
	r = r.Sub(y.mulFloat64(q2))
	q3 := r.hi / y.hi
	return normalize(q1, q2).Add(Float{hi: q3})
}

// Half returns x/2, which is exact.
func (x Float) Half() Float {
	return Float{hi: x.hi / 2, lo: x.lo / 2}
}

func (x Float) mulFloat64(v float64) Float {
	p, e := twoProd(x.hi, v)
	e += x.lo * v
	return normalize(p, e)
}

// Cmp returns -1, 0 or +1 depending on whether x is less than, equal to or
// greater than y.
func (x Float) Cmp(y Float) int {
	switch {
	case x.hi < y.hi:
		return -1
	case x.hi > y.hi:
		return 1
	case x.lo < y.lo:
		return -1
	case x.lo > y.lo:
		return 1
	}
	return 0
}

func (x Float) Less(y Float) bool {
	return x.Cmp(y) < 0
}

func (x Float) LessEq(y Float) bool {
	return x.Cmp(y) <= 0
}

func (x Float) Greater(y Float) bool {
	return x.Cmp(y) > 0
}

func (x Float) GreaterEq(y Float) bool {
	return x.Cmp(y) >= 0
}

// Equal reports exact equality of both components.
func (x Float) Equal(y Float) bool {
	return x.hi == y.hi && x.lo == y.lo
}

func Max(x, y Float) Float {
	if x.Less(y) {
		return y
	}
	return x
}

func Min(x, y Float) Float {
	if y.Less(x) {
		return y
	}
	return x
}

// Trunc returns x rounded toward zero as an int64.
func (x Float) Trunc() int64 {
	t := math.Trunc(x.hi)
	if t != x.hi {
		// the low word is smaller than the distance from hi to the
		// nearest integer
		return int64(t)
	}
	if x.hi >= 0 {
		return int64(t) + int64(math.Floor(x.lo))
	}
	return int64(t) + int64(math.Ceil(x.lo))
}

func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return
}

func quickTwoSum(a, b float64) (s, e float64) {
	s = a + b
	e = b - (s - a)
	return
}

func twoProd(a, b float64) (p, e float64) {
	p = a * b
	e = math.FMA(a, b, -p)
	return
}

func normalize(hi, lo float64) Float {
	s, e := quickTwoSum(hi, lo)
	if math.IsInf(s, 0) || math.IsNaN(s) {
		return Float{hi: s}
	}
	return Float{hi: s, lo: e}
}
