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

// Package gti implements the Good Time Interval algebra: validation,
// masking of sampled time axes, crossing (intersection), joining (union),
// bad time interval derivation and fixed-length chunk planning.
//
// Every function is pure. Inputs are never modified and results never share
// backing arrays with inputs.
package gti

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/OneOfOne/xxhash"
	"go.uber.org/zap"

	"github.com/NVIDIA/gtikit/pkg/interval"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

// List is an ordered sequence of intervals. A well-formed List is sorted and
// non-overlapping; see Check.
type List []interval.Interval

// FromPairs builds a List from float64 [start, stop] pairs.
func FromPairs(pairs ...[2]float64) List {
	l := make(List, len(pairs))
	for i, p := range pairs {
		l[i] = interval.New(p[0], p[1])
	}
	return l
}

func (l List) Clone() List {
	if l == nil {
		return nil
	}
	c := make(List, len(l))
	copy(c, l)
	return c
}

func (l List) Starts() []xprec.Float {
	s := make([]xprec.Float, len(l))
	for i, g := range l {
		s[i] = g.Start
	}
	return s
}

func (l List) Stops() []xprec.Float {
	s := make([]xprec.Float, len(l))
	for i, g := range l {
		s[i] = g.Stop
	}
	return s
}

func (l List) Equal(m List) bool {
	if len(l) != len(m) {
		return false
	}
	for i := range l {
		if !l[i].Equal(m[i]) {
			return false
		}
	}
	return true
}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, g := range l {
		parts[i] = g.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Exposure returns the total good time covered by l.
func Exposure(l List) xprec.Float {
	total := xprec.Zero
	for _, g := range l {
		total = total.Add(g.Len())
	}
	return total
}

// Fingerprint returns a 64-bit hash of the exact boundary values of l. Two
// lists have the same fingerprint when they hold bit-identical intervals.
func Fingerprint(l List) uint64 {
	h := xxhash.New64()
	var buf [8]byte
	put := func(x xprec.Float) {
		hi, lo := x.Parts()
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(hi))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(lo))
		h.Write(buf[:])
	}
	for _, g := range l {
		put(g.Start)
		put(g.Stop)
	}
	return h.Sum64()
}

func logger() *zap.Logger {
	return zap.L().Named("gti")
}
