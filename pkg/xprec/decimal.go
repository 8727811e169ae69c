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

package xprec

import (
	"bytes"
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// significantDigits is the number of decimal digits String keeps for values
// that need both components.
const significantDigits = 32

// Parse converts a decimal string such as "315569460.000000123" to the
// nearest Float. The conversion goes through an exact decimal so that digits
// beyond float64 precision end up in the low component.
func Parse(s string) (Float, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Zero, errors.Wrapf(err, "xprec: parsing %q", s)
	}
	return FromDecimal(d), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Float {
	x, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return x
}

func FromDecimal(d decimal.Decimal) Float {
	hi, _ := d.Float64()
	if math.IsInf(hi, 0) {
		return Float{hi: hi}
	}
	lo, _ := d.Sub(exactDecimal(hi)).Float64()
	return normalize(hi, lo)
}

// Decimal returns the exact decimal value of x.
func (x Float) Decimal() decimal.Decimal {
	return exactDecimal(x.hi).Add(exactDecimal(x.lo))
}

func (x Float) String() string {
	if math.IsInf(x.hi, 0) || math.IsNaN(x.hi) {
		return big.NewFloat(x.hi).String()
	}
	if x.lo == 0 {
		return decimal.NewFromFloat(x.hi).String()
	}

	d := x.Decimal()
	intDigits := int32(len(d.Abs().Truncate(0).String()))
	return d.Round(significantDigits - intDigits).String()
}

func (x Float) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *Float) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// MarshalJSON encodes x as a bare JSON number.
func (x Float) MarshalJSON() ([]byte, error) {
	if math.IsInf(x.hi, 0) || math.IsNaN(x.hi) {
		return nil, errors.Errorf("xprec: cannot encode %s as JSON", x)
	}
	return []byte(x.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a string holding a number.
func (x *Float) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	return x.UnmarshalText(data)
}

// exactDecimal returns the exact decimal expansion of a finite float64.
func exactDecimal(f float64) decimal.Decimal {
	if f == 0 {
		return decimal.Zero
	}

	mant, exp := math.Frexp(f)
	m := int64(mant * (1 << 53))
	e := exp - 53

	bi := big.NewInt(m)
	if e >= 0 {
		bi.Lsh(bi, uint(e))
		return decimal.NewFromBigInt(bi, 0)
	}

	// m * 2^e == m * 5^-e * 10^e
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-e)), nil)
	bi.Mul(bi, five)
	return decimal.NewFromBigInt(bi, int32(e))
}
