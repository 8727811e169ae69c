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


package gtiio

import (
	"io"

	"github.com/pkg/errors"

	"github.com/NVIDIA/gtikit/pkg/gti"
	"github.com/NVIDIA/gtikit/pkg/interval"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

var (
	listFields   = []string{"start", "stop"}
	seriesFields = []string{"time", "value", "halfwidth"}
	eventFields  = []string{"time"}
)

// ReadList decodes a GTI table. The list is not validated; see gti.Check.
func ReadList(r io.Reader, f Format) (gti.List, error) {
	rows, err := decodeRows(r, f, listFields)
	if err != nil {
		return nil, err
	}

	l := make(gti.List, 0, len(rows))
	for i, rw := range rows {
		if len(rw) != 2 {
			return nil, errors.Wrapf(ErrMalformed, "gti row %d has %d columns, want start and stop", i, len(rw))
		}
		l = append(l, interval.Interval{Start: rw[0], Stop: rw[1]})
	}
	return l, nil
}

// Series is a sampled light curve or similar.
type Series struct {
	Times  []xprec.Float
	Values []float64
	// HalfWidths is nil when the table has no half-width column.
	HalfWidths []xprec.Float
}

func (s Series) Len() int {
	return len(s.Times)
}

// Axis returns the sample axis of s.
func (s Series) Axis() (gti.Axis, error) {
	return gti.NewAxis(s.Times, s.HalfWidths)
}

// ReadSeries decodes a `time value [halfwidth]` table. Either every row has
// a half-width or none does.
func ReadSeries(r io.Reader, f Format) (*Series, error) {
	rows, err := decodeRows(r, f, seriesFields)
	if err != nil {
		return nil, err
	}

	s := &Series{
		Times:  make([]xprec.Float, 0, len(rows)),
		Values: make([]float64, 0, len(rows)),
	}
	for i, rw := range rows {
		if len(rw) < 2 || len(rw) > 3 {
			return nil, errors.Wrapf(ErrMalformed, "series row %d has %d columns, want time, value and an optional half-width", i, len(rw))
		}
		if i == 0 && len(rw) == 3 {
			s.HalfWidths = make([]xprec.Float, 0, len(rows))
		}
		if (len(rw) == 3) != (s.HalfWidths != nil) {
			return nil, errors.Wrapf(ErrMalformed, "series row %d: half-widths must be given for every sample or none", i)
		}

		s.Times = append(s.Times, rw[0])
		s.Values = append(s.Values, rw[1].Float64())
		if len(rw) == 3 {
			s.HalfWidths = append(s.HalfWidths, rw[2])
		}
	}
	return s, nil
}

// ReadEvents decodes a table of event times. Extra columns are ignored.
func ReadEvents(r io.Reader, f Format) ([]xprec.Float, error) {
	rows, err := decodeRows(r, f, eventFields)
	if err != nil {
		return nil, err
	}

	times := make([]xprec.Float, 0, len(rows))
	for i, rw := range rows {
		if len(rw) == 0 {
			return nil, errors.Wrapf(ErrMalformed, "event row %d is empty", i)
		}
		times = append(times, rw[0])
	}
	return times, nil
}
