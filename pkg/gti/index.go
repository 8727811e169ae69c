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
	"github.com/google/btree"

	"github.com/NVIDIA/gtikit/pkg/interval"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

type indexItem struct {
	interval.Interval
}

func (it indexItem) Less(than btree.Item) bool {
	return it.Start.Less(than.(indexItem).Start)
}

// Index answers "which GTI contains t" in logarithmic time.
type Index struct {
	items *btree.BTree
}

// NewIndex validates gtis and indexes them by start time.
func NewIndex(gtis List) (*Index, error) {
	if err := Check(gtis); err != nil {
		return nil, err
	}

	items := btree.New(16)
	for _, g := range gtis {
		items.ReplaceOrInsert(indexItem{g})
	}
	return &Index{items}, nil
}

func (idx *Index) Len() int {
	return idx.items.Len()
}

// Find returns the GTI containing t. When t is the boundary shared by two
// touching GTIs the later one is returned.
func (idx *Index) Find(t xprec.Float) (interval.Interval, bool) {
	var (
		found interval.Interval
		ok    bool
	)
	probe := indexItem{interval.Interval{Start: t, Stop: t}}
	idx.items.DescendLessOrEqual(probe, func(i btree.Item) bool {
		g := i.(indexItem).Interval
		ok = g.Contains(t)
		found = g
		return false
	})
	if !ok {
		return interval.Interval{}, false
	}
	return found, true
}

func (idx *Index) Contains(t xprec.Float) bool {
	_, ok := idx.Find(t)
	return ok
}

// SelectEvents returns the event times that fall inside gtis, in their
// original order.
func SelectEvents(times []xprec.Float, gtis List) ([]xprec.Float, error) {
	idx, err := NewIndex(gtis)
	if err != nil {
		return nil, err
	}

	selected := make([]xprec.Float, 0, len(times))
	for _, t := range times {
		if idx.Contains(t) {
			selected = append(selected, t)
		}
	}
	return selected, nil
}
