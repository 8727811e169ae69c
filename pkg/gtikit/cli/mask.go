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
package gtikit_cli

import (
	"context"

	"go.uber.org/zap"

	"github.com/NVIDIA/gtikit/pkg/gti"
	"github.com/NVIDIA/gtikit/pkg/gtiio"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

type MaskCmd struct {
	GTI       string           `name:"gti" help:"GTI table" required:"true"`
	Series    string           `help:"Series to mask" required:"true"`
	Margin    gti.SafetyMargin `help:"Contract each GTI by this much, either 'v' or 'start,end'"`
	MinLength xprec.Float      `help:"Ignore GTIs shorter than this after contraction" default:"0"`
	Pruned    bool             `help:"Print the contracted GTIs that were used instead of the samples"`
}

func (cmd *MaskCmd) Run(globals *Globals) error {
	ctx := context.Background()
	loader, err := globals.loader()
	if err != nil {
		return err
	}

	gtis, err := loadList(ctx, loader, cmd.GTI)
	if err != nil {
		return err
	}
	series, axis, err := loadAxis(ctx, loader, cmd.Series)
	if err != nil {
		return err
	}

	mask, pruned, err := gti.MaskAndPrune(axis, gtis, gti.MaskOptions{
		Margin:    cmd.Margin,
		MinLength: cmd.MinLength,
	})
	if err != nil {
		return err
	}
	if cmd.Pruned {
		return gtiio.WriteList(stdout, pruned, globals.output())
	}

	kept := &gtiio.Series{}
	for i, ok := range mask {
		if !ok {
			continue
		}
		kept.Times = append(kept.Times, series.Times[i])
		kept.Values = append(kept.Values, series.Values[i])
		if series.HalfWidths != nil {
			kept.HalfWidths = append(kept.HalfWidths, series.HalfWidths[i])
		}
	}
	zap.L().Debug("masked series", zap.Int("samples", series.Len()), zap.Int("kept", kept.Len()))
	return gtiio.WriteSeries(stdout, kept, globals.output())
}

type ConditionCmd struct {
	Series string           `help:"Series to threshold" required:"true"`
	Above  float64          `help:"Samples with a value above this are good" required:"true"`
	Margin gti.SafetyMargin `help:"Contract each GTI by this much, either 'v' or 'start,end'"`
}

func (cmd *ConditionCmd) Run(globals *Globals) error {
	loader, err := globals.loader()
	if err != nil {
		return err
	}

	series, axis, err := loadAxis(context.Background(), loader, cmd.Series)
	if err != nil {
		return err
	}

	cond := make([]bool, series.Len())
	for i, v := range series.Values {
		cond[i] = v > cmd.Above
	}
	gtis, err := gti.FromCondition(axis, cond, cmd.Margin)
	if err != nil {
		return err
	}
	return gtiio.WriteList(stdout, gtis, globals.output())
}
