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

	"github.com/NVIDIA/gtikit/pkg/gti"
	"github.com/NVIDIA/gtikit/pkg/gtiio"
	"github.com/NVIDIA/gtikit/pkg/interval"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

type ChunksCmd struct {
	GTI    string      `name:"gti" help:"GTI table" required:"true"`
	Length xprec.Float `help:"Chunk length" required:"true"`
	Series string      `help:"Print chunks as sample index ranges of this series"`
}

func (cmd *ChunksCmd) Run(globals *Globals) error {
	ctx := context.Background()
	loader, err := globals.loader()
	if err != nil {
		return err
	}

	gtis, err := loadList(ctx, loader, cmd.GTI)
	if err != nil {
		return err
	}

	if cmd.Series != "" {
		_, axis, err := loadAxis(ctx, loader, cmd.Series)
		if err != nil {
			return err
		}
		starts, stops, err := gti.BinIntervals(gtis, cmd.Length, axis)
		if err != nil {
			return err
		}
		return gtiio.WriteBins(stdout, starts, stops, globals.output())
	}

	starts, stops, err := gti.TimeIntervals(gtis, cmd.Length)
	if err != nil {
		return err
	}
	chunks := make(gti.List, len(starts))
	for i := range starts {
		chunks[i] = interval.Interval{Start: starts[i], Stop: stops[i]}
	}
	return gtiio.WriteList(stdout, chunks, globals.output())
}

type BordersCmd struct {
	GTI    string `name:"gti" help:"GTI table" required:"true"`
	Series string `help:"Series whose samples are located" required:"true"`
}

func (cmd *BordersCmd) Run(globals *Globals) error {
	ctx := context.Background()
	loader, err := globals.loader()
	if err != nil {
		return err
	}

	gtis, err := loadList(ctx, loader, cmd.GTI)
	if err != nil {
		return err
	}
	_, axis, err := loadAxis(ctx, loader, cmd.Series)
	if err != nil {
		return err
	}

	starts, stops, err := gti.BorderBins(gtis, axis)
	if err != nil {
		return err
	}
	return gtiio.WriteBins(stdout, starts, stops, globals.output())
}
