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
)

type CrossCmd struct {
	URLs []string `arg:"" name:"url" help:"GTI tables, or directories of tables"`
}

func (cmd *CrossCmd) Run(globals *Globals) error {
	loader, err := globals.loader()
	if err != nil {
		return err
	}

	_, lists, err := loader.LoadAll(context.Background(), cmd.URLs...)
	if err != nil {
		return err
	}

	crossed, err := gti.Cross(lists...)
	if err != nil {
		return err
	}
	zap.L().Debug("crossed", zap.Int("tables", len(lists)), zap.Int("gtis", len(crossed)))
	return gtiio.WriteList(stdout, crossed, globals.output())
}

type JoinCmd struct {
	URLs []string `arg:"" name:"url" help:"GTI tables, or directories of tables"`
}

func (cmd *JoinCmd) Run(globals *Globals) error {
	loader, err := globals.loader()
	if err != nil {
		return err
	}

	_, lists, err := loader.LoadAll(context.Background(), cmd.URLs...)
	if err != nil {
		return err
	}

	var joined gti.List
	for _, l := range lists {
		joined, err = gti.Join(joined, l)
		if err != nil {
			return err
		}
	}
	return gtiio.WriteList(stdout, joined, globals.output())
}

type BtisCmd struct {
	URL   string `arg:"" help:"GTI table"`
	Start Bound  `help:"Observation start, defaults to the first GTI start"`
	Stop  Bound  `help:"Observation stop, defaults to the last GTI stop"`
}

func (cmd *BtisCmd) Run(globals *Globals) error {
	loader, err := globals.loader()
	if err != nil {
		return err
	}

	gtis, err := loadList(context.Background(), loader, cmd.URL)
	if err != nil {
		return err
	}

	btis, err := gti.BTIs(gtis, window(cmd.Start, cmd.Stop)...)
	if err != nil {
		return err
	}
	return gtiio.WriteList(stdout, btis, globals.output())
}

func window(start, stop Bound) []gti.Bound {
	var w []gti.Bound
	if start.Set {
		w = append(w, gti.StartAt(start.Time))
	}
	if stop.Set {
		w = append(w, gti.StopAt(stop.Time))
	}
	return w
}
