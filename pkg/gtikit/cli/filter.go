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

type FilterCmd struct {
	GTI    string `name:"gti" help:"GTI table" required:"true"`
	Events string `help:"Event list, the first column holds the times" required:"true"`
}

func (cmd *FilterCmd) Run(globals *Globals) error {
	ctx := context.Background()
	loader, err := globals.loader()
	if err != nil {
		return err
	}

	gtis, err := loadList(ctx, loader, cmd.GTI)
	if err != nil {
		return err
	}
	events, err := loader.Events(ctx, cmd.Events)
	if err != nil {
		return err
	}

	selected, err := gti.SelectEvents(events, gtis)
	if err != nil {
		return err
	}
	zap.L().Debug("filtered events", zap.Int("events", len(events)), zap.Int("selected", len(selected)))
	return gtiio.WriteEvents(stdout, selected, globals.output())
}
