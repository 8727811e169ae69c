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
	"fmt"
	"sort"

	"github.com/fatih/color"

	"github.com/NVIDIA/gtikit/pkg/gti"
	"github.com/NVIDIA/gtikit/pkg/interval"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

type ListCmd struct {
	URL   string `arg:"" help:"GTI table"`
	Start Bound  `help:"Observation start, defaults to the first GTI start"`
	Stop  Bound  `help:"Observation stop, defaults to the last GTI stop"`
}

type span struct {
	interval.Interval
	good bool
}

func (cmd *ListCmd) Run(globals *Globals) error {
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

	spans := make([]span, 0, len(gtis)+len(btis))
	for _, g := range gtis {
		spans = append(spans, span{g, true})
	}
	for _, b := range btis {
		spans = append(spans, span{b, false})
	}
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Start.Less(spans[j].Start)
	})

	good := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	for _, s := range spans {
		label := bad("bad ")
		if s.good {
			label = good("good")
		}
		fmt.Fprintf(stdout, "%s %s %s\n", label, s.Interval, s.Len())
	}

	total := xprec.Zero
	if len(spans) > 0 {
		total = spans[len(spans)-1].Stop.Sub(spans[0].Start)
	}
	fmt.Fprintf(stdout, "exposure %s of %s\n", gti.Exposure(gtis), total)
	return nil
}
