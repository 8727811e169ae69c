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

	"github.com/fatih/color"

	"github.com/NVIDIA/gtikit/pkg/gti"
)

type CheckCmd struct {
	URLs []string `arg:"" name:"url" help:"GTI tables, or directories of tables"`
}

func (cmd *CheckCmd) Run(globals *Globals) error {
	loader, err := globals.loader()
	if err != nil {
		return err
	}

	urls, lists, err := loader.LoadAll(context.Background(), cmd.URLs...)
	if lists == nil {
		return err
	}

	for i, url := range urls {
		if cerr := gti.Check(lists[i]); cerr != nil {
			fmt.Fprintf(stdout, "%s %s: %v\n", color.RedString("FAIL"), url, cerr)
			continue
		}
		fmt.Fprintf(stdout, "%s %s: %d intervals, exposure %s\n", color.GreenString("ok  "), url, len(lists[i]), gti.Exposure(lists[i]))
	}
	return err
}

type ExposureCmd struct {
	URLs []string `arg:"" name:"url" help:"GTI tables, or directories of tables"`
}

func (cmd *ExposureCmd) Run(globals *Globals) error {
	loader, err := globals.loader()
	if err != nil {
		return err
	}

	urls, lists, err := loader.LoadAll(context.Background(), cmd.URLs...)
	if err != nil {
		return err
	}

	for i, url := range urls {
		fmt.Fprintf(stdout, "%s: %s in %d intervals\n", url, gti.Exposure(lists[i]), len(lists[i]))
	}
	return nil
}
