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
	"io"
	"os"
	"reflect"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/units"
	"github.com/pkg/errors"

	"github.com/NVIDIA/gtikit/pkg/catalog"
	"github.com/NVIDIA/gtikit/pkg/gti"
	"github.com/NVIDIA/gtikit/pkg/gtiio"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

// stdout receives command results. Logs go to stderr.
var stdout io.Writer = os.Stdout

type Globals struct {
	LogLevel    string   `help:"Set the logging level (debug|info|warn|error)" default:"info"`
	CacheSize   units.SI `help:"Memory for decoded tables, 0 disables the cache" default:"64MiB"`
	Concurrency int      `help:"Tables fetched in parallel" default:"8"`
	Format      string   `help:"Input table format" enum:"auto,text,json,yaml" default:"auto"`
	Output      string   `short:"o" help:"Output format" enum:"text,json,yaml" default:"text"`
}

type CLI struct {
	Globals

	Check     CheckCmd     `cmd:"" help:"Validate GTI tables"`
	Cross     CrossCmd     `cmd:"" help:"Intersect GTI tables"`
	Join      JoinCmd      `cmd:"" help:"Merge GTI tables"`
	Btis      BtisCmd      `cmd:"" help:"Print the bad time intervals of a GTI table"`
	Exposure  ExposureCmd  `cmd:"" help:"Print the good time covered by GTI tables"`
	List      ListCmd      `cmd:"" help:"Print a timeline of good and bad intervals"`
	Mask      MaskCmd      `cmd:"" help:"Keep the samples of a series that lie inside GTIs"`
	Condition ConditionCmd `cmd:"" help:"Build GTIs where a series is above a threshold"`
	Chunks    ChunksCmd    `cmd:"" help:"Split GTIs into fixed-length chunks"`
	Borders   BordersCmd   `cmd:"" help:"Print the sample ranges covered by each GTI"`
	Filter    FilterCmd    `cmd:"" help:"Keep the events that fall inside GTIs"`
	Version   VersionCmd   `cmd:"" help:"Print the client version information"`
}

// TypeMappers returns the kong options needed to parse CLI.
func TypeMappers() []kong.Option {
	return []kong.Option{
		SITypeMapper(),
		TimeTypeMapper(),
		BoundTypeMapper(),
		MarginTypeMapper(),
	}
}

func SIDecoder(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	if err := ctx.Scan.PopValueInto("size", &value); err != nil {
		return err
	}

	si, err := units.ParseStrictBytes(value)
	if err != nil {
		return err
	}
	target.Set(reflect.ValueOf(units.SI(si)))
	return nil
}

func SITypeMapper() kong.Option {
	var si units.SI
	return kong.TypeMapper(reflect.TypeOf(si), kong.MapperFunc(SIDecoder))
}

func TimeDecoder(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	if err := ctx.Scan.PopValueInto("time", &value); err != nil {
		return err
	}

	t, err := xprec.Parse(value)
	if err != nil {
		return err
	}
	target.Set(reflect.ValueOf(t))
	return nil
}

func TimeTypeMapper() kong.Option {
	var t xprec.Float
	return kong.TypeMapper(reflect.TypeOf(t), kong.MapperFunc(TimeDecoder))
}

// Bound is an optional time flag.
type Bound struct {
	Time xprec.Float
	Set  bool
}

func BoundDecoder(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	if err := ctx.Scan.PopValueInto("time", &value); err != nil {
		return err
	}

	var b Bound
	if value != "" {
		t, err := xprec.Parse(value)
		if err != nil {
			return err
		}
		b = Bound{Time: t, Set: true}
	}
	target.Set(reflect.ValueOf(b))
	return nil
}

func BoundTypeMapper() kong.Option {
	var b Bound
	return kong.TypeMapper(reflect.TypeOf(b), kong.MapperFunc(BoundDecoder))
}

func MarginDecoder(ctx *kong.DecodeContext, target reflect.Value) error {
	var value string
	if err := ctx.Scan.PopValueInto("margin", &value); err != nil {
		return err
	}

	var m gti.SafetyMargin
	if value != "" {
		var err error
		m, err = gti.ParseSafetyMargin(value)
		if err != nil {
			return err
		}
	}
	target.Set(reflect.ValueOf(m))
	return nil
}

func MarginTypeMapper() kong.Option {
	var m gti.SafetyMargin
	return kong.TypeMapper(reflect.TypeOf(m), kong.MapperFunc(MarginDecoder))
}

func (g *Globals) loader() (*catalog.Loader, error) {
	return catalog.New(catalog.Options{
		CacheSize:   int64(g.CacheSize),
		Concurrency: g.Concurrency,
		Format:      g.Format,
	})
}

func (g *Globals) output() gtiio.Format {
	f, err := gtiio.ParseFormat(g.Output)
	if err != nil {
		return gtiio.Text
	}
	return f
}

// loadList fetches one GTI table and validates it.
func loadList(ctx context.Context, loader *catalog.Loader, url string) (gti.List, error) {
	l, err := loader.List(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := gti.Check(l); err != nil {
		return nil, errors.Wrap(err, url)
	}
	return l, nil
}

// loadAxis fetches a series and its sample axis.
func loadAxis(ctx context.Context, loader *catalog.Loader, url string) (*gtiio.Series, gti.Axis, error) {
	s, err := loader.Series(ctx, url)
	if err != nil {
		return nil, gti.Axis{}, err
	}
	axis, err := s.Axis()
	if err != nil {
		return nil, gti.Axis{}, errors.Wrap(err, url)
	}
	return s, axis, nil
}
