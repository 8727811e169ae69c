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


package catalog

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/badgerodon/collections/queue"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/gtikit/pkg/gti"
	"github.com/NVIDIA/gtikit/pkg/storage"
	"github.com/NVIDIA/gtikit/pkg/storage/driver"
)

// ErrNoTables is returned when a directory holds no table.
var ErrNoTables = errors.New("catalog: no tables found")

var tableExts = map[string]bool{
	".txt":  true,
	".dat":  true,
	".csv":  true,
	".gti":  true,
	".json": true,
	".yaml": true,
	".yml":  true,
}

// LoadAll expands urls and fetches every GTI table they name, at most
// Options.Concurrency at a time. Results are in expansion order.
//
// A fetch or decode failure aborts the whole load. Tables that decode but
// fail gti.Check are all reported in one *multierror.Error, returned along
// with the lists.
func (l *Loader) LoadAll(ctx context.Context, urls ...string) ([]string, []gti.List, error) {
	expanded, err := l.Expand(ctx, urls...)
	if err != nil {
		return nil, nil, err
	}

	lists := make([]gti.List, len(expanded))
	g, gctx := errgroup.WithContext(ctx)
	var acquireErr error
	for i, url := range expanded {
		if acquireErr = l.sem.Acquire(gctx, 1); acquireErr != nil {
			break
		}
		i, url := i, url
		g.Go(func() error {
			defer l.sem.Release(1)
			list, err := l.List(gctx, url)
			if err != nil {
				return err
			}
			lists[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if acquireErr != nil {
		return nil, nil, acquireErr
	}

	var merr *multierror.Error
	for i, list := range lists {
		if err := gti.Check(list); err != nil {
			merr = multierror.Append(merr, errors.Wrap(err, expanded[i]))
		}
	}
	logger().Debug("loaded tables", zap.Int("count", len(lists)), zap.Int64("bytes", l.BytesRead()))
	return expanded, lists, merr.ErrorOrNil()
}

// Expand replaces directory URLs with the tables below them. Local paths
// are directories if they stat as one, other URLs if they end in '/'.
// Directories are walked level by level, each in name order.
func (l *Loader) Expand(ctx context.Context, urls ...string) ([]string, error) {
	var expanded []string
	for _, url := range urls {
		isDir, err := isDirectory(ctx, url)
		if err != nil {
			return nil, errors.Wrap(err, "expanding "+url)
		}
		if !isDir {
			expanded = append(expanded, url)
			continue
		}

		tables, err := l.walk(ctx, url)
		if err != nil {
			return nil, errors.Wrap(err, "expanding "+url)
		}
		if len(tables) == 0 {
			return nil, errors.Wrap(ErrNoTables, url)
		}
		expanded = append(expanded, tables...)
	}
	return expanded, nil
}

func isDirectory(ctx context.Context, url string) (bool, error) {
	if strings.HasSuffix(url, "/") {
		return true, nil
	}
	scheme, err := driver.Scheme(url)
	if err != nil {
		return false, err
	}
	if scheme != "file" {
		return false, nil
	}

	fi, err := storage.Stat(ctx, url)
	if err != nil {
		if os.IsNotExist(err) {
			// let the fetch report it
			return false, nil
		}
		return false, err
	}
	return fi.IsDir(), nil
}

func (l *Loader) walk(ctx context.Context, root string) ([]string, error) {
	var tables []string

	q := queue.New()
	q.Enqueue(root)
	for q.Len() > 0 {
		dir := q.Dequeue().(string)
		children, err := l.readdir(ctx, dir)
		if err != nil {
			return nil, err
		}

		it := children.Iterator()
		for it.Next() {
			name := it.Key().(string)
			fi := it.Value().(os.FileInfo)
			url := storage.Child(dir, name)
			switch {
			case fi.IsDir():
				q.Enqueue(url)
			case tableExts[strings.ToLower(path.Ext(name))]:
				tables = append(tables, url)
			default:
				logger().Debug("skipping non-table", zap.String("url", url))
			}
		}
	}
	return tables, nil
}

// readdir lists dir sorted by name, skipping hidden entries.
func (l *Loader) readdir(ctx context.Context, dir string) (*treemap.Map, error) {
	if v, ok := l.listings.Get(dir); ok {
		return v.(*treemap.Map), nil
	}

	infos, err := storage.Readdir(ctx, dir)
	if err != nil {
		return nil, err
	}

	children := treemap.NewWithStringComparator()
	for _, fi := range infos {
		if strings.HasPrefix(fi.Name(), ".") {
			continue
		}
		children.Put(fi.Name(), fi)
	}
	l.listings.Add(dir, children)
	return children, nil
}
