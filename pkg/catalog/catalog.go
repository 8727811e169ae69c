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


// Package catalog fetches and decodes GTI tables, series and event lists
// from storage URLs, expanding directories and caching what it decoded.
package catalog

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/OneOfOne/xxhash"
	"github.com/dgraph-io/ristretto"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/NVIDIA/gtikit/pkg/countio"
	"github.com/NVIDIA/gtikit/pkg/gti"
	"github.com/NVIDIA/gtikit/pkg/gtiio"
	"github.com/NVIDIA/gtikit/pkg/storage"
	"github.com/NVIDIA/gtikit/pkg/xprec"
)

const (
	defaultConcurrency = 8
	listingCacheSize   = 256
)

type Options struct {
	// CacheSize bounds the decoded tables kept in memory, in bytes of
	// source text. Zero disables the cache.
	CacheSize int64
	// Concurrency bounds parallel fetches in LoadAll.
	Concurrency int
	// Format forces a table format; empty or "auto" picks one from the
	// URL extension.
	Format string
}

type Loader struct {
	cache     *ristretto.Cache
	listings  *lru.Cache
	sem       *semaphore.Weighted
	format    gtiio.Format
	autoFmt   bool
	bytesRead int64
}

func New(opts Options) (*Loader, error) {
	l := &Loader{autoFmt: true}

	if opts.Format != "" && opts.Format != "auto" {
		f, err := gtiio.ParseFormat(opts.Format)
		if err != nil {
			return nil, err
		}
		l.format = f
		l.autoFmt = false
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	l.sem = semaphore.NewWeighted(int64(opts.Concurrency))

	if opts.CacheSize > 0 {
		// ten counters per kilobyte, tables are rarely smaller
		counters := opts.CacheSize / 100
		if counters < 1000 {
			counters = 1000
		}
		c, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: counters,
			MaxCost:     opts.CacheSize,
			BufferItems: 64,
			KeyToHash:   keyHash,
			OnEvict: func(key uint64, value interface{}, cost int64) {
				logger().Debug("evicted table", zap.Uint64("key", key), zap.Int64("cost", cost))
			},
		})
		if err != nil {
			return nil, errors.Wrap(err, "catalog: creating cache")
		}
		l.cache = c
	}

	listings, err := lru.New(listingCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: creating listing cache")
	}
	l.listings = listings

	return l, nil
}

type kind uint64

const (
	kindList kind = iota + 1
	kindSeries
	kindEvents
)

type cacheKey struct {
	kind kind
	url  string
}

func keyHash(key interface{}) uint64 {
	k := key.(cacheKey)
	return xxhash.ChecksumString64S(k.url, uint64(k.kind))
}

// List fetches and decodes the GTI table at url. It is not validated.
func (l *Loader) List(ctx context.Context, url string) (gti.List, error) {
	v, err := l.fetch(ctx, kindList, url, func(r io.Reader, f gtiio.Format) (interface{}, error) {
		return gtiio.ReadList(r, f)
	})
	if err != nil {
		return nil, err
	}
	return v.(gti.List).Clone(), nil
}

// Series fetches and decodes the series at url. The result may be shared
// with other callers and must not be modified.
func (l *Loader) Series(ctx context.Context, url string) (*gtiio.Series, error) {
	v, err := l.fetch(ctx, kindSeries, url, func(r io.Reader, f gtiio.Format) (interface{}, error) {
		return gtiio.ReadSeries(r, f)
	})
	if err != nil {
		return nil, err
	}
	return v.(*gtiio.Series), nil
}

// Events fetches and decodes the event times at url.
func (l *Loader) Events(ctx context.Context, url string) ([]xprec.Float, error) {
	v, err := l.fetch(ctx, kindEvents, url, func(r io.Reader, f gtiio.Format) (interface{}, error) {
		return gtiio.ReadEvents(r, f)
	})
	if err != nil {
		return nil, err
	}
	times := v.([]xprec.Float)
	return append([]xprec.Float(nil), times...), nil
}

type decodeFunc func(r io.Reader, f gtiio.Format) (interface{}, error)

func (l *Loader) fetch(ctx context.Context, k kind, url string, decode decodeFunc) (interface{}, error) {
	key := cacheKey{k, url}
	if l.cache != nil {
		if v, ok := l.cache.Get(key); ok {
			logger().Debug("cache hit", zap.String("url", url))
			return v, nil
		}
	}

	obj, err := storage.Open(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "loading "+url)
	}
	defer obj.Close()

	cr := countio.NewReaderWithAtomicCounter(obj, &l.bytesRead)
	v, err := decode(cr, l.formatFor(url))
	if err != nil {
		return nil, errors.Wrap(err, "loading "+url)
	}
	logger().Debug("loaded table", zap.String("url", url), zap.Int64("bytes", cr.BytesRead()))

	if l.cache != nil {
		// empty tables still cost something
		l.cache.Set(key, v, cr.BytesRead()+1)
	}
	return v, nil
}

func (l *Loader) formatFor(url string) gtiio.Format {
	if l.autoFmt {
		return gtiio.FormatFor(url)
	}
	return l.format
}

// BytesRead returns the bytes fetched from storage so far. Cache hits do
// not count.
func (l *Loader) BytesRead() int64 {
	return atomic.LoadInt64(&l.bytesRead)
}

func logger() *zap.Logger {
	return zap.L().Named("catalog")
}
