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
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/gtikit/pkg/gti"
	"github.com/NVIDIA/gtikit/pkg/storage/data"
)

// tree lays out files under a fresh temporary directory.
func tree(t *testing.T, files map[string]string) string {
	dir, err := ioutil.TempDir("", "gtikit-catalog")
	require.NoError(t, err)
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestExpand(t *testing.T) {
	dir := tree(t, map[string]string{
		"b.txt":           "0 1\n",
		"a.json":          "[[0, 1]]",
		"README.md":       "not a table",
		".hidden.txt":     "0 1\n",
		"night1/c.yaml":   "- [0, 1]\n",
		"night1/x/d.dat":  "0 1\n",
		"night0/e.gti":    "0 1\n",
		"night0/notes.md": "",
	})
	defer os.RemoveAll(dir)

	l, err := New(Options{})
	require.NoError(t, err)

	got, err := l.Expand(context.Background(), dir, "data:,0%201")
	require.NoError(t, err)
	assert.Equal(t, []string{
		dir + "/a.json",
		dir + "/b.txt",
		dir + "/night0/e.gti",
		dir + "/night1/c.yaml",
		dir + "/night1/x/d.dat",
		"data:,0%201",
	}, got)

	empty := tree(t, map[string]string{"notes.md": ""})
	defer os.RemoveAll(empty)
	_, err = l.Expand(context.Background(), empty)
	assert.True(t, errors.Is(err, ErrNoTables))
}

func TestLoadAll(t *testing.T) {
	dir := tree(t, map[string]string{
		"1.txt":  "start stop\n0 5\n6 8\n",
		"2.json": `[[3, 7], {"start": "7.5", "stop": "9"}]`,
		"3.yaml": "- [0, 5]\n- [4, 8]\n",
	})
	defer os.RemoveAll(dir)

	l, err := New(Options{Concurrency: 2})
	require.NoError(t, err)

	urls, lists, err := l.LoadAll(context.Background(), dir)
	require.Error(t, err)
	require.Len(t, lists, 3)
	assert.Equal(t, dir+"/3.yaml", urls[2])
	assert.True(t, gti.FromPairs([2]float64{0, 5}, [2]float64{6, 8}).Equal(lists[0]))
	assert.True(t, gti.FromPairs([2]float64{3, 7}, [2]float64{7.5, 9}).Equal(lists[1]))

	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "%T", err)
	require.Len(t, merr.Errors, 1)
	assert.True(t, errors.Is(merr.Errors[0], gti.ErrOverlap))
	assert.Contains(t, merr.Errors[0].Error(), "3.yaml")

	assert.True(t, l.BytesRead() > 0)
}

func TestLoadAllFetchError(t *testing.T) {
	l, err := New(Options{Concurrency: 1})
	require.NoError(t, err)

	_, _, err = l.LoadAll(context.Background(), datadriver.Encode([]byte("0 5\n")), "/nonexistent/gti.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading /nonexistent/gti.txt")
	assert.True(t, os.IsNotExist(errors.Unwrap(err)) || errors.Is(err, os.ErrNotExist))
}

func TestFormatOverride(t *testing.T) {
	l, err := New(Options{Format: "json"})
	require.NoError(t, err)

	list, err := l.List(context.Background(), datadriver.Encode([]byte("[[0,5]]")))
	require.NoError(t, err)
	assert.True(t, gti.FromPairs([2]float64{0, 5}).Equal(list))

	_, err = New(Options{Format: "fits"})
	assert.Error(t, err)
}

func TestSeriesAndEvents(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)

	s, err := l.Series(context.Background(), datadriver.Encode([]byte("0.5 1\n1.5 0\n2.5 1\n")))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 1}, s.Values)

	times, err := l.Events(context.Background(), datadriver.Encode([]byte("1\n2\n")))
	require.NoError(t, err)
	assert.Len(t, times, 2)
}

func TestCache(t *testing.T) {
	dir := tree(t, map[string]string{"gti.txt": "0 5\n"})
	defer os.RemoveAll(dir)
	url := filepath.Join(dir, "gti.txt")

	l, err := New(Options{CacheSize: 1 << 20})
	require.NoError(t, err)

	list, err := l.List(context.Background(), url)
	require.NoError(t, err)
	list[0].Stop = list[0].Start

	// sets are applied asynchronously
	assert.Eventually(t, func() bool {
		_, ok := l.cache.Get(cacheKey{kindList, url})
		return ok
	}, time.Second, 5*time.Millisecond)

	read := l.BytesRead()
	require.NoError(t, os.Remove(url))
	list, err = l.List(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, "[0, 5]", list[0].String(), "cached lists are not shared with callers")
	assert.Equal(t, read, l.BytesRead())

	_, err = l.Series(context.Background(), url)
	assert.Error(t, err, "kinds are cached separately")
}

func TestKeyHash(t *testing.T) {
	a := keyHash(cacheKey{kindList, "gti.txt"})
	assert.Equal(t, a, keyHash(cacheKey{kindList, "gti.txt"}))
	assert.NotEqual(t, a, keyHash(cacheKey{kindSeries, "gti.txt"}))
	assert.NotEqual(t, a, keyHash(cacheKey{kindList, "gti2.txt"}))
}
