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

package storage_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/gtikit/pkg/storage"
	"github.com/NVIDIA/gtikit/pkg/storage/data"
)

func readAll(t *testing.T, url string) string {
	obj, err := storage.Open(context.Background(), url)
	require.NoError(t, err)
	defer obj.Close()
	assert.Equal(t, url, obj.URL())

	b, err := ioutil.ReadAll(obj)
	require.NoError(t, err)
	if obj.Size() >= 0 {
		assert.Equal(t, int64(len(b)), obj.Size())
	}
	return string(b)
}

func TestFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "gtikit-storage")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "gti.txt")
	require.NoError(t, ioutil.WriteFile(path, []byte("0 5\n6 8\n"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "night1"), 0755))

	assert.Equal(t, "0 5\n6 8\n", readAll(t, path))
	assert.Equal(t, "0 5\n6 8\n", readAll(t, "file://"+path))

	fi, err := storage.Stat(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, int64(8), fi.Size())

	infos, err := storage.Readdir(context.Background(), dir)
	require.NoError(t, err)
	var names []string
	for _, fi := range infos {
		names = append(names, fi.Name())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"gti.txt", "night1"}, names)

	_, err = storage.Open(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.True(t, os.IsNotExist(err))

	_, err = storage.Open(context.Background(), dir)
	assert.Error(t, err, "directories are not tables")
}

func TestData(t *testing.T) {
	url := datadriver.Encode([]byte("[[0, 5]]"))
	assert.Equal(t, "[[0, 5]]", readAll(t, url))
	assert.Equal(t, "0 5", readAll(t, "data:,0%205"))

	fi, err := storage.Stat(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, int64(8), fi.Size())

	_, err = storage.Readdir(context.Background(), url)
	assert.ErrorIs(t, err, storage.ErrNotListable)

	_, err = storage.Open(context.Background(), "data:nonsense")
	assert.Error(t, err)
}

func TestUnknownScheme(t *testing.T) {
	_, err := storage.Open(context.Background(), "gopher://example.com/gti")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestChild(t *testing.T) {
	assert.Equal(t, "/data/obs/gti.txt", storage.Child("/data/obs/", "gti.txt"))
	assert.Equal(t, "s3://bucket/obs/gti.txt", storage.Child("s3://bucket/obs", "gti.txt"))
	assert.Equal(t, "https://host/obs/gti.txt?sig=1", storage.Child("https://host/obs?sig=1", "gti.txt"))
}
