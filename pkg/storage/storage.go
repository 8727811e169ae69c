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

// Package storage opens the tables gtikit reads, by URL: local paths,
// data: URLs, http(s) and s3.
package storage

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/NVIDIA/gtikit/pkg/storage/data"
	"github.com/NVIDIA/gtikit/pkg/storage/driver"
	"github.com/NVIDIA/gtikit/pkg/storage/file"
	"github.com/NVIDIA/gtikit/pkg/storage/http"
	"github.com/NVIDIA/gtikit/pkg/storage/s3"
)

// Object is an open, read-only table source with a URL.
type Object interface {
	driver.Object
}

// ErrNotListable is returned by Readdir for drivers that cannot list.
var ErrNotListable = errors.New("storage: driver cannot list directories")

// Open opens the Object for reading.
func Open(ctx context.Context, url string) (Object, error) {
	registerDefaultsOnce.Do(registerDefaults)

	drvr, err := driver.Find(url)
	if err != nil {
		return nil, err
	}
	return drvr.Open(ctx, url)
}

// Stat returns a FileInfo describing the Object
func Stat(ctx context.Context, url string) (os.FileInfo, error) {
	registerDefaultsOnce.Do(registerDefaults)

	drvr, err := driver.Find(url)
	if err != nil {
		return nil, err
	}
	return drvr.Stat(ctx, url)
}

// Readdir lists the directory or prefix at url.
func Readdir(ctx context.Context, url string) ([]os.FileInfo, error) {
	registerDefaultsOnce.Do(registerDefaults)

	drvr, err := driver.Find(url)
	if err != nil {
		return nil, err
	}
	rd, ok := drvr.(driver.Readdirer)
	if !ok {
		return nil, errors.Wrapf(ErrNotListable, "%s driver", drvr.Name())
	}
	return rd.Readdir(ctx, url)
}

// Child returns the URL of name inside the directory dir.
func Child(dir, name string) string {
	if q := strings.IndexAny(dir, "?#"); q >= 0 {
		return strings.TrimSuffix(dir[:q], "/") + "/" + name + dir[q:]
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}

var disableRegisterDefaults bool
var registerDefaultsOnce sync.Once

// DisableDefaultDrivers is typically used in tests to disable registring the default storage drivers
func DisableDefaultDrivers() {
	disableRegisterDefaults = true
}

func registerDefaults() {
	if !disableRegisterDefaults {
		datadriver.RegisterDefaultDriver()
		filedriver.RegisterDefaultDriver()
		httpdriver.RegisterDefaultDriver()
		s3driver.RegisterDefaultDriver()
	}
}
