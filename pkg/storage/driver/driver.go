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

package driver

import (
	"context"
	"io"
	"os"
	"time"
)

// Object is an open, read-only table source.
type Object interface {
	io.ReadCloser

	// Size returns the length in bytes, or -1 if the driver cannot tell
	// before the object is read.
	Size() int64

	// URL returns the URL the object was opened with.
	URL() string
}

// Driver is the interface that must be implemented by a storage driver.
type Driver interface {
	// Name returns the display name of this driver
	Name() string

	// Open opens the Object for reading.
	Open(ctx context.Context, url string) (Object, error)

	// Stat returns a FileInfo describing the Object.
	Stat(ctx context.Context, url string) (os.FileInfo, error)
}

type Readdirer interface {
	// Readdir reads the contents of the directory and returns a slice
	// of FileInfo values, as would be returned by Stat, in directory
	// order.
	Readdir(ctx context.Context, url string) ([]os.FileInfo, error)
}

// NewFileInfo describes a remote object or prefix.
func NewFileInfo(name string, size int64, isDir bool) os.FileInfo {
	return &finfo{name, size, isDir}
}

type finfo struct {
	name  string
	size  int64
	isDir bool
}

func (fi *finfo) Name() string {
	return fi.name
}

func (fi *finfo) Size() int64 {
	return fi.size
}

func (fi *finfo) Mode() os.FileMode {
	if fi.isDir {
		return os.ModeDir | 0555
	}
	return 0444
}

func (fi *finfo) ModTime() time.Time {
	return time.Unix(0, 0).UTC()
}

func (fi *finfo) IsDir() bool {
	return fi.isDir
}

func (fi *finfo) Sys() interface{} {
	return nil
}
