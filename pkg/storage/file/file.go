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

package filedriver

import (
	"context"
	stdurl "net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/NVIDIA/gtikit/pkg/storage/driver"
)

// Driver is the file URI scheme storage driver.
type Driver struct{}

func (d *Driver) Name() string {
	return "file"
}

func (d *Driver) Open(ctx context.Context, url string) (driver.Object, error) {
	path, err := urlToPath(url)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	finfo, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if finfo.IsDir() {
		f.Close()
		return nil, errors.Errorf("filedriver: %s is a directory", path)
	}
	return &object{
		url:  url,
		f:    f,
		size: finfo.Size(),
	}, nil
}

func (d *Driver) Stat(ctx context.Context, url string) (os.FileInfo, error) {
	path, err := urlToPath(url)
	if err != nil {
		return nil, err
	}

	return os.Stat(path)
}

func (d *Driver) Readdir(ctx context.Context, url string) ([]os.FileInfo, error) {
	path, err := urlToPath(url)
	if err != nil {
		return nil, err
	}

	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()
	return dir.Readdir(0)
}

func urlToPath(url string) (string, error) {
	// bare paths are taken verbatim so that '%' and '?' need no escaping
	if !strings.HasPrefix(url, "file:") {
		return filepath.Clean(url), nil
	}

	u, err := stdurl.Parse(url)
	if err != nil {
		return "", errors.Wrapf(err, "filedriver: parsing %q", url)
	}

	var path string
	if len(u.Opaque) == 0 {
		path = u.Path
	} else {
		path = u.Opaque
	}

	return filepath.Clean(path), nil
}

func RegisterDefaultDriver() {
	driver.Register("file", &Driver{})
}
