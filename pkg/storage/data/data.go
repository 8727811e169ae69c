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

package datadriver

import (
	"bytes"
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"

	"github.com/NVIDIA/gtikit/pkg/storage/driver"
)

// Driver is the data URI scheme storage driver. Tables can be given inline
// on the command line this way.
// See https://tools.ietf.org/html/rfc2397.
type Driver struct{}

func (d *Driver) Name() string {
	return "data"
}

func (d *Driver) Open(ctx context.Context, url string) (driver.Object, error) {
	dataURL, err := decode(url)
	if err != nil {
		return nil, err
	}

	return &object{
		url: url,
		r:   bytes.NewReader(dataURL.Data),
	}, nil
}

func (d *Driver) Stat(ctx context.Context, url string) (os.FileInfo, error) {
	dataURL, err := decode(url)
	if err != nil {
		return nil, err
	}
	return driver.NewFileInfo("data", int64(len(dataURL.Data)), false), nil
}

func decode(url string) (*dataurl.DataURL, error) {
	dataURL, err := dataurl.DecodeString(url)
	if err != nil {
		return nil, errors.Wrap(err, "datadriver: decoding url")
	}
	return dataURL, nil
}

// Encode returns a data URL holding text.
func Encode(text []byte) string {
	return dataurl.New(text, "text/plain").String()
}

func RegisterDefaultDriver() {
	driver.Register("data", &Driver{})
}
