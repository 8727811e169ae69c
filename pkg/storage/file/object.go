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
	"os"
)

type object struct {
	url  string
	f    *os.File
	size int64
}

func (o *object) Close() error {
	return o.f.Close()
}

func (o *object) Read(p []byte) (int, error) {
	return o.f.Read(p)
}

func (o *object) Size() int64 {
	return o.size
}

func (o *object) URL() string {
	return o.url
}
