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

package httpdriver

import (
	"net/http"
	"os"
)

// object streams a GET response body.
type object struct {
	url    string
	resp   *http.Response
	closed bool
}

func (o *object) URL() string {
	return o.url
}

func (o *object) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	return o.resp.Body.Close()
}

// Size is the Content-Length, -1 for chunked responses.
func (o *object) Size() int64 {
	return o.resp.ContentLength
}

func (o *object) Read(p []byte) (int, error) {
	if o.closed {
		return 0, os.ErrClosed
	}
	return o.resp.Body.Read(p)
}
