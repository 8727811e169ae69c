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

package httputil

import (
	"net/http"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// WithHeader sets header on every request that does not carry it yet. The
// value is computed per request.
func WithHeader(transport http.RoundTripper, header string, value func() string) http.RoundTripper {
	return &headerSetter{transport, http.CanonicalHeaderKey(header), value}
}

// WithAuthz injects a fixed Authorization header.
func WithAuthz(transport http.RoundTripper, authz string) http.RoundTripper {
	return WithHeader(transport, "Authorization", func() string { return authz })
}

// WithRequestID tags each request with a random UUID so that server logs can
// be matched with ours.
func WithRequestID(transport http.RoundTripper) http.RoundTripper {
	return WithHeader(transport, RequestIDHeader, func() string { return uuid.New().String() })
}

type headerSetter struct {
	transport http.RoundTripper
	header    string
	value     func() string
}

func (h *headerSetter) RoundTrip(req *http.Request) (*http.Response, error) {
	if _, ok := req.Header[h.header]; ok {
		return h.transport.RoundTrip(req)
	}
	// RoundTrippers must not modify the caller's request
	r := req.Clone(req.Context())
	r.Header.Set(h.header, h.value())
	return h.transport.RoundTrip(r)
}
