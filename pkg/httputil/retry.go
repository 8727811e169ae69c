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
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
)

type RetryOptions struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// WithRetries wraps base so that transport errors, 5xx and 429 responses
// are retried with exponential backoff until the request context is done.
// Only requests without a body, or with GetBody set, are retried.
func WithRetries(base http.RoundTripper, options ...RetryOptions) http.RoundTripper {
	t := &retryingRoundTripper{rt: base}
	if len(options) > 0 {
		t.opts = options[0]
	}
	return t
}

type retryFunc func() (retry bool)

func retry(ctx context.Context, doFn retryFunc, options ...RetryOptions) {
	eb := backoff.NewExponentialBackOff()
	if len(options) > 0 {
		if options[0].MaxElapsedTime != 0 {
			eb.MaxElapsedTime = options[0].MaxElapsedTime
		}
		if options[0].MaxInterval != 0 {
			eb.MaxInterval = options[0].MaxInterval
		}
		if options[0].InitialInterval != 0 {
			eb.InitialInterval = options[0].InitialInterval
		}
	}
	eb.Reset()
	b := backoff.WithContext(eb, ctx)

	for {
		retry := doFn()
		if !retry {
			return
		}
		delay := b.NextBackOff()
		if delay == backoff.Stop {
			return
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
	}
}

type retryingRoundTripper struct {
	rt   http.RoundTripper
	opts RetryOptions
}

func (r *retryingRoundTripper) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	replayable := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
	attempt := 0
	retry(req.Context(), func() bool {
		if resp != nil {
			drain(resp)
			resp = nil
		}
		if attempt > 0 && req.GetBody != nil {
			body, berr := req.GetBody()
			if berr != nil {
				err = berr
				return false
			}
			req.Body = body
		}
		attempt++

		resp, err = r.rt.RoundTrip(req)
		if !replayable || !shouldRetry(resp, err) {
			return false
		}

		if err != nil {
			logger().Warn("retrying", zap.String("url", req.URL.String()), zap.Int("attempt", attempt), zap.Error(err))
		} else {
			logger().Warn("retrying", zap.String("url", req.URL.String()), zap.Int("attempt", attempt), zap.Int("status", resp.StatusCode))
		}
		return true
	}, r.opts)
	return
}

func shouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
}

// drain throws the body away so the connection can be reused.
func drain(resp *http.Response) {
	io.Copy(ioutil.Discard, resp.Body)
	resp.Body.Close()
}

func logger() *zap.Logger {
	return zap.L().Named("httputil")
}
