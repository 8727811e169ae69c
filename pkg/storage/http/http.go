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
	"context"
	"io"
	"io/ioutil"
	"net/http"
	stdurl "net/url"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/NVIDIA/gtikit/pkg/httputil"
	"github.com/NVIDIA/gtikit/pkg/storage/driver"
)

type Driver struct {
	defaultTransport http.RoundTripper
}

// New returns a driver sending requests through transport, which gets
// retries and request IDs added.
func New(transport http.RoundTripper) *Driver {
	return &Driver{
		defaultTransport: httputil.WithRequestID(httputil.WithRetries(transport)),
	}
}

func (d *Driver) Name() string {
	return "http"
}

func (d *Driver) Open(ctx context.Context, url string) (driver.Object, error) {
	resp, err := d.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	return &object{url: url, resp: resp}, nil
}

func (d *Driver) Stat(ctx context.Context, url string) (os.FileInfo, error) {
	resp, err := d.do(ctx, http.MethodHead, url)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()

	name := path.Base(resp.Request.URL.Path)
	return driver.NewFileInfo(name, resp.ContentLength, false), nil
}

func (d *Driver) do(ctx context.Context, method, url string) (*http.Response, error) {
	u, err := d.parseURL(url)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, u.String(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "http %s %q", method, url)
	}
	req.Header.Add("Accept-Encoding", "identity")

	resp, err := d.newClient(ctx).Do(req.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "http %s %q", method, url)
	}
	logger().Debug(method, zap.String("url", url), zap.Int("status", resp.StatusCode), zap.Int64("length", resp.ContentLength))

	if resp.StatusCode != http.StatusOK {
		// throw away the body so the connection can be reused
		io.Copy(ioutil.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, errors.Wrapf(os.ErrNotExist, "http %s %q", method, url)
		}
		return nil, errors.Errorf("http %s %q: HTTP %d", method, url, resp.StatusCode)
	}
	return resp, nil
}

func (d *Driver) parseURL(url string) (*stdurl.URL, error) {
	u, err := stdurl.Parse(url)
	if err != nil {
		return nil, errors.Wrap(err, "httpdriver: parsing url")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.Errorf("httpdriver: unsupported URI scheme %q", u.Scheme)
	}

	return u, nil
}

func (d *Driver) newClient(ctx context.Context) *http.Client {
	c := &http.Client{}
	if timeout, ok := TimeoutFromCtx(ctx); ok {
		c.Timeout = *timeout
	} else {
		c.Timeout = 30 * time.Second
	}

	if authz, ok := AuthzFromCtx(ctx); ok {
		c.Transport = httputil.WithAuthz(d.defaultTransport, *authz)
	} else {
		c.Transport = d.defaultTransport
	}
	return c
}

func RegisterDefaultDriver() {
	t := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          1024,
		MaxIdleConnsPerHost:   1024,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	d := New(httputil.WithMetrics(t, "http"))
	driver.Register("http", d)
	driver.Register("https", d)
}

func logger() *zap.Logger {
	return zap.L().Named("httpdriver")
}
