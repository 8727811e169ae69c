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
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver(t *testing.T) {
	var authz, requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz = r.Header.Get("Authorization")
		requestID = r.Header.Get("X-Request-Id")
		switch r.URL.Path {
		case "/obs/gti.txt":
			w.Write([]byte("0 5\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	d := New(http.DefaultTransport)
	ctx := CtxWithAuthz(CtxWithTimeout(context.Background(), 5*time.Second), "Bearer abc")

	obj, err := d.Open(ctx, srv.URL+"/obs/gti.txt")
	require.NoError(t, err)
	b, err := ioutil.ReadAll(obj)
	require.NoError(t, err)
	require.NoError(t, obj.Close())
	assert.Equal(t, "0 5\n", string(b))
	assert.Equal(t, int64(4), obj.Size())
	assert.Equal(t, "Bearer abc", authz)
	assert.NotEmpty(t, requestID)

	fi, err := d.Stat(ctx, srv.URL+"/obs/gti.txt")
	require.NoError(t, err)
	assert.Equal(t, "gti.txt", fi.Name())
	assert.Equal(t, int64(4), fi.Size())

	_, err = d.Open(ctx, srv.URL+"/missing")
	assert.True(t, os.IsNotExist(errors.Cause(err)))

	_, err = d.Open(ctx, "ftp://example.com/gti.txt")
	assert.Error(t, err)
}

func TestContextValues(t *testing.T) {
	ctx := CtxWithTimeout(CtxWithAuthz(context.Background(), "a"), time.Second)
	authz, ok := AuthzFromCtx(ctx)
	require.True(t, ok)
	assert.Equal(t, "a", *authz)
	timeout, ok := TimeoutFromCtx(ctx)
	require.True(t, ok)
	assert.Equal(t, time.Second, *timeout)
}

func TestReaddir(t *testing.T) {
	pages := map[string]string{
		"": `<ListBucketResult><Name>obs</Name><Prefix>gtis/</Prefix>
<CommonPrefixes><Prefix>gtis/orbit2/</Prefix></CommonPrefixes>
<Contents><Key>gtis/</Key><Size>0</Size></Contents>
<Contents><Key>gtis/a.txt</Key><Size>8</Size></Contents>
<IsTruncated>true</IsTruncated><NextContinuationToken>p2</NextContinuationToken>
</ListBucketResult>`,
		"p2": `<ListBucketResult><Name>obs</Name><Prefix>gtis/</Prefix>
<Contents><Key>gtis/b.yaml</Key><Size>12</Size></Contents>
<IsTruncated>false</IsTruncated>
</ListBucketResult>`,
	}

	var prefixes []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/" || q.Get("list-type") != "2" || q.Get("delimiter") != "/" {
			http.NotFound(w, r)
			return
		}
		prefixes = append(prefixes, q.Get("prefix"))
		page, ok := pages[q.Get("continuation-token")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(page))
	}))
	defer srv.Close()

	d := New(http.DefaultTransport)
	infos, err := d.Readdir(context.Background(), srv.URL+"/gtis")
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "orbit2", infos[0].Name())
	assert.True(t, infos[0].IsDir())
	assert.Equal(t, "a.txt", infos[1].Name())
	assert.Equal(t, int64(8), infos[1].Size())
	assert.Equal(t, "b.yaml", infos[2].Name())
	assert.Equal(t, []string{"gtis/", "gtis/"}, prefixes)
}
