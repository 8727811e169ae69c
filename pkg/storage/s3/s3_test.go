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

package s3driver

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"><Name>bucket</Name><Prefix>obs/</Prefix><KeyCount>2</KeyCount><MaxKeys>1000</MaxKeys><Delimiter>/</Delimiter><IsTruncated>false</IsTruncated><Contents><Key>obs/gti.txt</Key><Size>4</Size></Contents><CommonPrefixes><Prefix>obs/night1/</Prefix></CommonPrefixes></ListBucketResult>`

const noSuchKey = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`

// fakeS3 serves a single object and a listing, path style.
func fakeS3() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/bucket/obs/gti.txt":
			w.Header().Set("Content-Length", "4")
			if r.Method == http.MethodGet {
				w.Write([]byte("0 5\n"))
			}
		case strings.TrimSuffix(r.URL.Path, "/") == "/bucket" && r.URL.Query().Get("list-type") == "2":
			w.Header().Set("Content-Type", "application/xml")
			fmt.Fprint(w, listing)
		default:
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			if r.Method == http.MethodGet {
				fmt.Fprint(w, noSuchKey)
			}
		}
	}))
}

func testDriver(t *testing.T) (*Driver, context.Context, func()) {
	os.Setenv("AWS_REGION", "us-east-1")
	srv := fakeS3()
	d := &Driver{
		sess:              session.Must(session.NewSession()),
		defaultTransport:  http.DefaultTransport,
		bucketRegionCache: make(map[string]regionPromise),
	}
	ctx := CtxWithEndpoint(context.Background(), srv.URL)
	ctx = CtxWithCredentials(ctx, credentials.NewStaticCredentials("id", "secret", ""))
	return d, ctx, srv.Close
}

func TestParseURL(t *testing.T) {
	bucket, key, err := parseURL("s3://bucket/obs/gti.txt")
	require.NoError(t, err)
	assert.Equal(t, "bucket", bucket)
	assert.Equal(t, "obs/gti.txt", key)

	_, _, err = parseURL("https://bucket/obs/gti.txt")
	assert.Error(t, err)
	_, _, err = parseURL("s3:///gti.txt")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	d, ctx, done := testDriver(t)
	defer done()

	obj, err := d.Open(ctx, "s3://bucket/obs/gti.txt")
	require.NoError(t, err)
	defer obj.Close()
	b, err := ioutil.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "0 5\n", string(b))
	assert.Equal(t, int64(4), obj.Size())

	_, err = d.Open(ctx, "s3://bucket/obs/missing.txt")
	assert.True(t, os.IsNotExist(errors.Cause(err)), "%+v", err)
}

func TestStatAndReaddir(t *testing.T) {
	d, ctx, done := testDriver(t)
	defer done()

	fi, err := d.Stat(ctx, "s3://bucket/obs/gti.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(4), fi.Size())

	_, err = d.Stat(ctx, "s3://bucket/obs/missing.txt")
	assert.True(t, os.IsNotExist(errors.Cause(err)), "%+v", err)

	infos, err := d.Readdir(ctx, "s3://bucket/obs")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "night1", infos[0].Name())
	assert.True(t, infos[0].IsDir())
	assert.Equal(t, "gti.txt", infos[1].Name())
	assert.Equal(t, int64(4), infos[1].Size())
}
