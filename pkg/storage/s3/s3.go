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
	"io"
	"net/http"
	stdurl "net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/NVIDIA/gtikit/pkg/httputil"
	"github.com/NVIDIA/gtikit/pkg/storage/driver"
)

type Driver struct {
	sess             *session.Session
	defaultTransport http.RoundTripper

	mu                sync.Mutex
	bucketRegionCache map[string]regionPromise
}

func (d *Driver) Name() string {
	return "s3"
}

func (d *Driver) Open(ctx context.Context, url string) (driver.Object, error) {
	bucket, key, err := parseURL(url)
	if err != nil {
		return nil, err
	}
	svc, err := d.client(ctx, bucket)
	if err != nil {
		return nil, err
	}

	out, err := svc.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapErr(err, "s3 get "+url)
	}
	logger().Debug("GET", zap.String("url", url), zap.Int64("length", aws.Int64Value(out.ContentLength)))

	size := int64(-1)
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return &object{url: url, body: out.Body, size: size}, nil
}

func (d *Driver) Stat(ctx context.Context, url string) (os.FileInfo, error) {
	bucket, key, err := parseURL(url)
	if err != nil {
		return nil, err
	}
	svc, err := d.client(ctx, bucket)
	if err != nil {
		return nil, err
	}

	out, err := svc.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapErr(err, "s3 head "+url)
	}
	return driver.NewFileInfo(path.Base(key), aws.Int64Value(out.ContentLength), false), nil
}

// Readdir lists the objects and common prefixes one level below url.
func (d *Driver) Readdir(ctx context.Context, url string) ([]os.FileInfo, error) {
	bucket, key, err := parseURL(url)
	if err != nil {
		return nil, err
	}
	svc, err := d.client(ctx, bucket)
	if err != nil {
		return nil, err
	}

	prefix := key
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var infos []os.FileInfo
	err = svc.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.StringValue(cp.Prefix), prefix), "/")
			infos = append(infos, driver.NewFileInfo(name, 0, true))
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.StringValue(obj.Key), prefix)
			if name == "" {
				continue
			}
			infos = append(infos, driver.NewFileInfo(name, aws.Int64Value(obj.Size), false))
		}
		return true
	})
	if err != nil {
		return nil, wrapErr(err, "s3 list "+url)
	}
	return infos, nil
}

func (d *Driver) client(ctx context.Context, bucket string) (*s3.S3, error) {
	c := &http.Client{Transport: d.defaultTransport}
	if timeout, ok := TimeoutFromCtx(ctx); ok {
		c.Timeout = *timeout
	} else {
		c.Timeout = 30 * time.Second
	}

	cfg := aws.NewConfig().WithHTTPClient(c)
	if endpoint, ok := EndpointFromCtx(ctx); ok {
		cfg = cfg.WithEndpoint(endpoint).WithS3ForcePathStyle(true).WithRegion(getRegion())
	} else {
		region, err := d.getBucketRegion(bucket)
		if err != nil {
			return nil, err
		}
		cfg = cfg.WithRegion(region)
	}
	if creds, ok := CredentialsFromCtx(ctx); ok {
		cfg = cfg.WithCredentials(creds)
	}
	return s3.New(d.sess, cfg), nil
}

func (d *Driver) getBucketRegion(bucketName string) (string, error) {
	d.mu.Lock()
	rp, ok := d.bucketRegionCache[bucketName]
	if !ok {
		rp = getBucketRegion(d.sess, bucketName)
		d.bucketRegionCache[bucketName] = rp
	}
	d.mu.Unlock()

	region, err := rp.Apply()
	if err != nil {
		// let the next open try again
		d.mu.Lock()
		if d.bucketRegionCache[bucketName] == rp {
			delete(d.bucketRegionCache, bucketName)
		}
		d.mu.Unlock()
	}
	return region, err
}

// parseURL splits s3://bucket/key.
func parseURL(url string) (bucket, key string, err error) {
	u, err := stdurl.Parse(url)
	if err != nil {
		return "", "", errors.Wrap(err, "s3driver: parsing url")
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", errors.Errorf("s3driver: %q is not an s3://bucket/key URL", url)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

func wrapErr(err error, msg string) error {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
			return errors.Wrap(os.ErrNotExist, msg)
		}
	}
	return errors.Wrap(err, msg)
}

type object struct {
	url  string
	body io.ReadCloser
	size int64
}

func (o *object) Read(p []byte) (int, error) {
	return o.body.Read(p)
}

func (o *object) Close() error {
	return o.body.Close()
}

func (o *object) Size() int64 {
	return o.size
}

func (o *object) URL() string {
	return o.url
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

	driver.Register("s3", &Driver{
		sess:              session.Must(session.NewSession()),
		defaultTransport:  httputil.WithRequestID(httputil.WithMetrics(t, "s3")),
		bucketRegionCache: make(map[string]regionPromise),
	})
}

func logger() *zap.Logger {
	return zap.L().Named("s3driver")
}
