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
	"encoding/xml"
	"net/http"
	stdurl "net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/NVIDIA/gtikit/pkg/storage/driver"
)

// listBucketPage is one page of an S3 ListObjectsV2 response.
type listBucketPage struct {
	XMLName  xml.Name `xml:"ListBucketResult"`
	Name     string
	Prefix   string
	Contents []struct {
		Key  string
		Size int64
	}
	CommonPrefixes []struct {
		Prefix string
	}
	IsTruncated           bool
	NextContinuationToken string
}

// Readdir lists a directory served as an S3-compatible bucket listing,
// e.g. https://bucket.s3.amazonaws.com/gtis/ lists the keys under "gtis/".
// Only the host root is treated as the bucket.
func (d *Driver) Readdir(ctx context.Context, url string) ([]os.FileInfo, error) {
	u, err := d.parseURL(url)
	if err != nil {
		return nil, err
	}

	prefix := strings.TrimPrefix(u.Path, "/")
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	v := stdurl.Values{}
	v.Set("list-type", "2")
	v.Set("delimiter", "/")
	if prefix != "" {
		v.Set("prefix", prefix)
	}

	var infos []os.FileInfo
	token := ""
	for {
		if token != "" {
			v.Set("continuation-token", token)
		}
		lu := *u
		lu.Path = "/"
		lu.RawQuery = v.Encode()

		page, err := d.listPage(ctx, lu.String())
		if err != nil {
			return nil, errors.Wrapf(err, "httpdriver: listing %q", url)
		}

		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(cp.Prefix, prefix), "/")
			if name != "" {
				infos = append(infos, driver.NewFileInfo(name, 0, true))
			}
		}
		for _, c := range page.Contents {
			name := strings.TrimPrefix(c.Key, prefix)
			// folder markers
			if name == "" || strings.HasSuffix(name, "/") {
				continue
			}
			infos = append(infos, driver.NewFileInfo(name, c.Size, false))
		}

		if !page.IsTruncated || page.NextContinuationToken == "" {
			break
		}
		token = page.NextContinuationToken
	}

	logger().Debug("listed", zap.String("url", url), zap.Int("entries", len(infos)))
	return infos, nil
}

func (d *Driver) listPage(ctx context.Context, url string) (*listBucketPage, error) {
	resp, err := d.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var page listBucketPage
	if err := xml.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, errors.Wrap(err, "decoding bucket listing")
	}
	return &page, nil
}
