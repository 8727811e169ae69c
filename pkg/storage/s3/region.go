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
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

const DefaultRegion = "us-east-1"

var (
	cachedRegion     string
	cachedRegionOnce sync.Once
)

// getRegion finds the local region from the environment, the shared
// config or the instance metadata, in that order.
func getRegion() string {
	cachedRegionOnce.Do(func() {
		reg := os.Getenv("AWS_REGION")
		if len(reg) < 1 {
			sess := session.Must(session.NewSessionWithOptions(session.Options{
				SharedConfigState: session.SharedConfigEnable,
			}))

			reg = sess.ClientConfig("s3").SigningRegion

			if len(reg) < 1 {
				c := ec2metadata.New(session.Must(session.NewSession()))
				reg, _ = c.Region()
			}
		}
		if len(reg) < 1 {
			reg = DefaultRegion
		}

		cachedRegion = reg
	})

	return cachedRegion
}

func getBucketRegion(sess *session.Session, bucketName string) regionPromise {
	return newRegionPromise(func() (string, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		reg, err := s3manager.GetBucketRegion(ctx, sess, bucketName, getRegion())
		if err != nil {
			return "", errors.Wrapf(err, "s3driver: detecting location of bucket %s", bucketName)
		}
		return reg, nil
	})
}

type regionFunc func() (string, error)

type regionPromise interface {
	Apply() (string, error)
}

type regionFuture struct {
	done  chan struct{}
	value string
	err   error
}

func (f *regionFuture) Apply() (string, error) {
	<-f.done
	return f.value, f.err
}

func newRegionPromise(op regionFunc) regionPromise {
	f := &regionFuture{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = op()
	}()
	return f
}
