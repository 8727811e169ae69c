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

package gti

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Check verifies that every interval has Stop >= Start and that no interval
// starts before the previous one stops. Touching intervals are allowed.
//
// Returns an error wrapping ErrInvalidInterval or ErrOverlap.
func Check(l List) error {
	logger().Debug("checking gtis", zap.Int("count", len(l)))

	for i, g := range l {
		if !g.Valid() {
			return errors.Wrapf(ErrInvalidInterval, "interval %d is %s", i, g)
		}
		if i > 0 && g.Start.Less(l[i-1].Stop) {
			return errors.Wrapf(ErrOverlap, "interval %d %s starts before interval %d %s stops", i, g, i-1, l[i-1])
		}
	}
	return nil
}
