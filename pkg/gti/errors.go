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
)

// Errors returned by this package wrap one of these. Match with errors.Is.
var (
	// ErrInvalidInterval means an interval stops before it starts.
	ErrInvalidInterval = errors.New("gti: interval stops before it starts")

	// ErrOverlap means two intervals of the same list overlap, or two lists
	// that must be mutually exclusive are not.
	ErrOverlap = errors.New("gti: overlapping intervals")

	// ErrLengthMismatch means paired arrays differ in length.
	ErrLengthMismatch = errors.New("gti: length mismatch")

	// ErrNoValidChunks means no interval was long enough for the request.
	ErrNoValidChunks = errors.New("gti: no valid chunks")

	// ErrAmbiguousBounds means an empty list was given without both bounds.
	ErrAmbiguousBounds = errors.New("gti: empty list and no start/stop bounds")
)
