// Copyright 2025 go-highway Authors
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

package hwy

import (
	"os"
	"strconv"
)

// NoSimdEnv reports whether HWY_NO_SIMD is set to a truthy value, forcing
// every dispatch_*.go init() down to the scalar fallback regardless of what
// the CPU actually supports. Used for debugging and for producing output
// that must match the scalar reference bit-for-bit.
func NoSimdEnv() bool {
	v, ok := os.LookupEnv("HWY_NO_SIMD")
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return v != ""
	}
	return b
}
