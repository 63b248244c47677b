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

package blockwise

import "github.com/ajroetker/go-blockquant/hwy/contrib/workerpool"

// MlasQuantizeBlockwise is the legacy dispatch entry: a single call
// site selecting the compile-time-specialized quantizer by block_size
// and columnwise, for the 4-bit family only (QDQ's 2-bit variant has
// its own entry point in the qdq package). An unsupported block_size is
// a silent no-op; BufferSizes would already have told the caller to
// allocate nothing.
func MlasQuantizeBlockwise(pool workerpool.Executor, dst []byte, scales []float32, zp []byte, src []float32, b int, columnwise bool, rows, cols, ld int) {
	if !ValidBlockSize(b) {
		return
	}
	QuantizeBlockwise(pool, dst, scales, zp, src, b, columnwise, rows, cols, ld)
}

// MlasDequantizeBlockwise mirrors MlasQuantizeBlockwise for the inverse
// direction.
func MlasDequantizeBlockwise(pool workerpool.Executor, dst []float32, src []byte, scales []float32, zp []byte, b int, columnwise bool, rows, cols int) {
	if !ValidBlockSize(b) {
		return
	}
	DequantizeBlockwise(pool, dst, src, scales, zp, b, columnwise, rows, cols)
}
