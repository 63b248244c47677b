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

package qdq

import (
	"github.com/ajroetker/go-blockquant/hwy/contrib/blockwise"
	"github.com/ajroetker/go-blockquant/hwy/contrib/workerpool"
)

// Transpose converts a QDQ row-major packed 4-bit matrix into the
// blockwise package's column-major packed layout used by the fused
// matmul kernel, given the same rows x cols logical shape and block
// size B on both sides.
//
// Only qbits=4 is supported: blockwise has no 2-bit layout to transpose
// into. Both formats recover the same dequantized values at a given
// (row, col) under the same rounding, so this unpacks the QDQ source to
// a dense float32 grid and re-quantizes it into the blockwise layout
// rather than shuffling bits directly; correctness does not depend on
// which quantized representative a tie lands on.
func Transpose(pool workerpool.Executor, dstData []byte, dstScales []float32, dstZP []byte, srcData []byte, srcScales []float32, srcZP []byte, rows, cols, b int) error {
	const qbits = 4
	if pool == nil {
		pool = workerpool.Serial{}
	}

	dense := make([]float32, rows*cols)
	if err := DequantizeColumnWise(pool, dense, srcData, srcScales, srcZP, rows, cols, b, qbits); err != nil {
		return err
	}

	blockwise.QuantizeBlockwise(pool, dstData, dstScales, dstZP, dense, b, true, rows, cols, cols)
	return nil
}
