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
	"math/bits"

	"github.com/ajroetker/go-blockquant/hwy/contrib/quantize"
	"github.com/ajroetker/go-blockquant/hwy/contrib/workerpool"
)

// DequantizeColumnWise is the inverse of QuantizeColumnWise, writing a
// dense row-major rows x cols float32 output.
func DequantizeColumnWise(pool workerpool.Executor, dst []float32, src []byte, scales []float32, zp []byte, rows, cols, b, qbits int) error {
	packCount := PackCount(qbits)
	if packCount == 0 {
		return ErrUnsupportedBitWidth
	}
	if cols%packCount != 0 {
		return ErrInvalidShape
	}
	if pool == nil {
		pool = workerpool.Serial{}
	}

	traits := quantize.TraitsFor(qbits)
	shiftBits := bits.TrailingZeros(uint(packCount))
	asymmetric := zp != nil
	mask := byte(1<<uint(qbits)) - 1

	pool.ParallelFor(rows, func(start, end int) {
		for row := start; row < end; row++ {
			metaRow := row / b
			for colStart := 0; colStart < cols; colStart += packCount {
				byteIdx := (row*cols + colStart) >> shiftBits
				packed := src[byteIdx]

				var zpPacked byte
				if asymmetric {
					zpByteIdx := (metaRow*cols + colStart) >> shiftBits
					zpPacked = zp[zpByteIdx]
				}

				for k := 0; k < packCount; k++ {
					col := colStart + k
					q := (packed >> uint(k*qbits)) & mask

					zpVal := traits.Mid
					if asymmetric {
						zpVal = int((zpPacked >> uint(k*qbits)) & mask)
					}

					scale := scales[metaRow*cols+col]
					dst[row*cols+col] = float32(int(q)-zpVal) * scale
				}
			}
		}
	})
	return nil
}

// QuantizeRowWise is reserved by the layout this package models but has
// no specified packing algorithm; it always fails.
func QuantizeRowWise(pool workerpool.Executor, dst []byte, scales []float32, zp []byte, src []float32, rows, cols, b, qbits, ld int) error {
	return ErrNotImplemented
}
