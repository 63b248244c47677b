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

// DequantizeBlockwise is the inverse of QuantizeBlockwise: it reads the
// packed nibbles and per-block (scale, zp) and writes a dense
// column-major output, dst[otherIdx*qAxisLen+qIdx]. zp == nil
// dequantizes every block against the symmetric default zero point
// (8), matching a nibble-pair of 0x88.
func DequantizeBlockwise(pool workerpool.Executor, dst []float32, src []byte, scales []float32, zp []byte, b int, columnwise bool, rows, cols int) {
	if !ValidBlockSize(b) {
		return
	}
	if pool == nil {
		pool = workerpool.Serial{}
	}

	qAxisLen, otherAxisLen := axisLens(columnwise, rows, cols)
	metaQ := divRoundUp(qAxisLen, b)
	qRows, _ := QuantizedShape(b, columnwise, rows, cols)
	zpPerOther := divRoundUp(metaQ*qbits, 8)
	asymmetric := zp != nil

	pool.ParallelFor(otherAxisLen, func(start, end int) {
		for otherIdx := start; otherIdx < end; otherIdx++ {
			for qIdx := 0; qIdx < qAxisLen; qIdx++ {
				qMetaIdx := qIdx / b
				scale := scales[scaleIndex(metaQ, qMetaIdx, otherIdx)]

				zpVal := defaultZeroPoint
				if asymmetric {
					zpVal = readZpNibble(zp, zpPerOther, qMetaIdx, otherIdx)
				}

				byteIdx, high := packedByte(qRows, qIdx, otherIdx)
				nib := src[byteIdx]
				if high {
					nib >>= 4
				}
				nib &= 0x0f

				dst[otherIdx*qAxisLen+qIdx] = float32(int(nib)-zpVal) * scale
			}
		}
	})
}
