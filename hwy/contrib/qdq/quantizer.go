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
	"math"
	"math/bits"

	"github.com/ajroetker/go-blockquant/hwy"
	"github.com/ajroetker/go-blockquant/hwy/contrib/quantize"
	"github.com/ajroetker/go-blockquant/hwy/contrib/workerpool"
)

// PackCount returns 8/qbits, or 0 for an unsupported bit width.
func PackCount(qbits int) int {
	switch qbits {
	case 2, 4:
		return 8 / qbits
	default:
		return 0
	}
}

// BufferSizes returns the packed payload byte count, the scale count
// (row-major [ceil(rows/b), cols]), and (for asymmetric quantization)
// the zero-point byte count, for QuantizeColumnWise's parameters.
func BufferSizes(qbits, b, rows, cols int, asymmetric bool) (dataBytes, nScales, zpBytes int, err error) {
	packCount := PackCount(qbits)
	if packCount == 0 {
		return 0, 0, 0, ErrUnsupportedBitWidth
	}
	if cols%packCount != 0 {
		return 0, 0, 0, ErrInvalidShape
	}

	metaRows := divRoundUp(rows, b)
	nScales = metaRows * cols
	dataBytes = divRoundUp(rows*cols, packCount)
	if asymmetric {
		zpBytes = divRoundUp(nScales, packCount)
	}
	return dataBytes, nScales, zpBytes, nil
}

// QuantizeColumnWise quantizes a rows x cols row-major float32 source
// (leading dimension ld) into the QDQ row-packed layout: scales and (if
// zp != nil) zero points are row-major [ceil(rows/b), cols]; the
// payload keeps the source's row-major shape, packing pack_count
// adjacent columns of a row into one byte, low slot first.
//
// dst, scales, and zp must be sized per BufferSizes. Returns
// ErrUnsupportedBitWidth for qbits outside {2,4} and ErrInvalidShape
// when cols is not a multiple of pack_count.
func QuantizeColumnWise(pool workerpool.Executor, dst []byte, scales []float32, zp []byte, src []float32, rows, cols, b, qbits, ld int) error {
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

	for i := range dst {
		dst[i] = 0
	}
	for i := range scales {
		scales[i] = 0
	}
	for i := range zp {
		zp[i] = 0
	}

	traits := quantize.TraitsFor(qbits)
	shiftBits := bits.TrailingZeros(uint(packCount))
	metaRows := divRoundUp(rows, b)
	colGroups := cols / packCount
	asymmetric := zp != nil

	pool.ParallelFor(metaRows*colGroups, func(start, end int) {
		colBuf := make([][]float32, packCount)
		colQ := make([][]float32, packCount)
		scale := make([]float32, packCount)
		zpVal := make([]int, packCount)
		for k := range colBuf {
			colBuf[k] = make([]float32, b)
		}

		for t := start; t < end; t++ {
			metaRow := t / colGroups
			colStart := (t % colGroups) * packCount

			rowStart := metaRow * b
			rowEnd := min(rowStart+b, rows)
			blockLen := rowEnd - rowStart

			for k := 0; k < packCount; k++ {
				col := colStart + k
				for i := 0; i < blockLen; i++ {
					colBuf[k][i] = src[(rowStart+i)*ld+col]
				}

				zpVal[k] = traits.Mid
				if blockLen > 0 {
					lo, hi := quantize.ScanMinMax(colBuf[k][:blockLen])
					if asymmetric {
						scale[k], zpVal[k] = quantize.RangeAsymmetric(lo, hi, traits)
					} else {
						scale[k] = quantize.RangeSymmetric(lo, hi, traits)
					}
				}
				scales[metaRow*cols+col] = scale[k]
			}

			if asymmetric {
				zpByteIdx := (metaRow*cols + colStart) >> shiftBits
				var packedZP byte
				for k := 0; k < packCount; k++ {
					packedZP |= byte(zpVal[k]) << uint(k*qbits)
				}
				zp[zpByteIdx] = packedZP
			}

			for k := 0; k < packCount; k++ {
				recip := float32(0)
				if scale[k] != 0 {
					recip = 1 / scale[k]
				}
				colQ[k] = quantizeLanes(colQ[k], colBuf[k][:blockLen], recip, float32(zpVal[k]), traits.Max)
			}

			for row := rowStart; row < rowEnd; row++ {
				var packed byte
				for k := 0; k < packCount; k++ {
					packed |= byte(colQ[k][row-rowStart]) << uint(k*qbits)
				}
				byteIdx := (row*cols + colStart) >> shiftBits
				dst[byteIdx] = packed
			}
		}
	})
	return nil
}

// quantizeLanes computes clamp(round(v*recip+zp), 0, maxQuant) for every
// element of vals, routing the arithmetic through hwy.MulAdd/hwy.Round/
// hwy.Clamp a full vector width at a time. out is reused across calls
// when it has enough capacity.
func quantizeLanes(out, vals []float32, recip, zp float32, maxQuant int) []float32 {
	n := len(vals)
	if cap(out) < n {
		out = make([]float32, n)
	}
	out = out[:n]

	lanes := hwy.NumLanes[float32]()
	rVec := hwy.Set(recip)
	zVec := hwy.Set(zp)
	zero := hwy.Zero[float32]()
	max := hwy.Set(float32(maxQuant))

	i := 0
	for ; i+lanes <= n; i += lanes {
		v := hwy.Load(vals[i:])
		q := hwy.Clamp(hwy.Round(hwy.MulAdd(v, rVec, zVec)), zero, max)
		hwy.Store(q, out[i:])
	}
	for ; i < n; i++ {
		out[i] = clampQuantF(vals[i]*recip+zp, maxQuant)
	}
	return out
}

func clampQuantF(v float32, maxQuant int) float32 {
	r := math.RoundToEven(float64(v))
	if r < 0 {
		return 0
	}
	if r > float64(maxQuant) {
		return float32(maxQuant)
	}
	return float32(r)
}

func divRoundUp(a, b int) int {
	return (a + b - 1) / b
}
