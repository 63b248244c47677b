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

import (
	"math"

	"github.com/ajroetker/go-blockquant/hwy"
	"github.com/ajroetker/go-blockquant/hwy/contrib/quantize"
	"github.com/ajroetker/go-blockquant/hwy/contrib/workerpool"
)

// defaultZeroPoint is the symmetric center for 4-bit quantization; it is
// also the fallback zp an asymmetric call uses for a block with no
// scanned values, and for dequantizing when zp is nil.
const defaultZeroPoint = 8

// QuantizeBlockwise quantizes a rows x cols row-major float32 source
// (leading dimension ld) into the column-major packed layout described
// in package doc. zp == nil selects symmetric quantization (scale only);
// a non-nil zp selects asymmetric (scale and zero point per block). pool
// may be nil or workerpool.Serial{} for sequential execution.
//
// dst, scales, and (if non-nil) zp must already be sized per
// BufferSizes; QuantizeBlockwise zero-fills them before writing.
func QuantizeBlockwise(pool workerpool.Executor, dst []byte, scales []float32, zp []byte, src []float32, b int, columnwise bool, rows, cols, ld int) {
	if !ValidBlockSize(b) {
		return
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

	qAxisLen, otherAxisLen := axisLens(columnwise, rows, cols)
	metaQ := divRoundUp(qAxisLen, b)
	qRows, _ := QuantizedShape(b, columnwise, rows, cols)
	zpPerOther := divRoundUp(metaQ*qbits, 8)
	asymmetric := zp != nil

	tilesPerOther := divRoundUp(metaQ, packCount)
	totalTiles := tilesPerOther * otherAxisLen

	pool.ParallelFor(totalTiles, func(start, end int) {
		buf := make([]float32, b)
		for t := start; t < end; t++ {
			otherIdx := t / tilesPerOther
			pairStart := (t % tilesPerOther) * packCount
			quantizeTile(dst, scales, zp, src, buf, pairStart, otherIdx, b, qAxisLen, metaQ, qRows, ld, columnwise, asymmetric, zpPerOther)
		}
	})
}

func quantizeTile(dst []byte, scales []float32, zp []byte, src []float32, buf []float32, pairStart, otherIdx, b, qAxisLen, metaQ, qRows, ld int, columnwise, asymmetric bool, zpPerOther int) {
	traits := quantize.TraitsFor(qbits)

	for kpack := 0; kpack < packCount; kpack++ {
		qMetaIdx := pairStart + kpack
		if qMetaIdx >= metaQ {
			break
		}
		qStart := qMetaIdx * b
		qEnd := min(qStart+b, qAxisLen)
		blockLen := qEnd - qStart

		for i := 0; i < blockLen; i++ {
			row, col := sourceIndex(columnwise, qStart+i, otherIdx)
			buf[i] = src[row*ld+col]
		}

		var scale float32
		zpVal := defaultZeroPoint
		if blockLen > 0 {
			lo, hi := quantize.ScanMinMax(buf[:blockLen])
			if asymmetric {
				scale, zpVal = quantize.RangeAsymmetric(lo, hi, traits)
			} else {
				scale = quantize.RangeSymmetric(lo, hi, traits)
			}
		}

		scales[scaleIndex(metaQ, qMetaIdx, otherIdx)] = scale
		if asymmetric {
			byteIdx, high := zpByte(zpPerOther, qMetaIdx, otherIdx)
			if high {
				zp[byteIdx] |= byte(zpVal) << 4
			} else {
				zp[byteIdx] |= byte(zpVal)
			}
		}
	}

	qEndTile := min((pairStart+packCount)*b, qAxisLen)
	tileLen := qEndTile - pairStart*b
	if tileLen <= 0 {
		return
	}

	vals := make([]float32, tileLen)
	recips := make([]float32, tileLen)
	zps := make([]float32, tileLen)
	for i := 0; i < tileLen; i++ {
		qIdx := pairStart*b + i
		qMetaIdx := qIdx / b
		scale := scales[scaleIndex(metaQ, qMetaIdx, otherIdx)]

		zpVal := defaultZeroPoint
		if asymmetric {
			zpVal = readZpNibble(zp, zpPerOther, qMetaIdx, otherIdx)
		}

		recip := float32(0)
		if scale != 0 {
			recip = 1 / scale
		}

		row, col := sourceIndex(columnwise, qIdx, otherIdx)
		vals[i] = src[row*ld+col]
		recips[i] = recip
		zps[i] = float32(zpVal)
	}

	qvals := quantizeNibbleLanes(vals, recips, zps)

	for i := 0; i < tileLen; i++ {
		qIdx := pairStart*b + i
		byteIdx, high := packedByte(qRows, qIdx, otherIdx)
		q := byte(qvals[i])
		if high {
			dst[byteIdx] |= q << 4
		} else {
			dst[byteIdx] |= q
		}
	}
}

// quantizeNibbleLanes computes clamp(round(v*recip+zp), 0, 15) for every
// position, routing the arithmetic through hwy.MulAdd/hwy.Round/hwy.Clamp
// a full vector width at a time.
func quantizeNibbleLanes(vals, recips, zps []float32) []float32 {
	n := len(vals)
	out := make([]float32, n)

	lanes := hwy.NumLanes[float32]()
	zero := hwy.Zero[float32]()
	max := hwy.Set(float32(15))

	i := 0
	for ; i+lanes <= n; i += lanes {
		v := hwy.Load(vals[i:])
		r := hwy.Load(recips[i:])
		z := hwy.Load(zps[i:])
		q := hwy.Clamp(hwy.Round(hwy.MulAdd(v, r, z)), zero, max)
		hwy.Store(q, out[i:])
	}
	for ; i < n; i++ {
		out[i] = clampNibbleF(vals[i]*recips[i] + zps[i])
	}
	return out
}

func readZpNibble(zp []byte, zpPerOther, qMetaIdx, otherIdx int) int {
	byteIdx, high := zpByte(zpPerOther, qMetaIdx, otherIdx)
	b := zp[byteIdx]
	if high {
		b >>= 4
	}
	return int(b & 0x0f)
}

// clampNibbleF is the scalar tail counterpart of quantizeNibbleLanes'
// vectorized path: round(v), ties to even, clamped to [0, 15].
func clampNibbleF(v float32) float32 {
	r := math.RoundToEven(float64(v))
	if r < 0 {
		return 0
	}
	if r > 15 {
		return 15
	}
	return float32(r)
}
