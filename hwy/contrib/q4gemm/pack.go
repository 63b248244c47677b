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

package q4gemm

import (
	"math"

	"github.com/ajroetker/go-blockquant/hwy"
	"github.com/ajroetker/go-blockquant/hwy/contrib/quantize"
)

// PackBSize returns the byte size of the packed buffer PackB needs for an
// N-column, K-row source. It returns 0 for a qtype with no registered
// block descriptor, mirroring MlasQ4GemmPackBSize's "no platform kernel"
// signal: callers must treat a zero-sized result as unsupported rather
// than calling PackB with an empty buffer.
func PackBSize(qtype QType, n, k int) int {
	d, ok := descFor(qtype)
	if !ok {
		return 0
	}
	kBlocks := divRoundUp(k, d.BlkLen)
	return n * kBlocks * d.BlobSize
}

// PackB packs the N columns of a row-major K x N float32 source into dst,
// column outermost and K-block inside, per the Q4Gemm layout in package
// doc. src holds element (row l, col n) at src[n + ld*l]; ld must be >= n.
//
// dst must be at least PackBSize(qtype, n, k) bytes; PackB does not
// allocate and does not validate qtype beyond falling back to the
// asymmetric layout (matching the reference switch's default case).
func PackB(qtype QType, dst []byte, src []float32, n, k, ld int) {
	d, _ := descFor(qtype)

	col := make([]float32, k)
	off := 0
	for col0 := 0; col0 < n; col0++ {
		for l := 0; l < k; l++ {
			col[l] = src[col0+ld*l]
		}

		for kk := 0; kk < k; kk += d.BlkLen {
			klen := min(d.BlkLen, k-kk)
			block := col[kk : kk+klen]

			blob := dst[off : off+d.BlobSize]
			if d.Asymmetric {
				packAsymBlob(blob, block, d.BlkLen, d.ScaleF16)
			} else {
				packSymBlob(blob, block, d.BlkLen, d.ScaleF16)
			}
			off += d.BlobSize
		}
	}
}

// packSymBlob writes one symmetric blob: a scale (float32, or binary16
// when scaleF16 is set) followed by BlkLen/2 nibble-packed payload bytes.
func packSymBlob(blob []byte, block []float32, blkLen int, scaleF16 bool) {
	traits := quantize.TraitsFor(4)

	lo, hi := quantize.ScanMinMax(block)
	scale := quantize.RangeSymmetric(lo, hi, traits)

	n := scaleSize(scaleF16)
	putScale(blob[:n], scale, scaleF16)
	payload := blob[n:]

	if scale == 0 {
		for i := range payload {
			payload[i] = 0
		}
		return
	}
	recip := 1 / scale

	for kk := 0; kk < blkLen; kk += 32 {
		kklen := min(32, len(block)-kk)
		if kklen < 0 {
			kklen = 0
		}
		out := payload[kk/2 : kk/2+16]
		for l := 0; l < 16; l++ {
			lo := packSymNibble(block, kk, l, kklen, recip, traits)
			hi := packSymNibble(block, kk, l+16, kklen, recip, traits)
			out[l] = lo | (hi << 4)
		}
	}
}

// packSymNibble quantizes a single element, or returns 0 for a ragged-tail
// position past the block's true length. The round(v/scale + mid + 0.5)
// form (rather than round(v/scale) + mid) is the literal layout contract:
// it shifts every quotient up by half a level before rounding, so a
// quotient of 0.25 packs as mid+1 where round(v/scale)+mid gives mid.
func packSymNibble(block []float32, kk, l, kklen int, recip float32, traits quantize.BitTraits) byte {
	if l >= kklen {
		return 0
	}
	v := float64(block[kk+l])*float64(recip) + float64(traits.Mid) + 0.5
	return clampNibbleMax(math.RoundToEven(v), traits.Max)
}

// packAsymBlob writes one asymmetric blob: a scale (float32, or binary16
// when scaleF16 is set), 1-byte zero point, then BlkLen/2 nibble-packed
// payload bytes. Out-of-range tail positions quantize to zeroPoint (not
// 0), so they dequantize to exactly 0.0 rather than to -scale*zp.
func packAsymBlob(blob []byte, block []float32, blkLen int, scaleF16 bool) {
	traits := quantize.TraitsFor(4)

	lo, hi := quantize.ScanMinMax(block)
	scale, zp := quantize.RangeAsymmetric(lo, hi, traits)

	// recip is Max over the zero-widened range rather than 1/scale, so the
	// float32 rounding of scale does not move exact half-level quotients.
	recip := float32(0)
	if scale != 0 {
		recip = float32(float64(traits.Max) / (float64(max(hi, 0)) - float64(min(lo, 0))))
	}

	n := scaleSize(scaleF16)
	putScale(blob[:n], scale, scaleF16)
	blob[n] = byte(zp)
	payload := blob[n+1:]

	for kk := 0; kk < blkLen; kk += 32 {
		kklen := min(32, len(block)-kk)
		if kklen < 0 {
			kklen = 0
		}
		out := payload[kk/2 : kk/2+16]
		for l := 0; l < 16; l++ {
			loNib := packAsymNibble(block, kk, l, kklen, recip, zp, traits.Max)
			hiNib := packAsymNibble(block, kk, l+16, kklen, recip, zp, traits.Max)
			out[l] = loNib | (hiNib << 4)
		}
	}
}

func packAsymNibble(block []float32, kk, l, kklen int, recip float32, zp, maxQuant int) byte {
	if l >= kklen {
		return byte(zp)
	}
	v := block[kk+l]*recip + float32(zp)
	return clampNibbleMax(math.RoundToEven(float64(v)), maxQuant)
}

func clampNibbleMax(v float64, maxQuant int) byte {
	if v < 0 {
		return 0
	}
	if v > float64(maxQuant) {
		return byte(maxQuant)
	}
	return byte(v)
}

func putFloat32(dst []byte, v float32) {
	bits := math.Float32bits(v)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}

func getFloat32(src []byte) float32 {
	bits := uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24
	return math.Float32frombits(bits)
}

// scaleSize returns the byte width a blob's scale occupies.
func scaleSize(f16 bool) int {
	if f16 {
		return 2
	}
	return 4
}

// putScale writes scale to dst in either float32 or binary16, per f16.
func putScale(dst []byte, scale float32, f16 bool) {
	if f16 {
		h := hwy.Float32ToFloat16(scale)
		dst[0] = byte(h)
		dst[1] = byte(h >> 8)
		return
	}
	putFloat32(dst, scale)
}

// getScale is the inverse of putScale.
func getScale(src []byte, f16 bool) float32 {
	if f16 {
		h := hwy.Float16(uint16(src[0]) | uint16(src[1])<<8)
		return h.Float32()
	}
	return getFloat32(src)
}
