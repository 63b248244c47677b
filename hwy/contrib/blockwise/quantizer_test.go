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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-blockquant/hwy/contrib/quantize"
	"github.com/ajroetker/go-blockquant/hwy/contrib/workerpool"
)

func TestMetaAndQuantizedShapeColumnwise(t *testing.T) {
	metaRows, metaCols := MetaShape(32, true, 65, 4)
	assert.Equal(t, 3, metaRows, "ceil(65/32)")
	assert.Equal(t, 4, metaCols)

	qRows, qCols := QuantizedShape(32, true, 65, 4)
	assert.Equal(t, 48, qRows, "ceil(3*32*4/8) = ceil(384/8) = 48")
	assert.Equal(t, 4, qCols)
}

func TestMetaAndQuantizedShapeRowwise(t *testing.T) {
	metaRows, metaCols := MetaShape(32, false, 4, 65)
	assert.Equal(t, 4, metaRows)
	assert.Equal(t, 3, metaCols)

	qRows, qCols := QuantizedShape(32, false, 4, 65)
	assert.Equal(t, 48, qRows)
	assert.Equal(t, 4, qCols)
}

func TestBufferSizesAsymmetricZeroPointBytes(t *testing.T) {
	_, nScales, zpBytes := BufferSizes(32, true, true, 64, 1)
	assert.Equal(t, 2, nScales, "two meta-rows, one meta-col")
	assert.Equal(t, 1, zpBytes, "two zero points pack into one byte")
}

func TestBufferSizesInvalidBlockSize(t *testing.T) {
	dataBytes, nScales, zpBytes := BufferSizes(17, true, true, 64, 1)
	assert.Equal(t, 0, dataBytes)
	assert.Equal(t, 0, nScales)
	assert.Equal(t, 0, zpBytes)
}

// TestTwoMetaRowPackingWorkedExample exercises the §8 layout assertion for
// B=32, columnwise, asymmetric, a single column with two meta-rows: the
// zero points of block 0 and block 1 share one byte (block 0 low nibble),
// and the packed payload's first byte holds row 0 (low) and row 1 (high).
func TestTwoMetaRowPackingWorkedExample(t *testing.T) {
	const rows, cols, b = 64, 1, 32

	src := make([]float32, rows*cols)
	for i := range src {
		src[i] = float32(i%8) - 4 // both blocks span [-4, 3]
	}

	dataBytes, nScales, zpBytes := BufferSizes(b, true, true, rows, cols)
	dst := make([]byte, dataBytes)
	scales := make([]float32, nScales)
	zp := make([]byte, zpBytes)

	QuantizeBlockwise(workerpool.Serial{}, dst, scales, zp, src, b, true, rows, cols, cols)

	traits := quantize.TraitsFor(4)
	lo0, hi0 := quantize.ScanMinMax(src[0:32])
	wantScale0, wantZP0 := quantize.RangeAsymmetric(lo0, hi0, traits)
	lo1, hi1 := quantize.ScanMinMax(src[32:64])
	wantScale1, wantZP1 := quantize.RangeAsymmetric(lo1, hi1, traits)

	assert.InDelta(t, wantScale0, scales[0], 1e-6)
	assert.InDelta(t, wantScale1, scales[1], 1e-6)
	assert.Equal(t, byte(wantZP0)|byte(wantZP1)<<4, zp[0], "zero_points[0] = (zp[0]&0xF) | (zp[1]<<4)")

	recip0 := float32(0)
	if wantScale0 != 0 {
		recip0 = 1 / wantScale0
	}
	recip1 := float32(0)
	if wantScale1 != 0 {
		recip1 = 1 / wantScale1
	}
	v0 := byte(clampNibbleF(src[0]*recip0 + float32(wantZP0)))
	v1 := byte(clampNibbleF(src[32]*recip1 + float32(wantZP1)))
	assert.Equal(t, v0|v1<<4, dst[0], "dst[j*q_rows+0] = (v(0,j)&0xF) | (v(1,j)<<4)")
}

func TestQuantizeDequantizeRoundtripSymmetric(t *testing.T) {
	const rows, cols, b = 96, 5, 32

	src := make([]float32, rows*cols)
	for i := range src {
		src[i] = float32((i%41)-20) * 0.1
	}

	dataBytes, nScales, _ := BufferSizes(b, true, false, rows, cols)
	dst := make([]byte, dataBytes)
	scales := make([]float32, nScales)

	QuantizeBlockwise(workerpool.Serial{}, dst, scales, nil, src, b, true, rows, cols, cols)

	out := make([]float32, rows*cols)
	DequantizeBlockwise(workerpool.Serial{}, out, dst, scales, nil, b, true, rows, cols)

	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			got := out[col*rows+row]
			want := src[row*cols+col]
			assert.InDelta(t, want, got, 0.2, "row=%d col=%d", row, col)
		}
	}
}

func TestQuantizeDequantizeRoundtripAsymmetricRowwise(t *testing.T) {
	const rows, cols, b = 4, 96, 32

	src := make([]float32, rows*cols)
	for i := range src {
		src[i] = float32(i%13) * 0.3
	}

	dataBytes, nScales, zpBytes := BufferSizes(b, false, true, rows, cols)
	dst := make([]byte, dataBytes)
	scales := make([]float32, nScales)
	zp := make([]byte, zpBytes)

	QuantizeBlockwise(workerpool.Serial{}, dst, scales, zp, src, b, false, rows, cols, cols)

	out := make([]float32, rows*cols)
	DequantizeBlockwise(workerpool.Serial{}, out, dst, scales, zp, b, false, rows, cols)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			got := out[row*cols+col]
			want := src[row*cols+col]
			assert.InDelta(t, want, got, 0.2, "row=%d col=%d", row, col)
		}
	}
}

func TestQuantizeBlockwiseDeterministicAcrossPoolSizes(t *testing.T) {
	const rows, cols, b = 100, 7, 32

	src := make([]float32, rows*cols)
	for i := range src {
		src[i] = float32((i*37)%53) - 26
	}

	var results [][]byte
	for _, n := range []int{1, 2, 8} {
		dataBytes, nScales, zpBytes := BufferSizes(b, true, true, rows, cols)
		dst := make([]byte, dataBytes)
		scales := make([]float32, nScales)
		zp := make([]byte, zpBytes)

		pool := workerpool.New(n)
		QuantizeBlockwise(pool, dst, scales, zp, src, b, true, rows, cols, cols)
		pool.Close()

		results = append(results, dst)
	}

	for i := 1; i < len(results); i++ {
		require.Equal(t, results[0], results[i], "pool size must not change packed bytes")
	}
}

func TestQuantizeBlockwiseInvalidBlockSizeIsNoop(t *testing.T) {
	dst := []byte{0xAA}
	scales := []float32{1}
	assert.NotPanics(t, func() {
		QuantizeBlockwise(workerpool.Serial{}, dst, scales, nil, []float32{1, 2, 3}, 17, true, 3, 1, 1)
	})
	assert.Equal(t, byte(0xAA), dst[0], "unsupported block size leaves buffers untouched")
}
