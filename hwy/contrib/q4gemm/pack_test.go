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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackBSize(t *testing.T) {
	assert.Equal(t, 20, PackBSize(Sym, 1, 32))
	assert.Equal(t, 21, PackBSize(Asym, 1, 4))
	assert.Equal(t, 2*2*20, PackBSize(Sym, 2, 40))
	assert.Equal(t, 0, PackBSize(QType(99), 1, 32))
	assert.Equal(t, 18, PackBSize(SymF16, 1, 32), "binary16 scale shaves 2 bytes off the Sym blob")
	assert.Equal(t, 19, PackBSize(AsymF16, 1, 4))
}

func TestPackBSymF16WorkedExample(t *testing.T) {
	// Same input as TestPackBSymWorkedExample: scale=4.0 encodes as the
	// binary16 bit pattern 0x4400, and the payload nibbles are identical
	// since the scale value itself, not its storage width, drives them.
	src := make([]float32, 32)
	for i := range src {
		src[i] = float32(i + 1)
	}

	dst := make([]byte, PackBSize(SymF16, 1, 32))
	PackB(SymF16, dst, src, 1, 32, 1)

	require.Len(t, dst, 18)
	assert.Equal(t, []byte{0x00, 0x44}, dst[:2], "binary16 4.0")
	assert.Equal(t, byte(0xD9), dst[2], "nibble0=9, nibble16=13 pack to 0xD9")
}

func TestPackUnpackRoundtripSymF16(t *testing.T) {
	k, n := 64, 3
	src := make([]float32, k*n)
	for i := range src {
		src[i] = float32(i%17) - 8
	}

	size := PackBSize(SymF16, n, k)
	packed := make([]byte, size)
	PackB(SymF16, packed, src, n, k, n)

	out := make([]float32, k*n)
	UnpackB(SymF16, out, packed, n, k, n)

	for col := 0; col < n; col++ {
		for row := 0; row < k; row++ {
			idx := col + n*row
			assert.InDelta(t, src[idx], out[idx], 2.2, "col=%d row=%d", col, row)
		}
	}
}

func TestPackUnpackRoundtripAsymF16(t *testing.T) {
	k, n := 32, 2
	src := []float32{
		-4, -2, 2, 4, -4, -2, 2, 4, -4, -2, 2, 4, -4, -2, 2, 4,
		-4, -2, 2, 4, -4, -2, 2, 4, -4, -2, 2, 4, -4, -2, 2, 4,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	}

	size := PackBSize(AsymF16, n, k)
	packed := make([]byte, size)
	PackB(AsymF16, packed, src, n, k, n)

	out := make([]float32, k*n)
	UnpackB(AsymF16, out, packed, n, k, n)

	for col := 0; col < n; col++ {
		for row := 0; row < k; row++ {
			idx := col + n*row
			assert.InDelta(t, src[idx], out[idx], 0.6, "col=%d row=%d", col, row)
		}
	}
}

func TestPackBSymWorkedExample(t *testing.T) {
	src := make([]float32, 32)
	for i := range src {
		src[i] = float32(i + 1)
	}

	dst := make([]byte, PackBSize(Sym, 1, 32))
	PackB(Sym, dst, src, 1, 32, 1)

	require.Len(t, dst, 20)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x40}, dst[:4], "scale must encode float32 4.0")
	assert.Equal(t, byte(0xD9), dst[4], "nibble0=9, nibble16=13 pack to 0xD9")
}

func TestPackBAsymWorkedExample(t *testing.T) {
	src := []float32{-4, -2, 2, 4}

	dst := make([]byte, PackBSize(Asym, 1, 4))
	PackB(Asym, dst, src, 1, 4, 1)

	require.Len(t, dst, 21)
	scale := getFloat32(dst[:4])
	assert.InDelta(t, 8.0/15.0, scale, 1e-6)
	assert.Equal(t, byte(8), dst[4], "zero point")

	payload := dst[5:]
	assert.Equal(t, byte(0), payload[0]&0x0f, "v=-4 -> nibble 0")
	assert.Equal(t, byte(4), payload[1]&0x0f, "v=-2 -> nibble 4")
	assert.Equal(t, byte(12), payload[2]&0x0f, "v=2 -> nibble 12")
	assert.Equal(t, byte(15), payload[3]&0x0f, "v=4 -> nibble 15")
}

func TestPackBRaggedTailPadsZero(t *testing.T) {
	src := make([]float32, 33)
	for i := range src {
		src[i] = float32(i + 1)
	}

	size := PackBSize(Sym, 1, 33)
	assert.Equal(t, 2*20, size, "33 elements need two 32-wide blocks")

	dst := make([]byte, size)
	PackB(Sym, dst, src, 1, 33, 1)

	secondBlob := dst[20:40]
	secondScale := getFloat32(secondBlob[:4])
	assert.InDelta(t, float32(33)/8, secondScale, 1e-6, "block of one element 33: scale = 33/8")

	payload := secondBlob[4:]
	// position 0 (value 33) occupies the low nibble of payload[0]; every
	// other position in the second block is padding and packs to 0.
	assert.Equal(t, byte(0), payload[0]>>4, "padded high nibble is 0")
	for i := 1; i < len(payload); i++ {
		assert.Equal(t, byte(0), payload[i], "padded byte %d must be 0", i)
	}
}

func TestPackBAllZeroBlock(t *testing.T) {
	src := make([]float32, 32)

	symDst := make([]byte, PackBSize(Sym, 1, 32))
	PackB(Sym, symDst, src, 1, 32, 1)
	assert.Equal(t, float32(0), getFloat32(symDst[:4]))
	for _, b := range symDst[4:] {
		assert.Equal(t, byte(0), b)
	}

	asymDst := make([]byte, PackBSize(Asym, 1, 32))
	PackB(Asym, asymDst, src, 1, 32, 1)
	assert.Equal(t, float32(0), getFloat32(asymDst[:4]))
	zp := asymDst[4]
	assert.Equal(t, byte(0), zp)
	for _, b := range asymDst[5:] {
		assert.Equal(t, zp|zp<<4, b)
	}
}

func TestPackUnpackRoundtripSym(t *testing.T) {
	k, n := 64, 3
	src := make([]float32, k*n)
	for i := range src {
		src[i] = float32(i%17) - 8
	}

	size := PackBSize(Sym, n, k)
	packed := make([]byte, size)
	PackB(Sym, packed, src, n, k, n)

	out := make([]float32, k*n)
	UnpackB(Sym, out, packed, n, k, n)

	for col := 0; col < n; col++ {
		for row := 0; row < k; row++ {
			idx := col + n*row
			assert.InDelta(t, src[idx], out[idx], 2.2, "col=%d row=%d", col, row)
		}
	}
}

func TestPackUnpackRoundtripAsym(t *testing.T) {
	k, n := 32, 2
	src := []float32{
		-4, -2, 2, 4, -4, -2, 2, 4, -4, -2, 2, 4, -4, -2, 2, 4,
		-4, -2, 2, 4, -4, -2, 2, 4, -4, -2, 2, 4, -4, -2, 2, 4,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
		1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1,
	}

	size := PackBSize(Asym, n, k)
	packed := make([]byte, size)
	PackB(Asym, packed, src, n, k, n)

	out := make([]float32, k*n)
	UnpackB(Asym, out, packed, n, k, n)

	for col := 0; col < n; col++ {
		for row := 0; row < k; row++ {
			idx := col + n*row
			assert.InDelta(t, src[idx], out[idx], 0.6, "col=%d row=%d", col, row)
		}
	}
}
