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

// UnpackB is the exact inverse of PackB: it reconstructs the K x N
// row-major float32 matrix (element (row l, col n) written to
// dst[n+ld*l]) from a buffer PackB produced. It exists for tests and
// diagnostics, not any GEMM hot path.
func UnpackB(qtype QType, dst []float32, src []byte, n, k, ld int) {
	d, _ := descFor(qtype)

	off := 0
	for col0 := 0; col0 < n; col0++ {
		for kk := 0; kk < k; kk += d.BlkLen {
			klen := min(d.BlkLen, k-kk)
			blob := src[off : off+d.BlobSize]

			if d.Asymmetric {
				unpackAsymBlob(dst, blob, col0, kk, klen, ld, d.ScaleF16)
			} else {
				unpackSymBlob(dst, blob, col0, kk, klen, ld, d.ScaleF16)
			}
			off += d.BlobSize
		}
	}
}

func unpackSymBlob(dst []float32, blob []byte, col0, kk, klen, ld int, scaleF16 bool) {
	n := scaleSize(scaleF16)
	scale := getScale(blob[:n], scaleF16)
	payload := blob[n:]

	blkLen := len(payload) * 2
	for l := 0; l < klen && l < blkLen; l++ {
		sub, lane := l%32, l/32
		byteIdx := lane*16 + sub%16
		nib := payload[byteIdx]
		if sub >= 16 {
			nib >>= 4
		}
		nib &= 0x0f

		dst[col0+ld*(kk+l)] = (float32(nib) - 8) * scale
	}
}

func unpackAsymBlob(dst []float32, blob []byte, col0, kk, klen, ld int, scaleF16 bool) {
	n := scaleSize(scaleF16)
	scale := getScale(blob[:n], scaleF16)
	zp := int(blob[n])
	payload := blob[n+1:]

	blkLen := len(payload) * 2
	for l := 0; l < klen && l < blkLen; l++ {
		sub, lane := l%32, l/32
		byteIdx := lane*16 + sub%16
		nib := payload[byteIdx]
		if sub >= 16 {
			nib >>= 4
		}
		nib &= 0x0f

		dst[col0+ld*(kk+l)] = (float32(int(nib)-zp)) * scale
	}
}
