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

// Package q4gemm implements the Q4Gemm packed-weight format: a column-wise
// 4-bit packing of a row-major float32 matrix into fixed-length K-blocks,
// each blob carrying its own scale (float32, or binary16 for the F16
// kinds) and, for the asymmetric variants, a uint8 zero point, ahead of
// its bit-packed nibble payload.
//
// Six block kinds are supported, differing in K-block length, scale
// width and whether a zero point is stored:
//
//	Sym     BlkLen=32  no zero point   BlobSize = 4 + 16      = 20
//	Asym    BlkLen=32  zero point      BlobSize = 4 + 1 + 16  = 21
//	Sym64   BlkLen=64  no zero point   BlobSize = 4 + 32      = 36
//	Sym128  BlkLen=128 no zero point   BlobSize = 4 + 64      = 68
//	SymF16  BlkLen=32  no zero point   BlobSize = 2 + 16      = 18
//	AsymF16 BlkLen=32  zero point      BlobSize = 2 + 1 + 16  = 19
//
// PackB iterates columns outermost and K-blocks inside, writing BlobSize
// bytes per blob. UnpackB is the exact inverse, kept around for tests and
// diagnostics rather than any hot path. Byte layout is a hard contract:
// SIMD GEMM kernels outside this module read these buffers directly.
package q4gemm
